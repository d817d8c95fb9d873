package shared

import (
	"net/http"

	"github.com/phrazzld/kb-gateway/internal/jsonapi"
)

// maxBodySize bounds inbound request documents.
const maxBodySize = 1 << 20

// DecodeDocument decodes a single-resource JSON:API request body.
func DecodeDocument(w http.ResponseWriter, r *http.Request) (*jsonapi.RequestDocument, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	return jsonapi.Decode(r.Body)
}

// DecodeAttributes decodes a single-resource request body and unmarshals its
// attributes into v.
func DecodeAttributes(w http.ResponseWriter, r *http.Request, v any) error {
	doc, err := DecodeDocument(w, r)
	if err != nil {
		return err
	}
	return doc.Data.DecodeAttributes(v)
}

// DecodeCollection decodes a collection JSON:API request body.
func DecodeCollection(w http.ResponseWriter, r *http.Request) (*jsonapi.CollectionRequestDocument, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	return jsonapi.DecodeCollection(r.Body)
}
