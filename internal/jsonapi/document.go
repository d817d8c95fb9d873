package jsonapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	hjsonapi "github.com/hashicorp/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/domain"
)

// MediaType is the JSON:API content type.
const MediaType = "application/vnd.api+json"

// Version is the jsonapi member present on every document.
type Version struct {
	Version string `json:"version"`
}

var version = Version{Version: "1.0"}

// Identifier is a resource linkage.
type Identifier struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// RelationshipMeta tells clients whether the related data is in included.
type RelationshipMeta struct {
	Included bool `json:"included"`
}

// Relationship links a resource to one or many others. Data is either an
// *Identifier, a []Identifier, or nil when the relationship was not loaded.
type Relationship struct {
	Data any              `json:"data,omitempty"`
	Meta RelationshipMeta `json:"meta"`
}

// ToOne builds a to-one relationship.
func ToOne(id, typ string) Relationship {
	return Relationship{Data: &Identifier{ID: id, Type: typ}}
}

// ToMany builds a loaded to-many relationship.
func ToMany(ids []Identifier) Relationship {
	if ids == nil {
		ids = []Identifier{}
	}
	return Relationship{Data: ids, Meta: RelationshipMeta{Included: true}}
}

// NotIncluded builds a relationship whose data was not requested.
func NotIncluded() Relationship {
	return Relationship{}
}

// Resource is a JSON:API resource object.
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    any                     `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Identifier returns the linkage of r.
func (r Resource) Identifier() Identifier {
	return Identifier{ID: r.ID, Type: r.Type}
}

// Meta is collection metadata.
type Meta struct {
	TotalResults int `json:"totalResults"`
}

// Document is a response document. Data is a Resource or a []Resource.
type Document struct {
	Data     any        `json:"data"`
	Included []Resource `json:"included,omitempty"`
	Meta     *Meta      `json:"meta,omitempty"`
	JSONAPI  Version    `json:"jsonapi"`
}

// Single wraps one resource.
func Single(r Resource, included ...Resource) Document {
	return Document{Data: r, Included: included, JSONAPI: version}
}

// Collection wraps a page of resources with its total.
func Collection(rs []Resource, total int, included ...Resource) Document {
	if rs == nil {
		rs = []Resource{}
	}
	return Document{
		Data:     rs,
		Included: included,
		Meta:     &Meta{TotalResults: total},
		JSONAPI:  version,
	}
}

// ErrorSource points at the offending part of the request.
type ErrorSource = hjsonapi.ErrorSource

// Error is a JSON:API error object.
type Error = hjsonapi.ErrorObject

// ErrorDocument is an error response document. It is hjsonapi.ErrorsPayload
// plus the jsonapi member every response carries.
type ErrorDocument struct {
	Errors  []Error `json:"errors"`
	JSONAPI Version `json:"jsonapi"`
}

// Errors wraps error objects into a document.
func Errors(errs ...Error) ErrorDocument {
	if errs == nil {
		errs = []Error{}
	}
	return ErrorDocument{Errors: errs, JSONAPI: version}
}

// RequestData is the primary data of an inbound write document.
type RequestData struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes json.RawMessage `json:"attributes"`
}

// RequestDocument is an inbound write document.
type RequestDocument struct {
	Data     RequestData   `json:"data"`
	Included []RequestData `json:"included"`
}

// Decode reads a write document. Any syntax problem, including an empty
// body, is reported as domain.ErrMalformedPayload.
func Decode(r io.Reader) (*RequestDocument, error) {
	var doc RequestDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return &doc, nil
}

// DecodeAttributes unmarshals the attributes of d into v. Missing attributes
// decode as an empty object.
func (d RequestData) DecodeAttributes(v any) error {
	raw := bytes.TrimSpace(d.Attributes)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: attribute %s has the wrong type", domain.ErrMalformedPayload, typeErr.Field)
		}
		return fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return nil
}

// CollectionRequestDocument is an inbound document whose data is an array.
type CollectionRequestDocument struct {
	Data []RequestData `json:"data"`
}

// DecodeCollection reads a write document carrying an array of resources.
func DecodeCollection(r io.Reader) (*CollectionRequestDocument, error) {
	var doc CollectionRequestDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return &doc, nil
}
