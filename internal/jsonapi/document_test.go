package jsonapi

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRendersEmptyArray(t *testing.T) {
	out, err := json.Marshal(Collection(nil, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"meta":{"totalResults":0},"jsonapi":{"version":"1.0"}}`, string(out))
}

func TestSingleWithRelationships(t *testing.T) {
	res := Resource{
		ID:         "1-2",
		Type:       "packages",
		Attributes: map[string]any{"name": "Pkg"},
		Relationships: map[string]Relationship{
			"provider":  ToOne("1", "providers"),
			"resources": NotIncluded(),
		},
	}
	out, err := json.Marshal(Single(res))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"data": {
			"id": "1-2",
			"type": "packages",
			"attributes": {"name": "Pkg"},
			"relationships": {
				"provider": {"data": {"id": "1", "type": "providers"}, "meta": {"included": false}},
				"resources": {"meta": {"included": false}}
			}
		},
		"jsonapi": {"version": "1.0"}
	}`, string(out))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantAttrs string
	}{
		{"valid", `{"data":{"type":"packages","attributes":{"name":"x"}}}`, false, "x"},
		{"missing attributes", `{"data":{"type":"packages"}}`, false, ""},
		{"not json", `{"data":`, true, ""},
		{"empty", ``, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(strings.NewReader(tt.body))
			if tt.wantErr {
				assert.True(t, errors.Is(err, domain.ErrMalformedPayload))
				return
			}
			require.NoError(t, err)
			var attrs struct {
				Name string `json:"name"`
			}
			require.NoError(t, doc.Data.DecodeAttributes(&attrs))
			assert.Equal(t, tt.wantAttrs, attrs.Name)
		})
	}
}

func TestDecodeAttributesWrongType(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"data":{"attributes":{"isSelected":"yes"}}}`))
	require.NoError(t, err)
	var attrs struct {
		IsSelected *bool `json:"isSelected"`
	}
	err = doc.Data.DecodeAttributes(&attrs)
	assert.True(t, errors.Is(err, domain.ErrMalformedPayload))
}

func TestDecodeCollection(t *testing.T) {
	doc, err := DecodeCollection(strings.NewReader(`{"data":[{"type":"customLabels","attributes":{"id":1}},{"type":"customLabels"}]}`))
	require.NoError(t, err)
	assert.Len(t, doc.Data, 2)

	_, err = DecodeCollection(strings.NewReader(`{"data":{"type":"customLabels"}}`))
	assert.True(t, errors.Is(err, domain.ErrMalformedPayload))
}

func TestErrorsDocument(t *testing.T) {
	tests := []struct {
		name string
		errs []Error
		want string
	}{
		{
			name: "no errors",
			errs: nil,
			want: `{"errors":[],"jsonapi":{"version":"1.0"}}`,
		},
		{
			name: "attribute pointer",
			errs: []Error{{Title: "Invalid name", Detail: "can not be blank", Source: &ErrorSource{Pointer: "/data/attributes/name"}}},
			want: `{"errors":[{"title":"Invalid name","detail":"can not be blank","source":{"pointer":"/data/attributes/name"}}],"jsonapi":{"version":"1.0"}}`,
		},
		{
			name: "query parameter",
			errs: []Error{{Title: "Invalid Query Parameter for sort", Source: &ErrorSource{Parameter: "sort"}}},
			want: `{"errors":[{"title":"Invalid Query Parameter for sort","source":{"parameter":"sort"}}],"jsonapi":{"version":"1.0"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(Errors(tt.errs...))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}
}
