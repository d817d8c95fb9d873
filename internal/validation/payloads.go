package validation

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Optional is a payload field that distinguishes an absent key from an
// explicit JSON null. Absent keeps the stored value, null clears it.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON implements json.Unmarshaler. It is only called when the key
// is present, including for a literal null.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Ptr returns the value when present and non-null, else nil.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// Coverage is a client-supplied date range.
type Coverage struct {
	BeginCoverage *string `json:"beginCoverage"`
	EndCoverage   *string `json:"endCoverage"`
}

// Begin returns the begin date or "".
func (c Coverage) Begin() string { return deref(c.BeginCoverage) }

// End returns the end date or "".
func (c Coverage) End() string { return deref(c.EndCoverage) }

// VisibilityPatch carries the writable part of visibilityData.
type VisibilityPatch struct {
	IsHidden *bool `json:"isHidden"`
}

// ProxyPatch carries a proxy selection. inherited is never accepted from
// clients.
type ProxyPatch struct {
	ID *string `json:"id"`
}

// TokenPatch carries an access token value.
type TokenPatch struct {
	Value *string `json:"value"`
}

// EmbargoPatch carries a custom embargo period.
type EmbargoPatch struct {
	EmbargoUnit  *string `json:"embargoUnit"`
	EmbargoValue *int    `json:"embargoValue"`
}

// Contributor is a client-supplied contributor.
type Contributor struct {
	Type        string `json:"type"`
	Contributor string `json:"contributor"`
}

// Identifier is a client-supplied identifier. ID is kept raw so a JSON number
// can be told apart from a string.
type Identifier struct {
	ID      json.RawMessage `json:"id"`
	Type    string          `json:"type"`
	Subtype string          `json:"subtype"`
}

// IDString returns the identifier id when it is a JSON string.
func (i Identifier) IDString() (string, bool) {
	raw := bytes.TrimSpace(i.ID)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// PackagePatch is the attribute bag of PUT /packages/{id}.
type PackagePatch struct {
	Name               *string            `json:"name"`
	ContentType        *string            `json:"contentType"`
	IsSelected         *bool              `json:"isSelected"`
	VisibilityData     *VisibilityPatch   `json:"visibilityData"`
	CustomCoverage     Optional[Coverage] `json:"customCoverage"`
	AllowKbToAddTitles *bool              `json:"allowKbToAddTitles"`
	Proxy              *ProxyPatch        `json:"proxy"`
	PackageToken       *TokenPatch        `json:"packageToken"`
}

// IsHidden returns the requested hidden flag, if any.
func (p PackagePatch) IsHidden() *bool {
	if p.VisibilityData == nil {
		return nil
	}
	return p.VisibilityData.IsHidden
}

// ProviderPatch is the attribute bag of PUT /providers/{id}.
type ProviderPatch struct {
	ProviderToken *TokenPatch `json:"providerToken"`
	Proxy         *ProxyPatch `json:"proxy"`
}

// ResourcePatch is the attribute bag of PUT /resources/{id}. The first group
// is title-level, the second package-membership-level.
type ResourcePatch struct {
	Name            *string        `json:"name"`
	IsPeerReviewed  *bool          `json:"isPeerReviewed"`
	PublicationType *string        `json:"publicationType"`
	PublisherName   *string        `json:"publisherName"`
	Edition         *string        `json:"edition"`
	Description     *string        `json:"description"`
	URL             *string        `json:"url"`
	Contributors    *[]Contributor `json:"contributors"`
	Identifiers     *[]Identifier  `json:"identifiers"`

	IsSelected          *bool                  `json:"isSelected"`
	VisibilityData      *VisibilityPatch       `json:"visibilityData"`
	CustomCoverages     Optional[[]Coverage]   `json:"customCoverages"`
	CustomEmbargoPeriod Optional[EmbargoPatch] `json:"customEmbargoPeriod"`
	CoverageStatement   *string                `json:"coverageStatement"`
	Proxy               *ProxyPatch            `json:"proxy"`
}

// IsHidden returns the requested hidden flag, if any.
func (p ResourcePatch) IsHidden() *bool {
	if p.VisibilityData == nil {
		return nil
	}
	return p.VisibilityData.IsHidden
}

// ResourceCreate is the attribute bag of POST /resources.
type ResourceCreate struct {
	PackageID string  `json:"packageId"`
	TitleID   string  `json:"titleId"`
	URL       *string `json:"url"`
}

// TitleCreate is the attribute bag of POST /titles plus the package id taken
// from the included resource.
type TitleCreate struct {
	Name            *string       `json:"name"`
	PublicationType *string       `json:"publicationType"`
	PublisherName   *string       `json:"publisherName"`
	IsPeerReviewed  *bool         `json:"isPeerReviewed"`
	Edition         *string       `json:"edition"`
	Description     *string       `json:"description"`
	Contributors    []Contributor `json:"contributors"`
	Identifiers     []Identifier  `json:"identifiers"`

	PackageID string `json:"-"`
}

// CustomLabelPatch is the attribute bag of PUT /custom-labels/{id}.
type CustomLabelPatch struct {
	ID                         json.RawMessage `json:"id"`
	DisplayLabel               *string         `json:"displayLabel"`
	DisplayOnFullTextFinder    *bool           `json:"displayOnFullTextFinder"`
	DisplayOnPublicationFinder *bool           `json:"displayOnPublicationFinder"`
}

// LabelID parses the payload id, accepting a JSON integer or a numeric string.
func (p CustomLabelPatch) LabelID() (int, bool) {
	raw := bytes.TrimSpace(p.ID)
	if len(raw) == 0 {
		return 0, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		raw = []byte(s)
	}
	id, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, false
	}
	return id, true
}

// RootProxyPatch is the attribute bag of PUT /root-proxies/{id}.
type RootProxyPatch struct {
	ProxyTypeID *string `json:"proxyTypeId"`
}

// ConfigurationPatch is the attribute bag of PUT /configuration.
type ConfigurationPatch struct {
	CustomerID string `json:"customerId" validate:"required"`
	APIKey     string `json:"apiKey" validate:"required"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// set reports whether an optional string carries a value. Empty strings are
// how clients clear a field, so they count as absent.
func set(s *string) bool {
	return s != nil && *s != ""
}

// isTrue applies the same rule to flags: false is the cleared state.
func isTrue(b *bool) bool {
	return b != nil && *b
}
