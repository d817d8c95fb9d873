package domain

import (
	"net/url"
	"strings"
)

const (
	configKeyCustomerID = "customer-id"
	configKeyAPIKey     = "api-key"
)

// TenantConfig holds the RM API credentials of a single tenant.
// It is loaded per request and never cached.
type TenantConfig struct {
	CustomerID string
	APIKey     string
}

// Valid reports whether both credentials are present. No upstream call may be
// attempted with an invalid config.
func (c TenantConfig) Valid() bool {
	return strings.TrimSpace(c.CustomerID) != "" && strings.TrimSpace(c.APIKey) != ""
}

// MaskedAPIKey returns the api key with every character replaced by '*'.
func (c TenantConfig) MaskedAPIKey() string {
	return strings.Repeat("*", len(c.APIKey))
}

// EncodeTenantConfig serializes credentials into the URL-encoded blob stored
// by the configuration service.
func EncodeTenantConfig(c TenantConfig) string {
	values := url.Values{}
	values.Set(configKeyCustomerID, c.CustomerID)
	values.Set(configKeyAPIKey, c.APIKey)
	return values.Encode()
}

// DecodeTenantConfig parses a stored blob. Missing keys leave the
// corresponding field empty; callers check Valid.
func DecodeTenantConfig(blob string) (TenantConfig, error) {
	values, err := url.ParseQuery(blob)
	if err != nil {
		return TenantConfig{}, err
	}
	return TenantConfig{
		CustomerID: values.Get(configKeyCustomerID),
		APIKey:     values.Get(configKeyAPIKey),
	}, nil
}
