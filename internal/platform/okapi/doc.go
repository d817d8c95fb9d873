// Package okapi resolves per-tenant RM API credentials from the platform's
// configuration service.
//
// Credentials live in a single configuration entry per tenant whose value is
// a URL-encoded "customer-id=...&api-key=..." blob. They are fetched on every
// request and never cached, so an update made by another instance is visible
// immediately.
package okapi
