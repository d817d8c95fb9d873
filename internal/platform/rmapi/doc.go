// Package rmapi is the infrastructure adapter for the vendor Resource
// Management API ("RM API").
//
// It owns the wire types exchanged with the vendor, the HTTP plumbing
// (credential headers, base path substitution, JSON encoding) and the
// classification of non-2xx responses into UpstreamError. It performs exactly
// one attempt per call: retries, if any, belong to the caller, and the
// gateway never retries.
//
// Every method takes the tenant's credentials explicitly so a single Client
// can be shared by all requests without holding per-tenant state.
package rmapi
