// Package domain contains the value types shared by every layer of the
// gateway: composite identifiers, the enumeration tables that translate
// vendor codes into display values, tenant credentials, and the error
// taxonomy the API layer maps onto HTTP status codes.
//
// Everything in this package is pure and immutable after initialization, so
// it is safe for concurrent use without synchronization.
package domain
