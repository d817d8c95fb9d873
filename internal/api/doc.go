// Package api handles incoming JSON:API requests under /eholdings. Handlers
// decode the request document, call the service layer with the tenant's
// credentials, and write JSON:API documents. Errors are mapped to statuses
// in one place, HandleAPIError.
package api
