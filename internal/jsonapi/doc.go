// Package jsonapi provides the small subset of JSON:API document handling the
// gateway needs: single and collection documents with included resources,
// relationship linkage, error documents, and decoding of inbound write
// documents into typed attribute structs.
package jsonapi
