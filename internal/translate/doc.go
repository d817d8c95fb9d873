// Package translate maps between RM API wire types and JSON:API resources.
//
// Decoders render vendor entities as resources, substituting display values
// for enumeration codes and deriving computed attributes. Encoders merge a
// validated patch onto a freshly fetched snapshot and produce the full
// representation the vendor expects on a write.
package translate
