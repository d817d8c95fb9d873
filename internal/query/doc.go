// Package query translates JSON:API listing parameters (q, sort, filter[...],
// page, count, include) into the RM API's search parameters.
//
// Mapping is pure: it never talks to the vendor, and every rejection happens
// before an upstream call is attempted. Range checks on page and count are
// deliberately left to the vendor, whose own error is surfaced verbatim.
package query
