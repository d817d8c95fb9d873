// Package service contains the gateway's use cases. Each service orchestrates
// one entity family against the RM API and returns finished JSON:API
// documents.
//
// Every write follows the same sequence:
//
//  1. Validate the request on its own (ids, payload shape).
//  2. Fetch the current snapshot. The vendor expects full representations,
//     never patches.
//  3. Validate the rules that depend on the snapshot (custom title, custom
//     package, label state).
//  4. Merge the patch onto the snapshot and write it.
//  5. Refetch and translate. The write response is never trusted as the
//     final representation.
//
// Any upstream failure aborts the sequence where it happened and is returned
// unchanged, so callers see either the refreshed entity or an error. There
// are no retries.
//
// Services are stateless. Tenant credentials are passed to every call and
// never cached.
package service
