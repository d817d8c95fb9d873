// Package validation holds the gateway's business-rule validators.
//
// Each validator is a pure function over an explicit payload struct plus the
// contextual flags it needs (is the title custom, is the package custom, the
// current label). Validators never talk to the vendor. They accumulate every
// violation into an ordered domain.ValidationErrors instead of stopping at
// the first one, and the order of checks is part of the contract: callers
// assert on exact error ordering.
//
// The recurring rule is conditional absence: when a governing flag such as
// isSelected is false or absent, every field of the group it governs must be
// absent, and each offending field yields exactly one error.
package validation
