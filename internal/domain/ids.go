package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// IDSeparator joins the segments of a composite identifier.
const IDSeparator = "-"

// Segment names, in positional order.
const (
	SegmentVendor  = "vendor"
	SegmentPackage = "package"
	SegmentTitle   = "title"
)

var segmentNames = []string{SegmentVendor, SegmentPackage, SegmentTitle}

// CompositeID identifies a provider (arity 1), a package (arity 2) or a
// resource (arity 3).
type CompositeID struct {
	VendorID  int64
	PackageID int64
	TitleID   int64
	Arity     int
}

// MalformedIDError reports a composite id with the wrong number of segments.
type MalformedIDError struct {
	ID       string
	Expected int
	Got      int
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed id %q: expected %d segments, got %d", e.ID, e.Expected, e.Got)
}

// Unwrap returns ErrInvalidID.
func (e *MalformedIDError) Unwrap() error { return ErrInvalidID }

// InvalidSegmentError reports which named segment failed to parse.
type InvalidSegmentError struct {
	ID      string
	Segment string
	Value   string
}

func (e *InvalidSegmentError) Error() string {
	return fmt.Sprintf("%s id is invalid - %s", e.Segment, e.Value)
}

// Unwrap returns ErrInvalidID.
func (e *InvalidSegmentError) Unwrap() error { return ErrInvalidID }

// DecodeID splits id on '-' and parses exactly arity positive integers.
func DecodeID(id string, arity int) (CompositeID, error) {
	if arity < 1 || arity > len(segmentNames) {
		return CompositeID{}, fmt.Errorf("unsupported id arity %d", arity)
	}

	parts := strings.Split(id, IDSeparator)
	if len(parts) != arity {
		return CompositeID{}, &MalformedIDError{ID: id, Expected: arity, Got: len(parts)}
	}

	values := make([]int64, arity)
	for i, part := range parts {
		v, err := parseSegment(part)
		if err != nil {
			return CompositeID{}, &InvalidSegmentError{ID: id, Segment: segmentNames[i], Value: part}
		}
		values[i] = v
	}

	cid := CompositeID{Arity: arity, VendorID: values[0]}
	if arity > 1 {
		cid.PackageID = values[1]
	}
	if arity > 2 {
		cid.TitleID = values[2]
	}
	return cid, nil
}

// DecodeTitleID parses a bare title id, reporting failures against the
// title segment.
func DecodeTitleID(id string) (int64, error) {
	if strings.Contains(id, IDSeparator) {
		return 0, &MalformedIDError{ID: id, Expected: 1, Got: len(strings.Split(id, IDSeparator))}
	}
	v, err := parseSegment(id)
	if err != nil {
		return 0, &InvalidSegmentError{ID: id, Segment: SegmentTitle, Value: id}
	}
	return v, nil
}

// parseSegment accepts only the canonical decimal form, so every id that
// decodes re-encodes to the same string.
func parseSegment(s string) (int64, error) {
	if s == "" || s[0] < '1' || s[0] > '9' || strings.IndexFunc(s, notDigit) >= 0 {
		return 0, fmt.Errorf("segment %q is not a canonical positive integer", s)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("segment must be a positive integer")
	}
	return v, nil
}

func notDigit(r rune) bool { return r < '0' || r > '9' }

// EncodeID joins parts with '-'. Parts are trusted internal values.
func EncodeID(parts ...int64) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = strconv.FormatInt(p, 10)
	}
	return strings.Join(s, IDSeparator)
}

// String encodes the id at its own arity.
func (c CompositeID) String() string {
	switch c.Arity {
	case 1:
		return EncodeID(c.VendorID)
	case 2:
		return EncodeID(c.VendorID, c.PackageID)
	default:
		return EncodeID(c.VendorID, c.PackageID, c.TitleID)
	}
}

// PackageKey returns the vendor-package pair of a package or resource id.
func (c CompositeID) PackageKey() string {
	return EncodeID(c.VendorID, c.PackageID)
}

// ResourceID builds an arity-3 id.
func ResourceID(vendorID, packageID, titleID int64) CompositeID {
	return CompositeID{VendorID: vendorID, PackageID: packageID, TitleID: titleID, Arity: 3}
}

// PackageID builds an arity-2 id.
func PackageID(vendorID, packageID int64) CompositeID {
	return CompositeID{VendorID: vendorID, PackageID: packageID, Arity: 2}
}
