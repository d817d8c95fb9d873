package validation

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/kb-gateway/internal/domain"
)

// Field length caps.
const (
	MaxNameLength              = 400
	MaxPublisherNameLength     = 250
	MaxEditionLength           = 250
	MaxDescriptionLength       = 1500
	MaxCoverageStatementLength = 250
	MaxContributorLength       = 250
	MaxIdentifierIDLength      = 20
	MaxTokenValueLength        = 500
	MaxURLLength               = 600
	MaxCustomLabelLength       = 50
	MinCustomLabelID           = 1
	MaxCustomLabelID           = 5
)

// DateLayout is the only accepted coverage date format.
const DateLayout = "2006-01-02"

const mustBeAbsent = "must be empty when the resource is not selected"

var validate = validator.New()

var embargoUnits = map[string]struct{}{
	"days": {}, "weeks": {}, "months": {}, "years": {},
}

var contributorTypes = map[string]struct{}{
	"author": {}, "editor": {}, "illustrator": {},
}

var writableIdentifierTypes = map[string]struct{}{
	"issn": {}, "isbn": {},
}

var writableIdentifierSubtypes = map[string]struct{}{
	"print": {}, "online": {},
}

// checkLength adds an error when s exceeds max runes.
func checkLength(errs *domain.ValidationErrors, field, s string, max int) {
	if utf8.RuneCountInString(s) > max {
		errs.Add(field, fmt.Sprintf("is too long (maximum is %d characters)", max))
	}
}

// checkURL requires an http(s) URL when a value is given.
func checkURL(errs *domain.ValidationErrors, field string, s *string) {
	if !set(s) {
		return
	}
	raw := *s
	checkLength(errs, field, raw, MaxURLLength)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs.Add(field, "has invalid format. Should start with https:// or http://")
	}
}

func parseDate(s string) (time.Time, bool) {
	if err := validate.Var(s, "datetime="+DateLayout); err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	return t, err == nil
}

// checkCoverage validates a single date range: dates must be well formed,
// begin is required when end is set, and begin must not be after end.
func checkCoverage(errs *domain.ValidationErrors, c Coverage) {
	begin, end := c.Begin(), c.End()
	var bt, et time.Time
	var bok, eok bool
	if begin != "" {
		if bt, bok = parseDate(begin); !bok {
			errs.Add("beginCoverage", "has invalid format. Should be YYYY-MM-DD")
		}
	}
	if end != "" {
		if et, eok = parseDate(end); !eok {
			errs.Add("endCoverage", "has invalid format. Should be YYYY-MM-DD")
		}
	}
	if begin == "" && end != "" {
		errs.Add("beginCoverage", "is required when endCoverage is set")
	}
	if bok && eok && bt.After(et) {
		errs.Add("beginCoverage", "must be before endCoverage")
	}
}

// checkCoverageList validates each range and rejects overlapping ranges.
func checkCoverageList(errs *domain.ValidationErrors, list []Coverage) {
	before := len(*errs)
	for _, c := range list {
		if c.Begin() == "" && c.End() == "" {
			errs.Add("customCoverageList", "contains an empty coverage range")
			continue
		}
		checkCoverage(errs, c)
	}
	if len(*errs) > before {
		return
	}
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if overlaps(list[i], list[j]) {
				errs.Add("customCoverageList", "contains overlapping coverage ranges")
				return
			}
		}
	}
}

func overlaps(a, b Coverage) bool {
	ab, _ := parseDate(a.Begin())
	bb, _ := parseDate(b.Begin())
	ae, aok := parseDate(a.End())
	be, bok := parseDate(b.End())
	// An open end runs forever.
	aEndsBeforeB := aok && ae.Before(bb)
	bEndsBeforeA := bok && be.Before(ab)
	return !aEndsBeforeB && !bEndsBeforeA
}

func checkEmbargo(errs *domain.ValidationErrors, e *EmbargoPatch) {
	if e == nil {
		return
	}
	if e.EmbargoValue != nil && *e.EmbargoValue < 0 {
		errs.Add("embargoValue", "must be a non-negative number")
	}
	unit := strings.ToLower(deref(e.EmbargoUnit))
	if unit != "" {
		if _, ok := embargoUnits[unit]; !ok {
			errs.Add("embargoUnit", "must be one of Days, Weeks, Months, Years")
		}
	}
	if e.EmbargoValue != nil && *e.EmbargoValue > 0 && unit == "" {
		errs.Add("embargoUnit", "is required when embargoValue is set")
	}
}

func checkProxy(errs *domain.ValidationErrors, p *ProxyPatch) {
	if p == nil {
		return
	}
	if p.ID == nil || strings.TrimSpace(*p.ID) == "" {
		errs.Add("proxy", "id can not be blank")
	}
}

func checkToken(errs *domain.ValidationErrors, field string, t *TokenPatch) {
	if t == nil || t.Value == nil {
		return
	}
	checkLength(errs, field, *t.Value, MaxTokenValueLength)
}

func checkContributors(errs *domain.ValidationErrors, list []Contributor) {
	for _, c := range list {
		if _, ok := contributorTypes[strings.ToLower(c.Type)]; !ok {
			errs.Add("contributors", "type must be one of author, editor, illustrator")
		}
		if strings.TrimSpace(c.Contributor) == "" {
			errs.Add("contributors", "contributor can not be blank")
			continue
		}
		checkLength(errs, "contributors", c.Contributor, MaxContributorLength)
	}
}

func checkIdentifiers(errs *domain.ValidationErrors, list []Identifier) {
	for _, ident := range list {
		id, ok := ident.IDString()
		switch {
		case !ok:
			errs.Add("identifiers", "id must be a string")
		case strings.TrimSpace(id) == "":
			errs.Add("identifiers", "id can not be blank")
		default:
			checkLength(errs, "identifiers", id, MaxIdentifierIDLength)
		}
		if _, ok := writableIdentifierTypes[strings.ToLower(ident.Type)]; !ok {
			errs.Add("identifiers", "type must be one of ISSN, ISBN")
		}
		if ident.Subtype != "" {
			if _, ok := writableIdentifierSubtypes[strings.ToLower(ident.Subtype)]; !ok {
				errs.Add("identifiers", "subtype must be one of Print, Online")
			}
		}
	}
}

func checkPublicationType(errs *domain.ValidationErrors, field string, s *string) {
	if s == nil {
		return
	}
	if !domain.IsPublicationType(*s) {
		errs.Add(field, "is not a valid publication type")
	}
}
