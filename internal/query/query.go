package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/phrazzld/kb-gateway/internal/domain"
)

// Defaults applied when page or count is absent.
const (
	DefaultPage  = 1
	DefaultCount = 25
)

// Vendor parameter names.
const (
	ParamSearch       = "search"
	ParamSearchField  = "searchfield"
	ParamOrderBy      = "orderby"
	ParamSelection    = "selection"
	ParamContentType  = "contenttype"
	ParamResourceType = "resourcetype"
	ParamOffset       = "offset"
	ParamCount        = "count"
)

// Order values shared by every entity.
const (
	OrderRelevance   = "relevance"
	OrderPackageName = "packagename"
	OrderVendorName  = "vendorname"
	OrderTitleName   = "titlename"
)

// Params is the outcome of a mapping: the vendor query plus the include list,
// which only affects local response assembly.
type Params struct {
	Values  url.Values
	Include []string
}

// Includes reports whether name was requested in include.
func (p Params) Includes(name string) bool {
	for _, inc := range p.Include {
		if inc == name {
			return true
		}
	}
	return false
}

// entity describes the entity-specific targets of the shared rules.
type entity struct {
	nameOrder    string
	selections   map[string]string
	typeParam    string
	typeValid    func(string) bool
	titleFilters bool
}

var packageSelections = map[string]string{
	"true":  "selected",
	"false": "notselected",
	"ebsco": "orderedthroughebsco",
	"all":   "all",
}

var titleSelections = map[string]string{
	"true":  "selected",
	"false": "notselected",
	"ebsco": "orderedthroughebsco",
}

// titleSearchFields maps the single-field title filters to searchfield
// values, in precedence order.
var titleSearchFields = []struct {
	filter string
	field  string
}{
	{"filter[name]", "titlename"},
	{"filter[isxn]", "isxn"},
	{"filter[subject]", "subject"},
	{"filter[publisher]", "publisher"},
}

var (
	packages = entity{
		nameOrder:  OrderPackageName,
		selections: packageSelections,
		typeParam:  ParamContentType,
		typeValid:  isContentTypeFilter,
	}
	providers = entity{
		nameOrder:  OrderVendorName,
		selections: packageSelections,
	}
	titles = entity{
		nameOrder:    OrderTitleName,
		selections:   titleSelections,
		typeParam:    ParamResourceType,
		typeValid:    domain.IsPublicationTypeCode,
		titleFilters: true,
	}
)

func isContentTypeFilter(value string) bool {
	return value == "all" || domain.IsContentTypeCode(value)
}

// MapPackages maps a package listing query.
func MapPackages(in url.Values) (Params, error) {
	return packages.mapValues(in)
}

// MapProviders maps a provider listing query.
func MapProviders(in url.Values) (Params, error) {
	return providers.mapValues(in)
}

// MapTitles maps a title search query.
func MapTitles(in url.Values) (Params, error) {
	return titles.mapValues(in)
}

// MapResources maps the resource listing of a package, which is a title
// search scoped to that package.
func MapResources(in url.Values) (Params, error) {
	return titles.mapValues(in)
}

func (e entity) mapValues(in url.Values) (Params, error) {
	out := url.Values{}

	search := in.Get("q")
	if e.titleFilters {
		field, term, err := titleSearch(in)
		if err != nil {
			return Params{}, err
		}
		out.Set(ParamSearchField, field)
		search = term
	}
	out.Set(ParamSearch, search)

	order, err := e.order(in, search)
	if err != nil {
		return Params{}, err
	}
	out.Set(ParamOrderBy, order)

	selection, err := e.selection(in)
	if err != nil {
		return Params{}, err
	}
	out.Set(ParamSelection, selection)

	if e.typeParam != "" {
		typ := strings.ToLower(in.Get("filter[type]"))
		if typ == "" {
			typ = "all"
		}
		if !e.typeValid(typ) {
			return Params{}, domain.NewRequestError(domain.ErrInvalidQuery, "filter[type]",
				"Invalid Query Parameter for filter[type]")
		}
		out.Set(e.typeParam, typ)
	}

	page, err := intParam(in, "page", DefaultPage)
	if err != nil {
		return Params{}, err
	}
	out.Set(ParamOffset, page)

	count, err := intParam(in, "count", DefaultCount)
	if err != nil {
		return Params{}, err
	}
	out.Set(ParamCount, count)

	return Params{Values: out, Include: parseInclude(in.Get("include"))}, nil
}

// order applies the default-ordering asymmetry: relevance when searching,
// alphabetical otherwise.
func (e entity) order(in url.Values, search string) (string, error) {
	sort, present := in["sort"]
	if !present || len(sort) == 0 || sort[0] == "" {
		if search != "" {
			return OrderRelevance, nil
		}
		return e.nameOrder, nil
	}

	switch sort[0] {
	case "name":
		return e.nameOrder, nil
	case "relevance":
		return OrderRelevance, nil
	default:
		return "", domain.NewRequestError(domain.ErrInvalidQuery, "sort", "Invalid Query Parameter for sort")
	}
}

func (e entity) selection(in url.Values) (string, error) {
	value := strings.ToLower(in.Get("filter[selected]"))
	if value == "" {
		return "all", nil
	}
	selection, ok := e.selections[value]
	if !ok {
		return "", domain.NewRequestError(domain.ErrInvalidQuery, "filter[selected]",
			"Invalid Query Parameter for filter[selected]")
	}
	return selection, nil
}

// titleSearch picks the single-field title filter. More than one is a
// request-level conflict. Without a filter the plain q term is searched by
// title name.
func titleSearch(in url.Values) (field string, term string, err error) {
	field, term = "titlename", in.Get("q")
	set := 0
	for _, f := range titleSearchFields {
		if _, ok := in[f.filter]; !ok {
			continue
		}
		set++
		field, term = f.field, in.Get(f.filter)
	}
	if set > 1 {
		return "", "", domain.NewRequestError(domain.ErrConflictingFilters, "", "Conflicting filter parameters")
	}
	return field, term, nil
}

// intParam validates that a numeric parameter parses. Ranges are enforced by
// the vendor.
func intParam(in url.Values, name string, def int) (string, error) {
	raw := in.Get(name)
	if raw == "" {
		return strconv.Itoa(def), nil
	}
	if _, err := strconv.Atoi(raw); err != nil {
		return "", domain.NewRequestError(domain.ErrInvalidQuery, name, "Invalid Query Parameter for "+name)
	}
	return raw, nil
}

func parseInclude(raw string) []string {
	if raw == "" {
		return nil
	}
	var include []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			include = append(include, part)
		}
	}
	return include
}

// ParseInclude extracts the include list of a single-item request.
func ParseInclude(in url.Values) []string {
	return parseInclude(in.Get("include"))
}
