package translate

import (
	"sort"
	"strings"
	"time"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// writeProxy resolves the proxy to send. The vendor rejects inherited=true
// alongside a proxy value, so writes always clear it.
func writeProxy(current *rmapi.Proxy, patch *validation.ProxyPatch) *rmapi.Proxy {
	switch {
	case patch != nil && patch.ID != nil:
		return &rmapi.Proxy{ID: *patch.ID, Inherited: false}
	case current != nil:
		return &rmapi.Proxy{ID: current.ID, Inherited: false}
	default:
		return nil
	}
}

// SortCoverages orders ranges by begin date, newest first. Unparseable
// dates sort last.
func SortCoverages(list []rmapi.Coverage) []rmapi.Coverage {
	out := make([]rmapi.Coverage, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		bi, erri := time.Parse(validation.DateLayout, out[i].BeginCoverage)
		bj, errj := time.Parse(validation.DateLayout, out[j].BeginCoverage)
		if erri != nil || errj != nil {
			return erri == nil && errj != nil
		}
		return bi.After(bj)
	})
	return out
}

func patchCoverages(list []validation.Coverage) []rmapi.Coverage {
	out := make([]rmapi.Coverage, 0, len(list))
	for _, c := range list {
		out = append(out, rmapi.Coverage{BeginCoverage: c.Begin(), EndCoverage: c.End()})
	}
	return SortCoverages(out)
}

func contentTypeNumber(value string) int {
	if domain.IsContentTypeName(value) {
		return domain.ContentTypeNumber(value)
	}
	return domain.ContentTypeNumber(domain.ContentTypeName(value))
}

func encodeContributors(list []validation.Contributor) []rmapi.Contributor {
	out := make([]rmapi.Contributor, 0, len(list))
	for _, c := range list {
		out = append(out, rmapi.Contributor{Type: strings.ToLower(c.Type), Contributor: c.Contributor})
	}
	return out
}

func encodeIdentifiers(list []validation.Identifier) []rmapi.Identifier {
	out := make([]rmapi.Identifier, 0, len(list))
	for _, ident := range list {
		id, _ := ident.IDString()
		typ, _ := domain.IdentifierTypeCode(ident.Type)
		subtype, _ := domain.IdentifierSubtypeCode(ident.Subtype)
		out = append(out, rmapi.Identifier{ID: id, Type: typ, Subtype: subtype})
	}
	return out
}

// PackagePut merges a validated patch onto the current package. A package
// that ends up deselected loses its customizations.
func PackagePut(current rmapi.Package, p validation.PackagePatch) rmapi.PackagePut {
	put := rmapi.PackagePut{
		IsSelected:            current.IsSelected,
		IsHidden:              current.VisibilityData.IsHidden,
		AllowEbscoToAddTitles: current.AllowEbscoToAddTitles,
		Proxy:                 writeProxy(current.Proxy, p.Proxy),
	}
	if current.CustomCoverage.BeginCoverage != "" {
		cov := current.CustomCoverage
		put.CustomCoverage = &cov
	}

	if p.IsSelected != nil {
		put.IsSelected = *p.IsSelected
	}
	if hidden := p.IsHidden(); hidden != nil {
		put.IsHidden = *hidden
	}
	if p.CustomCoverage.Set {
		put.CustomCoverage = nil
		if c := p.CustomCoverage.Ptr(); c != nil && c.Begin() != "" {
			put.CustomCoverage = &rmapi.Coverage{
				BeginCoverage: c.Begin(),
				EndCoverage:   c.End(),
			}
		}
	}
	if p.AllowKbToAddTitles != nil {
		allow := *p.AllowKbToAddTitles
		put.AllowEbscoToAddTitles = &allow
	}
	if p.PackageToken != nil && p.PackageToken.Value != nil {
		put.PackageToken = &rmapi.TokenValue{Value: *p.PackageToken.Value}
	}

	if current.IsCustom {
		put.PackageName = current.PackageName
		put.ContentType = contentTypeNumber(current.ContentType)
		if p.Name != nil {
			put.PackageName = *p.Name
		}
		if p.ContentType != nil {
			put.ContentType = contentTypeNumber(*p.ContentType)
		}
	}

	if !put.IsSelected {
		put.IsHidden = false
		put.CustomCoverage = nil
		put.AllowEbscoToAddTitles = nil
	}
	return put
}

// DeselectPackagePut builds the update that removes a package from the
// holdings.
func DeselectPackagePut(current rmapi.Package) rmapi.PackagePut {
	selected := false
	return PackagePut(current, validation.PackagePatch{IsSelected: &selected})
}

// ProviderPut merges a validated patch onto the current vendor.
func ProviderPut(current rmapi.Vendor, p validation.ProviderPatch) rmapi.VendorPut {
	put := rmapi.VendorPut{Proxy: writeProxy(current.Proxy, p.Proxy)}
	if p.ProviderToken != nil && p.ProviderToken.Value != nil {
		put.VendorToken = &rmapi.TokenValue{Value: *p.ProviderToken.Value}
	}
	return put
}

// ResourcePut merges a validated patch onto the current membership of a
// title. Title-level fields are only sent for custom titles. A membership
// that ends up deselected loses its customizations.
func ResourcePut(t rmapi.Title, cr rmapi.CustomerResource, p validation.ResourcePatch) rmapi.ResourcePut {
	put := rmapi.ResourcePut{
		IsSelected:          cr.IsSelected,
		IsHidden:            cr.VisibilityData.IsHidden,
		CustomCoverageList:  SortCoverages(cr.CustomCoverageList),
		CustomEmbargoPeriod: nonEmptyEmbargo(cr.CustomEmbargoPeriod),
		CoverageStatement:   cr.CoverageStatement,
		Proxy:               writeProxy(cr.Proxy, p.Proxy),
	}

	if p.IsSelected != nil {
		put.IsSelected = *p.IsSelected
	}
	if hidden := p.IsHidden(); hidden != nil {
		put.IsHidden = *hidden
	}
	if p.CustomCoverages.Set {
		put.CustomCoverageList = []rmapi.Coverage{}
		if c := p.CustomCoverages.Ptr(); c != nil {
			put.CustomCoverageList = patchCoverages(*c)
		}
	}
	if p.CustomEmbargoPeriod.Null {
		put.CustomEmbargoPeriod = nil
	} else if e := p.CustomEmbargoPeriod.Ptr(); e != nil {
		merged := rmapi.EmbargoPeriod{}
		if e.EmbargoUnit != nil {
			merged.EmbargoUnit = *e.EmbargoUnit
		}
		if e.EmbargoValue != nil {
			merged.EmbargoValue = *e.EmbargoValue
		}
		put.CustomEmbargoPeriod = nonEmptyEmbargo(&merged)
	}
	if p.CoverageStatement != nil {
		put.CoverageStatement = *p.CoverageStatement
	}

	if t.IsTitleCustom {
		applyTitleFields(&put, t, cr, p)
	}

	if !put.IsSelected {
		put.IsHidden = false
		put.CustomCoverageList = []rmapi.Coverage{}
		put.CustomEmbargoPeriod = nil
		put.CoverageStatement = ""
	}
	if put.CustomCoverageList == nil {
		put.CustomCoverageList = []rmapi.Coverage{}
	}
	return put
}

func applyTitleFields(put *rmapi.ResourcePut, t rmapi.Title, cr rmapi.CustomerResource, p validation.ResourcePatch) {
	peerReviewed := t.IsPeerReviewed
	put.TitleName = t.TitleName
	put.PubType = domain.PublicationTypeCode(t.PubType)
	put.PublisherName = t.PublisherName
	put.IsPeerReviewed = &peerReviewed
	put.Edition = t.Edition
	put.Description = t.Description
	put.URL = cr.URL
	put.ContributorsList = t.ContributorsList
	put.IdentifiersList = t.IdentifiersList

	if p.Name != nil {
		put.TitleName = *p.Name
	}
	if p.PublicationType != nil {
		put.PubType = domain.PublicationTypeCode(*p.PublicationType)
	}
	if p.PublisherName != nil {
		put.PublisherName = *p.PublisherName
	}
	if p.IsPeerReviewed != nil {
		peerReviewed = *p.IsPeerReviewed
	}
	if p.Edition != nil {
		put.Edition = *p.Edition
	}
	if p.Description != nil {
		put.Description = *p.Description
	}
	if p.URL != nil {
		put.URL = *p.URL
	}
	if p.Contributors != nil {
		put.ContributorsList = encodeContributors(*p.Contributors)
	}
	if p.Identifiers != nil {
		put.IdentifiersList = encodeIdentifiers(*p.Identifiers)
	}
}

// nonEmptyEmbargo turns an empty embargo into nil so it is sent as null.
func nonEmptyEmbargo(e *rmapi.EmbargoPeriod) *rmapi.EmbargoPeriod {
	if e == nil || (e.EmbargoUnit == "" && e.EmbargoValue == 0) {
		return nil
	}
	out := *e
	return &out
}

// DeselectResourcePut builds the update that removes a managed title from a
// package's holdings.
func DeselectResourcePut(t rmapi.Title, cr rmapi.CustomerResource) rmapi.ResourcePut {
	selected := false
	return ResourcePut(t, cr, validation.ResourcePatch{IsSelected: &selected})
}

// SelectResourcePut builds the update that adds a title to a custom package.
// The membership does not exist yet, so there is no snapshot to merge onto.
func SelectResourcePut(t rmapi.Title, url *string) rmapi.ResourcePut {
	selected := true
	cr := rmapi.CustomerResource{TitleID: t.TitleID}
	put := ResourcePut(t, cr, validation.ResourcePatch{IsSelected: &selected, URL: url})
	if url != nil {
		put.URL = *url
	}
	return put
}

// CreatedResourceID derives the id of a newly associated resource from the
// vendor's own package and title, not from the request.
func CreatedResourceID(pkg rmapi.Package, t rmapi.Title) domain.CompositeID {
	return domain.ResourceID(pkg.VendorID, pkg.PackageID, t.TitleID)
}

// TitlePost builds a custom title creation body.
func TitlePost(c validation.TitleCreate) rmapi.TitlePost {
	post := rmapi.TitlePost{
		PubType:            domain.PublicationTypeCode(deref(c.PublicationType)),
		TitleName:          deref(c.Name),
		PublisherName:      deref(c.PublisherName),
		Edition:            deref(c.Edition),
		Description:        deref(c.Description),
		ContributorsList:   encodeContributors(c.Contributors),
		IdentifiersList:    encodeIdentifiers(c.Identifiers),
		CustomCoverageList: []rmapi.Coverage{},
	}
	if c.IsPeerReviewed != nil {
		post.IsPeerReviewed = *c.IsPeerReviewed
	}
	return post
}

// CustomLabelPut writes label id into the root document. A nil patch empties
// the slot, which is how labels are deleted.
func CustomLabelPut(root rmapi.Root, id int, p *validation.CustomLabelPatch) rmapi.RootPut {
	updated := rmapi.CustomLabel{ID: id}
	if p != nil {
		updated.DisplayLabel = strings.TrimSpace(deref(p.DisplayLabel))
		updated.DisplayOnFullTextFinder = p.DisplayOnFullTextFinder != nil && *p.DisplayOnFullTextFinder
		updated.DisplayOnPublicationFinder = p.DisplayOnPublicationFinder != nil && *p.DisplayOnPublicationFinder
	}

	labels := make([]rmapi.CustomLabel, 0, len(root.Labels)+1)
	replaced := false
	for _, l := range root.Labels {
		if l.ID == id {
			labels = append(labels, updated)
			replaced = true
			continue
		}
		labels = append(labels, l)
	}
	if !replaced {
		labels = append(labels, updated)
	}
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].ID < labels[j].ID })

	return rmapi.RootPut{Proxy: rmapi.Proxy{ID: root.Proxy.ID}, Labels: labels}
}

// CustomLabelsPut replaces the whole label set. Labels missing from the list
// are dropped by the vendor.
func CustomLabelsPut(root rmapi.Root, labels []validation.CustomLabelPatch) rmapi.RootPut {
	out := make([]rmapi.CustomLabel, 0, len(labels))
	for _, p := range labels {
		id, _ := p.LabelID()
		out = append(out, rmapi.CustomLabel{
			ID:                         id,
			DisplayLabel:               strings.TrimSpace(deref(p.DisplayLabel)),
			DisplayOnFullTextFinder:    p.DisplayOnFullTextFinder != nil && *p.DisplayOnFullTextFinder,
			DisplayOnPublicationFinder: p.DisplayOnPublicationFinder != nil && *p.DisplayOnPublicationFinder,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return rmapi.RootPut{Proxy: rmapi.Proxy{ID: root.Proxy.ID}, Labels: out}
}

// RootProxyPut switches the account's root proxy.
func RootProxyPut(root rmapi.Root, proxyTypeID string) rmapi.RootPut {
	labels := root.Labels
	if labels == nil {
		labels = []rmapi.CustomLabel{}
	}
	return rmapi.RootPut{Proxy: rmapi.Proxy{ID: proxyTypeID}, Labels: labels}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
