package translate

import (
	"strconv"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
)

// View selects per-endpoint rendering differences.
type View int

const (
	// ListView renders an entity inside a collection.
	ListView View = iota
	// ItemView renders an entity fetched on its own.
	ItemView
)

const (
	reasonHiddenByEP  = "Hidden by EP"
	reasonSetBySystem = "Set by system"
)

// HiddenReason derives the visibility reason shown to clients. A package
// hidden by the vendor reads "Set by system" in lists and an empty reason on
// single-item views.
func HiddenReason(v rmapi.VisibilityData, view View) string {
	if v.Reason != reasonHiddenByEP {
		return v.Reason
	}
	if view == ListView {
		return reasonSetBySystem
	}
	return ""
}

func visibility(v rmapi.VisibilityData, view View) Visibility {
	return Visibility{IsHidden: v.IsHidden, Reason: HiddenReason(v, view)}
}

func proxy(p *rmapi.Proxy) *Proxy {
	if p == nil {
		return nil
	}
	return &Proxy{ID: p.ID, Inherited: p.Inherited}
}

func token(t *rmapi.Token) *Token {
	if t == nil {
		return nil
	}
	return &Token{FactName: t.FactName, Prompt: t.Prompt, HelpText: t.HelpText, Value: t.Value}
}

func coverages(list []rmapi.Coverage) []Coverage {
	out := make([]Coverage, 0, len(list))
	for _, c := range list {
		out = append(out, Coverage{BeginCoverage: c.BeginCoverage, EndCoverage: c.EndCoverage})
	}
	return out
}

func embargo(e *rmapi.EmbargoPeriod) *Embargo {
	if e == nil {
		return nil
	}
	return &Embargo{EmbargoUnit: e.EmbargoUnit, EmbargoValue: e.EmbargoValue}
}

func providerID(vendorID int64) string {
	return domain.EncodeID(vendorID)
}

// Provider renders a vendor.
func Provider(v rmapi.Vendor) jsonapi.Resource {
	return jsonapi.Resource{
		ID:   providerID(v.VendorID),
		Type: TypeProviders,
		Attributes: ProviderAttributes{
			Name:                   v.VendorName,
			PackagesTotal:          v.PackagesTotal,
			PackagesSelected:       v.PackagesSelected,
			SupportsCustomPackages: v.IsCustomer,
			ProviderToken:          token(v.VendorToken),
			Proxy:                  proxy(v.Proxy),
		},
		Relationships: map[string]jsonapi.Relationship{
			"packages": jsonapi.NotIncluded(),
		},
	}
}

// Providers renders a page of vendors.
func Providers(list []rmapi.Vendor) []jsonapi.Resource {
	out := make([]jsonapi.Resource, 0, len(list))
	for _, v := range list {
		out = append(out, Provider(v))
	}
	return out
}

// Package renders a package.
func Package(p rmapi.Package, view View) jsonapi.Resource {
	return jsonapi.Resource{
		ID:   domain.PackageID(p.VendorID, p.PackageID).String(),
		Type: TypePackages,
		Attributes: PackageAttributes{
			Name:               p.PackageName,
			PackageID:          p.PackageID,
			ProviderID:         p.VendorID,
			ProviderName:       p.VendorName,
			IsCustom:           p.IsCustom,
			ContentType:        domain.ContentTypeName(p.ContentType),
			TitleCount:         p.TitleCount,
			SelectedCount:      p.SelectedCount,
			IsSelected:         p.IsSelected,
			VisibilityData:     visibility(p.VisibilityData, view),
			CustomCoverage:     Coverage(p.CustomCoverage),
			AllowKbToAddTitles: p.AllowEbscoToAddTitles,
			PackageType:        p.PackageType,
			IsTokenNeeded:      p.IsTokenNeeded,
			Proxy:              proxy(p.Proxy),
			PackageToken:       token(p.PackageToken),
		},
		Relationships: map[string]jsonapi.Relationship{
			"provider":  jsonapi.ToOne(providerID(p.VendorID), TypeProviders),
			"resources": jsonapi.NotIncluded(),
		},
	}
}

// Packages renders a page of packages in list view.
func Packages(list []rmapi.Package) []jsonapi.Resource {
	out := make([]jsonapi.Resource, 0, len(list))
	for _, p := range list {
		out = append(out, Package(p, ListView))
	}
	return out
}

func titleAttributes(t rmapi.Title) TitleAttributes {
	attrs := TitleAttributes{
		Name:            t.TitleName,
		PublisherName:   t.PublisherName,
		IsTitleCustom:   t.IsTitleCustom,
		PublicationType: domain.PublicationTypeName(t.PubType),
		Subjects:        make([]Subject, 0, len(t.SubjectsList)),
		Identifiers:     make([]Identifier, 0, len(t.IdentifiersList)),
		Contributors:    make([]Contributor, 0, len(t.ContributorsList)),
		Edition:         t.Edition,
		Description:     t.Description,
		IsPeerReviewed:  t.IsPeerReviewed,
	}
	for _, s := range t.SubjectsList {
		attrs.Subjects = append(attrs.Subjects, Subject(s))
	}
	for _, id := range t.IdentifiersList {
		attrs.Identifiers = append(attrs.Identifiers, Identifier{
			ID:      id.ID,
			Source:  id.Source,
			Type:    domain.IdentifierTypeName(id.Type),
			Subtype: domain.IdentifierSubtypeName(id.Subtype),
		})
	}
	for _, c := range t.ContributorsList {
		attrs.Contributors = append(attrs.Contributors, Contributor(c))
	}
	return attrs
}

// Title renders a title.
func Title(t rmapi.Title) jsonapi.Resource {
	return jsonapi.Resource{
		ID:         domain.EncodeID(t.TitleID),
		Type:       TypeTitles,
		Attributes: titleAttributes(t),
		Relationships: map[string]jsonapi.Relationship{
			"resources": jsonapi.NotIncluded(),
		},
	}
}

// Titles renders a page of titles.
func Titles(list []rmapi.Title) []jsonapi.Resource {
	out := make([]jsonapi.Resource, 0, len(list))
	for _, t := range list {
		out = append(out, Title(t))
	}
	return out
}

// Resource renders one package membership of a title.
func Resource(t rmapi.Title, cr rmapi.CustomerResource, view View) jsonapi.Resource {
	pkgID := domain.PackageID(cr.VendorID, cr.PackageID).String()
	return jsonapi.Resource{
		ID:   domain.ResourceID(cr.VendorID, cr.PackageID, t.TitleID).String(),
		Type: TypeResources,
		Attributes: ResourceAttributes{
			TitleAttributes:      titleAttributes(t),
			TitleID:              t.TitleID,
			PackageID:            pkgID,
			PackageName:          cr.PackageName,
			PackageType:          cr.PackageType,
			IsPackageCustom:      cr.IsPackageCustom,
			ProviderID:           cr.VendorID,
			ProviderName:         cr.VendorName,
			IsSelected:           cr.IsSelected,
			IsTokenNeeded:        cr.IsTokenNeeded,
			VisibilityData:       visibility(cr.VisibilityData, view),
			ManagedCoverages:     coverages(cr.ManagedCoverageList),
			CustomCoverages:      coverages(cr.CustomCoverageList),
			CoverageStatement:    cr.CoverageStatement,
			ManagedEmbargoPeriod: embargo(cr.ManagedEmbargoPeriod),
			CustomEmbargoPeriod:  embargo(cr.CustomEmbargoPeriod),
			URL:                  cr.URL,
			Proxy:                proxy(cr.Proxy),
		},
		Relationships: map[string]jsonapi.Relationship{
			"package":  jsonapi.ToOne(pkgID, TypePackages),
			"provider": jsonapi.ToOne(providerID(cr.VendorID), TypeProviders),
			"title":    jsonapi.ToOne(domain.EncodeID(t.TitleID), TypeTitles),
		},
	}
}

// Resources renders every package membership of every title in list view.
func Resources(titles []rmapi.Title) []jsonapi.Resource {
	var out []jsonapi.Resource
	for _, t := range titles {
		for _, cr := range t.CustomerResourcesList {
			out = append(out, Resource(t, cr, ListView))
		}
	}
	return out
}

// CustomLabel renders one label slot.
func CustomLabel(l rmapi.CustomLabel) jsonapi.Resource {
	return jsonapi.Resource{
		ID:   strconv.Itoa(l.ID),
		Type: TypeCustomLabels,
		Attributes: CustomLabelAttributes{
			ID:                         l.ID,
			DisplayLabel:               l.DisplayLabel,
			DisplayOnFullTextFinder:    l.DisplayOnFullTextFinder,
			DisplayOnPublicationFinder: l.DisplayOnPublicationFinder,
		},
	}
}

// CustomLabels renders the labels that are not deleted.
func CustomLabels(labels []rmapi.CustomLabel) []jsonapi.Resource {
	out := make([]jsonapi.Resource, 0, len(labels))
	for _, l := range labels {
		if l.DisplayLabel == "" {
			continue
		}
		out = append(out, CustomLabel(l))
	}
	return out
}

// RootProxy renders the account's root proxy.
func RootProxy(root rmapi.Root) jsonapi.Resource {
	return jsonapi.Resource{
		ID:         RootProxyID,
		Type:       TypeRootProxies,
		Attributes: RootProxyAttributes{ID: RootProxyID, ProxyTypeID: root.Proxy.ID},
	}
}

// ProxyTypes renders the proxy type list.
func ProxyTypes(list []rmapi.ProxyType) []jsonapi.Resource {
	out := make([]jsonapi.Resource, 0, len(list))
	for _, pt := range list {
		out = append(out, jsonapi.Resource{
			ID:         pt.ID,
			Type:       TypeProxyTypes,
			Attributes: ProxyTypeAttributes(pt),
		})
	}
	return out
}

// Configuration renders tenant credentials with the api key masked.
func Configuration(cfg domain.TenantConfig, rmapiURL string) jsonapi.Resource {
	return jsonapi.Resource{
		ID:   ConfigurationID,
		Type: TypeConfigurations,
		Attributes: ConfigurationAttributes{
			CustomerID: cfg.CustomerID,
			APIKey:     cfg.MaskedAPIKey(),
			RMAPIURL:   rmapiURL,
		},
	}
}

// Status renders the configuration status.
func Status(valid bool) jsonapi.Resource {
	return jsonapi.Resource{
		ID:         StatusID,
		Type:       TypeStatuses,
		Attributes: StatusAttributes{IsConfigurationValid: valid},
	}
}
