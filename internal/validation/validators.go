package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/kb-gateway/internal/domain"
)

// PackageContext is what the package validator needs to know about the
// stored package.
type PackageContext struct {
	IsCustom bool
}

// ValidatePackagePatch checks a package update. Identity fields come first,
// then the selection gate, then value formats.
func ValidatePackagePatch(p PackagePatch, ctx PackageContext) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if ctx.IsCustom {
		if p.Name != nil {
			if strings.TrimSpace(*p.Name) == "" {
				errs.Add("name", "can not be blank")
			} else {
				checkLength(&errs, "name", *p.Name, MaxNameLength)
			}
		}
		if p.ContentType != nil && !domain.IsContentTypeName(*p.ContentType) && !domain.IsContentTypeCode(*p.ContentType) {
			errs.Add("contentType", "is not a valid content type")
		}
	} else {
		if p.Name != nil {
			errs.Add("name", "can not be updated on a managed package")
		}
		if p.ContentType != nil {
			errs.Add("contentType", "can not be updated on a managed package")
		}
	}

	if p.IsSelected == nil || !*p.IsSelected {
		if c := p.CustomCoverage.Ptr(); c != nil {
			if set(c.BeginCoverage) {
				errs.Add("beginCoverage", mustBeAbsent)
			}
			if set(c.EndCoverage) {
				errs.Add("endCoverage", mustBeAbsent)
			}
		}
		if isTrue(p.IsHidden()) {
			errs.Add("isHidden", mustBeAbsent)
		}
		if isTrue(p.AllowKbToAddTitles) {
			errs.Add("allowKbToAddTitles", mustBeAbsent)
		}
		checkProxy(&errs, p.Proxy)
		checkToken(&errs, "packageToken", p.PackageToken)
		return errs
	}

	if c := p.CustomCoverage.Ptr(); c != nil {
		checkCoverage(&errs, *c)
	}
	checkProxy(&errs, p.Proxy)
	checkToken(&errs, "packageToken", p.PackageToken)
	return errs
}

// ValidateProviderPatch checks a provider update.
func ValidateProviderPatch(p ProviderPatch) domain.ValidationErrors {
	var errs domain.ValidationErrors
	checkToken(&errs, "providerToken", p.ProviderToken)
	checkProxy(&errs, p.Proxy)
	return errs
}

// ResourceContext is what the resource validator needs to know about the
// stored resource.
type ResourceContext struct {
	IsTitleCustom bool
}

// ValidateResourcePatch checks a resource update. Title-level fields are
// checked first, in declaration order, then the selection gate over the
// package-membership fields.
func ValidateResourcePatch(p ResourcePatch, ctx ResourceContext) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if ctx.IsTitleCustom {
		checkCustomTitleFields(&errs, p)
	} else {
		const managed = "can not be updated on a managed title"
		if p.Name != nil {
			errs.Add("titleName", managed)
		}
		if p.IsPeerReviewed != nil {
			errs.Add("isPeerReviewed", managed)
		}
		if p.PublicationType != nil {
			errs.Add("pubType", managed)
		}
		if p.PublisherName != nil {
			errs.Add("publisherName", managed)
		}
		if p.Edition != nil {
			errs.Add("edition", managed)
		}
		if p.Description != nil {
			errs.Add("description", managed)
		}
		if p.URL != nil {
			errs.Add("url", managed)
		}
	}

	if p.IsSelected == nil || !*p.IsSelected {
		if isTrue(p.IsHidden()) {
			errs.Add("isHidden", mustBeAbsent)
		}
		if c := p.CustomCoverages.Ptr(); c != nil && len(*c) > 0 {
			errs.Add("customCoverageList", mustBeAbsent)
		}
		if e := p.CustomEmbargoPeriod.Ptr(); e != nil {
			if set(e.EmbargoUnit) {
				errs.Add("embargoUnit", mustBeAbsent)
			}
			if e.EmbargoValue != nil && *e.EmbargoValue != 0 {
				errs.Add("embargoValue", mustBeAbsent)
			}
		}
		if set(p.CoverageStatement) {
			errs.Add("coverageStatement", mustBeAbsent)
		}
		checkProxy(&errs, p.Proxy)
		return errs
	}

	if c := p.CustomCoverages.Ptr(); c != nil {
		checkCoverageList(&errs, *c)
	}
	checkEmbargo(&errs, p.CustomEmbargoPeriod.Ptr())
	if p.CoverageStatement != nil {
		checkLength(&errs, "coverageStatement", *p.CoverageStatement, MaxCoverageStatementLength)
	}
	checkProxy(&errs, p.Proxy)
	return errs
}

func checkCustomTitleFields(errs *domain.ValidationErrors, p ResourcePatch) {
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			errs.Add("titleName", "can not be blank")
		} else {
			checkLength(errs, "titleName", *p.Name, MaxNameLength)
		}
	}
	checkPublicationType(errs, "pubType", p.PublicationType)
	if p.PublisherName != nil {
		checkLength(errs, "publisherName", *p.PublisherName, MaxPublisherNameLength)
	}
	if p.Edition != nil {
		checkLength(errs, "edition", *p.Edition, MaxEditionLength)
	}
	if p.Description != nil {
		checkLength(errs, "description", *p.Description, MaxDescriptionLength)
	}
	checkURL(errs, "url", p.URL)
	if p.Contributors != nil {
		checkContributors(errs, *p.Contributors)
	}
	if p.Identifiers != nil {
		checkIdentifiers(errs, *p.Identifiers)
	}
}

// ValidateResourceCreate checks a resource creation request. The returned
// ids are only meaningful when no errors are returned.
func ValidateResourceCreate(c ResourceCreate) (domain.CompositeID, int64, domain.ValidationErrors) {
	var errs domain.ValidationErrors

	pkg, err := domain.DecodeID(c.PackageID, 2)
	if err != nil {
		errs.Add("packageId", idDetail(err))
	}
	titleID, err := domain.DecodeTitleID(c.TitleID)
	if err != nil {
		errs.Add("titleId", idDetail(err))
	}
	checkURL(&errs, "url", c.URL)
	return pkg, titleID, errs
}

// ValidateTitleCreate checks a custom title creation request.
func ValidateTitleCreate(c TitleCreate) (domain.CompositeID, domain.ValidationErrors) {
	var errs domain.ValidationErrors

	switch {
	case c.Name == nil || strings.TrimSpace(*c.Name) == "":
		errs.Add("name", "can not be blank")
	default:
		checkLength(&errs, "name", *c.Name, MaxNameLength)
	}
	if c.PublicationType == nil || *c.PublicationType == "" {
		errs.Add("publicationType", "can not be blank")
	} else {
		checkPublicationType(&errs, "publicationType", c.PublicationType)
	}
	if c.PublisherName != nil {
		checkLength(&errs, "publisherName", *c.PublisherName, MaxPublisherNameLength)
	}
	if c.Edition != nil {
		checkLength(&errs, "edition", *c.Edition, MaxEditionLength)
	}
	if c.Description != nil {
		checkLength(&errs, "description", *c.Description, MaxDescriptionLength)
	}
	checkContributors(&errs, c.Contributors)
	checkIdentifiers(&errs, c.Identifiers)

	pkg, err := domain.DecodeID(c.PackageID, 2)
	if err != nil {
		errs.Add("packageId", idDetail(err))
	}
	return pkg, errs
}

// ParseLabelID checks a custom label path id.
func ParseLabelID(pathID string) (int, domain.ValidationErrors) {
	var errs domain.ValidationErrors
	id, err := strconv.Atoi(pathID)
	if err != nil || id < MinCustomLabelID || id > MaxCustomLabelID {
		errs.Add("id", fmt.Sprintf("must be an integer between %d and %d", MinCustomLabelID, MaxCustomLabelID))
	}
	return id, errs
}

// ValidateCustomLabel checks an update of label id against its current
// display label. A label whose current display label is empty is deleted and
// yields domain.ErrLabelDeleted. A nil patch checks a deletion.
func ValidateCustomLabel(id int, p *CustomLabelPatch, current string) error {
	var errs domain.ValidationErrors

	if p != nil {
		if payloadID, ok := p.LabelID(); !ok || payloadID != id {
			errs.Add("id", "must match the custom label id in the path")
		}
	}
	if current == "" {
		return fmt.Errorf("custom label %d: %w", id, domain.ErrLabelDeleted)
	}
	if p == nil {
		return errs.Err()
	}

	checkLabelFields(&errs, *p)
	return errs.Err()
}

// ValidateCustomLabelSet checks a full replacement of the label slots. Every
// entry must carry a distinct id in range and a complete set of fields.
func ValidateCustomLabelSet(labels []CustomLabelPatch) domain.ValidationErrors {
	var errs domain.ValidationErrors
	seen := make(map[int]struct{}, len(labels))

	if len(labels) > MaxCustomLabelID {
		errs.Add("customLabels", fmt.Sprintf("can not contain more than %d labels", MaxCustomLabelID))
	}
	for _, l := range labels {
		id, ok := l.LabelID()
		switch {
		case !ok || id < MinCustomLabelID || id > MaxCustomLabelID:
			errs.Add("id", fmt.Sprintf("must be an integer between %d and %d", MinCustomLabelID, MaxCustomLabelID))
		default:
			if _, dup := seen[id]; dup {
				errs.Add("id", "must be unique")
			}
			seen[id] = struct{}{}
		}
		checkLabelFields(&errs, l)
	}
	return errs
}

func checkLabelFields(errs *domain.ValidationErrors, p CustomLabelPatch) {
	switch {
	case p.DisplayLabel == nil || strings.TrimSpace(*p.DisplayLabel) == "":
		errs.Add("displayLabel", "can not be blank")
	default:
		checkLength(errs, "displayLabel", *p.DisplayLabel, MaxCustomLabelLength)
	}
	if p.DisplayOnFullTextFinder == nil {
		errs.Add("displayOnFullTextFinder", "can not be null")
	}
	if p.DisplayOnPublicationFinder == nil {
		errs.Add("displayOnPublicationFinder", "can not be null")
	}
}

// ValidateRootProxy checks a root proxy update against the proxy types the
// tenant may choose from.
func ValidateRootProxy(p RootProxyPatch, proxyTypeIDs []string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if p.ProxyTypeID == nil || strings.TrimSpace(*p.ProxyTypeID) == "" {
		errs.Add("proxyTypeId", "can not be blank")
		return errs
	}
	for _, id := range proxyTypeIDs {
		if strings.EqualFold(id, *p.ProxyTypeID) {
			return errs
		}
	}
	errs.Add("proxyTypeId", "is not a valid proxy type")
	return errs
}

// ValidateConfiguration checks submitted tenant credentials.
func ValidateConfiguration(p ConfigurationPatch) domain.ValidationErrors {
	var errs domain.ValidationErrors
	p.CustomerID = strings.TrimSpace(p.CustomerID)
	p.APIKey = strings.TrimSpace(p.APIKey)

	err := validate.Struct(p)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "CustomerID":
			errs.Add("customerId", "can not be blank")
		case "APIKey":
			errs.Add("apiKey", "can not be blank")
		}
	}
	return errs
}

func idDetail(err error) string {
	var malformed *domain.MalformedIDError
	if errors.As(err, &malformed) {
		return fmt.Sprintf("has invalid format. Expected %d segments", malformed.Expected)
	}
	return "is not a valid id"
}
