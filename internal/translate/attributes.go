package translate

// JSON:API resource types.
const (
	TypeProviders      = "providers"
	TypePackages       = "packages"
	TypeResources      = "resources"
	TypeTitles         = "titles"
	TypeCustomLabels   = "customLabels"
	TypeRootProxies    = "rootProxies"
	TypeProxyTypes     = "proxyTypes"
	TypeConfigurations = "configurations"
	TypeStatuses       = "statuses"
)

// Fixed ids of singleton resources.
const (
	RootProxyID     = "root-proxy"
	ConfigurationID = "configuration"
	StatusID        = "status"
)

// Visibility is the hidden flag and its reason. Reason is always rendered,
// even when empty.
type Visibility struct {
	IsHidden bool   `json:"isHidden"`
	Reason   string `json:"reason"`
}

// Proxy is a proxy selection.
type Proxy struct {
	ID        string `json:"id"`
	Inherited bool   `json:"inherited"`
}

// Token is an access token descriptor.
type Token struct {
	FactName string  `json:"factName"`
	Prompt   string  `json:"prompt"`
	HelpText string  `json:"helpText"`
	Value    *string `json:"value"`
}

// Coverage is a date range.
type Coverage struct {
	BeginCoverage string `json:"beginCoverage"`
	EndCoverage   string `json:"endCoverage"`
}

// Embargo is an embargo period.
type Embargo struct {
	EmbargoUnit  string `json:"embargoUnit"`
	EmbargoValue int    `json:"embargoValue"`
}

// Identifier is a title identifier with display type names.
type Identifier struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

// Contributor is a title contributor.
type Contributor struct {
	Type        string `json:"type"`
	Contributor string `json:"contributor"`
}

// Subject is a subject heading.
type Subject struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
}

// ProviderAttributes are the attributes of a providers resource.
type ProviderAttributes struct {
	Name                   string `json:"name"`
	PackagesTotal          int    `json:"packagesTotal"`
	PackagesSelected       int    `json:"packagesSelected"`
	SupportsCustomPackages bool   `json:"supportsCustomPackages"`
	ProviderToken          *Token `json:"providerToken,omitempty"`
	Proxy                  *Proxy `json:"proxy,omitempty"`
}

// PackageAttributes are the attributes of a packages resource.
type PackageAttributes struct {
	Name               string     `json:"name"`
	PackageID          int64      `json:"packageId"`
	ProviderID         int64      `json:"providerId"`
	ProviderName       string     `json:"providerName"`
	IsCustom           bool       `json:"isCustom"`
	ContentType        string     `json:"contentType"`
	TitleCount         int        `json:"titleCount"`
	SelectedCount      int        `json:"selectedCount"`
	IsSelected         bool       `json:"isSelected"`
	VisibilityData     Visibility `json:"visibilityData"`
	CustomCoverage     Coverage   `json:"customCoverage"`
	AllowKbToAddTitles *bool      `json:"allowKbToAddTitles,omitempty"`
	PackageType        string     `json:"packageType"`
	IsTokenNeeded      bool       `json:"isTokenNeeded"`
	Proxy              *Proxy     `json:"proxy,omitempty"`
	PackageToken       *Token     `json:"packageToken,omitempty"`
}

// TitleAttributes are the attributes of a titles resource.
type TitleAttributes struct {
	Name            string        `json:"name"`
	PublisherName   string        `json:"publisherName"`
	IsTitleCustom   bool          `json:"isTitleCustom"`
	PublicationType string        `json:"publicationType"`
	Subjects        []Subject     `json:"subjects"`
	Identifiers     []Identifier  `json:"identifiers"`
	Contributors    []Contributor `json:"contributors"`
	Edition         string        `json:"edition"`
	Description     string        `json:"description"`
	IsPeerReviewed  bool          `json:"isPeerReviewed"`
}

// ResourceAttributes are the attributes of a resources resource: the title
// attributes plus those of one package membership.
type ResourceAttributes struct {
	TitleAttributes

	TitleID              int64      `json:"titleId"`
	PackageID            string     `json:"packageId"`
	PackageName          string     `json:"packageName"`
	PackageType          string     `json:"packageType"`
	IsPackageCustom      bool       `json:"isPackageCustom"`
	ProviderID           int64      `json:"providerId"`
	ProviderName         string     `json:"providerName"`
	IsSelected           bool       `json:"isSelected"`
	IsTokenNeeded        bool       `json:"isTokenNeeded"`
	VisibilityData       Visibility `json:"visibilityData"`
	ManagedCoverages     []Coverage `json:"managedCoverages"`
	CustomCoverages      []Coverage `json:"customCoverages"`
	CoverageStatement    string     `json:"coverageStatement"`
	ManagedEmbargoPeriod *Embargo   `json:"managedEmbargoPeriod"`
	CustomEmbargoPeriod  *Embargo   `json:"customEmbargoPeriod"`
	URL                  string     `json:"url"`
	Proxy                *Proxy     `json:"proxy,omitempty"`
}

// CustomLabelAttributes are the attributes of a customLabels resource.
type CustomLabelAttributes struct {
	ID                         int    `json:"id"`
	DisplayLabel               string `json:"displayLabel"`
	DisplayOnFullTextFinder    bool   `json:"displayOnFullTextFinder"`
	DisplayOnPublicationFinder bool   `json:"displayOnPublicationFinder"`
}

// RootProxyAttributes are the attributes of the rootProxies singleton.
type RootProxyAttributes struct {
	ID          string `json:"id"`
	ProxyTypeID string `json:"proxyTypeId"`
}

// ProxyTypeAttributes are the attributes of a proxyTypes resource.
type ProxyTypeAttributes struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URLMask string `json:"urlMask"`
}

// ConfigurationAttributes are the attributes of the configurations
// singleton. APIKey is always masked.
type ConfigurationAttributes struct {
	CustomerID string `json:"customerId"`
	APIKey     string `json:"apiKey"`
	RMAPIURL   string `json:"rmapiBaseUrl"`
}

// StatusAttributes are the attributes of the statuses singleton.
type StatusAttributes struct {
	IsConfigurationValid bool `json:"isConfigurationValid"`
}
