package rmapi

// Proxy is a proxy selection. Inherited is only ever read from the vendor;
// writes always send false.
type Proxy struct {
	ID        string `json:"id"`
	Inherited bool   `json:"inherited"`
}

// Token is an access-token descriptor for a vendor or package.
type Token struct {
	FactName string  `json:"factName"`
	Prompt   string  `json:"prompt"`
	HelpText string  `json:"helpText"`
	Value    *string `json:"value"`
}

// TokenValue is the writable part of a Token.
type TokenValue struct {
	Value string `json:"value"`
}

// VisibilityData is the hidden flag plus the vendor-supplied reason.
type VisibilityData struct {
	IsHidden bool   `json:"isHidden"`
	Reason   string `json:"reason"`
}

// Coverage is a date range in YYYY-MM-DD form. EndCoverage may be empty for
// open-ended ranges.
type Coverage struct {
	BeginCoverage string `json:"beginCoverage"`
	EndCoverage   string `json:"endCoverage"`
}

// EmbargoPeriod is a moving wall, e.g. 6 Months.
type EmbargoPeriod struct {
	EmbargoUnit  string `json:"embargoUnit"`
	EmbargoValue int    `json:"embargoValue"`
}

// Vendor is a provider as returned by the vendor.
type Vendor struct {
	VendorID         int64  `json:"vendorId"`
	VendorName       string `json:"vendorName"`
	PackagesTotal    int    `json:"packagesTotal"`
	PackagesSelected int    `json:"packagesSelected"`
	IsCustomer       bool   `json:"isCustomer"`
	VendorToken      *Token `json:"vendorToken"`
	Proxy            *Proxy `json:"proxy,omitempty"`
}

// VendorList is a page of vendors.
type VendorList struct {
	TotalResults int      `json:"totalResults"`
	Vendors      []Vendor `json:"vendors"`
}

// Package is a package as returned by the vendor.
type Package struct {
	PackageID             int64          `json:"packageId"`
	PackageName           string         `json:"packageName"`
	VendorID              int64          `json:"vendorId"`
	VendorName            string         `json:"vendorName"`
	IsCustom              bool           `json:"isCustom"`
	TitleCount            int            `json:"titleCount"`
	SelectedCount         int            `json:"selectedCount"`
	ContentType           string         `json:"contentType"`
	IsSelected            bool           `json:"isSelected"`
	VisibilityData        VisibilityData `json:"visibilityData"`
	CustomCoverage        Coverage       `json:"customCoverage"`
	AllowEbscoToAddTitles *bool          `json:"allowEbscoToAddTitles,omitempty"`
	PackageType           string         `json:"packageType"`
	IsTokenNeeded         bool           `json:"isTokenNeeded"`
	Proxy                 *Proxy         `json:"proxy,omitempty"`
	PackageToken          *Token         `json:"packageToken,omitempty"`
}

// PackageList is a page of packages.
type PackageList struct {
	TotalResults int       `json:"totalResults"`
	PackagesList []Package `json:"packagesList"`
}

// Identifier is a title identifier. Type and Subtype are numeric codes.
type Identifier struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Subtype int    `json:"subtype"`
	Type    int    `json:"type"`
}

// Contributor is an author, editor or illustrator of a title.
type Contributor struct {
	Type        string `json:"type"`
	Contributor string `json:"contributor"`
}

// Subject is a subject heading of a title.
type Subject struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
}

// CustomerResource is the membership of a title in one package.
type CustomerResource struct {
	TitleID              int64          `json:"titleId"`
	PackageID            int64          `json:"packageId"`
	PackageName          string         `json:"packageName"`
	PackageType          string         `json:"packageType"`
	IsPackageCustom      bool           `json:"isPackageCustom"`
	VendorID             int64          `json:"vendorId"`
	VendorName           string         `json:"vendorName"`
	LocationID           int64          `json:"locationId"`
	IsSelected           bool           `json:"isSelected"`
	IsTokenNeeded        bool           `json:"isTokenNeeded"`
	VisibilityData       VisibilityData `json:"visibilityData"`
	ManagedCoverageList  []Coverage     `json:"managedCoverageList"`
	CustomCoverageList   []Coverage     `json:"customCoverageList"`
	CoverageStatement    string         `json:"coverageStatement"`
	ManagedEmbargoPeriod *EmbargoPeriod `json:"managedEmbargoPeriod"`
	CustomEmbargoPeriod  *EmbargoPeriod `json:"customEmbargoPeriod"`
	URL                  string         `json:"url"`
	Proxy                *Proxy         `json:"proxy,omitempty"`
}

// Title is a title with its package memberships. For a single resource read
// CustomerResourcesList holds exactly the requested membership.
type Title struct {
	TitleID               int64              `json:"titleId"`
	TitleName             string             `json:"titleName"`
	PublisherName         string             `json:"publisherName"`
	IdentifiersList       []Identifier       `json:"identifiersList"`
	SubjectsList          []Subject          `json:"subjectsList"`
	IsTitleCustom         bool               `json:"isTitleCustom"`
	PubType               string             `json:"pubType"`
	Edition               string             `json:"edition"`
	Description           string             `json:"description"`
	IsPeerReviewed        bool               `json:"isPeerReviewed"`
	ContributorsList      []Contributor      `json:"contributorsList"`
	CustomerResourcesList []CustomerResource `json:"customerResourcesList"`
}

// Membership returns the customer resource for the given package, if present.
func (t *Title) Membership(vendorID, packageID int64) (*CustomerResource, bool) {
	for i := range t.CustomerResourcesList {
		cr := &t.CustomerResourcesList[i]
		if cr.VendorID == vendorID && cr.PackageID == packageID {
			return cr, true
		}
	}
	return nil, false
}

// TitleList is a page of titles.
type TitleList struct {
	TotalResults int     `json:"totalResults"`
	Titles       []Title `json:"titles"`
}

// CustomLabel is one of the five fixed label slots. An empty DisplayLabel
// means the slot is deleted.
type CustomLabel struct {
	ID                         int    `json:"id"`
	DisplayLabel               string `json:"displayLabel"`
	DisplayOnFullTextFinder    bool   `json:"displayOnFullTextFinder"`
	DisplayOnPublicationFinder bool   `json:"displayOnPublicationFinder"`
}

// Root is the account-level settings document.
type Root struct {
	Proxy  Proxy         `json:"proxy"`
	Labels []CustomLabel `json:"labels"`
}

// ProxyType is one entry of the tenant-independent proxy list.
type ProxyType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URLMask string `json:"urlMask"`
}

// TitleCreated is the response to a custom title creation.
type TitleCreated struct {
	TitleID int64 `json:"titleId"`
}

// VendorPut is the body of a vendor update.
type VendorPut struct {
	VendorToken *TokenValue `json:"vendorToken,omitempty"`
	Proxy       *Proxy      `json:"proxy"`
}

// PackagePut is the full representation sent on a package update.
// CustomCoverage is sent as null when the package carries no custom coverage.
type PackagePut struct {
	IsSelected            bool        `json:"isSelected"`
	IsHidden              bool        `json:"isHidden"`
	CustomCoverage        *Coverage   `json:"customCoverage"`
	AllowEbscoToAddTitles *bool       `json:"allowEbscoToAddTitles,omitempty"`
	Proxy                 *Proxy      `json:"proxy,omitempty"`
	PackageToken          *TokenValue `json:"packageToken,omitempty"`
	PackageName           string      `json:"packageName,omitempty"`
	ContentType           int         `json:"contentType,omitempty"`
}

// ResourcePut is the full representation sent on a resource update. The
// title-level fields are only sent for custom titles.
type ResourcePut struct {
	IsSelected          bool           `json:"isSelected"`
	IsHidden            bool           `json:"isHidden"`
	CustomCoverageList  []Coverage     `json:"customCoverageList"`
	CustomEmbargoPeriod *EmbargoPeriod `json:"customEmbargoPeriod"`
	CoverageStatement   string         `json:"coverageStatement"`
	Proxy               *Proxy         `json:"proxy,omitempty"`
	URL                 string         `json:"url,omitempty"`

	TitleName        string        `json:"titleName,omitempty"`
	PubType          string        `json:"pubType,omitempty"`
	PublisherName    string        `json:"publisherName,omitempty"`
	IsPeerReviewed   *bool         `json:"isPeerReviewed,omitempty"`
	Edition          string        `json:"edition,omitempty"`
	Description      string        `json:"description,omitempty"`
	ContributorsList []Contributor `json:"contributorsList,omitempty"`
	IdentifiersList  []Identifier  `json:"identifiersList,omitempty"`
}

// TitlePost is the body of a custom title creation.
type TitlePost struct {
	TitleName          string        `json:"titleName"`
	PubType            string        `json:"pubType"`
	PublisherName      string        `json:"publisherName,omitempty"`
	IsPeerReviewed     bool          `json:"isPeerReviewed"`
	Edition            string        `json:"edition,omitempty"`
	Description        string        `json:"description,omitempty"`
	URL                string        `json:"url,omitempty"`
	ContributorsList   []Contributor `json:"contributorsList"`
	IdentifiersList    []Identifier  `json:"identifiersList"`
	CustomCoverageList []Coverage    `json:"customCoverageList"`
}

// RootPut is the full account-level settings document sent on update.
type RootPut struct {
	Proxy  Proxy         `json:"proxy"`
	Labels []CustomLabel `json:"labels"`
}
