package domain

import "strings"

// ContentTypeUnknownCode is the numeric write code used for any content type
// that does not resolve. It doubles as the code of the "Unknown" display value.
const ContentTypeUnknownCode = 6

// PublicationTypeUnspecified is the write fallback for publication types.
const PublicationTypeUnspecified = "unspecified"

type contentType struct {
	code    string
	display string
	number  int
}

var contentTypes = []contentType{
	{"aggregatedfulltext", "Aggregated Full Text", 1},
	{"abstractandindex", "Abstract and Index", 2},
	{"ebook", "E-Book", 3},
	{"ejournal", "E-Journal", 4},
	{"print", "Print", 5},
	{"unknown", "Unknown", ContentTypeUnknownCode},
	{"onlinereference", "Online Reference", 7},
}

var publicationTypes = [][2]string{
	{"all", "All"},
	{"audiobook", "Audiobook"},
	{"book", "Book"},
	{"bookseries", "Book Series"},
	{"database", "Database"},
	{"journal", "Journal"},
	{"newsletter", "Newsletter"},
	{"newspaper", "Newspaper"},
	{"proceedings", "Proceedings"},
	{"report", "Report"},
	{"streamingaudio", "Streaming Audio"},
	{"streamingvideo", "Streaming Video"},
	{"thesisdissertation", "Thesis & Dissertation"},
	{"website", "Website"},
	{"unspecified", "Unspecified"},
}

var identifierTypes = []string{
	"ISSN", "ISBN", "TSDID", "SPID", "EjsJournalID",
	"NewsbankID", "ZDBID", "EPBookID", "Mid", "BHM",
}

var identifierSubtypes = []string{
	"Empty", "Print", "Online", "Preceding",
	"Succeeding", "Regional", "Linking", "Invalid",
}

var (
	contentTypeByCode      = map[string]contentType{}
	contentTypeByDisplay   = map[string]contentType{}
	publicationByCode      = map[string]string{}
	publicationByDisplay   = map[string]string{}
	identifierTypeCodes    = map[string]int{}
	identifierSubtypeCodes = map[string]int{}
)

func init() {
	for _, ct := range contentTypes {
		contentTypeByCode[ct.code] = ct
		contentTypeByDisplay[normalize(ct.display)] = ct
	}
	for _, pt := range publicationTypes {
		publicationByCode[pt[0]] = pt[1]
		publicationByDisplay[normalize(pt[1])] = pt[0]
	}
	for i, name := range identifierTypes {
		identifierTypeCodes[normalize(name)] = i
	}
	for i, name := range identifierSubtypes {
		identifierSubtypeCodes[normalize(name)] = i
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContentTypeName maps a vendor content type code to its display value,
// falling back to "Unknown".
func ContentTypeName(code string) string {
	if ct, ok := contentTypeByCode[normalize(code)]; ok {
		return ct.display
	}
	return contentTypeByCode["unknown"].display
}

// ContentTypeFromName maps a display value back to its vendor code,
// falling back to "unknown".
func ContentTypeFromName(display string) string {
	if ct, ok := contentTypeByDisplay[normalize(display)]; ok {
		return ct.code
	}
	return "unknown"
}

// ContentTypeNumber maps a display value to the numeric code used in writes,
// falling back to ContentTypeUnknownCode.
func ContentTypeNumber(display string) int {
	if ct, ok := contentTypeByDisplay[normalize(display)]; ok {
		return ct.number
	}
	return ContentTypeUnknownCode
}

// IsContentTypeName reports whether display is a declared display value.
func IsContentTypeName(display string) bool {
	_, ok := contentTypeByDisplay[normalize(display)]
	return ok
}

// IsContentTypeCode reports whether code is a declared vendor code.
func IsContentTypeCode(code string) bool {
	_, ok := contentTypeByCode[normalize(code)]
	return ok
}

// ContentTypeCodes lists the vendor codes in declaration order.
func ContentTypeCodes() []string {
	codes := make([]string, len(contentTypes))
	for i, ct := range contentTypes {
		codes[i] = ct.code
	}
	return codes
}

// PublicationTypeName maps a vendor publication type to its display value.
// Unrecognized values pass through unchanged.
func PublicationTypeName(code string) string {
	if display, ok := publicationByCode[normalize(code)]; ok {
		return display
	}
	return code
}

// PublicationTypeCode maps a display value to the vendor code, falling back
// to PublicationTypeUnspecified.
func PublicationTypeCode(display string) string {
	if code, ok := publicationByDisplay[normalize(display)]; ok {
		return code
	}
	if _, ok := publicationByCode[normalize(display)]; ok {
		return normalize(display)
	}
	return PublicationTypeUnspecified
}

// IsPublicationType reports whether value is a declared code or display value.
func IsPublicationType(value string) bool {
	n := normalize(value)
	if _, ok := publicationByCode[n]; ok {
		return true
	}
	_, ok := publicationByDisplay[n]
	return ok
}

// IsPublicationTypeCode reports whether code is a declared vendor code.
func IsPublicationTypeCode(code string) bool {
	_, ok := publicationByCode[normalize(code)]
	return ok
}

// PublicationTypeCodes lists the vendor codes in declaration order.
func PublicationTypeCodes() []string {
	codes := make([]string, len(publicationTypes))
	for i, pt := range publicationTypes {
		codes[i] = pt[0]
	}
	return codes
}

// IdentifierTypeName renders a numeric identifier type; unknown values
// render as "".
func IdentifierTypeName(code int) string {
	if code < 0 || code >= len(identifierTypes) {
		return ""
	}
	return identifierTypes[code]
}

// IdentifierTypeCode resolves an identifier type name. There is no fallback.
func IdentifierTypeCode(name string) (int, bool) {
	code, ok := identifierTypeCodes[normalize(name)]
	return code, ok
}

// IdentifierSubtypeName renders a numeric identifier subtype; unknown values
// render as "".
func IdentifierSubtypeName(code int) string {
	if code < 0 || code >= len(identifierSubtypes) {
		return ""
	}
	return identifierSubtypes[code]
}

// IdentifierSubtypeCode resolves an identifier subtype name. There is no
// fallback.
func IdentifierSubtypeCode(name string) (int, bool) {
	code, ok := identifierSubtypeCodes[normalize(name)]
	return code, ok
}
