package normalize

// DocType identifies which legal-document content field to surface.
type DocType string

// Supported document types.
const (
	DocTypePrivacyPolicy        DocType = "privacy-policy"
	DocTypeInformedMinorConsent DocType = "informed-minor-consent-policy"
	DocTypeTermsOfServices      DocType = "terms-of-services"
	DocTypeInformedConsent      DocType = "informed-consent-policy"
	DocTypeCoppaNotice          DocType = "coppa-notice"
	DocTypeHipaaJointNotice     DocType = "hipaa-joint-notice"
	DocTypeConsentToQhin        DocType = "consent-to-qhin"
)

// docTypeFields names the raw fieldData keys backing one document type.
type docTypeFields struct {
	content     string
	lastUpdated string
}

// docTypeTable pairs each document type with its content and last-updated
// date fields. The privacy policy's content lives in the legacy "body" field,
// and two of the date keys drop the "-policy" suffix; both quirks come from
// the CMS schema and must be preserved.
var docTypeTable = map[DocType]docTypeFields{
	DocTypePrivacyPolicy:        {content: "body", lastUpdated: "last-updated-date-privacy-policy"},
	DocTypeInformedMinorConsent: {content: "informed-minor-consent-policy", lastUpdated: "last-updated-date-informed-minor-consent"},
	DocTypeTermsOfServices:      {content: "terms-of-services", lastUpdated: "last-updated-date-terms-of-services"},
	DocTypeInformedConsent:      {content: "informed-consent-policy", lastUpdated: "last-updated-date-informed-consent"},
	DocTypeCoppaNotice:          {content: "coppa-notice", lastUpdated: "last-updated-date-coppa-notice"},
	DocTypeHipaaJointNotice:     {content: "hipaa-joint-notice", lastUpdated: "last-updated-date-hipaa-joint-notice"},
	DocTypeConsentToQhin:        {content: "consent-to-qhin", lastUpdated: "last-updated-date-consent-to-qhin"},
}

// docTypeOrder keeps DocTypes deterministic for route metadata and errors.
var docTypeOrder = []DocType{
	DocTypePrivacyPolicy,
	DocTypeInformedMinorConsent,
	DocTypeTermsOfServices,
	DocTypeInformedConsent,
	DocTypeCoppaNotice,
	DocTypeHipaaJointNotice,
	DocTypeConsentToQhin,
}

// Valid reports whether d is a supported document type.
func (d DocType) Valid() bool {
	_, ok := docTypeTable[d]
	return ok
}

// DocTypes returns every supported document type in a stable order.
func DocTypes() []DocType {
	out := make([]DocType, len(docTypeOrder))
	copy(out, docTypeOrder)
	return out
}
