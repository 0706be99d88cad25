package hubspot

type submission struct {
	Fields              []formField         `json:"fields"`
	Context             pageContext         `json:"context"`
	LegalConsentOptions legalConsentOptions `json:"legalConsentOptions"`
}

type formField struct {
	ObjectTypeID string `json:"objectTypeId"`
	Name         string `json:"name"`
	Value        string `json:"value"`
}

type pageContext struct {
	PageURI  string `json:"pageUri"`
	PageName string `json:"pageName"`
	Hutk     string `json:"hutk"`
}

type legalConsentOptions struct {
	Consent consent `json:"consent"`
}

type consent struct {
	ConsentToProcess bool            `json:"consentToProcess"`
	Text             string          `json:"text"`
	Communications   []communication `json:"communications"`
}

type communication struct {
	Value              bool   `json:"value"`
	SubscriptionTypeID int    `json:"subscriptionTypeId"`
	Text               string `json:"text"`
}

type submitResponse struct {
	ContactID     string `json:"contactId"`
	InlineMessage string `json:"inlineMessage"`
}
