// Package hubspot submits leads through the HubSpot Forms API v3.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/galactis/web/internal/domain/model"
	"github.com/galactis/web/pkg/logger"
)

// Defaults for the Forms API.
const (
	DefaultBaseURL            = "https://api.hsforms.com"
	DefaultSiteURL            = "https://galactis.ai"
	DefaultSubscriptionTypeID = 999
)

const (
	contactObjectType = "0-1"
	pageName          = "Contact Form"
	consentText       = "I agree to receive communications from Galactis.ai"
	communicationText = "Email communications"
	maxResponseBody   = 1 << 20
)

// Client posts leads to one HubSpot form.
type Client struct {
	portalID string
	formID   string

	baseURL            string
	siteURL            string
	subscriptionTypeID int
	development        bool

	http   *http.Client
	logger logger.Logger
}

// New creates a Client for the given portal and form. Either id may be
// empty, in which case Submit reports the client as unconfigured.
func New(portalID, formID string, opts ...Option) *Client {
	c := &Client{
		portalID:           portalID,
		formID:             formID,
		baseURL:            DefaultBaseURL,
		siteURL:            DefaultSiteURL,
		subscriptionTypeID: DefaultSubscriptionTypeID,
		http:               http.DefaultClient,
		logger:             logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// Configured reports whether portal and form ids are set.
func (c *Client) Configured() bool {
	return c.portalID != "" && c.formID != ""
}

// Submit sends lead to HubSpot. An API rejection is reported in the
// Delivery; only transport and encoding failures return an error.
func (c *Client) Submit(ctx context.Context, lead model.Lead) (model.Delivery, error) {
	if !c.Configured() {
		c.logger.Warn(ctx, "hubspot not configured, missing portal or form id")
		if c.development {
			c.logger.Info(ctx, "hubspot submission (dev mode)",
				logger.String("email", lead.Email),
				logger.String("company", lead.Company),
				logger.String("source", lead.Source),
			)
			return model.Delivery{OK: true}, nil
		}
		return model.Delivery{OK: false, Error: errNotConfigured}, nil
	}

	body, err := json.Marshal(c.payload(lead))
	if err != nil {
		return model.Delivery{}, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.submitURL(), bytes.NewReader(body))
	if err != nil {
		return model.Delivery{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Delivery{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error(ctx, "hubspot api error",
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(raw)),
		)
		return model.Delivery{OK: false, Error: fmt.Sprintf("HubSpot API error: %d", resp.StatusCode)}, nil
	}

	var result submitResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			c.logger.Warn(ctx, "hubspot response not json", logger.Error(err))
		}
	}
	contactID := result.ContactID
	if contactID == "" {
		contactID = result.InlineMessage
	}
	return model.Delivery{OK: true, ContactID: contactID}, nil
}

func (c *Client) submitURL() string {
	return fmt.Sprintf("%s/submissions/v3/integration/submit/%s/%s", c.baseURL, c.portalID, c.formID)
}

func (c *Client) payload(lead model.Lead) submission {
	first, last := splitName(lead.Name)

	source := lead.Source
	if source == "" {
		source = "website"
	}
	pageURI := lead.Source
	if pageURI == "" {
		pageURI = c.siteURL
	}

	field := func(name, value string) formField {
		return formField{ObjectTypeID: contactObjectType, Name: name, Value: value}
	}

	return submission{
		Fields: []formField{
			field("firstname", first),
			field("lastname", last),
			field("email", lead.Email),
			field("company", lead.Company),
			field("phone", lead.Phone),
			field("message", lead.Message),
			field("lead_source", source),
		},
		Context: pageContext{PageURI: pageURI, PageName: pageName},
		LegalConsentOptions: legalConsentOptions{
			Consent: consent{
				ConsentToProcess: true,
				Text:             consentText,
				Communications: []communication{{
					Value:              true,
					SubscriptionTypeID: c.subscriptionTypeID,
					Text:               communicationText,
				}},
			},
		},
	}
}

// splitName splits at the first space; a name with no usable first word is
// sent whole as the first name.
func splitName(name string) (first, last string) {
	first, last, _ = strings.Cut(name, " ")
	if first == "" {
		return name, last
	}
	return first, last
}
