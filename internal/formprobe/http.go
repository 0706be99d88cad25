package formprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/galactis/web/internal/domain/model"
)

const headerForwardedFor = "X-Forwarded-For"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 64 << 10

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Response is the part of a form reply the probe inspects.
type Response struct {
	Status  int    `json:"-"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Submit posts body as JSON to url with the forwarded client address set.
func (c *HTTPClient) Submit(ctx context.Context, url, ip string, body any) (Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerForwardedFor, ip)

	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	out := Response{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return out, fmt.Errorf("failed to read response body: %w", err)
	}
	// Non-JSON bodies still count by status.
	_ = json.Unmarshal(raw, &out)
	out.Status = resp.StatusCode
	return out, nil
}

// payload builds the n-th valid submission for form.
func payload(form model.FormKind, n int) model.Submission {
	email := fmt.Sprintf("probe+%d@example.com", n)
	if form == model.FormPartner {
		return model.PartnerApplication{
			Intent:          model.PartnerIntent,
			Name:            "Probe Partner",
			Email:           email,
			Company:         "Probe Co",
			PartnerType:     model.PartnerConsulting,
			Regions:         "EMEA",
			BusinessSummary: "Rate limit probe",
		}
	}
	return model.GeneralContact{
		Name:    "Probe Contact",
		Email:   email,
		Company: "Probe Co",
		Message: fmt.Sprintf("Rate limit probe %d", n),
		Source:  "form-probe",
	}
}
