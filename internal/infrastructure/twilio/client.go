package twilio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	twilio "github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Config holds Twilio API configuration
type Config struct {
	AccountSID string
	AuthToken  string
	From       string // sender number or alphanumeric id
	BaseURL    string // overrides https://api.twilio.com, tests only
}

// Client sends SMS through the Twilio Messages API
type Client struct {
	from string
	rest *twilio.RestClient
}

// NewClient creates a new Twilio client
func NewClient(cfg Config) *Client {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	if base, err := url.Parse(cfg.BaseURL); err == nil && base.Host != "" {
		httpClient.Transport = rehost{base: base, next: http.DefaultTransport}
	}

	base := &twilioclient.Client{
		Credentials: twilioclient.NewCredentials(cfg.AccountSID, cfg.AuthToken),
		HTTPClient:  httpClient,
	}
	base.SetAccountSid(cfg.AccountSID)

	return &Client{
		from: cfg.From,
		rest: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username:   cfg.AccountSID,
			Password:   cfg.AuthToken,
			AccountSid: cfg.AccountSID,
			Client:     base,
		}),
	}
}

// SendSMS posts a message and returns its SID
func (c *Client) SendSMS(ctx context.Context, to string, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.from)
	params.SetBody(body)

	log.Printf("[Twilio] Sending SMS to %s (%d chars)", to, len(body))

	msg, err := c.rest.Api.CreateMessage(params)
	if err != nil {
		var apiErr *twilioclient.TwilioRestError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("twilio API error %d: %s", apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("twilio request failed: %w", err)
	}
	if msg.Sid == nil || *msg.Sid == "" {
		return "", errors.New("twilio API returned no message sid")
	}

	status := ""
	if msg.Status != nil {
		status = *msg.Status
	}
	log.Printf("[Twilio] Message %s status: %s", *msg.Sid, status)
	return *msg.Sid, nil
}

// rehost sends every SDK request to base instead of api.twilio.com
type rehost struct {
	base *url.URL
	next http.RoundTripper
}

func (t rehost) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = t.base.Scheme
	r.URL.Host = t.base.Host
	r.Host = t.base.Host
	return t.next.RoundTrip(r)
}

// DryRunSender logs messages instead of sending them. It stands in for the
// client while no Twilio account is configured.
type DryRunSender struct{}

func (DryRunSender) SendSMS(ctx context.Context, to string, body string) (string, error) {
	sid := fmt.Sprintf("DRYRUN-%d", time.Now().UnixNano())
	log.Printf("[Twilio dry-run] %s -> %s: %s", sid, to, body)
	return sid, nil
}
