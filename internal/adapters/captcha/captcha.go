// Package captcha is a single siteverify client shared by every challenge provider
package captcha

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leadintake/internal/platform/logger"
)

const (
	defaultTimeout = 8 * time.Second
	maxBodyBytes   = 64 << 10

	// CodeNetworkError marks a verify call that never produced a response
	CodeNetworkError = "network-error"
)

// Descriptor names a provider and its siteverify endpoint
type Descriptor struct {
	Name      string
	VerifyURL string
}

// Known providers. Both speak the same form-encoded siteverify protocol
var (
	Turnstile = Descriptor{Name: "turnstile", VerifyURL: "https://challenges.cloudflare.com/turnstile/v0/siteverify"}
	Recaptcha = Descriptor{Name: "recaptcha", VerifyURL: "https://www.google.com/recaptcha/api/siteverify"}
)

// Result is the normalized verify response
// ErrorCodes is never nil so callers can append and serialize it as-is
type Result struct {
	OK         bool
	ErrorCodes []string
	Raw        map[string]any
}

// Options configures the Client
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
	// VerifyURL overrides the descriptor endpoint (tests, regional proxies)
	VerifyURL string
}

// Client posts tokens to one provider. Stateless and safe for concurrent use
type Client struct {
	desc Descriptor
	http *http.Client
	log  logger.Logger
}

// NewClient builds a Client for d
func NewClient(d Descriptor, o Options) *Client {
	if o.VerifyURL != "" {
		d.VerifyURL = o.VerifyURL
	}
	hc := o.HTTPClient
	if hc == nil {
		if o.Timeout <= 0 {
			o.Timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{desc: d, http: hc, log: *logger.Named("captcha." + d.Name)}
}

// Name returns the provider name
func (c *Client) Name() string { return c.desc.Name }

type siteverifyReply struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify performs exactly one siteverify call. It never returns an error:
// transport failures become CodeNetworkError and unreadable replies a bare failure
func (c *Client) Verify(ctx context.Context, secret, token, remoteIP string) Result {
	form := url.Values{}
	form.Set("secret", secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.desc.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		c.log.Error().Err(err).Msg("build verify request")
		return Result{ErrorCodes: []string{CodeNetworkError}}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("verify request failed")
		return Result{ErrorCodes: []string{CodeNetworkError}}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.log.Warn().Err(err).Int("status", resp.StatusCode).Msg("verify reply read failed")
		return Result{ErrorCodes: []string{CodeNetworkError}}
	}

	var reply siteverifyReply
	if err := json.Unmarshal(body, &reply); err != nil {
		c.log.Warn().Err(err).Int("status", resp.StatusCode).Msg("verify reply not json")
		return Result{ErrorCodes: []string{}}
	}
	var raw map[string]any
	_ = json.Unmarshal(body, &raw)

	codes := append([]string{}, reply.ErrorCodes...)
	return Result{OK: reply.Success, ErrorCodes: codes, Raw: raw}
}
