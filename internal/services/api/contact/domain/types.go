// Package domain defines the lead submission and verification types for the contact API
package domain

// LeadSubmission is one parsed contact form post
// built per request and never mutated after parsing
type LeadSubmission struct {
	Name    string
	Email   string
	Phone   string
	Message string

	TurnstileToken string
	RecaptchaToken string
	Honeypot       string
}

// Lead is the part of a submission that goes into the notification
type Lead struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Lead returns the notification view of the submission
func (s LeadSubmission) Lead() Lead {
	return Lead{Name: s.Name, Email: s.Email, Phone: s.Phone, Message: s.Message}
}

// VerifyResult is one provider's answer; ErrorCodes is never nil
type VerifyResult struct {
	OK         bool
	ErrorCodes []string
}

// Provider names the stage credited with a verification outcome
type Provider string

// Providers
const (
	ProviderTurnstile Provider = "turnstile"
	ProviderRecaptcha Provider = "recaptcha"
	ProviderHoneypot  Provider = "honeypot"
	ProviderNone      Provider = "none"
)

// Reason is the fixed vocabulary recorded per cascade stage
type Reason string

// Reasons
const (
	ReasonTurnstilePass          Reason = "turnstile-pass"
	ReasonTurnstileTestMode      Reason = "turnstile-test-mode"
	ReasonTurnstileNotConfigured Reason = "turnstile-not-configured"
	ReasonTurnstileMissingToken  Reason = "turnstile-missing-token"
	ReasonTurnstileFail          Reason = "turnstile-fail"
	ReasonRecaptchaPass          Reason = "recaptcha-pass"
	ReasonRecaptchaNotConfigured Reason = "recaptcha-not-configured"
	ReasonRecaptchaMissingToken  Reason = "recaptcha-missing-token"
	ReasonRecaptchaFail          Reason = "recaptcha-fail"
	ReasonHoneypotHit            Reason = "honeypot-hit"
	ReasonVerificationFailed     Reason = "verification-failed"
)

// Outcome is the single decision the cascade hands back
// Provider none always means Passed is false
type Outcome struct {
	Provider    Provider
	Passed      bool
	Reason      Reason
	Reasons     []Reason
	ErrorCodes  []string
	Diagnostics []string
	TestMode    bool
}

// ReasonStrings returns the stage trail as plain strings for logging
func (o Outcome) ReasonStrings() []string {
	out := make([]string, len(o.Reasons))
	for i, r := range o.Reasons {
		out[i] = string(r)
	}
	return out
}

// ProviderConfig is one challenge provider's operator configuration
// an unconfigured provider is skipped, never an error
type ProviderConfig struct {
	Name           Provider
	Secret         string
	SiteKey        string
	VerifyURL      string
	RequireSiteKey bool
}

// Configured reports whether the provider can be called
func (p ProviderConfig) Configured() bool {
	if p.Secret == "" {
		return false
	}
	return !p.RequireSiteKey || p.SiteKey != ""
}

// TurnstileFailurePolicy decides what a rejected Turnstile token does to the cascade
type TurnstileFailurePolicy string

// Turnstile failure policies
const (
	// TurnstileFailureHard rejects immediately; reCAPTCHA is not contacted
	TurnstileFailureHard TurnstileFailurePolicy = "hard"
	// TurnstileFailureSoft records the failure and falls through to reCAPTCHA
	TurnstileFailureSoft TurnstileFailurePolicy = "soft"
)

// DispatchFailurePolicy decides whether a failed mail send fails the request
type DispatchFailurePolicy string

// Dispatch failure policies
const (
	// DispatchTestLenient tolerates send failures only for test-mode passes
	DispatchTestLenient DispatchFailurePolicy = "test-lenient"
	// DispatchFatal always fails the request
	DispatchFatal DispatchFailurePolicy = "fatal"
)

// Settings is the environment resolved once at startup
type Settings struct {
	Environment string
	Production  bool
	TestMode    bool

	Turnstile ProviderConfig
	Recaptcha ProviderConfig

	TurnstileFailure TurnstileFailurePolicy
	DispatchFailure  DispatchFailurePolicy

	NameMin      int
	MessageMin   int
	MaxBodyBytes int64
}

// TestBypass reports whether test-mode may skip the Turnstile call
func (s Settings) TestBypass() bool { return s.TestMode && !s.Production }

// RequestMeta carries the request facts the cascade and audit log need
type RequestMeta struct {
	RequestID string
	Host      string
	UserAgent string
	ClientIP  string
}

// SubmitResult is the success body returned to the form
type SubmitResult struct {
	Provider Provider `json:"provider"`
	Success  bool     `json:"success"`
}

// WidgetConfig is the public config the form needs to render a challenge widget
type WidgetConfig struct {
	TurnstileSiteKey string   `json:"turnstileSiteKey"`
	RecaptchaSiteKey string   `json:"recaptchaSiteKey"`
	ProviderDefault  Provider `json:"providerDefault"`
}
