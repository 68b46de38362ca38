package module

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"leadintake/internal/adapters/mail"
	"leadintake/internal/modkit"
	"leadintake/internal/modkit/module"
	"leadintake/internal/platform/config"
	phttp "leadintake/internal/platform/net/http"
	"leadintake/internal/platform/net/middleware"
	"leadintake/internal/platform/testkit"
	"leadintake/internal/services/api/contact/domain"
)

var envKeys = []string{
	"APP_ENV",
	"CAPTCHA_TEST_MODE",
	"CAPTCHA_TURNSTILE_SECRET_KEY", "CAPTCHA_TURNSTILE_SECRET_KEY_PREVIEW",
	"CAPTCHA_TURNSTILE_SITE_KEY", "CAPTCHA_TURNSTILE_SITE_KEY_PREVIEW",
	"CAPTCHA_TURNSTILE_VERIFY_URL", "CAPTCHA_TURNSTILE_FAILURE_POLICY",
	"CAPTCHA_RECAPTCHA_SECRET_KEY", "CAPTCHA_RECAPTCHA_SITE_KEY", "CAPTCHA_RECAPTCHA_VERIFY_URL",
	"CAPTCHA_HTTP_TIMEOUT",
	"MAIL_TRANSPORT", "MAIL_FROM", "MAIL_TO", "MAIL_API_KEY", "RESEND_API_KEY",
	"MAIL_SMTP_HOST", "MAIL_SMTP_PORT", "MAIL_SMTP_USER", "MAIL_RESEND_BASE_URL",
	"MAIL_DISPATCH_FAILURE_POLICY",
	"CONTACT_NAME_MIN", "CONTACT_MESSAGE_MIN", "CONTACT_MAX_BODY_BYTES",
}

// cleanEnv blanks every key the module reads so the host environment cannot leak in
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cleanEnv(t)

	c := LoadConfig(context.Background(), config.New(), nil)

	if c.Contact.Environment != string(config.EnvDevelopment) || c.Contact.Production {
		t.Fatalf("env = %q production=%v", c.Contact.Environment, c.Contact.Production)
	}
	if c.Contact.TestMode {
		t.Fatalf("test mode on by default")
	}
	if c.Contact.Turnstile.Configured() || c.Contact.Recaptcha.Configured() {
		t.Fatalf("providers configured without keys")
	}
	if c.Contact.TurnstileFailure != domain.TurnstileFailureHard || c.Contact.DispatchFailure != domain.DispatchTestLenient {
		t.Fatalf("policies = %q/%q", c.Contact.TurnstileFailure, c.Contact.DispatchFailure)
	}
	if c.Contact.NameMin != 2 || c.Contact.MessageMin != 10 || c.Contact.MaxBodyBytes != 64<<10 {
		t.Fatalf("limits = %d/%d/%d", c.Contact.NameMin, c.Contact.MessageMin, c.Contact.MaxBodyBytes)
	}
	if c.Mail.Transport != mail.TransportResend || c.Mail.SMTPPort != 587 {
		t.Fatalf("mail = %+v", c.Mail)
	}
	if c.VerifyTimeout != 8*time.Second {
		t.Fatalf("timeout = %v", c.VerifyTimeout)
	}
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	cleanEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("CAPTCHA_TEST_MODE", "pass")
	t.Setenv("CAPTCHA_TURNSTILE_SECRET_KEY", "ts-secret")
	t.Setenv("CAPTCHA_TURNSTILE_SITE_KEY", "ts-site")
	t.Setenv("CAPTCHA_RECAPTCHA_SECRET_KEY", "rc-secret")
	t.Setenv("CAPTCHA_RECAPTCHA_SITE_KEY", "rc-site")
	t.Setenv("CAPTCHA_TURNSTILE_FAILURE_POLICY", "SOFT")
	t.Setenv("CAPTCHA_HTTP_TIMEOUT", "3s")
	t.Setenv("MAIL_TRANSPORT", "smtp")
	t.Setenv("MAIL_FROM", "site@example.com")
	t.Setenv("MAIL_TO", "sales@example.com, ops@example.com")
	t.Setenv("RESEND_API_KEY", "legacy-key")
	t.Setenv("MAIL_SMTP_HOST", "smtp.example.com")
	t.Setenv("MAIL_SMTP_PORT", "2525")
	t.Setenv("MAIL_DISPATCH_FAILURE_POLICY", "fatal")
	t.Setenv("CONTACT_NAME_MIN", "3")
	t.Setenv("CONTACT_MAX_BODY_BYTES", "4096")

	c := LoadConfig(context.Background(), config.New(), nil)

	if !c.Contact.Production || c.Contact.TestBypass() {
		t.Fatalf("production must disable the test bypass: %+v", c.Contact)
	}
	if !c.Contact.Turnstile.Configured() || !c.Contact.Recaptcha.Configured() {
		t.Fatalf("providers not configured")
	}
	if c.Contact.TurnstileFailure != domain.TurnstileFailureSoft || c.Contact.DispatchFailure != domain.DispatchFatal {
		t.Fatalf("policies = %q/%q", c.Contact.TurnstileFailure, c.Contact.DispatchFailure)
	}
	if c.Contact.NameMin != 3 || c.Contact.MaxBodyBytes != 4096 {
		t.Fatalf("limits = %+v", c.Contact)
	}
	testkit.MustEqual(t, mail.Settings{
		Transport:  mail.TransportSMTP,
		From:       "site@example.com",
		To:         []string{"sales@example.com", "ops@example.com"},
		Credential: "legacy-key",
		SMTPHost:   "smtp.example.com",
		SMTPPort:   2525,
	}, c.Mail)
	if c.VerifyTimeout != 3*time.Second {
		t.Fatalf("timeout = %v", c.VerifyTimeout)
	}
}

func TestLoadConfig_PreviewUsesPreviewTurnstileKeysOnly(t *testing.T) {
	cleanEnv(t)
	t.Setenv("APP_ENV", "preview")
	t.Setenv("CAPTCHA_TURNSTILE_SECRET_KEY", "prod-secret")
	t.Setenv("CAPTCHA_TURNSTILE_SITE_KEY", "prod-site")
	t.Setenv("CAPTCHA_TURNSTILE_SECRET_KEY_PREVIEW", "preview-secret")

	c := LoadConfig(context.Background(), config.New(), nil)

	if c.Contact.Turnstile.Secret != "preview-secret" {
		t.Fatalf("secret = %q", c.Contact.Turnstile.Secret)
	}
	if c.Contact.Turnstile.SiteKey != "" {
		t.Fatalf("preview must not fall back to the production site key, got %q", c.Contact.Turnstile.SiteKey)
	}
}

func TestLoadConfig_InvalidPolicyPanics(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CAPTCHA_TURNSTILE_FAILURE_POLICY", "sometimes")

	testkit.MustPanic(t, func() { LoadConfig(context.Background(), config.New(), nil) })
}

func TestStartupWarnings_TestModeWithoutAppEnv(t *testing.T) {
	cases := []struct {
		name, env, mode string
		want            string
	}{
		{"unset env", "", "pass", "APP_ENV unset"},
		{"production", "production", "pass", "set in production"},
		{"explicit development", "development", "pass", ""},
		{"test mode off", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cleanEnv(t)
			t.Setenv("APP_ENV", tc.env)
			t.Setenv("CAPTCHA_TEST_MODE", tc.mode)

			warnings := startupWarnings(LoadConfig(context.Background(), config.New(), nil))
			if tc.want == "" {
				if len(warnings) != 0 {
					t.Fatalf("unexpected warnings %v", warnings)
				}
				return
			}
			if len(warnings) != 1 {
				t.Fatalf("warnings = %v", warnings)
			}
			testkit.MustContain(t, warnings[0], tc.want)
		})
	}
}

func TestNew_LogsImplicitTestModeWarning(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CAPTCHA_TEST_MODE", "pass")
	var buf bytes.Buffer
	root := zerolog.New(&buf)

	New(modkit.Deps{Cfg: config.New(), Log: &root})

	testkit.MustContain(t, buf.String(), `"level":"warn"`)
	testkit.MustContain(t, buf.String(), "captcha bypass is active")
}

func TestModule_NameAndPorts(t *testing.T) {
	cleanEnv(t)
	m := New(modkit.Deps{Cfg: config.New()})

	if m.Name() != "contact" {
		t.Fatalf("name = %q", m.Name())
	}
	svc := module.MustPortsOf[domain.ServicePort](m)
	testkit.MustEqual(t, domain.WidgetConfig{ProviderDefault: domain.ProviderNone}, svc.WidgetConfig())
}

func TestModule_WithPrefixAndRegister(t *testing.T) {
	cleanEnv(t)
	extra := false
	m := New(modkit.Deps{Cfg: config.New()},
		WithPrefix("/leads"),
		WithRegister(func(r phttp.Router) {
			r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { extra = true })
		}),
	)
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads/config", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("config status = %d", rec.Code)
	}
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/leads/ping", nil))
	if !extra {
		t.Fatalf("extra route not registered")
	}
}

// fakeSiteverify answers every verification with the given outcome
func fakeSiteverify(t *testing.T, success bool, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = r.ParseForm()
		if r.PostForm.Get("secret") == "" || r.PostForm.Get("response") == "" {
			t.Errorf("siteverify form missing fields: %v", r.PostForm)
		}
		w.Header().Set("Content-Type", "application/json")
		if success {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fakeResend(t *testing.T, sent *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sent.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"0c7d5e1e-4a8f-4f5e-9a55-1d1a2b3c4d5e"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func mountContact(t *testing.T) http.Handler {
	t.Helper()
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID(), middleware.RequestContext)
	New(modkit.Deps{Cfg: config.New()}).MountRoutes(phttp.AdaptChi(mux))
	return mux
}

func postForm(h http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func lead() url.Values {
	return url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"message": {"Please call me about the engine."},
	}
}

func TestEndToEnd_TurnstilePassSendsMail(t *testing.T) {
	cleanEnv(t)
	var verifies, rcHits, sent atomic.Int32
	ts := fakeSiteverify(t, true, &verifies)
	rc := fakeSiteverify(t, true, &rcHits)
	rs := fakeResend(t, &sent)

	t.Setenv("CAPTCHA_TURNSTILE_SECRET_KEY", "ts-secret")
	t.Setenv("CAPTCHA_TURNSTILE_VERIFY_URL", ts.URL)
	t.Setenv("CAPTCHA_RECAPTCHA_SECRET_KEY", "rc-secret")
	t.Setenv("CAPTCHA_RECAPTCHA_SITE_KEY", "rc-site")
	t.Setenv("CAPTCHA_RECAPTCHA_VERIFY_URL", rc.URL)
	t.Setenv("MAIL_FROM", "site@example.com")
	t.Setenv("MAIL_TO", "sales@example.com")
	t.Setenv("MAIL_API_KEY", "re_test")
	t.Setenv("MAIL_RESEND_BASE_URL", rs.URL)

	form := lead()
	form.Set("cf-turnstile-response", "tok")
	rec := postForm(mountContact(t), form)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var got domain.SubmitResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	testkit.MustEqual(t, domain.SubmitResult{Provider: domain.ProviderTurnstile, Success: true}, got)
	if verifies.Load() != 1 || rcHits.Load() != 0 || sent.Load() != 1 {
		t.Fatalf("turnstile=%d recaptcha=%d sent=%d", verifies.Load(), rcHits.Load(), sent.Load())
	}
}

func TestEndToEnd_HardTurnstileFailureStops(t *testing.T) {
	cleanEnv(t)
	var verifies, rcHits, sent atomic.Int32
	ts := fakeSiteverify(t, false, &verifies)
	rc := fakeSiteverify(t, true, &rcHits)
	rs := fakeResend(t, &sent)

	t.Setenv("CAPTCHA_TURNSTILE_SECRET_KEY", "ts-secret")
	t.Setenv("CAPTCHA_TURNSTILE_VERIFY_URL", ts.URL)
	t.Setenv("CAPTCHA_RECAPTCHA_SECRET_KEY", "rc-secret")
	t.Setenv("CAPTCHA_RECAPTCHA_SITE_KEY", "rc-site")
	t.Setenv("CAPTCHA_RECAPTCHA_VERIFY_URL", rc.URL)
	t.Setenv("MAIL_FROM", "site@example.com")
	t.Setenv("MAIL_TO", "sales@example.com")
	t.Setenv("MAIL_API_KEY", "re_test")
	t.Setenv("MAIL_RESEND_BASE_URL", rs.URL)

	form := lead()
	form.Set("cf-turnstile-response", "tok")
	form.Set("g-recaptcha-response", "rc-tok")
	rec := postForm(mountContact(t), form)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	testkit.MustContain(t, rec.Body.String(), "invalid-input-response")
	if rcHits.Load() != 0 || sent.Load() != 0 {
		t.Fatalf("recaptcha=%d sent=%d after hard failure", rcHits.Load(), sent.Load())
	}
}

func TestEndToEnd_HoneypotRejectsWithoutNetwork(t *testing.T) {
	cleanEnv(t)
	var verifies, sent atomic.Int32
	ts := fakeSiteverify(t, true, &verifies)
	rs := fakeResend(t, &sent)

	t.Setenv("CAPTCHA_TURNSTILE_SECRET_KEY", "ts-secret")
	t.Setenv("CAPTCHA_TURNSTILE_VERIFY_URL", ts.URL)
	t.Setenv("MAIL_RESEND_BASE_URL", rs.URL)

	form := lead()
	form.Set("cf-turnstile-response", "tok")
	form.Set("website", "http://spam.example")
	rec := postForm(mountContact(t), form)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	testkit.MustEqual(t, `{"error":"Spam detected."}`, strings.TrimSpace(rec.Body.String()))
	if verifies.Load() != 0 || sent.Load() != 0 {
		t.Fatalf("network touched: verify=%d sent=%d", verifies.Load(), sent.Load())
	}
}

func TestEndToEnd_MissingMailConfigIs500(t *testing.T) {
	cleanEnv(t)
	var verifies atomic.Int32
	ts := fakeSiteverify(t, true, &verifies)
	t.Setenv("CAPTCHA_TURNSTILE_SECRET_KEY", "ts-secret")
	t.Setenv("CAPTCHA_TURNSTILE_VERIFY_URL", ts.URL)

	form := lead()
	form.Set("cf-turnstile-response", "tok")
	rec := postForm(mountContact(t), form)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	testkit.MustEqual(t, `{"error":"Email not configured."}`, strings.TrimSpace(rec.Body.String()))
}

func TestEndToEnd_JSONLeadRepliesToSubmitter(t *testing.T) {
	cleanEnv(t)
	var verifies atomic.Int32
	ts := fakeSiteverify(t, true, &verifies)

	var sends []map[string]any
	rs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got map[string]any
		_ = json.NewDecoder(r.Body).Decode(&got)
		sends = append(sends, got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"5e0b1b0e-3b7c-4c2b-9a1f-7d7d1c1e2f3a"}`))
	}))
	t.Cleanup(rs.Close)

	t.Setenv("CAPTCHA_TURNSTILE_SECRET_KEY", "ts-secret")
	t.Setenv("CAPTCHA_TURNSTILE_VERIFY_URL", ts.URL)
	t.Setenv("MAIL_FROM", "site@example.com")
	t.Setenv("MAIL_TO", "sales@example.com")
	t.Setenv("MAIL_API_KEY", "re_test")
	t.Setenv("MAIL_RESEND_BASE_URL", rs.URL)

	body := `{"name":"Jane Doe","email":"jane@example.com","message":"Please quote my kitchen remodel","turnstileToken":"stub"}`
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mountContact(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	testkit.MustEqual(t, `{"provider":"turnstile","success":true}`, strings.TrimSpace(rec.Body.String()))
	if len(sends) != 1 {
		t.Fatalf("sends = %d", len(sends))
	}
	if sends[0]["reply_to"] != "jane@example.com" || sends[0]["subject"] != "New website lead from Jane Doe" {
		t.Fatalf("payload = %v", sends[0])
	}
}
