// Package parse turns a raw contact request body into a LeadSubmission
package parse

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"

	perr "leadintake/internal/platform/errors"
	"leadintake/internal/platform/net/http/bind"
	"leadintake/internal/services/api/contact/domain"
)

// Defaults for the configurable minimum lengths
const (
	DefaultNameMin    = 2
	DefaultMessageMin = 10

	defaultMaxMemory = 1 << 20
)

// Form field names posted by the widgets
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldMessage   = "message"
	FieldTurnstile = "cf-turnstile-response"
	FieldRecaptcha = "g-recaptcha-response"
	FieldHoneypot  = "website"
)

// Limits configures validation
type Limits struct {
	NameMin    int
	MessageMin int
	// MaxMemory caps in-memory multipart parts; the rest spill to temp files
	MaxMemory int64
}

// Parser is stateless after construction and safe for concurrent use
type Parser struct {
	limits Limits
}

// New returns a Parser, filling zero limits with defaults
func New(l Limits) *Parser {
	if l.NameMin <= 0 {
		l.NameMin = DefaultNameMin
	}
	if l.MessageMin <= 0 {
		l.MessageMin = DefaultMessageMin
	}
	if l.MaxMemory <= 0 {
		l.MaxMemory = defaultMaxMemory
	}
	return &Parser{limits: l}
}

// jsonLead is the JSON body shape; unknown fields are ignored
type jsonLead struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Message        string `json:"message"`
	TurnstileToken string `json:"turnstileToken"`
	RecaptchaToken string `json:"recaptchaToken"`
	Honeypot       string `json:"honeypot"`
}

// Parse decodes body by content type, normalizes every value and validates the result
func (p *Parser) Parse(contentType string, body []byte) (domain.LeadSubmission, error) {
	sub, err := p.decode(contentType, body)
	if err != nil {
		return domain.LeadSubmission{}, err
	}
	sub = normalize(sub)
	if err := p.validate(sub); err != nil {
		return domain.LeadSubmission{}, err
	}
	return sub, nil
}

func (p *Parser) decode(contentType string, body []byte) (domain.LeadSubmission, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "multipart/form-data":
		return p.decodeMultipart(body, params["boundary"])
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return domain.LeadSubmission{}, perr.Wrap(err, perr.ErrorCodeValidation, "malformed form body")
		}
		return fromForm(values), nil
	default:
		in, err := bind.DecodeJSON[jsonLead](body, bind.JSONOptions{})
		if err != nil {
			return domain.LeadSubmission{}, err
		}
		return domain.LeadSubmission{
			Name:           in.Name,
			Email:          in.Email,
			Phone:          in.Phone,
			Message:        in.Message,
			TurnstileToken: in.TurnstileToken,
			RecaptchaToken: in.RecaptchaToken,
			Honeypot:       in.Honeypot,
		}, nil
	}
}

func (p *Parser) decodeMultipart(body []byte, boundary string) (domain.LeadSubmission, error) {
	if boundary == "" {
		return domain.LeadSubmission{}, perr.Validationf("malformed multipart body")
	}
	form, err := multipart.NewReader(bytes.NewReader(body), boundary).ReadForm(p.limits.MaxMemory)
	if err != nil {
		return domain.LeadSubmission{}, perr.Wrap(err, perr.ErrorCodeValidation, "malformed multipart body")
	}
	defer func() { _ = form.RemoveAll() }()
	return fromForm(url.Values(form.Value)), nil
}

func fromForm(v url.Values) domain.LeadSubmission {
	return domain.LeadSubmission{
		Name:           v.Get(FieldName),
		Email:          v.Get(FieldEmail),
		Phone:          v.Get(FieldPhone),
		Message:        v.Get(FieldMessage),
		TurnstileToken: v.Get(FieldTurnstile),
		RecaptchaToken: v.Get(FieldRecaptcha),
		Honeypot:       v.Get(FieldHoneypot),
	}
}

func clean(s string) string { return strings.TrimSpace(norm.NFC.String(s)) }

func normalize(s domain.LeadSubmission) domain.LeadSubmission {
	return domain.LeadSubmission{
		Name:           clean(s.Name),
		Email:          clean(s.Email),
		Phone:          clean(s.Phone),
		Message:        clean(s.Message),
		TurnstileToken: clean(s.TurnstileToken),
		RecaptchaToken: clean(s.RecaptchaToken),
		Honeypot:       clean(s.Honeypot),
	}
}

// validate applies the same rules to every encoding; the first failure wins
func (p *Parser) validate(s domain.LeadSubmission) error {
	if err := bind.Field(FieldName, s.Name, fmt.Sprintf("required,min=%d", p.limits.NameMin)); err != nil {
		return err
	}
	if err := bind.Field(FieldEmail, s.Email, "required,email"); err != nil {
		return err
	}
	return bind.Field(FieldMessage, s.Message, fmt.Sprintf("required,min=%d", p.limits.MessageMin))
}
