package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	perr "leadintake/internal/platform/errors"
	pstrings "leadintake/internal/platform/strings"
	"leadintake/internal/services/api/contact/domain"
)

const userAgentMax = 100

// Event names the terminal outcome of one submission
type Event string

// Events
const (
	EventSuccess         Event = "success"
	EventInvalid         Event = "invalid"
	EventProviderFailure Event = "provider-failure"
	EventSpamRejected    Event = "spam-rejected"
	EventConfigError     Event = "config-error"
	EventDispatchFailure Event = "dispatch-failure"
	EventServerError     Event = "server-error"
)

// Audit emits one structured record per submission
type Audit struct {
	log   zerolog.Logger
	newID func() string
}

// NewAudit writes records to log
func NewAudit(log zerolog.Logger) *Audit {
	return &Audit{log: log, newID: uuid.NewString}
}

// Record is the per-submission handle; Emit is called once at the end
type Record struct {
	audit *Audit
	id    string
	meta  domain.RequestMeta
}

// Begin opens a record and assigns the submission id
func (a *Audit) Begin(meta domain.RequestMeta) *Record {
	return &Record{audit: a, id: a.newID(), meta: meta}
}

// ID returns the submission id
func (r *Record) ID() string { return r.id }

// EventFor maps a failed submission error to its audit event
func EventFor(err error) Event {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeValidation, perr.ErrorCodeJSON:
		return EventInvalid
	case perr.ErrorCodeVerificationFailed:
		return EventProviderFailure
	case perr.ErrorCodeSpamRejected:
		return EventSpamRejected
	case perr.ErrorCodeConfiguration:
		return EventConfigError
	case perr.ErrorCodeDispatch:
		return EventDispatchFailure
	default:
		return EventServerError
	}
}

// Emit writes the record. out may be nil when parsing failed
func (r *Record) Emit(ev Event, out *domain.Outcome, err error) {
	if r == nil || r.audit == nil {
		return
	}

	var e *zerolog.Event
	switch ev {
	case EventSuccess:
		e = r.audit.log.Info()
	case EventInvalid, EventProviderFailure, EventSpamRejected:
		e = r.audit.log.Warn()
	default:
		e = r.audit.log.Error()
	}
	if err != nil && ev == EventSuccess {
		// test-mode pass whose mail send failed
		e = r.audit.log.Warn()
	}

	e = e.
		Str("event", string(ev)).
		Str("submission_id", r.id).
		Str("request_id", r.meta.RequestID).
		Str("host", pstrings.Or(r.meta.Host, "unknown")).
		Str("user_agent", pstrings.Truncate(pstrings.Or(r.meta.UserAgent, "unknown"), userAgentMax)).
		Str("client_ip", r.meta.ClientIP)

	if out != nil {
		e = e.
			Str("provider", string(out.Provider)).
			Bool("passed", out.Passed).
			Str("reason", string(out.Reason)).
			Strs("reasons", out.ReasonStrings()).
			Strs("error_codes", out.ErrorCodes).
			Strs("diagnostics", out.Diagnostics).
			Bool("test_mode", out.TestMode)
	}
	if err != nil {
		e = e.Err(err)
	}
	e.Msg("contact submission")
}
