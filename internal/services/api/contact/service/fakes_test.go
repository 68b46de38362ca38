package service

import (
	"context"
	"sync"

	"leadintake/internal/services/api/contact/domain"
)

type verifyCall struct {
	secret, token, remoteIP string
}

// fakeProvider answers every Verify with a canned Result and records calls
type fakeProvider struct {
	name   string
	result domain.VerifyResult

	mu    sync.Mutex
	calls []verifyCall
}

func passing(name string) *fakeProvider {
	return &fakeProvider{name: name, result: domain.VerifyResult{OK: true, ErrorCodes: []string{}}}
}

func failing(name string, codes ...string) *fakeProvider {
	return &fakeProvider{name: name, result: domain.VerifyResult{OK: false, ErrorCodes: codes}}
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Verify(_ context.Context, secret, token, remoteIP string) domain.VerifyResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, verifyCall{secret: secret, token: token, remoteIP: remoteIP})
	return f.result
}

func (f *fakeProvider) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeMailer records dispatched leads and returns err, or panics with panicWith
type fakeMailer struct {
	err       error
	panicWith any
	leads     []domain.Lead
}

func (f *fakeMailer) Dispatch(_ context.Context, lead domain.Lead) error {
	f.leads = append(f.leads, lead)
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.err
}
