package domain

import "context"

// ProviderClient posts a token to one provider's siteverify endpoint
// failures come back inside the VerifyResult, never as an error
type ProviderClient interface {
	Name() string
	Verify(ctx context.Context, secret, token, remoteIP string) VerifyResult
}

// Dispatcher sends the lead notification
type Dispatcher interface {
	Dispatch(ctx context.Context, lead Lead) error
}

// ServicePort defines the contact service interface
type ServicePort interface {
	Submit(ctx context.Context, contentType string, body []byte, meta RequestMeta) (SubmitResult, error)
	WidgetConfig() WidgetConfig
	MaxBodyBytes() int64
}
