package bank

import (
	"context"

	"securebank/internal/domain"
)

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Publisher delivers events to external collaborators (OTP gateway, audit
// consumers). Publish failures never fail the originating operation; the
// bank logs and moves on.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
