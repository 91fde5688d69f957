package repository

import (
	"context"

	"github.com/polkiloo/opeak/internal/domain/model"
)

// SessionVerifier resolves an upstream authentication token into a user.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*model.User, error)
}
