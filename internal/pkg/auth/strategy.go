package auth

import (
	"errors"
	"time"

	"github.com/polkiloo/opeak/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid session token")

// Strategy issues and verifies session tokens carrying the signed-in user.
type Strategy interface {
	IssueToken(user model.User) (string, error)
	ParseToken(token string) (*model.User, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
