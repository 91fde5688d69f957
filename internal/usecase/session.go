package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/domain/repository"
	pkgAuth "github.com/polkiloo/opeak/internal/pkg/auth"
)

// SessionUseCase exchanges upstream tokens for service sessions.
type SessionUseCase struct {
	verifier repository.SessionVerifier
	tokens   pkgAuth.Strategy
}

// NewSessionUseCase constructs SessionUseCase.
func NewSessionUseCase(verifier repository.SessionVerifier, strategy pkgAuth.Strategy) *SessionUseCase {
	return &SessionUseCase{verifier: verifier, tokens: strategy}
}

// Login verifies the upstream token with the backend and issues a session token.
func (u *SessionUseCase) Login(ctx context.Context, upstream string) (*model.User, string, error) {
	upstream = strings.TrimSpace(upstream)
	if upstream == "" {
		return nil, "", pkgAuth.ErrInvalidToken
	}

	usr, err := u.verifier.Verify(ctx, upstream)
	if err != nil {
		if errors.Is(err, domainErrors.ErrForbidden) || errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", pkgAuth.ErrInvalidToken
		}
		return nil, "", err
	}
	if usr.ID == "" || (usr.Role != model.RoleAdmin && usr.Role != model.RoleSalesman) {
		return nil, "", pkgAuth.ErrInvalidToken
	}

	token, err := u.tokens.IssueToken(*usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// ParseToken resolves a session token into the signed-in user.
func (u *SessionUseCase) ParseToken(token string) (*model.User, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
