package test

import (
	"strings"

	"github.com/polkiloo/opeak/internal/domain/model"
	pkgAuth "github.com/polkiloo/opeak/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides. Without
// overrides tokens look like "token-<id>-<role>".
type StrategyStub struct {
	IssueFn func(model.User) (string, error)
	ParseFn func(string) (*model.User, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(user model.User) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(user)
	}
	return "token-" + user.ID + "-" + string(user.Role), nil
}

// ParseToken parses tokens produced by IssueToken.
func (s StrategyStub) ParseToken(token string) (*model.User, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	parts := strings.Split(token, "-")
	if len(parts) != 3 || parts[0] != "token" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return &model.User{ID: parts[1], Role: model.Role(parts[2])}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements the middleware token parsing contract.
type TokenParserStub struct {
	User    *model.User
	Err     error
	ParseFn func(string) (*model.User, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (*model.User, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.User != nil {
		return s.User, nil
	}
	return &model.User{ID: "u1", Name: "sam", Email: "sam@example.com", Role: model.RoleSalesman}, nil
}

var _ pkgAuth.Strategy = StrategyStub{}
