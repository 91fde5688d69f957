package repository

import "context"

// CartRepository stores the serialized cart line sequence per user.
// Load returns nil content without error when nothing is stored.
type CartRepository interface {
	Load(ctx context.Context, userID string) ([]byte, error)
	Save(ctx context.Context, userID string, content []byte) error
	Delete(ctx context.Context, userID string) error
}
