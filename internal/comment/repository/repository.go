package repository

import (
	"context"

	"github.com/gogotex/gogotex/backend/go-comments/internal/comment"
)

// Repository is the document-store collaborator behind the comment
// endpoints. Implementations return comment.ErrNotFound for misses.
type Repository interface {
	FindAll(ctx context.Context) ([]*comment.Comment, error)
	// Insert persists c and sets c.ID.
	Insert(ctx context.Context, c *comment.Comment) error
	FindByID(ctx context.Context, id string) (*comment.Comment, error)
	Remove(ctx context.Context, id string) error
}

// Pinger is implemented by repositories backed by a remote store.
type Pinger interface {
	Ping(ctx context.Context) error
}
