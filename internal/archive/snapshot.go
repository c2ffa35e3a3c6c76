// Package archive exports the comment collection to object storage.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gogotex/gogotex/backend/go-comments/internal/comment"
)

const keyPrefix = "comments/snapshot-"

// Lister is the read side of the comment service.
type Lister interface {
	List(ctx context.Context) ([]*comment.Comment, error)
}

// Uploader stores an object. *MinIOStore satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// Snapshot is the uploaded document.
type Snapshot struct {
	TakenAt  time.Time          `json:"taken_at"`
	Count    int                `json:"count"`
	Comments []*comment.Comment `json:"comments"`
}

// Key returns the object key for a snapshot taken at t.
func Key(t time.Time) string {
	return keyPrefix + t.UTC().Format("20060102T150405Z") + ".json"
}

// WriteSnapshot lists every comment and uploads them as one JSON object.
// It returns the object key and the number of comments written.
func WriteSnapshot(ctx context.Context, src Lister, dst Uploader, now time.Time) (string, int, error) {
	list, err := src.List(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("list comments: %w", err)
	}
	if list == nil {
		list = []*comment.Comment{}
	}
	body, err := json.Marshal(Snapshot{TakenAt: now.UTC(), Count: len(list), Comments: list})
	if err != nil {
		return "", 0, fmt.Errorf("encode snapshot: %w", err)
	}
	key := Key(now)
	if err := dst.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), "application/json"); err != nil {
		return "", 0, err
	}
	return key, len(list), nil
}
