package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogotex/gogotex/backend/go-comments/internal/comment"
	"github.com/gogotex/gogotex/backend/go-comments/internal/comment/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

// Error kinds reported by Kind.
const (
	KindNotFound    = "not_found"
	KindValidation  = "validation"
	KindUnavailable = "unavailable"
	KindInternal    = "internal"
)

// Backend names reported by Backend.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendOther  = "other"
)

// Service defines the comment operations used by the handler layer.
type Service interface {
	List(ctx context.Context) ([]*comment.Comment, error)
	Create(ctx context.Context, fields map[string]interface{}) (*comment.Comment, error)
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// New returns a Service over the given repository.
func New(repo repository.Repository) Service {
	return &service{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller is responsible for creating the collection (and client) and passing it in.
func NewMongoService(col *mongo.Collection) Service {
	return New(repository.NewMongoRepo(col))
}

type service struct {
	repo repository.Repository
}

func (s *service) List(ctx context.Context) ([]*comment.Comment, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return list, nil
}

func (s *service) Create(ctx context.Context, fields map[string]interface{}) (*comment.Comment, error) {
	c := comment.New(fields)
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

// Delete looks the comment up before removing it. A comment that vanishes
// between the two calls counts as deleted.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find comment %s: %w", id, err)
	}
	if err := s.repo.Remove(ctx, id); err != nil && !errors.Is(err, comment.ErrNotFound) {
		return fmt.Errorf("remove comment %s: %w", id, err)
	}
	return nil
}

func (s *service) Ping(ctx context.Context) error {
	if p, ok := s.repo.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Backend names the repository behind svc, for readiness reporting.
func Backend(svc Service) string {
	s, ok := svc.(*service)
	if !ok {
		return BackendOther
	}
	switch s.repo.(type) {
	case *repository.MemoryRepo:
		return BackendMemory
	case *repository.MongoRepo:
		return BackendMongo
	}
	return BackendOther
}

// Kind classifies err into one of the Kind* constants.
func Kind(err error) string {
	switch {
	case errors.Is(err, comment.ErrNotFound):
		return KindNotFound
	case errors.Is(err, comment.ErrInvalidPayload):
		return KindValidation
	case errors.Is(err, comment.ErrStoreUnavailable):
		return KindUnavailable
	}
	return KindInternal
}
