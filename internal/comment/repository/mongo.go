package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogotex/gogotex/backend/go-comments/internal/comment"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDB server code for a write rejected by collection validation rules.
const codeDocumentValidationFailure = 121

// MongoRepo implements Repository on a MongoDB collection. Documents are
// stored as posted, keyed by a driver-generated ObjectID in _id.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, c *comment.Comment) error {
	oid := primitive.NewObjectID()
	doc := bson.M{}
	for k, v := range c.Fields {
		doc[k] = v
	}
	doc[comment.IDField] = oid
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		return classify(err)
	}
	c.ID = oid.Hex()
	return nil
}

func (m *MongoRepo) FindByID(ctx context.Context, id string) (*comment.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed id %q", comment.ErrNotFound, id)
	}
	var doc bson.M
	if err := m.col.FindOne(ctx, bson.M{comment.IDField: oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, comment.ErrNotFound
		}
		return nil, classify(err)
	}
	return fromDocument(doc), nil
}

func (m *MongoRepo) FindAll(ctx context.Context) ([]*comment.Comment, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, classify(err)
	}
	defer cur.Close(ctx)
	out := []*comment.Comment{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromDocument(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (m *MongoRepo) Remove(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: malformed id %q", comment.ErrNotFound, id)
	}
	res, err := m.col.DeleteOne(ctx, bson.M{comment.IDField: oid})
	if err != nil {
		return classify(err)
	}
	if res.DeletedCount == 0 {
		return comment.ErrNotFound
	}
	return nil
}

// Ping checks that the primary is reachable.
func (m *MongoRepo) Ping(ctx context.Context) error {
	if err := m.col.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return classify(err)
	}
	return nil
}

func fromDocument(doc bson.M) *comment.Comment {
	c := comment.New(doc)
	switch id := doc[comment.IDField].(type) {
	case primitive.ObjectID:
		c.ID = id.Hex()
	case string:
		c.ID = id
	case nil:
	default:
		c.ID = fmt.Sprint(id)
	}
	return c
}

// classify tags driver errors with the comment error kinds.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %w", comment.ErrStoreUnavailable, err)
	case isValidationFailure(err):
		return fmt.Errorf("%w: %w", comment.ErrInvalidPayload, err)
	}
	return err
}

func isValidationFailure(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == codeDocumentValidationFailure {
				return true
			}
		}
	}
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorCode(codeDocumentValidationFailure)
	}
	return false
}
