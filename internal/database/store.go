package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrBuildPhaseSkip is returned for every store access during the build
	// phase, before any network I/O is attempted.
	ErrBuildPhaseSkip = errors.New("database: store access skipped during build phase")

	// ErrConnection covers transport-level failures. Observing it means the
	// cached session was invalidated and the next call will reconnect.
	ErrConnection = errors.New("database: connection unavailable")

	// ErrNoDocuments is returned by FindOne when nothing matches the filter.
	ErrNoDocuments = errors.New("database: no documents found")
)

// UpdateResult reports whether the target existed separately from whether
// anything actually changed. Callers need both to tell "not found" from
// "no-op" updates.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// GroupCount is one bucket of a group-count aggregation.
type GroupCount struct {
	Key   string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// Store is the minimal document-store surface the repositories are built on.
// The backing collection handles single-document atomicity; nothing here
// spans documents.
type Store interface {
	FindOne(ctx context.Context, filter bson.M, out any) error
	FindAll(ctx context.Context, filter bson.M, sort bson.D, limit int64, out any) error
	InsertOne(ctx context.Context, doc any) (bson.ObjectID, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, update bson.M) (UpdateResult, error)
	UpdateWhere(ctx context.Context, filter, update bson.M) (UpdateResult, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (int64, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	GroupCountBy(ctx context.Context, field string) ([]GroupCount, error)
}

// CollectionProvider hands out a live Store for a named collection.
// *SessionManager is the production implementation.
type CollectionProvider interface {
	Collection(ctx context.Context, name string) (Store, error)
}
