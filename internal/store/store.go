// Package store is the persistence and integrity layer: a single DynamoDB
// table holding projects, tasks, and user profiles, with conditional writes
// enforcing existence and ownership on every mutation. Cross-item protocols
// (cascading project delete, task-to-project label sync) are sagas over
// independent single-item writes; there is no native transaction use.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskwell/taskwell/internal/apperr"
)

// Client is the slice of the DynamoDB API the store calls. Tests substitute
// an expectation-based mock.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Clock returns the current time; injectable for deterministic tests.
type Clock func() time.Time

// DefaultClock returns the current UTC time.
func DefaultClock() time.Time { return time.Now().UTC() }

// DefaultDeleteParallelism bounds concurrent task deletes within one page of
// the cascading project delete.
const DefaultDeleteParallelism = 8

// Store executes all table operations. Stateless between calls; safe for
// concurrent use.
type Store struct {
	client            Client
	table             string
	log               *zap.Logger
	now               Clock
	newID             func() string
	deleteParallelism int
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(c Clock) Option {
	return func(s *Store) { s.now = c }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// WithDeleteParallelism sets the per-page concurrency bound of the cascading
// delete. Values below one fall back to serial deletes.
func WithDeleteParallelism(n int) Option {
	return func(s *Store) {
		if n < 1 {
			n = 1
		}
		s.deleteParallelism = n
	}
}

// New creates a Store bound to a table.
func New(client Client, table string, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		client:            client,
		table:             table,
		log:               logger,
		now:               DefaultClock,
		newID:             uuid.NewString,
		deleteParallelism: DefaultDeleteParallelism,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// isConditionalCheckFailed reports whether a write lost its condition. Both
// "item missing" and "owned by someone else" land here and are reported as
// not-found.
func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// internal wraps an unexpected store failure, logging the cause under a
// correlation id. Only the id travels to the caller.
func (s *Store) internal(op string, err error) error {
	ie := apperr.Internal(err)
	s.log.Error("store operation failed",
		zap.String("op", op),
		zap.String("correlation_id", ie.CorrelationID),
		zap.Error(err))
	return ie
}
