// Package storetest provides an expectation-based mock of the DynamoDB
// client slice the store uses. Tests assign per-operation functions; any
// operation without an assigned function fails the test.
package storetest

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Call is the shape of a single mocked DynamoDB operation.
type Call[T, U any] = func(context.Context, *T, ...func(*dynamodb.Options)) (*U, error)

// MockClient implements store.Client with test-assignable functions.
type MockClient struct {
	PutFunc    Call[dynamodb.PutItemInput, dynamodb.PutItemOutput]
	GetFunc    Call[dynamodb.GetItemInput, dynamodb.GetItemOutput]
	QueryFunc  Call[dynamodb.QueryInput, dynamodb.QueryOutput]
	UpdateFunc Call[dynamodb.UpdateItemInput, dynamodb.UpdateItemOutput]
	DeleteFunc Call[dynamodb.DeleteItemInput, dynamodb.DeleteItemOutput]
}

// NewMockClient creates a mock whose operations fail the test until a test
// assigns its own functions.
func NewMockClient(t *testing.T) *MockClient {
	return &MockClient{
		PutFunc:    defaultFunc[dynamodb.PutItemInput, dynamodb.PutItemOutput](t),
		GetFunc:    defaultFunc[dynamodb.GetItemInput, dynamodb.GetItemOutput](t),
		QueryFunc:  defaultFunc[dynamodb.QueryInput, dynamodb.QueryOutput](t),
		UpdateFunc: defaultFunc[dynamodb.UpdateItemInput, dynamodb.UpdateItemOutput](t),
		DeleteFunc: defaultFunc[dynamodb.DeleteItemInput, dynamodb.DeleteItemOutput](t),
	}
}

func defaultFunc[T, U any](t *testing.T) Call[T, U] {
	return func(ctx context.Context, params *T, optFns ...func(*dynamodb.Options)) (*U, error) {
		t.Helper()
		t.Fatalf("unexpected %T call", params)
		return nil, nil
	}
}

func (m *MockClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return m.PutFunc(ctx, params, optFns...)
}

func (m *MockClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.GetFunc(ctx, params, optFns...)
}

func (m *MockClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return m.QueryFunc(ctx, params, optFns...)
}

func (m *MockClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return m.UpdateFunc(ctx, params, optFns...)
}

func (m *MockClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return m.DeleteFunc(ctx, params, optFns...)
}
