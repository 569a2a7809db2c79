package store

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwell/taskwell/internal/apperr"
	"github.com/taskwell/taskwell/internal/model"
	"github.com/taskwell/taskwell/internal/store/storetest"
)

func TestGetProfileNotFound(t *testing.T) {
	mock := storetest.NewMockClient(t)
	mock.GetFunc = func(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{}, nil
	}
	s := newTestStore(t, mock)

	_, err := s.GetProfile(context.Background(), "u1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPutProfileUpsert(t *testing.T) {
	mock := storetest.NewMockClient(t)
	mock.UpdateFunc = func(ctx context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
		assert.Nil(t, params.ConditionExpression, "profile put is an unconditional upsert")
		assert.Contains(t, *params.UpdateExpression, "if_not_exists",
			"createdAt survives repeated puts")
		item, err := attributevalue.MarshalMap(profileItem{
			PK: "USER#u1", SK: "PROFILE", UserID: "u1",
			DisplayName: "Ada", Timezone: "Europe/London",
			CreatedAt: formatTime(testTime), UpdatedAt: formatTime(testTime),
		})
		require.NoError(t, err)
		return &dynamodb.UpdateItemOutput{Attributes: item}, nil
	}
	s := newTestStore(t, mock)

	profile, err := s.PutProfile(context.Background(), "u1", model.PutProfileRequest{
		DisplayName: " Ada ",
		Timezone:    "Europe/London",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.DisplayName)
	assert.Equal(t, "u1", profile.UserID)
}

func TestPutProfileRequiresDisplayName(t *testing.T) {
	s := newTestStore(t, storetest.NewMockClient(t))

	_, err := s.PutProfile(context.Background(), "u1", model.PutProfileRequest{})
	ve, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"displayName must not be empty"}, ve.Messages)
}
