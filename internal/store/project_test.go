package store

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwell/taskwell/internal/apperr"
	"github.com/taskwell/taskwell/internal/model"
	"github.com/taskwell/taskwell/internal/store/storetest"
)

func TestCreateProjectDefaults(t *testing.T) {
	mock := storetest.NewMockClient(t)
	var captured *dynamodb.PutItemInput
	mock.PutFunc = func(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
		captured = params
		return &dynamodb.PutItemOutput{}, nil
	}
	s := newTestStore(t, mock)

	project, err := s.CreateProject(context.Background(), "u1", model.CreateProjectRequest{Name: "P"})
	require.NoError(t, err)

	assert.Equal(t, []string{"TODO", "IN PROGRESS", "COMPLETE"}, project.Statuses)
	assert.Equal(t, []string{}, project.Labels)
	assert.Equal(t, "u1", project.UserID)
	assert.Equal(t, "id-1", project.ID)

	require.NotNil(t, captured)
	require.NotNil(t, captured.ConditionExpression, "create must be conditional on non-existence")

	var item projectItem
	require.NoError(t, attributevalue.UnmarshalMap(captured.Item, &item))
	assert.Equal(t, "PROJECT#id-1", item.PK)
	assert.Equal(t, "PROJECT", item.SK)
	assert.Equal(t, "USER#u1", item.GSI1PK)
	assert.Equal(t, "PROJECT#id-1", item.GSI1SK)
}

func TestCreateProjectNormalizesInput(t *testing.T) {
	mock := storetest.NewMockClient(t)
	mock.PutFunc = func(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
		return &dynamodb.PutItemOutput{}, nil
	}
	s := newTestStore(t, mock)

	project, err := s.CreateProject(context.Background(), "u1", model.CreateProjectRequest{
		Name:     "  Board ",
		Statuses: []string{" to  do ", "Done", "done"},
		Labels:   []string{"zeta", "Docs", "docs"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Board", project.Name)
	assert.Equal(t, []string{"TO DO", "DONE"}, project.Statuses)
	assert.Equal(t, []string{"Docs", "zeta"}, project.Labels)
}

func TestCreateProjectAggregatesValidationErrors(t *testing.T) {
	// No mock functions assigned: any store call fails the test, proving
	// nothing is written when validation fails.
	s := newTestStore(t, storetest.NewMockClient(t))

	_, err := s.CreateProject(context.Background(), "u1", model.CreateProjectRequest{
		Name:     "  ",
		Statuses: []string{""},
		Labels:   []string{"this label text is much much much too long to pass the length check"},
	})
	ve, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Len(t, ve.Messages, 3)
}

func TestGetProjectNotFound(t *testing.T) {
	mock := storetest.NewMockClient(t)
	mock.GetFunc = func(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{}, nil
	}
	s := newTestStore(t, mock)

	_, err := s.GetProject(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetProjectRoundTrip(t *testing.T) {
	want := testProject("api")
	mock := storetest.NewMockClient(t)
	mock.GetFunc = func(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{Item: marshalProject(t, want)}, nil
	}
	s := newTestStore(t, mock)

	got, err := s.GetProject(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListProjectsByUserPagination(t *testing.T) {
	p1, p2 := testProject(), testProject()
	p2.ID = "p2"

	mock := storetest.NewMockClient(t)
	mock.QueryFunc = func(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
		assert.Equal(t, IndexGSI1, *params.IndexName)
		return &dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{marshalProject(t, p1), marshalProject(t, p2)},
			LastEvaluatedKey: map[string]types.AttributeValue{
				AttrPK:     &types.AttributeValueMemberS{Value: "PROJECT#p2"},
				AttrSK:     &types.AttributeValueMemberS{Value: "PROJECT"},
				AttrGSI1PK: &types.AttributeValueMemberS{Value: "USER#u1"},
				AttrGSI1SK: &types.AttributeValueMemberS{Value: "PROJECT#p2"},
			},
		}, nil
	}
	s := newTestStore(t, mock)

	projects, cursor, err := s.ListProjectsByUser(context.Background(), "u1", 2, "")
	require.NoError(t, err)
	assert.Len(t, projects, 2)
	assert.NotEmpty(t, cursor)

	// The cursor feeds back in as the next page's start key.
	mock.QueryFunc = func(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
		require.NotNil(t, params.ExclusiveStartKey)
		start, ok := params.ExclusiveStartKey[AttrPK].(*types.AttributeValueMemberS)
		require.True(t, ok)
		assert.Equal(t, "PROJECT#p2", start.Value)
		return &dynamodb.QueryOutput{}, nil
	}
	projects, cursor, err = s.ListProjectsByUser(context.Background(), "u1", 2, cursor)
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.Empty(t, cursor)
}

func TestUpdateProjectPartialPatch(t *testing.T) {
	updated := testProject()
	updated.Name = "Renamed"

	mock := storetest.NewMockClient(t)
	mock.UpdateFunc = func(ctx context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
		require.NotNil(t, params.ConditionExpression)
		names := params.ExpressionAttributeNames
		assert.Contains(t, mapValues(names), "name")
		assert.Contains(t, mapValues(names), "updatedAt")
		assert.NotContains(t, mapValues(names), "statuses", "absent fields stay untouched")
		assert.NotContains(t, mapValues(names), "labels")
		return &dynamodb.UpdateItemOutput{Attributes: marshalProject(t, updated)}, nil
	}
	s := newTestStore(t, mock)

	got, err := s.UpdateProject(context.Background(), "u1", "p1", model.UpdateProjectRequest{
		Name: model.Field[string]{Valid: true, Value: "Renamed"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestUpdateProjectEmptyStatusesRejected(t *testing.T) {
	s := newTestStore(t, storetest.NewMockClient(t))

	_, err := s.UpdateProject(context.Background(), "u1", "p1", model.UpdateProjectRequest{
		Statuses: model.Field[[]string]{Valid: true, Value: []string{}},
	})
	ve, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"statuses must include at least one value"}, ve.Messages)
}

func TestUpdateProjectConditionFailureIsNotFound(t *testing.T) {
	mock := storetest.NewMockClient(t)
	mock.UpdateFunc = func(ctx context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	s := newTestStore(t, mock)

	_, err := s.UpdateProject(context.Background(), "intruder", "p1", model.UpdateProjectRequest{
		Name: model.Field[string]{Valid: true, Value: "X"},
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound,
		"ownership mismatch and missing item must be indistinguishable")
}

func TestUpdateProjectStoreFailureIsInternal(t *testing.T) {
	mock := storetest.NewMockClient(t)
	mock.UpdateFunc = func(ctx context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
		return nil, errors.New("throttled")
	}
	s := newTestStore(t, mock)

	_, err := s.UpdateProject(context.Background(), "u1", "p1", model.UpdateProjectRequest{
		Name: model.Field[string]{Valid: true, Value: "X"},
	})
	ie, ok := apperr.IsInternal(err)
	require.True(t, ok)
	assert.NotEmpty(t, ie.CorrelationID)
}

func mapValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
