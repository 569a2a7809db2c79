package store

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/taskwell/taskwell/internal/apperr"
	"github.com/taskwell/taskwell/internal/model"
)

// GetProfile fetches the caller's own profile item.
func (s *Store) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       ProfileKey(userID),
	})
	if err != nil {
		return nil, s.internal("GetProfile", err)
	}
	if len(out.Item) == 0 {
		return nil, apperr.ErrNotFound
	}
	var item profileItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, s.internal("GetProfile.unmarshal", err)
	}
	return item.toProfile(), nil
}

// PutProfile upserts the caller's profile. createdAt is written once via
// if_not_exists so repeated puts keep the original creation time.
func (s *Store) PutProfile(ctx context.Context, userID string, req model.PutProfileRequest) (*model.UserProfile, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, apperr.NewValidation("displayName must not be empty")
	}

	now := formatTime(s.now())
	update := expression.UpdateBuilder{}.
		Set(expression.Name("userId"), expression.Value(userID)).
		Set(expression.Name("displayName"), expression.Value(displayName)).
		Set(expression.Name("timezone"), expression.Value(strings.TrimSpace(req.Timezone))).
		Set(expression.Name("createdAt"), expression.IfNotExists(expression.Name("createdAt"), expression.Value(now))).
		Set(expression.Name("updatedAt"), expression.Value(now))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return nil, s.internal("PutProfile.expression", err)
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       ProfileKey(userID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, s.internal("PutProfile.update", err)
	}

	var item profileItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, s.internal("PutProfile.unmarshal", err)
	}
	return item.toProfile(), nil
}
