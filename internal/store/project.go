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
	"github.com/taskwell/taskwell/internal/normalize"
)

// CreateProject normalizes the request, generates an id, and writes the
// project item conditional on the key not already existing. An id collision
// is theoretical with UUIDs but the condition still guards it.
func (s *Store) CreateProject(ctx context.Context, userID string, req model.CreateProjectRequest) (*model.Project, error) {
	var messages []string

	name := strings.TrimSpace(req.Name)
	if name == "" {
		messages = append(messages, "name must not be empty")
	}
	statuses, msgs := normalize.Statuses(req.Statuses, normalize.DefaultStatuses)
	messages = append(messages, msgs...)
	labels, msgs := normalize.Labels(req.Labels)
	messages = append(messages, msgs...)
	if len(messages) > 0 {
		return nil, apperr.NewValidation(messages...)
	}

	now := s.now()
	project := &model.Project{
		ID:          s.newID(),
		UserID:      userID,
		Name:        name,
		Description: req.Description,
		Statuses:    statuses,
		Labels:      labels,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	item, err := attributevalue.MarshalMap(newProjectItem(project))
	if err != nil {
		return nil, s.internal("CreateProject.marshal", err)
	}

	cond := expression.AttributeNotExists(expression.Name(AttrPK))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return nil, s.internal("CreateProject.expression", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(s.table),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, s.internal("CreateProject.put", err)
	}

	return project, nil
}

// GetProject fetches a project by id. Reads are not owner-scoped at this
// layer; list endpoints are scoped by user via the secondary index.
func (s *Store) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       ProjectKey(projectID),
	})
	if err != nil {
		return nil, s.internal("GetProject", err)
	}
	if len(out.Item) == 0 {
		return nil, apperr.ErrNotFound
	}

	var item projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, s.internal("GetProject.unmarshal", err)
	}
	return item.toProject(), nil
}

// ListProjectsByUser queries the user index. A zero limit lets the store pick
// the page size; the returned cursor is empty on the final page.
func (s *Store) ListProjectsByUser(ctx context.Context, userID string, limit int32, cursor string) ([]*model.Project, string, error) {
	startKey, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	keyCond := expression.Key(AttrGSI1PK).Equal(expression.Value(UserGSI1PK(userID)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, "", s.internal("ListProjectsByUser.expression", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		IndexName:                 aws.String(IndexGSI1),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, "", s.internal("ListProjectsByUser.query", err)
	}

	projects := make([]*model.Project, 0, len(out.Items))
	for _, raw := range out.Items {
		var item projectItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, "", s.internal("ListProjectsByUser.unmarshal", err)
		}
		projects = append(projects, item.toProject())
	}

	next, err := encodeCursor(out.LastEvaluatedKey)
	if err != nil {
		return nil, "", s.internal("ListProjectsByUser.cursor", err)
	}
	return projects, next, nil
}

// UpdateProject applies a partial patch: absent fields are untouched, an
// explicit null clears the description. Conditional on the project existing
// and being owned by the caller; a lost condition reads as not-found.
func (s *Store) UpdateProject(ctx context.Context, userID, projectID string, req model.UpdateProjectRequest) (*model.Project, error) {
	var messages []string
	update := expression.UpdateBuilder{}

	if req.Name.Valid {
		name := strings.TrimSpace(req.Name.Value)
		if name == "" {
			messages = append(messages, "name must not be empty")
		}
		update = update.Set(expression.Name("name"), expression.Value(name))
	}
	if req.Description.Valid {
		update = update.Set(expression.Name("description"), expression.Value(req.Description.Value))
	}
	if req.Statuses.Valid {
		statuses, msgs := normalize.StatusesStrict(req.Statuses.Value)
		messages = append(messages, msgs...)
		update = update.Set(expression.Name("statuses"), expression.Value(statuses))
	}
	if req.Labels.Valid {
		labels, msgs := normalize.Labels(req.Labels.Value)
		messages = append(messages, msgs...)
		update = update.Set(expression.Name("labels"), expression.Value(labels))
	}
	if len(messages) > 0 {
		return nil, apperr.NewValidation(messages...)
	}

	update = update.Set(expression.Name("updatedAt"), expression.Value(formatTime(s.now())))

	cond := expression.AttributeExists(expression.Name(AttrPK)).
		And(expression.Name("userId").Equal(expression.Value(userID)))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return nil, s.internal("UpdateProject.expression", err)
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       ProjectKey(projectID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, apperr.ErrNotFound
		}
		return nil, s.internal("UpdateProject.update", err)
	}

	var item projectItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, s.internal("UpdateProject.unmarshal", err)
	}
	return item.toProject(), nil
}
