package store

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/taskwell/taskwell/internal/apperr"
	"github.com/taskwell/taskwell/internal/model"
	"github.com/taskwell/taskwell/internal/normalize"
)

// CreateTask validates against the parent project's live status vocabulary,
// writes the task conditional on non-existence, then propagates any new
// labels onto the project. If the label sync fails the task write is
// compensated with a delete so callers never observe a task whose labels are
// missing from the project.
func (s *Store) CreateTask(ctx context.Context, userID, projectID string, req model.CreateTaskRequest) (*model.Task, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, apperr.ErrNotFound
	}

	var messages []string

	name := strings.TrimSpace(req.Name)
	if name == "" {
		messages = append(messages, "name must not be empty")
	}

	var status string
	if strings.TrimSpace(req.Status) == "" {
		// Omitted status defaults to the first entry of the project vocabulary.
		status = project.Statuses[0]
	} else {
		var msg string
		status, msg = normalize.Status(req.Status)
		if msg == "" {
			msg = normalize.RequireMember(status, project.Statuses)
		}
		if msg != "" {
			messages = append(messages, msg)
		}
	}

	priority, err := model.ParsePriority(req.Priority)
	if err != nil {
		messages = append(messages, err.Error())
	}
	labels, msgs := normalize.Labels(req.Labels)
	messages = append(messages, msgs...)
	messages = append(messages, normalize.Dates(req.StartDate, req.DueDate)...)
	if len(messages) > 0 {
		return nil, apperr.NewValidation(messages...)
	}

	now := s.now()
	task := &model.Task{
		ProjectID:   projectID,
		TaskID:      s.newID(),
		UserID:      userID,
		Name:        name,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Labels:      labels,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	item, err := attributevalue.MarshalMap(newTaskItem(task))
	if err != nil {
		return nil, s.internal("CreateTask.marshal", err)
	}
	cond := expression.AttributeNotExists(expression.Name(AttrPK))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return nil, s.internal("CreateTask.expression", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(s.table),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, s.internal("CreateTask.put", err)
	}

	if err := s.syncProjectLabels(ctx, project, task.Labels); err != nil {
		s.compensateTaskCreate(ctx, task)
		return nil, err
	}
	return task, nil
}

// compensateTaskCreate undoes a task write after a failed label sync. A
// failed compensation leaves an orphan task; it is logged and the original
// sync error still propagates.
func (s *Store) compensateTaskCreate(ctx context.Context, task *model.Task) {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       TaskKey(task.ProjectID, task.TaskID),
	})
	if err != nil {
		s.log.Error("task create compensation failed",
			zap.String("project_id", task.ProjectID),
			zap.String("task_id", task.TaskID),
			zap.Error(err))
	}
}

// GetTask fetches a task by its project and task ids.
func (s *Store) GetTask(ctx context.Context, projectID, taskID string) (*model.Task, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       TaskKey(projectID, taskID),
	})
	if err != nil {
		return nil, s.internal("GetTask", err)
	}
	if len(out.Item) == 0 {
		return nil, apperr.ErrNotFound
	}
	var item taskItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, s.internal("GetTask.unmarshal", err)
	}
	return item.toTask(), nil
}

// ListTasksByProject queries the project partition for task sort keys.
func (s *Store) ListTasksByProject(ctx context.Context, projectID string, limit int32, cursor string) ([]*model.Task, string, error) {
	startKey, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	keyCond := expression.Key(AttrPK).Equal(expression.Value(ProjectPK(projectID))).
		And(expression.Key(AttrSK).BeginsWith(PrefixTask))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, "", s.internal("ListTasksByProject.expression", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
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
		return nil, "", s.internal("ListTasksByProject.query", err)
	}

	tasks := make([]*model.Task, 0, len(out.Items))
	for _, raw := range out.Items {
		var item taskItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, "", s.internal("ListTasksByProject.unmarshal", err)
		}
		tasks = append(tasks, item.toTask())
	}

	next, err := encodeCursor(out.LastEvaluatedKey)
	if err != nil {
		return nil, "", s.internal("ListTasksByProject.cursor", err)
	}
	return tasks, next, nil
}

// UpdateTask applies a partial patch. A status change is re-validated against
// the project's statuses as they are now, not as they were at task creation.
// Label changes are re-synchronized onto the project after the task write.
func (s *Store) UpdateTask(ctx context.Context, userID, projectID, taskID string, req model.UpdateTaskRequest) (*model.Task, error) {
	var (
		project *model.Project
		err     error
	)
	if req.Status.Valid || req.Labels.Valid {
		project, err = s.GetProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if project.UserID != userID {
			return nil, apperr.ErrNotFound
		}
	}

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
	if req.Status.Valid {
		status, msg := normalize.Status(req.Status.Value)
		if msg == "" {
			msg = normalize.RequireMember(status, project.Statuses)
		}
		if msg != "" {
			messages = append(messages, msg)
		}
		update = update.Set(expression.Name("status"), expression.Value(status))
	}
	if req.Priority.Valid {
		priority, err := model.ParsePriority(req.Priority.Value)
		if err != nil {
			messages = append(messages, err.Error())
		}
		update = update.Set(expression.Name("priority"), expression.Value(string(priority)))
	}
	if req.StartDate.Valid {
		update = update.Set(expression.Name("startDate"), expression.Value(req.StartDate.Value))
	}
	if req.DueDate.Valid {
		update = update.Set(expression.Name("dueDate"), expression.Value(req.DueDate.Value))
	}
	if req.StartDate.Valid || req.DueDate.Valid {
		messages = append(messages, normalize.Dates(req.StartDate.Value, req.DueDate.Value)...)
	}

	var labels []string
	if req.Labels.Valid {
		var msgs []string
		labels, msgs = normalize.Labels(req.Labels.Value)
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
		return nil, s.internal("UpdateTask.expression", err)
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       TaskKey(projectID, taskID),
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
		return nil, s.internal("UpdateTask.update", err)
	}

	var item taskItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, s.internal("UpdateTask.unmarshal", err)
	}
	task := item.toTask()

	if req.Labels.Valid {
		if err := s.syncProjectLabels(ctx, project, labels); err != nil {
			return nil, err
		}
	}
	return task, nil
}

// DeleteTask removes a task, conditional on it existing and being owned by
// the caller.
func (s *Store) DeleteTask(ctx context.Context, userID, projectID, taskID string) error {
	cond := expression.AttributeExists(expression.Name(AttrPK)).
		And(expression.Name("userId").Equal(expression.Value(userID)))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return s.internal("DeleteTask.expression", err)
	}

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(s.table),
		Key:                       TaskKey(projectID, taskID),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperr.ErrNotFound
		}
		return s.internal("DeleteTask.delete", err)
	}
	return nil
}
