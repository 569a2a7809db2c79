package store

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/taskwell/taskwell/internal/apperr"
	"github.com/taskwell/taskwell/internal/model"
	"github.com/taskwell/taskwell/internal/normalize"
)

// missingLabels returns the candidates not already present in existing,
// compared case-insensitively. Candidates are assumed normalized.
func missingLabels(existing, candidates []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, l := range existing {
		seen[strings.ToLower(l)] = true
	}
	var missing []string
	for _, c := range candidates {
		if !seen[strings.ToLower(c)] {
			missing = append(missing, c)
		}
	}
	return missing
}

// syncProjectLabels propagates labels newly observed on a task back onto the
// parent project. It runs strictly after the task write, as its own
// conditional single-item update; the two writes are never atomic, which is
// why task creation compensates when this step fails. Two concurrent syncs
// race read-then-write on the labels attribute; last writer wins.
func (s *Store) syncProjectLabels(ctx context.Context, project *model.Project, taskLabels []string) error {
	missing := missingLabels(project.Labels, taskLabels)
	if len(missing) == 0 {
		return nil
	}

	merged := make([]string, 0, len(project.Labels)+len(missing))
	merged = append(merged, project.Labels...)
	merged = append(merged, missing...)
	normalize.SortLabels(merged)

	update := expression.UpdateBuilder{}.
		Set(expression.Name("labels"), expression.Value(merged)).
		Set(expression.Name("updatedAt"), expression.Value(formatTime(s.now())))
	cond := expression.AttributeExists(expression.Name(AttrPK)).
		And(expression.Name("userId").Equal(expression.Value(project.UserID)))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return s.internal("syncProjectLabels.expression", err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       ProjectKey(project.ID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			// Project deleted or reowned between the task write and the sync.
			return apperr.ErrNotFound
		}
		return s.internal("syncProjectLabels.update", err)
	}

	project.Labels = merged
	return nil
}
