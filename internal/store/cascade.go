package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taskwell/taskwell/internal/apperr"
)

// DeleteProject removes every task in the project's partition and then the
// project item itself. Pages are fetched sequentially because each query's
// start key comes from the previous page; deletes within a page are
// independent and run concurrently, bounded by the store's delete
// parallelism.
//
// A failed delete aborts the sweep with tasks from that page possibly already
// gone; there is no rollback. A task created concurrently in the same
// partition may be swept up or survive as an orphan. Both are accepted
// limitations of the non-transactional protocol.
func (s *Store) DeleteProject(ctx context.Context, userID, projectID string) error {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.UserID != userID {
		return apperr.ErrNotFound
	}

	if err := s.deleteProjectTasks(ctx, projectID); err != nil {
		return err
	}

	cond := expression.AttributeExists(expression.Name(AttrPK)).
		And(expression.Name("userId").Equal(expression.Value(userID)))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return s.internal("DeleteProject.expression", err)
	}

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(s.table),
		Key:                       ProjectKey(projectID),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperr.ErrNotFound
		}
		return s.internal("DeleteProject.delete", err)
	}
	return nil
}

// deleteProjectTasks sweeps the partition for task sort keys page by page.
func (s *Store) deleteProjectTasks(ctx context.Context, projectID string) error {
	keyCond := expression.Key(AttrPK).Equal(expression.Value(ProjectPK(projectID))).
		And(expression.Key(AttrSK).BeginsWith(PrefixTask))
	proj := expression.NamesList(expression.Name(AttrPK), expression.Name(AttrSK))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithProjection(proj).Build()
	if err != nil {
		return s.internal("deleteProjectTasks.expression", err)
	}

	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(s.table),
			KeyConditionExpression:    expr.KeyCondition(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return s.internal("deleteProjectTasks.query", err)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.deleteParallelism)
		for _, item := range out.Items {
			pk, pkOK := item[AttrPK].(*types.AttributeValueMemberS)
			sk, skOK := item[AttrSK].(*types.AttributeValueMemberS)
			if !pkOK || !skOK {
				continue
			}
			key := stringKey(pk.Value, sk.Value)
			g.Go(func() error {
				_, err := s.client.DeleteItem(gctx, &dynamodb.DeleteItemInput{
					TableName: aws.String(s.table),
					Key:       key,
				})
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return s.internal("deleteProjectTasks.delete", err)
		}

		s.log.Debug("deleted task page",
			zap.String("project_id", projectID),
			zap.Int("count", len(out.Items)))

		if len(out.LastEvaluatedKey) == 0 {
			return nil
		}
		startKey = out.LastEvaluatedKey
	}
}
