package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taskwell/taskwell/internal/model"
	"github.com/taskwell/taskwell/internal/store/storetest"
)

var testTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestStore(t *testing.T, client *storetest.MockClient, opts ...Option) *Store {
	t.Helper()
	seq := 0
	base := []Option{
		WithClock(func() time.Time { return testTime }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}
	return New(client, "taskwell-test", zap.NewNop(), append(base, opts...)...)
}

func marshalProject(t *testing.T, p *model.Project) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(newProjectItem(p))
	require.NoError(t, err)
	return item
}

func marshalTask(t *testing.T, task *model.Task) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(newTaskItem(task))
	require.NoError(t, err)
	return item
}

func testProject(labels ...string) *model.Project {
	if labels == nil {
		labels = []string{}
	}
	return &model.Project{
		ID:        "p1",
		UserID:    "u1",
		Name:      "Roadmap",
		Statuses:  []string{"BACKLOG", "IN QA"},
		Labels:    labels,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

// findListValue scans expression attribute values for a string-list payload,
// used to assert what an update expression writes without depending on the
// builder's generated placeholder names.
func findListValue(t *testing.T, values map[string]types.AttributeValue) []string {
	t.Helper()
	for _, av := range values {
		l, ok := av.(*types.AttributeValueMemberL)
		if !ok {
			continue
		}
		out := make([]string, 0, len(l.Value))
		for _, member := range l.Value {
			s, ok := member.(*types.AttributeValueMemberS)
			require.True(t, ok)
			out = append(out, s.Value)
		}
		return out
	}
	t.Fatal("no list value found in expression attribute values")
	return nil
}
