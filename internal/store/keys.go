package store

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names for the table's key schema.
const (
	AttrPK     = "PK"
	AttrSK     = "SK"
	AttrGSI1PK = "GSI1PK"
	AttrGSI1SK = "GSI1SK"
)

// IndexGSI1 is the secondary index keyed by owning user.
const IndexGSI1 = "GSI1"

// Key prefixes and sort-key literals. Tasks share their project's partition,
// which is what makes the begins_with sweep in the cascading delete possible.
const (
	PrefixProject = "PROJECT#"
	PrefixTask    = "TASK#"
	PrefixUser    = "USER#"

	SKProject = "PROJECT"
	SKProfile = "PROFILE"
)

// ProjectPK builds the partition key shared by a project and all its tasks.
func ProjectPK(projectID string) string { return PrefixProject + projectID }

// TaskSK builds a task's sort key.
func TaskSK(taskID string) string { return PrefixTask + taskID }

// UserGSI1PK builds the secondary-index hash key for a user's projects.
func UserGSI1PK(userID string) string { return PrefixUser + userID }

// UserPK builds the partition key of a user's profile item.
func UserPK(userID string) string { return PrefixUser + userID }

// IsTaskSK reports whether a sort key denotes a task item.
func IsTaskSK(sk string) bool { return strings.HasPrefix(sk, PrefixTask) }

// TaskIDFromSK strips the task prefix off a sort key.
func TaskIDFromSK(sk string) string { return strings.TrimPrefix(sk, PrefixTask) }

func stringKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: pk},
		AttrSK: &types.AttributeValueMemberS{Value: sk},
	}
}

// ProjectKey builds the full primary key of a project item.
func ProjectKey(projectID string) map[string]types.AttributeValue {
	return stringKey(ProjectPK(projectID), SKProject)
}

// TaskKey builds the full primary key of a task item.
func TaskKey(projectID, taskID string) map[string]types.AttributeValue {
	return stringKey(ProjectPK(projectID), TaskSK(taskID))
}

// ProfileKey builds the full primary key of a user profile item.
func ProfileKey(userID string) map[string]types.AttributeValue {
	return stringKey(UserPK(userID), SKProfile)
}
