package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"

	"github.com/taskwell/taskwell/internal/apperr"
)

func TestKeyShapes(t *testing.T) {
	assert.Equal(t, "PROJECT#p1", ProjectPK("p1"))
	assert.Equal(t, "TASK#t1", TaskSK("t1"))
	assert.Equal(t, "USER#u1", UserGSI1PK("u1"))

	key := ProjectKey("p1")
	assert.Equal(t, "PROJECT#p1", key[AttrPK].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "PROJECT", key[AttrSK].(*types.AttributeValueMemberS).Value)

	key = TaskKey("p1", "t1")
	assert.Equal(t, "PROJECT#p1", key[AttrPK].(*types.AttributeValueMemberS).Value, "task keys share the project partition")
	assert.Equal(t, "TASK#t1", key[AttrSK].(*types.AttributeValueMemberS).Value)

	key = ProfileKey("u1")
	assert.Equal(t, "USER#u1", key[AttrPK].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "PROFILE", key[AttrSK].(*types.AttributeValueMemberS).Value)
}

func TestTaskSKRecognition(t *testing.T) {
	assert.True(t, IsTaskSK("TASK#t1"))
	assert.False(t, IsTaskSK("PROJECT"))
	assert.False(t, IsTaskSK("PROFILE"))
	assert.Equal(t, "t1", TaskIDFromSK("TASK#t1"))
}

func TestCursorRoundTrip(t *testing.T) {
	key := map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: "PROJECT#p1"},
		AttrSK: &types.AttributeValueMemberS{Value: "TASK#t9"},
	}
	cursor, err := encodeCursor(key)
	assert.NoError(t, err)
	assert.NotEmpty(t, cursor)

	got, err := decodeCursor(cursor)
	assert.NoError(t, err)
	assert.Equal(t, key, got)
}

func TestCursorEmpty(t *testing.T) {
	cursor, err := encodeCursor(nil)
	assert.NoError(t, err)
	assert.Empty(t, cursor)

	key, err := decodeCursor("")
	assert.NoError(t, err)
	assert.Nil(t, key)
}

func TestCursorGarbageRejected(t *testing.T) {
	_, err := decodeCursor("!!not-base64!!")
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)
}
