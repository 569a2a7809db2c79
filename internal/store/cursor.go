package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/taskwell/taskwell/internal/apperr"
)

// List cursors are the table's LastEvaluatedKey flattened to strings and
// base64-encoded. Every key attribute in this schema is a string, so the
// round trip is lossless. Clients treat cursors as opaque.

func encodeCursor(lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}
	flat := make(map[string]string, len(lastKey))
	for name, av := range lastKey {
		sv, ok := av.(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("unexpected key attribute type for %s", name)
		}
		flat[name] = sv.Value
	}
	raw, err := json.Marshal(flat)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeCursor(cursor string) (map[string]types.AttributeValue, error) {
	if cursor == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, apperr.NewValidation("cursor is not valid")
	}
	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, apperr.NewValidation("cursor is not valid")
	}
	key := make(map[string]types.AttributeValue, len(flat))
	for name, value := range flat {
		key[name] = &types.AttributeValueMemberS{Value: value}
	}
	return key, nil
}
