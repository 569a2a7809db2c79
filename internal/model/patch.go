package model

import "encoding/json"

// Field distinguishes "key absent" from "key present" in a partial update
// body. An absent key leaves the stored attribute untouched; a present key
// with a JSON null clears a nullable attribute (Value stays at its zero
// value, which for pointer types is nil).
type Field[T any] struct {
	Valid bool
	Value T
}

// UnmarshalJSON is only invoked for keys present in the request body, so
// Valid doubles as the presence flag.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Valid = true
	if string(data) == "null" {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// CreateProjectRequest is the raw body for project creation. Statuses and
// labels are normalized before storage; nil statuses fall back to the default
// triple.
type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Statuses    []string `json:"statuses"`
	Labels      []string `json:"labels"`
}

// UpdateProjectRequest is a partial patch; only present keys are written.
type UpdateProjectRequest struct {
	Name        Field[string]   `json:"name"`
	Description Field[*string]  `json:"description"`
	Statuses    Field[[]string] `json:"statuses"`
	Labels      Field[[]string] `json:"labels"`
}

// CreateTaskRequest is the raw body for task creation.
type CreateTaskRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	StartDate   *string  `json:"startDate"`
	DueDate     *string  `json:"dueDate"`
	Labels      []string `json:"labels"`
}

// UpdateTaskRequest is a partial patch mirroring UpdateProjectRequest.
type UpdateTaskRequest struct {
	Name        Field[string]   `json:"name"`
	Description Field[*string]  `json:"description"`
	Status      Field[string]   `json:"status"`
	Priority    Field[string]   `json:"priority"`
	StartDate   Field[*string]  `json:"startDate"`
	DueDate     Field[*string]  `json:"dueDate"`
	Labels      Field[[]string] `json:"labels"`
}

// PutProfileRequest upserts the caller's own profile item.
type PutProfileRequest struct {
	DisplayName string `json:"displayName"`
	Timezone    string `json:"timezone"`
}
