// Package model holds the domain types shared by the store and the HTTP
// layer. Entities carry normalized values only; raw client input lives in the
// request types under this package and is canonicalized before it reaches an
// entity.
package model

import "time"

// Project owns a mutable vocabulary of statuses and labels that its tasks
// must conform to.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Statuses    []string  `json:"statuses"`
	Labels      []string  `json:"labels"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Task belongs to a project and shares its partition in the table. Status is
// always an exact member of the parent project's statuses at write time.
type Task struct {
	ProjectID   string    `json:"projectId"`
	TaskID      string    `json:"taskId"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    Priority  `json:"priority"`
	StartDate   *string   `json:"startDate"`
	DueDate     *string   `json:"dueDate"`
	Labels      []string  `json:"labels"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserProfile is keyed by the authenticated user id, one item per user.
type UserProfile struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Timezone    string    `json:"timezone"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
