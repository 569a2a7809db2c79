package store

import (
	"time"

	"github.com/taskwell/taskwell/internal/model"
)

// projectItem is the stored shape of a project. Timestamps are kept as
// ISO-8601 strings so items stay readable in the console and portable across
// runtimes.
type projectItem struct {
	PK          string   `dynamodbav:"PK"`
	SK          string   `dynamodbav:"SK"`
	GSI1PK      string   `dynamodbav:"GSI1PK"`
	GSI1SK      string   `dynamodbav:"GSI1SK"`
	ID          string   `dynamodbav:"id"`
	UserID      string   `dynamodbav:"userId"`
	Name        string   `dynamodbav:"name"`
	Description *string  `dynamodbav:"description"`
	Statuses    []string `dynamodbav:"statuses"`
	Labels      []string `dynamodbav:"labels"`
	CreatedAt   string   `dynamodbav:"createdAt"`
	UpdatedAt   string   `dynamodbav:"updatedAt"`
}

type taskItem struct {
	PK          string   `dynamodbav:"PK"`
	SK          string   `dynamodbav:"SK"`
	ProjectID   string   `dynamodbav:"projectId"`
	TaskID      string   `dynamodbav:"taskId"`
	UserID      string   `dynamodbav:"userId"`
	Name        string   `dynamodbav:"name"`
	Description *string  `dynamodbav:"description"`
	Status      string   `dynamodbav:"status"`
	Priority    string   `dynamodbav:"priority"`
	StartDate   *string  `dynamodbav:"startDate"`
	DueDate     *string  `dynamodbav:"dueDate"`
	Labels      []string `dynamodbav:"labels"`
	CreatedAt   string   `dynamodbav:"createdAt"`
	UpdatedAt   string   `dynamodbav:"updatedAt"`
}

type profileItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	UserID      string `dynamodbav:"userId"`
	DisplayName string `dynamodbav:"displayName"`
	Timezone    string `dynamodbav:"timezone"`
	CreatedAt   string `dynamodbav:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func newProjectItem(p *model.Project) projectItem {
	return projectItem{
		PK:          ProjectPK(p.ID),
		SK:          SKProject,
		GSI1PK:      UserGSI1PK(p.UserID),
		GSI1SK:      ProjectPK(p.ID),
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Statuses:    p.Statuses,
		Labels:      p.Labels,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func (i projectItem) toProject() *model.Project {
	labels := i.Labels
	if labels == nil {
		labels = []string{}
	}
	return &model.Project{
		ID:          i.ID,
		UserID:      i.UserID,
		Name:        i.Name,
		Description: i.Description,
		Statuses:    i.Statuses,
		Labels:      labels,
		CreatedAt:   parseTime(i.CreatedAt),
		UpdatedAt:   parseTime(i.UpdatedAt),
	}
}

func newTaskItem(t *model.Task) taskItem {
	return taskItem{
		PK:          ProjectPK(t.ProjectID),
		SK:          TaskSK(t.TaskID),
		ProjectID:   t.ProjectID,
		TaskID:      t.TaskID,
		UserID:      t.UserID,
		Name:        t.Name,
		Description: t.Description,
		Status:      t.Status,
		Priority:    string(t.Priority),
		StartDate:   t.StartDate,
		DueDate:     t.DueDate,
		Labels:      t.Labels,
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
}

func (i taskItem) toTask() *model.Task {
	labels := i.Labels
	if labels == nil {
		labels = []string{}
	}
	return &model.Task{
		ProjectID:   i.ProjectID,
		TaskID:      i.TaskID,
		UserID:      i.UserID,
		Name:        i.Name,
		Description: i.Description,
		Status:      i.Status,
		Priority:    model.Priority(i.Priority),
		StartDate:   i.StartDate,
		DueDate:     i.DueDate,
		Labels:      labels,
		CreatedAt:   parseTime(i.CreatedAt),
		UpdatedAt:   parseTime(i.UpdatedAt),
	}
}

func (i profileItem) toProfile() *model.UserProfile {
	return &model.UserProfile{
		UserID:      i.UserID,
		DisplayName: i.DisplayName,
		Timezone:    i.Timezone,
		CreatedAt:   parseTime(i.CreatedAt),
		UpdatedAt:   parseTime(i.UpdatedAt),
	}
}
