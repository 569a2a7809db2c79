package model

import "fmt"

// Priority is the fixed task priority scale. The zero value is PriorityNone.
type Priority string

const (
	PriorityNone   Priority = "None"
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// ParsePriority maps a client-supplied string onto the enum. An empty string
// defaults to PriorityNone.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return PriorityNone, nil
	case PriorityNone, PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("priority must be one of None, Low, Normal, High, Urgent")
	}
}
