// Package normalize canonicalizes free-text status and label input before it
// is stored or compared. Statuses are upper-cased; labels keep their original
// casing and are only compared case-insensitively. Validation problems are
// accumulated so one request reports every bad value, not just the first.
package normalize

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxValueLength bounds a single status or label, counted in runes, after
// whitespace collapsing.
const MaxValueLength = 40

// DefaultStatuses is the vocabulary a project starts with when the client
// supplies none. Callers pass it explicitly so tests can substitute their own
// defaults without touching shared state.
var DefaultStatuses = []string{"TODO", "IN PROGRESS", "COMPLETE"}

// DateLayout is the calendar-date form accepted for start and due dates.
const DateLayout = "2006-01-02"

// collapse trims and folds internal whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status canonicalizes a single status value: trim, collapse, length check,
// then upper-case.
func Status(raw string) (string, string) {
	v := collapse(raw)
	if v == "" {
		return "", "statuses must not contain empty values"
	}
	if utf8.RuneCountInString(v) > MaxValueLength {
		return "", fmt.Sprintf("status %q must be %d characters or fewer", v, MaxValueLength)
	}
	return strings.ToUpper(v), ""
}

// Label canonicalizes a single label. Unlike statuses the original casing is
// preserved; only the dedup comparison is case-insensitive.
func Label(raw string) (string, string) {
	v := collapse(raw)
	if v == "" {
		return "", "labels must not contain empty values"
	}
	if utf8.RuneCountInString(v) > MaxValueLength {
		return "", fmt.Sprintf("label %q must be %d characters or fewer", v, MaxValueLength)
	}
	return v, ""
}

// Statuses normalizes a status list for project creation. A nil or empty
// input falls back to defaults. Order is preserved; case-insensitive
// duplicates collapse to their first occurrence.
func Statuses(raw []string, defaults []string) ([]string, []string) {
	if len(raw) == 0 {
		out := make([]string, len(defaults))
		copy(out, defaults)
		return out, nil
	}
	return StatusesStrict(raw)
}

// StatusesStrict normalizes a status list for explicit updates: the result
// must end up non-empty or the whole request is rejected.
func StatusesStrict(raw []string) ([]string, []string) {
	var (
		out      []string
		messages []string
		seen     = map[string]bool{}
	)
	for _, r := range raw {
		v, msg := Status(r)
		if msg != "" {
			messages = append(messages, msg)
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	if len(messages) > 0 {
		return nil, messages
	}
	if len(out) == 0 {
		return nil, []string{"statuses must include at least one value"}
	}
	return out, nil
}

// Labels normalizes a label list. Case-insensitive duplicates collapse to the
// first-seen casing, and the result is sorted case-insensitively so stored
// label sets compare and render deterministically. The empty list is valid.
func Labels(raw []string) ([]string, []string) {
	var (
		out      []string
		messages []string
		seen     = map[string]bool{}
	)
	for _, r := range raw {
		v, msg := Label(r)
		if msg != "" {
			messages = append(messages, msg)
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	if len(messages) > 0 {
		return nil, messages
	}
	SortLabels(out)
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// SortLabels orders labels case-insensitively in place. Keys are unique
// case-insensitively by construction, so ties cannot occur.
func SortLabels(labels []string) {
	sort.Slice(labels, func(i, j int) bool {
		return strings.ToLower(labels[i]) < strings.ToLower(labels[j])
	})
}

// RequireMember checks the core cross-entity invariant: a task status must be
// an exact member of the parent project's live statuses.
func RequireMember(status string, statuses []string) string {
	for _, s := range statuses {
		if s == status {
			return ""
		}
	}
	return "status must match one of the project statuses"
}

// Dates validates the optional start/due pair: each must parse as a calendar
// date, and when both are present the due date may not precede the start.
func Dates(start, due *string) []string {
	var (
		messages []string
		from, to time.Time
		err      error
	)
	if start != nil {
		from, err = time.Parse(DateLayout, *start)
		if err != nil {
			messages = append(messages, fmt.Sprintf("startDate %q must be an ISO-8601 date (YYYY-MM-DD)", *start))
		}
	}
	if due != nil {
		to, err = time.Parse(DateLayout, *due)
		if err != nil {
			messages = append(messages, fmt.Sprintf("dueDate %q must be an ISO-8601 date (YYYY-MM-DD)", *due))
		}
	}
	if len(messages) == 0 && start != nil && due != nil && to.Before(from) {
		messages = append(messages, "dueDate must be on or after startDate")
	}
	return messages
}
