package model

import "fmt"

// --------------------------------------------------------------------------
// Event categories
// --------------------------------------------------------------------------

// Category is the closed set of event kinds. Values outside the three
// constants never survive ParseCategory, so downstream switches only need
// the three cases plus an unreachable default.
type Category string

const (
	// CategoryBattle scores participation by merit gained.
	CategoryBattle Category = "battle"
	// CategorySiege scores participation by contribution or assists gained.
	CategorySiege Category = "siege"
	// CategoryForbidden marks restricted zones: activity is a violation,
	// not participation.
	CategoryForbidden Category = "forbidden"
)

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{CategoryBattle, CategorySiege, CategoryForbidden}
}

// ParseCategory converts raw input into a Category or fails.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryBattle, CategorySiege, CategoryForbidden:
		return Category(s), nil
	}
	return "", fmt.Errorf("parse category %q: %w", s, ErrUnknownCategory)
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBattle, CategorySiege, CategoryForbidden:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// --------------------------------------------------------------------------
// Event status
// --------------------------------------------------------------------------

// EventStatus is the event lifecycle state: draft → analyzing → completed.
// Reprocessing a completed event moves it back through analyzing.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusAnalyzing EventStatus = "analyzing"
	EventStatusCompleted EventStatus = "completed"
)

// ParseEventStatus converts raw input into an EventStatus or fails.
func ParseEventStatus(s string) (EventStatus, error) {
	switch EventStatus(s) {
	case EventStatusDraft, EventStatusAnalyzing, EventStatusCompleted:
		return EventStatus(s), nil
	}
	return "", fmt.Errorf("parse event status %q: %w", s, ErrUnknownStatus)
}

func (s EventStatus) String() string { return string(s) }

// --------------------------------------------------------------------------
// Rebuild job status
// --------------------------------------------------------------------------

// JobStatus is the rebuild job lifecycle state.
type JobStatus string

const (
	JobStatusQueued  JobStatus = "queued"
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusFailed  JobStatus = "failed"
)

// Terminal reports whether the job has finished, successfully or not.
func (s JobStatus) Terminal() bool {
	return s == JobStatusDone || s == JobStatusFailed
}

func (s JobStatus) String() string { return string(s) }
