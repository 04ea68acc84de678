// Package events publishes quiz lifecycle events for downstream consumers
// (projection screens, analytics). Publishing is best-effort: the session
// engine never fails a request because an event could not be delivered.
package events

import "context"

type EventType string

const (
	QuizCreated    = EventType("quiz-created")
	QuestionOpened = EventType("question-opened")
	QuestionClosed = EventType("question-closed")
)

// Event describes a state change of one quiz.
type Event struct {
	Type       EventType `json:"type"`
	QuizID     string    `json:"quiz_id"`
	QuestionID int       `json:"question_id,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
