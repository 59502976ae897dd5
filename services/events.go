package services

import (
	"context"

	"github.com/sirupsen/logrus"
)

const (
	EventQuestionCreated = "question_created"
	EventQuestionUpdated = "question_updated"
	EventQuestionDeleted = "question_deleted"
	EventAnswerCreated   = "answer_created"
	EventAnswerUpdated   = "answer_updated"
	EventAnswerDeleted   = "answer_deleted"
)

// Event describes a committed change to the question bank.
type Event struct {
	Type       string `json:"type"`
	QuestionID uint   `json:"question_id"`
}

// Publisher announces question bank changes. Both the in-process Hub and
// the RedisEventBus satisfy it.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// publish never fails the caller: the change is already committed.
func publish(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event":       event.Type,
			"question_id": event.QuestionID,
		}).Warn("failed to publish question bank event")
	}
}
