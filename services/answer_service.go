package services

import (
	"context"
	"fmt"
	"strings"

	"questionbank/errorz"
	"questionbank/models"

	"gorm.io/gorm"
)

type AnswerService struct {
	db     *gorm.DB
	events Publisher
}

func NewAnswerService(db *gorm.DB, events Publisher) *AnswerService {
	return &AnswerService{db: db, events: events}
}

// Answer is the API representation of the answer to one question.
type Answer struct {
	ID         uint   `json:"id,omitempty"`
	Content    string `json:"content" binding:"required"`
	QuestionID uint   `json:"question_id,omitempty"`
}

func answerFromModel(m models.Answer) Answer {
	return Answer{
		ID:         m.ID,
		Content:    m.Content,
		QuestionID: m.QuestionID,
	}
}

func validateAnswer(questionID uint, a *Answer) error {
	if strings.TrimSpace(a.Content) == "" {
		return fmt.Errorf("answer content is required: %w", errorz.ErrUnprocessable)
	}
	if a.QuestionID != 0 && a.QuestionID != questionID {
		return fmt.Errorf("payload question_id %d does not match question %d: %w", a.QuestionID, questionID, errorz.ErrUnprocessable)
	}
	return nil
}

func (s *AnswerService) Get(ctx context.Context, questionID uint) (*Answer, error) {
	var row models.Answer
	if err := s.db.WithContext(ctx).Where("question_id = ?", questionID).First(&row).Error; err != nil {
		return nil, notFound(err, "answer for question", questionID)
	}

	a := answerFromModel(row)
	return &a, nil
}

// Add stores the answer to an existing question. A question holds at most
// one answer; a second one is rejected with ErrExists.
func (s *AnswerService) Add(ctx context.Context, questionID uint, a Answer) (*Answer, error) {
	if err := validateAnswer(questionID, &a); err != nil {
		return nil, err
	}

	row := models.Answer{
		QuestionID: questionID,
		Content:    a.Content,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Question{}, questionID).Error; err != nil {
			return notFound(err, "question", questionID)
		}

		var existing int64
		if err := tx.Model(&models.Answer{}).Where("question_id = ?", questionID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("answer for question %d: %w", questionID, errorz.ErrExists)
		}

		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, Event{Type: EventAnswerCreated, QuestionID: questionID})
	out := answerFromModel(row)
	return &out, nil
}

// Delete removes the answer of a question, if there is one.
func (s *AnswerService) Delete(ctx context.Context, questionID uint) error {
	result := s.db.WithContext(ctx).Where("question_id = ?", questionID).Delete(&models.Answer{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		publish(ctx, s.events, Event{Type: EventAnswerDeleted, QuestionID: questionID})
	}
	return nil
}

func (s *AnswerService) Update(ctx context.Context, questionID uint, a Answer) (*Answer, error) {
	if err := validateAnswer(questionID, &a); err != nil {
		return nil, err
	}

	var row models.Answer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).First(&row).Error; err != nil {
			return notFound(err, "answer for question", questionID)
		}

		row.Content = a.Content
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, Event{Type: EventAnswerUpdated, QuestionID: questionID})
	out := answerFromModel(row)
	return &out, nil
}
