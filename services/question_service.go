package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"questionbank/errorz"
	"questionbank/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionService struct {
	db     *gorm.DB
	events Publisher
}

func NewQuestionService(db *gorm.DB, events Publisher) *QuestionService {
	return &QuestionService{db: db, events: events}
}

// Question is the API representation of a question. Tags behave as a set:
// they are returned sorted and without duplicates.
type Question struct {
	ID      uint     `json:"id"`
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags,omitempty"`
}

func questionFromModel(m models.Question) Question {
	q := Question{
		ID:      m.ID,
		Title:   m.Title,
		Content: m.Content,
	}
	if len(m.Tags) == 0 {
		return q
	}

	seen := make(map[string]bool, len(m.Tags))
	for _, tag := range m.Tags {
		if seen[tag.Name] {
			continue
		}
		seen[tag.Name] = true
		q.Tags = append(q.Tags, tag.Name)
	}
	sort.Strings(q.Tags)
	return q
}

func questionsFromModels(rows []models.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, questionFromModel(row))
	}
	return out
}

// normalizeTags trims names, drops empty ones and collapses duplicates,
// keeping first-seen order.
func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func validateQuestion(q *Question) error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("question title is required: %w", errorz.ErrUnprocessable)
	}
	if strings.TrimSpace(q.Content) == "" {
		return fmt.Errorf("question content is required: %w", errorz.ErrUnprocessable)
	}
	return nil
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, errorz.ErrNotFound)
	}
	return err
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.id")
}

func (s *QuestionService) Get(ctx context.Context, id uint) (*Question, error) {
	var row models.Question
	err := s.db.WithContext(ctx).
		Preload("Tags", preloadTags).
		First(&row, id).Error
	if err != nil {
		return nil, notFound(err, "question", id)
	}

	q := questionFromModel(row)
	return &q, nil
}

// List returns every question in ascending id order.
func (s *QuestionService) List(ctx context.Context) ([]Question, error) {
	var rows []models.Question
	err := s.db.WithContext(ctx).
		Preload("Tags", preloadTags).
		Order("questions.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return questionsFromModels(rows), nil
}

// Paginate returns the page-th window of limit questions in ascending id
// order. A window starting past the last question is rejected; a window
// starting exactly at the end is empty.
func (s *QuestionService) Paginate(ctx context.Context, page, limit int) ([]Question, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("page %d, limit %d: %w", page, limit, errorz.ErrPaginationInvalid)
	}

	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Question{}).Count(&total).Error; err != nil {
		return nil, err
	}

	// (page-1)*limit > total, compared without multiplying so huge
	// values cannot overflow.
	if int64(page-1) > total/int64(limit) {
		return nil, fmt.Errorf("page %d, limit %d past %d questions: %w", page, limit, total, errorz.ErrPaginationInvalid)
	}
	offset := int64(page-1) * int64(limit)

	var rows []models.Question
	err := db.Preload("Tags", preloadTags).
		Order("questions.id ASC").
		Limit(limit).
		Offset(int(offset)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return questionsFromModels(rows), nil
}

// Random samples one question. An empty bank reports ErrNotFound.
func (s *QuestionService) Random(ctx context.Context) (*Question, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Question{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, fmt.Errorf("question bank is empty: %w", errorz.ErrNotFound)
	}

	var rows []models.Question
	err := db.Preload("Tags", preloadTags).
		Order("questions.id ASC").
		Offset(int(rand.Int64N(total))).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		// Questions were deleted between the count and the fetch.
		return nil, fmt.Errorf("question bank is empty: %w", errorz.ErrNotFound)
	}

	q := questionFromModel(rows[0])
	return &q, nil
}

// Add inserts the question with a fresh tag row per tag name and returns
// the generated id. All rows are written in one transaction.
func (s *QuestionService) Add(ctx context.Context, q Question) (uint, error) {
	if err := validateQuestion(&q); err != nil {
		return 0, err
	}

	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	row := models.Question{
		Title:   q.Title,
		Content: q.Content,
	}
	if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := linkTags(tx, row.ID, q.Tags); err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	publish(ctx, s.events, Event{Type: EventQuestionCreated, QuestionID: row.ID})
	return row.ID, nil
}

// linkTags inserts one tag row and one junction row per normalised name.
// Existing tags with the same name are not reused.
func linkTags(tx *gorm.DB, questionID uint, tags []string) error {
	for _, name := range normalizeTags(tags) {
		tag := models.Tag{Name: name}
		if err := tx.Create(&tag).Error; err != nil {
			return err
		}

		link := models.QuestionTag{QuestionID: questionID, TagID: tag.ID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the question together with its tag links and answer.
// Deleting an unknown id is not an error.
func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.QuestionTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Question{}, id)
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return err
	}

	if deleted > 0 {
		publish(ctx, s.events, Event{Type: EventQuestionDeleted, QuestionID: id})
	}
	return nil
}

// Update overwrites title and content and replaces the whole tag set.
func (s *QuestionService) Update(ctx context.Context, id uint, q Question) (*Question, error) {
	if err := validateQuestion(&q); err != nil {
		return nil, err
	}
	if q.ID != 0 && q.ID != id {
		return nil, fmt.Errorf("payload id %d does not match question %d: %w", q.ID, id, errorz.ErrUnprocessable)
	}

	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var row models.Question
	if err := tx.First(&row, id).Error; err != nil {
		tx.Rollback()
		return nil, notFound(err, "question", id)
	}

	row.Title = q.Title
	row.Content = q.Content
	if err := tx.Omit(clause.Associations).Save(&row).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Where("question_id = ?", id).Delete(&models.QuestionTag{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := linkTags(tx, id, q.Tags); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	publish(ctx, s.events, Event{Type: EventQuestionUpdated, QuestionID: id})
	return s.Get(ctx, id)
}
