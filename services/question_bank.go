package services

import (
	"gorm.io/gorm"
)

// QuestionBank bundles the repositories that share one connection pool.
// The pool is safe for concurrent use, so handlers call it without any
// further locking.
type QuestionBank struct {
	Questions *QuestionService
	Answers   *AnswerService
}

func NewQuestionBank(db *gorm.DB, events Publisher) *QuestionBank {
	return &QuestionBank{
		Questions: NewQuestionService(db, events),
		Answers:   NewAnswerService(db, events),
	}
}
