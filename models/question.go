package models

import (
	"time"
)

type Question struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Tags   []Tag   `json:"tags,omitempty" gorm:"many2many:question_tags;constraint:OnDelete:CASCADE"`
	Answer *Answer `json:"answer,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}
