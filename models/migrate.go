package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the question bank schema. The junction table
// is registered first so that its composite key comes from QuestionTag
// rather than gorm's generated join model.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Question{}, "Tags", &QuestionTag{}); err != nil {
		return fmt.Errorf("failed to set up question_tags: %w", err)
	}

	err := db.AutoMigrate(
		&Question{},
		&Tag{},
		&QuestionTag{},
		&Answer{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
