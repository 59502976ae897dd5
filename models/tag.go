package models

// Tag names are not unique: every tagged insert creates its own row.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}

// QuestionTag is the junction row linking a question to one of its tags.
type QuestionTag struct {
	QuestionID uint `json:"question_id" gorm:"primaryKey"`
	TagID      uint `json:"tag_id" gorm:"primaryKey"`
}
