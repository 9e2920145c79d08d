package models

import (
	"time"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Quiz struct {
	ID          primitive.ObjectID   `bson:"_id" json:"_id"`
	Title       string               `bson:"title" json:"title" validate:"required,min=5,max=50"`
	Description string               `bson:"description" json:"description" validate:"required,min=10,max=200"`
	Duration    int                  `bson:"duration" json:"duration" validate:"required,min=1,max=120"`
	Difficulty  string               `bson:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Questions   []primitive.ObjectID `bson:"questions" json:"questions"`
	TotalMarks  int                  `bson:"totalMarks" json:"totalMarks" validate:"min=1,max=100"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	UpdatedBy   primitive.ObjectID   `bson:"updatedBy" json:"updatedBy"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ApplyDefaults mirrors the schema defaults.
func (q *Quiz) ApplyDefaults() {
	if q.Difficulty == "" {
		q.Difficulty = DifficultyEasy
	}
}

// ComputeTotalMarks sums the marks of the resolved questions. The stored
// totalMarks is always this value, never the caller's.
func ComputeTotalMarks(questions []Question) int {
	total := 0
	for _, q := range questions {
		total += q.Marks
	}
	return total
}

// Validate returns one message per violated field, empty when the quiz is valid.
func (q *Quiz) Validate() []string {
	var msgs []string
	if err := validate.Struct(q); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range errs {
				msgs = append(msgs, quizFieldMessage(e))
			}
		} else {
			msgs = append(msgs, err.Error())
		}
	}
	return msgs
}

func quizFieldMessage(e validator.FieldError) string {
	switch e.Field() {
	case "Title":
		switch e.Tag() {
		case "min":
			return "Title must be at least 5 characters"
		case "max":
			return "Title cannot exceed 50 characters"
		}
		return "Title is required"
	case "Description":
		switch e.Tag() {
		case "min":
			return "Description must be at least 10 characters"
		case "max":
			return "Description cannot exceed 200 characters"
		}
		return "Description is required"
	case "Duration":
		switch e.Tag() {
		case "min":
			return "Duration must be at least 1 minute"
		case "max":
			return "Duration cannot exceed 120 minutes"
		}
		return "Duration is required"
	case "Difficulty":
		return "Difficulty must be either easy, medium, or hard"
	case "TotalMarks":
		if e.Tag() == "max" {
			return "Total marks cannot exceed 100"
		}
		return "Total marks must be at least 1"
	}
	return e.Field() + " is invalid"
}
