package models

import (
	"time"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

type Option struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Text      string             `bson:"text" json:"text" validate:"required,min=1,max=100"`
	IsCorrect bool               `bson:"isCorrect" json:"isCorrect"`
}

type Question struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Question    string             `bson:"question" json:"question" validate:"required,min=10,max=200"`
	Options     []Option           `bson:"options" json:"options" validate:"required,min=2,max=4,dive"`
	Explanation string             `bson:"explanation" json:"explanation" validate:"required,min=10,max=200"`
	Marks       int                `bson:"marks" json:"marks" validate:"required,min=1,max=10"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	UpdatedBy   primitive.ObjectID `bson:"updatedBy" json:"updatedBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasCorrectOption reports whether at least one option is flagged correct.
func (q *Question) HasCorrectOption() bool {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return true
		}
	}
	return false
}

// Validate returns one message per violated field, empty when the question is valid.
func (q *Question) Validate() []string {
	var msgs []string
	if err := validate.Struct(q); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range errs {
				msgs = append(msgs, questionFieldMessage(e))
			}
		} else {
			msgs = append(msgs, err.Error())
		}
	}
	if len(q.Options) > 0 && !q.HasCorrectOption() {
		msgs = append(msgs, "Mark at least one option as correct")
	}
	return msgs
}

func questionFieldMessage(e validator.FieldError) string {
	switch e.Field() {
	case "Question":
		switch e.Tag() {
		case "min":
			return "Question must be at least 10 characters"
		case "max":
			return "Question cannot exceed 200 characters"
		}
		return "Question is required"
	case "Options":
		if e.Tag() == "min" || e.Tag() == "max" {
			return "There must be between 2 and 4 options"
		}
		return "Options are required"
	case "Text":
		switch e.Tag() {
		case "min":
			return "Option must be at least 1 character"
		case "max":
			return "Option cannot exceed 100 characters"
		}
		return "Option is required"
	case "Explanation":
		switch e.Tag() {
		case "min":
			return "Explanation must be at least 10 characters"
		case "max":
			return "Explanation cannot exceed 200 characters"
		}
		return "Explanation is required"
	case "Marks":
		switch e.Tag() {
		case "min":
			return "Marks must be at least 1"
		case "max":
			return "Marks cannot exceed 10"
		}
		return "Marks is required"
	}
	return e.Field() + " is invalid"
}

// EnsureOptionIDs assigns an id to every option that does not carry one yet.
func EnsureOptionIDs(options []Option) []Option {
	out := make([]Option, len(options))
	for i, opt := range options {
		if opt.ID.IsZero() {
			opt.ID = primitive.NewObjectID()
		}
		out[i] = opt
	}
	return out
}

// MergeOptions applies the update rule for option identities: when the incoming
// list has the same length as the existing one, ids are reused positionally
// (an id supplied by the caller wins); any other length is a full replacement
// and every option without an id gets a fresh one.
func MergeOptions(existing, incoming []Option) []Option {
	if len(incoming) != len(existing) {
		return EnsureOptionIDs(incoming)
	}
	merged := make([]Option, len(incoming))
	for i, opt := range incoming {
		if opt.ID.IsZero() {
			opt.ID = existing[i].ID
		}
		merged[i] = opt
	}
	return merged
}
