package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerSubmission is one submitted answer; ids arrive as hex strings and are
// matched leniently during evaluation.
type AnswerSubmission struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

// OptionSnapshot pins an option's text and id at evaluation time so later
// edits to the question cannot rewrite history.
type OptionSnapshot struct {
	Text string `bson:"text" json:"text"`
	ID   string `bson:"_id" json:"_id"`
}

type EvaluatedAnswer struct {
	QuestionID     primitive.ObjectID `bson:"questionId" json:"questionId"`
	Question       string             `bson:"question" json:"question"`
	Options        []OptionSnapshot   `bson:"options" json:"options"`
	SelectedOption OptionSnapshot     `bson:"selectedOption" json:"selectedOption"`
	IsCorrect      bool               `bson:"isCorrect" json:"isCorrect"`
	Marks          int                `bson:"marks" json:"marks"`
}

type QuizResultEntry struct {
	QuizID     primitive.ObjectID `bson:"quizId" json:"quizId"`
	Answers    []EvaluatedAnswer  `bson:"answers" json:"answers"`
	Score      int                `bson:"score" json:"score"`
	TotalMarks int                `bson:"totalMarks" json:"totalMarks"`
	Percentage float64            `bson:"percentage" json:"percentage"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserResults owns every quiz outcome for one user, at most one entry per quiz.
type UserResults struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	QuizResults []QuizResultEntry  `bson:"quizResults" json:"quizResults"`
}

// UpsertQuizResult is the only mutation on the aggregate: it replaces the
// entry for the same quiz in place, keeping its position, or appends when the
// quiz has not been attempted before.
func (r *UserResults) UpsertQuizResult(entry QuizResultEntry) {
	for i := range r.QuizResults {
		if r.QuizResults[i].QuizID == entry.QuizID {
			r.QuizResults[i] = entry
			return
		}
	}
	r.QuizResults = append(r.QuizResults, entry)
}

// FindQuizResult returns the entry for quizID, if any.
func (r *UserResults) FindQuizResult(quizID primitive.ObjectID) (QuizResultEntry, bool) {
	for _, entry := range r.QuizResults {
		if entry.QuizID == quizID {
			return entry, true
		}
	}
	return QuizResultEntry{}, false
}
