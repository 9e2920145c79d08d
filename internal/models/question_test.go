package models_test

import (
	"strings"
	"testing"

	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validQuestion() models.Question {
	return models.Question{
		ID:       primitive.NewObjectID(),
		Question: "What is the capital of France?",
		Options: []models.Option{
			{ID: primitive.NewObjectID(), Text: "Paris", IsCorrect: true},
			{ID: primitive.NewObjectID(), Text: "Lyon"},
			{ID: primitive.NewObjectID(), Text: "Marseille"},
		},
		Explanation: "Paris has been the capital since 508 AD.",
		Marks:       5,
	}
}

func TestQuestionValidateAcceptsValidInput(t *testing.T) {
	q := validQuestion()
	if msgs := q.Validate(); len(msgs) != 0 {
		t.Fatalf("expected no validation messages, got %v", msgs)
	}
}

func TestQuestionValidateRejectsNoCorrectOption(t *testing.T) {
	q := validQuestion()
	for i := range q.Options {
		q.Options[i].IsCorrect = false
	}

	msgs := q.Validate()
	if len(msgs) == 0 {
		t.Fatal("expected a validation message")
	}
	if !containsMessage(msgs, "Mark at least one option as correct") {
		t.Fatalf("expected correct-option message, got %v", msgs)
	}
}

func TestQuestionValidateFieldMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Question)
		want   string
	}{
		{"short question", func(q *models.Question) { q.Question = "Too short" }, "Question must be at least 10 characters"},
		{"long question", func(q *models.Question) { q.Question = strings.Repeat("a", 201) }, "Question cannot exceed 200 characters"},
		{"missing marks", func(q *models.Question) { q.Marks = 0 }, "Marks is required"},
		{"marks too high", func(q *models.Question) { q.Marks = 11 }, "Marks cannot exceed 10"},
		{"short explanation", func(q *models.Question) { q.Explanation = "nope" }, "Explanation must be at least 10 characters"},
		{"empty option text", func(q *models.Question) { q.Options[1].Text = "" }, "Option is required"},
		{"long option text", func(q *models.Question) { q.Options[1].Text = strings.Repeat("b", 101) }, "Option cannot exceed 100 characters"},
		{"too many options", func(q *models.Question) {
			q.Options = append(q.Options, models.Option{ID: primitive.NewObjectID(), Text: "Nice", IsCorrect: true},
				models.Option{ID: primitive.NewObjectID(), Text: "Toulouse"})
		}, "There must be between 2 and 4 options"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion()
			tc.mutate(&q)
			msgs := q.Validate()
			if !containsMessage(msgs, tc.want) {
				t.Fatalf("expected %q in %v", tc.want, msgs)
			}
		})
	}
}

func TestMergeOptionsReusesIDsForSameLength(t *testing.T) {
	existing := validQuestion().Options
	incoming := []models.Option{
		{Text: "Paris", IsCorrect: true},
		{Text: "Lyon (edited)"},
		{Text: "Marseille"},
	}

	merged := models.MergeOptions(existing, incoming)
	if len(merged) != 3 {
		t.Fatalf("expected 3 options, got %d", len(merged))
	}
	for i := range merged {
		if merged[i].ID != existing[i].ID {
			t.Fatalf("option %d: expected id %s, got %s", i, existing[i].ID.Hex(), merged[i].ID.Hex())
		}
	}
	if merged[1].Text != "Lyon (edited)" {
		t.Fatalf("expected edited text to survive the merge, got %q", merged[1].Text)
	}
}

func TestMergeOptionsKeepsCallerSuppliedID(t *testing.T) {
	existing := validQuestion().Options
	supplied := primitive.NewObjectID()
	incoming := []models.Option{
		{Text: "Paris", IsCorrect: true},
		{ID: supplied, Text: "Lyon"},
		{Text: "Marseille"},
	}

	merged := models.MergeOptions(existing, incoming)
	if merged[1].ID != supplied {
		t.Fatalf("expected supplied id to win, got %s", merged[1].ID.Hex())
	}
}

func TestMergeOptionsReplacesOnLengthChange(t *testing.T) {
	existing := validQuestion().Options
	incoming := []models.Option{
		{Text: "Paris", IsCorrect: true},
		{Text: "Lyon"},
	}

	merged := models.MergeOptions(existing, incoming)
	if len(merged) != 2 {
		t.Fatalf("expected 2 options, got %d", len(merged))
	}
	for i, opt := range merged {
		if opt.ID.IsZero() {
			t.Fatalf("option %d: expected a fresh id", i)
		}
		if opt.ID == existing[i].ID {
			t.Fatalf("option %d: expected a new id, got the old one", i)
		}
	}
}

func TestEnsureOptionIDs(t *testing.T) {
	preset := primitive.NewObjectID()
	options := models.EnsureOptionIDs([]models.Option{
		{ID: preset, Text: "Paris"},
		{Text: "Lyon"},
	})

	if options[0].ID != preset {
		t.Fatalf("expected preset id to be kept, got %s", options[0].ID.Hex())
	}
	if options[1].ID.IsZero() {
		t.Fatal("expected a generated id for the second option")
	}
}

func containsMessage(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}
