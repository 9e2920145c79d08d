package models_test

import (
	"math"
	"testing"
	"time"

	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type evalFixture struct {
	quiz      models.Quiz
	questions []models.Question
}

// newEvalFixture builds a quiz with two questions worth 5 and 10 marks.
func newEvalFixture() evalFixture {
	q1 := models.Question{
		ID:       primitive.NewObjectID(),
		Question: "What is the capital of France?",
		Options: []models.Option{
			{ID: primitive.NewObjectID(), Text: "Paris", IsCorrect: true},
			{ID: primitive.NewObjectID(), Text: "Lyon"},
		},
		Explanation: "Paris has been the capital since 508 AD.",
		Marks:       5,
	}
	q2 := models.Question{
		ID:       primitive.NewObjectID(),
		Question: "What is the capital of Germany?",
		Options: []models.Option{
			{ID: primitive.NewObjectID(), Text: "Munich"},
			{ID: primitive.NewObjectID(), Text: "Berlin", IsCorrect: true},
		},
		Explanation: "Berlin again since reunification in 1990.",
		Marks:       10,
	}
	questions := []models.Question{q1, q2}
	quiz := models.Quiz{
		ID:          primitive.NewObjectID(),
		Title:       "European Capitals",
		Description: "A quick tour through the capitals of Europe.",
		Duration:    30,
		Difficulty:  models.DifficultyEasy,
		Questions:   []primitive.ObjectID{q1.ID, q2.ID},
		TotalMarks:  models.ComputeTotalMarks(questions),
	}
	return evalFixture{quiz: quiz, questions: questions}
}

func TestEvaluateAnswersScoresAndPercentage(t *testing.T) {
	f := newEvalFixture()
	now := time.Now()

	answers := []models.AnswerSubmission{
		{QuestionID: f.questions[0].ID.Hex(), SelectedOptionID: f.questions[0].Options[0].ID.Hex()},
		{QuestionID: f.questions[1].ID.Hex(), SelectedOptionID: f.questions[1].Options[0].ID.Hex()},
	}

	entry := models.EvaluateAnswers(f.quiz, f.questions, answers, now)

	if entry.QuizID != f.quiz.ID {
		t.Fatalf("expected quiz id %s, got %s", f.quiz.ID.Hex(), entry.QuizID.Hex())
	}
	if entry.Score != 5 {
		t.Fatalf("expected score 5, got %d", entry.Score)
	}
	if entry.TotalMarks != 15 {
		t.Fatalf("expected total marks 15, got %d", entry.TotalMarks)
	}
	if math.Abs(entry.Percentage-100.0/3.0) > 0.01 {
		t.Fatalf("expected percentage ~33.33, got %f", entry.Percentage)
	}
	if len(entry.Answers) != 2 {
		t.Fatalf("expected 2 evaluated answers, got %d", len(entry.Answers))
	}
	if !entry.CreatedAt.Equal(now) || !entry.UpdatedAt.Equal(now) {
		t.Fatal("expected timestamps to match the evaluation time")
	}

	first := entry.Answers[0]
	if !first.IsCorrect || first.Marks != 5 {
		t.Fatalf("expected first answer correct with 5 marks, got correct=%v marks=%d", first.IsCorrect, first.Marks)
	}
	if first.SelectedOption.Text != "Paris" {
		t.Fatalf("expected selected text Paris, got %q", first.SelectedOption.Text)
	}

	second := entry.Answers[1]
	if second.IsCorrect || second.Marks != 0 {
		t.Fatalf("expected second answer wrong with 0 marks, got correct=%v marks=%d", second.IsCorrect, second.Marks)
	}
	if second.SelectedOption.Text != "Munich" {
		t.Fatalf("expected selected text Munich, got %q", second.SelectedOption.Text)
	}
}

func TestEvaluateAnswersSnapshotsAllOptions(t *testing.T) {
	f := newEvalFixture()

	answers := []models.AnswerSubmission{
		{QuestionID: f.questions[0].ID.Hex(), SelectedOptionID: f.questions[0].Options[1].ID.Hex()},
	}

	entry := models.EvaluateAnswers(f.quiz, f.questions, answers, time.Now())
	if len(entry.Answers) != 1 {
		t.Fatalf("expected 1 evaluated answer, got %d", len(entry.Answers))
	}

	got := entry.Answers[0]
	if got.Question != f.questions[0].Question {
		t.Fatalf("expected question text snapshot, got %q", got.Question)
	}
	if len(got.Options) != len(f.questions[0].Options) {
		t.Fatalf("expected %d option snapshots, got %d", len(f.questions[0].Options), len(got.Options))
	}
	for i, opt := range f.questions[0].Options {
		if got.Options[i].Text != opt.Text || got.Options[i].ID != opt.ID.Hex() {
			t.Fatalf("option snapshot %d mismatch: got %+v", i, got.Options[i])
		}
	}
}

func TestEvaluateAnswersSkipsUnknownQuestion(t *testing.T) {
	f := newEvalFixture()

	answers := []models.AnswerSubmission{
		{QuestionID: primitive.NewObjectID().Hex(), SelectedOptionID: primitive.NewObjectID().Hex()},
		{QuestionID: f.questions[1].ID.Hex(), SelectedOptionID: f.questions[1].Options[1].ID.Hex()},
	}

	entry := models.EvaluateAnswers(f.quiz, f.questions, answers, time.Now())

	if len(entry.Answers) != 1 {
		t.Fatalf("expected the unknown question to be skipped, got %d answers", len(entry.Answers))
	}
	if entry.Score != 10 {
		t.Fatalf("expected score 10, got %d", entry.Score)
	}
}

func TestEvaluateAnswersUnknownOptionEchoesID(t *testing.T) {
	f := newEvalFixture()
	bogus := primitive.NewObjectID().Hex()

	answers := []models.AnswerSubmission{
		{QuestionID: f.questions[0].ID.Hex(), SelectedOptionID: bogus},
	}

	entry := models.EvaluateAnswers(f.quiz, f.questions, answers, time.Now())

	got := entry.Answers[0]
	if got.IsCorrect || got.Marks != 0 {
		t.Fatalf("expected wrong answer with 0 marks, got correct=%v marks=%d", got.IsCorrect, got.Marks)
	}
	if got.SelectedOption.Text != "" {
		t.Fatalf("expected empty text for unmatched option, got %q", got.SelectedOption.Text)
	}
	if got.SelectedOption.ID != bogus {
		t.Fatalf("expected submitted id to be echoed, got %q", got.SelectedOption.ID)
	}
	if entry.Score != 0 {
		t.Fatalf("expected score 0, got %d", entry.Score)
	}
}

func TestEvaluateAnswersNoAnswers(t *testing.T) {
	f := newEvalFixture()

	entry := models.EvaluateAnswers(f.quiz, f.questions, []models.AnswerSubmission{}, time.Now())

	if len(entry.Answers) != 0 {
		t.Fatalf("expected no evaluated answers, got %d", len(entry.Answers))
	}
	if entry.Score != 0 || entry.Percentage != 0 {
		t.Fatalf("expected zero score and percentage, got %d / %f", entry.Score, entry.Percentage)
	}
	if entry.TotalMarks != f.quiz.TotalMarks {
		t.Fatalf("expected total marks %d, got %d", f.quiz.TotalMarks, entry.TotalMarks)
	}
}

func TestUpsertQuizResultReplacesInPlace(t *testing.T) {
	quizA := primitive.NewObjectID()
	quizB := primitive.NewObjectID()

	results := models.UserResults{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		QuizResults: []models.QuizResultEntry{
			{QuizID: quizA, Score: 5},
			{QuizID: quizB, Score: 10},
		},
	}

	results.UpsertQuizResult(models.QuizResultEntry{QuizID: quizA, Score: 12})

	if len(results.QuizResults) != 2 {
		t.Fatalf("expected 2 entries after re-submission, got %d", len(results.QuizResults))
	}
	if results.QuizResults[0].QuizID != quizA || results.QuizResults[0].Score != 12 {
		t.Fatalf("expected first entry replaced in place, got %+v", results.QuizResults[0])
	}
	if results.QuizResults[1].QuizID != quizB {
		t.Fatal("expected second entry untouched")
	}

	quizC := primitive.NewObjectID()
	results.UpsertQuizResult(models.QuizResultEntry{QuizID: quizC, Score: 3})
	if len(results.QuizResults) != 3 {
		t.Fatalf("expected 3 entries after a new quiz, got %d", len(results.QuizResults))
	}
	if results.QuizResults[2].QuizID != quizC {
		t.Fatal("expected the new quiz appended at the end")
	}
}

func TestFindQuizResult(t *testing.T) {
	quizA := primitive.NewObjectID()
	results := models.UserResults{
		QuizResults: []models.QuizResultEntry{{QuizID: quizA, Score: 7}},
	}

	entry, found := results.FindQuizResult(quizA)
	if !found || entry.Score != 7 {
		t.Fatalf("expected to find entry with score 7, got found=%v entry=%+v", found, entry)
	}

	if _, found := results.FindQuizResult(primitive.NewObjectID()); found {
		t.Fatal("expected no entry for an unattempted quiz")
	}
}
