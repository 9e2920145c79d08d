package models

import "time"

// EvaluateAnswers scores a set of submitted answers against the quiz's
// canonical questions. An answer whose questionId is not among the quiz's
// questions is skipped entirely: it contributes nothing to the score and does
// not appear in the evaluated list. A selectedOptionId that does not belong to
// the question scores zero with an empty text snapshot; the submitted id is
// echoed back as-is.
func EvaluateAnswers(quiz Quiz, questions []Question, answers []AnswerSubmission, now time.Time) QuizResultEntry {
	score := 0
	evaluated := []EvaluatedAnswer{}

	for _, answer := range answers {
		var question *Question
		for i := range questions {
			if questions[i].ID.Hex() == answer.QuestionID {
				question = &questions[i]
				break
			}
		}
		if question == nil {
			continue
		}

		var selected *Option
		for i := range question.Options {
			if question.Options[i].ID.Hex() == answer.SelectedOptionID {
				selected = &question.Options[i]
				break
			}
		}

		isCorrect := selected != nil && selected.IsCorrect
		marks := 0
		if isCorrect {
			marks = question.Marks
		}
		score += marks

		snapshots := make([]OptionSnapshot, 0, len(question.Options))
		for _, opt := range question.Options {
			snapshots = append(snapshots, OptionSnapshot{Text: opt.Text, ID: opt.ID.Hex()})
		}

		selectedText := ""
		if selected != nil {
			selectedText = selected.Text
		}

		evaluated = append(evaluated, EvaluatedAnswer{
			QuestionID: question.ID,
			Question:   question.Question,
			Options:    snapshots,
			SelectedOption: OptionSnapshot{
				Text: selectedText,
				ID:   answer.SelectedOptionID,
			},
			IsCorrect: isCorrect,
			Marks:     marks,
		})
	}

	return QuizResultEntry{
		QuizID:     quiz.ID,
		Answers:    evaluated,
		Score:      score,
		TotalMarks: quiz.TotalMarks,
		Percentage: float64(score) / float64(quiz.TotalMarks) * 100,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
