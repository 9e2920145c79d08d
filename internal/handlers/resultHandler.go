package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	database "quizify/database"
	models "quizify/internal/models"
	httpx "quizify/internal/utility/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var resultCollection *mongo.Collection = database.OpenCollection(database.Client, "results")

// quizSummary is the resolved quiz reference on a stored result. Duration is
// only filled in on the single-result endpoint.
type quizSummary struct {
	ID          primitive.ObjectID `json:"_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Difficulty  string             `json:"difficulty"`
	Duration    int                `json:"duration,omitempty"`
}

// resultView is a QuizResultEntry with the quiz reference expanded.
type resultView struct {
	Quiz       quizSummary              `json:"quizId"`
	Answers    []models.EvaluatedAnswer `json:"answers"`
	Score      int                      `json:"score"`
	TotalMarks int                      `json:"totalMarks"`
	Percentage float64                  `json:"percentage"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
}

func newResultView(entry models.QuizResultEntry, summary quizSummary) resultView {
	return resultView{
		Quiz:       summary,
		Answers:    entry.Answers,
		Score:      entry.Score,
		TotalMarks: entry.TotalMarks,
		Percentage: entry.Percentage,
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
	}
}

type evaluateRequest struct {
	QuizID  string                    `json:"quizId"`
	Answers []models.AnswerSubmission `json:"answers"`
}

// EvaluateQuiz scores the caller's answers against the quiz and upserts the
// outcome into the caller's results document. Re-submitting replaces the
// stored entry for that quiz; the whole document is written back, so the last
// writer wins and no retry is attempted.
func EvaluateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	user, ok := currentUser(r)
	if !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.QuizID == "" || req.Answers == nil {
		httpx.RespondError(w, http.StatusBadRequest, "Quiz ID and answers are required", nil)
		return
	}

	quizID, err := primitive.ObjectIDFromHex(req.QuizID)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid quizId: %s", req.QuizID), err)
		return
	}

	var quiz models.Quiz
	err = quizCollection.FindOne(ctx, bson.M{"_id": quizID}).Decode(&quiz)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpx.RespondError(w, http.StatusNotFound, "Quiz not found", nil)
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	questions, err := resolveQuestions(ctx, quiz.Questions)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	entry := models.EvaluateAnswers(quiz, questions, req.Answers, time.Now())

	var userResults models.UserResults
	err = resultCollection.FindOne(ctx, bson.M{"userId": user.ID}).Decode(&userResults)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
			return
		}
		userResults = models.UserResults{
			ID:          primitive.NewObjectID(),
			UserID:      user.ID,
			QuizResults: []models.QuizResultEntry{},
		}
	}

	userResults.UpsertQuizResult(entry)

	_, err = resultCollection.ReplaceOne(
		ctx,
		bson.M{"userId": user.ID},
		userResults,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	httpx.RespondSuccess(w, http.StatusOK, "Quiz evaluated successfully", httpx.M{
		"result": entry,
	})
}

func GetResultsByUserID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	if _, ok := currentUser(r); !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}

	id := chi.URLParam(r, "userId")
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid userId: %s", id), err)
		return
	}

	var userResults models.UserResults
	err = resultCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&userResults)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpx.RespondSuccess(w, http.StatusOK, "No results found", httpx.M{
				"results": []resultView{},
			})
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	summaries, err := loadQuizSummaries(ctx, userResults.QuizResults)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	results := make([]resultView, 0, len(userResults.QuizResults))
	for _, entry := range userResults.QuizResults {
		results = append(results, newResultView(entry, summaries[entry.QuizID]))
	}

	httpx.RespondSuccess(w, http.StatusOK, "Results retrieved successfully", httpx.M{
		"results": results,
	})
}

func GetQuizResultByUserAndQuizID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	if _, ok := currentUser(r); !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}

	rawUserID := chi.URLParam(r, "userId")
	userID, err := primitive.ObjectIDFromHex(rawUserID)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid userId: %s", rawUserID), err)
		return
	}

	rawQuizID := chi.URLParam(r, "quizId")
	quizID, err := primitive.ObjectIDFromHex(rawQuizID)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid quizId: %s", rawQuizID), err)
		return
	}

	var userResults models.UserResults
	err = resultCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&userResults)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpx.RespondError(w, http.StatusNotFound, "No results found for this user", nil)
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	entry, found := userResults.FindQuizResult(quizID)
	if !found {
		httpx.RespondError(w, http.StatusNotFound, "No result found for this quiz", nil)
		return
	}

	summary := quizSummary{ID: quizID}
	var quiz models.Quiz
	err = quizCollection.FindOne(ctx, bson.M{"_id": quizID}).Decode(&quiz)
	if err == nil {
		summary = quizSummary{
			ID:          quiz.ID,
			Title:       quiz.Title,
			Description: quiz.Description,
			Difficulty:  quiz.Difficulty,
			Duration:    quiz.Duration,
		}
	} else if err != mongo.ErrNoDocuments {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	httpx.RespondSuccess(w, http.StatusOK, "Quiz result retrieved successfully", httpx.M{
		"result": newResultView(entry, summary),
	})
}

// loadQuizSummaries resolves the quiz references of a results list in one
// query. A quiz that has been deleted since evaluation resolves to a bare id.
func loadQuizSummaries(ctx context.Context, entries []models.QuizResultEntry) (map[primitive.ObjectID]quizSummary, error) {
	summaries := make(map[primitive.ObjectID]quizSummary, len(entries))
	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, entry := range entries {
		summaries[entry.QuizID] = quizSummary{ID: entry.QuizID}
		ids = append(ids, entry.QuizID)
	}
	if len(ids) == 0 {
		return summaries, nil
	}

	cur, err := quizCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	quizzes := []models.Quiz{}
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	for _, quiz := range quizzes {
		summaries[quiz.ID] = quizSummary{
			ID:          quiz.ID,
			Title:       quiz.Title,
			Description: quiz.Description,
			Difficulty:  quiz.Difficulty,
		}
	}
	return summaries, nil
}
