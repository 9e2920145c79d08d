package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	database "quizify/database"
	models "quizify/internal/models"
	utility "quizify/internal/utility"
	httpx "quizify/internal/utility/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var quizCollection *mongo.Collection = database.OpenCollection(database.Client, "quiz")

// quizView is a quiz with its question references expanded, in stored order.
type quizView struct {
	ID          primitive.ObjectID `json:"_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Duration    int                `json:"duration"`
	Difficulty  string             `json:"difficulty"`
	Questions   []models.Question  `json:"questions"`
	TotalMarks  int                `json:"totalMarks"`
	CreatedBy   primitive.ObjectID `json:"createdBy"`
	UpdatedBy   primitive.ObjectID `json:"updatedBy"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func newQuizView(quiz models.Quiz, questions []models.Question) quizView {
	byID := make(map[primitive.ObjectID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	ordered := make([]models.Question, 0, len(quiz.Questions))
	for _, id := range quiz.Questions {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}

	return quizView{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Duration:    quiz.Duration,
		Difficulty:  quiz.Difficulty,
		Questions:   ordered,
		TotalMarks:  quiz.TotalMarks,
		CreatedBy:   quiz.CreatedBy,
		UpdatedBy:   quiz.UpdatedBy,
		CreatedAt:   quiz.CreatedAt,
		UpdatedAt:   quiz.UpdatedAt,
	}
}

// resolveQuestions loads the referenced question documents. Duplicate or
// unknown ids show up as a shorter result, which callers compare against the
// requested count.
func resolveQuestions(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	questions := []models.Question{}
	if len(ids) == 0 {
		return questions, nil
	}

	cur, err := questionCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func CreateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	user, ok := currentUser(r)
	if !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}
	if !user.IsAdmin() {
		httpx.RespondError(w, http.StatusForbidden, "You are not authorized to create a quiz", nil)
		return
	}

	var quiz models.Quiz
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if quiz.Title == "" || quiz.Description == "" || quiz.Duration == 0 || quiz.Difficulty == "" || quiz.Questions == nil {
		httpx.RespondError(w, http.StatusBadRequest, "Please provide all fields", nil)
		return
	}

	alreadyExists, err := quizCollection.CountDocuments(ctx, bson.M{"title": quiz.Title})
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if alreadyExists > 0 {
		httpx.RespondConflict(w, "title", "Title already exists", quiz.Title)
		return
	}

	questions, err := resolveQuestions(ctx, quiz.Questions)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if len(questions) != len(quiz.Questions) {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid questions", nil)
		return
	}

	// totalMarks is always derived from the resolved questions; whatever the
	// caller sent is discarded.
	quiz.TotalMarks = models.ComputeTotalMarks(questions)
	quiz.ApplyDefaults()

	if msgs := quiz.Validate(); len(msgs) > 0 {
		httpx.RespondError(w, http.StatusBadRequest, "Validation failed. "+strings.Join(msgs, ". "), nil)
		return
	}

	quiz.ID = primitive.NewObjectID()
	quiz.CreatedBy = user.ID
	quiz.UpdatedBy = user.ID
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = time.Now()

	if _, err := quizCollection.InsertOne(ctx, quiz); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			httpx.RespondConflict(w, "title", "Title already exists", quiz.Title)
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	httpx.RespondSuccess(w, http.StatusCreated, "Quiz created successfully", httpx.M{
		"quiz": newQuizView(quiz, questions),
	})
}

func GetQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	if _, ok := currentUser(r); !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}

	id := chi.URLParam(r, "id")
	quizID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid id: %s", id), err)
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

	httpx.RespondSuccess(w, http.StatusOK, "Quiz retrieved successfully", httpx.M{
		"quiz": newQuizView(quiz, questions),
	})
}

func GetQuizzes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	if _, ok := currentUser(r); !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}

	query := utility.ParseListQuery(r, 10)

	filter := bson.M{}
	if query.Search != "" {
		filter = bson.M{"title": primitive.Regex{Pattern: query.Search, Options: "i"}}
	}

	findOptions := options.Find().
		SetSort(query.Sort()).
		SetSkip(query.Skip()).
		SetLimit(int64(query.Limit))

	cur, err := quizCollection.Find(ctx, filter, findOptions)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	defer cur.Close(ctx)

	quizzes := []models.Quiz{}
	if err := cur.All(ctx, &quizzes); err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if len(quizzes) == 0 {
		httpx.RespondSuccess(w, http.StatusOK, "No quizzes found", httpx.M{
			"quizzes":     []quizView{},
			"noOfQuizzes": 0,
		})
		return
	}

	// one lookup for every question referenced on this page
	questionIDs := []primitive.ObjectID{}
	seen := map[primitive.ObjectID]bool{}
	for _, quiz := range quizzes {
		for _, id := range quiz.Questions {
			if !seen[id] {
				seen[id] = true
				questionIDs = append(questionIDs, id)
			}
		}
	}
	questions, err := resolveQuestions(ctx, questionIDs)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	views := make([]quizView, 0, len(quizzes))
	for _, quiz := range quizzes {
		views = append(views, newQuizView(quiz, questions))
	}

	total, err := quizCollection.CountDocuments(ctx, filter)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	httpx.RespondSuccess(w, http.StatusOK, "Quizzes retrieved successfully", httpx.M{
		"quizzes":     views,
		"noOfQuizzes": len(views),
		"pagination":  utility.NewPagination(total, query.Page, query.Limit),
	})
}

func UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	user, ok := currentUser(r)
	if !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}
	if !user.IsAdmin() {
		httpx.RespondError(w, http.StatusForbidden, "You are not authorized to update this quiz", nil)
		return
	}

	id := chi.URLParam(r, "id")
	quizID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid id: %s", id), err)
		return
	}

	var quiz models.Quiz
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if quiz.Title == "" || quiz.Description == "" || quiz.Duration == 0 || quiz.Difficulty == "" || quiz.Questions == nil {
		httpx.RespondError(w, http.StatusBadRequest, "Please provide all fields", nil)
		return
	}

	alreadyExists, err := quizCollection.CountDocuments(ctx, bson.M{"title": quiz.Title, "_id": bson.M{"$ne": quizID}})
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if alreadyExists > 0 {
		httpx.RespondConflict(w, "title", "Title already exists", quiz.Title)
		return
	}

	questions, err := resolveQuestions(ctx, quiz.Questions)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if len(questions) != len(quiz.Questions) {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid questions", nil)
		return
	}

	quiz.TotalMarks = models.ComputeTotalMarks(questions)
	quiz.ApplyDefaults()

	if msgs := quiz.Validate(); len(msgs) > 0 {
		httpx.RespondError(w, http.StatusBadRequest, "Validation failed. "+strings.Join(msgs, ". "), nil)
		return
	}

	update := bson.M{"$set": bson.M{
		"title":       quiz.Title,
		"description": quiz.Description,
		"duration":    quiz.Duration,
		"difficulty":  quiz.Difficulty,
		"questions":   quiz.Questions,
		"totalMarks":  quiz.TotalMarks,
		"updatedBy":   user.ID,
		"updatedAt":   time.Now(),
	}}

	var result models.Quiz
	err = quizCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": quizID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpx.RespondError(w, http.StatusNotFound, "Quiz not found", nil)
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	httpx.RespondSuccess(w, http.StatusOK, "Quiz updated successfully", httpx.M{
		"quiz": newQuizView(result, questions),
	})
}

func DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	user, ok := currentUser(r)
	if !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}
	if !user.IsAdmin() {
		httpx.RespondError(w, http.StatusForbidden, "You are not authorized to delete this quiz", nil)
		return
	}

	id := chi.URLParam(r, "id")
	quizID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid id: %s", id), err)
		return
	}

	result, err := quizCollection.DeleteOne(ctx, bson.M{"_id": quizID})
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if result.DeletedCount == 0 {
		httpx.RespondError(w, http.StatusNotFound, "Quiz not found", nil)
		return
	}

	httpx.RespondSuccess(w, http.StatusOK, "Quiz deleted successfully", httpx.M{
		"id": quizID.Hex(),
	})
}
