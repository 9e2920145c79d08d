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

var questionCollection *mongo.Collection = database.OpenCollection(database.Client, "question")

func CreateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	user, ok := currentUser(r)
	if !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}
	if !user.IsAdmin() {
		httpx.RespondError(w, http.StatusForbidden, "You are not authorized to create a question", nil)
		return
	}

	var question models.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if question.Question == "" || question.Options == nil || question.Explanation == "" || question.Marks == 0 {
		httpx.RespondError(w, http.StatusBadRequest, "Please provide all fields", nil)
		return
	}
	if len(question.Options) < 2 || len(question.Options) > 4 {
		httpx.RespondError(w, http.StatusBadRequest, "Options must be between 2 and 4", nil)
		return
	}

	question.Options = models.EnsureOptionIDs(question.Options)

	if msgs := question.Validate(); len(msgs) > 0 {
		httpx.RespondError(w, http.StatusBadRequest, "Validation failed. "+strings.Join(msgs, ". "), nil)
		return
	}

	question.ID = primitive.NewObjectID()
	question.CreatedBy = user.ID
	question.UpdatedBy = user.ID
	question.CreatedAt = time.Now()
	question.UpdatedAt = time.Now()

	if _, err := questionCollection.InsertOne(ctx, question); err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	httpx.RespondSuccess(w, http.StatusCreated, "Question created successfully", httpx.M{
		"question": question,
	})
}

func GetQuestionByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	if _, ok := currentUser(r); !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}

	id := chi.URLParam(r, "id")
	questionID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid id: %s", id), err)
		return
	}

	var question models.Question
	err = questionCollection.FindOne(ctx, bson.M{"_id": questionID}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpx.RespondError(w, http.StatusNotFound, "Question not found", nil)
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	httpx.RespondSuccess(w, http.StatusOK, "Question retrieved successfully", httpx.M{
		"question": question,
	})
}

func GetQuestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	if _, ok := currentUser(r); !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}

	query := utility.ParseListQuery(r, 8)

	filter := bson.M{}
	if query.Search != "" {
		filter = bson.M{"question": primitive.Regex{Pattern: query.Search, Options: "i"}}
	}

	findOptions := options.Find().
		SetSort(query.Sort()).
		SetSkip(query.Skip()).
		SetLimit(int64(query.Limit))

	cur, err := questionCollection.Find(ctx, filter, findOptions)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	defer cur.Close(ctx)

	questions := []models.Question{}
	for cur.Next(ctx) {
		var question models.Question
		if err := cur.Decode(&question); err != nil {
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
			return
		}
		questions = append(questions, question)
	}
	if err := cur.Err(); err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if len(questions) == 0 {
		httpx.RespondError(w, http.StatusNotFound, "No questions found", nil)
		return
	}

	total, err := questionCollection.CountDocuments(ctx, filter)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	httpx.RespondSuccess(w, http.StatusOK, "Questions retrieved successfully", httpx.M{
		"questions":     questions,
		"noOfQuestions": len(questions),
		"pagination":    utility.NewPagination(total, query.Page, query.Limit),
	})
}

func UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	user, ok := currentUser(r)
	if !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}
	if !user.IsAdmin() {
		httpx.RespondError(w, http.StatusForbidden, "You are not authorized to update this question", nil)
		return
	}

	id := chi.URLParam(r, "id")
	questionID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid id: %s", id), err)
		return
	}

	var updated models.Question
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if updated.Question == "" || updated.Options == nil || updated.Explanation == "" || updated.Marks == 0 {
		httpx.RespondError(w, http.StatusBadRequest, "Please provide all fields", nil)
		return
	}
	if len(updated.Options) < 2 || len(updated.Options) > 4 {
		httpx.RespondError(w, http.StatusBadRequest, "Options must be between 2 and 4", nil)
		return
	}

	var existing models.Question
	err = questionCollection.FindOne(ctx, bson.M{"_id": questionID}).Decode(&existing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpx.RespondError(w, http.StatusNotFound, "Question not found", nil)
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	updated.Options = models.MergeOptions(existing.Options, updated.Options)

	if msgs := updated.Validate(); len(msgs) > 0 {
		httpx.RespondError(w, http.StatusBadRequest, "Validation failed. "+strings.Join(msgs, ". "), nil)
		return
	}

	update := bson.M{"$set": bson.M{
		"question":    updated.Question,
		"options":     updated.Options,
		"explanation": updated.Explanation,
		"marks":       updated.Marks,
		"updatedBy":   user.ID,
		"updatedAt":   time.Now(),
	}}

	var result models.Question
	err = questionCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": questionID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpx.RespondError(w, http.StatusNotFound, "Question not found", nil)
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	httpx.RespondSuccess(w, http.StatusOK, "Question updated successfully", httpx.M{
		"question": result,
	})
}

func DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	user, ok := currentUser(r)
	if !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
		return
	}
	if !user.IsAdmin() {
		httpx.RespondError(w, http.StatusForbidden, "You are not authorized to delete this question", nil)
		return
	}

	id := chi.URLParam(r, "id")
	questionID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid id: %s", id), err)
		return
	}

	result, err := questionCollection.DeleteOne(ctx, bson.M{"_id": questionID})
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if result.DeletedCount == 0 {
		httpx.RespondError(w, http.StatusNotFound, "Question not found", nil)
		return
	}

	httpx.RespondSuccess(w, http.StatusOK, "Question deleted successfully", httpx.M{
		"id": questionID.Hex(),
	})
}
