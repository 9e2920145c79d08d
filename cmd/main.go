package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"quizify/database"
	"quizify/internal/handlers"
	"quizify/internal/logger"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	logger.InitLogger()
	defer logger.Log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx, database.Client); err != nil {
		logger.Log.Warn("Failed to create indexes", zap.Error(err))
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// User routes
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/signup", handlers.SignUp)
		r.Post("/login", handlers.Login)
	})

	// Question routes
	r.Route("/api/question", func(r chi.Router) {
		r.Use(handlers.Authentication())
		r.Post("/create-question", handlers.CreateQuestion)
		r.Get("/get-question/{id}", handlers.GetQuestionByID)
		r.Get("/get-questions", handlers.GetQuestions)
		r.Put("/update-question/{id}", handlers.UpdateQuestion)
		r.Delete("/delete-question/{id}", handlers.DeleteQuestion)
	})

	// Quiz routes
	r.Route("/api/quiz", func(r chi.Router) {
		r.Use(handlers.Authentication())
		r.Post("/create-quiz", handlers.CreateQuiz)
		r.Get("/get-quiz/{id}", handlers.GetQuiz)
		r.Get("/get-quizzes", handlers.GetQuizzes)
		r.Put("/update-quiz/{id}", handlers.UpdateQuiz)
		r.Delete("/delete-quiz/{id}", handlers.DeleteQuiz)
	})

	// Result routes
	r.Route("/api/exam", func(r chi.Router) {
		r.Use(handlers.Authentication())
		r.Post("/evaluate", handlers.EvaluateQuiz)
		r.Get("/user/{userId}", handlers.GetResultsByUserID)
		r.Get("/user/{userId}/quiz/{quizId}", handlers.GetQuizResultByUserAndQuizID)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start the server
	fmt.Println("Server is running on http://localhost:" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
