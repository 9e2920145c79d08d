package handlers

import (
	"context"
	"errors"
	"net/http"

	"quizify/internal/models"
	utility "quizify/internal/utility"
	httpx "quizify/internal/utility/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Authentication resolves the token header to an AuthUser and attaches it to
// the request context. Role enforcement stays in the handlers.
func Authentication() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientToken := r.Header.Get("token")
			if clientToken == "" {
				httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", nil)
				return
			}

			claims, msg := utility.ValidateToken(clientToken)
			if msg != "" {
				httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", errors.New(msg))
				return
			}

			uid, err := primitive.ObjectIDFromHex(claims.Uid)
			if err != nil {
				httpx.RespondError(w, http.StatusUnauthorized, "Unauthorized access", err)
				return
			}

			authUser := models.AuthUser{
				ID:    uid,
				Email: claims.Email,
				Role:  claims.Role,
			}

			ctx := context.WithValue(r.Context(), models.ContextUser, authUser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentUser pulls the authenticated principal set by Authentication.
func currentUser(r *http.Request) (models.AuthUser, bool) {
	user, ok := r.Context().Value(models.ContextUser).(models.AuthUser)
	return user, ok
}
