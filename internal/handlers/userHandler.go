package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	database "quizify/database"
	models "quizify/internal/models"
	utility "quizify/internal/utility"
	httpx "quizify/internal/utility/http"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()
var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")

type SignInData struct {
	User_ID      string `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// HashPassword is used to encrypt the password before it is stored in the DB
func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic(err)
	}

	return string(bytes)
}

// VerifyPassword checks the input password while verifying it with the password in the DB.
func VerifyPassword(userPassword string, providedPassword string) (bool, string) {
	err := bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword))
	check := true
	msg := ""

	if err != nil {
		msg = "Email or Password is incorrect"
		check = false
	}

	return check, msg
}

func SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if validationErr := validate.Struct(user); validationErr != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Fields not valid", validationErr)
		return
	}

	alreadyExists, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if alreadyExists > 0 {
		httpx.RespondConflict(w, "email", "Email already exists", *user.Email)
		return
	}

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	password := HashPassword(*user.Password)
	user.Password = &password

	user.Created_at = time.Now()
	user.Updated_at = time.Now()
	user.ID = primitive.NewObjectID()
	user.User_id = user.ID.Hex()

	token, refreshToken, err := utility.GenerateAllTokens(*user.Email, *user.First_name, *user.Last_name, user.Role, user.User_id)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	user.Token = &token
	user.Refresh_token = &refreshToken

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			httpx.RespondConflict(w, "email", "Email already exists", *user.Email)
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	httpx.RespondSuccess(w, http.StatusCreated, "User created successfully", httpx.M{
		"user": SignInData{
			User_ID:      user.User_id,
			FirstName:    *user.First_name,
			LastName:     *user.Last_name,
			Email:        *user.Email,
			Role:         user.Role,
			Token:        token,
			RefreshToken: refreshToken,
		},
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var user models.User
	var foundUser models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := userCollection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&foundUser)
	if err != nil {
		httpx.RespondError(w, http.StatusUnauthorized, "Email or Password is incorrect", nil)
		return
	}

	passwordIsValid, msg := VerifyPassword(*user.Password, *foundUser.Password)
	if !passwordIsValid {
		httpx.RespondError(w, http.StatusUnauthorized, msg, nil)
		return
	}

	token, refreshToken, err := utility.GenerateAllTokens(*foundUser.Email, *foundUser.First_name, *foundUser.Last_name, foundUser.Role, foundUser.User_id)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	updateAllTokens(ctx, token, refreshToken, foundUser.User_id)

	httpx.RespondSuccess(w, http.StatusOK, "Login successful", httpx.M{
		"user": SignInData{
			User_ID:      foundUser.User_id,
			FirstName:    *foundUser.First_name,
			LastName:     *foundUser.Last_name,
			Email:        *foundUser.Email,
			Role:         foundUser.Role,
			Token:        token,
			RefreshToken: refreshToken,
		},
	})
}

// updateAllTokens refreshes the stored tokens after a successful login.
func updateAllTokens(ctx context.Context, signedToken string, signedRefreshToken string, userID string) {
	update := bson.M{"$set": bson.M{
		"token":         signedToken,
		"refresh_token": signedRefreshToken,
		"updated_at":    time.Now(),
	}}

	if _, err := userCollection.UpdateOne(ctx, bson.M{"user_id": userID}, update); err != nil {
		log.Printf("Failed to update tokens for user %s: %v", userID, err)
	}
}
