package utility

import (
	"os"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

// SignedDetails are the claims carried by access and refresh tokens. Role is
// what handlers use for admin checks.
type SignedDetails struct {
	Email      string
	First_name string
	Last_name  string
	Role       string
	Uid        string
	jwt.StandardClaims
}

func secretKey() []byte {
	return []byte(os.Getenv("SECRET_KEY"))
}

// GenerateAllTokens creates the access token (24h) and refresh token (168h).
func GenerateAllTokens(email string, firstName string, lastName string, role string, uid string) (signedToken string, signedRefreshToken string, err error) {
	claims := &SignedDetails{
		Email:      email,
		First_name: firstName,
		Last_name:  lastName,
		Role:       role,
		Uid:        uid,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Local().Add(time.Hour * time.Duration(24)).Unix(),
		},
	}

	refreshClaims := &SignedDetails{
		Uid:  uid,
		Role: role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Local().Add(time.Hour * time.Duration(168)).Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey())
	if err != nil {
		return "", "", err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(secretKey())
	if err != nil {
		return "", "", err
	}

	return token, refreshToken, nil
}

// ValidateToken parses and checks a token, returning the claims and an error
// message ("" when the token is valid).
func ValidateToken(signedToken string) (claims *SignedDetails, msg string) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return secretKey(), nil
		},
	)
	if err != nil {
		return nil, err.Error()
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok {
		return nil, "the token is invalid"
	}

	if claims.ExpiresAt < time.Now().Local().Unix() {
		return nil, "token is expired"
	}

	return claims, ""
}
