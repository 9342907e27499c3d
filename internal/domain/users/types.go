package users

import (
	"errors"

	"campusview/internal/domain/reviews"
)

var ErrNoAccessToken = errors.New("login response carried no access token")

// User is the profile returned by GET /user/.
type User struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"name"`
	// ReviewList holds the reviews the user has written.
	ReviewList []reviews.Review `json:"review_list,omitempty"`
}

type RegisterPayload struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the OAuth2 password-grant response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
