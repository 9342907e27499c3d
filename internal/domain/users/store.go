package users

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"campusview/internal/apiclient"
)

type Store interface {
	Register(ctx context.Context, payload RegisterPayload) error
	Login(ctx context.Context, username, password string) (*Token, error)
	Me(ctx context.Context) (*User, error)
}

type Repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Store {
	return &Repository{api: api}
}

func (r *Repository) Register(ctx context.Context, payload RegisterPayload) error {
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/register",
		JSON:   payload,
	}, nil)
	if err != nil {
		return fmt.Errorf("register %s: %w", payload.Username, err)
	}
	return nil
}

// Login exchanges credentials for a bearer token using the password grant.
func (r *Repository) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)

	var tok Token
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/login",
		Form:   form,
	}, &tok)
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", username, err)
	}
	if tok.AccessToken == "" {
		return nil, ErrNoAccessToken
	}
	return &tok, nil
}

func (r *Repository) Me(ctx context.Context) (*User, error) {
	var u User
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/user/",
		Auth:   true,
	}, &u)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &u, nil
}
