package clubs

import (
	"context"
	"fmt"
	"net/http"

	"campusview/internal/apiclient"
)

type Store interface {
	List(ctx context.Context) ([]Club, error)
	Create(ctx context.Context, club *Club) error
}

type Repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Store {
	return &Repository{api: api}
}

func (r *Repository) List(ctx context.Context) ([]Club, error) {
	var out []Club
	if err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/club"}, &out); err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return out, nil
}

func (r *Repository) Create(ctx context.Context, club *Club) error {
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/club/" + apiclient.PathEscape(club.Name),
		JSON:   club,
	}, nil)
	if err != nil {
		return fmt.Errorf("create club %q: %w", club.Name, err)
	}
	return nil
}
