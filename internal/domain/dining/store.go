package dining

import (
	"context"
	"fmt"
	"net/http"

	"campusview/internal/apiclient"
)

type Store interface {
	List(ctx context.Context) ([]Restaurant, error)
}

type Repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Store {
	return &Repository{api: api}
}

func (r *Repository) List(ctx context.Context) ([]Restaurant, error) {
	var out []Restaurant
	if err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/restaurant"}, &out); err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return out, nil
}
