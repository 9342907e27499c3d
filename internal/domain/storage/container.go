package storage

import (
	"campusview/internal/apiclient"
	"campusview/internal/domain/clubs"
	"campusview/internal/domain/dining"
	"campusview/internal/domain/reviews"
	"campusview/internal/domain/users"
)

// Container groups the remote stores behind one API client.
type Container struct {
	api         *apiclient.Client
	Users       users.Store
	Clubs       clubs.Store
	Restaurants dining.Store
	Reviews     reviews.Store
}

func NewContainer(api *apiclient.Client) *Container {
	return &Container{
		api:         api,
		Users:       users.NewRepository(api),
		Clubs:       clubs.NewRepository(api),
		Restaurants: dining.NewRepository(api),
		Reviews:     reviews.NewRepository(api),
	}
}

// Host is the API host every store talks to.
func (c *Container) Host() string {
	return c.api.BaseURL()
}
