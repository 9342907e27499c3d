package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"campusview/internal/auth"
	"campusview/internal/domain/clubs"
	"campusview/internal/domain/dining"
	"campusview/internal/reviewflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := loadConfig(env(map[string]string{"HOME": "/home/benny"}))

	assert.Equal(t, "http://34.219.195.123", cfg.apiURL)
	assert.Equal(t, filepath.Join("/home/benny", ".config", "campusview", "storage.json"), cfg.storagePath)
	assert.Zero(t, cfg.httpTimeout)
	assert.Equal(t, "@oregonstate.edu", cfg.emailDomain)
	assert.Equal(t, "production", cfg.env)
	assert.Equal(t, "info", cfg.logLevel)
	assert.Empty(t, cfg.push.deviceToken)
	assert.Empty(t, cfg.media.cloudinaryURL)
	assert.Equal(t, "campusview", cfg.handleSalt)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg := loadConfig(env(map[string]string{
		"CAMPUSVIEW_API_URL":      "http://localhost:8000",
		"XDG_CONFIG_HOME":         "/xdg",
		"CAMPUSVIEW_HTTP_TIMEOUT": "5s",
		"EXPO_PUSH_TOKEN":         "ExponentPushToken[x]",
		"LOG_LEVEL":               "debug",
	}))

	assert.Equal(t, "http://localhost:8000", cfg.apiURL)
	assert.Equal(t, filepath.Join("/xdg", "campusview", "storage.json"), cfg.storagePath)
	assert.Equal(t, 5*time.Second, cfg.httpTimeout)
	assert.Equal(t, "ExponentPushToken[x]", cfg.push.deviceToken)
	assert.Equal(t, "debug", cfg.logLevel)

	cfg = loadConfig(env(map[string]string{"CAMPUSVIEW_HTTP_TIMEOUT": "soon"}))
	assert.Zero(t, cfg.httpTimeout)
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("development", "debug")
	require.NoError(t, err)

	_, err = NewLogger("production", "loud")
	assert.Error(t, err)
}

func TestDiningList(t *testing.T) {
	e := newTestEnv(t)

	res := e.run(t, "", "dining", "list", "--json", "--hall", "Marketplace West")
	require.NoError(t, res.err)

	var got listing[dining.Restaurant]
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Clubhouse Deli", got.Items[0].Name)
	assert.Equal(t, 1, got.Pagination.Total)

	res = e.run(t, "", "dining", "list", "--search", "ARNOLD")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Ring of Fire")
	assert.NotContains(t, res.stdout, "Clubhouse Deli")

	res = e.run(t, "", "dining", "list", "--hall", "Hogwarts")
	assert.Error(t, res.err)
}

func TestDiningShow(t *testing.T) {
	e := newTestEnv(t)

	res := e.run(t, "", "dining", "show", "ring of fire")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Menu for May 01")
	assert.Contains(t, res.stdout, "  Grill\n")
	assert.Contains(t, res.stdout, "- Burger")
	assert.Contains(t, res.stdout, "By someone")
	assert.NotContains(t, res.stdout, "reviews edit")
	assert.NotContains(t, res.stdout, "Add a review")

	res = e.run(t, "", "dining", "show", "nowhere")
	assert.Error(t, res.err)
}

func TestReviewLifecycle(t *testing.T) {
	e := newTestEnv(t)

	res := e.run(t, "", "reviews", "add", "--restaurant", "Ring of Fire", "-m", "great", "-r", "4")
	assert.ErrorIs(t, res.err, reviewflow.ErrNotLoggedIn)
	assert.Empty(t, e.api.created)

	res = e.run(t, "", "login", "-u", "benny", "-p", "hunter2")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Benny Beaver")

	res = e.run(t, "", "reviews", "add", "--restaurant", "Ring of Fire", "-m", "   ")
	assert.ErrorIs(t, res.err, reviewflow.ErrEmptyMessage)
	assert.Empty(t, e.api.created)

	res = e.run(t, "", "reviews", "add", "--restaurant", "Ring of Fire", "-m", "great", "-r", "4", "--json")
	require.NoError(t, res.err)
	require.Len(t, e.api.created, 1)
	mine := e.api.created[0]
	assert.Equal(t, "benny", mine.User)
	assert.Equal(t, "Ring of Fire", mine.Owner)
	assert.EqualValues(t, 4, mine.Rating)

	var views []reviewView
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &views))
	require.Len(t, views, 2)
	assert.False(t, views[0].Editable)
	assert.True(t, views[1].Editable)
	handle := views[1].Handle

	res = e.run(t, "", "reviews", "edit", handle, "--restaurant", "Ring of Fire", "-m", "even better")
	require.NoError(t, res.err)
	assert.Equal(t, []string{mine.IDString()}, e.api.deleted)
	require.Len(t, e.api.created, 2)
	assert.Equal(t, mine.ReviewID, e.api.created[1].ReviewID)
	assert.Equal(t, "even better", e.api.created[1].Message)
	assert.EqualValues(t, 4, e.api.created[1].Rating)

	res = e.run(t, "n\n", "reviews", "delete", handle, "--restaurant", "Ring of Fire")
	assert.ErrorIs(t, res.err, errNotConfirmed)
	assert.Len(t, e.api.deleted, 1)

	res = e.run(t, "", "reviews", "delete", handle, "--restaurant", "Ring of Fire", "--yes")
	require.NoError(t, res.err)
	assert.Len(t, e.api.deleted, 2)
	assert.Contains(t, res.stderr, "Your review has been deleted successfully!")
	assert.Contains(t, res.stdout, "Reviews (1)")
}

func TestReviewDelete_NotYours(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.run(t, "", "login", "-u", "benny", "-p", "hunter2").err)

	res := e.run(t, "", "reviews", "delete", "11", "--restaurant", "Ring of Fire", "--yes")
	assert.ErrorIs(t, res.err, errNotYours)
	assert.Empty(t, e.api.deleted)

	res = e.run(t, "", "reviews", "delete", "11", "--yes")
	assert.ErrorIs(t, res.err, errNoTarget)
}

func TestLoginFailure(t *testing.T) {
	e := newTestEnv(t)

	res := e.run(t, "", "login", "-u", "benny", "-p", "wrong")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Incorrect username or password")

	_, err := auth.NewFileTokenStore(e.cfg.storagePath).GetToken()
	assert.ErrorIs(t, err, auth.ErrNoToken)
}

func TestLoginPromptsForPassword(t *testing.T) {
	e := newTestEnv(t)

	res := e.run(t, "benny\nhunter2\n", "login")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Password: ")

	res = e.run(t, "", "profile", "--json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"username": "benny"`)

	require.NoError(t, e.run(t, "", "logout").err)
	res = e.run(t, "", "profile")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Not logged in")
}

func TestRegister(t *testing.T) {
	e := newTestEnv(t)

	res := e.run(t, "", "register", "--name", "Benny", "-u", "benny", "-e", "benny@gmail.com", "-p", "hunter2")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "@oregonstate.edu")

	res = e.run(t, "", "register", "--name", "Benny", "-u", "benny", "-e", "benny@oregonstate.edu", "-p", "hunter2")
	require.NoError(t, res.err)

	token, err := auth.NewFileTokenStore(e.cfg.storagePath).GetToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestClubs(t *testing.T) {
	e := newTestEnv(t)

	res := e.run(t, "", "clubs", "add", "Chess Club", "--college", "College of Business", "--location", "MU 211")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Chess Club has been added.")

	require.Len(t, e.api.clubs, 2)
	added := e.api.clubs[1]
	assert.Equal(t, "College of Business", added.College)
	assert.Equal(t, clubs.DefaultLink, added.Link)
	require.Len(t, added.Schedule.Days, 1)
	assert.Equal(t, "Monday", added.Schedule.Days[0].Day)
	require.NotNil(t, added.Reviews)
	assert.True(t, added.Reviews.Hidden)

	res = e.run(t, "", "clubs", "add", "Quidditch", "--college", "College of Magic")
	require.Error(t, res.err)
	assert.Len(t, e.api.clubs, 2)

	res = e.run(t, "", "clubs", "add", "Logo Club", "--logo-file", "logo.png")
	assert.ErrorIs(t, res.err, errNoUploader)

	res = e.run(t, "", "clubs", "list", "--college", "College of Engineering")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Robotics Club")
	assert.NotContains(t, res.stdout, "Chess Club")

	res = e.run(t, "", "clubs", "show", "chess club")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "Chess Club\n"))
	assert.Contains(t, res.stdout, "Monday 17:00-18:00")
}

func TestReviewRatingOutOfRange(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.run(t, "", "login", "-u", "benny", "-p", "hunter2").err)

	for _, rating := range []string{"0", "9", "6"} {
		res := e.run(t, "", "reviews", "add", "--restaurant", "Ring of Fire", "-m", "great", "-r", rating)
		assert.ErrorIs(t, res.err, errBadRating, "rating %s", rating)
	}
	assert.Empty(t, e.api.created)

	res := e.run(t, "", "reviews", "edit", "11", "--restaurant", "Ring of Fire", "-r", "9")
	assert.ErrorIs(t, res.err, errBadRating)
	assert.Empty(t, e.api.deleted)
}

func TestDiningList_RepeatedHall(t *testing.T) {
	e := newTestEnv(t)

	res := e.run(t, "", "dining", "list", "--json", "--hall", "Marketplace West", "--hall", "Marketplace West")
	require.NoError(t, res.err)

	var got listing[dining.Restaurant]
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Clubhouse Deli", got.Items[0].Name)
}

func TestClubsList_HugePage(t *testing.T) {
	e := newTestEnv(t)

	res := e.run(t, "", "clubs", "list", "--json", "--page", "922337203685477580")
	require.NoError(t, res.err)

	var got listing[clubs.Club]
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Empty(t, got.Items)
	assert.Equal(t, 1, got.Pagination.Total)
}
