package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"campusview/internal/domain/clubs"
	"campusview/internal/domain/dining"
	"campusview/internal/domain/reviews"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAPI is an in-memory stand-in for the campus API.
type fakeAPI struct {
	t  *testing.T
	mu sync.Mutex

	restaurants []dining.Restaurant
	clubs       []clubs.Club
	created     []reviews.Review
	deleted     []string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	cuisine := "Mexican"
	return &fakeAPI{
		t: t,
		restaurants: []dining.Restaurant{
			{
				Name: "Ring of Fire", Building: "Arnold", Location: "Arnold Dining Center",
				DiningHall: "Southside Station @ Arnold", Cuisine: &cuisine,
				Menu: map[string][]dining.MenuCategory{
					"May 01": {{Title: "Grill - Lunch", Items: []string{"Burger", "Fries"}}},
				},
				Reviews: &reviews.ReviewSection{Score: 4, Reviews: []reviews.Review{{
					ReviewID: 11, Type: reviews.KindRestaurant, Owner: "Ring of Fire",
					User: "someone", Rating: 4, Time: "2024-04-20T08:00:00.000Z", Message: "spicy",
				}}},
			},
			{
				Name: "Clubhouse Deli", Building: "MU", Location: "Memorial Union",
				DiningHall: "Marketplace West",
				Reviews:    &reviews.ReviewSection{Reviews: []reviews.Review{}},
			},
		},
		clubs: []clubs.Club{
			clubs.New("Robotics Club", "College of Engineering"),
		},
	}
}

func (f *fakeAPI) token(username string) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("server-secret"))
	require.NoError(f.t, err)
	return s
}

func detail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}

func (f *fakeAPI) requireBearer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next(w, r)
	}
}

func (f *fakeAPI) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/restaurant", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.restaurants)
	})

	r.Get("/club", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.clubs)
	})

	r.Post("/club/{name}", func(w http.ResponseWriter, r *http.Request) {
		var c clubs.Club
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			detail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, existing := range f.clubs {
			if existing.Name == chi.URLParam(r, "name") {
				detail(w, http.StatusConflict, "Club already exists")
				return
			}
		}
		f.clubs = append(f.clubs, c)
		json.NewEncoder(w).Encode(map[string]string{"message": "Success"})
	})

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "password" {
			detail(w, http.StatusUnprocessableEntity, "bad form")
			return
		}
		if r.PostForm.Get("password") != "hunter2" {
			detail(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": f.token(r.PostForm.Get("username")),
			"token_type":   "bearer",
		})
	})

	r.Post("/register", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully"})
	})

	r.Get("/user/", f.requireBearer(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"user_id": 7, "username": "benny", "email": "benny@oregonstate.edu", "name": "Benny Beaver",
		})
	}))

	r.Post("/review", f.requireBearer(func(w http.ResponseWriter, r *http.Request) {
		var rv reviews.Review
		if err := json.NewDecoder(r.Body).Decode(&rv); err != nil {
			detail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.created = append(f.created, rv)
		for i := range f.restaurants {
			if f.restaurants[i].Name == rv.Owner {
				f.restaurants[i].Reviews.Reviews = append(f.restaurants[i].Reviews.Reviews, rv)
			}
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Success"})
	}))

	r.Delete("/review/{id}", f.requireBearer(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		f.mu.Lock()
		defer f.mu.Unlock()
		f.deleted = append(f.deleted, id)
		for i := range f.restaurants {
			kept := f.restaurants[i].Reviews.Reviews[:0]
			for _, rv := range f.restaurants[i].Reviews.Reviews {
				if rv.IDString() != id {
					kept = append(kept, rv)
				}
			}
			f.restaurants[i].Reviews.Reviews = kept
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Review deleted"})
	}))

	return r
}

type testEnv struct {
	api *fakeAPI
	cfg config
}

func newTestEnv(t *testing.T) *testEnv {
	api := newFakeAPI(t)
	srv := httptest.NewServer(api.routes())
	t.Cleanup(srv.Close)

	return &testEnv{
		api: api,
		cfg: config{
			apiURL:      srv.URL,
			storagePath: filepath.Join(t.TempDir(), "storage.json"),
			emailDomain: "@oregonstate.edu",
			env:         "test",
			handleSalt:  "campusview",
		},
	}
}

type result struct {
	stdout string
	stderr string
	err    error
}

func (e *testEnv) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut strings.Builder

	app, err := newApplication(e.cfg, zap.NewNop().Sugar(), strings.NewReader(stdin), &out, &errOut)
	require.NoError(t, err)
	app.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local) }

	err = app.run(t.Context(), args)
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}
