// Package session is the explicit login state shared by the screens.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"campusview/internal/apiclient"
	"campusview/internal/auth"
	"campusview/internal/domain/users"
	"campusview/internal/notifications"
	"campusview/internal/reviewflow"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const DefaultEmailDomain = "@oregonstate.edu"

var (
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrInstitutionalEmail = errors.New("email is not an institutional address")
	ErrInvalidTransition  = errors.New("invalid session transition")
	ErrNotLoggedIn        = errors.New("not logged in")
)

type State int

const (
	FirstVisit State = iota
	LoggingIn
	Registering
	LoggedIn
)

func (s State) String() string {
	switch s {
	case FirstVisit:
		return "first-visit"
	case LoggingIn:
		return "logging-in"
	case Registering:
		return "registering"
	case LoggedIn:
		return "logged-in"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Form holds the profile screen's input buffers.
type Form struct {
	FullName string
	Username string
	Email    string
	Password string
}

type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type registerInput struct {
	FullName string `validate:"required"`
	Username string `validate:"required"`
	Email    string `validate:"required,campusemail"`
	Password string `validate:"required"`
}

type Config struct {
	// EmailDomain is the suffix registration emails must carry.
	EmailDomain string
	// NewUserID picks the user_id sent on registration.
	NewUserID func() int64
	Now       func() time.Time
}

type Session struct {
	cfg       Config
	users     users.Store
	tokens    auth.TokenStore
	inspector auth.Inspector
	notifier  notifications.Notifier
	logger    *zap.SugaredLogger
	validate  *validator.Validate

	mu       sync.Mutex
	state    State
	form     Form
	username string
	profile  *users.User
}

func New(cfg Config, store users.Store, tokens auth.TokenStore, inspector auth.Inspector, notifier notifications.Notifier, logger *zap.SugaredLogger) *Session {
	if cfg.EmailDomain == "" {
		cfg.EmailDomain = DefaultEmailDomain
	}
	if cfg.NewUserID == nil {
		cfg.NewUserID = func() int64 { return rand.Int64N(1000) }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	domain := strings.ToLower(cfg.EmailDomain)
	err := v.RegisterValidation("campusemail", func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(strings.ToLower(fl.Field().String()), domain)
	})
	if err != nil {
		panic(fmt.Sprintf("session: register campusemail validation: %v", err))
	}

	return &Session{
		cfg:       cfg,
		users:     store,
		tokens:    tokens,
		inspector: inspector,
		notifier:  notifier,
		logger:    logger,
		validate:  v,
	}
}

// Restore resumes a session from a stored, unexpired token. It reports
// whether the session is now logged in.
func (s *Session) Restore() (bool, error) {
	token, err := s.tokens.GetToken()
	if errors.Is(err, auth.ErrNoToken) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read stored token: %w", err)
	}

	claims, err := s.inspector.Inspect(token)
	if err != nil {
		s.logger.Warnw("discarding unreadable token", "error", err)
		return false, s.tokens.SetToken("")
	}
	if claims.Expired(s.cfg.Now()) {
		s.logger.Infow("stored token expired", "username", claims.Username, "expired_at", claims.ExpiresAt)
		return false, s.tokens.SetToken("")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = LoggedIn
	s.username = claims.Username
	return true, nil
}

func (s *Session) ChooseLogin() error {
	return s.choose(LoggingIn)
}

func (s *Session) ChooseRegister() error {
	return s.choose(Registering)
}

// Cancel backs out of the login or registration form.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != LoggedIn {
		s.state = FirstVisit
		s.form = Form{}
	}
}

func (s *Session) choose(next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == LoggedIn {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, next)
	}
	s.state = next
	return nil
}

func (s *Session) Fill(f Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Login posts the form's credentials. Invalid input leaves everything as
// it was. A failed request alerts and clears the form, staying on the
// login screen.
func (s *Session) Login(ctx context.Context) error {
	s.mu.Lock()
	state, form := s.state, s.form
	s.mu.Unlock()

	if state != LoggingIn {
		return fmt.Errorf("%w: login from %s", ErrInvalidTransition, state)
	}
	if err := s.check(ctx, loginInput{Username: form.Username, Password: form.Password}); err != nil {
		return err
	}
	return s.login(ctx, form.Username, form.Password, notifications.LoginFailed)
}

// Register creates the account and then logs in with the same credentials.
func (s *Session) Register(ctx context.Context) error {
	s.mu.Lock()
	state, form := s.state, s.form
	s.mu.Unlock()

	if state != Registering {
		return fmt.Errorf("%w: register from %s", ErrInvalidTransition, state)
	}
	err := s.check(ctx, registerInput{
		FullName: form.FullName,
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return err
	}

	err = s.users.Register(ctx, users.RegisterPayload{
		UserID:   s.cfg.NewUserID(),
		FullName: form.FullName,
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		s.fail(ctx, "registration failed", err, notifications.RegistrationFailed)
		return err
	}
	s.logger.Infow("registered", "username", form.Username)

	return s.login(ctx, form.Username, form.Password, notifications.RegistrationFailed)
}

func (s *Session) login(ctx context.Context, username, password string, notice func(string) notifications.Notice) error {
	tok, err := s.users.Login(ctx, username, password)
	if err != nil {
		s.fail(ctx, "login failed", err, notice)
		return err
	}
	if err := s.tokens.SetToken(tok.AccessToken); err != nil {
		s.fail(ctx, "could not persist token", err, notice)
		return fmt.Errorf("persist token: %w", err)
	}

	if claims, err := s.inspector.Inspect(tok.AccessToken); err == nil && claims.Username != "" {
		username = claims.Username
	}

	s.mu.Lock()
	s.state = LoggedIn
	s.username = username
	s.form = Form{}
	s.mu.Unlock()

	s.logger.Infow("logged in", "username", username)

	if _, err := s.LoadProfile(ctx); err != nil {
		s.logger.Warnw("failed to load profile", "username", username, "error", err)
	}
	return nil
}

func (s *Session) fail(ctx context.Context, msg string, err error, notice func(string) notifications.Notice) {
	s.logger.Errorw(msg, "error", err)
	s.alert(ctx, notice(apiclient.Reason(err)))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = Form{}
}

// check validates input and alerts on the first problem found. Missing
// fields are reported before a bad email.
func (s *Session) check(ctx context.Context, input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			s.alert(ctx, notifications.MissingFields())
			return ErrMissingFields
		}
	}
	s.alert(ctx, notifications.InvalidEmail(s.cfg.EmailDomain))
	return ErrInstitutionalEmail
}

func (s *Session) alert(ctx context.Context, n notifications.Notice) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warnw("failed to deliver alert", "title", n.Title, "error", err)
	}
}

// Logout clears the stored token and returns to the first-visit screen.
func (s *Session) Logout() error {
	err := s.tokens.SetToken("")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = FirstVisit
	s.form = Form{}
	s.username = ""
	s.profile = nil

	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// LoadProfile fetches the logged-in user's details.
func (s *Session) LoadProfile(ctx context.Context) (*users.User, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	u, err := s.users.Me(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = u
	if u.Username != "" {
		s.username = u.Username
	}
	return u, nil
}

func (s *Session) Profile() *users.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

func (s *Session) LoggedIn() bool {
	return s.State() == LoggedIn
}

// Viewer is the identity review cards check affordances against.
func (s *Session) Viewer() reviewflow.Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reviewflow.Viewer{Username: s.username, LoggedIn: s.state == LoggedIn}
}
