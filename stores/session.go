package stores

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/models"
	"go.uber.org/zap"
)

var errEmptyName = &gateway.ValidationError{Field: "full_name", Reason: "must not be empty"}

type SessionState int

const (
	StateUninitialized SessionState = iota
	StateLoading
	StateAnonymous
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// SessionStore tracks who is signed in. It is hydrated once from the
// gateway's persisted session and then follows SignIn and SignOut.
type SessionStore struct {
	auth  AuthGateway
	users UserTable
	log   *zap.Logger

	initOnce sync.Once
	initErr  error

	mu        sync.RWMutex
	state     SessionState
	user      *models.User
	onSignOut []func()
}

func NewSessionStore(auth AuthGateway, users UserTable, log *zap.Logger) *SessionStore {
	return &SessionStore{auth: auth, users: users, log: log.Named("session")}
}

// Initialize resolves the persisted session. Only the first call does any
// work; later calls return its result.
func (s *SessionStore) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.hydrate(ctx)
	})
	return s.initErr
}

func (s *SessionStore) hydrate(ctx context.Context) error {
	s.set(StateLoading, nil)

	sess, err := s.auth.CurrentSession(ctx)
	if err != nil {
		s.set(StateAnonymous, nil)
		return err
	}
	if sess == nil {
		s.set(StateAnonymous, nil)
		return nil
	}

	user, err := s.users.FindUser(ctx, sess.UserID)
	if errors.Is(err, gateway.ErrNotFound) {
		s.log.Warn("session has no profile row", zap.String("user_id", sess.UserID))
		s.set(StateAnonymous, nil)
		return nil
	}
	if err != nil {
		s.set(StateAnonymous, nil)
		return err
	}

	s.set(StateAuthenticated, user)
	return nil
}

// SignIn opens a gateway session and loads the user's profile.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) error {
	sess, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	user, err := s.users.FindUser(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			s.log.Warn("credentials without profile row", zap.String("user_id", sess.UserID))
			err = &gateway.AuthError{Op: "signin", Err: ErrMissingProfile}
		}
		if serr := s.auth.SignOut(ctx); serr != nil {
			return errors.Join(err, serr)
		}
		s.set(StateAnonymous, nil)
		return err
	}
	s.set(StateAuthenticated, user)
	s.log.Info("signed in", zap.String("user_id", user.ID))
	return nil
}

// SignUp registers credentials and creates the matching profile row. When
// the profile cannot be written the credentials are removed again.
func (s *SessionStore) SignUp(ctx context.Context, email, password, fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return errEmptyName
	}
	ident, err := s.auth.SignUp(ctx, email, password, gateway.Metadata{FullName: fullName})
	if err != nil {
		return err
	}
	if ident == nil {
		return nil
	}

	user := &models.User{ID: ident.UserID, Email: ident.Email, FullName: fullName}
	if err := s.users.InsertUser(ctx, user); err != nil {
		if derr := s.auth.DeleteIdentity(ctx, ident.UserID); derr != nil {
			s.log.Error("identity left without profile",
				zap.String("user_id", ident.UserID), zap.Error(derr))
			return errors.Join(err, derr)
		}
		return err
	}
	return nil
}

// SignOut ends the gateway session, then forgets the local user. A gateway
// failure leaves the local state as it was.
func (s *SessionStore) SignOut(ctx context.Context) error {
	if err := s.auth.SignOut(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	hooks := append([]func(){}, s.onSignOut...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return nil
}

// UpdateProfile changes the signed-in user's name and reloads the profile.
func (s *SessionStore) UpdateProfile(ctx context.Context, fullName string) error {
	id, ok := s.UserID()
	if !ok {
		return ErrNotAuthenticated
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return errEmptyName
	}

	if err := s.users.UpdateUser(ctx, id, gateway.UserPatch{FullName: &fullName}); err != nil {
		return err
	}
	user, err := s.users.FindUser(ctx, id)
	if err != nil {
		return err
	}
	s.set(StateAuthenticated, user)
	return nil
}

// OnSignOut registers fn to run after every successful SignOut.
func (s *SessionStore) OnSignOut(fn func()) {
	s.mu.Lock()
	s.onSignOut = append(s.onSignOut, fn)
	s.mu.Unlock()
}

func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the signed-in user, or nil.
func (s *SessionStore) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionStore) UserID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return "", false
	}
	return s.user.ID, true
}

func (s *SessionStore) set(state SessionState, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
}
