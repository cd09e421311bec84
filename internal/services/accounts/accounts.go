package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/repos"
	"github.com/fastprodman/ledger/internal/repos/users"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyUsername      = fmt.Errorf("%w: username is required", domain.ErrValidation)
	ErrEmptyPassword      = fmt.Errorf("%w: password is required", domain.ErrValidation)
)

// NewUser is the registration input.
type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// Service handles registration, login and logout. Every one of them leaves an
// Action in the audit trail.
type Service struct {
	store      repos.Store
	now        func() time.Time
	bcryptCost int
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithBcryptCost sets the hashing cost for new passwords.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

func New(store repos.Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register creates the user with a zero balance and records a REGISTER action
// in the same unit of work.
func (s *Service) Register(ctx context.Context, in NewUser) (domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)

	if in.Username == "" {
		return domain.User{}, ErrEmptyUsername
	}

	if in.Password == "" {
		return domain.User{}, ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	usr := domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    s.stamp(),
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, r repos.Repos) error {
		usr.ID, err = r.Users().Add(ctx, usr)
		if err != nil {
			return fmt.Errorf("add user: %w", err)
		}

		_, err = r.Audit().Add(ctx, s.action(usr.ID, domain.ActionRegister, domain.StatusSuccess))
		if err != nil {
			return fmt.Errorf("insert audit record: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			return domain.User{}, fmt.Errorf("register %q: %w: %w", in.Username, domain.ErrValidation, err)
		}

		return domain.User{}, wrapStorage("register", err)
	}

	slog.InfoContext(ctx, "user registered", slog.Int64("user_id", usr.ID), slog.String("username", usr.Username))

	return usr, nil
}

// Login checks the password. An unknown username is rejected without an audit
// record since there is no user to own it.
func (s *Service) Login(ctx context.Context, username, password string) (domain.User, error) {
	usr, err := s.store.Users().FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}

		return domain.User{}, wrapStorage("login", err)
	}

	status := domain.StatusSuccess

	err = bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password))
	if err != nil {
		status = domain.StatusDecline
	}

	_, err = s.store.Audit().Add(ctx, s.action(usr.ID, domain.ActionLogin, status))
	if err != nil {
		return domain.User{}, wrapStorage("login", err)
	}

	if status == domain.StatusDecline {
		slog.InfoContext(ctx, "login declined", slog.Int64("user_id", usr.ID))
		return domain.User{}, ErrInvalidCredentials
	}

	return usr, nil
}

func (s *Service) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return domain.ErrInvalidUserID
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, r repos.Repos) error {
		_, err := r.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}

		_, err = r.Audit().Add(ctx, s.action(userID, domain.ActionLogout, domain.StatusSuccess))

		return err
	})
	if err != nil {
		return wrapStorage("logout", err)
	}

	return nil
}

func (s *Service) Users(ctx context.Context) ([]domain.User, error) {
	all, err := s.store.Users().FindAll(ctx)
	if err != nil {
		return nil, wrapStorage("list users", err)
	}

	return all, nil
}

func (s *Service) User(ctx context.Context, userID int64) (domain.User, error) {
	if userID <= 0 {
		return domain.User{}, domain.ErrInvalidUserID
	}

	usr, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, wrapStorage("get user", err)
	}

	return usr, nil
}

func (s *Service) action(userID int64, typ domain.ActionType, status domain.Status) domain.Action {
	return domain.Action{
		Envelope: domain.Envelope{
			UserID:     userID,
			OccurredAt: s.stamp(),
			Status:     status,
		},
		Type: typ,
	}
}

func (s *Service) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func wrapStorage(op string, err error) error {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrValidation, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTimeout, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
}
