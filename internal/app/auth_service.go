package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"gonotes/internal/model"
	"gonotes/internal/repository"
)

var (
	ErrUsernameTaken     = errors.New("username already taken")
	ErrEmailTaken        = errors.New("email already taken")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordTooLong   = errors.New("password is longer than 72 bytes")
)

// bcrypt only looks at the first 72 bytes of a password.
const maxPasswordBytes = 72

// CredentialStore owns user records and password verification.
type CredentialStore interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	GetUser(ctx context.Context, username string) (*model.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type AuthService struct {
	store      *repository.Store
	events     EventPublisher
	bcryptCost int
}

type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

func NewAuthService(store *repository.Store, events EventPublisher, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if events == nil {
		events = NopPublisher{}
	}
	return &AuthService{
		store:      store,
		events:     events,
		bcryptCost: bcryptCost,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	if len(input.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:  username,
		Password:  string(hash),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrUsernameTaken
		}
		return tx.Users.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, err
		}
		if repository.IsUniqueViolation(err) {
			return nil, s.classifyConflict(ctx, user, err)
		}
		return nil, err
	}

	publish(ctx, s.events, model.AuditEvent{Username: user.Username, Action: model.ActionUserRegistered})
	return user, nil
}

// classifyConflict decides which uniqueness rule a failed insert broke. A
// concurrent registration may have claimed the username after the pre-check.
func (s *AuthService) classifyConflict(ctx context.Context, user *model.User, cause error) error {
	byName, err := s.store.Users.GetByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if byName != nil {
		return ErrUsernameTaken
	}
	byEmail, err := s.store.Users.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if byEmail != nil {
		return ErrEmailTaken
	}
	return fmt.Errorf("register user failed: %w", cause)
}

func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.store.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.store.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// DeleteUser removes every note owned by username and then the user record,
// all in one transaction.
func (s *AuthService) DeleteUser(ctx context.Context, username string) error {
	var deletedNotes int
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		notes := NewNoteService(tx, s.events)
		owned, err := notes.ListNotesByOwner(ctx, username)
		if err != nil {
			return err
		}
		deletedNotes = len(owned)
		if err := notes.DeleteAllNotesByOwner(ctx, username); err != nil {
			return err
		}
		deleted, err := tx.Users.Delete(ctx, username)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "user deleted", "username", username, "notes", deletedNotes)
	publish(ctx, s.events, model.AuditEvent{Username: username, Action: model.ActionUserDeleted})
	return nil
}
