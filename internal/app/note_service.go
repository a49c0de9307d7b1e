package app

import (
	"context"
	"errors"
	"strings"

	"gonotes/internal/auth"
	"gonotes/internal/model"
	"gonotes/internal/repository"
)

var ErrNoteNotFound = errors.New("note not found")

// NoteStore owns notes. Apart from GetOwnedNote it performs no authorization;
// callers check ownership first.
type NoteStore interface {
	CreateNote(ctx context.Context, owner, title, content string) (*model.Note, error)
	GetNote(ctx context.Context, id uint) (*model.Note, error)
	GetOwnedNote(ctx context.Context, id auth.Identity, noteID uint) (*model.Note, error)
	UpdateNote(ctx context.Context, id uint, title, content string) (*model.Note, error)
	DeleteNote(ctx context.Context, id uint) error
	ListNotesByOwner(ctx context.Context, username string) ([]model.Note, error)
	DeleteAllNotesByOwner(ctx context.Context, username string) error
}

type NoteService struct {
	store  *repository.Store
	events EventPublisher
}

func NewNoteService(store *repository.Store, events EventPublisher) *NoteService {
	if events == nil {
		events = NopPublisher{}
	}
	return &NoteService{store: store, events: events}
}

func (s *NoteService) CreateNote(ctx context.Context, owner, title, content string) (*model.Note, error) {
	note := &model.Note{
		Title:         strings.TrimSpace(title),
		Content:       content,
		OwnerUsername: owner,
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.GetByUsername(ctx, owner)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		return tx.Notes.Create(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, model.AuditEvent{Username: owner, Action: model.ActionNoteCreated, NoteID: note.ID})
	return note, nil
}

func (s *NoteService) GetNote(ctx context.Context, id uint) (*model.Note, error) {
	note, err := s.store.Notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// GetOwnedNote applies the note-route authorization order: the note must
// exist, the caller must be logged in, and the caller must own it.
func (s *NoteService) GetOwnedNote(ctx context.Context, id auth.Identity, noteID uint) (*model.Note, error) {
	note, err := s.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeOwner(id, note.OwnerUsername); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, id uint, title, content string) (*model.Note, error) {
	var note *model.Note
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Notes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNoteNotFound
		}
		existing.Title = strings.TrimSpace(title)
		existing.Content = content
		if err := tx.Notes.Save(ctx, existing); err != nil {
			return err
		}
		note = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, model.AuditEvent{Username: note.OwnerUsername, Action: model.ActionNoteUpdated, NoteID: note.ID})
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id uint) error {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := s.store.Notes.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}

	publish(ctx, s.events, model.AuditEvent{Username: note.OwnerUsername, Action: model.ActionNoteDeleted, NoteID: id})
	return nil
}

func (s *NoteService) ListNotesByOwner(ctx context.Context, username string) ([]model.Note, error) {
	return s.store.Notes.ListByOwner(ctx, username)
}

// DeleteAllNotesByOwner is the note half of the account deletion cascade.
// AuthService.DeleteUser calls it on a service bound to its transaction.
func (s *NoteService) DeleteAllNotesByOwner(ctx context.Context, username string) error {
	return s.store.Notes.DeleteByOwner(ctx, username)
}
