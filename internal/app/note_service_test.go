package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/app"
	"gonotes/internal/auth"
	"gonotes/internal/model"
)

func TestCreateAndGetNote(t *testing.T) {
	authSvc, noteSvc, _, events := newServices(t)
	ctx := context.Background()
	_, err := authSvc.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)

	created, err := noteSvc.CreateNote(ctx, "alice", "Groceries", "milk, eggs")
	require.NoError(t, err)

	got, err := noteSvc.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, "milk, eggs", got.Content)
	assert.Equal(t, "alice", got.OwnerUsername)
	assert.Contains(t, events.Actions(), model.ActionNoteCreated)
}

func TestCreateNote_UnknownOwner(t *testing.T) {
	_, noteSvc, _, _ := newServices(t)

	_, err := noteSvc.CreateNote(context.Background(), "ghost", "t", "c")
	assert.ErrorIs(t, err, app.ErrUserNotFound)
}

func TestGetNote_NotFound(t *testing.T) {
	_, noteSvc, _, _ := newServices(t)

	_, err := noteSvc.GetNote(context.Background(), 999)
	assert.ErrorIs(t, err, app.ErrNoteNotFound)
}

func TestGetOwnedNote_Order(t *testing.T) {
	authSvc, noteSvc, _, _ := newServices(t)
	ctx := context.Background()
	_, err := authSvc.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)
	note, err := noteSvc.CreateNote(ctx, "alice", "t", "c")
	require.NoError(t, err)

	tests := []struct {
		name   string
		id     auth.Identity
		noteID uint
		want   error
	}{
		{"missing note, anonymous", auth.Anonymous(), 999, app.ErrNoteNotFound},
		{"missing note, logged in", auth.Identity{Username: "bob"}, 999, app.ErrNoteNotFound},
		{"anonymous", auth.Anonymous(), note.ID, auth.ErrUnauthenticated},
		{"other user", auth.Identity{Username: "bob"}, note.ID, auth.ErrForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := noteSvc.GetOwnedNote(ctx, tc.id, tc.noteID)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	got, err := noteSvc.GetOwnedNote(ctx, auth.Identity{Username: "alice"}, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)
}

func TestUpdateNote(t *testing.T) {
	authSvc, noteSvc, _, _ := newServices(t)
	ctx := context.Background()
	_, err := authSvc.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)
	note, err := noteSvc.CreateNote(ctx, "alice", "old", "old body")
	require.NoError(t, err)

	updated, err := noteSvc.UpdateNote(ctx, note.ID, "new", "new body")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)

	got, err := noteSvc.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "new body", got.Content)
	assert.Equal(t, "alice", got.OwnerUsername)

	_, err = noteSvc.UpdateNote(ctx, 999, "x", "y")
	assert.ErrorIs(t, err, app.ErrNoteNotFound)
}

func TestDeleteNote(t *testing.T) {
	authSvc, noteSvc, _, _ := newServices(t)
	ctx := context.Background()
	_, err := authSvc.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)
	note, err := noteSvc.CreateNote(ctx, "alice", "t", "c")
	require.NoError(t, err)

	require.NoError(t, noteSvc.DeleteNote(ctx, note.ID))
	_, err = noteSvc.GetNote(ctx, note.ID)
	assert.ErrorIs(t, err, app.ErrNoteNotFound)
	assert.ErrorIs(t, noteSvc.DeleteNote(ctx, note.ID), app.ErrNoteNotFound)
}

func TestDeleteAllNotesByOwner(t *testing.T) {
	authSvc, noteSvc, _, _ := newServices(t)
	ctx := context.Background()
	_, err := authSvc.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := noteSvc.CreateNote(ctx, "alice", "t", "c")
		require.NoError(t, err)
	}

	require.NoError(t, noteSvc.DeleteAllNotesByOwner(ctx, "alice"))
	notes, err := noteSvc.ListNotesByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, notes)
}
