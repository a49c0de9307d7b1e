package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/model"
	"gonotes/internal/repository"
	"gonotes/internal/testutil"
)

func newUser(username, email string) *model.User {
	return &model.User{
		Username:  username,
		Password:  "hash",
		Email:     email,
		FirstName: "First",
		LastName:  "Last",
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(testutil.SetupTestDB(t))

	require.NoError(t, store.Users.Create(ctx, newUser("alice", "alice@example.com")))

	got, err := store.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice@example.com", got.Email)

	byEmail, err := store.Users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "alice", byEmail.Username)

	missing, err := store.Users.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(testutil.SetupTestDB(t))

	require.NoError(t, store.Users.Create(ctx, newUser("alice", "alice@example.com")))

	err := store.Users.Create(ctx, newUser("bob", "alice@example.com"))
	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))

	err = store.Users.Create(ctx, newUser("alice", "other@example.com"))
	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))
}

func TestUserRepository_DeleteRejectedWhileNotesExist(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(testutil.SetupTestDB(t))

	require.NoError(t, store.Users.Create(ctx, newUser("alice", "alice@example.com")))
	require.NoError(t, store.Notes.Create(ctx, &model.Note{Title: "t", Content: "c", OwnerUsername: "alice"}))

	_, err := store.Users.Delete(ctx, "alice")
	assert.Error(t, err)

	require.NoError(t, store.Notes.DeleteByOwner(ctx, "alice"))
	deleted, err := store.Users.Delete(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Users.Delete(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestNoteRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(testutil.SetupTestDB(t))
	require.NoError(t, store.Users.Create(ctx, newUser("alice", "alice@example.com")))

	note := &model.Note{Title: "Groceries", Content: "milk, eggs", OwnerUsername: "alice"}
	require.NoError(t, store.Notes.Create(ctx, note))
	require.NotZero(t, note.ID)

	got, err := store.Notes.GetByID(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Groceries", got.Title)

	got.Title = "Shopping"
	require.NoError(t, store.Notes.Save(ctx, got))

	list, err := store.Notes.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Shopping", list[0].Title)

	deleted, err := store.Notes.Delete(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	missing, err := store.Notes.GetByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNoteRepository_OwnerMustExist(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(testutil.SetupTestDB(t))

	err := store.Notes.Create(ctx, &model.Note{Title: "t", Content: "c", OwnerUsername: "ghost"})
	assert.Error(t, err)
}

func TestNoteRepository_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(testutil.SetupTestDB(t))
	require.NoError(t, store.Users.Create(ctx, newUser("alice", "alice@example.com")))

	first := &model.Note{Title: "a", Content: "a", OwnerUsername: "alice"}
	require.NoError(t, store.Notes.Create(ctx, first))
	_, err := store.Notes.Delete(ctx, first.ID)
	require.NoError(t, err)

	second := &model.Note{Title: "b", Content: "b", OwnerUsername: "alice"}
	require.NoError(t, store.Notes.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(testutil.SetupTestDB(t))
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.Create(ctx, newUser("alice", "alice@example.com")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAuditEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(testutil.SetupTestDB(t))

	event := &model.AuditEvent{Username: "ghost", Action: model.ActionUserDeleted}
	require.NoError(t, store.Audit.Create(ctx, event))
	assert.NotZero(t, event.ID)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, repository.IsUniqueViolation(nil))
	assert.False(t, repository.IsUniqueViolation(errors.New("connection refused")))
	assert.True(t, repository.IsUniqueViolation(repository.ErrDuplicate))
	assert.True(t, repository.IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")))
}
