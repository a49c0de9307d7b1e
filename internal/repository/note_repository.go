package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gonotes/internal/model"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("create note failed: %w", err)
	}
	return nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query note by id failed: %w", err)
	}
	return &note, nil
}

func (r *NoteRepository) Save(ctx context.Context, note *model.Note) error {
	if err := r.db.WithContext(ctx).Save(note).Error; err != nil {
		return fmt.Errorf("save note failed: %w", err)
	}
	return nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, username string) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).Where("owner_username = ?", username).Order("id ASC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes failed: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Note{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete note failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *NoteRepository) DeleteByOwner(ctx context.Context, username string) error {
	if err := r.db.WithContext(ctx).Where("owner_username = ?", username).Delete(&model.Note{}).Error; err != nil {
		return fmt.Errorf("delete notes by owner failed: %w", err)
	}
	return nil
}
