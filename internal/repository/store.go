package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"gonotes/internal/model"
)

// ErrDuplicate wraps any unique or primary key violation reported by the driver.
var ErrDuplicate = errors.New("duplicate key")

const mysqlDuplicateEntry = 1062

// Store groups the repositories that share one database handle, which is
// either the connection pool or a single transaction.
type Store struct {
	db    *gorm.DB
	Users *UserRepository
	Notes *NoteRepository
	Audit *AuditEventRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:    db,
		Users: NewUserRepository(db),
		Notes: NewNoteRepository(db),
		Audit: NewAuditEventRepository(db),
	}
}

// Transaction runs fn against repositories bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Note{}, &model.AuditEvent{}); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return nil
}

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	// sqlite reports constraint failures only through the message text
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY constraint failed")
}
