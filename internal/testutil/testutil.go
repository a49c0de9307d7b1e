// Package testutil provides shared fixtures for package tests: an in-memory
// SQLite database with the schema applied and a recording event publisher.
package testutil

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"gonotes/internal/model"
	"gonotes/internal/platform/sqlite"
	"gonotes/internal/repository"
)

// SetupTestDB opens a private in-memory database and migrates every table.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.New(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// RecordingPublisher keeps every published audit event in memory.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []model.AuditEvent
	Err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, event model.AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	actions := make([]string, 0, len(p.events))
	for _, e := range p.events {
		actions = append(actions, e.Action)
	}
	return actions
}

func (p *RecordingPublisher) Events() []model.AuditEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.AuditEvent(nil), p.events...)
}
