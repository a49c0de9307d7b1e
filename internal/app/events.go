package app

import (
	"context"
	"log/slog"
	"time"

	"gonotes/internal/model"
)

// EventPublisher ships audit events off the request path.
type EventPublisher interface {
	Publish(ctx context.Context, event model.AuditEvent) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.AuditEvent) error {
	return nil
}

// publish never fails the caller: the state change has already committed and
// the audit trail is best effort.
func publish(ctx context.Context, p EventPublisher, event model.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if err := p.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "publish audit event failed",
			"action", event.Action,
			"username", event.Username,
			"error", err,
		)
	}
}

// RecordLogin and RecordLogout let the transport layer report session
// transitions, which the stores never see.
func RecordLogin(ctx context.Context, p EventPublisher, username string) {
	if p == nil {
		return
	}
	publish(ctx, p, model.AuditEvent{Username: username, Action: model.ActionUserLoggedIn})
}

func RecordLogout(ctx context.Context, p EventPublisher, username string) {
	if p == nil {
		return
	}
	publish(ctx, p, model.AuditEvent{Username: username, Action: model.ActionUserLoggedOut})
}
