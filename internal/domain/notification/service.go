package notification

import (
	"context"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/pkg/sse"
)

// Service defines the notification service interface.
//
// NotifyTaskEvent and NotifyAdminEvent are best-effort: they log failures
// and never return an error, so callers' primary writes are unaffected.
type Service interface {
	NotifyTaskEvent(ctx context.Context, event TaskEvent)
	NotifyAdminEvent(ctx context.Context, event AdminEvent)

	Feed(ctx context.Context, actor identity.Actor) (*FeedResponse, error)
	UnreadCount(ctx context.Context, actor identity.Actor) (int, error)
	MarkAsRead(ctx context.Context, actor identity.Actor, notificationID string) error
	MarkAllAsRead(ctx context.Context, actor identity.Actor) error
	Delete(ctx context.Context, actor identity.Actor, notificationID string) error

	// SSE subscription
	Subscribe(employeeID string) (chan sse.Event, func())
}
