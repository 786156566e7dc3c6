package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leanchem/erp-backend-go/internal/domain/employee"
	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/domain/notification"
	"github.com/leanchem/erp-backend-go/internal/domain/task"
	"github.com/leanchem/erp-backend-go/internal/pkg/sse"
)

// dedupWindow suppresses repeat notifications for the same task, event type
// and recipient created within this window.
const dedupWindow = 2 * time.Minute

// syntheticAdminID receives admin notifications when no admin employee rows
// exist yet, so bootstrap activity is not lost.
const syntheticAdminID = "superadmin-default"

const (
	feedLimitEmployee = 200
	feedLimitAdmin    = 500
)

type service struct {
	repo            notification.Repository
	tasks           task.Repository
	updates         task.UpdateRepository
	employees       employee.Repository
	hub             *sse.Hub
	superadminEmail string
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	repo notification.Repository,
	tasks task.Repository,
	updates task.UpdateRepository,
	employees employee.Repository,
	hub *sse.Hub,
	superadminEmail string,
) notification.Service {
	return &service{
		repo:            repo,
		tasks:           tasks,
		updates:         updates,
		employees:       employees,
		hub:             hub,
		superadminEmail: superadminEmail,
	}
}

// NotifyTaskEvent resolves the recipient set for a task activity and emits
// one notification per recipient. Failures are logged and swallowed so the
// caller's primary write is never rolled back by notification trouble.
func (s *service) NotifyTaskEvent(ctx context.Context, event notification.TaskEvent) {
	t, err := s.tasks.GetByID(ctx, event.TaskID)
	if err != nil {
		slog.Error("notification skipped, task lookup failed",
			"task_id", event.TaskID, "event_type", event.Type, "error", err)
		return
	}

	actorID := event.Actor.EmployeeID
	assignees := t.Assignees()
	attached := collectAttached(event)

	var recipients map[string]struct{}

	switch event.Type {
	case notification.EventTaskAssigned:
		recipients = toSet(assignees)
		addAll(recipients, attached)

	case notification.EventTaskStatusChanged, notification.EventTaskUpdated:
		// Notify the opposite side of whoever made the change.
		if event.Actor.IsAdmin() {
			recipients = toSet(assignees)
		} else {
			recipients = toSet(s.adminIDs(ctx))
		}
		addAll(recipients, attached)

	case notification.EventProgressUpdated:
		recipients = s.broadcastRecipients(ctx, assignees)

	case notification.EventFileUploaded:
		fallback := append(append([]string{}, assignees...), attached...)
		recipients = s.broadcastRecipients(ctx, fallback)

	case notification.EventNoteAdded:
		fallback := append(append([]string{}, assignees...), attached...)
		recipients = s.broadcastRecipients(ctx, fallback)
		delete(recipients, actorID)

		// A note from an employee may be a response to whoever attached
		// them to this task; that person gets a confirmation instead of
		// the general notification.
		if !event.Actor.IsAdmin() {
			attacher := s.findAttacher(ctx, t.ID, actorID)
			if attacher != "" && attacher != actorID {
				delete(recipients, attacher)
				s.emitOwnerConfirmation(ctx, attacher, t, event)
			}
		}

		delete(recipients, actorID)
		s.deliver(ctx, recipients, t, event)
		return

	default:
		slog.Warn("unknown notification event type, nothing emitted",
			"event_type", event.Type, "task_id", event.TaskID)
		return
	}

	delete(recipients, actorID)
	s.deliver(ctx, recipients, t, event)
}

// NotifyAdminEvent broadcasts an administrative activity to every admin.
func (s *service) NotifyAdminEvent(ctx context.Context, event notification.AdminEvent) {
	recipients := toSet(s.adminIDs(ctx))
	delete(recipients, event.ExcludeEmployeeID)

	meta := event.Meta
	meta.Type = string(event.Type)
	meta.Category = notification.CategoryAdminEvent
	meta.Timestamp = time.Now().UTC().Format(time.RFC3339)

	for recipient := range recipients {
		since := time.Now().UTC().Add(-dedupWindow)
		exists, err := s.repo.ExistsRecent(ctx, "", string(event.Type), recipient, since)
		if err != nil {
			slog.Error("notification dedup check failed, emitting anyway",
				"recipient", recipient, "event_type", event.Type, "error", err)
		} else if exists {
			continue
		}

		s.insertAndPublish(ctx, recipient, event.Message, meta)
	}
}

// deliver emits one notification per recipient with per-recipient dedup.
// A failure for one recipient never blocks the rest.
func (s *service) deliver(ctx context.Context, recipients map[string]struct{}, t *task.Task, event notification.TaskEvent) {
	message := s.formatMessage(t, event)
	meta := s.buildTaskMeta(t, event)

	for recipient := range recipients {
		since := time.Now().UTC().Add(-dedupWindow)
		exists, err := s.repo.ExistsRecent(ctx, t.ID, string(event.Type), recipient, since)
		if err != nil {
			slog.Error("notification dedup check failed, emitting anyway",
				"recipient", recipient, "task_id", t.ID, "event_type", event.Type, "error", err)
		} else if exists {
			continue
		}

		s.insertAndPublish(ctx, recipient, message, meta)
	}
}

// formatMessage gives each event type its display prefix. Progress events
// get their message built here so old and new values read consistently.
func (s *service) formatMessage(t *task.Task, event notification.TaskEvent) string {
	switch event.Type {
	case notification.EventProgressUpdated:
		switch {
		case event.OldProgress != nil && event.NewProgress != nil:
			return fmt.Sprintf("📊 Progress updated from %d%% to %d%% on task: %s", *event.OldProgress, *event.NewProgress, t.Title)
		case event.NewProgress != nil:
			return fmt.Sprintf("📊 Progress updated to %d%% on task: %s", *event.NewProgress, t.Title)
		default:
			return "📊 Progress updated on task: " + t.Title
		}
	case notification.EventNoteAdded:
		return "📝 Note added to task: " + t.Title
	case notification.EventFileUploaded:
		return "📎 " + event.Message
	case notification.EventTaskStatusChanged:
		return "🔄 " + event.Message
	case notification.EventTaskAssigned:
		return "📋 " + event.Message
	case notification.EventTaskUpdated:
		return "✏️ " + event.Message
	default:
		return event.Message
	}
}

// emitOwnerConfirmation tells the employee who attached the note author to
// the task that their mention got a response.
func (s *service) emitOwnerConfirmation(ctx context.Context, attacher string, t *task.Task, event notification.TaskEvent) {
	since := time.Now().UTC().Add(-dedupWindow)
	exists, err := s.repo.ExistsRecent(ctx, t.ID, string(event.Type), attacher, since)
	if err != nil {
		slog.Error("notification dedup check failed, emitting anyway",
			"recipient", attacher, "task_id", t.ID, "event_type", event.Type, "error", err)
	} else if exists {
		return
	}

	meta := s.buildTaskMeta(t, event)
	meta.IsTaskOwnerConfirmation = true

	message := "💬 You got a response to your note on task: " + t.Title
	s.insertAndPublish(ctx, attacher, message, meta)
}

func (s *service) insertAndPublish(ctx context.Context, recipient string, message string, meta notification.Meta) {
	var relatedTaskID *string
	if meta.TaskID != "" {
		taskID := meta.TaskID
		relatedTaskID = &taskID
	}

	n := &notification.Notification{
		ID:            uuid.New().String(),
		ToEmployee:    recipient,
		Message:       message,
		Channel:       notification.ChannelInApp,
		Priority:      notification.PriorityNormal,
		Type:          meta.Type,
		RelatedTaskID: relatedTaskID,
		Meta:          meta,
		IsRead:        false,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		slog.Error("failed to store notification",
			"recipient", recipient, "event_type", meta.Type, "error", err)
		return
	}

	s.hub.Publish(recipient, sse.Event{
		EmployeeID: recipient,
		Event:      "notification",
		Data:       notification.ToResponse(n),
	})
}

func (s *service) buildTaskMeta(t *task.Task, event notification.TaskEvent) notification.Meta {
	meta := notification.Meta{
		TaskID:    t.ID,
		TaskTitle: t.Title,
		Type:      string(event.Type),
		UserRole:  string(event.Actor.Role),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if event.AttachedTo != nil {
		meta.AttachedTo = *event.AttachedTo
	}
	if len(event.AttachedToMultiple) > 0 {
		meta.AttachedToMultiple = event.AttachedToMultiple
	}
	meta.SpeciallyAttached = meta.AttachedTo != "" || len(meta.AttachedToMultiple) > 0

	switch event.Type {
	case notification.EventTaskAssigned:
		meta.AssignedBy = event.Actor.Name
	case notification.EventNoteAdded:
		meta.AddedBy = event.Actor.Name
		meta.IsNoteNotification = true
		if event.NotePreview != nil {
			meta.NotePreview = *event.NotePreview
		}
	case notification.EventFileUploaded:
		meta.AddedBy = event.Actor.Name
		meta.IsAttachmentNotification = true
	default:
		meta.AddedBy = event.Actor.Name
	}

	return meta
}

// findAttacher walks a task's updates newest-first and returns the author of
// the most recent update, by someone else, that attached the employee to the
// task. Empty string means the employee was never attached by anyone.
func (s *service) findAttacher(ctx context.Context, taskID string, employeeID string) string {
	updates, err := s.updates.ListByTask(ctx, taskID)
	if err != nil {
		slog.Error("failed to trace attachment origin", "task_id", taskID, "error", err)
		return ""
	}

	for _, u := range updates {
		if u.UpdatedBy == employeeID {
			continue
		}
		if u.Mentions(employeeID) {
			return u.UpdatedBy
		}
	}

	return ""
}

// broadcastRecipients returns all active employees plus admins. When the
// active-employee lookup fails or comes back empty, it falls back to the
// provided ids plus admins so the event still reaches someone.
func (s *service) broadcastRecipients(ctx context.Context, fallback []string) map[string]struct{} {
	recipients := toSet(s.adminIDs(ctx))

	ids, err := s.employees.ListActiveIDs(ctx)
	if err != nil || len(ids) == 0 {
		if err != nil {
			slog.Error("failed to list active employees, using fallback recipients", "error", err)
		}
		addAll(recipients, fallback)
		return recipients
	}

	addAll(recipients, ids)
	return recipients
}

// adminIDs returns the ids of all active admin employees, or the synthetic
// superadmin when none exist yet.
func (s *service) adminIDs(ctx context.Context) []string {
	admins, err := s.employees.ListAdmins(ctx)
	if err != nil {
		slog.Error("failed to list admin employees, using synthetic superadmin",
			"superadmin_email", s.superadminEmail, "error", err)
		return []string{syntheticAdminID}
	}
	if len(admins) == 0 {
		return []string{syntheticAdminID}
	}

	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	return ids
}

// Feed returns the notification list plus unread count for the viewer.
// Employees see their own notifications; pure admins without an employee
// row see everything.
func (s *service) Feed(ctx context.Context, actor identity.Actor) (*notification.FeedResponse, error) {
	var (
		rows []*notification.Notification
		err  error
	)

	switch {
	case actor.EmployeeID != "":
		rows, err = s.repo.ListByEmployee(ctx, actor.EmployeeID, feedLimitEmployee)
	case actor.IsAdmin():
		rows, err = s.repo.ListAll(ctx, feedLimitAdmin)
	default:
		return nil, notification.ErrNoIdentity
	}
	if err != nil {
		return nil, err
	}

	unread, err := s.UnreadCount(ctx, actor)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, 0, len(rows))
	for _, n := range rows {
		responses = append(responses, notification.ToResponse(n))
	}

	return &notification.FeedResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}, nil
}

func (s *service) UnreadCount(ctx context.Context, actor identity.Actor) (int, error) {
	switch {
	case actor.EmployeeID != "":
		return s.repo.UnreadCountByEmployee(ctx, actor.EmployeeID)
	case actor.IsAdmin():
		return s.repo.UnreadCountAll(ctx)
	default:
		return 0, notification.ErrNoIdentity
	}
}

func (s *service) MarkAsRead(ctx context.Context, actor identity.Actor, notificationID string) error {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && n.ToEmployee != actor.EmployeeID {
		return notification.ErrUnauthorized
	}

	return s.repo.MarkAsRead(ctx, notificationID)
}

func (s *service) MarkAllAsRead(ctx context.Context, actor identity.Actor) error {
	switch {
	case actor.EmployeeID != "":
		return s.repo.MarkAllAsRead(ctx, actor.EmployeeID)
	case actor.IsAdmin():
		return s.repo.MarkAllAsReadGlobal(ctx)
	default:
		return notification.ErrNoIdentity
	}
}

func (s *service) Delete(ctx context.Context, actor identity.Actor, notificationID string) error {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && n.ToEmployee != actor.EmployeeID {
		return notification.ErrUnauthorized
	}

	return s.repo.Delete(ctx, notificationID)
}

// Subscribe registers an SSE subscriber for the employee
func (s *service) Subscribe(employeeID string) (chan sse.Event, func()) {
	return s.hub.Subscribe(employeeID)
}

func collectAttached(event notification.TaskEvent) []string {
	var out []string
	if event.AttachedTo != nil && *event.AttachedTo != "" {
		out = append(out, *event.AttachedTo)
	}
	out = append(out, event.AttachedToMultiple...)
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

func addAll(set map[string]struct{}, ids []string) {
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
}
