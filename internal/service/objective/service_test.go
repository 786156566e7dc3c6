package objective

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/domain/notification"
	"github.com/leanchem/erp-backend-go/internal/domain/objective"
	"github.com/leanchem/erp-backend-go/internal/pkg/sse"
)

type fakeObjectiveRepo struct {
	objectives map[string]*objective.Objective
	taskCounts map[string]int
	nextID     int
}

func newFakeObjectiveRepo() *fakeObjectiveRepo {
	return &fakeObjectiveRepo{
		objectives: make(map[string]*objective.Objective),
		taskCounts: make(map[string]int),
	}
}

func (f *fakeObjectiveRepo) Create(_ context.Context, obj *objective.Objective) error {
	f.nextID++
	obj.ID = fmt.Sprintf("obj-%d", f.nextID)
	obj.CreatedAt = time.Now().UTC()
	f.objectives[obj.ID] = obj
	return nil
}

func (f *fakeObjectiveRepo) GetByID(_ context.Context, id string) (*objective.Objective, error) {
	if obj, ok := f.objectives[id]; ok {
		copied := *obj
		return &copied, nil
	}
	return nil, objective.ErrObjectiveNotFound
}

func (f *fakeObjectiveRepo) List(_ context.Context) ([]*objective.Objective, error) {
	var out []*objective.Objective
	for _, obj := range f.objectives {
		out = append(out, obj)
	}
	return out, nil
}

func (f *fakeObjectiveRepo) Update(_ context.Context, obj *objective.Objective) error {
	if _, ok := f.objectives[obj.ID]; !ok {
		return objective.ErrObjectiveNotFound
	}
	copied := *obj
	f.objectives[obj.ID] = &copied
	return nil
}

func (f *fakeObjectiveRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.objectives[id]; !ok {
		return objective.ErrObjectiveNotFound
	}
	delete(f.objectives, id)
	return nil
}

func (f *fakeObjectiveRepo) CountTasks(_ context.Context, objectiveID string) (int, error) {
	return f.taskCounts[objectiveID], nil
}

type fakeNotifier struct {
	adminEvents []notification.AdminEvent
}

func (f *fakeNotifier) NotifyTaskEvent(_ context.Context, _ notification.TaskEvent) {}

func (f *fakeNotifier) NotifyAdminEvent(_ context.Context, event notification.AdminEvent) {
	f.adminEvents = append(f.adminEvents, event)
}

func (f *fakeNotifier) Feed(_ context.Context, _ identity.Actor) (*notification.FeedResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) UnreadCount(_ context.Context, _ identity.Actor) (int, error) { return 0, nil }

func (f *fakeNotifier) MarkAsRead(_ context.Context, _ identity.Actor, _ string) error { return nil }

func (f *fakeNotifier) MarkAllAsRead(_ context.Context, _ identity.Actor) error { return nil }

func (f *fakeNotifier) Delete(_ context.Context, _ identity.Actor, _ string) error { return nil }

func (f *fakeNotifier) Subscribe(_ string) (chan sse.Event, func()) { return nil, func() {} }

func strptr(s string) *string { return &s }

var (
	adminA   = identity.Actor{EmployeeID: "admin-1", Role: identity.RoleAdmin, Name: "The Admin"}
	aliceA   = identity.Actor{EmployeeID: "alice", Role: identity.RoleEmployee, Name: "Alice"}
	bobActor = identity.Actor{EmployeeID: "bob", Role: identity.RoleEmployee, Name: "Bob"}
)

func TestCreate_NotifiesOtherAdmins(t *testing.T) {
	repo := newFakeObjectiveRepo()
	notifier := &fakeNotifier{}
	svc := NewObjectiveService(repo, notifier)

	resp, err := svc.Create(context.Background(), adminA, objective.CreateObjectiveRequest{
		Title:   "  Expand east region  ",
		DueDate: strptr("2026-12-31"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Expand east region", resp.Title)
	assert.True(t, resp.IsAdminCreated)
	require.NotNil(t, resp.DueDate)
	assert.Equal(t, 2026, resp.DueDate.Year())

	require.Len(t, notifier.adminEvents, 1)
	event := notifier.adminEvents[0]
	assert.Equal(t, notification.EventObjectiveCreated, event.Type)
	assert.Equal(t, "🎯 New objective created: Expand east region", event.Message)
	assert.Equal(t, "admin-1", event.ExcludeEmployeeID)
	assert.Equal(t, resp.ID, event.Meta.ObjectiveID)
}

func TestCreate_DefaultsPriorityAndStatus(t *testing.T) {
	svc := NewObjectiveService(newFakeObjectiveRepo(), &fakeNotifier{})

	resp, err := svc.Create(context.Background(), adminA, objective.CreateObjectiveRequest{Title: "Bare"})
	require.NoError(t, err)
	assert.Equal(t, "medium", resp.Priority)
	assert.Equal(t, "draft", resp.Status)
	assert.Nil(t, resp.Department)

	resp, err = svc.Create(context.Background(), adminA, objective.CreateObjectiveRequest{
		Title:      "Full",
		Department: strptr("Sales"),
		Priority:   strptr("high"),
		Status:     strptr("active"),
	})
	require.NoError(t, err)
	assert.Equal(t, "high", resp.Priority)
	assert.Equal(t, "active", resp.Status)
	require.NotNil(t, resp.Department)
	assert.Equal(t, "Sales", *resp.Department)
}

func TestUpdate_DepartmentPriorityStatus(t *testing.T) {
	repo := newFakeObjectiveRepo()
	svc := NewObjectiveService(repo, &fakeNotifier{})

	created, err := svc.Create(context.Background(), adminA, objective.CreateObjectiveRequest{Title: "Goal"})
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), adminA, created.ID, objective.UpdateObjectiveRequest{
		Department: strptr("Ops"),
		Priority:   strptr("urgent"),
		Status:     strptr("completed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "urgent", resp.Priority)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Department)
	assert.Equal(t, "Ops", *resp.Department)

	// Omitted fields keep their values.
	resp, err = svc.Update(context.Background(), adminA, created.ID, objective.UpdateObjectiveRequest{Title: strptr("Goal v2")})
	require.NoError(t, err)
	assert.Equal(t, "urgent", resp.Priority)
	assert.Equal(t, "completed", resp.Status)
}

func TestCreate_RequiresTitle(t *testing.T) {
	svc := NewObjectiveService(newFakeObjectiveRepo(), &fakeNotifier{})

	_, err := svc.Create(context.Background(), adminA, objective.CreateObjectiveRequest{Title: "  "})
	assert.Error(t, err)
}

func TestCreate_RejectsBadDueDate(t *testing.T) {
	svc := NewObjectiveService(newFakeObjectiveRepo(), &fakeNotifier{})

	_, err := svc.Create(context.Background(), adminA, objective.CreateObjectiveRequest{
		Title:   "Sprint",
		DueDate: strptr("next tuesday"),
	})
	assert.Error(t, err)
}

func TestUpdate_PermissionRules(t *testing.T) {
	repo := newFakeObjectiveRepo()
	svc := NewObjectiveService(repo, &fakeNotifier{})

	adminOwned, err := svc.Create(context.Background(), adminA, objective.CreateObjectiveRequest{Title: "Admin goal"})
	require.NoError(t, err)
	aliceOwned, err := svc.Create(context.Background(), aliceA, objective.CreateObjectiveRequest{Title: "Alice goal"})
	require.NoError(t, err)

	// Employees cannot touch admin objectives or each other's.
	_, err = svc.Update(context.Background(), aliceA, adminOwned.ID, objective.UpdateObjectiveRequest{Title: strptr("Mine now")})
	assert.ErrorIs(t, err, objective.ErrForbidden)
	_, err = svc.Update(context.Background(), bobActor, aliceOwned.ID, objective.UpdateObjectiveRequest{Title: strptr("Mine now")})
	assert.ErrorIs(t, err, objective.ErrForbidden)

	// Owners and admins can.
	resp, err := svc.Update(context.Background(), aliceA, aliceOwned.ID, objective.UpdateObjectiveRequest{Title: strptr("Alice goal v2")})
	require.NoError(t, err)
	assert.Equal(t, "Alice goal v2", resp.Title)

	_, err = svc.Update(context.Background(), adminA, aliceOwned.ID, objective.UpdateObjectiveRequest{Description: strptr("adjusted")})
	require.NoError(t, err)
}

func TestDelete_BlockedWhileTasksRemain(t *testing.T) {
	repo := newFakeObjectiveRepo()
	svc := NewObjectiveService(repo, &fakeNotifier{})

	resp, err := svc.Create(context.Background(), adminA, objective.CreateObjectiveRequest{Title: "Busy goal"})
	require.NoError(t, err)

	repo.taskCounts[resp.ID] = 2
	assert.ErrorIs(t, svc.Delete(context.Background(), adminA, resp.ID), objective.ErrHasTasks)

	repo.taskCounts[resp.ID] = 0
	require.NoError(t, svc.Delete(context.Background(), adminA, resp.ID))

	_, err = svc.GetByID(context.Background(), adminA, resp.ID)
	assert.ErrorIs(t, err, objective.ErrObjectiveNotFound)
}

func TestList_IncludesTaskCounts(t *testing.T) {
	repo := newFakeObjectiveRepo()
	svc := NewObjectiveService(repo, &fakeNotifier{})

	resp, err := svc.Create(context.Background(), adminA, objective.CreateObjectiveRequest{Title: "Counted"})
	require.NoError(t, err)
	repo.taskCounts[resp.ID] = 3

	list, err := svc.List(context.Background(), adminA)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].TaskCount)
}
