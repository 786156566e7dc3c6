package task

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/domain/notification"
	"github.com/leanchem/erp-backend-go/internal/domain/objective"
	"github.com/leanchem/erp-backend-go/internal/domain/task"
	"github.com/leanchem/erp-backend-go/internal/pkg/sse"
)

type fakeTaskRepo struct {
	tasks  map[string]*task.Task
	nextID int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*task.Task)}
}

func (f *fakeTaskRepo) Create(_ context.Context, t *task.Task) error {
	f.nextID++
	t.ID = fmt.Sprintf("task-%d", f.nextID)
	t.CreatedAt = time.Now().UTC()
	f.tasks[t.ID] = t
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*task.Task, error) {
	if t, ok := f.tasks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, task.ErrTaskNotFound
}

func (f *fakeTaskRepo) List(_ context.Context) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskRepo) ListByObjective(_ context.Context, objectiveID string) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range f.tasks {
		if t.ObjectiveID != nil && *t.ObjectiveID == objectiveID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListVisibleTo(_ context.Context, employeeID string) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range f.tasks {
		if t.CreatedBy == employeeID || t.IsAssignee(employeeID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t *task.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return task.ErrTaskNotFound
	}
	copied := *t
	f.tasks[t.ID] = &copied
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

type fakeUpdateRepo struct {
	updates []*task.Update
	nextID  int
}

func (f *fakeUpdateRepo) Create(_ context.Context, u *task.Update) error {
	f.nextID++
	u.ID = fmt.Sprintf("update-%d", f.nextID)
	u.CreatedAt = time.Now().UTC()
	copied := *u
	// newest first
	f.updates = append([]*task.Update{&copied}, f.updates...)
	return nil
}

func (f *fakeUpdateRepo) ListByTask(_ context.Context, taskID string) ([]*task.Update, error) {
	var out []*task.Update
	for _, u := range f.updates {
		if u.TaskID == taskID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUpdateRepo) GetByID(_ context.Context, id string) (*task.Update, error) {
	for _, u := range f.updates {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, task.ErrUpdateNotFound
}

func (f *fakeUpdateRepo) DeleteByTask(_ context.Context, taskID string) error {
	var kept []*task.Update
	for _, u := range f.updates {
		if u.TaskID != taskID {
			kept = append(kept, u)
		}
	}
	f.updates = kept
	return nil
}

type fakeObjectiveRepo struct {
	objectives map[string]*objective.Objective
}

func (f *fakeObjectiveRepo) Create(_ context.Context, _ *objective.Objective) error { return nil }

func (f *fakeObjectiveRepo) GetByID(_ context.Context, id string) (*objective.Objective, error) {
	if o, ok := f.objectives[id]; ok {
		return o, nil
	}
	return nil, objective.ErrObjectiveNotFound
}

func (f *fakeObjectiveRepo) List(_ context.Context) ([]*objective.Objective, error) {
	var out []*objective.Objective
	for _, o := range f.objectives {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeObjectiveRepo) Update(_ context.Context, _ *objective.Objective) error { return nil }
func (f *fakeObjectiveRepo) Delete(_ context.Context, _ string) error               { return nil }
func (f *fakeObjectiveRepo) CountTasks(_ context.Context, _ string) (int, error)    { return 0, nil }

type fakeFileService struct {
	uploaded []string
}

func (f *fakeFileService) UploadEmployeePhoto(_ context.Context, employeeID string, _ io.Reader, filename string, _ int64) (string, error) {
	return "/uploads/photos/" + employeeID + "/" + filename, nil
}

func (f *fakeFileService) UploadTaskAttachment(_ context.Context, taskID string, _ io.Reader, filename string, _ int64) (string, error) {
	f.uploaded = append(f.uploaded, filename)
	return "/uploads/attachments/" + taskID + "/" + filename, nil
}

func (f *fakeFileService) DeleteEmployeePhoto(_ context.Context, _ string, _ string) error {
	return nil
}

type recordedEvent struct {
	taskEvent  *notification.TaskEvent
	adminEvent *notification.AdminEvent
}

type fakeNotifier struct {
	events []recordedEvent
}

func (f *fakeNotifier) NotifyTaskEvent(_ context.Context, event notification.TaskEvent) {
	f.events = append(f.events, recordedEvent{taskEvent: &event})
}

func (f *fakeNotifier) NotifyAdminEvent(_ context.Context, event notification.AdminEvent) {
	f.events = append(f.events, recordedEvent{adminEvent: &event})
}

func (f *fakeNotifier) Feed(_ context.Context, _ identity.Actor) (*notification.FeedResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) UnreadCount(_ context.Context, _ identity.Actor) (int, error) { return 0, nil }

func (f *fakeNotifier) MarkAsRead(_ context.Context, _ identity.Actor, _ string) error { return nil }

func (f *fakeNotifier) MarkAllAsRead(_ context.Context, _ identity.Actor) error { return nil }

func (f *fakeNotifier) Delete(_ context.Context, _ identity.Actor, _ string) error { return nil }

func (f *fakeNotifier) Subscribe(_ string) (chan sse.Event, func()) { return nil, func() {} }

func (f *fakeNotifier) taskEvents() []notification.TaskEvent {
	var out []notification.TaskEvent
	for _, e := range f.events {
		if e.taskEvent != nil {
			out = append(out, *e.taskEvent)
		}
	}
	return out
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	tasks      *fakeTaskRepo
	updates    *fakeUpdateRepo
	objectives *fakeObjectiveRepo
	files      *fakeFileService
	notifier   *fakeNotifier
	svc        task.Service
}

func newFixture() *fixture {
	f := &fixture{
		tasks:      newFakeTaskRepo(),
		updates:    &fakeUpdateRepo{},
		objectives: &fakeObjectiveRepo{objectives: make(map[string]*objective.Objective)},
		files:      &fakeFileService{},
		notifier:   &fakeNotifier{},
	}
	f.svc = NewTaskService(f.tasks, f.updates, f.objectives, f.files, f.notifier, passthroughTx)
	return f
}

func (f *fixture) seed(t *task.Task) *task.Task {
	if t.ID == "" {
		f.tasks.nextID++
		t.ID = fmt.Sprintf("task-%d", f.tasks.nextID)
	}
	if t.Status == "" {
		t.Status = task.StatusNotStarted
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}
	f.tasks.tasks[t.ID] = t
	return t
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func employeeActor(id string) identity.Actor {
	return identity.Actor{EmployeeID: id, Role: identity.RoleEmployee, Name: "Employee " + id}
}

func adminActor(id string) identity.Actor {
	return identity.Actor{EmployeeID: id, Role: identity.RoleAdmin, Name: "Admin " + id}
}

func TestCreate_Defaults(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), employeeActor("alice"), task.CreateTaskRequest{
		Title: "  Write onboarding doc  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Write onboarding doc", resp.Title)
	assert.Equal(t, task.StatusNotStarted, resp.Status)
	assert.Equal(t, task.PriorityMedium, resp.Priority)
	assert.Equal(t, "alice", resp.CreatedBy)
	assert.False(t, resp.IsAdminCreated)
	assert.True(t, resp.IsStandalone)
	assert.Empty(t, f.notifier.taskEvents(), "no assignees, no notification")
}

func TestCreate_RequiresTitle(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), employeeActor("alice"), task.CreateTaskRequest{})
	assert.Error(t, err)
}

func TestCreate_AdminMarksTask(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), adminActor("admin1"), task.CreateTaskRequest{
		Title: "Quarterly review",
	})
	require.NoError(t, err)
	assert.True(t, resp.IsAdminCreated)
}

func TestCreate_UnknownObjectiveRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), employeeActor("alice"), task.CreateTaskRequest{
		Title:       "Orphan",
		ObjectiveID: strptr("missing"),
	})
	assert.ErrorIs(t, err, task.ErrObjectiveNotFound)
}

func TestCreate_WithAssigneesNotifies(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), employeeActor("alice"), task.CreateTaskRequest{
		Title:              "Pair review",
		AssignedToMultiple: []string{"bob", "carol"},
	})
	require.NoError(t, err)

	events := f.notifier.taskEvents()
	require.Len(t, events, 1)
	assert.Equal(t, notification.EventTaskAssigned, events[0].Type)
	assert.Equal(t, "New task assigned: Pair review", events[0].Message)
}

func TestList_ScopedByRole(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Mine", CreatedBy: "alice"})
	f.seed(&task.Task{ID: "t2", Title: "Assigned", CreatedBy: "admin1", AssignedTo: strptr("alice")})
	f.seed(&task.Task{ID: "t3", Title: "Other", CreatedBy: "bob"})

	mine, err := f.svc.List(context.Background(), employeeActor("alice"))
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := f.svc.List(context.Background(), adminActor("admin1"))
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdate_ForbiddenForOutsider(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "alice"})

	_, err := f.svc.Update(context.Background(), employeeActor("eve"), "t1", task.UpdateTaskRequest{
		CompletionPercentage: intptr(10),
	})
	assert.ErrorIs(t, err, task.ErrForbidden)
}

func TestUpdate_RestrictedAssigneeKeepsProgressDropsRest(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{
		ID:         "t1",
		Title:      "Audit",
		CreatedBy:  "alice",
		AssignedTo: strptr("bob"),
	})

	// bob is an assignee but not the creator, so the title and
	// reassignment in the payload are dropped silently.
	resp, err := f.svc.Update(context.Background(), employeeActor("bob"), "t1", task.UpdateTaskRequest{
		Title:                strptr("Hijacked"),
		AssignedTo:           strptr("bob"),
		Priority:             strptr("high"),
		CompletionPercentage: intptr(40),
		Notes:                strptr("halfway there"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Audit", resp.Title)
	assert.Equal(t, task.PriorityMedium, resp.Priority)
	assert.Equal(t, 40, resp.CompletionPercentage)
	assert.Equal(t, "halfway there", *resp.Notes)
	assert.Equal(t, task.StatusInProgress, resp.Status, "progress drives status for employees")
}

func TestUpdate_EmployeeProgressHundredCompletes(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "bob", AssignedTo: strptr("bob")})

	resp, err := f.svc.Update(context.Background(), employeeActor("bob"), "t1", task.UpdateTaskRequest{
		CompletionPercentage: intptr(100),
	})
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, resp.Status)
	assert.Nil(t, resp.CompletedAt, "completion timestamp is only set on the note path")
}

func TestUpdate_AdminProgressDoesNotForceStatus(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "admin1", IsAdminCreated: true})

	resp, err := f.svc.Update(context.Background(), adminActor("admin1"), "t1", task.UpdateTaskRequest{
		CompletionPercentage: intptr(100),
	})
	require.NoError(t, err)
	assert.Equal(t, task.StatusNotStarted, resp.Status)
}

func TestUpdate_CreatorTakesOverUnassignedTask(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "alice"})

	resp, err := f.svc.Update(context.Background(), employeeActor("alice"), "t1", task.UpdateTaskRequest{
		Priority: strptr("high"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.AssignedTo)
	assert.Equal(t, "alice", *resp.AssignedTo)
}

func TestUpdate_StatusChangeWinsOverProgress(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "bob", AssignedTo: strptr("bob")})

	_, err := f.svc.Update(context.Background(), employeeActor("bob"), "t1", task.UpdateTaskRequest{
		CompletionPercentage: intptr(30),
	})
	require.NoError(t, err)

	events := f.notifier.taskEvents()
	require.Len(t, events, 1)
	// Progress moved the status, so the status change is what gets announced.
	assert.Equal(t, notification.EventTaskStatusChanged, events[0].Type)
	assert.True(t, strings.Contains(events[0].Message, "in_progress"))
}

func TestUpdate_ProgressOnlyEmitsProgressEvent(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{
		ID:                   "t1",
		Title:                "Audit",
		CreatedBy:            "bob",
		AssignedTo:           strptr("bob"),
		Status:               task.StatusInProgress,
		CompletionPercentage: 20,
	})

	_, err := f.svc.Update(context.Background(), employeeActor("bob"), "t1", task.UpdateTaskRequest{
		CompletionPercentage: intptr(60),
	})
	require.NoError(t, err)

	events := f.notifier.taskEvents()
	require.Len(t, events, 1)
	assert.Equal(t, notification.EventProgressUpdated, events[0].Type)
	assert.Equal(t, 20, *events[0].OldProgress)
	assert.Equal(t, 60, *events[0].NewProgress)
}

func TestUpdate_NewAssigneeGetsAssignedEvent(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "admin1", IsAdminCreated: true})

	_, err := f.svc.Update(context.Background(), adminActor("admin1"), "t1", task.UpdateTaskRequest{
		AssignedTo: strptr("bob"),
	})
	require.NoError(t, err)

	events := f.notifier.taskEvents()
	require.Len(t, events, 2)
	assert.Equal(t, notification.EventTaskAssigned, events[0].Type)
	assert.Equal(t, notification.EventTaskUpdated, events[1].Type)
}

func TestUpdate_InvalidValues(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "admin1", IsAdminCreated: true})

	_, err := f.svc.Update(context.Background(), adminActor("admin1"), "t1", task.UpdateTaskRequest{
		Status: strptr("paused"),
	})
	assert.ErrorIs(t, err, task.ErrInvalidStatus)

	_, err = f.svc.Update(context.Background(), adminActor("admin1"), "t1", task.UpdateTaskRequest{
		CompletionPercentage: intptr(120),
	})
	assert.ErrorIs(t, err, task.ErrInvalidProgress)

	_, err = f.svc.Update(context.Background(), adminActor("admin1"), "t1", task.UpdateTaskRequest{
		Priority: strptr("urgent"),
	})
	assert.ErrorIs(t, err, task.ErrInvalidPriority)
}

func TestDelete_RemovesUpdatesToo(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "alice"})
	f.updates.updates = []*task.Update{
		{ID: "u1", TaskID: "t1", UpdatedBy: "alice"},
		{ID: "u2", TaskID: "t2", UpdatedBy: "bob"},
	}

	require.NoError(t, f.svc.Delete(context.Background(), employeeActor("alice"), "t1"))

	_, err := f.tasks.GetByID(context.Background(), "t1")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
	require.Len(t, f.updates.updates, 1)
	assert.Equal(t, "t2", f.updates.updates[0].TaskID)
}

func TestCreateUpdate_DoesNotTouchTask(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{
		ID:                   "t1",
		Title:                "Audit",
		CreatedBy:            "alice",
		CompletionPercentage: 20,
		Status:               task.StatusInProgress,
	})

	resp, err := f.svc.CreateUpdate(context.Background(), employeeActor("bob"), "t1", task.CreateUpdateRequest{
		Progress: intptr(70),
		Notes:    strptr("moving along"),
	})
	require.NoError(t, err)
	assert.Equal(t, 70, *resp.Progress)

	stored, err := f.tasks.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 20, stored.CompletionPercentage, "posting an update leaves the task row alone")

	events := f.notifier.taskEvents()
	require.Len(t, events, 1)
	assert.Equal(t, notification.EventProgressUpdated, events[0].Type)
	assert.Equal(t, 20, *events[0].OldProgress)
	assert.Equal(t, 70, *events[0].NewProgress)
}

func TestAddNote_RequiresText(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "alice"})

	_, err := f.svc.AddNote(context.Background(), employeeActor("bob"), "t1", task.AddNoteRequest{Note: "   "})
	assert.ErrorIs(t, err, task.ErrEmptyNote)
}

func TestAddNote_AppliesProgressAndStampsCompletion(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "alice", CompletionPercentage: 80})

	_, err := f.svc.AddNote(context.Background(), employeeActor("alice"), "t1", task.AddNoteRequest{
		Note:     "all wrapped up",
		Progress: intptr(100),
	})
	require.NoError(t, err)

	stored, err := f.tasks.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 100, stored.CompletionPercentage)
	assert.Equal(t, task.StatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *stored.CompletedAt, 5*time.Second)
}

func TestAddNote_EmitsNoteEventWithPreview(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "alice"})

	longNote := strings.Repeat("x", 150)
	_, err := f.svc.AddNote(context.Background(), employeeActor("bob"), "t1", task.AddNoteRequest{
		Note:       longNote,
		AttachedTo: strptr("carol"),
	})
	require.NoError(t, err)

	events := f.notifier.taskEvents()
	require.Len(t, events, 1)
	assert.Equal(t, notification.EventNoteAdded, events[0].Type)
	require.NotNil(t, events[0].NotePreview)
	assert.Len(t, *events[0].NotePreview, 100)
	require.NotNil(t, events[0].AttachedTo)
	assert.Equal(t, "carol", *events[0].AttachedTo)
}

func TestAddNote_PreviewKeepsRunesIntact(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "alice"})

	multibyteNote := strings.Repeat("é", 150)
	_, err := f.svc.AddNote(context.Background(), employeeActor("bob"), "t1", task.AddNoteRequest{
		Note: multibyteNote,
	})
	require.NoError(t, err)

	events := f.notifier.taskEvents()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].NotePreview)
	preview := *events[0].NotePreview
	assert.True(t, utf8.ValidString(preview))
	assert.Equal(t, 100, utf8.RuneCountInString(preview))
}

func TestUploadFile_RecordsAttachment(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "alice"})

	resp, err := f.svc.UploadFile(context.Background(), employeeActor("bob"), "t1", task.FileUpload{
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Size:        2048,
		Content:     strings.NewReader("%PDF"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Notes)
	assert.Equal(t, "File uploaded: report.pdf", *resp.Notes)
	require.Len(t, resp.Attachments, 1)
	assert.Equal(t, "report.pdf", resp.Attachments[0].Name)
	assert.Equal(t, "application/pdf", resp.Attachments[0].Type)
	assert.Equal(t, "bob", resp.Attachments[0].UploadedBy)

	events := f.notifier.taskEvents()
	require.Len(t, events, 1)
	assert.Equal(t, notification.EventFileUploaded, events[0].Type)
	assert.Equal(t, "File uploaded to task: Audit", events[0].Message)
}

func TestListNotesAndAttachments(t *testing.T) {
	f := newFixture()
	f.seed(&task.Task{ID: "t1", Title: "Audit", CreatedBy: "alice"})
	f.updates.updates = []*task.Update{
		{ID: "u1", TaskID: "t1", UpdatedBy: "alice", Notes: strptr("first note")},
		{ID: "u2", TaskID: "t1", UpdatedBy: "bob", Progress: intptr(10)},
		{ID: "u3", TaskID: "t1", UpdatedBy: "bob", Notes: strptr("File uploaded: a.txt"), Attachments: []task.Attachment{
			{Name: "a.txt", URL: "/uploads/attachments/t1/a.txt"},
		}},
	}

	notes, err := f.svc.ListNotes(context.Background(), employeeActor("alice"), "t1")
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	attachments, err := f.svc.ListAttachments(context.Background(), employeeActor("alice"), "t1")
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "a.txt", attachments[0].Name)
}

func TestDashboard_Aggregates(t *testing.T) {
	f := newFixture()
	past := time.Now().UTC().Add(-24 * time.Hour)
	f.objectives.objectives["o1"] = &objective.Objective{ID: "o1", Title: "Growth"}
	f.seed(&task.Task{ID: "t1", Title: "One", CreatedBy: "alice", Status: task.StatusCompleted, CompletionPercentage: 100})
	f.seed(&task.Task{ID: "t2", Title: "Two", CreatedBy: "alice", Status: task.StatusInProgress, CompletionPercentage: 50, DueDate: &past})
	f.seed(&task.Task{ID: "t3", Title: "Three", CreatedBy: "bob"})

	dash, err := f.svc.Dashboard(context.Background(), adminActor("admin1"))
	require.NoError(t, err)
	assert.Equal(t, 3, dash.TotalTasks)
	assert.Equal(t, 1, dash.ByStatus[string(task.StatusCompleted)])
	assert.Equal(t, 1, dash.Overdue)
	assert.Equal(t, 1, dash.ObjectiveCount)
	assert.InDelta(t, 50.0, dash.AverageProgress, 0.01)

	scoped, err := f.svc.Dashboard(context.Background(), employeeActor("alice"))
	require.NoError(t, err)
	assert.Equal(t, 2, scoped.TotalTasks)
}
