package task

import (
	"context"
	"io"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
)

// FileUpload carries an incoming attachment from the transport layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Service defines the task service interface
type Service interface {
	Create(ctx context.Context, actor identity.Actor, req CreateTaskRequest) (*TaskResponse, error)
	GetByID(ctx context.Context, actor identity.Actor, id string) (*TaskResponse, error)
	List(ctx context.Context, actor identity.Actor) ([]TaskResponse, error)
	ListByObjective(ctx context.Context, actor identity.Actor, objectiveID string) ([]TaskResponse, error)
	Update(ctx context.Context, actor identity.Actor, id string, req UpdateTaskRequest) (*TaskResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error

	CreateUpdate(ctx context.Context, actor identity.Actor, taskID string, req CreateUpdateRequest) (*UpdateResponse, error)
	ListUpdates(ctx context.Context, actor identity.Actor, taskID string) ([]UpdateResponse, error)
	AddNote(ctx context.Context, actor identity.Actor, taskID string, req AddNoteRequest) (*UpdateResponse, error)
	UploadFile(ctx context.Context, actor identity.Actor, taskID string, upload FileUpload) (*UpdateResponse, error)
	ListNotes(ctx context.Context, actor identity.Actor, taskID string) ([]UpdateResponse, error)
	ListAttachments(ctx context.Context, actor identity.Actor, taskID string) ([]Attachment, error)

	Dashboard(ctx context.Context, actor identity.Actor) (*DashboardResponse, error)
}
