package employee

import "time"

type CreateEmployeeRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role,omitempty"`
	Department *string  `json:"department,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Bio        *string  `json:"bio,omitempty"`
	Password   *string  `json:"password,omitempty"`
}

type UpdateEmployeeRequest struct {
	Name       *string  `json:"name,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Role       *string  `json:"role,omitempty"`
	Department *string  `json:"department,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Bio        *string  `json:"bio,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

type SetJobDescriptionRequest struct {
	URL string `json:"url"`
}

type ResetPasswordRequest struct {
	NewPassword *string `json:"new_password,omitempty"`
}

type EmployeeResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	Department        *string   `json:"department"`
	Skills            []string  `json:"skills"`
	Bio               *string   `json:"bio"`
	PhotoURL          *string   `json:"photo_url"`
	JobDescriptionURL *string   `json:"job_description_url"`
	IsActive          bool      `json:"is_active"`
	HasPassword       bool      `json:"has_password"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToResponse maps an entity to its API shape. The password hash never leaves
// the service layer.
func ToResponse(e *Employee) EmployeeResponse {
	skills := e.Skills
	if skills == nil {
		skills = []string{}
	}
	return EmployeeResponse{
		ID:                e.ID,
		Name:              e.Name,
		Email:             e.Email,
		Role:              string(e.Role),
		Department:        e.Department,
		Skills:            skills,
		Bio:               e.Bio,
		PhotoURL:          e.PhotoURL,
		JobDescriptionURL: e.JobDescriptionURL,
		IsActive:          e.IsActive,
		HasPassword:       e.PasswordHash != nil && *e.PasswordHash != "",
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
