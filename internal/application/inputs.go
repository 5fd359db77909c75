package application

import "github.com/jrbibin/Project-Management/internal/domain"

type ProjectInput struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Code        string     `json:"code" validate:"required,max=50"`
	Description string     `json:"description"`
	StartDate   *Timestamp `json:"start_date"`
	EndDate     *Timestamp `json:"end_date"`
	Status      string     `json:"status" validate:"omitempty,max=50"`
}

type SequenceInput struct {
	ProjectID   uint   `json:"project_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=255"`
	Code        string `json:"code" validate:"required,max=50"`
	Description string `json:"description"`
}

type PackageInput struct {
	SequenceID  uint   `json:"sequence_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=255"`
	Code        string `json:"code" validate:"required,max=50"`
	Description string `json:"description"`
	FrameStart  *int   `json:"frame_start"`
	FrameEnd    *int   `json:"frame_end"`
}

type ShotInput struct {
	PackageID        uint     `json:"package_id" validate:"required"`
	Name             string   `json:"name" validate:"required,max=255"`
	Code             string   `json:"code" validate:"required,max=50"`
	Description      string   `json:"description"`
	FrameStart       *int     `json:"frame_start"`
	FrameEnd         *int     `json:"frame_end"`
	FrameCount       *int     `json:"frame_count" validate:"omitempty,gte=0"`
	FPS              *float64 `json:"fps" validate:"omitempty,gt=0"`
	ResolutionWidth  *int     `json:"resolution_width" validate:"omitempty,gt=0"`
	ResolutionHeight *int     `json:"resolution_height" validate:"omitempty,gt=0"`
	Status           string   `json:"status" validate:"omitempty,max=50"`
}

type DepartmentInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Code  string `json:"code" validate:"required,max=20"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
	Order int    `json:"order"`
}

type UserInput struct {
	Username     string `json:"username" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	FullName     string `json:"full_name" validate:"required,max=255"`
	Role         string `json:"role" validate:"omitempty,max=50"`
	DepartmentID *uint  `json:"department_id"`
	IsActive     *bool  `json:"is_active"`
}

type TaskInput struct {
	ShotID         uint              `json:"shot_id" validate:"required"`
	DepartmentID   uint              `json:"department_id" validate:"required"`
	AssigneeID     *uint             `json:"assignee_id"`
	Name           string            `json:"name" validate:"required,max=255"`
	Description    string            `json:"description"`
	Status         domain.TaskStatus `json:"status" validate:"omitempty,enum"`
	Priority       domain.Priority   `json:"priority" validate:"omitempty,enum"`
	EstimatedHours *float64          `json:"estimated_hours" validate:"omitempty,gte=0"`
	ActualHours    *float64          `json:"actual_hours" validate:"omitempty,gte=0"`
	StartDate      *Timestamp        `json:"start_date"`
	DueDate        *Timestamp        `json:"due_date"`
	CompletedDate  *Timestamp        `json:"completed_date"`
}

// TaskWithVersionInput creates a task together with its first version.
type TaskWithVersionInput struct {
	TaskInput
	CreatedBy *uint `json:"created_by"`
}

type TaskPatchInput struct {
	Name           *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string            `json:"description"`
	AssigneeID     *uint              `json:"assignee_id"`
	Status         *domain.TaskStatus `json:"status" validate:"omitempty,enum"`
	Priority       *domain.Priority   `json:"priority" validate:"omitempty,enum"`
	EstimatedHours *float64           `json:"estimated_hours" validate:"omitempty,gte=0"`
	ActualHours    *float64           `json:"actual_hours" validate:"omitempty,gte=0"`
	StartDate      *Timestamp         `json:"start_date"`
	DueDate        *Timestamp         `json:"due_date"`
	CompletedDate  *Timestamp         `json:"completed_date"`
}

type VersionInput struct {
	TaskID        uint   `json:"task_id" validate:"required"`
	VersionNumber string `json:"version_number" validate:"required,max=10,numbering=v"`
	FilePath      string `json:"file_path" validate:"max=500"`
	ThumbnailPath string `json:"thumbnail_path" validate:"max=500"`
	Notes         string `json:"notes"`
	Status        string `json:"status" validate:"omitempty,max=50"`
	CreatedBy     *uint  `json:"created_by"`
}

type InternalVersionInput struct {
	VersionID             uint   `json:"version_id" validate:"required"`
	InternalVersionNumber string `json:"internal_version_number" validate:"required,max=10,numbering=E"`
	FilePath              string `json:"file_path" validate:"max=500"`
	Notes                 string `json:"notes"`
	Status                string `json:"status" validate:"omitempty,max=50"`
	CreatedBy             *uint  `json:"created_by"`
}
