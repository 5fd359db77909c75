package domain

import "time"

type Project struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Sequence struct {
	ID          uint      `json:"id"`
	ProjectID   uint      `json:"project_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Package struct {
	ID          uint      `json:"id"`
	SequenceID  uint      `json:"sequence_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	FrameStart  *int      `json:"frame_start"`
	FrameEnd    *int      `json:"frame_end"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Shot struct {
	ID               uint      `json:"id"`
	PackageID        uint      `json:"package_id"`
	Name             string    `json:"name"`
	Code             string    `json:"code"`
	Description      string    `json:"description"`
	FrameStart       *int      `json:"frame_start"`
	FrameEnd         *int      `json:"frame_end"`
	FrameCount       *int      `json:"frame_count"`
	FPS              float64   `json:"fps"`
	ResolutionWidth  int       `json:"resolution_width"`
	ResolutionHeight int       `json:"resolution_height"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Department struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Color     string    `json:"color"`
	SortOrder int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	DepartmentID *uint     `json:"department_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Task struct {
	ID             uint       `json:"id"`
	ShotID         uint       `json:"shot_id"`
	DepartmentID   uint       `json:"department_id"`
	AssigneeID     *uint      `json:"assignee_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    float64    `json:"actual_hours"`
	StartDate      *time.Time `json:"start_date"`
	DueDate        *time.Time `json:"due_date"`
	CompletedDate  *time.Time `json:"completed_date"`
	CurrentVersion string     `json:"current_version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TaskPatch carries the mutable task fields; nil means unchanged.
type TaskPatch struct {
	Name           *string
	Description    *string
	AssigneeID     *uint
	Status         *TaskStatus
	Priority       *Priority
	EstimatedHours *float64
	ActualHours    *float64
	StartDate      *time.Time
	DueDate        *time.Time
	CompletedDate  *time.Time
}

func (p TaskPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.AssigneeID == nil && p.Status == nil &&
		p.Priority == nil && p.EstimatedHours == nil && p.ActualHours == nil &&
		p.StartDate == nil && p.DueDate == nil && p.CompletedDate == nil
}

type Version struct {
	ID            uint      `json:"id"`
	TaskID        uint      `json:"task_id"`
	VersionNumber string    `json:"version_number"`
	FilePath      string    `json:"file_path"`
	ThumbnailPath string    `json:"thumbnail_path"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	CreatedBy     *uint     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

type InternalVersion struct {
	ID                    uint      `json:"id"`
	VersionID             uint      `json:"version_id"`
	InternalVersionNumber string    `json:"internal_version_number"`
	FilePath              string    `json:"file_path"`
	Notes                 string    `json:"notes"`
	Status                string    `json:"status"`
	CreatedBy             *uint     `json:"created_by"`
	CreatedAt             time.Time `json:"created_at"`
}

type ProjectStats struct {
	ProjectID       uint  `json:"project_id"`
	TotalSequences  int64 `json:"total_sequences"`
	TotalPackages   int64 `json:"total_packages"`
	TotalShots      int64 `json:"total_shots"`
	TotalTasks      int64 `json:"total_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
}

// Page is an offset/limit window over a list.
type Page struct {
	Skip  int
	Limit int
}

const (
	DefaultProjectStatus = "active"
	DefaultShotStatus    = "active"
	DefaultUserRole      = "artist"
	DefaultDeptColor     = "#3498db"
	DefaultFPS           = 24.0
	DefaultResWidth      = 1920
	DefaultResHeight     = 1080

	VersionStatusWorkInProgress = "work_in_progress"
)

// DefaultDepartments is the seed list for a fresh installation, in pipeline order.
func DefaultDepartments() []Department {
	return []Department{
		{Name: "Roto", Code: "ROTO", Color: "#e74c3c", SortOrder: 1},
		{Name: "Paint", Code: "PAINT", Color: "#f39c12", SortOrder: 2},
		{Name: "Matchmove", Code: "MM", Color: "#9b59b6", SortOrder: 3},
		{Name: "Comp", Code: "COMP", Color: "#3498db", SortOrder: 4},
		{Name: "FX", Code: "FX", Color: "#1abc9c", SortOrder: 5},
		{Name: "Lighting", Code: "LGT", Color: "#f1c40f", SortOrder: 6},
		{Name: "Animation", Code: "ANIM", Color: "#2ecc71", SortOrder: 7},
	}
}

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// Normalize applies the default window and clamps the limit to 1..MaxPageLimit.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}
