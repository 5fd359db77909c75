package sqlstore

import "time"

type ProjectModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Code        string `gorm:"uniqueIndex;not null"`
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      string `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProjectModel) TableName() string { return "projects" }

type SequenceModel struct {
	ID          uint   `gorm:"primaryKey"`
	ProjectID   uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Code        string `gorm:"not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (SequenceModel) TableName() string { return "sequences" }

type PackageModel struct {
	ID          uint   `gorm:"primaryKey"`
	SequenceID  uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Code        string `gorm:"not null"`
	Description string
	FrameStart  *int
	FrameEnd    *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PackageModel) TableName() string { return "packages" }

type ShotModel struct {
	ID               uint   `gorm:"primaryKey"`
	PackageID        uint   `gorm:"not null;index"`
	Name             string `gorm:"not null"`
	Code             string `gorm:"not null"`
	Description      string
	FrameStart       *int
	FrameEnd         *int
	FrameCount       *int
	FPS              float64 `gorm:"column:fps;not null"`
	ResolutionWidth  int     `gorm:"not null"`
	ResolutionHeight int     `gorm:"not null"`
	Status           string  `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ShotModel) TableName() string { return "shots" }

type DepartmentModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Code      string `gorm:"uniqueIndex;not null"`
	Color     string `gorm:"not null"`
	SortOrder int    `gorm:"column:sort_order;not null"`
	CreatedAt time.Time
}

func (DepartmentModel) TableName() string { return "departments" }

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	FullName     string `gorm:"not null"`
	Role         string `gorm:"not null"`
	DepartmentID *uint
	IsActive     bool `gorm:"not null"`
	CreatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

type TaskModel struct {
	ID             uint   `gorm:"primaryKey"`
	ShotID         uint   `gorm:"not null;index"`
	DepartmentID   uint   `gorm:"not null;index"`
	AssigneeID     *uint
	Name           string `gorm:"not null"`
	Description    string
	Status         string `gorm:"not null"`
	Priority       string `gorm:"not null"`
	EstimatedHours *float64
	ActualHours    float64 `gorm:"not null"`
	StartDate      *time.Time
	DueDate        *time.Time
	CompletedDate  *time.Time
	CurrentVersion string `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (TaskModel) TableName() string { return "tasks" }

type VersionModel struct {
	ID            uint   `gorm:"primaryKey"`
	TaskID        uint   `gorm:"not null;index:idx_task_version,unique"`
	VersionNumber string `gorm:"not null;index:idx_task_version,unique"`
	FilePath      string
	ThumbnailPath string
	Notes         string
	Status        string `gorm:"not null"`
	CreatedBy     *uint
	CreatedAt     time.Time
}

func (VersionModel) TableName() string { return "versions" }

type InternalVersionModel struct {
	ID                    uint   `gorm:"primaryKey"`
	VersionID             uint   `gorm:"not null;index:idx_version_internal,unique"`
	InternalVersionNumber string `gorm:"not null;index:idx_version_internal,unique"`
	FilePath              string
	Notes                 string
	Status                string `gorm:"not null"`
	CreatedBy             *uint
	CreatedAt             time.Time
}

func (InternalVersionModel) TableName() string { return "internal_versions" }
