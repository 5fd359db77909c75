package domain

import "context"

// ProductionRepository is the persistence port for the production hierarchy.
// Implementations translate driver errors into the sentinels in errors.go.
type ProductionRepository interface {
	CreateProject(ctx context.Context, value Project) (Project, error)
	GetProject(ctx context.Context, id uint) (Project, error)
	ListProjects(ctx context.Context, page Page) ([]Project, error)
	DeleteProject(ctx context.Context, id uint) error
	ProjectStats(ctx context.Context, projectID uint) (ProjectStats, error)

	CreateSequence(ctx context.Context, value Sequence) (Sequence, error)
	ListSequences(ctx context.Context, projectID *uint, page Page) ([]Sequence, error)

	CreatePackage(ctx context.Context, value Package) (Package, error)
	ListPackages(ctx context.Context, sequenceID *uint, page Page) ([]Package, error)

	CreateShot(ctx context.Context, value Shot) (Shot, error)
	ListShots(ctx context.Context, packageID *uint, page Page) ([]Shot, error)

	CreateDepartment(ctx context.Context, value Department) (Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
	// EnsureDepartments inserts every department whose code is not yet stored
	// and reports how many rows were added.
	EnsureDepartments(ctx context.Context, values []Department) (int, error)

	CreateUser(ctx context.Context, value User) (User, error)
	ListActiveUsers(ctx context.Context, page Page) ([]User, error)

	CreateTask(ctx context.Context, value Task) (Task, error)
	CreateTaskWithVersion(ctx context.Context, value Task, createdBy *uint) (Task, error)
	GetTask(ctx context.Context, id uint) (Task, error)
	ListTasks(ctx context.Context, shotID *uint, page Page) ([]Task, error)
	ListTasksByShotAndDepartment(ctx context.Context, shotID uint, departmentID *uint) ([]Task, error)
	UpdateTask(ctx context.Context, id uint, patch TaskPatch) (Task, error)
	DeleteTask(ctx context.Context, id uint) error

	CreateVersion(ctx context.Context, value Version) (Version, error)
	CreateNextVersion(ctx context.Context, taskID uint, createdBy *uint) (Version, error)
	GetVersion(ctx context.Context, id uint) (Version, error)
	ListVersions(ctx context.Context, taskID uint) ([]Version, error)

	CreateInternalVersion(ctx context.Context, value InternalVersion) (InternalVersion, error)
	CreateNextInternalVersion(ctx context.Context, versionID uint, createdBy *uint) (InternalVersion, error)
	ListInternalVersions(ctx context.Context, versionID uint) ([]InternalVersion, error)

	Ping(ctx context.Context) error
}
