package application

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jrbibin/Project-Management/internal/domain"
)

// ProductionService validates transport input and forwards it to the
// repository. Each call performs one repository operation.
type ProductionService struct {
	repo      domain.ProductionRepository
	validator *validator.Validate
}

func NewProductionService(repo domain.ProductionRepository) *ProductionService {
	return &ProductionService{repo: repo, validator: newValidator()}
}

func (s *ProductionService) Health(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *ProductionService) CreateProject(ctx context.Context, in ProjectInput) (domain.Project, error) {
	if err := s.validate(in); err != nil {
		return domain.Project{}, err
	}
	return s.repo.CreateProject(ctx, domain.Project{
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		StartDate:   in.StartDate.timePtr(),
		EndDate:     in.EndDate.timePtr(),
		Status:      defaultString(in.Status, domain.DefaultProjectStatus),
	})
}

func (s *ProductionService) GetProject(ctx context.Context, id uint) (domain.Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *ProductionService) ListProjects(ctx context.Context, page domain.Page) ([]domain.Project, error) {
	return s.repo.ListProjects(ctx, page.Normalize())
}

func (s *ProductionService) DeleteProject(ctx context.Context, id uint) error {
	return s.repo.DeleteProject(ctx, id)
}

func (s *ProductionService) ProjectStats(ctx context.Context, id uint) (domain.ProjectStats, error) {
	return s.repo.ProjectStats(ctx, id)
}

func (s *ProductionService) CreateSequence(ctx context.Context, in SequenceInput) (domain.Sequence, error) {
	if err := s.validate(in); err != nil {
		return domain.Sequence{}, err
	}
	return s.repo.CreateSequence(ctx, domain.Sequence{
		ProjectID:   in.ProjectID,
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
	})
}

func (s *ProductionService) ListSequences(ctx context.Context, projectID *uint, page domain.Page) ([]domain.Sequence, error) {
	return s.repo.ListSequences(ctx, projectID, page.Normalize())
}

func (s *ProductionService) CreatePackage(ctx context.Context, in PackageInput) (domain.Package, error) {
	if err := s.validate(in); err != nil {
		return domain.Package{}, err
	}
	return s.repo.CreatePackage(ctx, domain.Package{
		SequenceID:  in.SequenceID,
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		FrameStart:  in.FrameStart,
		FrameEnd:    in.FrameEnd,
	})
}

func (s *ProductionService) ListPackages(ctx context.Context, sequenceID *uint, page domain.Page) ([]domain.Package, error) {
	return s.repo.ListPackages(ctx, sequenceID, page.Normalize())
}

func (s *ProductionService) CreateShot(ctx context.Context, in ShotInput) (domain.Shot, error) {
	if err := s.validate(in); err != nil {
		return domain.Shot{}, err
	}

	shot := domain.Shot{
		PackageID:        in.PackageID,
		Name:             in.Name,
		Code:             in.Code,
		Description:      in.Description,
		FrameStart:       in.FrameStart,
		FrameEnd:         in.FrameEnd,
		FrameCount:       in.FrameCount,
		FPS:              domain.DefaultFPS,
		ResolutionWidth:  domain.DefaultResWidth,
		ResolutionHeight: domain.DefaultResHeight,
		Status:           defaultString(in.Status, domain.DefaultShotStatus),
	}
	if in.FPS != nil {
		shot.FPS = *in.FPS
	}
	if in.ResolutionWidth != nil {
		shot.ResolutionWidth = *in.ResolutionWidth
	}
	if in.ResolutionHeight != nil {
		shot.ResolutionHeight = *in.ResolutionHeight
	}
	if shot.FrameCount == nil && in.FrameStart != nil && in.FrameEnd != nil && *in.FrameEnd >= *in.FrameStart {
		count := *in.FrameEnd - *in.FrameStart + 1
		shot.FrameCount = &count
	}

	return s.repo.CreateShot(ctx, shot)
}

func (s *ProductionService) ListShots(ctx context.Context, packageID *uint, page domain.Page) ([]domain.Shot, error) {
	return s.repo.ListShots(ctx, packageID, page.Normalize())
}

func (s *ProductionService) CreateDepartment(ctx context.Context, in DepartmentInput) (domain.Department, error) {
	if err := s.validate(in); err != nil {
		return domain.Department{}, err
	}
	return s.repo.CreateDepartment(ctx, domain.Department{
		Name:      in.Name,
		Code:      in.Code,
		Color:     defaultString(in.Color, domain.DefaultDeptColor),
		SortOrder: in.Order,
	})
}

func (s *ProductionService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.repo.ListDepartments(ctx)
}

// InitDefaultDepartments seeds the standard departments, skipping codes that
// already exist. It returns the number of departments added.
func (s *ProductionService) InitDefaultDepartments(ctx context.Context) (int, error) {
	return s.repo.EnsureDepartments(ctx, domain.DefaultDepartments())
}

func (s *ProductionService) CreateUser(ctx context.Context, in UserInput) (domain.User, error) {
	if err := s.validate(in); err != nil {
		return domain.User{}, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.repo.CreateUser(ctx, domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         defaultString(in.Role, domain.DefaultUserRole),
		DepartmentID: in.DepartmentID,
		IsActive:     active,
	})
}

func (s *ProductionService) ListUsers(ctx context.Context, page domain.Page) ([]domain.User, error) {
	return s.repo.ListActiveUsers(ctx, page.Normalize())
}

func taskFromInput(in TaskInput) domain.Task {
	task := domain.Task{
		ShotID:         in.ShotID,
		DepartmentID:   in.DepartmentID,
		AssigneeID:     in.AssigneeID,
		Name:           in.Name,
		Description:    in.Description,
		Status:         in.Status,
		Priority:       in.Priority,
		EstimatedHours: in.EstimatedHours,
		StartDate:      in.StartDate.timePtr(),
		DueDate:        in.DueDate.timePtr(),
		CompletedDate:  in.CompletedDate.timePtr(),
		CurrentVersion: domain.FormatNumber(domain.VersionPrefix, 1),
	}
	if task.Status == "" {
		task.Status = domain.TaskNotStarted
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if in.ActualHours != nil {
		task.ActualHours = *in.ActualHours
	}
	return task
}

func (s *ProductionService) CreateTask(ctx context.Context, in TaskInput) (domain.Task, error) {
	if err := s.validate(in); err != nil {
		return domain.Task{}, err
	}
	return s.repo.CreateTask(ctx, taskFromInput(in))
}

func (s *ProductionService) CreateTaskWithVersion(ctx context.Context, in TaskWithVersionInput) (domain.Task, error) {
	if err := s.validate(in); err != nil {
		return domain.Task{}, err
	}
	return s.repo.CreateTaskWithVersion(ctx, taskFromInput(in.TaskInput), in.CreatedBy)
}

func (s *ProductionService) GetTask(ctx context.Context, id uint) (domain.Task, error) {
	return s.repo.GetTask(ctx, id)
}

func (s *ProductionService) ListTasks(ctx context.Context, shotID *uint, page domain.Page) ([]domain.Task, error) {
	return s.repo.ListTasks(ctx, shotID, page.Normalize())
}

func (s *ProductionService) ListTasksByShot(ctx context.Context, shotID uint, departmentID *uint) ([]domain.Task, error) {
	if shotID == 0 {
		return nil, NewValidationError(FieldError{Field: "shot_id", Message: "field required", Type: "required"})
	}
	return s.repo.ListTasksByShotAndDepartment(ctx, shotID, departmentID)
}

func (s *ProductionService) UpdateTask(ctx context.Context, id uint, in TaskPatchInput) (domain.Task, error) {
	if err := s.validate(in); err != nil {
		return domain.Task{}, err
	}
	return s.repo.UpdateTask(ctx, id, domain.TaskPatch{
		Name:           in.Name,
		Description:    in.Description,
		AssigneeID:     in.AssigneeID,
		Status:         in.Status,
		Priority:       in.Priority,
		EstimatedHours: in.EstimatedHours,
		ActualHours:    in.ActualHours,
		StartDate:      in.StartDate.timePtr(),
		DueDate:        in.DueDate.timePtr(),
		CompletedDate:  in.CompletedDate.timePtr(),
	})
}

func (s *ProductionService) DeleteTask(ctx context.Context, id uint) error {
	return s.repo.DeleteTask(ctx, id)
}

func (s *ProductionService) CreateVersion(ctx context.Context, in VersionInput) (domain.Version, error) {
	if err := s.validate(in); err != nil {
		return domain.Version{}, err
	}
	return s.repo.CreateVersion(ctx, domain.Version{
		TaskID:        in.TaskID,
		VersionNumber: in.VersionNumber,
		FilePath:      in.FilePath,
		ThumbnailPath: in.ThumbnailPath,
		Notes:         in.Notes,
		Status:        defaultString(in.Status, domain.VersionStatusWorkInProgress),
		CreatedBy:     in.CreatedBy,
	})
}

// CreateNextVersion mints the task's next version number.
func (s *ProductionService) CreateNextVersion(ctx context.Context, taskID uint, createdBy *uint) (domain.Version, error) {
	if taskID == 0 {
		return domain.Version{}, fmt.Errorf("task_id is required: %w", domain.ErrInvalidArgument)
	}
	return s.repo.CreateNextVersion(ctx, taskID, createdBy)
}

func (s *ProductionService) GetVersion(ctx context.Context, id uint) (domain.Version, error) {
	return s.repo.GetVersion(ctx, id)
}

func (s *ProductionService) ListVersions(ctx context.Context, taskID uint) ([]domain.Version, error) {
	return s.repo.ListVersions(ctx, taskID)
}

func (s *ProductionService) CreateInternalVersion(ctx context.Context, in InternalVersionInput) (domain.InternalVersion, error) {
	if err := s.validate(in); err != nil {
		return domain.InternalVersion{}, err
	}
	return s.repo.CreateInternalVersion(ctx, domain.InternalVersion{
		VersionID:             in.VersionID,
		InternalVersionNumber: in.InternalVersionNumber,
		FilePath:              in.FilePath,
		Notes:                 in.Notes,
		Status:                defaultString(in.Status, domain.VersionStatusWorkInProgress),
		CreatedBy:             in.CreatedBy,
	})
}

func (s *ProductionService) CreateNextInternalVersion(ctx context.Context, versionID uint, createdBy *uint) (domain.InternalVersion, error) {
	if versionID == 0 {
		return domain.InternalVersion{}, fmt.Errorf("version_id is required: %w", domain.ErrInvalidArgument)
	}
	return s.repo.CreateNextInternalVersion(ctx, versionID, createdBy)
}

func (s *ProductionService) ListInternalVersions(ctx context.Context, versionID uint) ([]domain.InternalVersion, error) {
	return s.repo.ListInternalVersions(ctx, versionID)
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
