package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrbibin/Project-Management/internal/domain"
	"gorm.io/gorm"
)

// mintAttempts bounds retries when a concurrent writer takes the number
// computed for a new version.
const mintAttempts = 3

type ProductionRepository struct {
	db *gorm.DB
}

func NewProductionRepository(db *gorm.DB) *ProductionRepository {
	return &ProductionRepository{db: db}
}

func (r *ProductionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func paginate(q *gorm.DB, page domain.Page) *gorm.DB {
	page = page.Normalize()
	return q.Offset(page.Skip).Limit(page.Limit)
}

func (r *ProductionRepository) CreateProject(ctx context.Context, value domain.Project) (domain.Project, error) {
	m := ProjectModel{
		Name:        value.Name,
		Code:        value.Code,
		Description: value.Description,
		StartDate:   value.StartDate,
		EndDate:     value.EndDate,
		Status:      defaultString(value.Status, domain.DefaultProjectStatus),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Project{}, translate(err, "project "+value.Code)
	}
	return projectFromModel(m), nil
}

func (r *ProductionRepository) GetProject(ctx context.Context, id uint) (domain.Project, error) {
	var m ProjectModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Project{}, translate(err, fmt.Sprintf("project %d", id))
	}
	return projectFromModel(m), nil
}

func (r *ProductionRepository) ListProjects(ctx context.Context, page domain.Page) ([]domain.Project, error) {
	rows := make([]ProjectModel, 0)
	if err := paginate(r.db.WithContext(ctx).Order("id ASC"), page).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Project, 0, len(rows))
	for _, m := range rows {
		result = append(result, projectFromModel(m))
	}
	return result, nil
}

func (r *ProductionRepository) DeleteProject(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&ProjectModel{}, id)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("project %d", id))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductionRepository) CreateSequence(ctx context.Context, value domain.Sequence) (domain.Sequence, error) {
	m := SequenceModel{ProjectID: value.ProjectID, Name: value.Name, Code: value.Code, Description: value.Description}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Sequence{}, translate(err, fmt.Sprintf("sequence for project %d", value.ProjectID))
	}
	return sequenceFromModel(m), nil
}

func (r *ProductionRepository) ListSequences(ctx context.Context, projectID *uint, page domain.Page) ([]domain.Sequence, error) {
	q := r.db.WithContext(ctx).Model(&SequenceModel{})
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}
	rows := make([]SequenceModel, 0)
	if err := paginate(q.Order("id ASC"), page).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Sequence, 0, len(rows))
	for _, m := range rows {
		result = append(result, sequenceFromModel(m))
	}
	return result, nil
}

func (r *ProductionRepository) CreatePackage(ctx context.Context, value domain.Package) (domain.Package, error) {
	m := PackageModel{
		SequenceID:  value.SequenceID,
		Name:        value.Name,
		Code:        value.Code,
		Description: value.Description,
		FrameStart:  value.FrameStart,
		FrameEnd:    value.FrameEnd,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Package{}, translate(err, fmt.Sprintf("package for sequence %d", value.SequenceID))
	}
	return packageFromModel(m), nil
}

func (r *ProductionRepository) ListPackages(ctx context.Context, sequenceID *uint, page domain.Page) ([]domain.Package, error) {
	q := r.db.WithContext(ctx).Model(&PackageModel{})
	if sequenceID != nil {
		q = q.Where("sequence_id = ?", *sequenceID)
	}
	rows := make([]PackageModel, 0)
	if err := paginate(q.Order("id ASC"), page).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Package, 0, len(rows))
	for _, m := range rows {
		result = append(result, packageFromModel(m))
	}
	return result, nil
}

func (r *ProductionRepository) CreateShot(ctx context.Context, value domain.Shot) (domain.Shot, error) {
	m := ShotModel{
		PackageID:        value.PackageID,
		Name:             value.Name,
		Code:             value.Code,
		Description:      value.Description,
		FrameStart:       value.FrameStart,
		FrameEnd:         value.FrameEnd,
		FrameCount:       value.FrameCount,
		FPS:              value.FPS,
		ResolutionWidth:  value.ResolutionWidth,
		ResolutionHeight: value.ResolutionHeight,
		Status:           defaultString(value.Status, domain.DefaultShotStatus),
	}
	if m.FPS == 0 {
		m.FPS = domain.DefaultFPS
	}
	if m.ResolutionWidth == 0 {
		m.ResolutionWidth = domain.DefaultResWidth
	}
	if m.ResolutionHeight == 0 {
		m.ResolutionHeight = domain.DefaultResHeight
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Shot{}, translate(err, fmt.Sprintf("shot for package %d", value.PackageID))
	}
	return shotFromModel(m), nil
}

func (r *ProductionRepository) ListShots(ctx context.Context, packageID *uint, page domain.Page) ([]domain.Shot, error) {
	q := r.db.WithContext(ctx).Model(&ShotModel{})
	if packageID != nil {
		q = q.Where("package_id = ?", *packageID)
	}
	rows := make([]ShotModel, 0)
	if err := paginate(q.Order("id ASC"), page).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Shot, 0, len(rows))
	for _, m := range rows {
		result = append(result, shotFromModel(m))
	}
	return result, nil
}

func (r *ProductionRepository) CreateDepartment(ctx context.Context, value domain.Department) (domain.Department, error) {
	m := DepartmentModel{
		Name:      value.Name,
		Code:      value.Code,
		Color:     defaultString(value.Color, domain.DefaultDeptColor),
		SortOrder: value.SortOrder,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Department{}, translate(err, "department "+value.Code)
	}
	return departmentFromModel(m), nil
}

func (r *ProductionRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	rows := make([]DepartmentModel, 0)
	if err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Department, 0, len(rows))
	for _, m := range rows {
		result = append(result, departmentFromModel(m))
	}
	return result, nil
}

func (r *ProductionRepository) EnsureDepartments(ctx context.Context, values []domain.Department) (int, error) {
	created := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, value := range values {
			var existing int64
			if err := tx.Model(&DepartmentModel{}).Where("code = ?", value.Code).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}
			m := DepartmentModel{
				Name:      value.Name,
				Code:      value.Code,
				Color:     defaultString(value.Color, domain.DefaultDeptColor),
				SortOrder: value.SortOrder,
			}
			if err := tx.Create(&m).Error; err != nil {
				return translate(err, "department "+value.Code)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *ProductionRepository) CreateUser(ctx context.Context, value domain.User) (domain.User, error) {
	m := UserModel{
		Username:     value.Username,
		Email:        value.Email,
		FullName:     value.FullName,
		Role:         defaultString(value.Role, domain.DefaultUserRole),
		DepartmentID: value.DepartmentID,
		IsActive:     value.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.User{}, translate(err, "user "+value.Username)
	}
	return userFromModel(m), nil
}

func (r *ProductionRepository) ListActiveUsers(ctx context.Context, page domain.Page) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Model(&UserModel{}).Where("is_active = ?", true)
	rows := make([]UserModel, 0)
	if err := paginate(q.Order("id ASC"), page).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		result = append(result, userFromModel(m))
	}
	return result, nil
}

func newTaskModel(value domain.Task) TaskModel {
	m := TaskModel{
		ShotID:         value.ShotID,
		DepartmentID:   value.DepartmentID,
		AssigneeID:     value.AssigneeID,
		Name:           value.Name,
		Description:    value.Description,
		Status:         string(value.Status),
		Priority:       string(value.Priority),
		EstimatedHours: value.EstimatedHours,
		ActualHours:    value.ActualHours,
		StartDate:      value.StartDate,
		DueDate:        value.DueDate,
		CompletedDate:  value.CompletedDate,
		CurrentVersion: defaultString(value.CurrentVersion, domain.FormatNumber(domain.VersionPrefix, 1)),
	}
	m.Status = defaultString(m.Status, string(domain.TaskNotStarted))
	m.Priority = defaultString(m.Priority, string(domain.PriorityMedium))
	return m
}

func (r *ProductionRepository) CreateTask(ctx context.Context, value domain.Task) (domain.Task, error) {
	m := newTaskModel(value)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Task{}, translate(err, "task "+value.Name)
	}
	return taskFromModel(m), nil
}

// CreateTaskWithVersion stores the task and its first version atomically.
func (r *ProductionRepository) CreateTaskWithVersion(ctx context.Context, value domain.Task, createdBy *uint) (domain.Task, error) {
	m := newTaskModel(value)
	m.CurrentVersion = domain.FormatNumber(domain.VersionPrefix, 1)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return translate(err, "task "+value.Name)
		}
		v := VersionModel{
			TaskID:        m.ID,
			VersionNumber: m.CurrentVersion,
			Status:        domain.VersionStatusWorkInProgress,
			CreatedBy:     createdBy,
		}
		if err := tx.Create(&v).Error; err != nil {
			return translate(err, fmt.Sprintf("initial version for task %d", m.ID))
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return taskFromModel(m), nil
}

func (r *ProductionRepository) GetTask(ctx context.Context, id uint) (domain.Task, error) {
	var m TaskModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Task{}, translate(err, fmt.Sprintf("task %d", id))
	}
	return taskFromModel(m), nil
}

func (r *ProductionRepository) ListTasks(ctx context.Context, shotID *uint, page domain.Page) ([]domain.Task, error) {
	q := r.db.WithContext(ctx).Model(&TaskModel{})
	if shotID != nil {
		q = q.Where("shot_id = ?", *shotID)
	}
	rows := make([]TaskModel, 0)
	if err := paginate(q.Order("id ASC"), page).Find(&rows).Error; err != nil {
		return nil, err
	}
	return tasksFromModels(rows), nil
}

// ListTasksByShotAndDepartment groups a shot's tasks by department order,
// oldest task first inside each department.
func (r *ProductionRepository) ListTasksByShotAndDepartment(ctx context.Context, shotID uint, departmentID *uint) ([]domain.Task, error) {
	q := r.db.WithContext(ctx).
		Model(&TaskModel{}).
		Select("tasks.*").
		Joins("JOIN departments ON departments.id = tasks.department_id").
		Where("tasks.shot_id = ?", shotID)
	if departmentID != nil {
		q = q.Where("tasks.department_id = ?", *departmentID)
	}

	rows := make([]TaskModel, 0)
	err := q.Order("departments.sort_order ASC, departments.id ASC, tasks.created_at ASC, tasks.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return tasksFromModels(rows), nil
}

func (r *ProductionRepository) UpdateTask(ctx context.Context, id uint, patch domain.TaskPatch) (domain.Task, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.AssigneeID != nil {
		updates["assignee_id"] = *patch.AssigneeID
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.Priority != nil {
		updates["priority"] = string(*patch.Priority)
	}
	if patch.EstimatedHours != nil {
		updates["estimated_hours"] = *patch.EstimatedHours
	}
	if patch.ActualHours != nil {
		updates["actual_hours"] = *patch.ActualHours
	}
	if patch.StartDate != nil {
		updates["start_date"] = *patch.StartDate
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.CompletedDate != nil {
		updates["completed_date"] = *patch.CompletedDate
	}

	var m TaskModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return translate(err, fmt.Sprintf("task %d", id))
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			return translate(err, fmt.Sprintf("task %d", id))
		}
		return translate(tx.First(&m, id).Error, fmt.Sprintf("task %d", id))
	})
	if err != nil {
		return domain.Task{}, err
	}
	return taskFromModel(m), nil
}

func (r *ProductionRepository) DeleteTask(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&TaskModel{}, id)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("task %d", id))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CreateVersion stores a version with a caller-chosen number and makes it the
// task's current version. The number must be canonical and above every
// number the task already has.
func (r *ProductionRepository) CreateVersion(ctx context.Context, value domain.Version) (domain.Version, error) {
	n, err := domain.ParseCanonicalNumber(domain.VersionPrefix, value.VersionNumber)
	if err != nil {
		return domain.Version{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	var v VersionModel
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task TaskModel
		if err := tx.Select("id").First(&task, value.TaskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("task %d: %w", value.TaskID, domain.ErrInvalidReference)
			}
			return err
		}

		var existing []string
		if err := tx.Model(&VersionModel{}).Where("task_id = ?", value.TaskID).Pluck("version_number", &existing).Error; err != nil {
			return err
		}
		highest, err := domain.HighestNumber(domain.VersionPrefix, existing)
		if err != nil {
			return fmt.Errorf("task %d: %w", value.TaskID, err)
		}
		if n <= highest {
			return fmt.Errorf("task %d version %s is not above %s: %w",
				value.TaskID, value.VersionNumber, domain.FormatNumber(domain.VersionPrefix, highest), domain.ErrVersionConflict)
		}

		v = VersionModel{
			TaskID:        value.TaskID,
			VersionNumber: value.VersionNumber,
			FilePath:      value.FilePath,
			ThumbnailPath: value.ThumbnailPath,
			Notes:         value.Notes,
			Status:        defaultString(value.Status, domain.VersionStatusWorkInProgress),
			CreatedBy:     value.CreatedBy,
		}
		return r.insertVersion(tx, &v)
	})
	if err != nil {
		return domain.Version{}, err
	}
	return versionFromModel(v), nil
}

// CreateNextVersion mints the successor of the task's highest version number.
func (r *ProductionRepository) CreateNextVersion(ctx context.Context, taskID uint, createdBy *uint) (domain.Version, error) {
	var lastErr error
	for attempt := 0; attempt < mintAttempts; attempt++ {
		v, err := r.mintVersion(ctx, taskID, createdBy)
		if err == nil {
			return versionFromModel(v), nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return domain.Version{}, err
		}
		lastErr = err
	}
	return domain.Version{}, lastErr
}

func (r *ProductionRepository) mintVersion(ctx context.Context, taskID uint, createdBy *uint) (VersionModel, error) {
	var v VersionModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task TaskModel
		if err := tx.Select("id").First(&task, taskID).Error; err != nil {
			return translate(err, fmt.Sprintf("task %d", taskID))
		}

		var existing []string
		if err := tx.Model(&VersionModel{}).Where("task_id = ?", taskID).Pluck("version_number", &existing).Error; err != nil {
			return err
		}
		next, err := domain.NextNumber(domain.VersionPrefix, existing)
		if err != nil {
			return fmt.Errorf("task %d: %w", taskID, err)
		}

		v = VersionModel{
			TaskID:        taskID,
			VersionNumber: next,
			Status:        domain.VersionStatusWorkInProgress,
			CreatedBy:     createdBy,
		}
		return r.insertVersion(tx, &v)
	})
	return v, err
}

func (r *ProductionRepository) insertVersion(tx *gorm.DB, v *VersionModel) error {
	if err := tx.Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("task %d version %s: %w", v.TaskID, v.VersionNumber, domain.ErrVersionConflict)
		}
		return translate(err, fmt.Sprintf("version for task %d", v.TaskID))
	}
	err := tx.Model(&TaskModel{}).
		Where("id = ?", v.TaskID).
		Update("current_version", v.VersionNumber).Error
	return translate(err, fmt.Sprintf("task %d", v.TaskID))
}

func (r *ProductionRepository) GetVersion(ctx context.Context, id uint) (domain.Version, error) {
	var m VersionModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Version{}, translate(err, fmt.Sprintf("version %d", id))
	}
	return versionFromModel(m), nil
}

func (r *ProductionRepository) ListVersions(ctx context.Context, taskID uint) ([]domain.Version, error) {
	rows := make([]VersionModel, 0)
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]domain.Version, 0, len(rows))
	for _, m := range rows {
		result = append(result, versionFromModel(m))
	}
	return result, nil
}

// CreateInternalVersion stores a caller-numbered internal version. Like
// CreateVersion, the number must be canonical and above the existing ones.
func (r *ProductionRepository) CreateInternalVersion(ctx context.Context, value domain.InternalVersion) (domain.InternalVersion, error) {
	n, err := domain.ParseCanonicalNumber(domain.InternalVersionPrefix, value.InternalVersionNumber)
	if err != nil {
		return domain.InternalVersion{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	var m InternalVersionModel
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent VersionModel
		if err := tx.Select("id").First(&parent, value.VersionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("version %d: %w", value.VersionID, domain.ErrInvalidReference)
			}
			return err
		}

		var existing []string
		err := tx.Model(&InternalVersionModel{}).
			Where("version_id = ?", value.VersionID).
			Pluck("internal_version_number", &existing).Error
		if err != nil {
			return err
		}
		highest, err := domain.HighestNumber(domain.InternalVersionPrefix, existing)
		if err != nil {
			return fmt.Errorf("version %d: %w", value.VersionID, err)
		}
		if n <= highest {
			return fmt.Errorf("version %d internal version %s is not above %s: %w",
				value.VersionID, value.InternalVersionNumber, domain.FormatNumber(domain.InternalVersionPrefix, highest), domain.ErrVersionConflict)
		}

		m = InternalVersionModel{
			VersionID:             value.VersionID,
			InternalVersionNumber: value.InternalVersionNumber,
			FilePath:              value.FilePath,
			Notes:                 value.Notes,
			Status:                defaultString(value.Status, domain.VersionStatusWorkInProgress),
			CreatedBy:             value.CreatedBy,
		}
		return r.insertInternalVersion(tx, &m)
	})
	if err != nil {
		return domain.InternalVersion{}, err
	}
	return internalVersionFromModel(m), nil
}

// CreateNextInternalVersion mints the next E number for a version. The
// parent version's own number is left untouched.
func (r *ProductionRepository) CreateNextInternalVersion(ctx context.Context, versionID uint, createdBy *uint) (domain.InternalVersion, error) {
	var lastErr error
	for attempt := 0; attempt < mintAttempts; attempt++ {
		m, err := r.mintInternalVersion(ctx, versionID, createdBy)
		if err == nil {
			return internalVersionFromModel(m), nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return domain.InternalVersion{}, err
		}
		lastErr = err
	}
	return domain.InternalVersion{}, lastErr
}

func (r *ProductionRepository) mintInternalVersion(ctx context.Context, versionID uint, createdBy *uint) (InternalVersionModel, error) {
	var m InternalVersionModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent VersionModel
		if err := tx.Select("id").First(&parent, versionID).Error; err != nil {
			return translate(err, fmt.Sprintf("version %d", versionID))
		}

		var existing []string
		err := tx.Model(&InternalVersionModel{}).
			Where("version_id = ?", versionID).
			Pluck("internal_version_number", &existing).Error
		if err != nil {
			return err
		}
		next, err := domain.NextNumber(domain.InternalVersionPrefix, existing)
		if err != nil {
			return fmt.Errorf("version %d: %w", versionID, err)
		}

		m = InternalVersionModel{
			VersionID:             versionID,
			InternalVersionNumber: next,
			Status:                domain.VersionStatusWorkInProgress,
			CreatedBy:             createdBy,
		}
		return r.insertInternalVersion(tx, &m)
	})
	return m, err
}

func (r *ProductionRepository) insertInternalVersion(tx *gorm.DB, m *InternalVersionModel) error {
	if err := tx.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("version %d internal version %s: %w", m.VersionID, m.InternalVersionNumber, domain.ErrVersionConflict)
		}
		return translate(err, fmt.Sprintf("internal version for version %d", m.VersionID))
	}
	return nil
}

func (r *ProductionRepository) ListInternalVersions(ctx context.Context, versionID uint) ([]domain.InternalVersion, error) {
	rows := make([]InternalVersionModel, 0)
	err := r.db.WithContext(ctx).
		Where("version_id = ?", versionID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]domain.InternalVersion, 0, len(rows))
	for _, m := range rows {
		result = append(result, internalVersionFromModel(m))
	}
	return result, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
