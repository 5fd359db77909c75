package sqlstore

import (
	"github.com/jrbibin/Project-Management/internal/domain"
)

func projectFromModel(m ProjectModel) domain.Project {
	return domain.Project{
		ID:          m.ID,
		Name:        m.Name,
		Code:        m.Code,
		Description: m.Description,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func sequenceFromModel(m SequenceModel) domain.Sequence {
	return domain.Sequence{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Code:        m.Code,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func packageFromModel(m PackageModel) domain.Package {
	return domain.Package{
		ID:          m.ID,
		SequenceID:  m.SequenceID,
		Name:        m.Name,
		Code:        m.Code,
		Description: m.Description,
		FrameStart:  m.FrameStart,
		FrameEnd:    m.FrameEnd,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func shotFromModel(m ShotModel) domain.Shot {
	return domain.Shot{
		ID:               m.ID,
		PackageID:        m.PackageID,
		Name:             m.Name,
		Code:             m.Code,
		Description:      m.Description,
		FrameStart:       m.FrameStart,
		FrameEnd:         m.FrameEnd,
		FrameCount:       m.FrameCount,
		FPS:              m.FPS,
		ResolutionWidth:  m.ResolutionWidth,
		ResolutionHeight: m.ResolutionHeight,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func departmentFromModel(m DepartmentModel) domain.Department {
	return domain.Department{ID: m.ID, Name: m.Name, Code: m.Code, Color: m.Color, SortOrder: m.SortOrder, CreatedAt: m.CreatedAt}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FullName:     m.FullName,
		Role:         m.Role,
		DepartmentID: m.DepartmentID,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

func taskFromModel(m TaskModel) domain.Task {
	return domain.Task{
		ID:             m.ID,
		ShotID:         m.ShotID,
		DepartmentID:   m.DepartmentID,
		AssigneeID:     m.AssigneeID,
		Name:           m.Name,
		Description:    m.Description,
		Status:         domain.TaskStatus(m.Status),
		Priority:       domain.Priority(m.Priority),
		EstimatedHours: m.EstimatedHours,
		ActualHours:    m.ActualHours,
		StartDate:      m.StartDate,
		DueDate:        m.DueDate,
		CompletedDate:  m.CompletedDate,
		CurrentVersion: m.CurrentVersion,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func tasksFromModels(rows []TaskModel) []domain.Task {
	result := make([]domain.Task, 0, len(rows))
	for _, m := range rows {
		result = append(result, taskFromModel(m))
	}
	return result
}

func versionFromModel(m VersionModel) domain.Version {
	return domain.Version{
		ID:            m.ID,
		TaskID:        m.TaskID,
		VersionNumber: m.VersionNumber,
		FilePath:      m.FilePath,
		ThumbnailPath: m.ThumbnailPath,
		Notes:         m.Notes,
		Status:        m.Status,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func internalVersionFromModel(m InternalVersionModel) domain.InternalVersion {
	return domain.InternalVersion{
		ID:                    m.ID,
		VersionID:             m.VersionID,
		InternalVersionNumber: m.InternalVersionNumber,
		FilePath:              m.FilePath,
		Notes:                 m.Notes,
		Status:                m.Status,
		CreatedBy:             m.CreatedBy,
		CreatedAt:             m.CreatedAt,
	}
}
