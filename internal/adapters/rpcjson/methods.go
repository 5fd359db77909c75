package rpcjson

import (
	"context"
	"encoding/json"

	"github.com/jrbibin/Project-Management/internal/application"
	"github.com/jrbibin/Project-Management/internal/domain"
)

type handlerFunc func(ctx context.Context, params json.RawMessage) (any, error)

// withParams decodes the request params into P before calling fn.
func withParams[P any](fn func(ctx context.Context, p P) (any, error)) handlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var p P
		if !decodeParams(raw, &p) {
			return nil, errInvalidParams
		}
		return fn(ctx, p)
	}
}

type idParams struct {
	ID uint `json:"id"`
}

type pageParams struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

func (p pageParams) page() domain.Page {
	return domain.Page{Skip: p.Skip, Limit: p.Limit}.Normalize()
}

type parentListParams struct {
	pageParams
	ProjectID  *uint `json:"project_id"`
	SequenceID *uint `json:"sequence_id"`
	PackageID  *uint `json:"package_id"`
	ShotID     *uint `json:"shot_id"`
}

type mintParams struct {
	TaskID    uint  `json:"task_id"`
	VersionID uint  `json:"version_id"`
	CreatedBy *uint `json:"created_by"`
}

type byShotParams struct {
	ShotID       uint  `json:"shot_id"`
	DepartmentID *uint `json:"department_id"`
}

type taskUpdateParams struct {
	ID    uint                       `json:"id"`
	Patch application.TaskPatchInput `json:"patch"`
}

func (s *Server) routes() map[string]handlerFunc {
	svc := s.service
	noParams := func(fn func(ctx context.Context) (any, error)) handlerFunc {
		return func(ctx context.Context, _ json.RawMessage) (any, error) { return fn(ctx) }
	}

	return map[string]handlerFunc{
		"health": noParams(func(ctx context.Context) (any, error) {
			if err := svc.Health(ctx); err != nil {
				return nil, err
			}
			return map[string]string{"status": "healthy"}, nil
		}),

		"projects.create": withParams(func(ctx context.Context, p application.ProjectInput) (any, error) {
			return svc.CreateProject(ctx, p)
		}),
		"projects.list": withParams(func(ctx context.Context, p pageParams) (any, error) {
			return svc.ListProjects(ctx, p.page())
		}),
		"projects.get": withParams(func(ctx context.Context, p idParams) (any, error) {
			return svc.GetProject(ctx, p.ID)
		}),
		"projects.delete": withParams(func(ctx context.Context, p idParams) (any, error) {
			if err := svc.DeleteProject(ctx, p.ID); err != nil {
				return nil, err
			}
			return map[string]uint{"deleted": p.ID}, nil
		}),
		"projects.stats": withParams(func(ctx context.Context, p idParams) (any, error) {
			return svc.ProjectStats(ctx, p.ID)
		}),

		"sequences.create": withParams(func(ctx context.Context, p application.SequenceInput) (any, error) {
			return svc.CreateSequence(ctx, p)
		}),
		"sequences.list": withParams(func(ctx context.Context, p parentListParams) (any, error) {
			return svc.ListSequences(ctx, p.ProjectID, p.page())
		}),
		"packages.create": withParams(func(ctx context.Context, p application.PackageInput) (any, error) {
			return svc.CreatePackage(ctx, p)
		}),
		"packages.list": withParams(func(ctx context.Context, p parentListParams) (any, error) {
			return svc.ListPackages(ctx, p.SequenceID, p.page())
		}),
		"shots.create": withParams(func(ctx context.Context, p application.ShotInput) (any, error) {
			return svc.CreateShot(ctx, p)
		}),
		"shots.list": withParams(func(ctx context.Context, p parentListParams) (any, error) {
			return svc.ListShots(ctx, p.PackageID, p.page())
		}),

		"tasks.create": withParams(func(ctx context.Context, p application.TaskInput) (any, error) {
			return svc.CreateTask(ctx, p)
		}),
		"tasks.create_with_version": withParams(func(ctx context.Context, p application.TaskWithVersionInput) (any, error) {
			return svc.CreateTaskWithVersion(ctx, p)
		}),
		"tasks.list": withParams(func(ctx context.Context, p parentListParams) (any, error) {
			return svc.ListTasks(ctx, p.ShotID, p.page())
		}),
		"tasks.by_shot": withParams(func(ctx context.Context, p byShotParams) (any, error) {
			return svc.ListTasksByShot(ctx, p.ShotID, p.DepartmentID)
		}),
		"tasks.get": withParams(func(ctx context.Context, p idParams) (any, error) {
			return svc.GetTask(ctx, p.ID)
		}),
		"tasks.update": withParams(func(ctx context.Context, p taskUpdateParams) (any, error) {
			return svc.UpdateTask(ctx, p.ID, p.Patch)
		}),
		"tasks.delete": withParams(func(ctx context.Context, p idParams) (any, error) {
			if err := svc.DeleteTask(ctx, p.ID); err != nil {
				return nil, err
			}
			return map[string]uint{"deleted": p.ID}, nil
		}),

		"versions.create": withParams(func(ctx context.Context, p application.VersionInput) (any, error) {
			return svc.CreateVersion(ctx, p)
		}),
		"versions.new": withParams(func(ctx context.Context, p mintParams) (any, error) {
			return svc.CreateNextVersion(ctx, p.TaskID, p.CreatedBy)
		}),
		"versions.get": withParams(func(ctx context.Context, p idParams) (any, error) {
			return svc.GetVersion(ctx, p.ID)
		}),
		"versions.list": withParams(func(ctx context.Context, p mintParams) (any, error) {
			return svc.ListVersions(ctx, p.TaskID)
		}),

		"internal_versions.create": withParams(func(ctx context.Context, p application.InternalVersionInput) (any, error) {
			return svc.CreateInternalVersion(ctx, p)
		}),
		"internal_versions.new": withParams(func(ctx context.Context, p mintParams) (any, error) {
			return svc.CreateNextInternalVersion(ctx, p.VersionID, p.CreatedBy)
		}),
		"internal_versions.list": withParams(func(ctx context.Context, p mintParams) (any, error) {
			return svc.ListInternalVersions(ctx, p.VersionID)
		}),

		"departments.create": withParams(func(ctx context.Context, p application.DepartmentInput) (any, error) {
			return svc.CreateDepartment(ctx, p)
		}),
		"departments.list": noParams(func(ctx context.Context) (any, error) {
			return svc.ListDepartments(ctx)
		}),
		"departments.init": noParams(func(ctx context.Context) (any, error) {
			created, err := svc.InitDefaultDepartments(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]int{"created": created}, nil
		}),

		"users.create": withParams(func(ctx context.Context, p application.UserInput) (any, error) {
			return svc.CreateUser(ctx, p)
		}),
		"users.list": withParams(func(ctx context.Context, p pageParams) (any, error) {
			return svc.ListUsers(ctx, p.page())
		}),
	}
}
