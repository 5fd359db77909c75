package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// call routes one operation over the configured transport. params go to the
// JSON-RPC method; body goes to the HTTP endpoint.
func (cfg cliConfig) call(ctx context.Context, rpcMethod string, params any, httpMethod, path string, body any, out any) error {
	if cfg.Transport == "uds" {
		if params == nil {
			params = map[string]any{}
		}
		return newRPCClient(cfg.Socket).call(ctx, rpcMethod, params, out)
	}
	return newAPIClient(cfg.Server).request(ctx, httpMethod, path, body, out)
}

func withQuery(path string, values map[string]string) string {
	q := url.Values{}
	for k, v := range values {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func optionalUint(v *uint) string {
	if v == nil {
		return ""
	}
	return uintToString(*v)
}

type listFilter struct {
	ParentKey string
	ParentID  *uint
	Skip      int
	Limit     int
}

func (f listFilter) params() map[string]any {
	p := map[string]any{"skip": f.Skip, "limit": f.Limit}
	if f.ParentKey != "" && f.ParentID != nil {
		p[f.ParentKey] = *f.ParentID
	}
	return p
}

func (f listFilter) query() map[string]string {
	q := map[string]string{"skip": strconv.Itoa(f.Skip), "limit": strconv.Itoa(f.Limit)}
	if f.ParentKey != "" {
		q[f.ParentKey] = optionalUint(f.ParentID)
	}
	return q
}

func doList(ctx context.Context, cfg cliConfig, resource, rpcPrefix string, f listFilter, out any) error {
	return cfg.call(ctx, rpcPrefix+".list", f.params(), http.MethodGet, withQuery("/api/"+resource, f.query()), nil, out)
}

func doCreate(ctx context.Context, cfg cliConfig, resource, rpcPrefix string, in map[string]any, out any) error {
	return cfg.call(ctx, rpcPrefix+".create", in, http.MethodPost, "/api/"+resource, in, out)
}

func doProjectGet(ctx context.Context, cfg cliConfig, id uint, out any) error {
	return cfg.call(ctx, "projects.get", map[string]any{"id": id}, http.MethodGet, "/api/projects/"+uintToString(id), nil, out)
}

func doProjectDelete(ctx context.Context, cfg cliConfig, id uint) error {
	return cfg.call(ctx, "projects.delete", map[string]any{"id": id}, http.MethodDelete, "/api/projects/"+uintToString(id), nil, nil)
}

func doProjectStats(ctx context.Context, cfg cliConfig, id uint, out any) error {
	return cfg.call(ctx, "projects.stats", map[string]any{"id": id}, http.MethodGet, fmt.Sprintf("/api/projects/%d/stats", id), nil, out)
}

func doDepartmentsInit(ctx context.Context, cfg cliConfig, out any) error {
	return cfg.call(ctx, "departments.init", nil, http.MethodPost, "/api/departments/init", nil, out)
}

func doDepartmentsList(ctx context.Context, cfg cliConfig, out any) error {
	return cfg.call(ctx, "departments.list", nil, http.MethodGet, "/api/departments", nil, out)
}

func doTaskCreateWithVersion(ctx context.Context, cfg cliConfig, in map[string]any, out any) error {
	return cfg.call(ctx, "tasks.create_with_version", in, http.MethodPost, "/api/tasks/with-version", in, out)
}

func doTasksByShot(ctx context.Context, cfg cliConfig, shotID uint, departmentID *uint, out any) error {
	path := withQuery("/api/tasks/by-shot/"+uintToString(shotID), map[string]string{"department_id": optionalUint(departmentID)})
	return cfg.call(ctx, "tasks.by_shot", map[string]any{"shot_id": shotID, "department_id": departmentID}, http.MethodGet, path, nil, out)
}

func doTaskGet(ctx context.Context, cfg cliConfig, id uint, out any) error {
	return cfg.call(ctx, "tasks.get", map[string]any{"id": id}, http.MethodGet, "/api/tasks/"+uintToString(id), nil, out)
}

func doTaskUpdate(ctx context.Context, cfg cliConfig, id uint, patch map[string]any, out any) error {
	return cfg.call(ctx, "tasks.update", map[string]any{"id": id, "patch": patch}, http.MethodPatch, "/api/tasks/"+uintToString(id), patch, out)
}

func doTaskDelete(ctx context.Context, cfg cliConfig, id uint) error {
	return cfg.call(ctx, "tasks.delete", map[string]any{"id": id}, http.MethodDelete, "/api/tasks/"+uintToString(id), nil, nil)
}

func doVersionsList(ctx context.Context, cfg cliConfig, taskID uint, out any) error {
	return cfg.call(ctx, "versions.list", map[string]any{"task_id": taskID}, http.MethodGet, "/api/versions/task/"+uintToString(taskID), nil, out)
}

func doVersionNew(ctx context.Context, cfg cliConfig, taskID uint, createdBy *uint, out any) error {
	path := withQuery("/api/versions/new/"+uintToString(taskID), map[string]string{"created_by": optionalUint(createdBy)})
	return cfg.call(ctx, "versions.new", map[string]any{"task_id": taskID, "created_by": createdBy}, http.MethodPost, path, nil, out)
}

func doInternalVersionsList(ctx context.Context, cfg cliConfig, versionID uint, out any) error {
	return cfg.call(ctx, "internal_versions.list", map[string]any{"version_id": versionID}, http.MethodGet, "/api/internal-versions/version/"+uintToString(versionID), nil, out)
}

func doInternalVersionNew(ctx context.Context, cfg cliConfig, versionID uint, createdBy *uint, out any) error {
	path := withQuery("/api/internal-versions/new/"+uintToString(versionID), map[string]string{"created_by": optionalUint(createdBy)})
	return cfg.call(ctx, "internal_versions.new", map[string]any{"version_id": versionID, "created_by": createdBy}, http.MethodPost, path, nil, out)
}
