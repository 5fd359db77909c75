package rpcjson

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrbibin/Project-Management/internal/adapters/db/sqlstore"
	"github.com/jrbibin/Project-Management/internal/application"
	"github.com/jrbibin/Project-Management/internal/domain"
)

func newTestService(t *testing.T) *application.ProductionService {
	t.Helper()
	db, err := sqlstore.Open(sqlstore.DriverSQLite, filepath.Join(t.TempDir(), "rpc_test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := sqlstore.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return application.NewProductionService(sqlstore.NewProductionRepository(db))
}

// shortSocketPath keeps the path under the unix socket length limit.
func shortSocketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "etra")
	if err != nil {
		t.Fatalf("temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, "rpc.sock")
}

func startTestServer(t *testing.T) string {
	t.Helper()
	service := newTestService(t)
	socket := shortSocketPath(t)

	srv, err := Start(socket, service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("start rpc: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })
	return socket
}

type testResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func call(t *testing.T, socket, method string, params any) testResponse {
	t.Helper()
	conn, err := net.DialTimeout("unix", socket, 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	req := map[string]any{"jsonrpc": "2.0", "method": method, "params": params, "id": 1}
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var resp testResponse
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestVersionFlowOverSocket(t *testing.T) {
	socket := startTestServer(t)

	if resp := call(t, socket, "departments.init", nil); resp.Error != nil {
		t.Fatalf("departments.init: %+v", resp.Error)
	}
	var depts []domain.Department
	resp := call(t, socket, "departments.list", nil)
	if err := json.Unmarshal(resp.Result, &depts); err != nil || len(depts) != 7 {
		t.Fatalf("expected 7 departments, got %s (%v)", resp.Result, err)
	}

	var project domain.Project
	resp = call(t, socket, "projects.create", map[string]any{"name": "Sample", "code": "SAMPLE_VFX"})
	if resp.Error != nil {
		t.Fatalf("projects.create: %+v", resp.Error)
	}
	_ = json.Unmarshal(resp.Result, &project)

	var seq domain.Sequence
	_ = json.Unmarshal(call(t, socket, "sequences.create", map[string]any{"project_id": project.ID, "name": "Opening", "code": "SEQ010"}).Result, &seq)
	var pkg domain.Package
	_ = json.Unmarshal(call(t, socket, "packages.create", map[string]any{"sequence_id": seq.ID, "name": "A", "code": "PKG_A"}).Result, &pkg)
	var shot domain.Shot
	_ = json.Unmarshal(call(t, socket, "shots.create", map[string]any{"package_id": pkg.ID, "name": "Shot 010", "code": "SH010"}).Result, &shot)
	if shot.ID == 0 {
		t.Fatalf("shot was not created")
	}

	var task domain.Task
	resp = call(t, socket, "tasks.create_with_version", map[string]any{"shot_id": shot.ID, "department_id": depts[0].ID, "name": "Roto SH010"})
	if resp.Error != nil {
		t.Fatalf("tasks.create_with_version: %+v", resp.Error)
	}
	_ = json.Unmarshal(resp.Result, &task)

	var v domain.Version
	resp = call(t, socket, "versions.new", map[string]any{"task_id": task.ID})
	if resp.Error != nil {
		t.Fatalf("versions.new: %+v", resp.Error)
	}
	_ = json.Unmarshal(resp.Result, &v)
	if v.VersionNumber != "v002" {
		t.Fatalf("expected v002, got %s", v.VersionNumber)
	}

	var updated domain.Task
	resp = call(t, socket, "tasks.update", map[string]any{"id": task.ID, "patch": map[string]any{"status": "pending_review"}})
	if resp.Error != nil {
		t.Fatalf("tasks.update: %+v", resp.Error)
	}
	_ = json.Unmarshal(resp.Result, &updated)
	if updated.Status != domain.TaskPendingReview || updated.CurrentVersion != "v002" {
		t.Fatalf("unexpected task after update: %+v", updated)
	}
}

func TestErrorCodes(t *testing.T) {
	socket := startTestServer(t)

	cases := []struct {
		method string
		params any
		code   int
	}{
		{"nope.nothing", map[string]any{}, codeMethodNotFound},
		{"projects.get", nil, codeInvalidParams},
		{"projects.get", map[string]any{"id": 99}, codeNotFound},
		{"projects.create", map[string]any{"code": "X"}, codeInvalid},
		{"versions.new", map[string]any{"task_id": 99}, codeNotFound},
	}
	for _, tc := range cases {
		resp := call(t, socket, tc.method, tc.params)
		if resp.Error == nil {
			t.Fatalf("%s: expected error code %d, got result %s", tc.method, tc.code, resp.Result)
		}
		if resp.Error.Code != tc.code {
			t.Fatalf("%s: expected code %d, got %d (%s)", tc.method, tc.code, resp.Error.Code, resp.Error.Message)
		}
	}

	call(t, socket, "projects.create", map[string]any{"name": "A", "code": "DUP"})
	resp := call(t, socket, "projects.create", map[string]any{"name": "B", "code": "DUP"})
	if resp.Error == nil || resp.Error.Code != codeConflict {
		t.Fatalf("expected conflict, got %+v", resp.Error)
	}
}

func TestCloseCancelsCallsAndConnections(t *testing.T) {
	socket := shortSocketPath(t)
	srv, err := Start(socket, newTestService(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("start rpc: %v", err)
	}

	conn, err := net.DialTimeout("unix", socket, 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	enc, dec := json.NewEncoder(conn), json.NewDecoder(conn)
	if err := enc.Encode(map[string]any{"jsonrpc": "2.0", "method": "health", "id": 1}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var first testResponse
	if err := dec.Decode(&first); err != nil || first.Error != nil {
		t.Fatalf("health before close: %+v (%v)", first.Error, err)
	}

	if err := srv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if srv.ctx.Err() == nil {
		t.Fatalf("expected server context to be cancelled")
	}

	resp := srv.dispatch(srv.ctx, request{JSONRPC: "2.0", Method: "health", ID: 2})
	if resp.Error == nil || resp.Error.Code != codeInternal {
		t.Fatalf("expected cancelled call to fail, got %+v", resp)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var after testResponse
	err = dec.Decode(&after)
	var netErr net.Error
	if err == nil || (errors.As(err, &netErr) && netErr.Timeout()) {
		t.Fatalf("expected open connection to be closed, got %v", err)
	}
}
