package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jrbibin/Project-Management/internal/domain"
	"gorm.io/gorm"
)

func openTestStore(t *testing.T) (*gorm.DB, *ProductionRepository) {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "production_test.db")

	db, err := Open(DriverSQLite, dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db, NewProductionRepository(db)
}

type fixture struct {
	project  domain.Project
	sequence domain.Sequence
	pkg      domain.Package
	shot     domain.Shot
	dept     domain.Department
}

func seedShot(t *testing.T, repo *ProductionRepository, code string) fixture {
	t.Helper()
	ctx := context.Background()

	project, err := repo.CreateProject(ctx, domain.Project{Name: "Project " + code, Code: code})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	sequence, err := repo.CreateSequence(ctx, domain.Sequence{ProjectID: project.ID, Name: "Opening", Code: "SEQ010"})
	if err != nil {
		t.Fatalf("create sequence: %v", err)
	}
	pkg, err := repo.CreatePackage(ctx, domain.Package{SequenceID: sequence.ID, Name: "Package A", Code: "PKG_A"})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	shot, err := repo.CreateShot(ctx, domain.Shot{PackageID: pkg.ID, Name: "Shot 010", Code: "SH010"})
	if err != nil {
		t.Fatalf("create shot: %v", err)
	}
	dept, err := repo.CreateDepartment(ctx, domain.Department{Name: "Comp " + code, Code: "COMP_" + code, SortOrder: 4})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}

	return fixture{project: project, sequence: sequence, pkg: pkg, shot: shot, dept: dept}
}

func TestCreateTaskWithVersionStartsAtV001(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, err := repo.CreateTaskWithVersion(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "comp"}, nil)
	if err != nil {
		t.Fatalf("create task with version: %v", err)
	}
	if task.CurrentVersion != "v001" {
		t.Fatalf("expected current version v001, got %s", task.CurrentVersion)
	}
	if task.Status != domain.TaskNotStarted || task.Priority != domain.PriorityMedium {
		t.Fatalf("unexpected defaults: %+v", task)
	}

	versions, err := repo.ListVersions(ctx, task.ID)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("expected exactly one version, got %d", len(versions))
	}
	if versions[0].VersionNumber != "v001" || versions[0].Status != domain.VersionStatusWorkInProgress {
		t.Fatalf("unexpected initial version: %+v", versions[0])
	}
}

func TestCreateNextVersionIsSequential(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, err := repo.CreateTask(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "roto"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	want := []string{"v001", "v002", "v003", "v004", "v005"}
	for _, expected := range want {
		v, err := repo.CreateNextVersion(ctx, task.ID, nil)
		if err != nil {
			t.Fatalf("create next version: %v", err)
		}
		if v.VersionNumber != expected {
			t.Fatalf("expected %s, got %s", expected, v.VersionNumber)
		}
		got, err := repo.GetTask(ctx, task.ID)
		if err != nil {
			t.Fatalf("get task: %v", err)
		}
		if got.CurrentVersion != expected {
			t.Fatalf("expected current version %s, got %s", expected, got.CurrentVersion)
		}
	}

	versions, err := repo.ListVersions(ctx, task.ID)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != len(want) {
		t.Fatalf("expected %d versions, got %d", len(want), len(versions))
	}
	if versions[0].VersionNumber != "v005" || versions[len(versions)-1].VersionNumber != "v001" {
		t.Fatalf("expected newest first, got %s..%s", versions[0].VersionNumber, versions[len(versions)-1].VersionNumber)
	}
}

func TestCreateNextVersionAfterTaskWithVersion(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, err := repo.CreateTaskWithVersion(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "paint"}, nil)
	if err != nil {
		t.Fatalf("create task with version: %v", err)
	}
	v, err := repo.CreateNextVersion(ctx, task.ID, nil)
	if err != nil {
		t.Fatalf("create next version: %v", err)
	}
	if v.VersionNumber != "v002" {
		t.Fatalf("expected v002, got %s", v.VersionNumber)
	}
}

func TestNextVersionPastThreeDigits(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, _ := repo.CreateTask(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "fx"})
	if _, err := repo.CreateVersion(ctx, domain.Version{TaskID: task.ID, VersionNumber: "v999"}); err != nil {
		t.Fatalf("create v999: %v", err)
	}

	for _, expected := range []string{"v1000", "v1001"} {
		v, err := repo.CreateNextVersion(ctx, task.ID, nil)
		if err != nil {
			t.Fatalf("create next version: %v", err)
		}
		if v.VersionNumber != expected {
			t.Fatalf("expected %s, got %s", expected, v.VersionNumber)
		}
	}
}

func TestCreateVersionMovesCurrentVersion(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, _ := repo.CreateTask(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "lgt"})
	if _, err := repo.CreateVersion(ctx, domain.Version{TaskID: task.ID, VersionNumber: "v007", FilePath: "/shots/sh010/v007.exr"}); err != nil {
		t.Fatalf("create version: %v", err)
	}
	got, _ := repo.GetTask(ctx, task.ID)
	if got.CurrentVersion != "v007" {
		t.Fatalf("expected current version v007, got %s", got.CurrentVersion)
	}

	if _, err := repo.CreateVersion(ctx, domain.Version{TaskID: task.ID, VersionNumber: "7"}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for malformed number, got %v", err)
	}
	if _, err := repo.CreateVersion(ctx, domain.Version{TaskID: 9999, VersionNumber: "v001"}); !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("expected invalid reference for missing task, got %v", err)
	}
}

func TestDuplicateExplicitVersionConflicts(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, err := repo.CreateTaskWithVersion(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "comp"}, nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	_, err = repo.CreateVersion(ctx, domain.Version{TaskID: task.ID, VersionNumber: "v001"})
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	versions, _ := repo.ListVersions(ctx, task.ID)
	if len(versions) != 1 {
		t.Fatalf("expected duplicate insert to be rolled back, got %d versions", len(versions))
	}
}

func TestExplicitNumbersMustBeCanonicalAndIncreasing(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, err := repo.CreateTaskWithVersion(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "comp"}, nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := repo.CreateVersion(ctx, domain.Version{TaskID: task.ID, VersionNumber: "v003"}); err != nil {
		t.Fatalf("create v003: %v", err)
	}

	for _, loose := range []string{"v0002", "v2", "v0"} {
		if _, err := repo.CreateVersion(ctx, domain.Version{TaskID: task.ID, VersionNumber: loose}); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument for %q, got %v", loose, err)
		}
	}
	for _, lower := range []string{"v002", "v003"} {
		if _, err := repo.CreateVersion(ctx, domain.Version{TaskID: task.ID, VersionNumber: lower}); !errors.Is(err, domain.ErrVersionConflict) {
			t.Fatalf("expected version conflict for %q, got %v", lower, err)
		}
	}

	versions, _ := repo.ListVersions(ctx, task.ID)
	if len(versions) != 2 {
		t.Fatalf("expected only v001 and v003 to be stored, got %+v", versions)
	}
	got, _ := repo.GetTask(ctx, task.ID)
	if got.CurrentVersion != "v003" {
		t.Fatalf("expected current version v003, got %s", got.CurrentVersion)
	}
	next, err := repo.CreateNextVersion(ctx, task.ID, nil)
	if err != nil {
		t.Fatalf("create next version: %v", err)
	}
	if next.VersionNumber != "v004" {
		t.Fatalf("expected v004, got %s", next.VersionNumber)
	}

	if _, err := repo.CreateInternalVersion(ctx, domain.InternalVersion{VersionID: next.ID, InternalVersionNumber: "E002"}); err != nil {
		t.Fatalf("create E002: %v", err)
	}
	for _, loose := range []string{"E2", "E0002", "E0"} {
		if _, err := repo.CreateInternalVersion(ctx, domain.InternalVersion{VersionID: next.ID, InternalVersionNumber: loose}); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument for %q, got %v", loose, err)
		}
	}
	if _, err := repo.CreateInternalVersion(ctx, domain.InternalVersion{VersionID: next.ID, InternalVersionNumber: "E001"}); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected version conflict for E001 below E002, got %v", err)
	}
	if _, err := repo.CreateInternalVersion(ctx, domain.InternalVersion{VersionID: 4242, InternalVersionNumber: "E001"}); !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("expected invalid reference for missing version, got %v", err)
	}
}

func TestConcurrentMintsYieldDistinctNumbers(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, err := repo.CreateTask(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "anim"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	const workers = 8
	var wg sync.WaitGroup
	numbers := make(chan string, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := repo.CreateNextVersion(ctx, task.ID, nil)
			if err != nil {
				errs <- err
				return
			}
			numbers <- v.VersionNumber
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent mint: %v", err)
	}
	seen := map[string]bool{}
	for n := range numbers {
		if seen[n] {
			t.Fatalf("version number %s minted twice", n)
		}
		seen[n] = true
	}
	for i := 1; i <= workers; i++ {
		want := domain.FormatNumber(domain.VersionPrefix, i)
		if !seen[want] {
			t.Fatalf("expected %s among minted numbers, got %v", want, seen)
		}
	}

	got, _ := repo.GetTask(ctx, task.ID)
	if got.CurrentVersion != domain.FormatNumber(domain.VersionPrefix, workers) {
		t.Fatalf("expected current version v%03d, got %s", workers, got.CurrentVersion)
	}
}

// takeNumberFirst makes the next `times` version inserts collide: just before
// gorm writes the row, the same number is inserted inside the same
// transaction. It returns a counter of collisions caused.
func takeNumberFirst(t *testing.T, db *gorm.DB, times int) *int {
	t.Helper()
	collisions := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:take_number_first", func(tx *gorm.DB) {
		v, ok := tx.Statement.Dest.(*VersionModel)
		if !ok || collisions >= times {
			return
		}
		collisions++
		err := tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO versions (task_id, version_number, status, created_at) VALUES (?, ?, ?, ?)",
				v.TaskID, v.VersionNumber, domain.VersionStatusWorkInProgress, time.Now().UTC()).Error
		if err != nil {
			_ = tx.AddError(err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	return &collisions
}

func TestMintRetriesAfterNumberIsTaken(t *testing.T) {
	ctx := context.Background()
	db, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, err := repo.CreateTaskWithVersion(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "comp"}, nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	collisions := takeNumberFirst(t, db, mintAttempts-1)

	v, err := repo.CreateNextVersion(ctx, task.ID, nil)
	if err != nil {
		t.Fatalf("expected mint to succeed after retries, got %v", err)
	}
	if *collisions != mintAttempts-1 {
		t.Fatalf("expected %d collisions, got %d", mintAttempts-1, *collisions)
	}
	if v.VersionNumber != "v002" {
		t.Fatalf("expected v002 once the colliding writes rolled back, got %s", v.VersionNumber)
	}
	versions, _ := repo.ListVersions(ctx, task.ID)
	if len(versions) != 2 {
		t.Fatalf("expected v001 and v002 only, got %+v", versions)
	}
}

func TestMintGivesUpAfterRepeatedConflicts(t *testing.T) {
	ctx := context.Background()
	db, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, err := repo.CreateTaskWithVersion(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "comp"}, nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	collisions := takeNumberFirst(t, db, 100)

	_, err = repo.CreateNextVersion(ctx, task.ID, nil)
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
	if *collisions != mintAttempts {
		t.Fatalf("expected %d attempts, got %d", mintAttempts, *collisions)
	}
	got, _ := repo.GetTask(ctx, task.ID)
	if got.CurrentVersion != "v001" {
		t.Fatalf("expected current version to stay v001, got %s", got.CurrentVersion)
	}
}

func TestInternalVersionsAreIndependentPerVersion(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, _ := repo.CreateTaskWithVersion(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "comp"}, nil)
	v2, err := repo.CreateNextVersion(ctx, task.ID, nil)
	if err != nil {
		t.Fatalf("create v002: %v", err)
	}
	versions, _ := repo.ListVersions(ctx, task.ID)
	v1 := versions[len(versions)-1]

	for _, expected := range []string{"E001", "E002", "E003"} {
		iv, err := repo.CreateNextInternalVersion(ctx, v1.ID, nil)
		if err != nil {
			t.Fatalf("create internal version: %v", err)
		}
		if iv.InternalVersionNumber != expected {
			t.Fatalf("expected %s, got %s", expected, iv.InternalVersionNumber)
		}
	}

	iv, err := repo.CreateNextInternalVersion(ctx, v2.ID, nil)
	if err != nil {
		t.Fatalf("create internal version on v002: %v", err)
	}
	if iv.InternalVersionNumber != "E001" {
		t.Fatalf("expected E001 on second version, got %s", iv.InternalVersionNumber)
	}

	got, _ := repo.GetVersion(ctx, v1.ID)
	if got.VersionNumber != "v001" {
		t.Fatalf("internal versions must not change the parent number, got %s", got.VersionNumber)
	}
	list, err := repo.ListInternalVersions(ctx, v1.ID)
	if err != nil {
		t.Fatalf("list internal versions: %v", err)
	}
	if len(list) != 3 || list[0].InternalVersionNumber != "E003" {
		t.Fatalf("expected three internal versions newest first, got %+v", list)
	}

	if _, err := repo.CreateInternalVersion(ctx, domain.InternalVersion{VersionID: v1.ID, InternalVersionNumber: "E002"}); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected conflict on duplicate internal number, got %v", err)
	}
}

func TestNumberingOnMissingParentIsNotFound(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)

	if _, err := repo.CreateNextVersion(ctx, 4242, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown task, got %v", err)
	}
	if _, err := repo.CreateNextInternalVersion(ctx, 4242, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown version, got %v", err)
	}
}

func TestMalformedStoredNumberIsReported(t *testing.T) {
	ctx := context.Background()
	db, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, _ := repo.CreateTask(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "mm"})
	bad := VersionModel{TaskID: task.ID, VersionNumber: "vABC", Status: domain.VersionStatusWorkInProgress}
	if err := db.Create(&bad).Error; err != nil {
		t.Fatalf("insert malformed version: %v", err)
	}

	_, err := repo.CreateNextVersion(ctx, task.ID, nil)
	if !errors.Is(err, domain.ErrDataIntegrity) {
		t.Fatalf("expected data integrity error, got %v", err)
	}
	var numErr *domain.VersionNumberError
	if !errors.As(err, &numErr) || numErr.Value != "vABC" {
		t.Fatalf("expected error naming the stored value, got %v", err)
	}
}

func TestEnsureDepartmentsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)

	created, err := repo.EnsureDepartments(ctx, domain.DefaultDepartments())
	if err != nil {
		t.Fatalf("ensure departments: %v", err)
	}
	if created != 7 {
		t.Fatalf("expected 7 created, got %d", created)
	}
	created, err = repo.EnsureDepartments(ctx, domain.DefaultDepartments())
	if err != nil {
		t.Fatalf("ensure departments again: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected nothing created on second run, got %d", created)
	}

	depts, err := repo.ListDepartments(ctx)
	if err != nil {
		t.Fatalf("list departments: %v", err)
	}
	if len(depts) != 7 {
		t.Fatalf("expected 7 departments, got %d", len(depts))
	}
	if depts[0].Code != "ROTO" || depts[6].Code != "ANIM" {
		t.Fatalf("unexpected department order: first %s last %s", depts[0].Code, depts[6].Code)
	}
}

func TestParentFiltersAndPagination(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	a := seedShot(t, repo, "PA")
	b := seedShot(t, repo, "PB")

	seqs, err := repo.ListSequences(ctx, &a.project.ID, domain.Page{})
	if err != nil {
		t.Fatalf("list sequences: %v", err)
	}
	if len(seqs) != 1 || seqs[0].ProjectID != a.project.ID {
		t.Fatalf("expected only project A sequences, got %+v", seqs)
	}

	all, _ := repo.ListSequences(ctx, nil, domain.Page{})
	if len(all) != 2 {
		t.Fatalf("expected 2 sequences without filter, got %d", len(all))
	}

	pkgs, _ := repo.ListPackages(ctx, &b.sequence.ID, domain.Page{})
	if len(pkgs) != 1 || pkgs[0].ID != b.pkg.ID {
		t.Fatalf("expected only sequence B packages, got %+v", pkgs)
	}
	shots, _ := repo.ListShots(ctx, &b.pkg.ID, domain.Page{})
	if len(shots) != 1 || shots[0].ID != b.shot.ID {
		t.Fatalf("expected only package B shots, got %+v", shots)
	}

	page, _ := repo.ListProjects(ctx, domain.Page{Skip: 1, Limit: 1})
	if len(page) != 1 || page[0].ID != b.project.ID {
		t.Fatalf("expected second project on page, got %+v", page)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")
	other := seedShot(t, repo, "P2")

	task, _ := repo.CreateTaskWithVersion(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "comp"}, nil)
	versions, _ := repo.ListVersions(ctx, task.ID)
	if _, err := repo.CreateNextInternalVersion(ctx, versions[0].ID, nil); err != nil {
		t.Fatalf("create internal version: %v", err)
	}

	if err := repo.DeleteProject(ctx, fx.project.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	if _, err := repo.GetProject(ctx, fx.project.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected project gone, got %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected task removed by cascade, got %v", err)
	}
	if _, err := repo.GetVersion(ctx, versions[0].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected version removed by cascade, got %v", err)
	}
	ivs, _ := repo.ListInternalVersions(ctx, versions[0].ID)
	if len(ivs) != 0 {
		t.Fatalf("expected internal versions removed by cascade, got %d", len(ivs))
	}
	shots, _ := repo.ListShots(ctx, nil, domain.Page{})
	if len(shots) != 1 || shots[0].ID != other.shot.ID {
		t.Fatalf("expected only the other project's shot to remain, got %+v", shots)
	}

	if err := repo.DeleteProject(ctx, fx.project.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDeleteTaskCascadesToVersions(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, _ := repo.CreateTaskWithVersion(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "comp"}, nil)
	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	versions, _ := repo.ListVersions(ctx, task.ID)
	if len(versions) != 0 {
		t.Fatalf("expected versions removed with task, got %d", len(versions))
	}
}

func TestConstraintErrorsAreTranslated(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)

	if _, err := repo.CreateProject(ctx, domain.Project{Name: "A", Code: "DUP"}); err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := repo.CreateProject(ctx, domain.Project{Name: "B", Code: "DUP"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	if _, err := repo.CreateSequence(ctx, domain.Sequence{ProjectID: 777, Name: "x", Code: "x"}); !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("expected invalid reference, got %v", err)
	}
	if _, err := repo.CreateUser(ctx, domain.User{Username: "ann", Email: "ann@example.com", FullName: "Ann", IsActive: true}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := repo.CreateUser(ctx, domain.User{Username: "ann2", Email: "ann@example.com", FullName: "Ann", IsActive: true}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected duplicate email rejected, got %v", err)
	}
}

func TestListTasksByShotAndDepartmentOrdering(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	if _, err := repo.EnsureDepartments(ctx, domain.DefaultDepartments()); err != nil {
		t.Fatalf("ensure departments: %v", err)
	}
	depts, _ := repo.ListDepartments(ctx)
	byCode := map[string]domain.Department{}
	for _, d := range depts {
		byCode[d.Code] = d
	}

	create := func(code, name string) domain.Task {
		task, err := repo.CreateTask(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: byCode[code].ID, Name: name})
		if err != nil {
			t.Fatalf("create task %s: %v", name, err)
		}
		return task
	}
	create("ANIM", "anim-1")
	create("ROTO", "roto-1")
	create("COMP", "comp-1")
	create("ROTO", "roto-2")

	tasks, err := repo.ListTasksByShotAndDepartment(ctx, fx.shot.ID, nil)
	if err != nil {
		t.Fatalf("list by shot: %v", err)
	}
	var names []string
	for _, task := range tasks {
		names = append(names, task.Name)
	}
	want := []string{"roto-1", "roto-2", "comp-1", "anim-1"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}

	roto := byCode["ROTO"].ID
	filtered, _ := repo.ListTasksByShotAndDepartment(ctx, fx.shot.ID, &roto)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 roto tasks, got %d", len(filtered))
	}
}

func TestUpdateTaskAppliesPatch(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")

	task, _ := repo.CreateTask(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: "comp"})
	status := domain.TaskInProgress
	hours := 3.5
	updated, err := repo.UpdateTask(ctx, task.ID, domain.TaskPatch{Status: &status, ActualHours: &hours})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Status != domain.TaskInProgress || updated.ActualHours != 3.5 || updated.Name != "comp" {
		t.Fatalf("unexpected task after patch: %+v", updated)
	}

	if _, err := repo.UpdateTask(ctx, 999, domain.TaskPatch{Status: &status}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProjectStatsCountsDescendants(t *testing.T) {
	ctx := context.Background()
	_, repo := openTestStore(t)
	fx := seedShot(t, repo, "P1")
	_ = seedShot(t, repo, "P2")

	for _, status := range []domain.TaskStatus{domain.TaskInProgress, domain.TaskApproved, domain.TaskFinal, domain.TaskRetake} {
		if _, err := repo.CreateTask(ctx, domain.Task{ShotID: fx.shot.ID, DepartmentID: fx.dept.ID, Name: string(status), Status: status}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	stats, err := repo.ProjectStats(ctx, fx.project.ID)
	if err != nil {
		t.Fatalf("project stats: %v", err)
	}
	want := domain.ProjectStats{
		ProjectID:       fx.project.ID,
		TotalSequences:  1,
		TotalPackages:   1,
		TotalShots:      1,
		TotalTasks:      4,
		CompletedTasks:  2,
		InProgressTasks: 1,
	}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}

	if _, err := repo.ProjectStats(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown project, got %v", err)
	}
}
