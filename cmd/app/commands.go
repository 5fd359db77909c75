package main

import (
	"context"
	"fmt"

	"github.com/jrbibin/Project-Management/internal/domain"
	"github.com/urfave/cli/v3"
)

func optUint(c *cli.Command, name string) *uint {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Uint(name)
	return &v
}

func optString(in map[string]any, c *cli.Command, flag, key string) {
	if c.IsSet(flag) {
		in[key] = c.String(flag)
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "output raw JSON"}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "skip", Value: 0},
		&cli.IntFlag{Name: "limit", Value: domain.DefaultPageLimit},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Client configuration",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Persist client transport settings",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "use", Usage: "uds or http"},
					&cli.StringFlag{Name: "url", Usage: "HTTP base URL"},
					&cli.StringFlag{Name: "sock", Usage: "JSON-RPC unix socket"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if v := c.String("use"); v != "" {
						cfg.Transport = v
					}
					if v := c.String("url"); v != "" {
						cfg.Server = v
					}
					if v := c.String("sock"); v != "" {
						cfg.Socket = v
					}
					if err := saveConfig(cfg); err != nil {
						return err
					}
					printKV([][2]string{{"transport", cfg.Transport}, {"server", cfg.Server}, {"socket", cfg.Socket}})
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Show effective client settings",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					printKV([][2]string{{"transport", cfg.Transport}, {"server", cfg.Server}, {"socket", cfg.Socket}})
					return nil
				},
			},
		},
	}
}

func departmentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "departments",
		Usage: "Department commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create the default departments if missing",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out struct {
						Created int `json:"created"`
					}
					if err := doDepartmentsInit(ctx, cfg, &out); err != nil {
						return err
					}
					fmt.Printf("created %d departments\n", out.Created)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List departments in pipeline order",
				Flags: []cli.Flag{jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out []domain.Department
					if err := doDepartmentsList(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printDepartments(out)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create department",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "code", Required: true},
					&cli.StringFlag{Name: "color"},
					&cli.IntFlag{Name: "order"},
					jsonFlag(),
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					in := map[string]any{"name": c.String("name"), "code": c.String("code"), "order": c.Int("order")}
					optString(in, c, "color", "color")
					var out domain.Department
					if err := doCreate(ctx, cfg, "departments", "departments", in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printDepartments([]domain.Department{out})
					return nil
				},
			},
		},
	}
}

func projectsCommand() *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "Project commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List projects",
				Flags: append(pageFlags(), jsonFlag()),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out []domain.Project
					if err := doList(ctx, cfg, "projects", "projects", listFilter{Skip: c.Int("skip"), Limit: c.Int("limit")}, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printProjects(out)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create project",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "code", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "status"},
					jsonFlag(),
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					in := map[string]any{"name": c.String("name"), "code": c.String("code")}
					optString(in, c, "description", "description")
					optString(in, c, "status", "status")
					var out domain.Project
					if err := doCreate(ctx, cfg, "projects", "projects", in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printProjects([]domain.Project{out})
					return nil
				},
			},
			{
				Name:  "get",
				Usage: "Show project",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}, jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out domain.Project
					if err := doProjectGet(ctx, cfg, c.Uint("id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printProjects([]domain.Project{out})
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete project and everything below it",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					if err := doProjectDelete(ctx, cfg, c.Uint("id")); err != nil {
						return err
					}
					fmt.Printf("deleted project %d\n", c.Uint("id"))
					return nil
				},
			},
			{
				Name:  "stats",
				Usage: "Show project counters",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}, jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out domain.ProjectStats
					if err := doProjectStats(ctx, cfg, c.Uint("id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printStats(out)
					return nil
				},
			},
		},
	}
}

// hierarchyCommand builds list/create for sequences, packages and shots,
// which differ only in their parent key and extra create flags.
func hierarchyCommand(name, parentFlag, parentKey string, extra []cli.Flag, fill func(c *cli.Command, in map[string]any), printFn func(raw []byte) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: fmt.Sprintf("%s commands", name),
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List " + name,
				Flags: append(pageFlags(), &cli.UintFlag{Name: parentFlag}, jsonFlag()),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					f := listFilter{ParentKey: parentKey, ParentID: optUint(c, parentFlag), Skip: c.Int("skip"), Limit: c.Int("limit")}
					var out rawJSON
					if err := doList(ctx, cfg, name, name, f, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					return printFn(out)
				},
			},
			{
				Name:  "create",
				Usage: "Create " + name[:len(name)-1],
				Flags: append([]cli.Flag{
					&cli.UintFlag{Name: parentFlag, Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "code", Required: true},
					&cli.StringFlag{Name: "description"},
					jsonFlag(),
				}, extra...),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					in := map[string]any{parentKey: c.Uint(parentFlag), "name": c.String("name"), "code": c.String("code")}
					optString(in, c, "description", "description")
					if fill != nil {
						fill(c, in)
					}
					var out rawJSON
					if err := doCreate(ctx, cfg, name, name, in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					return printFn(append(append([]byte("["), out...), ']'))
				},
			},
		},
	}
}

func frameFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "frame-start"},
		&cli.IntFlag{Name: "frame-end"},
	}
}

func fillFrames(c *cli.Command, in map[string]any) {
	if c.IsSet("frame-start") {
		in["frame_start"] = c.Int("frame-start")
	}
	if c.IsSet("frame-end") {
		in["frame_end"] = c.Int("frame-end")
	}
}

func sequencesCommand() *cli.Command {
	return hierarchyCommand("sequences", "project-id", "project_id", nil, nil, decodeAndPrint(printSequences))
}

func packagesCommand() *cli.Command {
	return hierarchyCommand("packages", "sequence-id", "sequence_id", frameFlags(), fillFrames, decodeAndPrint(printPackages))
}

func shotsCommand() *cli.Command {
	extra := append(frameFlags(),
		&cli.FloatFlag{Name: "fps"},
		&cli.IntFlag{Name: "width"},
		&cli.IntFlag{Name: "height"},
	)
	fill := func(c *cli.Command, in map[string]any) {
		fillFrames(c, in)
		if c.IsSet("fps") {
			in["fps"] = c.Float("fps")
		}
		if c.IsSet("width") {
			in["resolution_width"] = c.Int("width")
		}
		if c.IsSet("height") {
			in["resolution_height"] = c.Int("height")
		}
	}
	return hierarchyCommand("shots", "package-id", "package_id", extra, fill, decodeAndPrint(printShots))
}

func tasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Task commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List tasks",
				Flags: append(pageFlags(), &cli.UintFlag{Name: "shot-id"}, jsonFlag()),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					f := listFilter{ParentKey: "shot_id", ParentID: optUint(c, "shot-id"), Skip: c.Int("skip"), Limit: c.Int("limit")}
					var out []domain.Task
					if err := doList(ctx, cfg, "tasks", "tasks", f, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTasks(out)
					return nil
				},
			},
			{
				Name:  "by-shot",
				Usage: "List a shot's tasks grouped by department order",
				Flags: []cli.Flag{&cli.UintFlag{Name: "shot-id", Required: true}, &cli.UintFlag{Name: "department-id"}, jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out []domain.Task
					if err := doTasksByShot(ctx, cfg, c.Uint("shot-id"), optUint(c, "department-id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTasks(out)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create task",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "shot-id", Required: true},
					&cli.UintFlag{Name: "department-id", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.UintFlag{Name: "assignee-id"},
					&cli.StringFlag{Name: "status"},
					&cli.StringFlag{Name: "priority"},
					&cli.FloatFlag{Name: "estimated-hours"},
					&cli.BoolFlag{Name: "with-version", Usage: "also create version v001"},
					&cli.UintFlag{Name: "created-by", Usage: "user id recorded on v001"},
					jsonFlag(),
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					in := map[string]any{
						"shot_id":       c.Uint("shot-id"),
						"department_id": c.Uint("department-id"),
						"name":          c.String("name"),
					}
					optString(in, c, "description", "description")
					optString(in, c, "status", "status")
					optString(in, c, "priority", "priority")
					if v := optUint(c, "assignee-id"); v != nil {
						in["assignee_id"] = *v
					}
					if c.IsSet("estimated-hours") {
						in["estimated_hours"] = c.Float("estimated-hours")
					}

					var out domain.Task
					if c.Bool("with-version") {
						if v := optUint(c, "created-by"); v != nil {
							in["created_by"] = *v
						}
						err = doTaskCreateWithVersion(ctx, cfg, in, &out)
					} else {
						err = doCreate(ctx, cfg, "tasks", "tasks", in, &out)
					}
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTask(out)
					return nil
				},
			},
			{
				Name:  "get",
				Usage: "Show task",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}, jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out domain.Task
					if err := doTaskGet(ctx, cfg, c.Uint("id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTask(out)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Patch task fields",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "status"},
					&cli.StringFlag{Name: "priority"},
					&cli.UintFlag{Name: "assignee-id"},
					&cli.FloatFlag{Name: "estimated-hours"},
					&cli.FloatFlag{Name: "actual-hours"},
					jsonFlag(),
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					patch := map[string]any{}
					optString(patch, c, "name", "name")
					optString(patch, c, "description", "description")
					optString(patch, c, "status", "status")
					optString(patch, c, "priority", "priority")
					if v := optUint(c, "assignee-id"); v != nil {
						patch["assignee_id"] = *v
					}
					if c.IsSet("estimated-hours") {
						patch["estimated_hours"] = c.Float("estimated-hours")
					}
					if c.IsSet("actual-hours") {
						patch["actual_hours"] = c.Float("actual-hours")
					}
					var out domain.Task
					if err := doTaskUpdate(ctx, cfg, c.Uint("id"), patch, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTask(out)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete task and its versions",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					if err := doTaskDelete(ctx, cfg, c.Uint("id")); err != nil {
						return err
					}
					fmt.Printf("deleted task %d\n", c.Uint("id"))
					return nil
				},
			},
		},
	}
}

func versionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "versions",
		Usage: "Version commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List a task's versions, newest first",
				Flags: []cli.Flag{&cli.UintFlag{Name: "task-id", Required: true}, jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out []domain.Version
					if err := doVersionsList(ctx, cfg, c.Uint("task-id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printVersions(out)
					return nil
				},
			},
			{
				Name:  "new",
				Usage: "Create the task's next version",
				Flags: []cli.Flag{&cli.UintFlag{Name: "task-id", Required: true}, &cli.UintFlag{Name: "created-by"}, jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out domain.Version
					if err := doVersionNew(ctx, cfg, c.Uint("task-id"), optUint(c, "created-by"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printVersions([]domain.Version{out})
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create a version with an explicit number",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "task-id", Required: true},
					&cli.StringFlag{Name: "number", Required: true, Usage: "e.g. v004"},
					&cli.StringFlag{Name: "file-path"},
					&cli.StringFlag{Name: "notes"},
					&cli.UintFlag{Name: "created-by"},
					jsonFlag(),
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					in := map[string]any{"task_id": c.Uint("task-id"), "version_number": c.String("number")}
					optString(in, c, "file-path", "file_path")
					optString(in, c, "notes", "notes")
					if v := optUint(c, "created-by"); v != nil {
						in["created_by"] = *v
					}
					var out domain.Version
					if err := doCreate(ctx, cfg, "versions", "versions", in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printVersions([]domain.Version{out})
					return nil
				},
			},
		},
	}
}

func internalVersionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "internal-versions",
		Usage: "Internal version commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List a version's internal versions, newest first",
				Flags: []cli.Flag{&cli.UintFlag{Name: "version-id", Required: true}, jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out []domain.InternalVersion
					if err := doInternalVersionsList(ctx, cfg, c.Uint("version-id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printInternalVersions(out)
					return nil
				},
			},
			{
				Name:  "new",
				Usage: "Create the version's next internal version",
				Flags: []cli.Flag{&cli.UintFlag{Name: "version-id", Required: true}, &cli.UintFlag{Name: "created-by"}, jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out domain.InternalVersion
					if err := doInternalVersionNew(ctx, cfg, c.Uint("version-id"), optUint(c, "created-by"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printInternalVersions([]domain.InternalVersion{out})
					return nil
				},
			},
		},
	}
}

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "User commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List active users",
				Flags: append(pageFlags(), jsonFlag()),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					var out []domain.User
					if err := doList(ctx, cfg, "users", "users", listFilter{Skip: c.Int("skip"), Limit: c.Int("limit")}, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printUsers(out)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "full-name", Required: true},
					&cli.StringFlag{Name: "role"},
					&cli.UintFlag{Name: "department-id"},
					jsonFlag(),
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := clientConfig(c)
					if err != nil {
						return err
					}
					in := map[string]any{"username": c.String("username"), "email": c.String("email"), "full_name": c.String("full-name")}
					optString(in, c, "role", "role")
					if v := optUint(c, "department-id"); v != nil {
						in["department_id"] = *v
					}
					var out domain.User
					if err := doCreate(ctx, cfg, "users", "users", in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printUsers([]domain.User{out})
					return nil
				},
			},
		},
	}
}
