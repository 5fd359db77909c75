package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jrbibin/Project-Management/internal/domain"
)

type rawJSON = json.RawMessage

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

// decodeAndPrint adapts a typed printer to raw list output.
func decodeAndPrint[T any](fn func([]T)) func([]byte) error {
	return func(raw []byte) error {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		fn(items)
		return nil
	}
}

func formatMaybeUint(v *uint) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatUint(uint64(*v), 10)
}

func formatMaybeInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func formatMaybeFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatMaybeTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}

func printProjects(items []domain.Project) {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{uintToString(p.ID), p.Code, p.Name, p.Status, formatTime(p.CreatedAt)})
	}
	printTable([]string{"ID", "CODE", "NAME", "STATUS", "CREATED"}, rows)
}

func printStats(s domain.ProjectStats) {
	printKV([][2]string{
		{"project_id", uintToString(s.ProjectID)},
		{"sequences", strconv.FormatInt(s.TotalSequences, 10)},
		{"packages", strconv.FormatInt(s.TotalPackages, 10)},
		{"shots", strconv.FormatInt(s.TotalShots, 10)},
		{"tasks", strconv.FormatInt(s.TotalTasks, 10)},
		{"completed", strconv.FormatInt(s.CompletedTasks, 10)},
		{"in_progress", strconv.FormatInt(s.InProgressTasks, 10)},
	})
}

func printSequences(items []domain.Sequence) {
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		rows = append(rows, []string{uintToString(s.ID), uintToString(s.ProjectID), s.Code, s.Name})
	}
	printTable([]string{"ID", "PROJECT", "CODE", "NAME"}, rows)
}

func printPackages(items []domain.Package) {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{
			uintToString(p.ID), uintToString(p.SequenceID), p.Code, p.Name,
			formatMaybeInt(p.FrameStart) + "-" + formatMaybeInt(p.FrameEnd),
		})
	}
	printTable([]string{"ID", "SEQUENCE", "CODE", "NAME", "FRAMES"}, rows)
}

func printShots(items []domain.Shot) {
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		rows = append(rows, []string{
			uintToString(s.ID), uintToString(s.PackageID), s.Code, s.Name,
			formatMaybeInt(s.FrameStart) + "-" + formatMaybeInt(s.FrameEnd),
			formatMaybeInt(s.FrameCount),
			fmt.Sprintf("%dx%d@%g", s.ResolutionWidth, s.ResolutionHeight, s.FPS),
			s.Status,
		})
	}
	printTable([]string{"ID", "PACKAGE", "CODE", "NAME", "FRAMES", "COUNT", "FORMAT", "STATUS"}, rows)
}

func printDepartments(items []domain.Department) {
	rows := make([][]string, 0, len(items))
	for _, d := range items {
		rows = append(rows, []string{uintToString(d.ID), strconv.Itoa(d.SortOrder), d.Code, d.Name, d.Color})
	}
	printTable([]string{"ID", "ORDER", "CODE", "NAME", "COLOR"}, rows)
}

func printUsers(items []domain.User) {
	rows := make([][]string, 0, len(items))
	for _, u := range items {
		rows = append(rows, []string{uintToString(u.ID), u.Username, u.FullName, u.Email, u.Role, formatMaybeUint(u.DepartmentID)})
	}
	printTable([]string{"ID", "USERNAME", "NAME", "EMAIL", "ROLE", "DEPT"}, rows)
}

func printTasks(items []domain.Task) {
	rows := make([][]string, 0, len(items))
	for _, t := range items {
		rows = append(rows, []string{
			uintToString(t.ID), uintToString(t.ShotID), uintToString(t.DepartmentID), t.Name,
			string(t.Status), string(t.Priority), t.CurrentVersion, formatMaybeUint(t.AssigneeID),
		})
	}
	printTable([]string{"ID", "SHOT", "DEPT", "NAME", "STATUS", "PRIORITY", "VERSION", "ASSIGNEE"}, rows)
}

func printTask(t domain.Task) {
	printKV([][2]string{
		{"id", uintToString(t.ID)},
		{"shot_id", uintToString(t.ShotID)},
		{"department_id", uintToString(t.DepartmentID)},
		{"name", t.Name},
		{"description", t.Description},
		{"status", string(t.Status)},
		{"priority", string(t.Priority)},
		{"assignee_id", formatMaybeUint(t.AssigneeID)},
		{"estimated_hours", formatMaybeFloat(t.EstimatedHours)},
		{"actual_hours", strconv.FormatFloat(t.ActualHours, 'f', -1, 64)},
		{"due_date", formatMaybeTime(t.DueDate)},
		{"current_version", t.CurrentVersion},
		{"updated_at", formatTime(t.UpdatedAt)},
	})
}

func printVersions(items []domain.Version) {
	rows := make([][]string, 0, len(items))
	for _, v := range items {
		rows = append(rows, []string{uintToString(v.ID), uintToString(v.TaskID), v.VersionNumber, v.Status, formatMaybeUint(v.CreatedBy), formatTime(v.CreatedAt)})
	}
	printTable([]string{"ID", "TASK", "VERSION", "STATUS", "BY", "CREATED"}, rows)
}

func printInternalVersions(items []domain.InternalVersion) {
	rows := make([][]string, 0, len(items))
	for _, v := range items {
		rows = append(rows, []string{uintToString(v.ID), uintToString(v.VersionID), v.InternalVersionNumber, v.Status, formatMaybeUint(v.CreatedBy), formatTime(v.CreatedAt)})
	}
	printTable([]string{"ID", "VERSION", "INTERNAL", "STATUS", "BY", "CREATED"}, rows)
}
