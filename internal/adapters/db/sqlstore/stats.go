package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jrbibin/Project-Management/internal/domain"
)

const projectStatsQuery = `
SELECT
	(SELECT COUNT(*) FROM sequences s WHERE s.project_id = ?) AS total_sequences,
	(SELECT COUNT(*) FROM packages p
		JOIN sequences s ON s.id = p.sequence_id
		WHERE s.project_id = ?) AS total_packages,
	(SELECT COUNT(*) FROM shots sh
		JOIN packages p ON p.id = sh.package_id
		JOIN sequences s ON s.id = p.sequence_id
		WHERE s.project_id = ?) AS total_shots,
	(SELECT COUNT(*) FROM tasks t
		JOIN shots sh ON sh.id = t.shot_id
		JOIN packages p ON p.id = sh.package_id
		JOIN sequences s ON s.id = p.sequence_id
		WHERE s.project_id = ?) AS total_tasks,
	(SELECT COUNT(*) FROM tasks t
		JOIN shots sh ON sh.id = t.shot_id
		JOIN packages p ON p.id = sh.package_id
		JOIN sequences s ON s.id = p.sequence_id
		WHERE s.project_id = ? AND t.status IN (?, ?)) AS completed_tasks,
	(SELECT COUNT(*) FROM tasks t
		JOIN shots sh ON sh.id = t.shot_id
		JOIN packages p ON p.id = sh.package_id
		JOIN sequences s ON s.id = p.sequence_id
		WHERE s.project_id = ? AND t.status = ?) AS in_progress_tasks`

type projectStatsRow struct {
	TotalSequences  int64 `db:"total_sequences"`
	TotalPackages   int64 `db:"total_packages"`
	TotalShots      int64 `db:"total_shots"`
	TotalTasks      int64 `db:"total_tasks"`
	CompletedTasks  int64 `db:"completed_tasks"`
	InProgressTasks int64 `db:"in_progress_tasks"`
}

// ProjectStats counts the project's descendants. Approved and final tasks
// count as completed.
func (r *ProductionRepository) ProjectStats(ctx context.Context, projectID uint) (domain.ProjectStats, error) {
	if _, err := r.GetProject(ctx, projectID); err != nil {
		return domain.ProjectStats{}, err
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return domain.ProjectStats{}, err
	}
	db := sqlx.NewDb(sqlDB, r.db.Dialector.Name())

	var row projectStatsRow
	err = db.GetContext(ctx, &row, db.Rebind(projectStatsQuery),
		projectID,
		projectID,
		projectID,
		projectID,
		projectID, string(domain.TaskApproved), string(domain.TaskFinal),
		projectID, string(domain.TaskInProgress),
	)
	if err != nil {
		return domain.ProjectStats{}, fmt.Errorf("project %d stats: %w", projectID, err)
	}

	return domain.ProjectStats{
		ProjectID:       projectID,
		TotalSequences:  row.TotalSequences,
		TotalPackages:   row.TotalPackages,
		TotalShots:      row.TotalShots,
		TotalTasks:      row.TotalTasks,
		CompletedTasks:  row.CompletedTasks,
		InProgressTasks: row.InProgressTasks,
	}, nil
}
