package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kube-rca/taskboard/internal/model"
)

const taskColumns = `id, user_id, title, description, status, created_at, updated_at`

// CreateTask - 신규 태스크 저장
func (db *Postgres) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + taskColumns
	created, err := scanTask(db.Pool.QueryRow(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, string(task.Status)))
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	return created, nil
}

// ListTasks - 소유자의 태스크 목록 (최신순)
func (db *Postgres) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return tasks, nil
}

func (db *Postgres) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	task, err := scanTask(db.Pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, taskID, ownerID))
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// UpdateTask applies the non-nil fields of patch and bumps updated_at.
func (db *Postgres) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, patch model.UpdateTaskRequest) error {
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	tag, err := db.Pool.Exec(ctx, `
		UPDATE tasks
		SET title       = COALESCE($3, title),
		    description = COALESCE($4, description),
		    status      = COALESCE($5, status),
		    updated_at  = NOW()
		WHERE id = $1 AND user_id = $2
	`, taskID, ownerID, patch.Title, patch.Description, status)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *Postgres) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*model.Task, error) {
	var (
		task   model.Task
		status string
	)
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Status = model.TaskStatus(status)
	return &task, nil
}
