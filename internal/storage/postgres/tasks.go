package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/storage"
)

func deadlineValue(t models.Task) sql.NullString {
	if t.Deadline == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Deadline.String(), Valid: true}
}

func (s *Store) AddTask(userID string, task models.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, user_id, name, category, deadline)
		VALUES ($1, $2, $3, $4, $5)`,
		task.ID, userID, task.Name, task.Category, deadlineValue(task),
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (s *Store) GetTask(userID, id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT id, name, category, deadline FROM tasks
		WHERE id = $1 AND user_id = $2`, id, userID)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	return t, err
}

func (s *Store) GetAllTasks(userID string) ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, name, category, deadline FROM tasks
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) UpdateTask(userID string, task models.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	result, err := s.db.Exec(`
		UPDATE tasks SET name = $1, category = $2, deadline = $3, updated_at = now()
		WHERE id = $4 AND user_id = $5`,
		task.Name, task.Category, deadlineValue(task), task.ID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return expectOneRow(result, task.ID)
}

func (s *Store) DeleteTask(userID, id string) error {
	result, err := s.db.Exec(`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return expectOneRow(result, id)
}

func expectOneRow(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (models.Task, error) {
	var t models.Task
	var deadline sql.NullString
	if err := row.Scan(&t.ID, &t.Name, &t.Category, &deadline); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}
	if deadline.Valid && deadline.String != "" {
		d, err := models.ParseTimeOfDay(deadline.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("task %s has invalid deadline: %w", t.ID, err)
		}
		t.Deadline = &d
	}
	return t, nil
}
