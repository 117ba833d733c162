package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kube-rca/taskboard/internal/db"
	"github.com/kube-rca/taskboard/internal/model"
)

// taskRepo - 태스크 저장소 인터페이스. 모든 조회/수정은 소유자 기준으로 제한된다
type taskRepo interface {
	CreateTask(ctx context.Context, task *model.Task) (*model.Task, error)
	ListTasks(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, patch model.UpdateTaskRequest) error
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// TaskService - 태스크 비즈니스 로직. owner는 인증된 subject 문자열이다
type TaskService struct {
	repo taskRepo
}

func NewTaskService(repo taskRepo) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) CreateTask(ctx context.Context, owner string, req model.CreateTaskRequest) (*model.Task, error) {
	ownerID, err := parseSubject(owner)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := model.TaskPending
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		status = *req.Status
	}

	return s.repo.CreateTask(ctx, &model.Task{
		UserID:      ownerID,
		Title:       title,
		Description: req.Description,
		Status:      status,
	})
}

func (s *TaskService) ListTasks(ctx context.Context, owner string) ([]model.Task, error) {
	ownerID, err := parseSubject(owner)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTasks(ctx, ownerID)
}

func (s *TaskService) GetTask(ctx context.Context, owner, taskID string) (*model.Task, error) {
	ownerID, id, err := parseTaskKeys(owner, taskID)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.GetTask(ctx, ownerID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, owner, taskID string, req model.UpdateTaskRequest) error {
	ownerID, id, err := parseTaskKeys(owner, taskID)
	if err != nil {
		return err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return ErrTitleRequired
		}
		req.Title = &title
	}
	if req.Status != nil && !req.Status.Valid() {
		return ErrInvalidStatus
	}

	return mapNotFound(s.repo.UpdateTask(ctx, ownerID, id, req))
}

func (s *TaskService) DeleteTask(ctx context.Context, owner, taskID string) error {
	ownerID, id, err := parseTaskKeys(owner, taskID)
	if err != nil {
		return err
	}
	return mapNotFound(s.repo.DeleteTask(ctx, ownerID, id))
}

func parseTaskKeys(owner, taskID string) (uuid.UUID, uuid.UUID, error) {
	ownerID, err := parseSubject(owner)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := uuid.Parse(taskID)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidTaskID
	}
	return ownerID, id, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
