package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "InProgress"
	TaskCompleted  TaskStatus = "Completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Task - tasks 테이블 레코드
type Task struct {
	ID          uuid.UUID  `json:"id" swaggertype:"string" format:"uuid"`
	UserID      uuid.UUID  `json:"user_id" swaggertype:"string" format:"uuid"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTaskRequest - 태스크 생성 요청. Status 생략 시 Pending
type CreateTaskRequest struct {
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Status      *TaskStatus `json:"status"`
}

// UpdateTaskRequest - 부분 수정 요청. nil 필드는 변경하지 않는다
type UpdateTaskRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Status      *TaskStatus `json:"status"`
}
