package handler

import (
	"context"

	"github.com/kube-rca/taskboard/internal/logging"
	"github.com/kube-rca/taskboard/internal/model"
)

func discardLog() logging.Logger { return logging.Discard() }

type fakeAuthService struct {
	registerFn func(model.RegisterRequest) (*model.UserResponse, error)
	loginFn    func(model.LoginRequest) (*model.LoginResponse, error)
	users      []model.UserResponse
	listErr    error
	meFn       func(subject string) (*model.UserResponse, error)
}

func (f *fakeAuthService) Register(_ context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	return f.registerFn(req)
}

func (f *fakeAuthService) Login(_ context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	return f.loginFn(req)
}

func (f *fakeAuthService) ListUsers(context.Context) ([]model.UserResponse, error) {
	return f.users, f.listErr
}

func (f *fakeAuthService) Me(_ context.Context, subject string) (*model.UserResponse, error) {
	return f.meFn(subject)
}

type taskCall struct {
	owner  string
	taskID string
}

type fakeTaskService struct {
	err     error
	task    *model.Task
	tasks   []model.Task
	calls   []taskCall
	created model.CreateTaskRequest
	updated model.UpdateTaskRequest
}

func (f *fakeTaskService) record(owner, taskID string) {
	f.calls = append(f.calls, taskCall{owner: owner, taskID: taskID})
}

func (f *fakeTaskService) CreateTask(_ context.Context, owner string, req model.CreateTaskRequest) (*model.Task, error) {
	f.record(owner, "")
	f.created = req
	return f.task, f.err
}

func (f *fakeTaskService) ListTasks(_ context.Context, owner string) ([]model.Task, error) {
	f.record(owner, "")
	return f.tasks, f.err
}

func (f *fakeTaskService) GetTask(_ context.Context, owner, taskID string) (*model.Task, error) {
	f.record(owner, taskID)
	return f.task, f.err
}

func (f *fakeTaskService) UpdateTask(_ context.Context, owner, taskID string, req model.UpdateTaskRequest) error {
	f.record(owner, taskID)
	f.updated = req
	return f.err
}

func (f *fakeTaskService) DeleteTask(_ context.Context, owner, taskID string) error {
	f.record(owner, taskID)
	return f.err
}
