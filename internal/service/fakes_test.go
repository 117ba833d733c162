package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kube-rca/taskboard/internal/db"
	"github.com/kube-rca/taskboard/internal/model"
	"github.com/kube-rca/taskboard/internal/token"
)

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*model.User
	setErr   error
	getErr   error
	setCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, db.ErrConflict
		}
	}
	created := *user
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.users[created.ID] = &created
	out := created
	return &out, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (f *fakeUserRepo) SetRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	u, ok := f.users[userID]
	if !ok {
		return db.ErrNotFound
	}
	rt := refreshToken
	u.RefreshToken = &rt
	return nil
}

func (f *fakeUserRepo) storedRefreshToken(id uuid.UUID) *string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].RefreshToken
}

// plainHasher stores passwords as "hash:<password>".
type plainHasher struct {
	hashErr error
}

func (h plainHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hash:" + password, nil
}

func (h plainHasher) Verify(password, hash string) (bool, error) {
	if !strings.HasPrefix(hash, "hash:") {
		return false, errors.New("malformed hash")
	}
	return hash == "hash:"+password, nil
}

type failingIssuer struct{}

func (failingIssuer) IssuePair(string) (token.Pair, error) {
	return token.Pair{}, token.ErrSigningFailure
}

// tickingClock advances one second on every read so consecutive tokens
// differ.
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*model.Task
	err   error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uuid.UUID]*model.Task{}}
}

func (f *fakeTaskRepo) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	created := *task
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.tasks[created.ID] = &created
	out := created
	return &out, nil
}

func (f *fakeTaskRepo) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := []model.Task{}
	for _, t := range f.tasks {
		if t.UserID == ownerID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

func (f *fakeTaskRepo) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return nil, db.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (f *fakeTaskRepo) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, patch model.UpdateTaskRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return db.ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (f *fakeTaskRepo) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return db.ErrNotFound
	}
	delete(f.tasks, taskID)
	return nil
}
