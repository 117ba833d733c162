package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestTaskStatusValid(t *testing.T) {
	tests := []struct {
		status TaskStatus
		want   bool
	}{
		{TaskPending, true},
		{TaskInProgress, true},
		{TaskCompleted, true},
		{"pending", false},
		{"Done", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Fatalf("TaskStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestUserPublicHidesSecrets(t *testing.T) {
	refresh := "refresh-token"
	u := User{
		ID:           uuid.MustParse("6f1c1a4e-4c1d-4c3a-9f6e-0a9e3b2d1c00"),
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
		RefreshToken: &refresh,
	}

	raw, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"id":"6f1c1a4e-4c1d-4c3a-9f6e-0a9e3b2d1c00","name":"Ada","email":"ada@example.com"}`
	if string(raw) != want {
		t.Fatalf("Public() = %s, want %s", raw, want)
	}
}
