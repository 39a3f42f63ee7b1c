package app

import (
	"context"
	"testing"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/student"
)

func newProfileWorld(t *testing.T) (*ProfileService, *fakeStudentRepo, *student.Student) {
	t.Helper()
	students := newFakeStudentRepo()
	companies := newFakeCompanyRepo()
	applicant, err := students.Create(context.Background(), student.Student{Name: "Sara", Email: "sara@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return NewProfileService(students, companies), students, applicant
}

func TestUpdateStudent_ProtectsIdentityFields(t *testing.T) {
	service, _, applicant := newProfileWorld(t)
	ctx := context.Background()

	updated, err := service.UpdateStudent(ctx, applicant.ID, student.Student{
		Email:        "hijack@example.com",
		PasswordHash: "other",
		Title:        "Engineer",
		Skills:       []string{"go"},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Email != "sara@example.com" {
		t.Fatalf("expected email preserved, got %s", updated.Email)
	}
	if updated.PasswordHash != "hash" {
		t.Fatalf("expected password hash preserved, got %q", updated.PasswordHash)
	}
	if updated.Name != "Sara" {
		t.Fatalf("expected name kept when omitted, got %s", updated.Name)
	}
	if updated.Title != "Engineer" || len(updated.Skills) != 1 {
		t.Fatalf("expected profile fields applied, got %+v", updated)
	}
}

func TestNotifications_EmptyInboxIsNotNil(t *testing.T) {
	service, _, applicant := newProfileWorld(t)

	items, err := service.Notifications(context.Background(), applicant.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty list, got %v", items)
	}
}

func TestDismissNotification_RemovesByIndex(t *testing.T) {
	service, students, applicant := newProfileWorld(t)
	ctx := context.Background()

	for _, message := range []string{"first", "second", "third"} {
		if err := students.PushNotification(ctx, applicant.ID, message); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	remaining, err := service.DismissNotification(ctx, applicant.ID, 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(remaining) != 2 || remaining[0] != "first" || remaining[1] != "third" {
		t.Fatalf("expected [first third], got %v", remaining)
	}
}

func TestDismissNotification_IndexBounds(t *testing.T) {
	service, students, applicant := newProfileWorld(t)
	ctx := context.Background()

	if err := students.PushNotification(ctx, applicant.ID, "only"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := service.DismissNotification(ctx, applicant.ID, -1); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := service.DismissNotification(ctx, applicant.ID, 1); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDismissAllNotifications(t *testing.T) {
	service, students, applicant := newProfileWorld(t)
	ctx := context.Background()

	if err := students.PushNotification(ctx, applicant.ID, "pending"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := service.DismissAllNotifications(ctx, applicant.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	items, err := service.Notifications(ctx, applicant.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty inbox, got %v", items)
	}
}
