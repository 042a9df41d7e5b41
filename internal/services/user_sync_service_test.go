package services

import (
	"context"
	"errors"
	"testing"

	"travelplanner/internal/domain"
	"travelplanner/internal/domain/models"
	"travelplanner/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

type countingCopy struct {
	calls int
	err   error
}

func (c *countingCopy) UpdateEmail(context.Context, string, string) (int64, error) {
	c.calls++
	return 1, c.err
}

func TestSyncEmailPrimaryFailureAborts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	storeErr := errors.New("connection refused")
	mock.ExpectExec("UPDATE profiles SET email").WillReturnError(storeErr)

	newsletter, collaborators := &countingCopy{}, &countingCopy{}
	svc := UserSyncService{
		Profiles: repositories.ProfileRepository{DB: db},
		Copies: map[string]EmailCopyWriter{
			repositories.NewsletterSubscribersTable: newsletter,
			repositories.TripCollaboratorsTable:     collaborators,
		},
	}

	_, err = svc.SyncEmail(context.Background(), models.EmailSyncRequest{UserID: "user-1", Email: "New@Example.com"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if newsletter.calls != 0 || collaborators.calls != 0 {
		t.Fatalf("secondary writes attempted after primary failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSyncEmailSecondaryFailureStillSucceeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE profiles SET email = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("new@example.com", sqlmock.AnyArg(), "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE newsletter_subscribers SET email = \$1 WHERE user_id = \$2`).
		WithArgs("new@example.com", "user-1").
		WillReturnError(errors.New(`relation "newsletter_subscribers" does not exist`))
	mock.ExpectExec(`UPDATE trip_collaborators SET email = \$1 WHERE user_id = \$2`).
		WithArgs("new@example.com", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	svc := UserSyncService{
		Profiles: repositories.ProfileRepository{DB: db, Driver: "postgres"},
		Copies: map[string]EmailCopyWriter{
			repositories.NewsletterSubscribersTable: repositories.EmailCopyRepository{DB: db, Driver: "postgres", Table: repositories.NewsletterSubscribersTable},
			repositories.TripCollaboratorsTable:     repositories.EmailCopyRepository{DB: db, Driver: "postgres", Table: repositories.TripCollaboratorsTable},
		},
	}

	res, err := svc.SyncEmail(context.Background(), models.EmailSyncRequest{UserID: "user-1", Email: " New@Example.com "})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(res.Applied) != 2 || len(res.Failed) != 1 || res.Failed[0].Name != "newsletter_subscribers.email" {
		t.Fatalf("unexpected result %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSyncEmailValidation(t *testing.T) {
	svc := UserSyncService{}
	cases := []models.EmailSyncRequest{
		{Email: "a@example.com"},
		{UserID: "u"},
		{UserID: "u", Email: "not-an-email"},
		{UserID: "u", Email: "Name <a@example.com>"},
	}
	for i, in := range cases {
		if _, err := svc.SyncEmail(context.Background(), in); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestUpdateRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE profiles SET role").
		WithArgs("editor", sqlmock.AnyArg(), "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE profiles SET role").
		WithArgs("admin", sqlmock.AnyArg(), "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := UserSyncService{Profiles: repositories.ProfileRepository{DB: db}}
	if err := svc.UpdateRole(context.Background(), models.RoleUpdateRequest{UserID: "user-1", Role: " Editor "}); err != nil {
		t.Fatalf("UpdateRole error: %v", err)
	}
	if err := svc.UpdateRole(context.Background(), models.RoleUpdateRequest{UserID: "ghost", Role: "admin"}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.UpdateRole(context.Background(), models.RoleUpdateRequest{UserID: "u", Role: "superuser"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
