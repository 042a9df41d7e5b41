package services

import (
	"context"
	"net/mail"
	"strings"

	"travelplanner/internal/domain"
	"travelplanner/internal/domain/models"
	"travelplanner/internal/repositories"
	"travelplanner/internal/utils"
)

type ProfileWriter interface {
	UpdateEmail(ctx context.Context, userID, email string) error
	UpdateRole(ctx context.Context, userID, role string) error
	UpdateSubscriptionStatus(ctx context.Context, userID, status string) error
}

type EmailCopyWriter interface {
	UpdateEmail(ctx context.Context, userID, email string) (int64, error)
}

// UserSyncService keeps per-user fields consistent across the profile row and
// the tables that copy them. profiles is authoritative; copies may lag.
type UserSyncService struct {
	Profiles ProfileWriter
	Copies   map[string]EmailCopyWriter
}

// copyOrder fixes the order best-effort copies run in.
var copyOrder = []string{repositories.NewsletterSubscribersTable, repositories.TripCollaboratorsTable}

func (s UserSyncService) EmailPlan(userID, email string) WritePlan {
	plan := WritePlan{{
		Name:     "profiles.email",
		Required: true,
		Exec: func(ctx context.Context) error {
			return s.Profiles.UpdateEmail(ctx, userID, email)
		},
	}}
	for _, table := range copyOrder {
		w, ok := s.Copies[table]
		if !ok || w == nil {
			continue
		}
		plan = append(plan, WriteOp{
			Name: table + ".email",
			Exec: func(ctx context.Context) error {
				_, err := w.UpdateEmail(ctx, userID, email)
				return err
			},
		})
	}
	return plan
}

func (s UserSyncService) SyncEmail(ctx context.Context, in models.EmailSyncRequest) (WriteResult, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return WriteResult{}, domain.ValidationError{Field: "user_id"}
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return WriteResult{}, domain.ValidationError{Field: "email"}
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return WriteResult{}, domain.ValidationError{Field: "email", Msg: "invalid address"}
	}

	utils.LogEvent(utils.RequestIDFrom(ctx), "user_sync", "email", "user_id="+userID)
	return s.EmailPlan(userID, email).Run(ctx, "user_sync")
}

func (s UserSyncService) UpdateRole(ctx context.Context, in models.RoleUpdateRequest) error {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return domain.ValidationError{Field: "user_id"}
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if !models.ValidRole(role) {
		return domain.ValidationError{Field: "role", Msg: "must be one of user, editor, admin"}
	}

	utils.LogEvent(utils.RequestIDFrom(ctx), "user_sync", "role", "user_id="+userID+" role="+role)
	_, err := WritePlan{{
		Name:     "profiles.role",
		Required: true,
		Exec: func(ctx context.Context) error {
			return s.Profiles.UpdateRole(ctx, userID, role)
		},
	}}.Run(ctx, "user_sync")
	return err
}
