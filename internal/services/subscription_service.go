package services

import (
	"context"
	"strings"
	"time"

	"travelplanner/internal/domain"
	"travelplanner/internal/domain/models"
	"travelplanner/internal/utils"
)

type TransactionWriter interface {
	Upsert(ctx context.Context, tx models.AppStoreTransaction) error
}

// SubscriptionService records App Store purchases and mirrors the resulting
// status onto the profile.
type SubscriptionService struct {
	Transactions TransactionWriter
	Profiles     ProfileWriter
	Now          func() time.Time
}

func (s SubscriptionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// StatusFor is active until expires, or indefinitely for non-expiring products.
func StatusFor(expires *time.Time, now time.Time) string {
	if expires == nil || expires.IsZero() || expires.After(now) {
		return models.SubscriptionActive
	}
	return models.SubscriptionExpired
}

func (s SubscriptionService) Record(ctx context.Context, tx models.AppStoreTransaction) (string, WriteResult, error) {
	tx.UserID = strings.TrimSpace(tx.UserID)
	tx.TransactionID = strings.TrimSpace(tx.TransactionID)
	tx.ProductID = strings.TrimSpace(tx.ProductID)
	tx.OriginalTransactionID = strings.TrimSpace(tx.OriginalTransactionID)
	switch {
	case tx.UserID == "":
		return "", WriteResult{}, domain.ValidationError{Field: "user_id"}
	case tx.TransactionID == "":
		return "", WriteResult{}, domain.ValidationError{Field: "transaction_id"}
	case tx.ProductID == "":
		return "", WriteResult{}, domain.ValidationError{Field: "product_id"}
	}
	if tx.OriginalTransactionID == "" {
		tx.OriginalTransactionID = tx.TransactionID
	}

	status := StatusFor(tx.ExpiresDate, s.now())
	plan := WritePlan{
		{
			Name:     "app_store_transactions.upsert",
			Required: true,
			Exec: func(ctx context.Context) error {
				return s.Transactions.Upsert(ctx, tx)
			},
		},
		{
			Name: "profiles.subscription_status",
			Exec: func(ctx context.Context) error {
				return s.Profiles.UpdateSubscriptionStatus(ctx, tx.UserID, status)
			},
		},
	}

	utils.LogEvent(utils.RequestIDFrom(ctx), "subscription", "record", "transaction_id="+tx.TransactionID+" status="+status)
	res, err := plan.Run(ctx, "subscription")
	if err != nil {
		return "", res, err
	}
	return status, res, nil
}
