package repositories

import (
	"context"
	"database/sql"

	intconfig "travelplanner/internal/config"
)

// EmailCopyRepository updates a denormalized email column keyed by user_id.
// Matching zero rows is fine: the user may simply have no row there.
type EmailCopyRepository struct {
	DB     *sql.DB
	Driver string
	Table  string
}

const (
	NewsletterSubscribersTable = "newsletter_subscribers"
	TripCollaboratorsTable     = "trip_collaborators"
)

func (r EmailCopyRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r EmailCopyRepository) UpdateEmail(ctx context.Context, userID, email string) (int64, error) {
	return updateByKey(ctx, r.db(), r.Driver, r.Table, "email", "user_id", email, userID, false)
}
