package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intconfig "travelplanner/internal/config"
	intdb "travelplanner/internal/db"
	"travelplanner/internal/domain"
)

// ProfileRepository writes the authoritative per-user row in profiles.
type ProfileRepository struct {
	DB     *sql.DB
	Driver string
}

func (r ProfileRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ProfileRepository) UpdateEmail(ctx context.Context, userID, email string) error {
	return r.updateColumn(ctx, "email", userID, email)
}

func (r ProfileRepository) UpdateRole(ctx context.Context, userID, role string) error {
	return r.updateColumn(ctx, "role", userID, role)
}

func (r ProfileRepository) UpdateSubscriptionStatus(ctx context.Context, userID, status string) error {
	return r.updateColumn(ctx, "subscription_status", userID, status)
}

// updateColumn touches exactly one profile; zero matched rows is NotFound.
func (r ProfileRepository) updateColumn(ctx context.Context, column, userID string, value any) error {
	n, err := updateByKey(ctx, r.db(), r.Driver, ProfilesTable, column, "id", value, userID, true)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "profile", Err: sql.ErrNoRows}
	}
	return nil
}

// updateByKey runs UPDATE table SET column=? [, updated_at=?] WHERE key=?.
// Table and column names come from code, never from requests.
func updateByKey(ctx context.Context, db *sql.DB, driver, table, column, keyColumn string, value, key any, touch bool) (int64, error) {
	if db == nil {
		return 0, domain.ConfigurationError{Setting: "DATABASE_URL"}
	}

	query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", table, column, keyColumn)
	args := []any{value, key}
	if touch {
		query = fmt.Sprintf("UPDATE %s SET %s = ?, updated_at = ? WHERE %s = ?", table, column, keyColumn)
		args = []any{value, time.Now().UTC(), key}
	}

	res, err := db.ExecContext(ctx, intdb.Rebind(driver, query), args...)
	if err != nil {
		return 0, fmt.Errorf("update %s.%s: %w", table, column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update %s.%s rows affected: %w", table, column, err)
	}
	return n, nil
}
