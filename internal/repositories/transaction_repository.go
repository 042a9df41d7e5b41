package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intconfig "travelplanner/internal/config"
	intdb "travelplanner/internal/db"
	"travelplanner/internal/domain"
	"travelplanner/internal/domain/models"
)

// TransactionRepository stores App Store purchases keyed by transaction_id.
type TransactionRepository struct {
	DB     *sql.DB
	Driver string
}

func (r TransactionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const upsertTransactionPostgres = `INSERT INTO app_store_transactions
	(transaction_id, original_transaction_id, user_id, product_id, purchase_date, expires_date, environment, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (transaction_id) DO UPDATE SET
		original_transaction_id = EXCLUDED.original_transaction_id,
		user_id = EXCLUDED.user_id,
		product_id = EXCLUDED.product_id,
		purchase_date = EXCLUDED.purchase_date,
		expires_date = EXCLUDED.expires_date,
		environment = EXCLUDED.environment,
		updated_at = EXCLUDED.updated_at`

const upsertTransactionMySQL = `INSERT INTO app_store_transactions
	(transaction_id, original_transaction_id, user_id, product_id, purchase_date, expires_date, environment, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		original_transaction_id = VALUES(original_transaction_id),
		user_id = VALUES(user_id),
		product_id = VALUES(product_id),
		purchase_date = VALUES(purchase_date),
		expires_date = VALUES(expires_date),
		environment = VALUES(environment),
		updated_at = VALUES(updated_at)`

func (r TransactionRepository) Upsert(ctx context.Context, tx models.AppStoreTransaction) error {
	db := r.db()
	if db == nil {
		return domain.ConfigurationError{Setting: "DATABASE_URL"}
	}

	query := upsertTransactionMySQL
	if intdb.IsPostgres(r.Driver) {
		query = intdb.Rebind(r.Driver, upsertTransactionPostgres)
	}

	_, err := db.ExecContext(ctx, query,
		tx.TransactionID,
		intdb.NullIfEmpty(tx.OriginalTransactionID),
		tx.UserID,
		tx.ProductID,
		nullTime(tx.PurchaseDate),
		nullTime(tx.ExpiresDate),
		intdb.NullIfEmpty(tx.Environment),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert app_store_transactions: %w", err)
	}
	return nil
}

func nullTime(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC()
}
