package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "travelplanner/internal/db"
)

// ProfilesTable and TransactionsTable are written by key; the schema is owned
// by the managed backend.
const (
	ProfilesTable     = "profiles"
	TransactionsTable = "app_store_transactions"
)

// Tables lists every table this service writes.
func Tables() []string {
	return []string{ProfilesTable, NewsletterSubscribersTable, TripCollaboratorsTable, TransactionsTable}
}

// CheckSchema reports which written tables exist.
func CheckSchema(ctx context.Context, db *sql.DB, driver string) (map[string]bool, error) {
	out := make(map[string]bool, len(Tables()))
	for _, table := range Tables() {
		ok, err := intdb.HasTable(ctx, db, driver, table)
		if err != nil {
			return nil, fmt.Errorf("check table %s: %w", table, err)
		}
		out[table] = ok
	}
	return out, nil
}
