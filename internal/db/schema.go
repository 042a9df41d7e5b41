package db

import (
	"context"
	"database/sql"
	"errors"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// HasTable reports whether table exists in the connection's current schema.
func HasTable(ctx context.Context, q QueryRower, driver, table string) (bool, error) {
	query := `SELECT table_name FROM information_schema.tables
		WHERE table_schema = ` + currentSchema(driver) + ` AND table_name = ? LIMIT 1`
	return exists(ctx, q, Rebind(driver, query), table)
}

// HasColumn reports whether table.column exists in the current schema.
func HasColumn(ctx context.Context, q QueryRower, driver, table, column string) (bool, error) {
	query := `SELECT column_name FROM information_schema.columns
		WHERE table_schema = ` + currentSchema(driver) + ` AND table_name = ? AND column_name = ? LIMIT 1`
	return exists(ctx, q, Rebind(driver, query), table, column)
}

func currentSchema(driver string) string {
	if IsPostgres(driver) {
		return "current_schema()"
	}
	return "DATABASE()"
}

func exists(ctx context.Context, q QueryRower, query string, args ...any) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, query, args...).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name.Valid && name.String != "", nil
}
