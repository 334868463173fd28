package repositories

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	protocols "github.com/kaapihouse/kaapi/protocols"
)

// BookingRepositoryPostgres stores bookings in a relational table. It owns
// schema bootstrap so the service can start against an empty cluster.
type BookingRepositoryPostgres struct {
	db *sql.DB
}

func NewBookingRepositoryPostgres(db *sql.DB) *BookingRepositoryPostgres {
	return &BookingRepositoryPostgres{db: db}
}

// DSN builds a lib/pq connection string for the given database.
func DSN(host string, port int, user, password, database string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, database)
}

// EnsureDatabase creates the target database when missing, connecting to the
// maintenance database to do so. CREATE DATABASE cannot run inside a
// transaction, hence the plain Exec.
func EnsureDatabase(ctx context.Context, host string, port int, user, password, database string) error {
	admin, err := sql.Open("postgres", DSN(host, port, user, password, "postgres"))
	if err != nil {
		return fmt.Errorf("open admin connection: %w", err)
	}
	defer admin.Close()

	var exists int
	err = admin.QueryRowContext(ctx, "SELECT 1 FROM pg_database WHERE datname = $1", database).Scan(&exists)
	if err == sql.ErrNoRows {
		if _, err := admin.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %q", database)); err != nil {
			return fmt.Errorf("create database: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("check database: %w", err)
	}
	return nil
}

// EnsureSchema creates the bookings table when missing and renames the old
// date column to time when a previous deployment left it behind.
func (r *BookingRepositoryPostgres) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS bookings (
			id SERIAL PRIMARY KEY,
			customer_name VARCHAR(100),
			drink_name VARCHAR(100),
			price NUMERIC(10,2),
			time TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_name = 'bookings'`)
	if err != nil {
		return fmt.Errorf("inspect columns: %w", err)
	}
	defer rows.Close()

	hasDate, hasTime := false, false
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return fmt.Errorf("scan column: %w", err)
		}
		switch col {
		case "date":
			hasDate = true
		case "time":
			hasTime = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if hasDate && !hasTime {
		if _, err := r.db.ExecContext(ctx, `ALTER TABLE bookings RENAME COLUMN date TO time`); err != nil {
			return fmt.Errorf("rename column: %w", err)
		}
	}
	return nil
}

// List returns every booking, newest first, matching the order the client
// cache displays.
func (r *BookingRepositoryPostgres) List(ctx context.Context) ([]protocols.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, drink_name, price, time
		FROM bookings ORDER BY time DESC`)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []protocols.Booking{}
	for rows.Next() {
		var b protocols.Booking
		if err := rows.Scan(&b.ID, &b.CustomerName, &b.DrinkName, &b.Price, &b.Time); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepositoryPostgres) Insert(ctx context.Context, input protocols.CreateBookingInput) (*protocols.Booking, error) {
	var b protocols.Booking
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO bookings (customer_name, drink_name, price)
		VALUES ($1, $2, $3)
		RETURNING id, customer_name, drink_name, price, time`,
		input.CustomerName, input.DrinkName, input.Price,
	).Scan(&b.ID, &b.CustomerName, &b.DrinkName, &b.Price, &b.Time)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return &b, nil
}
