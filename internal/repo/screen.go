// Package repo holds the Postgres access code for screens.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/myfriendben/screener/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ScreenRepo defines the persistence operations for screens.
type ScreenRepo interface {
	// Create inserts a screen and returns it with the DB-generated uuid and
	// timestamps populated. An empty referrer or locale is stored as NULL.
	Create(ctx context.Context, s domain.Screen) (domain.Screen, error)

	// GetByID returns domain.ErrNotFound if no screen has that uuid.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Screen, error)

	// CountByWhiteLabel returns the number of screens per white label.
	CountByWhiteLabel(ctx context.Context) (map[string]int64, error)
}

type pgScreenRepo struct {
	db db
}

// NewScreenRepo constructs a ScreenRepo. In production pass *pgxpool.Pool;
// in tests pass a pgx.Tx.
func NewScreenRepo(db db) ScreenRepo {
	return &pgScreenRepo{db: db}
}

const screenColumns = `uuid, white_label, referrer, locale, created_at, updated_at`

func (r *pgScreenRepo) Create(ctx context.Context, s domain.Screen) (domain.Screen, error) {
	const q = `
		INSERT INTO screens (white_label, referrer, locale)
		VALUES (@white_label, @referrer, @locale)
		RETURNING ` + screenColumns

	args := pgx.NamedArgs{
		"white_label": s.WhiteLabel,
		"referrer":    nullText(s.Referrer),
		"locale":      nullText(s.Locale),
	}

	got, err := scanScreen(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Screen{}, fmt.Errorf("repo.ScreenRepo.Create: %w", err)
	}
	return got, nil
}

func (r *pgScreenRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Screen, error) {
	const q = `SELECT ` + screenColumns + ` FROM screens WHERE uuid = @uuid`

	got, err := scanScreen(r.db.QueryRow(ctx, q, pgx.NamedArgs{"uuid": id}))
	if err != nil {
		return domain.Screen{}, fmt.Errorf("repo.ScreenRepo.GetByID: %w", err)
	}
	return got, nil
}

func (r *pgScreenRepo) CountByWhiteLabel(ctx context.Context) (map[string]int64, error) {
	const q = `SELECT white_label, count(*) FROM screens GROUP BY white_label`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ScreenRepo.CountByWhiteLabel: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			wl string
			n  int64
		)
		if err := rows.Scan(&wl, &n); err != nil {
			return nil, fmt.Errorf("repo.ScreenRepo.CountByWhiteLabel: scan: %w", err)
		}
		counts[wl] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ScreenRepo.CountByWhiteLabel: rows: %w", err)
	}
	return counts, nil
}

func nullText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// scanScreen maps one row into a domain.Screen, translating pgx.ErrNoRows.
func scanScreen(row pgx.Row) (domain.Screen, error) {
	var (
		s        domain.Screen
		id       pgtype.UUID
		referrer pgtype.Text
		locale   pgtype.Text
	)
	err := row.Scan(&id, &s.WhiteLabel, &referrer, &locale, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Screen{}, domain.ErrNotFound
		}
		return domain.Screen{}, err
	}
	s.UUID = uuid.UUID(id.Bytes)
	s.Referrer = referrer.String
	s.Locale = locale.String
	return s, nil
}
