package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

// PgxStore is the durable Store backend. One row per reservation; the
// partial unique index on (party_id) WHERE status = 'active' backs the
// one-active-per-party invariant at the schema level.
type PgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const reservationColumns = "id, party_id, name, phone, date, slot_label, party_size, status, created_at, updated_at"

func (s *PgxStore) Create(ctx context.Context, r *Reservation) error {
	query, args, err := psql.Insert("public.reservations").
		Columns("id", "party_id", "name", "phone", "date", "slot_label", "party_size", "status").
		Values(r.ID, r.PartyID, r.Name, r.Phone, r.Date.At(schedule.Clock{}), r.SlotLabel, r.PartySize, r.Status).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := s.pool.QueryRow(ctx, query, args...).Scan(&r.CreatedAt, &r.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrActiveExists
		}
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

func (s *PgxStore) ActiveByParty(ctx context.Context, partyID string) (*Reservation, error) {
	query, args, err := psql.Select(reservationColumns).
		From("public.reservations").
		Where(squirrel.Eq{"party_id": partyID, "status": StatusActive}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active reservation query failed: %w", err)
	}

	r, err := scanReservation(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get active reservation failed: %w", err)
	}
	return r, nil
}

func (s *PgxStore) ActiveOnDate(ctx context.Context, date schedule.Date) ([]*Reservation, error) {
	query, args, err := psql.Select(reservationColumns).
		From("public.reservations").
		Where(squirrel.Eq{"date": date.At(schedule.Clock{}), "status": StatusActive}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active-on-date query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active reservations failed: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (s *PgxStore) SetStatus(ctx context.Context, id string, status Status) error {
	query, args, err := psql.Update("public.reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set status query failed: %w", err)
	}

	ct, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set reservation status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgxStore) HistoryByParty(ctx context.Context, partyID string) ([]*Reservation, error) {
	query, args, err := psql.Select(reservationColumns).
		From("public.reservations").
		Where(squirrel.Eq{"party_id": partyID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history failed: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var r Reservation
	var date time.Time
	if err := row.Scan(
		&r.ID, &r.PartyID, &r.Name, &r.Phone, &date, &r.SlotLabel,
		&r.PartySize, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.Date = schedule.DateOf(date)
	return &r, nil
}

func collectReservations(rows pgx.Rows) ([]*Reservation, error) {
	var out []*Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
