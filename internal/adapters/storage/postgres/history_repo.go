package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"patient-history/internal/domain/history"

	"github.com/google/uuid"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

const selectHistory = `
	SELECT id, pat_id, patient, creation_date, notes
	FROM histories
`

func (r *HistoryRepo) FindByID(ctx context.Context, id string) (history.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return history.Record{}, history.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectHistory+` WHERE id = $1`, id)

	h, err := scanHistory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return history.Record{}, history.ErrNotFound
		}
		return history.Record{}, err
	}
	return h, nil
}

func (r *HistoryRepo) FindByPatientID(ctx context.Context, patientID int) ([]history.Record, error) {
	return r.list(ctx, selectHistory+` WHERE pat_id = $1 ORDER BY creation_date ASC, id ASC`, patientID)
}

func (r *HistoryRepo) FindAll(ctx context.Context) ([]history.Record, error) {
	return r.list(ctx, selectHistory+` ORDER BY creation_date ASC, id ASC`)
}

// Save hace upsert por id; sin id genera un uuid (el "store" asigna el id al insertar).
func (r *HistoryRepo) Save(ctx context.Context, h history.Record) (history.Record, error) {
	if strings.TrimSpace(h.ID) == "" {
		h.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO histories (id, pat_id, patient, creation_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			pat_id = EXCLUDED.pat_id,
			patient = EXCLUDED.patient,
			creation_date = EXCLUDED.creation_date,
			notes = EXCLUDED.notes
	`,
		h.ID,
		h.PatientID,
		h.PatientName,
		toNullDate(h.CreationDate),
		h.Notes,
	)
	if err != nil {
		return history.Record{}, err
	}
	return h, nil
}

func (r *HistoryRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM histories WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	return deletedOne(res, id)
}

// deletedOne traduce 0 filas afectadas a ErrNotFound.
func deletedOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete history %s: rows affected: %w", id, err)
	}
	if n == 0 {
		return history.ErrNotFound
	}
	return nil
}

func (r *HistoryRepo) list(ctx context.Context, query string, args ...any) ([]history.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Record, 0)
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (history.Record, error) {
	var h history.Record
	var cd sql.NullTime
	if err := row.Scan(
		&h.ID,
		&h.PatientID,
		&h.PatientName,
		&cd,
		&h.Notes,
	); err != nil {
		return history.Record{}, err
	}

	// creation_date es DATE; pgx lo mapea a time.Time midnight UTC
	if cd.Valid {
		h.CreationDate = history.NewDate(cd.Time).Time
	}
	return h, nil
}

func toNullDate(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t, Valid: true}
}
