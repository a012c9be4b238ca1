package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/server/models"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const entryColumns = `id, user_id, client_id, content, timestamp, moods, image_path, last_modified`

func (r *PostgresRepository) GetByClientID(ctx context.Context, userID int64, clientID string) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1 AND client_id = $2`

	entry := &models.Entry{}
	err := r.db.GetContext(ctx, entry, query, userID, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, entry *models.Entry) (int64, error) {
	query := `INSERT INTO entries (user_id, client_id, content, timestamp, moods, image_path, last_modified)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		entry.UserID, entry.ClientID, entry.Content, entry.Timestamp,
		entry.Moods, entry.ImagePath, entry.LastModified).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) Update(ctx context.Context, entry *models.Entry) error {
	query := `UPDATE entries
	          SET content = $1, timestamp = $2, moods = $3, image_path = $4, last_modified = $5
	          WHERE id = $6 AND user_id = $7`

	res, err := r.db.ExecContext(ctx, query,
		entry.Content, entry.Timestamp, entry.Moods, entry.ImagePath,
		entry.LastModified, entry.ID, entry.UserID)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ListModifiedSince(ctx context.Context, userID int64, since *time.Time) ([]*models.Entry, error) {
	var (
		rows []*models.Entry
		err  error
	)
	if since == nil {
		query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1 ORDER BY last_modified`
		err = r.db.SelectContext(ctx, &rows, query, userID)
	} else {
		query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1 AND last_modified > $2 ORDER BY last_modified`
		err = r.db.SelectContext(ctx, &rows, query, userID, *since)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return rows, nil
}

func (r *PostgresRepository) ListRecent(ctx context.Context, userID int64, start, end *time.Time, limit int) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1`
	args := []any{userID}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND timestamp <= $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d", len(args))

	var rows []*models.Entry
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return rows, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
