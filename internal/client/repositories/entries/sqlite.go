package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell-journal/inkwell/internal/client/models"
	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/dbx"
)

// timeLayout is how instants are stored in SQLite. RFC3339Nano round-trips
// exactly and sorts lexicographically for UTC values.
const timeLayout = time.RFC3339Nano

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts or replaces an entry. The row is matched by server id when
// present, otherwise by client id; the unique constraint on client_id makes
// repeated calls with the same entry idempotent.
func (r *SQLiteRepository) Upsert(ctx context.Context, e *models.JournalEntry) error {
	if !e.Synced {
		e.LastModified = time.Now().UTC()
	}

	moods, err := models.EncodeMoods(e.Moods)
	if err != nil {
		return fmt.Errorf("failed to encode moods: %w", err)
	}

	if e.ServerID != nil {
		res, err := r.db.ExecContext(ctx, `
			UPDATE entries
			SET client_id = ?, content = ?, timestamp = ?, moods = ?,
				image_path = ?, synced = ?, last_modified = ?
			WHERE server_id = ?`,
			e.ClientID, e.Content, e.Timestamp.UTC().Format(timeLayout), string(moods),
			nullString(e.ImagePath), boolToInt(e.Synced), e.LastModified.UTC().Format(timeLayout),
			*e.ServerID)
		if err != nil {
			return fmt.Errorf("failed to update entry by server id: %w", err)
		}
		if ra, err := res.RowsAffected(); err == nil && ra > 0 {
			return nil
		}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO entries (client_id, server_id, content, timestamp, moods, image_path, synced, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			server_id     = excluded.server_id,
			content       = excluded.content,
			timestamp     = excluded.timestamp,
			moods         = excluded.moods,
			image_path    = excluded.image_path,
			synced        = excluded.synced,
			last_modified = excluded.last_modified`,
		e.ClientID, nullInt64(e.ServerID), e.Content, e.Timestamp.UTC().Format(timeLayout),
		string(moods), nullString(e.ImagePath), boolToInt(e.Synced), e.LastModified.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

const selectColumns = `client_id, server_id, content, timestamp, moods, image_path, synced, last_modified`

// ListUnsynced returns the entries awaiting upload.
func (r *SQLiteRepository) ListUnsynced(ctx context.Context) ([]*models.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM entries WHERE synced = 0 ORDER BY timestamp`)
	if err != nil {
		return nil, fmt.Errorf("failed to select unsynced entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// MarkSynced flags the entry as synced and records its server id.
// No matching row is not an error.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, clientID string, serverID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE entries SET synced = 1, server_id = ? WHERE client_id = ?`,
		serverID, clientID)
	if err != nil {
		return fmt.Errorf("failed to mark entry synced: %w", err)
	}
	return nil
}

// GetByClientID returns a single entry by client id.
func (r *SQLiteRepository) GetByClientID(ctx context.Context, clientID string) (*models.JournalEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM entries WHERE client_id = ?`, clientID)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// ListRecent returns the newest entries first, using the timestamp index.
func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]*models.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM entries ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select recent entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// DeleteByServerID removes an entry by server id; missing rows are a no-op.
func (r *SQLiteRepository) DeleteByServerID(ctx context.Context, serverID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE server_id = ?`, serverID)
	if err != nil {
		return fmt.Errorf("failed to delete entry by server id: %w", err)
	}
	return nil
}

// DeleteByClientID removes an entry by client id; missing rows are a no-op.
func (r *SQLiteRepository) DeleteByClientID(ctx context.Context, clientID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE client_id = ?`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete entry by client id: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.JournalEntry, error) {
	var (
		e         models.JournalEntry
		serverID  sql.NullInt64
		ts        string
		moods     string
		imagePath sql.NullString
		synced    int
		modified  string
	)

	if err := row.Scan(&e.ClientID, &serverID, &e.Content, &ts, &moods, &imagePath, &synced, &modified); err != nil {
		return nil, err
	}

	if serverID.Valid {
		e.ServerID = &serverID.Int64
	}
	if imagePath.Valid {
		e.ImagePath = imagePath.String
	}
	e.Synced = synced != 0

	var err error
	if e.Timestamp, err = time.Parse(timeLayout, ts); err != nil {
		return nil, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	if e.LastModified, err = time.Parse(timeLayout, modified); err != nil {
		return nil, fmt.Errorf("failed to parse last_modified: %w", err)
	}
	if e.Moods, err = models.DecodeMoods([]byte(moods)); err != nil {
		return nil, fmt.Errorf("failed to decode moods: %w", err)
	}

	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]*models.JournalEntry, error) {
	var result []*models.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
