package file

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
	"editmarket/internal/infrastructure/mysql"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

const fileColumns = `id, orderId, uploaderId, role, filename, storageKey, size, mimeType, uploadedAt, confirmedAt`

func (r *MySQLRepository) Create(ctx context.Context, f *domain.FileUpload) (uint, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO FileUploads (orderId, uploaderId, role, filename, storageKey, size, mimeType)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.OrderID, f.UploaderID, string(f.Role), f.Filename, f.Key, f.Size, f.MimeType,
	)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewConflictError("storage key already in use")
		}
		return 0, fmt.Errorf("inserting file upload: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted file id: %w", err)
	}
	return uint(id), nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id uint) (*domain.FileUpload, error) {
	f, err := scanFile(r.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM FileUploads WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("file with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying file by id: %w", err)
	}
	return f, nil
}

func (r *MySQLRepository) ListByOrder(ctx context.Context, orderID uint) ([]domain.FileUpload, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+fileColumns+` FROM FileUploads WHERE orderId = ? ORDER BY uploadedAt ASC, id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying files for order %d: %w", orderID, err)
	}
	defer rows.Close()

	files := []domain.FileUpload{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		files = append(files, *f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating file rows: %w", err)
	}
	return files, nil
}

// Confirm back-fills the size observed in storage. Repeating it rewrites the same
// values.
func (r *MySQLRepository) Confirm(ctx context.Context, id uint, size int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE FileUploads SET size = ?, confirmedAt = ? WHERE id = ?`, size, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("confirming file %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	// MySQL reports 0 affected rows when the values are unchanged, so only a
	// missing row is an error.
	if n == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// AttachSourceFiles links staged source uploads owned by uploaderID to orderID
// through q and returns how many rows were attached. Files already attached or
// owned by someone else are not touched.
func (r *MySQLRepository) AttachSourceFiles(ctx context.Context, q mysql.DBTX, orderID, uploaderID uint, fileIDs []uint) (int64, error) {
	if len(fileIDs) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(fileIDs))
	args := make([]any, 0, len(fileIDs)+3)
	args = append(args, orderID)
	for i, id := range fileIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, uploaderID, string(domain.FileRoleSource))

	query := fmt.Sprintf(`
		UPDATE FileUploads
		SET orderId = ?
		WHERE id IN (%s)
		  AND uploaderId = ?
		  AND role = ?
		  AND orderId IS NULL`,
		strings.Join(placeholders, ", "),
	)

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("attaching source files to order %d: %w", orderID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*domain.FileUpload, error) {
	var (
		f         domain.FileUpload
		orderID   sql.NullInt64
		role      string
		confirmed sql.NullTime
	)

	err := row.Scan(&f.ID, &orderID, &f.UploaderID, &role, &f.Filename, &f.Key, &f.Size, &f.MimeType, &f.UploadedAt, &confirmed)
	if err != nil {
		return nil, err
	}

	if f.Role, err = domain.ParseFileRole(role); err != nil {
		return nil, fmt.Errorf("file %d: %w", f.ID, err)
	}
	if orderID.Valid {
		id := uint(orderID.Int64)
		f.OrderID = &id
	}
	if confirmed.Valid {
		f.ConfirmedAt = &confirmed.Time
	}
	return &f, nil
}
