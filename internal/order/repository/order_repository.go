package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
	"editmarket/internal/infrastructure/mysql"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, userId, freelancerId, title, description, requirements, videoUrl,
	price, deadline, status, createdAt, updatedAt`

// Insert writes a new order through q, which is normally the creating transaction.
func (r *MySQLOrderRepository) Insert(ctx context.Context, q mysql.DBTX, o *domain.Order) (uint, error) {
	query := `
		INSERT INTO Orders (userId, title, description, requirements, videoUrl, price, deadline, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := q.ExecContext(ctx, query,
		o.ClientID, o.Title, o.Description, o.Requirements, o.VideoURL, o.Price, o.Deadline.UTC(), string(o.Status),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted order id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE id = ?`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

// Claim assigns the order to freelancerID if and only if it is still PENDING and
// unassigned. The precondition lives in the WHERE clause so concurrent claims
// cannot both succeed; false means the guard did not match.
func (r *MySQLOrderRepository) Claim(ctx context.Context, orderID, freelancerID uint) (bool, error) {
	query := `
		UPDATE Orders
		SET status = ?, freelancerId = ?
		WHERE id = ? AND status = ? AND freelancerId IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		string(domain.OrderStatusClaimed), freelancerID, orderID, string(domain.OrderStatusPending),
	)
	if err != nil {
		return false, fmt.Errorf("claiming order %d: %w", orderID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *MySQLOrderRepository) ListByClient(ctx context.Context, clientID uint) ([]domain.Order, error) {
	return r.list(ctx, `WHERE userId = ? ORDER BY createdAt DESC, id DESC`, clientID)
}

func (r *MySQLOrderRepository) ListByFreelancer(ctx context.Context, freelancerID uint) ([]domain.Order, error) {
	return r.list(ctx, `WHERE freelancerId = ? ORDER BY updatedAt DESC, id DESC`, freelancerID)
}

func (r *MySQLOrderRepository) ListAvailable(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `WHERE status = ? AND freelancerId IS NULL ORDER BY createdAt DESC, id DESC`, string(domain.OrderStatusPending))
}

func (r *MySQLOrderRepository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.list(ctx, `ORDER BY createdAt DESC, id DESC LIMIT ?`, limit)
}

func (r *MySQLOrderRepository) list(ctx context.Context, clause string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM Orders `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o            domain.Order
		freelancerID sql.NullInt64
		requirements sql.NullString
		videoURL     sql.NullString
		status       string
	)

	err := row.Scan(
		&o.ID, &o.ClientID, &freelancerID, &o.Title, &o.Description, &requirements, &videoURL,
		&o.Price, &o.Deadline, &status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Status = domain.OrderStatus(status)
	if err := o.Status.Validate(); err != nil {
		return nil, fmt.Errorf("order %d: %w", o.ID, err)
	}
	if freelancerID.Valid {
		id := uint(freelancerID.Int64)
		o.FreelancerID = &id
	}
	if requirements.Valid {
		o.Requirements = &requirements.String
	}
	if videoURL.Valid {
		o.VideoURL = &videoURL.String
	}

	return &o, nil
}
