package account

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

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

const userColumns = `id, name, email, passwordHash, image, role, bio, skills, hourlyRate, isAvailable, createdAt, updatedAt`

func (r *MySQLRepository) Create(ctx context.Context, u *domain.User) (uint, error) {
	skills, err := encodeSkills(u.Skills)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO Users (name, email, passwordHash, image, role, bio, skills, hourlyRate, isAvailable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.Image, u.Role.String(), u.Bio, skills, u.HourlyRate, u.IsAvailable,
	)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewConflictError("email is already registered")
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading user id: %w", err)
	}
	return uint(id), nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM Users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user %d: %w", id, err)
	}
	return u, nil
}

func (r *MySQLRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM Users WHERE email = ?`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	return u, nil
}

// PromoteToFreelancer applies the profile only while the user is still a
// CUSTOMER, including rows stored under the legacy USER name. It reports
// whether a row changed; callers re-read to learn why not.
func (r *MySQLRepository) PromoteToFreelancer(ctx context.Context, userID uint, profile domain.FreelancerProfile) (bool, error) {
	skills, err := encodeSkills(profile.Skills)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE Users
		SET role = 'FREELANCER', bio = ?, skills = ?, hourlyRate = ?, isAvailable = 1
		WHERE id = ? AND role IN ('CUSTOMER', 'USER')`,
		profile.Bio, skills, profile.HourlyRate, userID,
	)
	if err != nil {
		return false, fmt.Errorf("promoting user %d: %w", userID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *MySQLRepository) ListAvailableFreelancers(ctx context.Context) ([]domain.FreelancerSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.image, u.bio, u.skills, u.hourlyRate, AVG(rv.rating), COUNT(rv.id)
		FROM Users u
		LEFT JOIN Reviews rv ON rv.freelancerId = u.id
		WHERE u.role = 'FREELANCER' AND u.isAvailable = 1
		GROUP BY u.id
		ORDER BY u.createdAt DESC, u.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying freelancers: %w", err)
	}
	defer rows.Close()

	freelancers := []domain.FreelancerSummary{}
	for rows.Next() {
		var (
			f      domain.FreelancerSummary
			image  sql.NullString
			bio    sql.NullString
			skills sql.NullString
			rate   sql.NullFloat64
			avg    sql.NullFloat64
		)
		if err := rows.Scan(&f.ID, &f.Name, &image, &bio, &skills, &rate, &avg, &f.ReviewCount); err != nil {
			return nil, fmt.Errorf("scanning freelancer row: %w", err)
		}
		f.Image = nullString(image)
		f.Bio = nullString(bio)
		f.HourlyRate = nullFloat(rate)
		f.AverageRating = nullFloat(avg)
		if f.Skills, err = decodeSkills(skills); err != nil {
			return nil, err
		}
		freelancers = append(freelancers, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating freelancer rows: %w", err)
	}
	return freelancers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u        domain.User
		password sql.NullString
		image    sql.NullString
		role     string
		bio      sql.NullString
		skills   sql.NullString
		rate     sql.NullFloat64
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &password, &image, &role, &bio, &skills, &rate, &u.IsAvailable, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if u.Role, err = domain.ParseRole(role); err != nil {
		return nil, fmt.Errorf("user %d: %w", u.ID, err)
	}
	if u.Skills, err = decodeSkills(skills); err != nil {
		return nil, err
	}
	u.PasswordHash = nullString(password)
	u.Image = nullString(image)
	u.Bio = nullString(bio)
	u.HourlyRate = nullFloat(rate)

	return &u, nil
}

func encodeSkills(skills []string) (*string, error) {
	if skills == nil {
		return nil, nil
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("encoding skills: %w", err)
	}
	s := string(b)
	return &s, nil
}

func decodeSkills(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var skills []string
	if err := json.Unmarshal([]byte(raw.String), &skills); err != nil {
		return nil, fmt.Errorf("decoding skills: %w", err)
	}
	return skills, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}
