package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.first_name, u.last_name, u.email, u.password_hash, u.role,
	u.department_id, u.job_title_id, u.manager_id, u.is_active,
	u.created_at, u.updated_at,
	d.name AS department_name, jt.name AS job_title_name
`

const userJoins = `
	FROM users u
	LEFT JOIN departments d ON u.department_id = d.id
	LEFT JOIN job_titles jt ON u.job_title_id = jt.id
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.DepartmentID,
		&u.JobTitleID,
		&u.ManagerID,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DepartmentName,
		&u.JobTitleName,
	)
	return u, err
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + userJoins + ` WHERE LOWER(u.email) = LOWER($1)`

	return scanUser(q.QueryRow(ctx, query, email))
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + userJoins + ` WHERE u.id = $1`

	return scanUser(q.QueryRow(ctx, query, id))
}

// LockByID implements user.UserRepository.
func (r *userRepositoryImpl) LockByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + userJoins + ` WHERE u.id = $1 FOR UPDATE OF u`

	return scanUser(q.QueryRow(ctx, query, id))
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, first_name, last_name, email, password_hash, role,
			department_id, job_title_id, manager_id, is_active,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newUser.FirstName, newUser.LastName, newUser.Email, newUser.PasswordHash, newUser.Role,
		newUser.DepartmentID, newUser.JobTitleID, newUser.ManagerID, newUser.IsActive,
	).Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		if isForeignKeyViolation(err) {
			return user.User{}, user.ErrReferenceNotFound
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, role = $4,
			department_id = $5, job_title_id = $6, manager_id = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		u.FirstName, u.LastName, u.Email, u.Role,
		u.DepartmentID, u.JobTitleID, u.ManagerID, u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		if isForeignKeyViolation(err) {
			return user.User{}, user.ErrReferenceNotFound
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return r.GetByID(ctx, u.ID)
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetActive implements user.UserRepository.
func (r *userRepositoryImpl) SetActive(ctx context.Context, userID string, active bool) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, userID)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIndex := 1

	if !filter.IncludeInactive {
		conditions = append(conditions, "u.is_active = TRUE")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR u.email ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("u.department_id = $%d", argIndex))
		args = append(args, filter.DepartmentID)
		argIndex++
	}
	if filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("u.role = $%d", argIndex))
		args = append(args, filter.Role)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT ` + userColumns + userJoins + whereClause +
		fmt.Sprintf(" ORDER BY u.last_name ASC, u.first_name ASC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	users, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListByManager implements user.UserRepository. Inactive users are skipped.
func (r *userRepositoryImpl) ListByManager(ctx context.Context, managerID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + userJoins + `
		WHERE u.manager_id = $1 AND u.is_active = TRUE
		ORDER BY u.last_name ASC, u.first_name ASC`

	return r.query(ctx, q, query, managerID)
}

func (r *userRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]user.User, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}
