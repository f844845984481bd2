package repository

import (
	"context"

	"github.com/doondisunkara/messy-migration/internal/entity"
	"github.com/doondisunkara/messy-migration/internal/errs"
	"github.com/doondisunkara/messy-migration/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository performs all database operations on the users table.
//
// Methods return *errs.Error values: driver errors are translated through
// sqlerr so callers never see SQLSTATE codes or pgx sentinels. Not-found
// results carry the generic "User Not Found" message; callers reword it
// per endpoint where the contract requires.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository on the shared pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash`

// List returns all users ordered by id, i.e. insertion order.
func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// GetByID returns the user with the given id, or a not-found error.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user owning the given email, or a not-found error.
// Callers are expected to pass an already normalized (lowercased) email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// SearchByName returns all users whose name contains fragment.
// The match uses ILIKE, so it is case-insensitive, matching the substring
// semantics of the platform this API replaces.
func (r *UserRepository) SearchByName(ctx context.Context, fragment string) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE name ILIKE '%' || $1 || '%' ORDER BY id`,
		fragment,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Insert stores a new user and returns the assigned id. A concurrent insert
// of the same email loses the race at the unique constraint and comes back
// as a conflict error.
func (r *UserRepository) Insert(ctx context.Context, name, email, passwordHash string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return 0, sqlerr.HandleError(err)
	}

	return id, nil
}

// Update replaces name and email of the user with the given id.
// It reports not-found when no row matches and conflict when another
// record already owns the target email.
func (r *UserRepository) Update(ctx context.Context, id int64, name, email string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $1, email = $2 WHERE id = $3`,
		name, email, id,
	)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("User Not Found")
	}

	return nil
}

// Delete removes the user with the given id, reporting not-found when no
// row matches.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("User Not Found")
	}

	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	user := &entity.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return user, nil
}

func scanUsers(rows pgx.Rows) ([]entity.User, error) {
	users := []entity.User{}
	for rows.Next() {
		var user entity.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return users, nil
}
