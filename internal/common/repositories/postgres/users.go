package postgres

import (
	"context"
	"errors"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
	"github.com/CaboRojo/stockfolio/internal/common/domain"
	"github.com/CaboRojo/stockfolio/pkg/errs"
	"github.com/CaboRojo/stockfolio/pkg/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const uniqueViolationCode = "23505"

type usersRepository struct {
	psql *pgxpool.Pool
}

func NewUsersRepository(pool *pgxpool.Pool) domain.UsersRepository {
	return &usersRepository{
		psql: pool,
	}
}

// CreateUserWithPortfolio inserts the user row and its empty portfolio
// in one transaction, so a user can never exist without a portfolio.
func (ur *usersRepository) CreateUserWithPortfolio(ctx context.Context, user *domain.User) (*domain.User, error) {
	tx, err := ur.psql.Begin(ctx)
	if err != nil {
		return nil, errs.NewStack(err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error("failed to rollback transaction", zap.Error(err))
		}
	}()

	query := `INSERT INTO stockfolio.users(name, hashed_password)
		VALUES ($1, $2)
		RETURNING id, created_at`
	created := &User{
		Name:           user.Name,
		HashedPassword: user.HashedPassword,
	}
	if err := tx.QueryRow(ctx, query, user.Name, user.HashedPassword).Scan(
		&created.ID,
		&created.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrs.ErrNameTaken
		}

		return nil, errs.NewStack(err)
	}

	query = `INSERT INTO stockfolio.portfolios(user_id, total_value, total_roi)
		VALUES ($1, 0, 0)`
	if _, err := tx.Exec(ctx, query, created.ID); err != nil {
		return nil, errs.NewStack(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.NewStack(err)
	}

	return created.CreateDomain(), nil
}

func (ur *usersRepository) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	query := `SELECT
			id,
			name,
			hashed_password,
			created_at
		FROM stockfolio.users WHERE name = $1`
	user := &User{}
	if err := ur.psql.QueryRow(ctx, query, name).Scan(
		&user.ID,
		&user.Name,
		&user.HashedPassword,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrs.ErrUserNotFound
		}

		return nil, errs.NewStack(err)
	}

	return user.CreateDomain(), nil
}

func (ur *usersRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT
			id,
			name,
			hashed_password,
			created_at
		FROM stockfolio.users WHERE id = $1`
	user := &User{}
	if err := ur.psql.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.HashedPassword,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrs.ErrUserNotFound
		}

		return nil, errs.NewStack(err)
	}

	return user.CreateDomain(), nil
}
