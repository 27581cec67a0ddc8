package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nsubra/account-ledger/internal/apperrors"
	"github.com/nsubra/account-ledger/internal/core/domain"
	"github.com/nsubra/account-ledger/internal/core/ports"
	"github.com/nsubra/account-ledger/internal/models"
)

const pgUniqueViolation = "23505"

// PgxMovementStore persists accounts and movements in PostgreSQL. The atomic
// commit contract is met with a single database transaction whose account
// write is conditioned on the stored version.
type PgxMovementStore struct {
	BaseRepository
}

// NewMovementStore creates a new store backed by the given pool.
func NewMovementStore(pool *pgxpool.Pool) *PgxMovementStore {
	return &PgxMovementStore{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMovementStore implements ports.MovementStore
var _ ports.MovementStore = (*PgxMovementStore)(nil)

func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountNumber: d.AccountNumber,
		ProductNumber: d.ProductNumber,
		CurrencyCode:  d.CurrencyCode,
		Balance:       d.Balance,
		City:          d.Address.City,
		State:         d.Address.State,
		Country:       d.Address.Country,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountKey: domain.AccountKey{
			AccountNumber: m.AccountNumber,
			ProductNumber: m.ProductNumber,
			CurrencyCode:  m.CurrencyCode,
		},
		Balance:       m.Balance,
		Address:       domain.Address{City: m.City, State: m.State, Country: m.Country},
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

func toModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:    d.MovementID,
		RequestID:     d.RequestID,
		Channel:       d.Channel,
		AccountNumber: d.AccountNumber,
		ProductNumber: d.ProductNumber,
		CurrencyCode:  d.CurrencyCode,
		Amount:        d.Amount,
		Direction:     string(d.Direction),
		CreatedAt:     d.CreatedAt,
	}
}

func toDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID: m.MovementID,
		RequestID:  m.RequestID,
		Channel:    m.Channel,
		AccountKey: domain.AccountKey{
			AccountNumber: m.AccountNumber,
			ProductNumber: m.ProductNumber,
			CurrencyCode:  m.CurrencyCode,
		},
		Amount:    m.Amount,
		Direction: domain.Direction(m.Direction),
		CreatedAt: m.CreatedAt,
	}
}

// FindAccount retrieves an account by its composite identity.
func (r *PgxMovementStore) FindAccount(ctx context.Context, key domain.AccountKey) (*domain.Account, error) {
	query := `
		SELECT account_number, product_number, currency_code, balance, city, state, country, version, created_at, last_updated_at
		FROM accounts
		WHERE account_number = $1 AND product_number = $2 AND currency_code = $3;
	`
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, key.AccountNumber, key.ProductNumber, key.CurrencyCode).Scan(
		&m.AccountNumber,
		&m.ProductNumber,
		&m.CurrencyCode,
		&m.Balance,
		&m.City,
		&m.State,
		&m.Country,
		&m.Version,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s/%s/%s: %w", key.AccountNumber, key.ProductNumber, key.CurrencyCode, err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// FindMovementByRequestID retrieves the earliest committed movement carrying
// the given request identifier.
func (r *PgxMovementStore) FindMovementByRequestID(ctx context.Context, requestID string) (*domain.Movement, error) {
	query := `
		SELECT movement_id, request_id, channel, account_number, product_number, currency_code, amount, direction, created_at
		FROM movements
		WHERE request_id = $1
		ORDER BY created_at
		LIMIT 1;
	`
	var m models.Movement
	err := r.Pool.QueryRow(ctx, query, requestID).Scan(
		&m.MovementID,
		&m.RequestID,
		&m.Channel,
		&m.AccountNumber,
		&m.ProductNumber,
		&m.CurrencyCode,
		&m.Amount,
		&m.Direction,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movement for request %s: %w", requestID, err)
	}
	mov := toDomainMovement(m)
	return &mov, nil
}

// CommitMovement inserts the movement and writes the account in one database
// transaction. For an existing account the update is conditioned on the
// stored version still matching expectedVersion; zero affected rows means a
// concurrent writer got there first and the whole transaction rolls back.
// For a new account (expectedVersion 0) the insert's unique composite key
// plays the same role: a concurrent creator surfaces as a unique violation.
func (r *PgxMovementStore) CommitMovement(ctx context.Context, movement domain.Movement, account domain.Account, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelMov := toModelMovement(movement)
	movementQuery := `
		INSERT INTO movements (movement_id, request_id, channel, account_number, product_number, currency_code, amount, direction, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, movementQuery,
		modelMov.MovementID,
		modelMov.RequestID,
		modelMov.Channel,
		modelMov.AccountNumber,
		modelMov.ProductNumber,
		modelMov.CurrencyCode,
		modelMov.Amount,
		modelMov.Direction,
		modelMov.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: movement %s already exists", apperrors.ErrDuplicate, modelMov.MovementID)
		}
		return fmt.Errorf("failed to insert movement %s: %w", modelMov.MovementID, err)
	}

	modelAcc := toModelAccount(account)
	if expectedVersion == 0 {
		insertQuery := `
			INSERT INTO accounts (account_number, product_number, currency_code, balance, city, state, country, version, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`
		_, err = tx.Exec(ctx, insertQuery,
			modelAcc.AccountNumber,
			modelAcc.ProductNumber,
			modelAcc.CurrencyCode,
			modelAcc.Balance,
			modelAcc.City,
			modelAcc.State,
			modelAcc.Country,
			modelAcc.Version,
			modelAcc.CreatedAt,
			modelAcc.LastUpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				// Another writer materialized the account first.
				return fmt.Errorf("%w: account %s/%s/%s was created concurrently", apperrors.ErrConflict,
					modelAcc.AccountNumber, modelAcc.ProductNumber, modelAcc.CurrencyCode)
			}
			return fmt.Errorf("failed to insert account %s/%s/%s: %w", modelAcc.AccountNumber, modelAcc.ProductNumber, modelAcc.CurrencyCode, err)
		}
	} else {
		updateQuery := `
			UPDATE accounts
			SET balance = $4, version = $5, last_updated_at = $6
			WHERE account_number = $1 AND product_number = $2 AND currency_code = $3 AND version = $7;
		`
		cmdTag, err := tx.Exec(ctx, updateQuery,
			modelAcc.AccountNumber,
			modelAcc.ProductNumber,
			modelAcc.CurrencyCode,
			modelAcc.Balance,
			modelAcc.Version,
			modelAcc.LastUpdatedAt,
			expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to update account %s/%s/%s: %w", modelAcc.AccountNumber, modelAcc.ProductNumber, modelAcc.CurrencyCode, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s/%s/%s no longer at version %d", apperrors.ErrConflict,
				modelAcc.AccountNumber, modelAcc.ProductNumber, modelAcc.CurrencyCode, expectedVersion)
		}
	}

	return r.Commit(ctx, tx)
}
