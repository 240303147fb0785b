package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and the few status updates the auth
// workflow needs against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsVerified,
		&user.IsActive,
		&user.IsStaff,
		&user.DateJoined,
		&user.LastLogin,
	)
	return user, err
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, DateJoined).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, err
	}

	var created models.User
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		created, scanErr = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByEmail retrieves the user whose email matches exactly.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", sq.Eq{"email": email})
}

// FindUserByID retrieves the user with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", sq.Eq{"user_id": userID})
}

func (r *userRepository) findUser(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.User{}, err
	}

	var found models.User
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		found, scanErr = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// VerifyUser flips is_verified with a single conditional UPDATE. Zero
// affected rows means the account was already verified or does not exist.
func (r *userRepository) VerifyUser(ctx context.Context, userID int64) (bool, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", userID).Logger()

	query, args, err := buildVerifyUserQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.VerifyUser").Msg("error building query")
		return false, err
	}

	affected, err := r.exec(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.VerifyUser").Msg("error verifying user")
		return false, err
	}

	return affected == 1, nil
}

// SetPassword stores a new password hash. [ErrNoUserWasFound] is returned
// when no row was updated.
func (r *userRepository) SetPassword(ctx context.Context, userID int64, passwordHash string) error {
	query, args, err := buildSetPasswordQuery(userID, passwordHash)
	if err != nil {
		return err
	}
	return r.updateOne(ctx, "*userRepository.SetPassword", userID, query, args)
}

// UpdateLastLogin stamps the user's last_login column.
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	query, args, err := buildUpdateLastLoginQuery(userID, at)
	if err != nil {
		return err
	}
	return r.updateOne(ctx, "*userRepository.UpdateLastLogin", userID, query, args)
}

func (r *userRepository) updateOne(ctx context.Context, funcName string, userID int64, query string, args []any) error {
	affected, err := r.exec(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Int64("user_id", userID).Msg("error updating user")
		return err
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}
	return nil
}

func (r *userRepository) exec(ctx context.Context, query string, args []any) (int64, error) {
	var result sql.Result
	err := r.db.withRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return affected, nil
}
