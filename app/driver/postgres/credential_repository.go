package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tenant-auth-service/app/domain"
	"tenant-auth-service/app/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// identityColumns is the uniform column set shared by both collection
// tables. Owners leave the manager-specific columns NULL.
const identityColumns = `id, display_name, username, password_hash, email, status, owner_id, business_id, permissions, created_at, updated_at`

// CredentialRepository implements port.CredentialRepository for
// PostgreSQL. The two logical collections map onto the owners and
// managers tables; cross-collection username uniqueness is enforced by
// the shared handles table written in the same transaction as every
// account insert.
type CredentialRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewCredentialRepository creates a new PostgreSQL credential repository
func NewCredentialRepository(db DatabaseIface, logger *slog.Logger) port.CredentialRepository {
	return &CredentialRepository{
		db:     db,
		logger: logger.With("component", "credential_repository"),
	}
}

// FindByUsername returns the identity with the given username.
func (r *CredentialRepository) FindByUsername(ctx context.Context, col domain.Collection, username string) (*domain.Identity, error) {
	table, err := tableFor(col)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE username = $1`, identityColumns, table)
	return r.scanIdentity(ctx, col, query, username)
}

// FindByID returns the identity with the given id.
func (r *CredentialRepository) FindByID(ctx context.Context, col domain.Collection, id uuid.UUID) (*domain.Identity, error) {
	table, err := tableFor(col)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, identityColumns, table)
	return r.scanIdentity(ctx, col, query, id)
}

// FindOwnerByEmail resolves an owner record by contact email.
func (r *CredentialRepository) FindOwnerByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	query := fmt.Sprintf(`SELECT %s FROM owners WHERE lower(email) = lower($1)`, identityColumns)
	return r.scanIdentity(ctx, domain.CollectionOwners, query, email)
}

// ExistsByUsername probes a single collection for a username.
func (r *CredentialRepository) ExistsByUsername(ctx context.Context, col domain.Collection, username string) (bool, error) {
	table, err := tableFor(col)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE username = $1)`, table)

	var exists bool
	if err := r.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		r.logger.Error("failed to probe username", "collection", col, "error", err)
		return false, domain.NewStoreError("exists_by_username", err)
	}
	return exists, nil
}

// Create inserts a new identity. The handle row and the account row
// commit together; a duplicate username fails the whole transaction
// with domain.ErrUsernameTaken instead of overwriting.
func (r *CredentialRepository) Create(ctx context.Context, col domain.Collection, identity *domain.Identity) error {
	table, err := tableFor(col)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error("failed to begin transaction", "error", err)
		return domain.NewStoreError("create", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO handles (username, collection) VALUES ($1, $2)`, identity.Username, string(col)); err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("username claimed between allocation and create", "username", identity.Username)
			return domain.ErrUsernameTaken
		}
		r.logger.Error("failed to claim handle", "username", identity.Username, "error", err)
		return domain.NewStoreError("create", err)
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`, table, identityColumns)

	_, err = tx.Exec(ctx, insert,
		identity.ID,
		identity.DisplayName,
		identity.Username,
		identity.PasswordHash,
		identity.Email,
		string(identity.Status),
		identity.OwnerID,
		identity.BusinessID,
		permissionStrings(identity.Permissions),
		identity.CreatedAt,
		identity.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		r.logger.Error("failed to insert identity", "collection", col, "error", err)
		return domain.NewStoreError("create", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("failed to commit identity create", "collection", col, "error", err)
		return domain.NewStoreError("create", err)
	}

	r.logger.Info("identity created", "collection", col, "uid", identity.ID, "username", identity.Username)
	return nil
}

// UpdateStatus flips an identity's lifecycle status.
func (r *CredentialRepository) UpdateStatus(ctx context.Context, col domain.Collection, id uuid.UUID, status domain.IdentityStatus) error {
	table, err := tableFor(col)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = $2 WHERE id = $3`, table)

	tag, err := r.db.Exec(ctx, query, string(status), time.Now(), id)
	if err != nil {
		r.logger.Error("failed to update status", "collection", col, "uid", id, "error", err)
		return domain.NewStoreError("update_status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}

	r.logger.Info("identity status updated", "collection", col, "uid", id, "status", status)
	return nil
}

// scanIdentity runs a single-row identity query and maps the result.
func (r *CredentialRepository) scanIdentity(ctx context.Context, col domain.Collection, query string, arg interface{}) (*domain.Identity, error) {
	identity := &domain.Identity{}
	var status string
	var permissions []string

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&identity.ID,
		&identity.DisplayName,
		&identity.Username,
		&identity.PasswordHash,
		&identity.Email,
		&status,
		&identity.OwnerID,
		&identity.BusinessID,
		&permissions,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		r.logger.Error("failed to query identity", "collection", col, "error", err)
		return nil, domain.NewStoreError("find", err)
	}

	identity.Role = mustRole(col)
	identity.Status = domain.IdentityStatus(status)
	identity.Permissions = toPermissions(permissions)
	return identity, nil
}

// tableFor maps a collection onto its table through a closed switch, so
// no caller-controlled string ever reaches the SQL text.
func tableFor(col domain.Collection) (string, error) {
	switch col {
	case domain.CollectionOwners:
		return "owners", nil
	case domain.CollectionManagers:
		return "managers", nil
	default:
		return "", fmt.Errorf("unknown collection: %q", col)
	}
}

func mustRole(col domain.Collection) domain.Role {
	role, err := col.Role()
	if err != nil {
		return ""
	}
	return role
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func permissionStrings(perms []domain.Permission) []string {
	if perms == nil {
		return nil
	}
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

func toPermissions(values []string) []domain.Permission {
	if values == nil {
		return nil
	}
	out := make([]domain.Permission, len(values))
	for i, v := range values {
		out[i] = domain.Permission(v)
	}
	return out
}
