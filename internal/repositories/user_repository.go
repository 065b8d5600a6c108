package repositories

import (
	"context"
	"errors"

	"github.com/hostel-portal/auth-service/internal/models"
)

var (
	// ErrNotFound means no record matched the lookup key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a unique field (userId or email) is already taken.
	ErrDuplicate = errors.New("duplicate unique field")
)

// UserFilters narrows List queries.
type UserFilters struct {
	Query  string // matches userId or email
	Role   *models.UserRole
	Limit  int
	Offset int
}

// UserUpdate is a partial update. Nil fields are left untouched; the service
// layer decides which fields a caller may set.
type UserUpdate struct {
	Role            *models.UserRole
	Email           *string
	Mobile          *string
	HostelBlock     *string
	RoomNumber      *string
	CourseYear      *string
	Branch          *string
	IsInactiveToday *bool
}

// Empty reports whether the update would change nothing.
func (u UserUpdate) Empty() bool {
	return u.Role == nil && u.Email == nil && u.Mobile == nil &&
		u.HostelBlock == nil && u.RoomNumber == nil && u.CourseYear == nil &&
		u.Branch == nil && u.IsInactiveToday == nil
}

// UserRepository is the durable user directory. Writes are document-level
// atomic; no cross-document transactions are used.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUserID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	ExistsByUserID(ctx context.Context, userID string) (bool, error)

	// UpdateByID applies a partial update keyed by internal id and returns
	// the updated record.
	UpdateByID(ctx context.Context, id string, update UserUpdate) (*models.User, error)

	// UpdateByUserID is the admin path, keyed by the human login identifier.
	UpdateByUserID(ctx context.Context, userID string, update UserUpdate) (*models.User, error)

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
}

// Repository aggregates the data-access surface of the service.
type Repository interface {
	User() UserRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// RepositoryManager owns repository lifecycle: index creation at startup and
// connection teardown at shutdown.
type RepositoryManager interface {
	Initialize(ctx context.Context) error
	GetRepository() Repository
	Shutdown(ctx context.Context) error
}
