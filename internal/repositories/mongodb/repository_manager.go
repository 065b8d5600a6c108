package mongodb

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hostel-portal/auth-service/internal/cache"
	"github.com/hostel-portal/auth-service/internal/repositories"
)

// RepositoryConfig carries the connections the repository layer is built on.
// RedisClient may be nil; caching then degrades to a no-op.
type RepositoryConfig struct {
	Database    *mongo.Database
	RedisClient *redis.Client
}

type repository struct {
	database *mongo.Database
	users    *userRepository
}

func (r *repository) User() repositories.UserRepository { return r.users }

func (r *repository) Ping(ctx context.Context) error {
	return r.database.Client().Ping(ctx, readpref.Primary())
}

func (r *repository) Close(ctx context.Context) error {
	return r.database.Client().Disconnect(ctx)
}

type repositoryManager struct {
	repo *repository
}

// NewRepositoryManager builds the mongo-backed repository set.
func NewRepositoryManager(cfg RepositoryConfig) repositories.RepositoryManager {
	cacheHelper := cache.NewHelper(cfg.RedisClient, "user:")

	return &repositoryManager{
		repo: &repository{
			database: cfg.Database,
			users:    newUserRepository(cfg.Database, cacheHelper),
		},
	}
}

// Initialize verifies connectivity and creates the unique indexes the data
// model's invariants depend on.
func (m *repositoryManager) Initialize(ctx context.Context) error {
	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	return m.repo.users.ensureIndexes(ctx)
}

func (m *repositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *repositoryManager) Shutdown(ctx context.Context) error {
	return m.repo.Close(ctx)
}
