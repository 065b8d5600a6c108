package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hostel-portal/auth-service/internal/cache"
	"github.com/hostel-portal/auth-service/internal/models"
	"github.com/hostel-portal/auth-service/internal/repositories"
)

// userRepository is the mongo-backed user directory with an optional
// read-through cache on internal-id lookups (the hot path behind every
// authenticated request).
type userRepository struct {
	collection *mongo.Collection
	cache      *cache.Helper
}

func newUserRepository(db *mongo.Database, cacheHelper *cache.Helper) *userRepository {
	return &userRepository{
		collection: db.Collection(models.User{}.CollectionName()),
		cache:      cacheHelper,
	}
}

// cachedUser is the cache wire form of a user record. The entity's own JSON
// tags hide the internal id and the credential from client responses, so
// caching the entity directly would drop both fields; the cache uses its own
// lossless representation instead.
type cachedUser struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Role            models.UserRole `json:"role"`
	Email           string          `json:"email"`
	Mobile          string          `json:"mobile"`
	HostelBlock     string          `json:"hostelBlock"`
	RoomNumber      string          `json:"roomNumber"`
	CourseYear      string          `json:"courseYear"`
	Branch          string          `json:"branch"`
	IsInactiveToday bool            `json:"isInactiveToday"`
	PasswordHash    string          `json:"password"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func newCachedUser(u *models.User) *cachedUser {
	return &cachedUser{
		ID:              u.ID.Hex(),
		UserID:          u.UserID,
		Role:            u.Role,
		Email:           u.Email,
		Mobile:          u.Mobile,
		HostelBlock:     u.HostelBlock,
		RoomNumber:      u.RoomNumber,
		CourseYear:      u.CourseYear,
		Branch:          u.Branch,
		IsInactiveToday: u.IsInactiveToday,
		PasswordHash:    u.PasswordHash,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (c *cachedUser) toUser() (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return nil, fmt.Errorf("cached user id %q: %w", c.ID, err)
	}

	return &models.User{
		ID:              oid,
		UserID:          c.UserID,
		Role:            c.Role,
		Email:           c.Email,
		Mobile:          c.Mobile,
		HostelBlock:     c.HostelBlock,
		RoomNumber:      c.RoomNumber,
		CourseYear:      c.CourseYear,
		Branch:          c.Branch,
		IsInactiveToday: c.IsInactiveToday,
		PasswordHash:    c.PasswordHash,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}, nil
}

// ensureIndexes creates the unique indexes backing the userId and email
// invariants.
func (r *userRepository) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.UserID = strings.TrimSpace(user.UserID)
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var cached cachedUser
	if err := r.cache.Get(ctx, id, &cached); err == nil {
		if user, err := cached.toUser(); err == nil {
			return user, nil
		}
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrNotFound
	}

	user, err := r.findOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}

	// Best effort; a cold cache only costs the next lookup.
	_ = r.cache.Set(ctx, id, newCachedUser(user), cache.UserCacheTTL)

	return user, nil
}

func (r *userRepository) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, update repositories.UserUpdate) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
}

func (r *userRepository) UpdateByUserID(ctx context.Context, userID string, update repositories.UserUpdate) (*models.User, error) {
	return r.findOneAndUpdate(ctx, bson.M{"userId": userID}, update)
}

func (r *userRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	filter := bson.M{}
	if filters.Query != "" {
		pattern := primitive.Regex{Pattern: regexQuote(filters.Query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"userId": pattern},
			bson.M{"email": pattern},
		}
	}
	if filters.Role != nil {
		filter["role"] = *filters.Role
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filters.Limit > 0 {
		opts.SetLimit(int64(filters.Limit)).SetSkip(int64(filters.Offset))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}

	return users, total, nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) findOneAndUpdate(ctx context.Context, filter bson.M, update repositories.UserUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Role != nil {
		set["role"] = *update.Role
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Mobile != nil {
		set["mobile"] = *update.Mobile
	}
	if update.HostelBlock != nil {
		set["hostelBlock"] = *update.HostelBlock
	}
	if update.RoomNumber != nil {
		set["roomNumber"] = *update.RoomNumber
	}
	if update.CourseYear != nil {
		set["courseYear"] = *update.CourseYear
	}
	if update.Branch != nil {
		set["branch"] = *update.Branch
	}
	if update.IsInactiveToday != nil {
		set["isInactiveToday"] = *update.IsInactiveToday
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repositories.ErrDuplicate
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	// Stale cached copies would otherwise outlive the write.
	_ = r.cache.Delete(ctx, user.ID.Hex())

	return &user, nil
}

func regexQuote(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`, `.`, `\.`, `+`, `\+`, `*`, `\*`, `?`, `\?`,
		`(`, `\(`, `)`, `\)`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`,
		`^`, `\^`, `$`, `\$`, `|`, `\|`,
	)
	return replacer.Replace(s)
}
