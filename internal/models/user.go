package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleStudent UserRole = "Student"
	RoleMess    UserRole = "Mess"
	RoleAdmin   UserRole = "Admin"
)

// ValidRole reports whether role is one of the three enumerated values.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleStudent, RoleMess, RoleAdmin:
		return true
	}
	return false
}

// User is the durable account record. UserID is the human-chosen login
// identifier; ID is the internal storage id carried in session tokens.
// PasswordHash is never serialized into client responses (json:"-").
type User struct {
	ID     primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	UserID string             `json:"userId" bson:"userId"`
	Role   UserRole           `json:"role" bson:"role"`
	Email  string             `json:"email" bson:"email"`
	Mobile string             `json:"mobile" bson:"mobile"`

	// Student profile extension fields, independent of role
	HostelBlock string `json:"hostelBlock" bson:"hostelBlock"`
	RoomNumber  string `json:"roomNumber" bson:"roomNumber"`
	CourseYear  string `json:"courseYear" bson:"courseYear"`
	Branch      string `json:"branch" bson:"branch"`

	// Mess-relevant status flag
	IsInactiveToday bool `json:"isInactiveToday" bson:"isInactiveToday"`

	PasswordHash string `json:"-" bson:"password"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (User) CollectionName() string {
	return "users"
}

// Profile is the client-facing projection of a User. The credential field is
// always projected out before any representation leaves the service.
type Profile struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Role            UserRole  `json:"role"`
	Email           string    `json:"email"`
	Mobile          string    `json:"mobile"`
	HostelBlock     string    `json:"hostelBlock"`
	RoomNumber      string    `json:"roomNumber"`
	CourseYear      string    `json:"courseYear"`
	Branch          string    `json:"branch"`
	IsInactiveToday bool      `json:"isInactiveToday"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToProfile converts a stored user into its client-facing representation.
func (u *User) ToProfile() *Profile {
	return &Profile{
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
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
