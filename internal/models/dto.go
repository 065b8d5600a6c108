package models

// ===== REQUEST DTOs =====

type SendOTPRequest struct {
	Email string `json:"email" validate:"required"`
}

type RegisterRequest struct {
	UserID   string   `json:"userId" validate:"required"`
	Role     UserRole `json:"role" validate:"required,user_role"`
	Email    string   `json:"email" validate:"required"`
	OTP      string   `json:"otp" validate:"required"`
	Mobile   string   `json:"mobile" validate:"required"`
	Password string   `json:"password" validate:"required"`
}

type LoginRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the self-service partial update. Pointer
// fields distinguish "absent" from "set to zero value": absent fields are
// left untouched.
type UpdateProfileRequest struct {
	HostelBlock     *string `json:"hostelBlock"`
	RoomNumber      *string `json:"roomNumber"`
	CourseYear      *string `json:"courseYear"`
	Branch          *string `json:"branch"`
	IsInactiveToday *bool   `json:"isInactiveToday"`
}

// AdminUpdateUserRequest is the admin-side partial update. Its field set is
// a strict superset of UpdateProfileRequest; anything outside this
// allow-list is ignored rather than merged verbatim.
type AdminUpdateUserRequest struct {
	Role            *UserRole `json:"role" validate:"omitempty,user_role"`
	Email           *string   `json:"email"`
	Mobile          *string   `json:"mobile"`
	HostelBlock     *string   `json:"hostelBlock"`
	RoomNumber      *string   `json:"roomNumber"`
	CourseYear      *string   `json:"courseYear"`
	Branch          *string   `json:"branch"`
	IsInactiveToday *bool     `json:"isInactiveToday"`
}

// ===== RESPONSE DTOs =====

type LoginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	Role    UserRole `json:"role"`
	UserID  string   `json:"userId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProfileResponse struct {
	Message string   `json:"message,omitempty"`
	User    *Profile `json:"user"`
}

type UserListResponse struct {
	Users []*Profile `json:"users"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
}
