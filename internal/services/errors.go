package services

import "errors"

// Sentinel errors forming the service-level failure taxonomy. Handlers
// translate these into HTTP statuses with errors.Is; anything outside this
// set surfaces as a generic internal error with the cause logged, never
// returned to the client.
var (
	// ErrValidationFailed covers malformed or missing input.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidEmail means the address does not match local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrOTPNotSent means no live code exists for the email (never sent, or
	// expired).
	ErrOTPNotSent = errors.New("otp not sent or expired")

	// ErrInvalidOTP means a live code exists but the supplied one differs.
	ErrInvalidOTP = errors.New("invalid otp")

	// ErrInvalidPassword means the credential check failed.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUnauthorized means the request carries no valid identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the identity is valid but the role is not allowed.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means no matching record exists.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique field (userId or email) is already taken.
	ErrConflict = errors.New("already exists")

	// ErrDeliveryFailed means the mail collaborator errored. The OTP stays
	// issued; the client may retry send-otp.
	ErrDeliveryFailed = errors.New("delivery failed")
)
