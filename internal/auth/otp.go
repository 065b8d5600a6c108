package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// OTPStore manages pending one-time codes keyed by email. At most one code
// is pending per email; issuing again overwrites the previous one.
type OTPStore interface {
	// Issue generates a fresh 6-digit code for email and returns it for
	// delivery.
	Issue(email string) (string, error)

	// Verify reports whether a live pending code exists for email and equals
	// code. It does not consume the code.
	Verify(email, code string) bool

	// Consume removes the pending code for email unconditionally.
	Consume(email string)

	// Pending reports whether any live code exists for email, regardless of
	// its value. It distinguishes "no code was ever sent / it expired" from
	// "wrong code supplied".
	Pending(email string) bool
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// memoryOTPStore is the process-local OTP store. Codes do not survive a
// restart; that is intentional.
type memoryOTPStore struct {
	mu      sync.RWMutex
	pending map[string]otpEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryOTPStore creates an in-memory OTP store whose codes expire ttl
// after issuance, checked at verify time.
func NewMemoryOTPStore(ttl time.Duration) OTPStore {
	return &memoryOTPStore{
		pending: make(map[string]otpEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memoryOTPStore) Issue(email string) (string, error) {
	code, err := generateOTP()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	s.mu.Lock()
	s.pending[email] = otpEntry{code: code, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return code, nil
}

func (s *memoryOTPStore) Verify(email, code string) bool {
	s.mu.RLock()
	entry, ok := s.pending[email]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return false
	}
	return entry.code == code
}

func (s *memoryOTPStore) Consume(email string) {
	s.mu.Lock()
	delete(s.pending, email)
	s.mu.Unlock()
}

func (s *memoryOTPStore) Pending(email string) bool {
	s.mu.RLock()
	entry, ok := s.pending[email]
	s.mu.RUnlock()

	return ok && !s.now().After(entry.expiresAt)
}

// generateOTP returns a uniformly random 6-digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
