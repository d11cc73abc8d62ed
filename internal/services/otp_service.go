package services

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"hash/fnv"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/gigcred/backend/internal/models"
	"gorm.io/gorm"
)

const (
	otpCodeMin         = 100000
	otpCodeMax         = 999999
	otpResendCooldown  = 60 * time.Second
	otpMaxAttempts     = 5
	otpLockoutDuration = 15 * time.Minute

	// otpVerifiedWindow is how long a consumed code counts as proof of
	// phone ownership for registration and password reset.
	otpVerifiedWindow = 15 * time.Minute

	// otpRecordMaxAge is when stale records become eligible for cleanup.
	otpRecordMaxAge = 24 * time.Hour
)

var (
	ErrCodeNotFound   = errors.New("no active verification code for this phone")
	ErrCodeInvalid    = errors.New("verification code invalid")
	ErrResendCooldown = errors.New("a code was sent recently, wait before requesting another")
)

// ThrottledError is returned while a phone is locked out after too many
// failed attempts. Until tells the user when they may try again.
type ThrottledError struct {
	Until time.Time
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("too many failed attempts, blocked until %s", e.Until.Format(time.RFC3339))
}

// InvalidCodeError carries how many attempts remain before lockout.
type InvalidCodeError struct {
	AttemptsRemaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("verification code invalid, %d attempts remaining", e.AttemptsRemaining)
}

func (e *InvalidCodeError) Unwrap() error { return ErrCodeInvalid }

// SMSSender dispatches a text message to a phone number.
type SMSSender interface {
	SendSMS(to, body string) error
}

// phoneLockStripes sizes the lock pool below. A stripe may cover several
// phones; that only serializes a little more than strictly needed.
const phoneLockStripes = 64

// OTPService issues and verifies one-time phone verification codes.
// Updates for the same phone are serialized through a striped lock pool so
// concurrent sends or verifies cannot interleave the read-modify-write
// cycle and bypass the rate limit or the attempt counter.
type OTPService struct {
	db  *gorm.DB
	sms SMSSender

	phoneLocks [phoneLockStripes]sync.Mutex

	now func() time.Time
}

func NewOTPService(db *gorm.DB, sms SMSSender) *OTPService {
	return &OTPService{
		db:  db,
		sms: sms,
		now: time.Now,
	}
}

func (s *OTPService) lockPhone(phone string) func() {
	h := fnv.New32a()
	h.Write([]byte(phone))
	l := &s.phoneLocks[h.Sum32()%phoneLockStripes]

	l.Lock()
	return l.Unlock
}

// generateCode draws a uniformly random 6-digit code.
func generateCode() (string, error) {
	n, err := crand.Int(crand.Reader, big.NewInt(otpCodeMax-otpCodeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return strconv.Itoa(otpCodeMin + int(n.Int64())), nil
}

// reissue resets a record for a fresh code. Attempts always restart at
// zero and any previous lockout or consumption is discarded.
func reissue(rec *models.PhoneVerification, code string, now time.Time) {
	rec.Code = code
	rec.Attempts = 0
	rec.IssuedAt = now
	rec.BlockedUntil = nil
	rec.ConsumedAt = nil
}

// registerFailure counts a failed attempt and reports whether the record
// crossed the lockout threshold.
func registerFailure(rec *models.PhoneVerification, now time.Time) bool {
	rec.Attempts++
	if rec.Attempts >= otpMaxAttempts {
		until := now.Add(otpLockoutDuration)
		rec.BlockedUntil = &until
		return true
	}
	return false
}

// Send issues a fresh code for the phone and dispatches it via SMS.
// The code is returned for test and development affordance; production
// responses must not expose it.
func (s *OTPService) Send(phone string) (string, error) {
	defer s.lockPhone(phone)()

	now := s.now()

	var rec models.PhoneVerification
	err := s.db.Where("phone = ?", phone).First(&rec).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	if found {
		if rec.BlockedAt(now) {
			return "", &ThrottledError{Until: *rec.BlockedUntil}
		}
		if now.Sub(rec.IssuedAt) < otpResendCooldown {
			return "", ErrResendCooldown
		}
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	if found {
		reissue(&rec, code, now)
		if err := s.db.Save(&rec).Error; err != nil {
			return "", err
		}
	} else {
		rec = models.PhoneVerification{Phone: phone, Code: code, IssuedAt: now}
		if err := s.db.Create(&rec).Error; err != nil {
			return "", err
		}
	}

	if err := s.sms.SendSMS(phone, fmt.Sprintf("Your verification code is %s", code)); err != nil {
		return "", fmt.Errorf("sms dispatch: %w", err)
	}
	return code, nil
}

// Verify checks a candidate code. A throttled record rejects every
// candidate until the lockout elapses; a successful verification consumes
// the code so it cannot be replayed.
func (s *OTPService) Verify(phone, candidate string) error {
	defer s.lockPhone(phone)()

	now := s.now()

	var rec models.PhoneVerification
	if err := s.db.Where("phone = ?", phone).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCodeNotFound
		}
		return err
	}
	if rec.Consumed() {
		return ErrCodeNotFound
	}
	if rec.BlockedAt(now) {
		return &ThrottledError{Until: *rec.BlockedUntil}
	}

	if rec.Code != candidate {
		locked := registerFailure(&rec, now)
		if err := s.db.Save(&rec).Error; err != nil {
			return err
		}
		if locked {
			return &ThrottledError{Until: *rec.BlockedUntil}
		}
		return &InvalidCodeError{AttemptsRemaining: otpMaxAttempts - rec.Attempts}
	}

	rec.ConsumedAt = &now
	if err := s.db.Save(&rec).Error; err != nil {
		return err
	}
	return nil
}

// IsRecentlyVerified reports whether the phone completed verification
// within the ownership-proof window.
func (s *OTPService) IsRecentlyVerified(phone string) (bool, error) {
	var rec models.PhoneVerification
	if err := s.db.Where("phone = ?", phone).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if rec.ConsumedAt == nil {
		return false, nil
	}
	return s.now().Sub(*rec.ConsumedAt) <= otpVerifiedWindow, nil
}

// CleanupStale deletes verification records old enough to be irrelevant.
// Returns how many rows were removed.
func (s *OTPService) CleanupStale() (int64, error) {
	cutoff := s.now().Add(-otpRecordMaxAge)
	res := s.db.Where("issued_at < ?", cutoff).Delete(&models.PhoneVerification{})
	return res.RowsAffected, res.Error
}
