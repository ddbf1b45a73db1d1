package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/utils"
)

var (
	ErrResendThrottled = errors.New("resend throttled")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrCodeExpired     = errors.New("code expired")
	ErrCodeInvalid     = errors.New("code invalid")
)

const (
	maxResendsPerWindow    = 3
	resendWindow           = 10 * time.Minute
	maxConfirmAttempts     = 5
	defaultVerificationTTL = 5 * time.Minute
)

// generateDigitCode - n decimal digits, zero-padded.
func generateDigitCode(n int) string {
	src := rand.NewSource(time.Now().UnixNano())
	rnd := rand.New(src)
	max := 1
	for i := 0; i < n; i++ {
		max *= 10
	}
	return fmt.Sprintf("%0*d", n, rnd.Intn(max))
}

// SMSService handles signup phone verification and access-code delivery.
// Verification codes are stored bcrypt-hashed with a TTL and attempt counter;
// booking access codes are generated elsewhere and only sent from here.
type SMSService struct {
	VerifRepo repositories.PhoneVerificationRepository
	UserSvc   UserService

	Client  *utils.SMSClient
	CodeTTL time.Duration // 0 means defaultVerificationTTL
}

func NewSMSService(
	verifRepo repositories.PhoneVerificationRepository,
	userSvc UserService,
	client *utils.SMSClient,
) *SMSService {
	return &SMSService{
		VerifRepo: verifRepo,
		UserSvc:   userSvc,
		Client:    client,
		CodeTTL:   defaultVerificationTTL,
	}
}

// SendVerificationSMS - every send is a fresh code; only the bcrypt hash is
// stored. Throttled to 3 sends per 10 minutes.
func (s *SMSService) SendVerificationSMS(userID int, phone string) error {
	if s.VerifRepo == nil {
		return fmt.Errorf("verification repo is nil")
	}

	since := time.Now().Add(-resendWindow)
	cnt, err := s.VerifRepo.CountRecentSends(userID, since)
	if err != nil {
		return err
	}
	if cnt >= maxResendsPerWindow {
		return ErrResendThrottled
	}

	code := generateDigitCode(6)
	codeHashBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt generate: %w", err)
	}

	ttl := s.CodeTTL
	if ttl <= 0 {
		ttl = defaultVerificationTTL
	}
	sentAt := time.Now()
	expiresAt := sentAt.Add(ttl)

	if _, err := s.VerifRepo.Create(userID, string(codeHashBytes), sentAt, expiresAt); err != nil {
		return err
	}

	text := fmt.Sprintf("verification code: %s", code)
	if _, err := s.Client.SendSMS(phone, text); err != nil {
		return fmt.Errorf("sms gateway error: %w", err)
	}

	log.Printf("[sms][verify][send] user_id=%d phone=%s", userID, phone)
	return nil
}

// ResendVerificationSMS - same path; SendVerificationSMS already throttles.
func (s *SMSService) ResendVerificationSMS(userID int, phone string) error {
	if phone == "" {
		return fmt.Errorf("phone required")
	}
	return s.SendVerificationSMS(userID, phone)
}

// ConfirmVerificationCode checks the code against the bcrypt hash, counting
// attempts and honouring the TTL. Success marks the user's phone verified.
func (s *SMSService) ConfirmVerificationCode(userID int, code string) (bool, error) {
	if s.VerifRepo == nil {
		return false, fmt.Errorf("verification repo is nil")
	}
	v, err := s.VerifRepo.GetLatestByUserID(userID)
	if err != nil {
		return false, err
	}
	if v == nil || v.Confirmed {
		return false, ErrCodeInvalid
	}
	if time.Now().After(v.ExpiresAt) {
		return false, ErrCodeExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(v.CodeHash), []byte(code)); err != nil {
		attempts, incErr := s.VerifRepo.IncrementAttempts(v.ID)
		if incErr != nil {
			return false, incErr
		}
		if attempts >= maxConfirmAttempts {
			_ = s.VerifRepo.ExpireNow(v.ID)
			return false, ErrTooManyAttempts
		}
		return false, ErrCodeInvalid
	}

	if err := s.VerifRepo.MarkConfirmed(v.ID); err != nil {
		return false, err
	}
	if s.UserSvc != nil {
		if err := s.UserSvc.VerifyUser(userID); err != nil {
			return false, err
		}
	}
	log.Printf("[sms][verify][confirm] OK user_id=%d", userID)
	return true, nil
}

// SendAccessCode delivers a booking access code to the driver.
func (s *SMSService) SendAccessCode(phone, code string) error {
	text := fmt.Sprintf("access code: %s. Enter it at the spot to start your session.", code)
	if _, err := s.Client.SendSMS(phone, text); err != nil {
		return fmt.Errorf("sms gateway error: %w", err)
	}
	log.Printf("[sms][access][send] phone=%s", phone)
	return nil
}
