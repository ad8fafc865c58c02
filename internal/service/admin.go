package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	pkgcrypto "github.com/fitconsult/fitfunnel/internal/crypto"
	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/limiter"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/repository"
	"github.com/fitconsult/fitfunnel/internal/settings"
	"github.com/fitconsult/fitfunnel/internal/store"
)

// AdminCredentials is the single operator account, hashed at startup.
type AdminCredentials struct {
	Login    string
	SaltAuth []byte
	PwdHash  []byte
}

// NewAdminCredentials hashes a plaintext password with a fresh salt.
func NewAdminCredentials(login, password string) (AdminCredentials, error) {
	salt, err := pkgcrypto.RandBytes(16)
	if err != nil {
		return AdminCredentials{}, err
	}
	return AdminCredentials{
		Login:    login,
		SaltAuth: salt,
		PwdHash:  pkgcrypto.HashPassword([]byte(password), salt),
	}, nil
}

// MetricsSummary is the admin dashboard rollup derived from the state
// snapshot.
type MetricsSummary struct {
	Users                int         `json:"users"`
	AssessmentsCompleted int         `json:"assessmentsCompleted"`
	LessonCompletions    map[int]int `json:"lessonCompletions"`
}

// Admin authenticates the operator and owns the settings write path.
type Admin struct {
	creds    AdminCredentials
	signKey  []byte
	tokenTTL time.Duration
	lim      limiter.Limiter
	records  repository.SettingsRecords
	store    *store.Store
	resolver *settings.Resolver
	log      *zap.Logger
}

// NewAdmin constructs the admin service.
func NewAdmin(creds AdminCredentials, signKey []byte, tokenTTL time.Duration, lim limiter.Limiter,
	records repository.SettingsRecords, st *store.Store, resolver *settings.Resolver, log *zap.Logger) *Admin {
	return &Admin{
		creds:    creds,
		signKey:  signKey,
		tokenTTL: tokenTTL,
		lim:      lim,
		records:  records,
		store:    st,
		resolver: resolver,
		log:      log,
	}
}

// LoginWithIP authenticates the operator with rate limiting by (login, ip).
func (s *Admin) LoginWithIP(ctx context.Context, login, password, ip string) (string, time.Time, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, login, ipHash)
	if err != nil {
		return "", time.Time{}, err
	}
	if !allowed {
		return "", time.Time{}, errs.ErrRateLimited
	}

	if login != s.creds.Login || !pkgcrypto.VerifyPassword([]byte(password), s.creds.SaltAuth, s.creds.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, login, ipHash); ferr == nil && blocked {
			return "", time.Time{}, errs.ErrRateLimited
		}
		return "", time.Time{}, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, login, ipHash)

	return s.issueToken(login)
}

// issueToken creates a signed HS256 JWT for the operator.
func (s *Admin) issueToken(login string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   login,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// VerifyToken reports whether the presented admin token is valid.
func (s *Admin) VerifyToken(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return errs.ErrUnauthorized
	}
	return nil
}

// SaveSettings validates the edited settings, writes through to the remote
// store, and only then reflects the change in the state store and the cache
// tier. A remote failure leaves the running configuration untouched.
func (s *Admin) SaveSettings(ctx context.Context, edited model.Settings) error {
	if err := validateSettings(edited); err != nil {
		return err
	}
	if err := s.records.Upsert(ctx, &edited); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.store.Dispatch(store.UpdateSettings{Settings: edited})
	s.resolver.StoreCache(edited)
	s.log.Info("settings saved", zap.Int("lessons", len(edited.Lessons)))
	return nil
}

// Metrics derives the dashboard rollup from the current roster.
func (s *Admin) Metrics() MetricsSummary {
	snap := s.store.Snapshot()
	sum := MetricsSummary{
		Users:             len(snap.Users),
		LessonCompletions: make(map[int]int),
	}
	for i := range snap.Users {
		if snap.Users[i].Assessment != nil {
			sum.AssessmentsCompleted++
		}
		for _, id := range snap.Users[i].Progress {
			sum.LessonCompletions[id]++
		}
	}
	return sum
}

func validateSettings(s model.Settings) error {
	if s.FreeAccessDays < 0 {
		return fmt.Errorf("%w: freeAccessDays must not be negative", errs.ErrValidation)
	}
	if s.OfferCountdownHours < 0 {
		return fmt.Errorf("%w: offerCountdownHours must not be negative", errs.ErrValidation)
	}
	seen := make(map[int]struct{}, len(s.Lessons))
	for _, l := range s.Lessons {
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("%w: duplicate lesson id %d", errs.ErrValidation, l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return nil
}
