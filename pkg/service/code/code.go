// Package code issues and consumes the single-use security codes behind email
// verification and password reset.
package code

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/repository"
)

// ErrInvalidCode covers unknown, revoked, expired and wrong-purpose codes alike.
var ErrInvalidCode = domain.Validationf("invalid or expired code")

type Service struct {
	uow    repository.UnitOfWork
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func New(uow repository.UnitOfWork, cfg *config.Code, logger *slog.Logger) *Service {
	var ttl time.Duration
	if cfg != nil {
		ttl = cfg.TTL
	}
	return &Service{uow: uow, ttl: ttl, logger: logger, now: time.Now}
}

// Issue revokes every active code of type t held by userID and stores a new one.
func (s *Service) Issue(ctx context.Context, userID uuid.UUID, t domain.CodeType) (*domain.SecurityCode, error) {
	log := s.logger.With("handler", "Issue", "user_id", userID, "type", t)
	if !t.Valid() {
		return nil, domain.Validationf("invalid code type %q", t)
	}
	var issued *domain.SecurityCode
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return s.issue(ctx, uow, userID, t, &issued)
	})
	if err != nil {
		log.Error("Failed to issue security code", "error", err)
		return nil, err
	}
	log.Debug("Security code issued", "code_id", issued.ID)
	return issued, nil
}

// IssueTx is Issue inside a transaction the caller already holds.
func (s *Service) IssueTx(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID, t domain.CodeType) (*domain.SecurityCode, error) {
	if !t.Valid() {
		return nil, domain.Validationf("invalid code type %q", t)
	}
	var issued *domain.SecurityCode
	if err := s.issue(ctx, uow, userID, t, &issued); err != nil {
		return nil, err
	}
	return issued, nil
}

func (s *Service) issue(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID, t domain.CodeType, out **domain.SecurityCode) error {
	codes := uow.SecurityCodes()
	_, err := codes.UpdateWhere(ctx,
		map[string]any{"revoked": true},
		repository.Eq("user_id", userID),
		repository.Eq("type", string(t)),
		repository.Eq("revoked", false),
	)
	if err != nil {
		return err
	}
	c, err := domain.NewSecurityCode(userID, t)
	if err != nil {
		return err
	}
	if err := codes.Create(ctx, c); err != nil {
		return err
	}
	*out = c
	return nil
}

// Verify consumes an active code of one of the accepted types and returns it.
func (s *Service) Verify(ctx context.Context, code string, types ...domain.CodeType) (*domain.SecurityCode, error) {
	var consumed *domain.SecurityCode
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err := s.VerifyTx(ctx, uow, code, types...)
		consumed = c
		return err
	})
	if err != nil {
		return nil, err
	}
	return consumed, nil
}

// VerifyTx is Verify inside a transaction the caller already holds, so the
// consumption commits or rolls back with the caller's other writes.
func (s *Service) VerifyTx(ctx context.Context, uow repository.UnitOfWork, code string, types ...domain.CodeType) (*domain.SecurityCode, error) {
	log := s.logger.With("handler", "Verify")
	if code == "" || len(types) == 0 {
		return nil, ErrInvalidCode
	}
	accepted := make([]string, 0, len(types))
	for _, t := range types {
		accepted = append(accepted, string(t))
	}
	c, err := uow.SecurityCodes().FindOne(ctx,
		repository.Eq("code", code),
		repository.In("type", accepted),
		repository.Eq("revoked", false),
		repository.OrderBy("created_at", true),
		repository.ForUpdate(),
	)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn("Unknown or consumed security code")
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}
	if c.Expired(s.ttl, s.now()) {
		log.Warn("Expired security code", "code_id", c.ID, "created_at", c.CreatedAt)
		return nil, ErrInvalidCode
	}
	if _, err := uow.SecurityCodes().Update(ctx, c.ID, map[string]any{"revoked": true}); err != nil {
		return nil, err
	}
	c.Revoked = true
	log.Debug("Security code consumed", "code_id", c.ID, "user_id", c.UserID)
	return c, nil
}
