package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/healthperm-server/internal/apierrors"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/metrics"
	"github.com/dtroode/healthperm-server/internal/model"
)

// Verification is the registry of data consumers approved by the registrar.
type Verification struct {
	tx        model.Transactor
	clock     model.Clock
	registrar model.Identity
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

func NewVerification(
	tx model.Transactor,
	clock model.Clock,
	registrar model.Identity,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Verification {
	return &Verification{
		tx:        tx,
		clock:     clock,
		registrar: registrar,
		metrics:   metrics,
		logger:    logger,
	}
}

// Registrar returns the identity allowed to verify consumers.
func (s *Verification) Registrar() model.Identity {
	return s.registrar
}

// RegisterEntity marks consumer as verified. Only the registrar may call it.
func (s *Verification) RegisterEntity(ctx context.Context, caller, consumer model.Identity, consumerType string) (err error) {
	defer func() { observe(s.metrics, "RegisterEntity", err) }()

	s.logger.Debug("Verification service: registering entity",
		"caller", caller,
		"consumer", consumer)

	if err := validateIdentity("caller", caller); err != nil {
		return err
	}
	if err := validateIdentity("consumer", consumer); err != nil {
		return err
	}
	if err := validateBounded("consumer type", consumerType, model.MaxConsumerTypeLength); err != nil {
		return err
	}

	if caller != s.registrar {
		s.logger.Info("Verification service: rejected entity registration from non-registrar",
			"caller", caller,
			"consumer", consumer)
		return apierrors.NewErrUnauthorized(string(caller))
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		verified, err := isVerified(ctx, stores, consumer)
		if err != nil {
			return err
		}
		if verified {
			return apierrors.NewErrAlreadyVerified(string(consumer))
		}

		err = stores.Entities().Create(ctx, model.VerifiedEntity{
			Consumer:     consumer,
			ConsumerType: consumerType,
			Verified:     true,
			VerifiedAt:   s.clock.Now(),
		})
		if errors.Is(err, model.ErrConflict) {
			return apierrors.NewErrAlreadyVerified(string(consumer))
		}
		if err != nil {
			return fmt.Errorf("failed to create verified entity: %w", err)
		}
		return nil
	})
	if err != nil {
		if !isAPIError(err) {
			s.logger.Error("Verification service: failed to register entity",
				"consumer", consumer,
				"error", err.Error())
		}
		return err
	}

	s.logger.Info("Verification service: entity verified",
		"consumer", consumer,
		"consumer_type", consumerType)

	return nil
}

// IsVerifiedEntity reports whether consumer has been verified.
func (s *Verification) IsVerifiedEntity(ctx context.Context, consumer model.Identity) (bool, error) {
	var verified bool
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		var err error
		verified, err = isVerified(ctx, stores, consumer)
		return err
	})
	if err != nil {
		return false, err
	}
	return verified, nil
}
