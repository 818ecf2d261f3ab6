package service

import (
	"context"
	"log"
	"time"

	"github.com/echologistics/carrier-intake/internal/models"
	"github.com/echologistics/carrier-intake/internal/validate"
	"github.com/echologistics/carrier-intake/internal/wizard"
)

// notifyTimeout bounds the notification step. The pipeline tolerates
// notification failure, so it must not block the response indefinitely.
const notifyTimeout = 15 * time.Second

// AgreementStore is the persistence surface the pipeline writes through.
type AgreementStore interface {
	Create(a *models.Agreement) (trackingID string, err error)
	FindByTrackingID(id string) (*models.Agreement, error)
	List() ([]models.Agreement, error)
	UpdateStatus(id, status string) (bool, error)
	Delete(id string) (bool, error)
}

// Notifier dispatches the confirmation messages for a persisted
// agreement. Implementations send the operator and submitter copies.
type Notifier interface {
	Notify(ctx context.Context, a *models.Agreement) error
}

// AgreementService owns the submission pipeline and the admin
// query/mutation surface over persisted agreements.
type AgreementService struct {
	store     AgreementStore
	validator *validate.Validator
	notifier  Notifier
}

func NewAgreementService(store AgreementStore, v *validate.Validator, n Notifier) *AgreementService {
	return &AgreementService{store: store, validator: v, notifier: n}
}

// Submit runs the pipeline: full-record validation, persistence with
// system-assigned lifecycle fields, then best-effort notification.
// The tracking ID from the write is returned whenever persistence
// succeeds, regardless of the notification outcome.
func (s *AgreementService) Submit(ctx context.Context, draft *wizard.Draft) (string, error) {
	// The per-step checks during navigation are advisory; this pass is
	// authoritative and catches anything they missed, like a payout
	// method changed after its step already validated.
	if errs := s.validator.CheckAll(draft); len(errs) > 0 {
		return "", &ValidationError{Fields: errs}
	}

	a := draft.ToAgreement()
	trackingID, err := s.store.Create(a)
	if err != nil {
		return "", &PersistenceError{Err: err}
	}

	nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(nctx, a); err != nil {
		log.Printf("Warning: notification dispatch failed for agreement %s: %v", trackingID, err)
	}

	return trackingID, nil
}

// Get resolves a tracking ID to its agreement.
func (s *AgreementService) Get(id string) (*models.Agreement, error) {
	a, err := s.store.FindByTrackingID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// List returns all agreements. Search and sort over the list are
// client-side projections by design.
func (s *AgreementService) List() ([]models.Agreement, error) {
	return s.store.List()
}

// UpdateStatus overwrites the status unconditionally within the fixed
// enumeration. Any status may follow any other.
func (s *AgreementService) UpdateStatus(id, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}
	matched, err := s.store.UpdateStatus(id, status)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

// Delete removes an agreement irreversibly.
func (s *AgreementService) Delete(id string) error {
	matched, err := s.store.Delete(id)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}
