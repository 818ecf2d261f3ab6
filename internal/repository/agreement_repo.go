package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/echologistics/carrier-intake/internal/db"
	"github.com/echologistics/carrier-intake/internal/docstore"
	"github.com/echologistics/carrier-intake/internal/models"
)

const AgreementsCollection = "_intake_agreements"

type AgreementRepo struct {
	pool *db.Pool
	now  func() time.Time
}

func NewAgreementRepo(pool *db.Pool) *AgreementRepo {
	return &AgreementRepo{pool: pool, now: time.Now}
}

func (r *AgreementRepo) EnsureIndexes() error {
	c := r.pool.Get()
	if err := c.CreateUniqueIndex(AgreementsCollection, "trackingId"); err != nil {
		return err
	}
	if err := c.CreateIndex(AgreementsCollection, "status"); err != nil {
		return err
	}
	return c.CreateIndex(AgreementsCollection, "submittedAt")
}

// Create persists a new agreement. The tracking ID, status and
// submission timestamp are assigned here, on the server side, exactly
// once. Returns the tracking ID.
func (r *AgreementRepo) Create(a *models.Agreement) (string, error) {
	a.TrackingID = uuid.NewString()
	a.Status = models.StatusSubmitted
	a.SubmittedAt = r.now().UTC().Format(time.RFC3339)

	c := r.pool.Get()
	result, err := c.Insert(AgreementsCollection, agreementToDoc(a))
	if err != nil {
		return "", err
	}
	a.ID = extractID(result)
	return a.TrackingID, nil
}

// FindByTrackingID returns the agreement for id, or nil when absent.
func (r *AgreementRepo) FindByTrackingID(id string) (*models.Agreement, error) {
	c := r.pool.Get()
	doc, err := c.FindOne(AgreementsCollection, map[string]any{"trackingId": id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToAgreement(doc)
}

// List returns every agreement, newest first. Search and sort are
// client-side projections; the source list is otherwise unfiltered.
func (r *AgreementRepo) List() ([]models.Agreement, error) {
	c := r.pool.Get()
	docs, err := c.Find(AgreementsCollection, map[string]any{}, &docstore.FindOptions{
		Sort: map[string]any{"submittedAt": -1},
	})
	if err != nil {
		return nil, err
	}
	out := make([]models.Agreement, 0, len(docs))
	for _, d := range docs {
		a, err := docToAgreement(d)
		if err != nil {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

// UpdateStatus overwrites the status of the agreement with the given
// tracking ID. Returns false when no record matched.
func (r *AgreementRepo) UpdateStatus(id, status string) (bool, error) {
	c := r.pool.Get()
	result, err := c.UpdateOne(AgreementsCollection,
		map[string]any{"trackingId": id},
		map[string]any{"$set": map[string]any{"status": status}})
	if err != nil {
		return false, err
	}
	return affected(result) > 0, nil
}

// Delete removes the agreement with the given tracking ID wholesale.
// Returns false when no record matched.
func (r *AgreementRepo) Delete(id string) (bool, error) {
	c := r.pool.Get()
	result, err := c.DeleteOne(AgreementsCollection, map[string]any{"trackingId": id})
	if err != nil {
		return false, err
	}
	return affected(result) > 0, nil
}

// CountByStatus returns the number of agreements in the given status.
func (r *AgreementRepo) CountByStatus(status string) (int, error) {
	c := r.pool.Get()
	return c.Count(AgreementsCollection, map[string]any{"status": status})
}

// Count returns the total number of agreements.
func (r *AgreementRepo) Count() (int, error) {
	c := r.pool.Get()
	return c.Count(AgreementsCollection, map[string]any{})
}

func agreementToDoc(a *models.Agreement) map[string]any {
	data, _ := json.Marshal(a)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	return doc
}

func docToAgreement(doc map[string]any) (*models.Agreement, error) {
	normalizeID(doc)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal agreement doc: %w", err)
	}
	var a models.Agreement
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal agreement: %w", err)
	}
	return &a, nil
}
