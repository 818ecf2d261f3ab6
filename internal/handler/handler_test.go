package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/echologistics/carrier-intake/internal/handler"
	"github.com/echologistics/carrier-intake/internal/models"
	"github.com/echologistics/carrier-intake/internal/service"
	"github.com/echologistics/carrier-intake/internal/validate"
	"github.com/echologistics/carrier-intake/internal/wizard"
)

var companies = []string{"Echo Logistics Inc", "Dedicated Global Carrier LLC"}

type fakeStore struct {
	records map[string]*models.Agreement
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*models.Agreement)}
}

func (f *fakeStore) Create(a *models.Agreement) (string, error) {
	f.nextID++
	a.TrackingID = fmt.Sprintf("trk-%d", f.nextID)
	a.Status = models.StatusSubmitted
	a.SubmittedAt = time.Now().UTC().Format(time.RFC3339)
	cp := *a
	f.records[a.TrackingID] = &cp
	return a.TrackingID, nil
}

func (f *fakeStore) FindByTrackingID(id string) (*models.Agreement, error) {
	return f.records[id], nil
}

func (f *fakeStore) List() ([]models.Agreement, error) {
	out := make([]models.Agreement, 0, len(f.records))
	for _, a := range f.records {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(id, status string) (bool, error) {
	a, ok := f.records[id]
	if !ok {
		return false, nil
	}
	a.Status = status
	return true, nil
}

func (f *fakeStore) Delete(id string) (bool, error) {
	if _, ok := f.records[id]; !ok {
		return false, nil
	}
	delete(f.records, id)
	return true, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, a *models.Agreement) error { return nil }

func newTestRouter(store *fakeStore) http.Handler {
	validator := validate.New(companies)
	svc := service.NewAgreementService(store, validator, noopNotifier{})
	sessions := wizard.NewSessions(time.Hour)

	agreementH := handler.NewAgreementHandler(svc)
	wizardH := handler.NewWizardHandler(sessions, validator, svc)
	adminH := handler.NewAdminHandler(svc)

	r := chi.NewRouter()
	r.Get("/track", agreementH.Track)
	r.Post("/api/v1/agreements", agreementH.Submit)
	r.Get("/api/v1/agreements/{trackingId}", agreementH.Get)
	r.Get("/api/v1/agreements", adminH.List)
	r.Patch("/api/v1/agreements/{trackingId}/status", adminH.UpdateStatus)
	r.Delete("/api/v1/agreements/{trackingId}", adminH.Delete)
	r.Post("/api/v1/wizard", wizardH.Create)
	r.Post("/api/v1/wizard/{sessionId}/next", wizardH.Next)
	r.Post("/api/v1/wizard/{sessionId}/back", wizardH.Back)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validDraft() map[string]any {
	return map[string]any{
		"dispatchCompany": "Echo Logistics Inc",
		"carrierFullName": "Jane Doe",
		"mcNumber":        "MC123456",
		"dotNumber":       "1234567",
		"phoneNumber":     "+15551234567",
		"paymentMethod":   "Zelle",
		"signature":       "Jane Doe",
		"printName":       "Jane Doe",
		"date":            "2026-08-30",
		"email":           "jane@example.com",
		"agreedToTerms":   true,
		"howYouGetPaid":   "factoring",
	}
}

func TestSubmitAndTrack(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/agreements", validDraft())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		TrackingID string `json:"trackingId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.TrackingID == "" {
		t.Fatal("expected a tracking ID")
	}

	// Lookup by path and by deep link.
	for _, path := range []string{
		"/api/v1/agreements/" + created.TrackingID,
		"/track?id=" + created.TrackingID,
	} {
		rec = doJSON(t, r, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		var a models.Agreement
		if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if a.CarrierFullName != "Jane Doe" || a.Status != models.StatusSubmitted {
			t.Fatalf("%s: unexpected record %+v", path, a)
		}
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	draft := validDraft()
	draft["dotNumber"] = "12345"
	rec := doJSON(t, r, http.MethodPost, "/api/v1/agreements", draft)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		FieldErrors []validate.FieldError `json:"fieldErrors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.FieldErrors) != 1 || resp.FieldErrors[0].Field != "dotNumber" {
		t.Fatalf("expected dotNumber field error, got %v", resp.FieldErrors)
	}
	if len(store.records) != 0 {
		t.Fatal("validation failure must not persist anything")
	}
}

func TestTrackNotFound(t *testing.T) {
	r := newTestRouter(newFakeStore())
	rec := doJSON(t, r, http.MethodGet, "/track?id=missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodGet, "/track", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without id, got %d", rec.Code)
	}
}

func TestUpdateStatus(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/agreements", validDraft())
	var created struct {
		TrackingID string `json:"trackingId"`
	}
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec = doJSON(t, r, http.MethodPatch, "/api/v1/agreements/"+created.TrackingID+"/status",
		map[string]string{"status": "Completed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.records[created.TrackingID].Status != models.StatusCompleted {
		t.Fatalf("status not updated: %+v", store.records[created.TrackingID])
	}

	// Unknown ID returns an error response, not a panic, so the admin
	// view can revert its optimistic mutation.
	rec = doJSON(t, r, http.MethodPatch, "/api/v1/agreements/missing/status",
		map[string]string{"status": "Completed"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}

	// Out-of-enum status.
	rec = doJSON(t, r, http.MethodPatch, "/api/v1/agreements/"+created.TrackingID+"/status",
		map[string]string{"status": "Archived"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/agreements", validDraft())
	var created struct {
		TrackingID string `json:"trackingId"`
	}
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/agreements/"+created.TrackingID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodDelete, "/api/v1/agreements/"+created.TrackingID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestWizardSessionFlow(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/wizard", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var created struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	next := func(patch map[string]any) *wizard.Snapshot {
		t.Helper()
		rec := doJSON(t, r, http.MethodPost, "/api/v1/wizard/"+created.SessionID+"/next", patch)
		if rec.Code != http.StatusOK {
			t.Fatalf("next: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var snap wizard.Snapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode snapshot: %v", err)
		}
		return &snap
	}

	// Gated: empty step 1 stays put.
	snap := next(map[string]any{})
	if snap.Step != 0 || len(snap.FieldErrors) == 0 {
		t.Fatalf("expected gated step 1, got %+v", snap)
	}

	snap = next(map[string]any{"dispatchCompany": "Echo Logistics Inc"})
	if snap.Step != 1 {
		t.Fatalf("expected step 2, got %d", snap.Step)
	}
	snap = next(map[string]any{
		"carrierFullName": "Jane Doe", "mcNumber": "MC123456",
		"dotNumber": "1234567", "phoneNumber": "+15551234567",
	})
	if snap.Step != 2 {
		t.Fatalf("expected step 3, got %d", snap.Step)
	}
	snap = next(map[string]any{"paymentMethod": "Zelle"})
	if snap.Step != 3 {
		t.Fatalf("expected step 4, got %d", snap.Step)
	}
	snap = next(map[string]any{
		"signature": "Jane Doe", "printName": "Jane Doe", "date": "2026-08-30",
		"email": "jane@example.com", "agreedToTerms": true, "howYouGetPaid": "factoring",
	})
	if snap.Phase != wizard.PhaseCompleted {
		t.Fatalf("expected completed wizard, got %+v", snap)
	}
	if snap.Result == nil || snap.Result.TrackingID == "" {
		t.Fatalf("expected tracking ID in result, got %+v", snap.Result)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(store.records))
	}

	// Unknown session.
	rec = doJSON(t, r, http.MethodPost, "/api/v1/wizard/nope/back", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", rec.Code)
	}
}
