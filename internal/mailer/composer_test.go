package mailer

import (
	"strings"
	"testing"

	"github.com/echologistics/carrier-intake/internal/models"
)

func achAgreement() *models.Agreement {
	return &models.Agreement{
		TrackingID:      "trk-42",
		DispatchCompany: "Echo Logistics Inc",
		CarrierFullName: "Jane Doe",
		MCNumber:        "MC123456",
		DOTNumber:       "1234567",
		PhoneNumber:     "+15551234567",
		Email:           "jane@example.com",
		TrailerRental:   true,
		PaymentMethod:   "Zelle",
		Signature:       "Jane Doe",
		PrintName:       "Jane Doe",
		Date:            "2026-08-30",
		HowYouGetPaid:   models.PayoutACH,
		BankName:        "First Carrier Bank",
		AccountNumber:   "000123456",
		RoutingNumber:   "110000000",
		Status:          models.StatusSubmitted,
		SubmittedAt:     "2026-08-30T12:00:00Z",
	}
}

func TestSubmitterCopyOmitsBankFields(t *testing.T) {
	msg, err := ComposeSubmitter(achAgreement())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if msg.To != "jane@example.com" {
		t.Fatalf("expected submitter address, got %q", msg.To)
	}
	if !strings.Contains(msg.Subject, "trk-42") {
		t.Fatalf("subject must carry the tracking ID: %q", msg.Subject)
	}
	for _, sensitive := range []string{"First Carrier Bank", "000123456", "110000000"} {
		if strings.Contains(msg.HTML, sensitive) {
			t.Fatalf("submitter copy leaked %q", sensitive)
		}
	}
	if !strings.Contains(msg.HTML, "ACH Direct Deposit") {
		t.Fatal("submitter copy should still name the payout method")
	}
	if !strings.Contains(msg.HTML, "Trailer Rental") {
		t.Fatal("expected selected services in the body")
	}
}

func TestOperatorCopyIncludesBankFieldsForACH(t *testing.T) {
	msg, err := ComposeOperator(achAgreement(), "ops@echologistics.example")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if msg.To != "ops@echologistics.example" {
		t.Fatalf("expected operator address, got %q", msg.To)
	}
	for _, field := range []string{"First Carrier Bank", "000123456", "110000000"} {
		if !strings.Contains(msg.HTML, field) {
			t.Fatalf("operator copy missing %q", field)
		}
	}
}

func TestOperatorCopyForFactoring(t *testing.T) {
	a := achAgreement()
	a.HowYouGetPaid = models.PayoutFactoring
	a.BankName, a.AccountNumber, a.RoutingNumber = "", "", ""

	msg, err := ComposeOperator(a, "ops@echologistics.example")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.Contains(msg.HTML, "Factoring") {
		t.Fatal("expected factoring payout label")
	}
	if strings.Contains(msg.HTML, "Bank Name:") {
		t.Fatal("factoring copy must not render bank fields")
	}
}
