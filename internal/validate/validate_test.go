package validate_test

import (
	"testing"

	"github.com/echologistics/carrier-intake/internal/validate"
	"github.com/echologistics/carrier-intake/internal/wizard"
)

var companies = []string{"Echo Logistics Inc", "Dedicated Global Carrier LLC"}

func validDraft() *wizard.Draft {
	return &wizard.Draft{
		DispatchCompany: "Echo Logistics Inc",
		CarrierFullName: "Jane Doe",
		CompanyName:     "Acme Trucking Co.",
		MCNumber:        "MC123456",
		DOTNumber:       "1234567",
		PhoneNumber:     "+15551234567",
		PaymentMethod:   "Zelle",
		Signature:       "Jane Doe",
		PrintName:       "Jane Doe",
		Date:            "2026-08-30",
		Email:           "jane@example.com",
		AgreedToTerms:   true,
		HowYouGetPaid:   "factoring",
	}
}

func fieldsOf(errs []validate.FieldError) map[string]string {
	m := make(map[string]string, len(errs))
	for _, e := range errs {
		m[e.Field] = e.Message
	}
	return m
}

func TestFullRecordValid(t *testing.T) {
	v := validate.New(companies)
	if errs := v.CheckAll(validDraft()); len(errs) != 0 {
		t.Fatalf("expected valid draft, got %v", errs)
	}
}

func TestFieldRules(t *testing.T) {
	v := validate.New(companies)

	cases := []struct {
		name   string
		mutate func(*wizard.Draft)
		field  string
	}{
		{"short dot number", func(d *wizard.Draft) { d.DOTNumber = "12345" }, "dotNumber"},
		{"long dot number", func(d *wizard.Draft) { d.DOTNumber = "123456789" }, "dotNumber"},
		{"non-numeric dot number", func(d *wizard.Draft) { d.DOTNumber = "12a4567" }, "dotNumber"},
		{"phone leading zero", func(d *wizard.Draft) { d.PhoneNumber = "+05551234567" }, "phoneNumber"},
		{"phone letters", func(d *wizard.Draft) { d.PhoneNumber = "call-me" }, "phoneNumber"},
		{"bad email", func(d *wizard.Draft) { d.Email = "jane-at-example" }, "email"},
		{"missing name", func(d *wizard.Draft) { d.CarrierFullName = "" }, "carrierFullName"},
		{"short name", func(d *wizard.Draft) { d.CarrierFullName = "J" }, "carrierFullName"},
		{"missing mc", func(d *wizard.Draft) { d.MCNumber = "" }, "mcNumber"},
		{"missing payment method", func(d *wizard.Draft) { d.PaymentMethod = "" }, "paymentMethod"},
		{"terms not agreed", func(d *wizard.Draft) { d.AgreedToTerms = false }, "agreedToTerms"},
		{"unknown dispatch company", func(d *wizard.Draft) { d.DispatchCompany = "Shady Dispatch" }, "dispatchCompany"},
		{"missing dispatch company", func(d *wizard.Draft) { d.DispatchCompany = "" }, "dispatchCompany"},
		{"bad payout method", func(d *wizard.Draft) { d.HowYouGetPaid = "cash" }, "howYouGetPaid"},
		{"bad date", func(d *wizard.Draft) { d.Date = "08/30/2026" }, "date"},
		{"short print name", func(d *wizard.Draft) { d.PrintName = "JD" }, "printName"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(d)
			errs := v.CheckAll(d)
			if len(errs) != 1 {
				t.Fatalf("expected exactly one failure, got %v", errs)
			}
			if errs[0].Field != tc.field {
				t.Fatalf("expected failure on %q, got %q", tc.field, errs[0].Field)
			}
		})
	}
}

func TestACHRequiresBankFields(t *testing.T) {
	v := validate.New(companies)

	d := validDraft()
	d.HowYouGetPaid = "ach"
	errs := v.CheckAll(d)
	got := fieldsOf(errs)
	for _, f := range []string{"bankName", "accountNumber", "routingNumber"} {
		if _, ok := got[f]; !ok {
			t.Errorf("expected failure on %q, got %v", f, errs)
		}
	}
	if _, ok := got["howYouGetPaid"]; ok {
		t.Errorf("failure must be attributed to bank fields, not howYouGetPaid: %v", errs)
	}
}

func TestACHFailuresScopedToMissingSubset(t *testing.T) {
	v := validate.New(companies)

	d := validDraft()
	d.HowYouGetPaid = "ach"
	d.BankName = ""
	d.AccountNumber = "1234"
	d.RoutingNumber = "5678"
	errs := v.CheckAll(d)
	if len(errs) != 1 || errs[0].Field != "bankName" {
		t.Fatalf("expected single failure scoped to bankName, got %v", errs)
	}
}

func TestFactoringIgnoresBankFields(t *testing.T) {
	v := validate.New(companies)

	d := validDraft()
	d.HowYouGetPaid = "factoring"
	d.BankName = ""
	d.AccountNumber = ""
	d.RoutingNumber = ""
	if errs := v.CheckAll(d); len(errs) != 0 {
		t.Fatalf("bank fields are irrelevant for factoring, got %v", errs)
	}
}

func TestStepScopedSubset(t *testing.T) {
	v := validate.New(companies)

	// A draft with only step 1 filled must pass a step-1 scoped check
	// even though the rest of the record is empty.
	d := &wizard.Draft{DispatchCompany: "Echo Logistics Inc"}
	if errs := v.Check(d, []string{"dispatchCompany"}); len(errs) != 0 {
		t.Fatalf("step-scoped check leaked other fields: %v", errs)
	}

	// Step-2 scope reports only step-2 failures.
	errs := v.Check(d, []string{"carrierFullName", "mcNumber", "dotNumber", "phoneNumber"})
	got := fieldsOf(errs)
	for _, f := range []string{"carrierFullName", "mcNumber", "dotNumber", "phoneNumber"} {
		if _, ok := got[f]; !ok {
			t.Errorf("expected failure on %q, got %v", f, errs)
		}
	}
	if _, ok := got["email"]; ok {
		t.Errorf("email is out of scope for step 2: %v", errs)
	}
}

func TestCrossFieldFiresWhenBankFieldInScope(t *testing.T) {
	v := validate.New(companies)

	// Payout method switched to ach after its own step passed; a check
	// scoped to the bank fields must still catch the omission.
	d := validDraft()
	d.HowYouGetPaid = "ach"
	errs := v.Check(d, []string{"bankName", "accountNumber", "routingNumber"})
	if len(errs) != 3 {
		t.Fatalf("expected three bank field failures, got %v", errs)
	}
}
