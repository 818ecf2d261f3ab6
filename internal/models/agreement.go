package models

// Status values are wire-visible, case-sensitive strings.
const (
	StatusSubmitted  = "Submitted"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusRejected   = "Rejected"
)

// ValidStatus reports whether s is one of the four agreement statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Payout methods.
const (
	PayoutFactoring = "factoring"
	PayoutACH       = "ach"
)

// Agreement is a persisted service agreement submission.
//
// TrackingID, Status and SubmittedAt are system-assigned at persistence
// time; everything else is user-entered via the intake wizard.
type Agreement struct {
	ID         string `json:"_id,omitempty"`
	TrackingID string `json:"trackingId,omitempty"`

	// Step 1
	DispatchCompany string `json:"dispatchCompany"`

	// Step 2: carrier information
	CarrierFullName string `json:"carrierFullName"`
	CompanyName     string `json:"companyName,omitempty"`
	MCNumber        string `json:"mcNumber"`
	DOTNumber       string `json:"dotNumber"`
	PhoneNumber     string `json:"phoneNumber"`

	// Step 2: optional services
	DedicatedLaneSetup  bool `json:"dedicatedLaneSetup"`
	TWICCardApplication bool `json:"twicCardApplication"`
	TrailerRental       bool `json:"trailerRental"`
	FactoringSetup      bool `json:"factoringSetup"`
	InsuranceAssistance bool `json:"insuranceAssistance"`

	// Step 3
	PaymentMethod string `json:"paymentMethod"`

	// Step 4: signature block and payout
	Signature     string `json:"signature"`
	PrintName     string `json:"printName"`
	Date          string `json:"date"` // calendar date, yyyy-mm-dd
	Email         string `json:"email"`
	AgreedToTerms bool   `json:"agreedToTerms"`
	HowYouGetPaid string `json:"howYouGetPaid"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`

	// Lifecycle, system-assigned
	Status      string `json:"status"`
	SubmittedAt string `json:"submittedAt"`
}

// PayoutInfo is the discriminated view of the payout fields. The bank
// fields are only meaningful when Method is "ach".
type PayoutInfo struct {
	Method        string
	BankName      string
	AccountNumber string
	RoutingNumber string
}

// Payout returns the payout variant for a. For factoring payouts the bank
// fields are dropped even if the client sent them.
func (a *Agreement) Payout() PayoutInfo {
	if a.HowYouGetPaid == PayoutACH {
		return PayoutInfo{
			Method:        PayoutACH,
			BankName:      a.BankName,
			AccountNumber: a.AccountNumber,
			RoutingNumber: a.RoutingNumber,
		}
	}
	return PayoutInfo{Method: a.HowYouGetPaid}
}

// SelectedServices returns the display labels of the services the carrier
// opted into, in form order.
func (a *Agreement) SelectedServices() []string {
	var out []string
	for _, s := range []struct {
		label string
		on    bool
	}{
		{"Dedicated Lane Setup", a.DedicatedLaneSetup},
		{"TWIC Card Application", a.TWICCardApplication},
		{"Trailer Rental", a.TrailerRental},
		{"Factoring Setup", a.FactoringSetup},
		{"Insurance Assistance", a.InsuranceAssistance},
	} {
		if s.on {
			out = append(out, s.label)
		}
	}
	return out
}
