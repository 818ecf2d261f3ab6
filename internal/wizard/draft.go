package wizard

import "github.com/echologistics/carrier-intake/internal/models"

// Draft is the in-progress, unpersisted form state. It is owned by the
// state machine and discarded on successful submission or reset.
type Draft struct {
	DispatchCompany string `json:"dispatchCompany"`

	CarrierFullName string `json:"carrierFullName"`
	CompanyName     string `json:"companyName"`
	MCNumber        string `json:"mcNumber"`
	DOTNumber       string `json:"dotNumber"`
	PhoneNumber     string `json:"phoneNumber"`

	DedicatedLaneSetup  bool `json:"dedicatedLaneSetup"`
	TWICCardApplication bool `json:"twicCardApplication"`
	TrailerRental       bool `json:"trailerRental"`
	FactoringSetup      bool `json:"factoringSetup"`
	InsuranceAssistance bool `json:"insuranceAssistance"`

	PaymentMethod string `json:"paymentMethod"`

	Signature     string `json:"signature"`
	PrintName     string `json:"printName"`
	Date          string `json:"date"`
	Email         string `json:"email"`
	AgreedToTerms bool   `json:"agreedToTerms"`
	HowYouGetPaid string `json:"howYouGetPaid"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber"`
}

// NewDraft returns an empty draft with the reference defaults.
func NewDraft() *Draft {
	return &Draft{HowYouGetPaid: models.PayoutFactoring}
}

// String implements validate.Draft.
func (d *Draft) String(field string) string {
	switch field {
	case "dispatchCompany":
		return d.DispatchCompany
	case "carrierFullName":
		return d.CarrierFullName
	case "companyName":
		return d.CompanyName
	case "mcNumber":
		return d.MCNumber
	case "dotNumber":
		return d.DOTNumber
	case "phoneNumber":
		return d.PhoneNumber
	case "paymentMethod":
		return d.PaymentMethod
	case "signature":
		return d.Signature
	case "printName":
		return d.PrintName
	case "date":
		return d.Date
	case "email":
		return d.Email
	case "howYouGetPaid":
		return d.HowYouGetPaid
	case "bankName":
		return d.BankName
	case "accountNumber":
		return d.AccountNumber
	case "routingNumber":
		return d.RoutingNumber
	}
	return ""
}

// Bool implements validate.Draft.
func (d *Draft) Bool(field string) bool {
	switch field {
	case "dedicatedLaneSetup":
		return d.DedicatedLaneSetup
	case "twicCardApplication":
		return d.TWICCardApplication
	case "trailerRental":
		return d.TrailerRental
	case "factoringSetup":
		return d.FactoringSetup
	case "insuranceAssistance":
		return d.InsuranceAssistance
	case "agreedToTerms":
		return d.AgreedToTerms
	}
	return false
}

// Merge copies the fields named in fields from src into d. The wizard
// only accepts writes to the current step's owned fields so a Next with
// stale later-step values cannot clobber them.
func (d *Draft) Merge(src *Draft, fields []string) {
	for _, f := range fields {
		switch f {
		case "dispatchCompany":
			d.DispatchCompany = src.DispatchCompany
		case "carrierFullName":
			d.CarrierFullName = src.CarrierFullName
		case "companyName":
			d.CompanyName = src.CompanyName
		case "mcNumber":
			d.MCNumber = src.MCNumber
		case "dotNumber":
			d.DOTNumber = src.DOTNumber
		case "phoneNumber":
			d.PhoneNumber = src.PhoneNumber
		case "dedicatedLaneSetup":
			d.DedicatedLaneSetup = src.DedicatedLaneSetup
		case "twicCardApplication":
			d.TWICCardApplication = src.TWICCardApplication
		case "trailerRental":
			d.TrailerRental = src.TrailerRental
		case "factoringSetup":
			d.FactoringSetup = src.FactoringSetup
		case "insuranceAssistance":
			d.InsuranceAssistance = src.InsuranceAssistance
		case "paymentMethod":
			d.PaymentMethod = src.PaymentMethod
		case "signature":
			d.Signature = src.Signature
		case "printName":
			d.PrintName = src.PrintName
		case "date":
			d.Date = src.Date
		case "email":
			d.Email = src.Email
		case "agreedToTerms":
			d.AgreedToTerms = src.AgreedToTerms
		case "howYouGetPaid":
			d.HowYouGetPaid = src.HowYouGetPaid
		case "bankName":
			d.BankName = src.BankName
		case "accountNumber":
			d.AccountNumber = src.AccountNumber
		case "routingNumber":
			d.RoutingNumber = src.RoutingNumber
		}
	}
}

// ToAgreement converts the draft to an agreement for persistence. The
// lifecycle fields stay empty; the repository assigns them.
func (d *Draft) ToAgreement() *models.Agreement {
	a := &models.Agreement{
		DispatchCompany:     d.DispatchCompany,
		CarrierFullName:     d.CarrierFullName,
		CompanyName:         d.CompanyName,
		MCNumber:            d.MCNumber,
		DOTNumber:           d.DOTNumber,
		PhoneNumber:         d.PhoneNumber,
		DedicatedLaneSetup:  d.DedicatedLaneSetup,
		TWICCardApplication: d.TWICCardApplication,
		TrailerRental:       d.TrailerRental,
		FactoringSetup:      d.FactoringSetup,
		InsuranceAssistance: d.InsuranceAssistance,
		PaymentMethod:       d.PaymentMethod,
		Signature:           d.Signature,
		PrintName:           d.PrintName,
		Date:                d.Date,
		Email:               d.Email,
		AgreedToTerms:       d.AgreedToTerms,
		HowYouGetPaid:       d.HowYouGetPaid,
	}
	if d.HowYouGetPaid == models.PayoutACH {
		a.BankName = d.BankName
		a.AccountNumber = d.AccountNumber
		a.RoutingNumber = d.RoutingNumber
	}
	return a
}
