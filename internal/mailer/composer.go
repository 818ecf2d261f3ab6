// Package mailer composes and dispatches the confirmation emails for a
// persisted agreement: one operator-facing copy with full payout detail
// and one submitter-facing copy with banking fields redacted.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/echologistics/carrier-intake/internal/models"
)

// Message is a composed email ready for dispatch.
type Message struct {
	To      string
	Subject string
	HTML    string
}

const bodyTemplate = `<div style="font-family:Arial,sans-serif;line-height:1.6;color:#333;max-width:600px;margin:0 auto;border:1px solid #eee;padding:20px">
<h1 style="text-align:center;border-bottom:1px solid #eee;padding-bottom:10px">{{.Heading}}</h1>
<p>Dear {{.Agreement.CarrierFullName}},</p>
<p>{{.Intro}}</p>
<h2 style="font-size:18px;border-bottom:1px solid #ccc;padding-bottom:5px">Agreement Summary</h2>
<div><b>Tracking ID:</b> {{.Agreement.TrackingID}}</div>
<div><b>Submission Date:</b> {{.Agreement.SubmittedAt}}</div>
<h2 style="font-size:18px;border-bottom:1px solid #ccc;padding-bottom:5px">Carrier Information</h2>
<div><b>Carrier Full Name:</b> {{.Agreement.CarrierFullName}}</div>
{{if .Agreement.CompanyName}}<div><b>Company Name:</b> {{.Agreement.CompanyName}}</div>{{end}}
<div><b>MC Number:</b> {{.Agreement.MCNumber}}</div>
<div><b>DOT Number:</b> {{.Agreement.DOTNumber}}</div>
<div><b>Email:</b> {{.Agreement.Email}}</div>
<div><b>Phone Number:</b> {{.Agreement.PhoneNumber}}</div>
<h2 style="font-size:18px;border-bottom:1px solid #ccc;padding-bottom:5px">Service &amp; Payment Details</h2>
<div><b>Dispatch Company:</b> {{.Agreement.DispatchCompany}}</div>
<div><b>Selected Services:</b>{{if .Services}}<ul>{{range .Services}}<li>{{.}}</li>{{end}}</ul>{{else}} None{{end}}</div>
<div><b>Payment Method:</b> {{.Agreement.PaymentMethod}}</div>
<h2 style="font-size:18px;border-bottom:1px solid #ccc;padding-bottom:5px">Payment Payout Details</h2>
<div><b>Payout Method:</b> {{.PayoutLabel}}</div>
{{if .ShowBankFields}}
<div><b>Bank Name:</b> {{.Agreement.BankName}}</div>
<div><b>Account Number:</b> {{.Agreement.AccountNumber}}</div>
<div><b>Routing Number:</b> {{.Agreement.RoutingNumber}}</div>
{{end}}
<h2 style="font-size:18px;border-bottom:1px solid #ccc;padding-bottom:5px">Signature</h2>
<div><b>Signed By:</b> {{.Agreement.PrintName}} ({{.Agreement.Signature}})</div>
<div><b>Date Signed:</b> {{.Agreement.Date}}</div>
<p style="margin-top:30px;border-top:1px solid #eee;padding-top:10px;text-align:center;font-size:12px;color:#888">{{.Footer}}</p>
</div>`

var bodyTmpl = template.Must(template.New("body").Parse(bodyTemplate))

type bodyData struct {
	Heading        string
	Intro          string
	Footer         string
	Agreement      *models.Agreement
	Services       []string
	PayoutLabel    string
	ShowBankFields bool
}

func payoutLabel(p models.PayoutInfo) string {
	if p.Method == models.PayoutACH {
		return "ACH Direct Deposit"
	}
	return "Factoring"
}

// ComposeSubmitter renders the submitter-facing confirmation. Payout
// banking fields are never included in this copy.
func ComposeSubmitter(a *models.Agreement) (Message, error) {
	var buf bytes.Buffer
	err := bodyTmpl.Execute(&buf, bodyData{
		Heading:        "Service Agreement Confirmation",
		Intro:          "Thank you for submitting your service agreement. This email confirms that we have received your submission. Please keep this for your records.",
		Footer:         "You can track the status of your agreement at any time using your tracking ID.",
		Agreement:      a,
		Services:       a.SelectedServices(),
		PayoutLabel:    payoutLabel(a.Payout()),
		ShowBankFields: false,
	})
	if err != nil {
		return Message{}, fmt.Errorf("compose submitter email: %w", err)
	}
	return Message{
		To:      a.Email,
		Subject: fmt.Sprintf("Your Service Agreement Confirmation - ID: %s", a.TrackingID),
		HTML:    buf.String(),
	}, nil
}

// ComposeOperator renders the operator-facing copy with full payout
// detail for processing.
func ComposeOperator(a *models.Agreement, operatorEmail string) (Message, error) {
	payout := a.Payout()
	var buf bytes.Buffer
	err := bodyTmpl.Execute(&buf, bodyData{
		Heading:        "New Service Agreement Submission",
		Intro:          "A new service agreement has been submitted and is ready for review.",
		Footer:         "Open the admin dashboard to process this agreement.",
		Agreement:      a,
		Services:       a.SelectedServices(),
		PayoutLabel:    payoutLabel(payout),
		ShowBankFields: payout.Method == models.PayoutACH,
	})
	if err != nil {
		return Message{}, fmt.Errorf("compose operator email: %w", err)
	}
	return Message{
		To:      operatorEmail,
		Subject: fmt.Sprintf("New Service Agreement Submission - ID: %s", a.TrackingID),
		HTML:    buf.String(),
	}, nil
}
