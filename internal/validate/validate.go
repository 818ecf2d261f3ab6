// Package validate checks agreement drafts against the intake form's
// declarative rule set. Rules are evaluated per field path so the wizard
// can run a step-scoped subset during navigation and the submission
// pipeline can re-run the full set authoritatively before persistence.
package validate

import (
	"regexp"
	"strings"
)

// FieldError is a single validation failure attributed to one field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	dotNumberRe = regexp.MustCompile(`^[0-9]{6,8}$`)
	phoneRe     = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	emailRe     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	dateRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Draft is the flat field view the rules run against. String getters
// return "" and bool getters false for absent fields.
type Draft interface {
	String(field string) string
	Bool(field string) bool
}

// Validator holds the configured rule set. The dispatch company
// allow-list is the only deployment-dependent rule.
type Validator struct {
	dispatchCompanies []string
}

func New(dispatchCompanies []string) *Validator {
	return &Validator{dispatchCompanies: dispatchCompanies}
}

type rule struct {
	field string
	check func(v *Validator, d Draft) string // non-empty = failure message
}

func minLen(field, msg string, n int) rule {
	return rule{field, func(_ *Validator, d Draft) string {
		if len(strings.TrimSpace(d.String(field))) < n {
			return msg
		}
		return ""
	}}
}

func pattern(field, msg string, re *regexp.Regexp) rule {
	return rule{field, func(_ *Validator, d Draft) string {
		if !re.MatchString(d.String(field)) {
			return msg
		}
		return ""
	}}
}

// rules covers every independently checked field. The ach bank-field
// requirement is cross-field and handled separately in Check.
var rules = []rule{
	{"dispatchCompany", func(v *Validator, d Draft) string {
		val := d.String("dispatchCompany")
		if val == "" {
			return "Please select a dispatch company."
		}
		for _, c := range v.dispatchCompanies {
			if c == val {
				return ""
			}
		}
		return "Please select a dispatch company from the list."
	}},
	minLen("carrierFullName", "Please enter a valid name.", 2),
	minLen("mcNumber", "Please enter a valid MC number.", 2),
	pattern("dotNumber", "Enter a valid 6-8 digit DOT number.", dotNumberRe),
	pattern("phoneNumber", "Enter a valid phone number.", phoneRe),
	pattern("email", "Enter a valid email address.", emailRe),
	minLen("paymentMethod", "Please select a payment option.", 1),
	minLen("signature", "Please sign the agreement.", 2),
	minLen("printName", "Please enter the full name.", 3),
	pattern("date", "Enter the signing date.", dateRe),
	{"agreedToTerms", func(_ *Validator, d Draft) string {
		if !d.Bool("agreedToTerms") {
			return "You must agree to the terms and conditions."
		}
		return ""
	}},
	{"howYouGetPaid", func(_ *Validator, d Draft) string {
		switch d.String("howYouGetPaid") {
		case "factoring", "ach":
			return ""
		}
		return "Please select how you get paid."
	}},
}

// achBankFields become required when howYouGetPaid is "ach". Failures are
// attributed to the bank field paths, not to howYouGetPaid.
var achBankFields = []struct{ field, msg string }{
	{"bankName", "Bank name is required for ACH payouts."},
	{"accountNumber", "Account number is required for ACH payouts."},
	{"routingNumber", "Routing number is required for ACH payouts."},
}

// Check runs the rules for the given field subset against d. A nil or
// empty subset means the full record: every rule plus the cross-field
// ach rule. The returned slice is empty when the draft is valid.
func (v *Validator) Check(d Draft, fields []string) []FieldError {
	var scope map[string]bool
	if len(fields) > 0 {
		scope = make(map[string]bool, len(fields))
		for _, f := range fields {
			scope[f] = true
		}
	}
	in := func(field string) bool { return scope == nil || scope[field] }

	var errs []FieldError
	for _, r := range rules {
		if !in(r.field) {
			continue
		}
		if msg := r.check(v, d); msg != "" {
			errs = append(errs, FieldError{Field: r.field, Message: msg})
		}
	}

	// Cross-field: the discriminator may live in a different step than the
	// bank fields, so the check fires whenever any bank field is in scope.
	if d.String("howYouGetPaid") == "ach" {
		for _, bf := range achBankFields {
			if !in(bf.field) {
				continue
			}
			if strings.TrimSpace(d.String(bf.field)) == "" {
				errs = append(errs, FieldError{Field: bf.field, Message: bf.msg})
			}
		}
	}
	return errs
}

// CheckAll runs the full record rule set.
func (v *Validator) CheckAll(d Draft) []FieldError {
	return v.Check(d, nil)
}
