package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	mobilePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

var validate = newComplaintValidator()

func newComplaintValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("mobile10", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pincode6", func(fl validator.FieldLevel) bool {
		return pincodePattern.MatchString(fl.Field().String())
	})
	return v
}

// complaintForm carries a complaint submission through validation. Identity
// fields are only demanded for named filings; the urgency justification rules
// only bite when the urgent flag is set.
type complaintForm struct {
	IsAnonymous bool

	Name   string `validate:"required_if=IsAnonymous false"`
	Mobile string `validate:"required_if=IsAnonymous false,omitempty,mobile10"`

	House   string
	City    string
	State   string
	Pincode string `validate:"omitempty,pincode6"`

	CrimeType    string `validate:"required"`
	IncidentDate string
	Location     string
	Description  string

	IsUrgent             bool
	UrgencyJustification string `validate:"required_if=IsUrgent true"`
}

// validateComplaintForm checks a submission and returns the first failure
// message, or the empty string when the form is acceptable. The message order
// mirrors the public filing form, so callers can surface it verbatim.
func validateComplaintForm(form complaintForm) string {
	if err := validate.Struct(form); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return "Fill required fields: name, 10-digit mobile, crime type."
		}

		failed := map[string]string{}
		for _, fe := range verrs {
			if _, seen := failed[fe.StructField()]; !seen {
				failed[fe.StructField()] = fe.Tag()
			}
		}

		if _, ok := failed["Name"]; ok {
			return "Fill required fields: name, 10-digit mobile, crime type."
		}
		if _, ok := failed["Mobile"]; ok {
			return "Fill required fields: name, 10-digit mobile, crime type."
		}
		if _, ok := failed["CrimeType"]; ok {
			return "Fill required fields: name, 10-digit mobile, crime type."
		}
		if _, ok := failed["Pincode"]; ok {
			return "Pincode must be 6 digits."
		}
		if _, ok := failed["UrgencyJustification"]; ok {
			return "Justification is required when marking complaint as urgent."
		}
		return "Fill required fields: name, 10-digit mobile, crime type."
	}

	// length bounds apply only when the complaint is actually flagged urgent;
	// leftover justification text on a normal filing is ignored
	if form.IsUrgent {
		switch n := utf8.RuneCountInString(form.UrgencyJustification); {
		case n < 10:
			return "Urgency justification must be at least 10 characters."
		case n > 500:
			return "Urgency justification cannot exceed 500 characters."
		}
	}
	return ""
}

// foldAddress combines the optional address parts into the single line kept in
// the complaint description. Anonymous filings never carry an address.
func foldAddress(house, city, state, pincode string) string {
	if house == "" && city == "" && state == "" && pincode == "" {
		return ""
	}
	return strings.TrimSpace(house + ", " + city + ", " + state + " - " + pincode)
}
