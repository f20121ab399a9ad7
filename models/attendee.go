package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// AmityCollege is the host institution; attendees declaring it are subject
// to different zone eligibility and verification rules.
const AmityCollege = "Amity University Raipur"

// Colleges is the fixed list offered by the booking form.
var Colleges = []string{
	AmityCollege,
	"NIT Raipur",
	"IIM Raipur",
	"HNLU Raipur",
	"IIIT Naya Raipur",
	"Pt. Ravishankar Shukla University",
	"CSVTU Bhilai",
	"BIT Durg",
	"Rungta College Bhilai",
	"Shankaracharya College Bhilai",
	"MATS University",
	"Kalinga University",
	"ITM University",
	"ICFAI University",
	"Other",
}

// AttendeeInfo holds the details captured at step 1 of the booking wizard.
// It is immutable once submitted and lives only in the wizard session until
// a booking is finalized.
type AttendeeInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	College   string `json:"college"`
}

// Validate checks the step-1 form rules and returns field-keyed errors.
func (a AttendeeInfo) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.FirstName, validation.Required.Error("First Name is required")),
		validation.Field(&a.LastName, validation.Required.Error("Last Name is required")),
		validation.Field(&a.Email, validation.Required, is.EmailFormat.Error("Invalid email address")),
		validation.Field(&a.Phone,
			validation.Required,
			validation.Length(10, 15).Error("Phone number must be at least 10 digits"),
			is.Digit.Error("Phone number must contain digits only"),
		),
		validation.Field(&a.Gender,
			validation.Required.Error("Please select a gender"),
			validation.In(GenderMale, GenderFemale, GenderOther).Error("Please select a gender"),
		),
		validation.Field(&a.College,
			validation.Required.Error("Please select a college"),
			validation.In(collegeValues()...).Error("Please select a college"),
		),
	)
}

// IsAmity reports whether the attendee declared the host institution.
func (a AttendeeInfo) IsAmity() bool {
	return a.College == AmityCollege
}

// FullName joins first and last name for display and ticketing.
func (a AttendeeInfo) FullName() string {
	return a.FirstName + " " + a.LastName
}

func collegeValues() []any {
	values := make([]any, len(Colleges))
	for i, c := range Colleges {
		values[i] = c
	}
	return values
}
