package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validNamedForm() complaintForm {
	return complaintForm{
		Name:      "Asha Verma",
		Mobile:    "9876543210",
		CrimeType: "Theft",
		Location:  "Pune",
	}
}

func TestValidateComplaintForm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*complaintForm)
		want   string
	}{
		{
			name:   "valid named filing",
			mutate: func(f *complaintForm) {},
			want:   "",
		},
		{
			name: "valid anonymous filing without identity",
			mutate: func(f *complaintForm) {
				f.IsAnonymous = true
				f.Name = ""
				f.Mobile = ""
			},
			want: "",
		},
		{
			name:   "missing name",
			mutate: func(f *complaintForm) { f.Name = "" },
			want:   "Fill required fields: name, 10-digit mobile, crime type.",
		},
		{
			name:   "missing mobile",
			mutate: func(f *complaintForm) { f.Mobile = "" },
			want:   "Fill required fields: name, 10-digit mobile, crime type.",
		},
		{
			name:   "mobile too short",
			mutate: func(f *complaintForm) { f.Mobile = "12345" },
			want:   "Fill required fields: name, 10-digit mobile, crime type.",
		},
		{
			name:   "mobile with letters",
			mutate: func(f *complaintForm) { f.Mobile = "98765abcde" },
			want:   "Fill required fields: name, 10-digit mobile, crime type.",
		},
		{
			name:   "missing crime type",
			mutate: func(f *complaintForm) { f.CrimeType = "" },
			want:   "Fill required fields: name, 10-digit mobile, crime type.",
		},
		{
			name:   "bad pincode",
			mutate: func(f *complaintForm) { f.Pincode = "4110" },
			want:   "Pincode must be 6 digits.",
		},
		{
			name:   "good pincode passes",
			mutate: func(f *complaintForm) { f.Pincode = "411001" },
			want:   "",
		},
		{
			name:   "urgent without justification",
			mutate: func(f *complaintForm) { f.IsUrgent = true },
			want:   "Justification is required when marking complaint as urgent.",
		},
		{
			name: "urgent justification too short",
			mutate: func(f *complaintForm) {
				f.IsUrgent = true
				f.UrgencyJustification = "too short"
			},
			want: "Urgency justification must be at least 10 characters.",
		},
		{
			name: "urgent justification too long",
			mutate: func(f *complaintForm) {
				f.IsUrgent = true
				f.UrgencyJustification = strings.Repeat("a", 501)
			},
			want: "Urgency justification cannot exceed 500 characters.",
		},
		{
			name: "urgent justification at limits",
			mutate: func(f *complaintForm) {
				f.IsUrgent = true
				f.UrgencyJustification = strings.Repeat("a", 500)
			},
			want: "",
		},
		{
			name: "urgent justification counts runes not bytes",
			mutate: func(f *complaintForm) {
				f.IsUrgent = true
				f.UrgencyJustification = strings.Repeat("त", 10)
			},
			want: "",
		},
		{
			name: "leftover short justification on normal filing is fine",
			mutate: func(f *complaintForm) {
				f.UrgencyJustification = "stale"
			},
			want: "",
		},
		{
			name: "leftover long justification on normal filing is fine",
			mutate: func(f *complaintForm) {
				f.UrgencyJustification = strings.Repeat("a", 501)
			},
			want: "",
		},
		{
			name: "identity failure wins over urgency failure",
			mutate: func(f *complaintForm) {
				f.Name = ""
				f.IsUrgent = true
			},
			want: "Fill required fields: name, 10-digit mobile, crime type.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validNamedForm()
			tt.mutate(&form)
			assert.Equal(t, tt.want, validateComplaintForm(form))
		})
	}
}

func TestFoldAddress(t *testing.T) {
	assert.Equal(t, "", foldAddress("", "", "", ""))
	assert.Equal(t, "12 MG Road, Pune, Maharashtra - 411001",
		foldAddress("12 MG Road", "Pune", "Maharashtra", "411001"))
	// partial addresses keep their separators, matching the filing form output
	assert.Equal(t, ", Pune, Maharashtra -", foldAddress("", "Pune", "Maharashtra", ""))
}
