// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// Constraint messages for patient contact fields.
const (
	MessageNameConstraints    = "Names should only contain alphanumeric characters and spaces, and it should not be blank"
	MessagePhoneConstraints   = "Phone numbers should only contain numbers, and it should be between 3 and 15 digits long"
	MessageEmailConstraints   = "Emails should be of the format local-part@domain and adhere to the usual email address rules"
	MessageAddressConstraints = "Addresses can take any values, and it should not be blank"
)

// Name is a patient's full name.
type Name string

// Phone is a patient's contact number.
type Phone string

// Email is a patient's email address.
type Email string

// Address is a patient's home address.
type Address string

// ParseName validates a patient name.
func ParseName(s string) (Name, error) {
	v := strings.TrimSpace(s)
	if validate.Var(v, tagPatientName) != nil {
		return "", &ConstraintError{Field: "name", Value: s, Message: MessageNameConstraints}
	}
	return Name(v), nil
}

// ParsePhone validates a phone number.
func ParsePhone(s string) (Phone, error) {
	v := strings.TrimSpace(s)
	if validate.Var(v, "required,number,min=3,max=15") != nil {
		return "", &ConstraintError{Field: "phone", Value: s, Message: MessagePhoneConstraints}
	}
	return Phone(v), nil
}

// ParseEmail validates an email address.
func ParseEmail(s string) (Email, error) {
	v := strings.TrimSpace(s)
	if validate.Var(v, "required,email") != nil {
		return "", &ConstraintError{Field: "email", Value: s, Message: MessageEmailConstraints}
	}
	return Email(v), nil
}

// ParseAddress validates an address.
func ParseAddress(s string) (Address, error) {
	v := strings.TrimSpace(s)
	if validate.Var(v, "required") != nil {
		return "", &ConstraintError{Field: "address", Value: s, Message: MessageAddressConstraints}
	}
	return Address(v), nil
}

// Patient is one record in the patient book, keyed by Nric.
type Patient struct {
	Nric    Nric
	Name    Name
	Phone   Phone
	Email   Email
	Address Address
	Report  MedicalReport
}

// NewPatient creates a patient with an empty medical report.
func NewPatient(nric Nric, name Name, phone Phone, email Email, address Address) *Patient {
	return &Patient{
		Nric:    nric,
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
		Report:  EmptyMedicalReport(),
	}
}

// MedicineUsages returns the patient's recorded medicine usages.
func (p *Patient) MedicineUsages() []MedicineUsage {
	return p.Report.MedicineUsages
}

// IsSamePatient reports whether both records describe the same person.
func (p *Patient) IsSamePatient(other *Patient) bool {
	if p == other {
		return true
	}
	return other != nil && p.Nric == other.Nric
}

// WithReport returns a copy of p carrying report.
func (p *Patient) WithReport(report MedicalReport) *Patient {
	cp := *p
	cp.Report = report.clone()
	return &cp
}

// Equal compares every field, including the medical report.
func (p *Patient) Equal(other *Patient) bool {
	if other == nil {
		return false
	}
	return p.Nric == other.Nric &&
		p.Name == other.Name &&
		p.Phone == other.Phone &&
		p.Email == other.Email &&
		p.Address == other.Address &&
		p.Report.Equal(other.Report)
}

func (p *Patient) String() string {
	return fmt.Sprintf("%s; NRIC: %s; Phone: %s; Email: %s; Address: %s",
		p.Name, p.Nric, p.Phone, p.Email, p.Address)
}
