// Package models defines the participant registration record and the typed
// participant produced from it.
package models

import (
	"fmt"
	"strings"

	dErrors "realty/pkg/domain-errors"
)

// UserType is the participant role selected on the form.
type UserType string

const (
	UserTypeClient  UserType = "client"
	UserTypeRealtor UserType = "realtor"
	UserTypeLawyer  UserType = "lawyer"
	UserTypeOwner   UserType = "owner"
	UserTypeTenant  UserType = "tenant"
)

// UserTypes lists every role in display order.
var UserTypes = []UserType{UserTypeClient, UserTypeRealtor, UserTypeLawyer, UserTypeOwner, UserTypeTenant}

var userTypeLabels = map[UserType]string{
	UserTypeClient:  "Cliente",
	UserTypeRealtor: "Corretor",
	UserTypeLawyer:  "Advogado",
	UserTypeOwner:   "Proprietário",
	UserTypeTenant:  "Locatário",
}

// Label is the Portuguese display name.
func (t UserType) Label() string { return userTypeLabels[t] }

func (t UserType) IsValid() bool {
	_, ok := userTypeLabels[t]
	return ok
}

// ParseUserType accepts the lowercase identifiers only.
func ParseUserType(s string) (UserType, error) {
	t := UserType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown user type %q", s))
	}
	return t, nil
}

// DocumentType is the identity document the participant presents.
type DocumentType string

const (
	DocumentRG    DocumentType = "rg"
	DocumentCNH   DocumentType = "cnh"
	DocumentCRECI DocumentType = "creci"
	DocumentOAB   DocumentType = "oab"
)

func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentRG, DocumentCNH, DocumentCRECI, DocumentOAB:
		return true
	}
	return false
}

// ParseDocumentType accepts the lowercase identifiers only.
func ParseDocumentType(s string) (DocumentType, error) {
	d := DocumentType(strings.TrimSpace(s))
	if !d.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown document type %q", s))
	}
	return d, nil
}
