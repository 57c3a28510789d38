package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "realty/pkg/domain-errors"
)

// Profile holds the fields shared by every role.
type Profile struct {
	Name       string `json:"name"`
	CPF        string `json:"cpf"`
	RG         string `json:"rg"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Profession string `json:"profession,omitempty"`
}

// Role carries the fields that only exist for one user type.
// The set of implementations is closed.
type Role interface {
	UserType() UserType
	isRole()
}

type Client struct{}

type Owner struct{}

type Tenant struct{}

type Realtor struct {
	CreciNumber string `json:"creciNumber"`
}

type Lawyer struct {
	OABNumber string `json:"oabNumber"`
	OABState  string `json:"oabState"`
}

func (Client) UserType() UserType  { return UserTypeClient }
func (Owner) UserType() UserType   { return UserTypeOwner }
func (Tenant) UserType() UserType  { return UserTypeTenant }
func (Realtor) UserType() UserType { return UserTypeRealtor }
func (Lawyer) UserType() UserType  { return UserTypeLawyer }

func (Client) isRole()  {}
func (Owner) isRole()   {}
func (Tenant) isRole()  {}
func (Realtor) isRole() {}
func (Lawyer) isRole()  {}

// Participant is a validated registration.
type Participant struct {
	ID           uuid.UUID
	DocumentType DocumentType
	Profile      Profile
	Role         Role
	SubmittedAt  time.Time
}

func (p *Participant) UserType() UserType {
	if p.Role == nil {
		return ""
	}
	return p.Role.UserType()
}

type participantJSON struct {
	ID           uuid.UUID    `json:"id"`
	UserType     UserType     `json:"userType"`
	DocumentType DocumentType `json:"documentType,omitempty"`
	Profile      Profile      `json:"profile"`
	Role         Role         `json:"role"`
	SubmittedAt  time.Time    `json:"submittedAt"`
}

func (p Participant) MarshalJSON() ([]byte, error) {
	return json.Marshal(participantJSON{
		ID:           p.ID,
		UserType:     p.UserType(),
		DocumentType: p.DocumentType,
		Profile:      p.Profile,
		Role:         p.Role,
		SubmittedAt:  p.SubmittedAt,
	})
}

// NewParticipant validates r and converts it. Only presence of the rendered
// fields and the enum values are checked. An unset user type registers a client.
func NewParticipant(id uuid.UUID, r UserRecord, now time.Time) (*Participant, error) {
	if r.UserType != "" && !r.UserType.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown user type %q", r.UserType))
	}
	if r.DocumentType != "" && !r.DocumentType.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown document type %q", r.DocumentType))
	}
	if missing := r.Missing(); len(missing) > 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "missing required fields: "+strings.Join(missing, ", "))
	}

	return &Participant{
		ID:           id,
		DocumentType: r.DocumentType,
		Profile: Profile{
			Name:       r.Name,
			CPF:        r.CPF,
			RG:         r.RG,
			Address:    r.Address,
			Phone:      r.Phone,
			Email:      r.Email,
			Profession: r.Profession,
		},
		Role:        roleFor(r),
		SubmittedAt: now,
	}, nil
}

func roleFor(r UserRecord) Role {
	switch r.UserType {
	case UserTypeRealtor:
		return Realtor{CreciNumber: r.CreciNumber}
	case UserTypeLawyer:
		return Lawyer{OABNumber: r.OABNumber, OABState: r.OABState}
	case UserTypeOwner:
		return Owner{}
	case UserTypeTenant:
		return Tenant{}
	default:
		return Client{}
	}
}
