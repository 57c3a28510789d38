package models

import (
	"log/slog"
	"sort"
	"strings"

	"realty/internal/platform/privacy"
)

// UserRecord is the flat form record. Role specific fields stay empty for
// roles that do not render them.
type UserRecord struct {
	UserType     UserType     `json:"userType"`
	DocumentType DocumentType `json:"documentType"`
	Name         string       `json:"name"`
	CPF          string       `json:"cpf"`
	RG           string       `json:"rg"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	Profession   string       `json:"profession"`
	CreciNumber  string       `json:"creciNumber,omitempty"`
	OABNumber    string       `json:"oabNumber,omitempty"`
	OABState     string       `json:"oabState,omitempty"`
}

func (r *UserRecord) field(name string) *string {
	switch name {
	case FieldName:
		return &r.Name
	case FieldCPF:
		return &r.CPF
	case FieldRG:
		return &r.RG
	case FieldAddress:
		return &r.Address
	case FieldPhone:
		return &r.Phone
	case FieldEmail:
		return &r.Email
	case FieldProfession:
		return &r.Profession
	case FieldCreciNumber:
		return &r.CreciNumber
	case FieldOABNumber:
		return &r.OABNumber
	case FieldOABState:
		return &r.OABState
	}
	return nil
}

// HasField reports whether name is a free-text field of the record.
func (r *UserRecord) HasField(name string) bool {
	return r.field(name) != nil
}

// Get returns the value of a free-text field.
func (r *UserRecord) Get(name string) (string, bool) {
	p := r.field(name)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set assigns a free-text field. It reports false for unknown names.
func (r *UserRecord) Set(name, value string) bool {
	p := r.field(name)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Missing returns the rendered fields of the record's user type that are blank.
func (r *UserRecord) Missing() []string {
	var missing []string
	for _, name := range FieldNames(r.UserType) {
		if v, _ := r.Get(name); strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// LogValue masks personal data. License numbers are public and stay readable.
func (r UserRecord) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("userType", string(r.UserType)),
		slog.String("documentType", string(r.DocumentType)),
		slog.String(FieldName, privacy.Mask(r.Name)),
		slog.String(FieldCPF, privacy.Mask(r.CPF)),
		slog.String(FieldRG, privacy.Mask(r.RG)),
		slog.String(FieldAddress, privacy.Mask(r.Address)),
		slog.String(FieldPhone, privacy.Mask(r.Phone)),
		slog.String(FieldEmail, privacy.MaskEmail(r.Email)),
		slog.String(FieldProfession, r.Profession),
	}
	switch r.UserType {
	case UserTypeRealtor:
		attrs = append(attrs, slog.String(FieldCreciNumber, r.CreciNumber))
	case UserTypeLawyer:
		attrs = append(attrs,
			slog.String(FieldOABNumber, r.OABNumber),
			slog.String(FieldOABState, r.OABState),
		)
	}
	return slog.GroupValue(attrs...)
}
