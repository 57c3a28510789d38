package models

// Field names double as UserRecord JSON keys.
const (
	FieldName        = "name"
	FieldCPF         = "cpf"
	FieldRG          = "rg"
	FieldAddress     = "address"
	FieldPhone       = "phone"
	FieldEmail       = "email"
	FieldProfession  = "profession"
	FieldCreciNumber = "creciNumber"
	FieldOABNumber   = "oabNumber"
	FieldOABState    = "oabState"
)

// Field describes one rendered input.
type Field struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	InputType string `json:"inputType"`
	Required  bool   `json:"required"`
}

var (
	commonFields = []Field{
		{Name: FieldName, Label: "Nome Completo", InputType: "text", Required: true},
		{Name: FieldCPF, Label: "CPF", InputType: "text", Required: true},
		{Name: FieldRG, Label: "RG", InputType: "text", Required: true},
		{Name: FieldAddress, Label: "Endereço", InputType: "text", Required: true},
		{Name: FieldPhone, Label: "Telefone", InputType: "text", Required: true},
		{Name: FieldEmail, Label: "Email", InputType: "email", Required: true},
	}
	realtorFields = []Field{
		{Name: FieldCreciNumber, Label: "Número CRECI", InputType: "text", Required: true},
	}
	lawyerFields = []Field{
		{Name: FieldOABNumber, Label: "Número OAB", InputType: "text", Required: true},
		{Name: FieldOABState, Label: "Estado OAB", InputType: "text", Required: true},
	}
)

// FieldsFor returns the inputs rendered for t, in display order. Every
// rendered field is required. An empty or unknown type gets the common set.
func FieldsFor(t UserType) []Field {
	fields := append([]Field(nil), commonFields...)
	switch t {
	case UserTypeRealtor:
		fields = append(fields, realtorFields...)
	case UserTypeLawyer:
		fields = append(fields, lawyerFields...)
	}
	return fields
}

// FieldNames is FieldsFor reduced to the names.
func FieldNames(t UserType) []string {
	fields := FieldsFor(t)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
