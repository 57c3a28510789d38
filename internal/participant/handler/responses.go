package handler

import (
	"realty/internal/notify"
	"realty/internal/participant/form"
	"realty/internal/participant/models"
	"realty/pkg/platform/httputil"
)

type FieldsResponse struct {
	UserType models.UserType `json:"userType"`
	Label    string          `json:"label,omitempty"`
	Fields   []models.Field  `json:"fields"`
}

type SubmitResponse struct {
	Participant  *models.Participant `json:"participant"`
	Notification *notify.Toast       `json:"notification,omitempty"`
}

type DocumentResponse struct {
	Record       models.UserRecord `json:"record"`
	Applied      []string          `json:"applied"`
	Notification *notify.Toast     `json:"notification,omitempty"`
}

type CaptureResponse struct {
	Notification *notify.Toast `json:"notification,omitempty"`
}

// ErrorResponse is the error envelope plus the notification raised, if any.
type ErrorResponse struct {
	httputil.ErrorResponse
	Notification *notify.Toast `json:"notification,omitempty"`
}

func toFieldsResponse(f *form.Form) *FieldsResponse {
	t := f.Record().UserType
	return &FieldsResponse{
		UserType: t,
		Label:    t.Label(),
		Fields:   f.Fields(),
	}
}
