package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"realty/internal/notify"
	"realty/internal/participant/form"
	"realty/internal/participant/models"
	dErrors "realty/pkg/domain-errors"
	"realty/pkg/platform/httputil"
	"realty/pkg/requestcontext"
)

// maxMultipartMemory is the part of an upload kept in memory; the rest
// spills to temporary files. The overall size is capped by BodyLimit.
const maxMultipartMemory = 8 << 20

// Service defines the registration flow exposed over HTTP.
type Service interface {
	Submit(ctx context.Context, f *form.Form) (*models.Participant, error)
	ProcessDocument(ctx context.Context, f *form.Form, img models.Image) ([]string, error)
	Capture(ctx context.Context) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

// New builds a handler. Notifications raised by service must reach the
// context listener (see notify.Scoped) to be echoed in responses.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/participants/fields", h.HandleFields)
	r.Post("/participants", h.HandleSubmit)
	r.Post("/participants/documents", h.HandleProcessDocument)
	r.Post("/participants/capture", h.HandleCapture)
}

// HandleFields returns the inputs rendered for a user type.
func (h *Handler) HandleFields(w http.ResponseWriter, r *http.Request) {
	f := form.New(h.logger)
	if v := r.URL.Query().Get("userType"); v != "" {
		if err := f.SetUserType(v); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, toFieldsResponse(f))
}

// HandleSubmit registers a participant from a JSON record.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, rec := listen(r.Context())
	requestID := requestcontext.RequestID(ctx)

	record, ok := httputil.DecodeJSON[models.UserRecord](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.service.Submit(ctx, form.FromRecord(*record, h.logger))
	if err != nil {
		h.writeError(ctx, w, err, rec)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, &SubmitResponse{
		Participant:  p,
		Notification: last(rec),
	})
}

// HandleProcessDocument fills a record from an uploaded document photo.
// The multipart body carries the image under "image" and the current record
// as plain form values.
func (h *Handler) HandleProcessDocument(w http.ResponseWriter, r *http.Request) {
	ctx, rec := listen(r.Context())
	requestID := requestcontext.RequestID(ctx)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.logger.WarnContext(ctx, "failed to parse upload", "error", err, "request_id", requestID)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.WriteJSON(w, http.StatusRequestEntityTooLarge, httputil.ErrorResponse{Error: "request_too_large"})
			return
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "expected a multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck // temp file cleanup

	img, err := readImage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	f, err := formFromValues(r, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	applied, err := h.service.ProcessDocument(ctx, f, img)
	if err != nil {
		h.writeError(ctx, w, err, rec)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &DocumentResponse{
		Record:       f.Record(),
		Applied:      applied,
		Notification: last(rec),
	})
}

// HandleCapture is the camera placeholder.
func (h *Handler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	ctx, rec := listen(r.Context())
	if err := h.service.Capture(ctx); err != nil {
		h.writeError(ctx, w, err, rec)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &CaptureResponse{Notification: last(rec)})
}

func readImage(r *http.Request) (models.Image, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return models.Image{}, dErrors.New(dErrors.CodeBadRequest, "image file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.Image{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read image")
	}
	if len(data) == 0 {
		return models.Image{}, dErrors.New(dErrors.CodeBadRequest, "image file is empty")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return models.Image{Filename: header.Filename, ContentType: contentType, Data: data}, nil
}

// formFromValues rebuilds the form from multipart values. Unknown keys are ignored.
func formFromValues(r *http.Request, logger *slog.Logger) (*form.Form, error) {
	f := form.New(logger)
	for key, values := range r.MultipartForm.Value {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		var err error
		switch key {
		case "userType":
			err = f.SetUserType(values[0])
		case "documentType":
			err = f.SetDocumentType(values[0])
		default:
			if rec := f.Record(); rec.HasField(key) {
				err = f.SetField(key, values[0])
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

func listen(ctx context.Context) (context.Context, *notify.Recorder) {
	rec := notify.NewRecorder()
	return notify.WithListener(ctx, rec), rec
}

func last(rec *notify.Recorder) *notify.Toast {
	t, ok := rec.Last()
	if !ok {
		return nil
	}
	return &t
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error, rec *notify.Recorder) {
	status := httputil.StatusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		h.logger.ErrorContext(ctx, "participant request failed", "error", err, "request_id", requestcontext.RequestID(ctx))
	}
	httputil.WriteJSON(w, status, &ErrorResponse{
		ErrorResponse: httputil.ErrorBody(err),
		Notification:  last(rec),
	})
}
