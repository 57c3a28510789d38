package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"realty/internal/contract/models"
	dErrors "realty/pkg/domain-errors"
	"realty/pkg/platform/httputil"
	"realty/pkg/requestcontext"
)

// Service defines the contract operations exposed over HTTP.
type Service interface {
	Save(ctx context.Context, c *models.RealEstateContract) (*models.SaveResult, error)
	Get(ctx context.Context, id int64) (*models.StoredContract, error)
}

type Handler struct {
	service Service
	schema  httputil.PayloadValidator
	logger  *slog.Logger
}

// New builds a handler. Request bodies are checked against schema before decoding.
func New(service Service, schema httputil.PayloadValidator, logger *slog.Logger) *Handler {
	return &Handler{service: service, schema: schema, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/contracts", h.HandleSave)
	r.Get("/contracts/{id}", h.HandleGet)
}

// HandleSave persists a contract and returns its id.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contract, ok := httputil.DecodeValidatedJSON[models.RealEstateContract](w, r, h.schema, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Save(ctx, contract)
	if err != nil {
		h.logger.ErrorContext(ctx, "save contract failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, res)
}

// HandleGet returns a stored contract.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid contract id"))
		return
	}

	contract, err := h.service.Get(ctx, id)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "get contract failed", "error", err, "request_id", requestID, "contract_id", id)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, contract)
}
