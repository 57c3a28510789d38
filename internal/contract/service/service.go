// Package service orchestrates contract persistence: it translates store
// failures into domain errors and records traces and metrics around them.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"realty/internal/contract/models"
	"realty/internal/platform/metrics"
	"realty/internal/platform/tracer"
	dErrors "realty/pkg/domain-errors"
	"realty/pkg/platform/sentinel"
)

// Store persists contracts.
type Store interface {
	Initialize(ctx context.Context) error
	SaveContract(ctx context.Context, c *models.RealEstateContract) (*models.SaveResult, error)
	FindByID(ctx context.Context, id int64) (*models.StoredContract, error)
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize prepares the underlying store.
func (s *Service) Initialize(ctx context.Context) error {
	if err := s.store.Initialize(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to connect to database")
	}
	return nil
}

// Save persists c and returns the new row id.
func (s *Service) Save(ctx context.Context, c *models.RealEstateContract) (result *models.SaveResult, err error) {
	if c == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "contract is required")
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanContractSave,
		tracer.String(tracer.AttrBuilding, c.BuildingName),
	)
	defer func() { span.End(err) }()

	start := time.Now()
	result, err = s.store.SaveContract(ctx, c)
	if err != nil {
		err = translate(err, "failed to save contract")
		s.metrics.IncContractSaveFailure(string(dErrors.CodeOf(err)))
		s.logger.ErrorContext(ctx, "save contract failed", "error", err, "building", c.BuildingName)
		return nil, err
	}

	s.metrics.ObserveContractSaved(time.Since(start).Seconds())
	span.SetAttributes(
		tracer.Int64(tracer.AttrContractID, result.ID),
		tracer.Int64(tracer.AttrRowsAffected, result.RowsAffected),
	)
	return result, nil
}

// Get returns a stored contract by id.
func (s *Service) Get(ctx context.Context, id int64) (contract *models.StoredContract, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanContractGet, tracer.Int64(tracer.AttrContractID, id))
	defer func() { span.End(err) }()

	contract, err = s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to load contract")
	}
	return contract, nil
}

// translate maps store sentinels to domain codes. Domain errors pass through.
func translate(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotInitialized):
		return dErrors.Wrap(err, dErrors.CodeNotInitialized, "database not initialized")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "contract not found")
	case errors.Is(err, sentinel.ErrInvalidInput):
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid contract")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
