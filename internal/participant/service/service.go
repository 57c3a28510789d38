// Package service runs the participant registration flow: submitting a form,
// filling it from a document photo and the camera capture placeholder.
package service

import (
	"context"
	"log/slog"
	"time"

	"realty/internal/notify"
	"realty/internal/participant/form"
	"realty/internal/participant/models"
	"realty/internal/platform/metrics"
	"realty/internal/platform/tracer"
	dErrors "realty/pkg/domain-errors"
)

// Notification texts shown to the user.
var (
	ToastRegistered        = notify.Success("Usuário cadastrado com sucesso!", "Os dados foram salvos no sistema.")
	ToastRegisterFailed    = notify.Failure("Erro no cadastro", "Não foi possível salvar os dados.")
	ToastDocumentProcessed = notify.Success("Documento processado", "Os dados foram extraídos com sucesso.")
	ToastDocumentFailed    = notify.Failure("Erro no processamento", "Não foi possível processar o documento.")
	ToastCapture           = notify.Success("Captura de documento", "Funcionalidade em desenvolvimento.")
)

// Submitter receives every validated participant.
type Submitter interface {
	Submit(ctx context.Context, p *models.Participant) error
}

// DocumentAnalyzer extracts record fields from a document photo.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, img models.Image) (map[string]string, error)
}

type Service struct {
	submitter Submitter
	analyzer  DocumentAnalyzer
	notifier  notify.Notifier
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    tracer.Tracer
	now       func() time.Time
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

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(submitter Submitter, analyzer DocumentAnalyzer, notifier notify.Notifier, opts ...Option) *Service {
	s := &Service{
		submitter: submitter,
		analyzer:  analyzer,
		notifier:  notifier,
		logger:    slog.Default(),
		tracer:    tracer.NewNoop(),
		now:       time.Now,
	}
	if s.notifier == nil {
		s.notifier = notify.Discard
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the form and hands the participant to the submitter.
// Validation failures are returned without a notification.
func (s *Service) Submit(ctx context.Context, f *form.Form) (p *models.Participant, err error) {
	record := f.Record()
	ctx, span := s.tracer.Start(ctx, tracer.SpanParticipantSubmit,
		tracer.String(tracer.AttrUserType, string(record.UserType)),
	)
	defer func() { span.End(err) }()

	p, err = f.Build(s.now())
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "submitting participant",
		"user_type", record.UserType,
		"document_type", record.DocumentType,
		"record", record,
	)

	if err = s.submitter.Submit(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "participant submission failed", "error", err, "participant_id", p.ID)
		s.raise(ctx, span, ToastRegisterFailed)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to submit participant")
	}

	s.metrics.IncParticipantRegistered(string(p.UserType()))
	s.raise(ctx, span, ToastRegistered)
	return p, nil
}

// ProcessDocument fills the form from a document photo and returns the
// field names that were applied.
func (s *Service) ProcessDocument(ctx context.Context, f *form.Form, img models.Image) (applied []string, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDocumentAnalyze,
		tracer.Int64(tracer.AttrImageBytes, int64(len(img.Data))),
	)
	defer func() { span.End(err) }()

	extracted, err := s.analyzer.Analyze(ctx, img)
	if err != nil {
		s.logger.ErrorContext(ctx, "document processing failed", "error", err, "filename", img.Filename)
		s.metrics.IncDocumentProcessed("failed")
		s.raise(ctx, span, ToastDocumentFailed)
		return nil, err
	}

	applied = f.Merge(extracted)
	span.SetAttributes(tracer.Int64(tracer.AttrExtractedKeys, int64(len(applied))))
	s.metrics.IncDocumentProcessed("ok")
	s.raise(ctx, span, ToastDocumentProcessed)
	return applied, nil
}

// Capture is the camera entry point. No camera integration exists yet, so
// it only tells the user so.
func (s *Service) Capture(ctx context.Context) error {
	s.notifier.Notify(ctx, ToastCapture)
	return dErrors.New(dErrors.CodeNotImplemented, "document capture is not available")
}

func (s *Service) raise(ctx context.Context, span tracer.Span, t notify.Toast) {
	span.AddEvent(tracer.EventNotificationRaised, tracer.String("title", t.Title))
	s.notifier.Notify(ctx, t)
}
