package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Submitter,DocumentAnalyzer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"realty/internal/notify"
	"realty/internal/participant/form"
	"realty/internal/participant/models"
	"realty/internal/participant/service/mocks"
	"realty/internal/platform/metrics"
	dErrors "realty/pkg/domain-errors"
	"realty/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	submitter *mocks.MockSubmitter
	analyzer  *mocks.MockDocumentAnalyzer
	recorder  *notify.Recorder
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       time.Time
	service   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.submitter = mocks.NewMockSubmitter(s.ctrl)
	s.analyzer = mocks.NewMockDocumentAnalyzer(s.ctrl)
	s.recorder = notify.NewRecorder()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.now = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	s.service = New(s.submitter, s.analyzer, s.recorder,
		WithLogger(s.logger),
		WithMetrics(s.metrics),
		WithClock(func() time.Time { return s.now }),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestSubmitLawyer() {
	f := form.FromRecord(testutil.SampleLawyer(), s.logger)
	s.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.Participant) error {
			s.Equal(models.Lawyer{OABNumber: "12345", OABState: "SP"}, p.Role)
			s.Equal(s.now, p.SubmittedAt)
			return nil
		})

	p, err := s.service.Submit(s.ctx, f)

	s.Require().NoError(err)
	s.Equal("Ana", p.Profile.Name)
	toast, ok := s.recorder.Last()
	s.Require().True(ok)
	s.Equal(ToastRegistered, toast)
	s.Equal("Usuário cadastrado com sucesso!", toast.Title)
	s.Equal("Os dados foram salvos no sistema.", toast.Description)
	s.False(toast.IsDestructive())
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.ParticipantsRegistered.WithLabelValues("lawyer")))
}

func (s *ServiceSuite) TestSubmitInvalidFormIsSilent() {
	r := testutil.SampleLawyer()
	r.OABState = ""

	_, err := s.service.Submit(s.ctx, form.FromRecord(r, s.logger))

	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Empty(s.recorder.Toasts())
}

func (s *ServiceSuite) TestSubmitterFailure() {
	s.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := s.service.Submit(s.ctx, form.FromRecord(testutil.SampleLawyer(), s.logger))

	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	toast, _ := s.recorder.Last()
	s.True(toast.IsDestructive())
	s.Equal(float64(0), promtest.ToFloat64(s.metrics.ParticipantsRegistered.WithLabelValues("lawyer")))
}

func (s *ServiceSuite) TestProcessDocument() {
	f := form.New(s.logger)
	s.Require().NoError(f.SetField("phone", "11 98888-7777"))
	img := models.Image{Filename: "cnh.png", ContentType: "image/png", Data: []byte("png")}
	s.analyzer.EXPECT().Analyze(gomock.Any(), img).
		Return(map[string]string{"name": "ANA MARIA", "cpf": "123.456.789-09"}, nil)

	applied, err := s.service.ProcessDocument(s.ctx, f, img)

	s.Require().NoError(err)
	s.Equal([]string{"cpf", "name"}, applied)
	s.Equal("ANA MARIA", f.Record().Name)
	s.Equal("11 98888-7777", f.Record().Phone, "fields absent from the extraction keep their value")
	toast, _ := s.recorder.Last()
	s.Equal(ToastDocumentProcessed, toast)
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.DocumentsProcessed.WithLabelValues("ok")))
}

func (s *ServiceSuite) TestProcessDocumentFailure() {
	f := form.New(s.logger)
	s.Require().NoError(f.SetField("name", "Ana"))
	analyzeErr := dErrors.New(dErrors.CodeUnavailable, "document analysis failed")
	s.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(nil, analyzeErr)

	_, err := s.service.ProcessDocument(s.ctx, f, models.Image{Data: []byte("x")})

	s.ErrorIs(err, analyzeErr)
	s.Equal("Ana", f.Record().Name)
	toast, _ := s.recorder.Last()
	s.Equal("Erro no processamento", toast.Title)
	s.Equal("Não foi possível processar o documento.", toast.Description)
	s.True(toast.IsDestructive())
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.DocumentsProcessed.WithLabelValues("failed")))
}

func (s *ServiceSuite) TestCapture() {
	err := s.service.Capture(s.ctx)

	s.True(dErrors.HasCode(err, dErrors.CodeNotImplemented))
	s.Equal([]notify.Toast{ToastCapture}, s.recorder.Toasts())
	s.Equal("Funcionalidade em desenvolvimento.", ToastCapture.Description)
}
