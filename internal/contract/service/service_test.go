package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"realty/internal/contract/models"
	"realty/internal/contract/service/mocks"
	"realty/internal/platform/metrics"
	dErrors "realty/pkg/domain-errors"
	"realty/pkg/platform/sentinel"
	"realty/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	mockStore *mocks.MockStore
	metrics   *metrics.Metrics
	service   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.mockStore,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestSave() {
	s.Run("returns the store result", func() {
		c := testutil.SampleContract()
		s.mockStore.EXPECT().SaveContract(gomock.Any(), c).
			Return(&models.SaveResult{ID: 7, RowsAffected: 1}, nil)

		res, err := s.service.Save(s.ctx, c)

		s.Require().NoError(err)
		s.Equal(int64(7), res.ID)
		s.Equal(int64(1), res.RowsAffected)
	})

	s.Run("nil contract never reaches the store", func() {
		_, err := s.service.Save(s.ctx, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestSaveErrorMapping() {
	cases := []struct {
		name     string
		storeErr error
		code     dErrors.Code
	}{
		{"not initialized", sentinel.ErrNotInitialized, dErrors.CodeNotInitialized},
		{"wrapped not initialized", fmt.Errorf("save: %w", sentinel.ErrNotInitialized), dErrors.CodeNotInitialized},
		{"invalid input", sentinel.ErrInvalidInput, dErrors.CodeBadRequest},
		{"validation passes through", dErrors.New(dErrors.CodeValidation, "buyer.name is required"), dErrors.CodeValidation},
		{"driver failure is internal", errors.New("disk I/O error"), dErrors.CodeInternal},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockStore.EXPECT().SaveContract(gomock.Any(), gomock.Any()).Return(nil, tc.storeErr)

			res, err := s.service.Save(s.ctx, testutil.SampleContract())

			s.Nil(res)
			s.Require().Error(err)
			s.Equal(tc.code, dErrors.CodeOf(err))
			s.Equal(float64(1), promtest.ToFloat64(s.metrics.ContractSaveFailures.WithLabelValues(string(tc.code))))
			s.metrics.ContractSaveFailures.Reset()
		})
	}
}

func (s *ServiceSuite) TestSaveRecordsLatency() {
	s.mockStore.EXPECT().SaveContract(gomock.Any(), gomock.Any()).
		Return(&models.SaveResult{ID: 1, RowsAffected: 1}, nil).Times(2)

	for range 2 {
		_, err := s.service.Save(s.ctx, testutil.SampleContract())
		s.Require().NoError(err)
	}
	s.Equal(float64(2), promtest.ToFloat64(s.metrics.ContractsSaved))
}

func (s *ServiceSuite) TestGet() {
	s.Run("found", func() {
		stored := &models.StoredContract{ID: 3, RealEstateContract: *testutil.SampleContract()}
		s.mockStore.EXPECT().FindByID(gomock.Any(), int64(3)).Return(stored, nil)

		got, err := s.service.Get(s.ctx, 3)

		s.Require().NoError(err)
		s.Equal(stored, got)
	})

	s.Run("missing maps to not found", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), int64(4)).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Get(s.ctx, 4)

		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestInitialize() {
	s.Run("success", func() {
		s.mockStore.EXPECT().Initialize(gomock.Any()).Return(nil)
		s.NoError(s.service.Initialize(s.ctx))
	})

	s.Run("failure is unavailable", func() {
		s.mockStore.EXPECT().Initialize(gomock.Any()).Return(errors.New("unable to open database file"))
		err := s.service.Initialize(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
