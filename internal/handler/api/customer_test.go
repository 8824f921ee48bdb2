//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"templatehub/internal/handler/api"
	"templatehub/internal/usecase/queries"
	"templatehub/tests/common/httptest"
	queriesmock "templatehub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CustomerHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockCustomerQueries
	handler     *api.CustomerHandler
}

func (s *CustomerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockCustomerQueries(s.mockCtrl)
	s.handler = api.NewCustomerHandler(s.mockQueries)

	s.router.GET("/customers/:saleId", s.handler.GetBySaleID)
}

func (s *CustomerHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCustomerHandlerSuite(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}

func (s *CustomerHandlerTestSuite) TestGetBySaleID() {
	saleID := uuid.New()
	view := &queries.CustomerView{
		ID:          uuid.New(),
		SaleID:      saleID,
		Email:       "buyer@example.com",
		Package:     "pro",
		LicenseKey:  "PRO-AAAAAAAA-BBBBBBBB-CCCCCCCC",
		SupportTier: "priority_email",
		Metadata:    map[string]any{"emailSent": true},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	s.Run("success: returns 200 OK with customer view", func() {
		s.mockQueries.EXPECT().GetBySaleID(gomock.Any(), saleID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/customers/"+saleID.String(), nil, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(saleID.String(), body["saleId"])
		s.Equal("PRO-AAAAAAAA-BBBBBBBB-CCCCCCCC", body["licenseKey"])
	})

	s.Run("error: 400 on malformed sale id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/customers/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid sale ID")
	})

	s.Run("error: 404 when customer not found", func() {
		s.mockQueries.EXPECT().GetBySaleID(gomock.Any(), saleID).
			Return(nil, queries.ErrCustomerNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/customers/"+saleID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Customer not found")
	})

	s.Run("error: 500 on unexpected failure", func() {
		s.mockQueries.EXPECT().GetBySaleID(gomock.Any(), saleID).
			Return(nil, errors.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/customers/"+saleID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
