//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"templatehub/internal/domain/operator"
	"templatehub/internal/domain/sale"
	"templatehub/internal/handler/api"
	"templatehub/internal/handler/middleware"
	"templatehub/internal/usecase/commands"
	"templatehub/tests/common/builder"
	"templatehub/tests/common/httptest"
	"templatehub/tests/common/testutil"
	commandsmock "templatehub/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testSharedSecret = "test-fulfillment-secret"

type FulfillmentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockFulfill  *commandsmock.MockFulfillmentCommands
	mockOverride *commandsmock.MockOverrideCommands
	handler      *api.FulfillmentHandler
}

func (s *FulfillmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockFulfill = commandsmock.NewMockFulfillmentCommands(s.mockCtrl)
	s.mockOverride = commandsmock.NewMockOverrideCommands(s.mockCtrl)
	s.handler = api.NewFulfillmentHandler(s.mockFulfill, s.mockOverride)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("operator_id", uuid.New())
		c.Set("operator_role", operator.RoleOperator)
		c.Next()
	}

	s.router.POST("/fulfillments", middleware.RequireSharedSecret(testSharedSecret), s.handler.Fulfill)
	s.router.POST("/fulfillments/github-username", authMiddleware, s.handler.OverrideGithubUsername)
}

func (s *FulfillmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestFulfillmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(FulfillmentHandlerTestSuite))
}

func secretHeaders() map[string]string {
	return map[string]string{"X-Fulfillment-Secret": testSharedSecret}
}

// ================================================================================
// TestFulfill
// ================================================================================

func (s *FulfillmentHandlerTestSuite) TestFulfill() {
	url := "/fulfillments"

	reqBody := builder.NewSaleBuilder().WithGithubUsername("octocat").BuildFulfillRequestDTO()
	expiresAt := time.Now().Add(90 * 24 * time.Hour)
	username := "octocat"
	expectedResult := &commands.FulfillmentResult{
		LicenseKey:          "PRO-AAAAAAAA-BBBBBBBB-CCCCCCCC",
		DownloadToken:       "token",
		DownloadURL:         "https://templatehub.example.com/download?token=token",
		SupportTier:         sale.SupportPriorityEmail,
		AccessExpiresAt:     &expiresAt,
		EmailSent:           true,
		GithubAccessGranted: true,
		GithubUsername:      &username,
	}

	s.Run("success: returns 201 Created with credentials", func() {
		s.mockFulfill.EXPECT().FulfillTemplateSale(gomock.Any(), gomock.Any()).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, secretHeaders())

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("PRO-AAAAAAAA-BBBBBBBB-CCCCCCCC", body["licenseKey"])
		s.Equal(true, body["emailSent"])
		s.Equal("octocat", body["githubUsername"])
	})

	s.Run("error: 401 without shared secret", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid fulfillment secret")
	})

	s.Run("error: 401 with wrong shared secret", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"X-Fulfillment-Secret": "wrong"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: session_id", mutate: testutil.Field("session_id", nil)},
			{name: "missing field: customer_email", mutate: testutil.Field("customer_email", nil)},
			{name: "malformed email", mutate: testutil.Field("customer_email", "not-an-email")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, secretHeaders())
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "sale not found",
				commandsError:  commands.ErrSaleNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Sale not found",
			},
			{
				name:           "sale not completed",
				commandsError:  commands.ErrSaleNotCompleted,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not in a completed state",
			},
			{
				name:           "already fulfilled",
				commandsError:  commands.ErrAlreadyFulfilled,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already been fulfilled",
			},
			{
				name:           "fulfillment in progress",
				commandsError:  commands.ErrFulfillmentInProgress,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "currently being processed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockFulfill.EXPECT().FulfillTemplateSale(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, secretHeaders())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestOverrideGithubUsername
// ================================================================================

func (s *FulfillmentHandlerTestSuite) TestOverrideGithubUsername() {
	url := "/fulfillments/github-username"

	saleID := uuid.New()
	reqBody := map[string]any{
		"sale_id":         saleID.String(),
		"github_username": "@NewName",
	}
	expectedResult := &commands.OverrideResult{
		SaleID:          saleID,
		GithubUsername:  "newname",
		CustomerUpdated: true,
		Retried:         true,
	}

	s.Run("success: returns 200 OK and defaults retry to true", func() {
		s.mockOverride.EXPECT().OverrideGithubUsername(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req commands.OverrideGithubUsernameRequest) (*commands.OverrideResult, error) {
				s.Require().NotNil(req.SaleID)
				s.Equal(saleID, *req.SaleID)
				s.True(req.Retry)
				s.NotEmpty(req.OverriddenBy)
				return expectedResult, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("newname", body["githubUsername"])
		s.Equal(true, body["customerUpdated"])
	})

	s.Run("success: retry=false passes through", func() {
		withRetry := map[string]any{
			"sale_id":         saleID.String(),
			"github_username": "newname",
			"retry":           false,
		}
		s.mockOverride.EXPECT().OverrideGithubUsername(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req commands.OverrideGithubUsernameRequest) (*commands.OverrideResult, error) {
				s.False(req.Retry)
				return &commands.OverrideResult{SaleID: saleID, GithubUsername: "newname"}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, withRetry, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 when github_username missing", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("github_username", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "missing target",
				commandsError:  commands.ErrOverrideTargetRequired,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "sale_id or customer_email",
			},
			{
				name:           "invalid username",
				commandsError:  commands.ErrInvalidGithubUsername,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid GitHub username",
			},
			{
				name:           "sale not found",
				commandsError:  commands.ErrSaleNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Sale not found",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockOverride.EXPECT().OverrideGithubUsername(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
