package api

import (
	"errors"
	"net/http"

	reqdto "templatehub/internal/handler/dto/request"
	resdto "templatehub/internal/handler/dto/response"
	"templatehub/internal/handler/middleware"
	"templatehub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type FulfillmentHandler struct {
	fulfillmentCommands commands.FulfillmentCommands
	overrideCommands    commands.OverrideCommands
}

func NewFulfillmentHandler(
	fulfillmentCommands commands.FulfillmentCommands,
	overrideCommands commands.OverrideCommands,
) *FulfillmentHandler {
	return &FulfillmentHandler{
		fulfillmentCommands: fulfillmentCommands,
		overrideCommands:    overrideCommands,
	}
}

// @Summary Fulfill template sale
// @Description Generate license credentials, deliver email and grant repository access for a completed sale
// @Tags fulfillments
// @Accept json
// @Produce json
// @Param X-Fulfillment-Secret header string true "Shared fulfillment secret"
// @Param request body reqdto.FulfillTemplateSaleRequest true "Fulfillment request"
// @Success 201 {object} resdto.FulfillmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /fulfillments [post]
func (h *FulfillmentHandler) Fulfill(c *gin.Context) {
	var req reqdto.FulfillTemplateSaleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.fulfillmentCommands.FulfillTemplateSale(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSaleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Sale not found",
			})
		case errors.Is(err, commands.ErrSaleNotCompleted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Sale is not in a completed state",
			})
		case errors.Is(err, commands.ErrAlreadyFulfilled):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Sale has already been fulfilled",
			})
		case errors.Is(err, commands.ErrFulfillmentInProgress):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Fulfillment is currently being processed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromFulfillmentResult(result))
}

// @Summary Override GitHub username
// @Description Set or correct the GitHub username on a sale and optionally retry the access grant
// @Tags fulfillments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.OverrideGithubUsernameRequest true "Override request"
// @Success 200 {object} resdto.OverrideGithubUsernameResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /fulfillments/github-username [post]
func (h *FulfillmentHandler) OverrideGithubUsername(c *gin.Context) {
	operatorID, ok := middleware.GetOperatorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.OverrideGithubUsernameRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.overrideCommands.OverrideGithubUsername(c.Request.Context(), req.ToCommand(operatorID.String()))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOverrideTargetRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Either sale_id or customer_email is required",
			})
		case errors.Is(err, commands.ErrInvalidGithubUsername):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid GitHub username",
			})
		case errors.Is(err, commands.ErrSaleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Sale not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOverrideResult(result))
}
