package api

import (
	"errors"
	"net/http"

	resdto "templatehub/internal/handler/dto/response"
	"templatehub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CustomerHandler struct {
	customerQueries queries.CustomerQueries
}

func NewCustomerHandler(customerQueries queries.CustomerQueries) *CustomerHandler {
	return &CustomerHandler{
		customerQueries: customerQueries,
	}
}

// @Summary Get customer by sale
// @Description Get the fulfilled customer record for a sale
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param saleId path string true "Sale ID"
// @Success 200 {object} resdto.CustomerResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /customers/{saleId} [get]
func (h *CustomerHandler) GetBySaleID(c *gin.Context) {
	idStr := c.Param("saleId")
	saleID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sale ID format",
		})
		return
	}

	view, err := h.customerQueries.GetBySaleID(c.Request.Context(), saleID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCustomerView(view))
}
