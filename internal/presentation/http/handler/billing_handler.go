package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/togay-aytemiz/lumiso-sub014/internal/application/service"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/request"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/response"
)

// BillingHandler handles the billing figures of a project
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Header handles the project header summary. Collaborator failures are
// answered with a zero summary flagged as degraded.
func (h *BillingHandler) Header(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	summary, degraded, err := h.billingService.HeaderSummaryOrZero(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Header summary retrieved successfully", response.HeaderSummaryResponse{
		HeaderSummary: summary,
		Degraded:      degraded,
	})
}

// Services handles pricing the services attached to a project
func (h *BillingHandler) Services(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	totals, err := h.billingService.ServiceTotals(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service totals retrieved successfully", totals)
}

// Payments handles the payment summary of a project
func (h *BillingHandler) Payments(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	summary, err := h.billingService.PaymentSummary(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment summary retrieved successfully", summary)
}

// Deposit handles the deposit quote of a project
func (h *BillingHandler) Deposit(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var query request.DepositQuoteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid contract_total")
		return
	}

	quote, err := h.billingService.DepositQuote(requestContext(c), id, query.ContractTotal)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Deposit retrieved successfully", quote)
}

// UpdateDeposit handles storing a project's deposit terms
func (h *BillingHandler) UpdateDeposit(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req request.DepositConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cfg, err := h.billingService.UpdateDepositConfig(requestContext(c), id, req.ToConfig())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Deposit updated successfully", cfg)
}

// Outstanding handles the installment allocation of a project
func (h *BillingHandler) Outstanding(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	schedule, err := h.billingService.OutstandingSchedule(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Outstanding schedule retrieved successfully", schedule)
}
