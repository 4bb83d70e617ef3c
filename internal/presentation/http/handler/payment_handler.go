package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/togay-aytemiz/lumiso-sub014/internal/application/service"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/request"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/response"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/pagination"
)

// PaymentHandler handles a project's payment ledger
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List handles listing a project's ledger rows, newest first
func (h *PaymentHandler) List(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.paymentService.ListPayments(requestContext(c), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Record handles adding a row to a project's ledger
func (h *PaymentHandler) Record(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), id, &service.RecordPaymentInput{
		Amount:            *req.Amount,
		Status:            req.Status,
		EntryKind:         req.EntryKind,
		Type:              req.Type,
		Description:       req.Description,
		DatePaid:          req.DatePaid,
		DepositAllocation: req.DepositAllocation,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}
