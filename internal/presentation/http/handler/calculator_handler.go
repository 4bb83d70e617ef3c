package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/request"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/response"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/apperror"
)

// CalculatorHandler exposes the billing calculators without touching storage
type CalculatorHandler struct{}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

type vatResponse struct {
	Amount     float64      `json:"amount"`
	Rate       float64      `json:"rate"`
	Mode       enum.VATMode `json:"mode"`
	Total      float64      `json:"total"`
	VATPortion float64      `json:"vat_portion"`
}

// VAT handles a VAT calculation
func (h *CalculatorHandler) VAT(c *gin.Context) {
	var req request.VATRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vat := billing.NormalizeVAT(req.Rate, req.Mode)
	result := billing.ApplyVAT(*req.Amount, req.Rate, req.Mode)
	response.OK(c, "VAT calculated successfully", vatResponse{
		Amount:     billing.ToCents(*req.Amount).Float64(),
		Rate:       vat.Rate(),
		Mode:       vat.Mode(),
		Total:      result.Total,
		VATPortion: result.VATPortion,
	})
}

// DepositPreview handles computing a deposit for terms that are not stored
func (h *CalculatorHandler) DepositPreview(c *gin.Context) {
	var req request.DepositPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cfg := req.Config.ToConfig()
	if issues := billing.ValidateDepositConfig(cfg); len(issues) > 0 {
		fields := make([]apperror.FieldError, 0, len(issues))
		for _, issue := range issues {
			fields = append(fields, apperror.FieldError{Field: "config." + issue.Field, Message: issue.Message})
		}
		response.ValidationError(c, fields)
		return
	}

	pricing := billing.PricingContext{
		BasePrice:     req.BasePrice,
		ExtrasTotal:   req.ExtrasTotal,
		ContractTotal: req.ContractTotal,
	}
	response.OK(c, "Deposit calculated successfully", response.DepositPreviewResponse{
		Amount:  billing.ComputeDeposit(cfg, pricing),
		Ceiling: pricing.Ceiling(),
	})
}
