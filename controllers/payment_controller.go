package controllers

import (
	"github.com/gin-gonic/gin"

	"stayhub/dto"
	"stayhub/middleware"
	"stayhub/response"
	"stayhub/services"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) PaymentController {
	return PaymentController{Payments: payments}
}

// List requires ?student=; the ledger is always per student.
func (p PaymentController) List(c *gin.Context) {
	studentID := c.Query("student")
	if studentID == "" {
		response.BadRequest(c, "student is required")
		return
	}
	wallet, err := p.Payments.Wallet(c.Request.Context(), studentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, wallet)
}

// Record godoc
// @Summary  Record a credit or debit; debits need enough balance
// @Tags     payments
// @Param    body body dto.PaymentRequest true "entry"
// @Success  201 {object} response.Response
// @Failure  400 {object} response.Response "insufficient balance"
// @Router   /api/admin/payments [post]
func (p PaymentController) Record(c *gin.Context) {
	var req dto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := p.Payments.Record(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Payment recorded", payment)
}

func (p PaymentController) Update(c *gin.Context) {
	var req dto.UpdatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := p.Payments.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Payment updated", payment)
}

func (p PaymentController) Delete(c *gin.Context) {
	if err := p.Payments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Payment deleted", nil)
}

// Wallet is the logged-in student's own ledger.
func (p PaymentController) Wallet(c *gin.Context) {
	wallet, err := p.Payments.Wallet(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, wallet)
}
