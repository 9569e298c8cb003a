package dto

import "stayhub/models"

type PaymentRequest struct {
	Student string             `json:"student" binding:"required"`
	Type    models.PaymentType `json:"type" binding:"required,oneof=credit debit"`
	Amount  float64            `json:"amount" binding:"required,gt=0"`
	Note    string             `json:"note"`
}

type UpdatePaymentRequest struct {
	Type   *models.PaymentType `json:"type" binding:"omitempty,oneof=credit debit"`
	Amount *float64            `json:"amount" binding:"omitempty,gt=0"`
	Note   *string             `json:"note"`
}

// WalletResponse là số dư và lịch sử giao dịch của sinh viên
type WalletResponse struct {
	Balance      float64          `json:"balance"`
	TotalCredit  float64          `json:"totalCredit"`
	TotalDebit   float64          `json:"totalDebit"`
	Transactions []models.Payment `json:"transactions"`
}
