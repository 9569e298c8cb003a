package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/services/logger"
	"stayhub/store"
	"stayhub/validator"
)

type PaymentServiceOptions struct {
	Store  store.Store
	Logger logger.Logger
}

// PaymentService is the student wallet ledger. The balance is always
// aggregated from entries, never stored.
type PaymentService struct {
	store  store.Store
	logger logger.Logger
}

func NewPaymentService(opts PaymentServiceOptions) *PaymentService {
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	return &PaymentService{store: opts.Store, logger: opts.Logger}
}

// Record appends an entry. A debit needs enough balance to cover it.
func (s *PaymentService) Record(ctx context.Context, req dto.PaymentRequest) (*models.Payment, error) {
	req.Note = strings.TrimSpace(req.Note)
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, errors.Validation("type must be credit or debit")
	}

	payment := &models.Payment{
		ID:        uuid.NewString(),
		StudentID: req.Student,
		Type:      req.Type,
		Amount:    req.Amount,
		Note:      req.Note,
	}
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.Students().Lock(ctx, req.Student); err != nil {
			return storeErr(err, "Student not found")
		}
		if payment.Type == models.PaymentDebit {
			if err := s.checkBalance(ctx, tx, req.Student, "", payment.Amount); err != nil {
				return err
			}
		}
		return storeErr(tx.Payments().Create(ctx, payment), "Payment not found")
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Update re-checks the balance without the edited entry when the result is a debit.
func (s *PaymentService) Update(ctx context.Context, id string, req dto.UpdatePaymentRequest) (*models.Payment, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	var updated *models.Payment
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		p, err := tx.Payments().Get(ctx, id)
		if err != nil {
			return storeErr(err, "Payment not found")
		}
		if err := tx.Students().Lock(ctx, p.StudentID); err != nil {
			return storeErr(err, "Student not found")
		}
		if req.Type != nil {
			if !req.Type.Valid() {
				return errors.Validation("type must be credit or debit")
			}
			p.Type = *req.Type
		}
		if req.Amount != nil {
			if *req.Amount <= 0 {
				return errors.Validation("amount must be greater than 0")
			}
			p.Amount = *req.Amount
		}
		if req.Note != nil {
			p.Note = strings.TrimSpace(*req.Note)
		}
		if p.Type == models.PaymentDebit {
			if err := s.checkBalance(ctx, tx, p.StudentID, p.ID, p.Amount); err != nil {
				return err
			}
		}
		if err := tx.Payments().Update(ctx, p); err != nil {
			return storeErr(err, "Payment not found")
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an entry. Other entries are not re-validated.
func (s *PaymentService) Delete(ctx context.Context, id string) error {
	if err := s.store.Payments().Delete(ctx, id); err != nil {
		return storeErr(err, "Payment not found")
	}
	return nil
}

func (s *PaymentService) List(ctx context.Context, studentID string) ([]models.Payment, error) {
	payments, err := s.store.Payments().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.Internal("Failed to list payments", err)
	}
	return payments, nil
}

func (s *PaymentService) Balance(ctx context.Context, studentID string) (float64, error) {
	balance, err := s.store.Payments().Balance(ctx, studentID, "")
	if err != nil {
		return 0, errors.Internal("Failed to compute balance", err)
	}
	return balance, nil
}

// Wallet returns the balance with the full entry history.
func (s *PaymentService) Wallet(ctx context.Context, studentID string) (*dto.WalletResponse, error) {
	if _, err := s.store.Students().Get(ctx, studentID); err != nil {
		return nil, storeErr(err, "Student not found")
	}
	entries, err := s.List(ctx, studentID)
	if err != nil {
		return nil, err
	}
	wallet := &dto.WalletResponse{Transactions: entries}
	if wallet.Transactions == nil {
		wallet.Transactions = []models.Payment{}
	}
	for _, e := range entries {
		if e.Type == models.PaymentCredit {
			wallet.TotalCredit += e.Amount
		} else {
			wallet.TotalDebit += e.Amount
		}
	}
	wallet.Balance, err = s.Balance(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *PaymentService) checkBalance(ctx context.Context, tx store.Store, studentID, excludeID string, amount float64) error {
	balance, err := tx.Payments().Balance(ctx, studentID, excludeID)
	if err != nil {
		return errors.Internal("Failed to compute balance", err)
	}
	if balance < amount {
		s.logger.Info("debit of %.2f refused for student %s: balance %.2f", amount, studentID, balance)
		return errors.ErrInsufficientBalance
	}
	return nil
}
