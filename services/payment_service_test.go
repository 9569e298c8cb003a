package services

import (
	"context"
	"testing"

	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
)

func TestDebitNeedsBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.student(t, "asha@example.com", "9000000001")

	if _, err := f.payments.Record(ctx, dto.PaymentRequest{Student: st.ID, Type: models.PaymentCredit, Amount: 1000, Note: " deposit "}); err != nil {
		t.Fatalf("credit: %v", err)
	}
	_, err := f.payments.Record(ctx, dto.PaymentRequest{Student: st.ID, Type: models.PaymentDebit, Amount: 1500})
	if err != errors.ErrInsufficientBalance {
		t.Fatalf("debit err = %v", err)
	}

	wallet, err := f.payments.Wallet(ctx, st.ID)
	if err != nil {
		t.Fatal(err)
	}
	if wallet.Balance != 1000 || wallet.TotalCredit != 1000 || wallet.TotalDebit != 0 || len(wallet.Transactions) != 1 {
		t.Errorf("wallet = %+v", wallet)
	}
	if wallet.Transactions[0].Note != "deposit" {
		t.Errorf("note = %q", wallet.Transactions[0].Note)
	}

	if _, err := f.payments.Record(ctx, dto.PaymentRequest{Student: st.ID, Type: models.PaymentDebit, Amount: 1000}); err != nil {
		t.Fatalf("exact debit: %v", err)
	}
	if bal, _ := f.payments.Balance(ctx, st.ID); bal != 0 {
		t.Errorf("balance = %v", bal)
	}
}

func TestPaymentValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.student(t, "asha@example.com", "9000000001")

	cases := []struct {
		name string
		req  dto.PaymentRequest
		code errors.ErrorCode
	}{
		{"zero amount", dto.PaymentRequest{Student: st.ID, Type: models.PaymentCredit}, errors.ErrCodeValidation},
		{"bad type", dto.PaymentRequest{Student: st.ID, Type: "refund", Amount: 10}, errors.ErrCodeValidation},
		{"unknown student", dto.PaymentRequest{Student: "ghost", Type: models.PaymentCredit, Amount: 10}, errors.ErrCodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.payments.Record(ctx, tc.req); !errors.HasCode(err, tc.code) {
				t.Errorf("err = %v, want %s", err, tc.code)
			}
		})
	}
}

func TestUpdatePaymentRechecksBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.student(t, "asha@example.com", "9000000001")

	if _, err := f.payments.Record(ctx, dto.PaymentRequest{Student: st.ID, Type: models.PaymentCredit, Amount: 1000}); err != nil {
		t.Fatal(err)
	}
	debit, err := f.payments.Record(ctx, dto.PaymentRequest{Student: st.ID, Type: models.PaymentDebit, Amount: 400})
	if err != nil {
		t.Fatal(err)
	}

	// the edited entry itself is left out of the balance check
	amount := 1000.0
	updated, err := f.payments.Update(ctx, debit.ID, dto.UpdatePaymentRequest{Amount: &amount})
	if err != nil {
		t.Fatalf("raise debit to 1000: %v", err)
	}
	if updated.Amount != 1000 {
		t.Errorf("amount = %v", updated.Amount)
	}

	amount = 1200
	if _, err := f.payments.Update(ctx, debit.ID, dto.UpdatePaymentRequest{Amount: &amount}); err != errors.ErrInsufficientBalance {
		t.Fatalf("raise debit to 1200: %v", err)
	}
	if bal, _ := f.payments.Balance(ctx, st.ID); bal != 0 {
		t.Errorf("balance after refused update = %v", bal)
	}

	if err := f.payments.Delete(ctx, debit.ID); err != nil {
		t.Fatal(err)
	}
	if bal, _ := f.payments.Balance(ctx, st.ID); bal != 1000 {
		t.Errorf("balance after delete = %v", bal)
	}
	if err := f.payments.Delete(ctx, debit.ID); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

func TestWalletUnknownStudent(t *testing.T) {
	f := newFixture(t)
	if _, err := f.payments.Wallet(context.Background(), "ghost"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("err = %v", err)
	}
	st := f.student(t, "asha@example.com", "9000000001")
	wallet, err := f.payments.Wallet(context.Background(), st.ID)
	if err != nil || wallet.Transactions == nil || wallet.Balance != 0 {
		t.Errorf("empty wallet = %+v, %v", wallet, err)
	}
}
