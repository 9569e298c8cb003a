package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentStatus is the closed set of payment labels stored on a booking.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentFullPaid      PaymentStatus = "Full Amount Paid"
)

var paymentStatusAliases = map[string]PaymentStatus{
	"pending":          PaymentPending,
	"partial":          PaymentPartiallyPaid,
	"partially paid":   PaymentPartiallyPaid,
	"completed":        PaymentFullPaid,
	"paid":             PaymentFullPaid,
	"full amount paid": PaymentFullPaid,
}

// ParsePaymentStatus accepts canonical labels in any case and the legacy
// pending/partial/completed tokens.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if status, ok := paymentStatusAliases[key]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid payment status %q", s)
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPartiallyPaid, PaymentFullPaid:
		return true
	}
	return false
}

// UnmarshalJSON canonicalizes incoming values, so handlers never see legacy tokens.
func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*s = ""
		return nil
	}
	status, err := ParsePaymentStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}
