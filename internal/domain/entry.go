package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger movement as money in or money out.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// ParseEntryType validates a raw entry type value. The enumeration is
// closed: anything outside income/expense is rejected.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryTypeIncome, EntryTypeExpense:
		return EntryType(s), nil
	}
	return "", fmt.Errorf("%w: unknown entry type %q", ErrInvalidEntryType, s)
}

// Label returns the Spanish display label used in exports.
func (t EntryType) Label() string {
	if t == EntryTypeIncome {
		return "Ingreso"
	}
	return "Gasto"
}

// PaymentMethod is how the movement was paid.
type PaymentMethod string

const (
	MethodCash       PaymentMethod = "cash"
	MethodDebitCard  PaymentMethod = "debit_card"
	MethodCreditCard PaymentMethod = "credit_card"
	MethodTransfer   PaymentMethod = "transfer"
	MethodOther      PaymentMethod = "other"
)

var methodLabels = map[PaymentMethod]string{
	MethodCash:       "Efectivo",
	MethodDebitCard:  "Tarjeta de Débito",
	MethodCreditCard: "Tarjeta de Crédito",
	MethodTransfer:   "Transferencia",
	MethodOther:      "Otro",
}

// ParsePaymentMethod validates a raw payment method value.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if _, ok := methodLabels[PaymentMethod(s)]; ok {
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("%w: unknown payment method %q", ErrInvalidPaymentMethod, s)
}

// Label returns the Spanish display label used in exports.
func (m PaymentMethod) Label() string {
	if label, ok := methodLabels[m]; ok {
		return label
	}
	return string(m)
}

// Entry is one recorded income or expense movement. Entries are immutable
// after creation except for Description, which the author may edit in place.
type Entry struct {
	ID          string
	Type        EntryType
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Method      PaymentMethod
	CreatedBy   string
	CreatedAt   time.Time
}

// Creator identifies a user who has authored at least one entry.
type Creator struct {
	ID    string
	Label string
}
