package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a cached balance. The cache must always equal the
// balanceAfter of the wallet's latest ledger entry.
type Wallet struct {
	WalletID string          `json:"walletID"`
	OwnerID  string          `json:"ownerID"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	IsActive bool            `json:"isActive"`
	AuditFields
}

// EntryType is the closed set of ledger entry kinds.
type EntryType string

const (
	EntryDeposit            EntryType = "DEPOSIT"
	EntryAppointmentPayment EntryType = "APPOINTMENT_PAYMENT"
	EntryRefund             EntryType = "REFUND"
	EntryWithdrawal         EntryType = "WITHDRAWAL"
	EntryWithdrawalReversal EntryType = "WITHDRAWAL_REVERSAL"
	EntryAdjustmentCredit   EntryType = "ADJUSTMENT_CREDIT"
	EntryAdjustmentDebit    EntryType = "ADJUSTMENT_DEBIT"
)

// Direction says whether an entry adds to or removes from the balance.
type Direction string

const (
	Credit Direction = "CREDIT"
	Debit  Direction = "DEBIT"
)

// Direction returns the credit/debit rule for t.
func (t EntryType) Direction() (Direction, error) {
	switch t {
	case EntryDeposit, EntryRefund, EntryWithdrawalReversal, EntryAdjustmentCredit:
		return Credit, nil
	case EntryAppointmentPayment, EntryWithdrawal, EntryAdjustmentDebit:
		return Debit, nil
	}
	return "", fmt.Errorf("unknown ledger entry type %q", t)
}

// LedgerEntryStatus is the settlement state of a ledger entry.
type LedgerEntryStatus string

const (
	EntryPending   LedgerEntryStatus = "PENDING"
	EntryCompleted LedgerEntryStatus = "COMPLETED"
	EntryReversed  LedgerEntryStatus = "REVERSED"
)

// LedgerEntry is one immutable balance change. Amount is always positive;
// the sign comes from the entry type.
type LedgerEntry struct {
	EntryID              string            `json:"entryID"`
	WalletID             string            `json:"walletID"`
	Type                 EntryType         `json:"type"`
	Amount               decimal.Decimal   `json:"amount"`
	BalanceBefore        decimal.Decimal   `json:"balanceBefore"`
	BalanceAfter         decimal.Decimal   `json:"balanceAfter"`
	Status               LedgerEntryStatus `json:"status"`
	RelatedAppointmentID *string           `json:"relatedAppointmentID,omitempty"`
	Description          string            `json:"description,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	CreatedBy            string            `json:"createdBy"`
}

// SignedAmount returns the entry's effect on the wallet balance.
func (e LedgerEntry) SignedAmount() (decimal.Decimal, error) {
	dir, err := e.Type.Direction()
	if err != nil {
		return decimal.Zero, err
	}
	if dir == Debit {
		return e.Amount.Neg(), nil
	}
	return e.Amount, nil
}

// ChainBreak describes the first inconsistency found in a ledger chain.
type ChainBreak struct {
	Index  int
	Reason string
}

func (b *ChainBreak) Error() string {
	return fmt.Sprintf("ledger chain broken at entry %d: %s", b.Index, b.Reason)
}

// VerifyChain checks that entries (oldest first) form a valid chain: every
// balanceAfter follows from balanceBefore and the entry's direction, the first
// balanceBefore is zero and every later one equals the previous balanceAfter.
// When cached is non-nil it must equal the last balanceAfter (zero for an
// empty chain).
func VerifyChain(entries []LedgerEntry, cached *decimal.Decimal) error {
	running := decimal.Zero
	for i, e := range entries {
		if !e.BalanceBefore.Equal(running) {
			return &ChainBreak{Index: i, Reason: fmt.Sprintf("balanceBefore %s does not match previous balanceAfter %s", e.BalanceBefore, running)}
		}
		signed, err := e.SignedAmount()
		if err != nil {
			return &ChainBreak{Index: i, Reason: err.Error()}
		}
		if !e.BalanceBefore.Add(signed).Equal(e.BalanceAfter) {
			return &ChainBreak{Index: i, Reason: fmt.Sprintf("balanceAfter %s != %s + (%s)", e.BalanceAfter, e.BalanceBefore, signed)}
		}
		running = e.BalanceAfter
	}
	if cached != nil && !cached.Equal(running) {
		return &ChainBreak{Index: len(entries), Reason: fmt.Sprintf("cached balance %s != ledger balance %s", cached, running)}
	}
	return nil
}

// LedgerPosting is a request to append one entry to a wallet's ledger.
type LedgerPosting struct {
	WalletID             string
	Type                 EntryType
	Amount               decimal.Decimal
	Status               LedgerEntryStatus
	RelatedAppointmentID *string
	Description          string
	CreatedBy            string
}
