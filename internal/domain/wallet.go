package domain

import (
	"fmt"
	"strings"
	"time"
)

type AccountSummary struct {
	Address    Address
	XRPBalance float64
	PFTBalance float64
}

type InitRiteStatus string

const (
	InitRiteUnstarted         InitRiteStatus = "UNSTARTED"
	InitRitePendingInitiation InitRiteStatus = "PENDING_INITIATION"
	InitRitePending           InitRiteStatus = "PENDING"
	InitRiteComplete          InitRiteStatus = "COMPLETE"
)

type AccountStatus struct {
	InitRiteStatus InitRiteStatus
	IsBlacklisted  bool
	ContextDocLink string
	SweepAddress   string
	InitiationRite string
}

// NeedsOnboarding reports whether the account has not finished its
// initiation rite yet.
func (s AccountStatus) NeedsOnboarding() bool {
	switch InitRiteStatus(strings.ToUpper(string(s.InitRiteStatus))) {
	case InitRiteUnstarted, InitRitePendingInitiation, InitRitePending, "":
		return true
	default:
		return false
	}
}

// Keypair is a freshly generated wallet. It is shown once and never stored.
type Keypair struct {
	Address    Address
	PrivateKey Secret
}

type Currency string

const (
	CurrencyXRP Currency = "XRP"
	CurrencyPFT Currency = "PFT"
)

func ParseCurrency(raw string) (Currency, error) {
	switch currency := Currency(strings.ToUpper(strings.TrimSpace(raw))); currency {
	case CurrencyXRP, CurrencyPFT:
		return currency, nil
	default:
		return "", fmt.Errorf("unsupported currency %q", raw)
	}
}

type PaymentRequest struct {
	From     Address
	To       Address
	Amount   float64
	Currency Currency
	MemoID   string
	Memo     string
}

func (p PaymentRequest) Validate() error {
	if p.From.IsZero() {
		return fmt.Errorf("from address is required")
	}
	if p.To.IsZero() {
		return fmt.Errorf("destination address is required")
	}
	if p.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if p.Currency != CurrencyXRP && p.Currency != CurrencyPFT {
		return fmt.Errorf("unsupported currency %q", p.Currency)
	}

	return nil
}

type Payment struct {
	LedgerIndex int64
	Timestamp   time.Time
	Hash        string
	From        Address
	To          Address
	AmountXRP   float64
	AmountPFT   float64
	Memo        string
}

// Direction is relative to owner: "From" for incoming, "To" for outgoing.
func (p Payment) Direction(owner Address) string {
	if p.To == owner {
		return "From"
	}

	return "To"
}

func (p Payment) Counterparty(owner Address) Address {
	if p.To == owner {
		return p.From
	}

	return p.To
}

type NodeMessage struct {
	ID        string
	FromUser  bool
	Text      string
	Timestamp time.Time
	AmountPFT float64
}
