package models

import (
	"time"

	"github.com/google/uuid"

	"cleanhome/internal/payment/vnpay"
)

// Record is one decoded gateway return kept in the outcome ledger.
type Record struct {
	ID         uuid.UUID     `json:"id"`
	Outcome    vnpay.Outcome `json:"outcome"`
	ClientIP   string        `json:"clientIp,omitempty"`
	Device     string        `json:"device,omitempty"`
	ReceivedAt time.Time     `json:"receivedAt"`
}

// Receipt is the result of recording a return. Replay is set when the same
// (txnRef, transactionNo) pair was already in the ledger; Recorded is false
// when the return carried no reference and was not stored at all.
type Receipt struct {
	Record   Record `json:"record"`
	Recorded bool   `json:"recorded"`
	Replay   bool   `json:"replay"`
}
