package handler

import (
	"cleanhome/internal/payment/models"
	"cleanhome/internal/payment/vnpay"
)

// returnResponse carries the decoded outcome plus its display strings.
type returnResponse struct {
	Outcome     vnpay.Outcome `json:"outcome"`
	Title       string        `json:"title"`
	Amount      string        `json:"amount"`
	PayDate     string        `json:"payDate"`
	BookingCode string        `json:"bookingCode,omitempty"`
	Recorded    bool          `json:"recorded"`
	Replay      bool          `json:"replay"`
}

type recordsResponse struct {
	Items []models.Record `json:"items"`
}
