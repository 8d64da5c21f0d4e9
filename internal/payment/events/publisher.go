// Package events publishes newly recorded payment outcomes so booking
// services can confirm or release the booking they belong to.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cleanhome/internal/payment/models"
)

// EventType names the published payload.
const EventType = "payment.outcome.recorded"

// Producer is the transport the publisher writes to.
type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// OutcomeEvent is the published payload. It carries the display-independent
// facts only; consumers re-derive wording from the response code.
type OutcomeEvent struct {
	EventID       string    `json:"eventId"`
	Type          string    `json:"type"`
	TxnRef        string    `json:"txnRef"`
	TransactionNo string    `json:"transactionNo,omitempty"`
	ResponseCode  string    `json:"responseCode"`
	IsSuccess     bool      `json:"isSuccess"`
	AmountVND     int64     `json:"amountVnd"`
	BookingCode   string    `json:"bookingCode,omitempty"`
	PayDate       string    `json:"payDate,omitempty"`
	ReceivedAt    time.Time `json:"receivedAt"`
}

// Publisher writes outcome events keyed by transaction reference, so every
// attempt for one booking lands on the same partition in order.
type Publisher struct {
	producer Producer
	topic    string
}

// New creates an outcome publisher for topic.
func New(producer Producer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

// PublishOutcome publishes rec.
func (p *Publisher) PublishOutcome(ctx context.Context, rec models.Record) error {
	o := rec.Outcome
	payload, err := json.Marshal(OutcomeEvent{
		EventID:       rec.ID.String(),
		Type:          EventType,
		TxnRef:        o.ReferenceID,
		TransactionNo: o.GatewayTransactionID,
		ResponseCode:  o.ResponseCode,
		IsSuccess:     o.IsSuccess,
		AmountVND:     o.Amount(),
		BookingCode:   o.BookingCode(),
		PayDate:       o.PaidAt,
		ReceivedAt:    rec.ReceivedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal outcome event: %w", err)
	}
	return p.producer.Publish(ctx, p.topic, []byte(o.ReferenceID), payload)
}
