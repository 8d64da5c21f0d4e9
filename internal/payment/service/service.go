// Package service records decoded payment-gateway returns in the outcome
// ledger. Decoding itself never fails, so neither does recording: ledger
// failures are logged and the decoded outcome is still returned.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"cleanhome/internal/payment/metrics"
	"cleanhome/internal/payment/models"
	"cleanhome/internal/payment/vnpay"
	dErrors "cleanhome/pkg/domain-errors"
	"cleanhome/pkg/platform/device"
	"cleanhome/pkg/platform/sentinel"
	"cleanhome/pkg/requestcontext"
)

// Store is the outcome ledger.
type Store interface {
	Insert(ctx context.Context, rec *models.Record) error
	ListByReference(ctx context.Context, txnRef string) ([]models.Record, error)
}

// OutcomePublisher announces newly recorded outcomes.
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, rec models.Record) error
}

// Service decodes and records gateway returns.
type Service struct {
	store     Store
	publisher OutcomePublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher announces each first-time recorded outcome. Replays are not
// re-published.
func WithPublisher(p OutcomePublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// New constructs a payment outcome service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("outcome store is required")
	}
	s := &Service{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Record decodes a return-URL query and stores it once per
// (txnRef, transactionNo). Returns without a reference are decoded but not
// stored.
func (s *Service) Record(ctx context.Context, query url.Values) *models.Receipt {
	outcome := vnpay.DecodeQuery(query)
	rec := models.Record{
		ID:         uuid.New(),
		Outcome:    outcome,
		ClientIP:   requestcontext.ClientIP(ctx),
		Device:     device.Describe(requestcontext.UserAgent(ctx)),
		ReceivedAt: requestcontext.Now(ctx),
	}
	receipt := &models.Receipt{Record: rec}

	if s.metrics != nil {
		s.metrics.IncrementOutcome(responseCodeLabel(outcome.ResponseCode), outcome.IsSuccess)
		if outcome.IsSuccess {
			s.metrics.ObserveAmount(outcome.Amount())
		}
	}

	if strings.TrimSpace(outcome.ReferenceID) == "" {
		if s.metrics != nil {
			s.metrics.IncrementUnreferenced()
		}
		s.logger.WarnContext(ctx, "vnpay return without reference",
			"request_id", requestcontext.RequestID(ctx),
			"response_code", outcome.ResponseCode,
		)
		return receipt
	}

	err := s.store.Insert(ctx, &rec)
	switch {
	case err == nil:
		receipt.Recorded = true
		s.logger.InfoContext(ctx, "vnpay outcome recorded",
			"request_id", requestcontext.RequestID(ctx),
			"txn_ref", outcome.ReferenceID,
			"transaction_no", outcome.GatewayTransactionID,
			"response_code", outcome.ResponseCode,
			"success", outcome.IsSuccess,
		)
		s.publish(ctx, rec)
	case errors.Is(err, sentinel.ErrConflict):
		receipt.Recorded = true
		receipt.Replay = true
		if s.metrics != nil {
			s.metrics.IncrementReplays()
		}
		s.logger.InfoContext(ctx, "vnpay outcome replayed",
			"request_id", requestcontext.RequestID(ctx),
			"txn_ref", outcome.ReferenceID,
			"transaction_no", outcome.GatewayTransactionID,
		)
	default:
		s.logger.ErrorContext(ctx, "failed to record vnpay outcome",
			"request_id", requestcontext.RequestID(ctx),
			"txn_ref", outcome.ReferenceID,
			"error", err,
		)
	}
	return receipt
}

func (s *Service) publish(ctx context.Context, rec models.Record) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOutcome(ctx, rec); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementPublishFailures()
		}
		s.logger.ErrorContext(ctx, "failed to publish vnpay outcome",
			"request_id", requestcontext.RequestID(ctx),
			"txn_ref", rec.Outcome.ReferenceID,
			"error", err,
		)
	}
}

// ListByReference returns the ledger entries for txnRef, oldest first.
func (s *Service) ListByReference(ctx context.Context, txnRef string) ([]models.Record, error) {
	if strings.TrimSpace(txnRef) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "transaction reference is required")
	}
	records, err := s.store.ListByReference(ctx, txnRef)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payment outcomes")
	}
	if len(records) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no payment outcomes for reference")
	}
	return records, nil
}

// responseCodeLabel bounds metric cardinality to the documented codes.
func responseCodeLabel(code string) string {
	if vnpay.KnownResponseCode(code) {
		return code
	}
	return "other"
}
