package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"cleanhome/internal/payment/models"
	"cleanhome/internal/payment/vnpay"
	"cleanhome/pkg/platform/httputil"
)

const (
	titleSuccess = "Thanh toán thành công!"
	titleFailure = "Thanh toán thất bại!"
)

// Service defines the outcome operations used by the handler.
type Service interface {
	Record(ctx context.Context, query url.Values) *models.Receipt
	ListByReference(ctx context.Context, txnRef string) ([]models.Record, error)
}

// Handler exposes decoded gateway returns to the result page.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a payment handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts payment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/payment/vnpay/return", h.HandleReturn)
	r.Get("/payment/vnpay/outcomes/{txnRef}", h.HandleListOutcomes)
}

// HandleReturn handles GET /payment/vnpay/return. The gateway redirect is
// always rendered; a failed payment is a 200 with isSuccess=false.
func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	receipt := h.service.Record(r.Context(), r.URL.Query())
	httputil.WriteJSON(w, http.StatusOK, toReturnResponse(receipt))
}

// HandleListOutcomes handles GET /payment/vnpay/outcomes/{txnRef}.
func (h *Handler) HandleListOutcomes(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListByReference(r.Context(), chi.URLParam(r, "txnRef"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, recordsResponse{Items: records})
}

func toReturnResponse(receipt *models.Receipt) returnResponse {
	o := receipt.Record.Outcome
	title := titleFailure
	if o.IsSuccess {
		title = titleSuccess
	}
	return returnResponse{
		Outcome:     o,
		Title:       title,
		Amount:      vnpay.FormatAmount(o.Amount()),
		PayDate:     vnpay.FormatTimestamp(o.PaidAt),
		BookingCode: o.BookingCode(),
		Recorded:    receipt.Recorded,
		Replay:      receipt.Replay,
	}
}
