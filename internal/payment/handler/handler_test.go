package handler

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanhome/internal/payment/service"
	"cleanhome/internal/payment/store"
	"cleanhome/pkg/testutil"
)

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	svc, err := service.New(store.NewInMemory())
	require.NoError(t, err)

	r := chi.NewRouter()
	New(svc, slog.New(slog.DiscardHandler)).Register(r)
	return r
}

func TestHandleReturn(t *testing.T) {
	r := newRouter(t)
	now := time.Date(2024, 1, 15, 7, 30, 5, 0, time.UTC)

	tests := []struct {
		name        string
		query       string
		success     bool
		title       string
		amount      string
		payDate     string
		bookingCode string
		message     string
	}{
		{
			name:        "successful payment",
			query:       "vnp_ResponseCode=00&vnp_TxnRef=CH20240115A1_1705300000&vnp_TransactionNo=14000001&vnp_Amount=15000000&vnp_PayDate=20240115143005&vnp_OrderInfo=Thanh+toan+don+CH20240115A1",
			success:     true,
			title:       "Thanh toán thành công!",
			amount:      "150.000\u00a0₫",
			payDate:     "14:30:05 15/01/2024",
			bookingCode: "CH20240115A1",
			message:     "Giao dịch thành công",
		},
		{
			name:    "customer cancelled",
			query:   "vnp_ResponseCode=24&vnp_TxnRef=ref-2&vnp_Amount=abc",
			title:   "Thanh toán thất bại!",
			amount:  "0\u00a0₫",
			message: "Giao dịch không thành công do: Khách hàng hủy giao dịch",
		},
		{
			name:    "empty query",
			query:   "",
			title:   "Thanh toán thất bại!",
			amount:  "0\u00a0₫",
			message: "Các lỗi khác (lỗi còn lại, không có trong danh sách mã lỗi đã liệt kê)",
		},
		{
			name:    "malformed pay date",
			query:   "vnp_ResponseCode=00&vnp_TxnRef=ref-3&vnp_PayDate=2024-01-15",
			success: true,
			title:   "Thanh toán thành công!",
			amount:  "0\u00a0₫",
			message: "Giao dịch thành công",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodGet, "/payment/vnpay/return?"+tt.query, nil)
			rr := testutil.Serve(r, testutil.AtTime(req, now))

			require.Equal(t, http.StatusOK, rr.Code)
			resp := testutil.Decode[returnResponse](t, rr)
			assert.Equal(t, tt.success, resp.Outcome.IsSuccess)
			assert.Equal(t, tt.title, resp.Title)
			assert.Equal(t, tt.amount, resp.Amount)
			assert.Equal(t, tt.payDate, resp.PayDate)
			assert.Equal(t, tt.bookingCode, resp.BookingCode)
			assert.Equal(t, tt.message, resp.Outcome.Message)
		})
	}
}

func TestHandleReturnReplay(t *testing.T) {
	r := newRouter(t)
	path := "/payment/vnpay/return?vnp_ResponseCode=00&vnp_TxnRef=ref-1&vnp_TransactionNo=1"

	first := testutil.Decode[returnResponse](t, testutil.Serve(r, testutil.NewJSONRequest(t, http.MethodGet, path, nil)))
	assert.True(t, first.Recorded)
	assert.False(t, first.Replay)

	second := testutil.Decode[returnResponse](t, testutil.Serve(r, testutil.NewJSONRequest(t, http.MethodGet, path, nil)))
	assert.True(t, second.Replay)
}

func TestHandleListOutcomes(t *testing.T) {
	r := newRouter(t)

	rr := testutil.Serve(r, testutil.NewJSONRequest(t, http.MethodGet, "/payment/vnpay/outcomes/ref-1", nil))
	testutil.AssertError(t, rr, http.StatusNotFound, "not_found")

	testutil.Serve(r, testutil.NewJSONRequest(t, http.MethodGet,
		"/payment/vnpay/return?vnp_ResponseCode=51&vnp_TxnRef=ref-1&vnp_TransactionNo=7", nil))

	rr = testutil.Serve(r, testutil.NewJSONRequest(t, http.MethodGet, "/payment/vnpay/outcomes/ref-1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	resp := testutil.Decode[recordsResponse](t, rr)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "51", resp.Items[0].Outcome.ResponseCode)
	assert.False(t, resp.Items[0].Outcome.IsSuccess)
}
