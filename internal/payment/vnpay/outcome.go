// Package vnpay decodes the query string VNPay appends to the merchant return
// URL into a typed Outcome.
//
// Decoding never fails. The redirect is outside our control, so missing or
// malformed fields fall back to safe defaults and the page can always render
// something.
package vnpay

import (
	"net/url"
	"regexp"
	"strconv"
	"time"
)

// Return URL parameter names defined by the gateway.
const (
	ParamResponseCode  = "vnp_ResponseCode"
	ParamTxnRef        = "vnp_TxnRef"
	ParamAmount        = "vnp_Amount"
	ParamOrderInfo     = "vnp_OrderInfo"
	ParamTransactionNo = "vnp_TransactionNo"
	ParamPayDate       = "vnp_PayDate"
	ParamBankCode      = "vnp_BankCode"
	ParamCardType      = "vnp_CardType"
)

// amountScale is the factor the gateway multiplies amounts by.
const amountScale = 100

var (
	bookingCodePattern = regexp.MustCompile(`CH\w+`)
	vietnamZone        = time.FixedZone("ICT", 7*60*60)
)

// Outcome is the decoded result of one payment redirect.
type Outcome struct {
	IsSuccess            bool   `json:"isSuccess"`
	ResponseCode         string `json:"responseCode,omitempty"`
	ReferenceID          string `json:"txnRef,omitempty"`
	AmountMinorUnits     int64  `json:"amountMinorUnits"`
	OrderInfo            string `json:"orderInfo,omitempty"`
	GatewayTransactionID string `json:"transactionNo,omitempty"`
	PaidAt               string `json:"payDate,omitempty"`
	BankCode             string `json:"bankCode,omitempty"`
	CardType             string `json:"cardType,omitempty"`
	Message              string `json:"message"`
}

// Decode maps return-URL parameters to an Outcome. Only a response code of
// exactly "00" counts as success.
func Decode(params map[string]string) Outcome {
	code := params[ParamResponseCode]
	return Outcome{
		IsSuccess:            code == ResponseCodeSuccess,
		ResponseCode:         code,
		ReferenceID:          params[ParamTxnRef],
		AmountMinorUnits:     parseAmount(params[ParamAmount]),
		OrderInfo:            params[ParamOrderInfo],
		GatewayTransactionID: params[ParamTransactionNo],
		PaidAt:               params[ParamPayDate],
		BankCode:             params[ParamBankCode],
		CardType:             params[ParamCardType],
		Message:              LookupMessage(code),
	}
}

// DecodeQuery decodes a parsed query string, using the first value of each
// parameter.
func DecodeQuery(q url.Values) Outcome {
	params := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return Decode(params)
}

// Amount is the paid amount in VND.
func (o Outcome) Amount() int64 {
	return o.AmountMinorUnits / amountScale
}

// PaidTime parses PaidAt as Vietnam local time.
func (o Outcome) PaidTime() (time.Time, bool) {
	return parseTimestamp(o.PaidAt)
}

// BookingCode extracts the "CH…" booking code from the order info, falling
// back to the transaction reference. It returns "" if neither contains one.
func (o Outcome) BookingCode() string {
	if m := bookingCodePattern.FindString(o.OrderInfo); m != "" {
		return m
	}
	return bookingCodePattern.FindString(o.ReferenceID)
}

func parseAmount(raw string) int64 {
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
