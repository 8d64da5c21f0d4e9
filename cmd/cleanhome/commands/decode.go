package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"cleanhome/internal/payment/vnpay"
)

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <return-url-or-query>",
		Short: "Decode a payment-gateway return URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseReturn(args[0])
			if err != nil {
				return err
			}
			o := vnpay.DecodeQuery(query)
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), o)
			}

			status := "FAILED"
			if o.IsSuccess {
				status = "SUCCESS"
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "status:       %s (%s)\n", status, o.ResponseCode)
			fmt.Fprintf(w, "message:      %s\n", o.Message)
			fmt.Fprintf(w, "reference:    %s\n", o.ReferenceID)
			fmt.Fprintf(w, "transaction:  %s\n", o.GatewayTransactionID)
			fmt.Fprintf(w, "amount:       %s\n", vnpay.FormatAmount(o.Amount()))
			fmt.Fprintf(w, "paid at:      %s\n", vnpay.FormatTimestamp(o.PaidAt))
			if code := o.BookingCode(); code != "" {
				fmt.Fprintf(w, "booking code: %s\n", code)
			}
			return nil
		},
	}
}

// parseReturn accepts a full return URL or a bare query string.
func parseReturn(raw string) (url.Values, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parse return query: %w", err)
	}
	return q, nil
}
