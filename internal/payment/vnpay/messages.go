package vnpay

const (
	// ResponseCodeSuccess is the only code treated as a successful payment.
	ResponseCodeSuccess = "00"
	// ResponseCodeOther keys the generic entry used for unlisted codes.
	ResponseCodeOther = "99"
)

// messages reproduces the gateway's published response code list. The
// wording is shown to customers verbatim.
var messages = map[string]string{
	"00": "Giao dịch thành công",
	"07": "Trừ tiền thành công. Giao dịch bị nghi ngờ (liên quan tới lừa đảo, giao dịch bất thường)",
	"09": "Giao dịch không thành công do: Thẻ/Tài khoản của khách hàng chưa đăng ký dịch vụ InternetBanking tại ngân hàng",
	"10": "Giao dịch không thành công do: Khách hàng xác thực thông tin thẻ/tài khoản không đúng quá 3 lần",
	"11": "Giao dịch không thành công do: Đã hết hạn chờ thanh toán. Xin quý khách vui lòng thực hiện lại giao dịch",
	"12": "Giao dịch không thành công do: Thẻ/Tài khoản của khách hàng bị khóa",
	"13": "Giao dịch không thành công do: Quý khách nhập sai mật khẩu xác thực giao dịch (OTP)",
	"24": "Giao dịch không thành công do: Khách hàng hủy giao dịch",
	"51": "Giao dịch không thành công do: Tài khoản của quý khách không đủ số dư để thực hiện giao dịch",
	"65": "Giao dịch không thành công do: Tài khoản của Quý khách đã vượt quá hạn mức giao dịch trong ngày",
	"75": "Ngân hàng thanh toán đang bảo trì",
	"79": "Giao dịch không thành công do: KH nhập sai mật khẩu thanh toán quá số lần quy định",
	"99": "Các lỗi khác (lỗi còn lại, không có trong danh sách mã lỗi đã liệt kê)",
}

// LookupMessage returns the customer-facing explanation for a response code.
// Absent and unlisted codes get the ResponseCodeOther entry.
func LookupMessage(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ResponseCodeOther]
}

// KnownResponseCode reports whether code appears in the published list.
func KnownResponseCode(code string) bool {
	_, ok := messages[code]
	return ok
}
