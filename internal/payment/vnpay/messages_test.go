package vnpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupMessage(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{code: "00", expected: "Giao dịch thành công"},
		{code: "24", expected: "Giao dịch không thành công do: Khách hàng hủy giao dịch"},
		{code: "51", expected: "Giao dịch không thành công do: Tài khoản của quý khách không đủ số dư để thực hiện giao dịch"},
		{code: "75", expected: "Ngân hàng thanh toán đang bảo trì"},
		{code: "99", expected: "Các lỗi khác (lỗi còn lại, không có trong danh sách mã lỗi đã liệt kê)"},
		{code: "77", expected: "Các lỗi khác (lỗi còn lại, không có trong danh sách mã lỗi đã liệt kê)"},
		{code: "", expected: "Các lỗi khác (lỗi còn lại, không có trong danh sách mã lỗi đã liệt kê)"},
	}

	for _, tt := range tests {
		t.Run("code "+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, LookupMessage(tt.code))
		})
	}
}

func TestKnownResponseCode(t *testing.T) {
	for _, code := range []string{"00", "07", "09", "10", "11", "12", "13", "24", "51", "65", "75", "79", "99"} {
		assert.True(t, KnownResponseCode(code), code)
	}
	assert.False(t, KnownResponseCode("77"))
	assert.False(t, KnownResponseCode(""))
}
