package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cleanhome/internal/address/models"
)

func TestFormatFullAddress(t *testing.T) {
	names := models.Names{RegionName: "Hà Nội", SubRegionName: "Ba Đình", SubSubRegionName: "Phúc Xá"}

	tests := []struct {
		name     string
		sel      models.Selection
		names    models.Names
		expected string
	}{
		{
			name:     "required parts only",
			sel:      models.Selection{HouseNumber: "12", Street: "Đội Cấn"},
			names:    names,
			expected: "12, Đội Cấn, Phúc Xá, Ba Đình, Hà Nội",
		},
		{
			name:     "alley without lane",
			sel:      models.Selection{HouseNumber: "3", Alley: "6", Street: "Kim Mã"},
			names:    names,
			expected: "3, ngách 6, Kim Mã, Phúc Xá, Ba Đình, Hà Nội",
		},
		{
			name:     "whitespace-only optional part skipped",
			sel:      models.Selection{HouseNumber: "3", Lane: "  ", Street: "Kim Mã"},
			names:    names,
			expected: "3, Kim Mã, Phúc Xá, Ba Đình, Hà Nội",
		},
		{
			name:     "unresolved names are omitted",
			sel:      models.Selection{HouseNumber: "3", Street: "Kim Mã"},
			names:    models.Names{RegionName: "Hà Nội"},
			expected: "3, Kim Mã, Hà Nội",
		},
		{
			name:     "nothing",
			sel:      models.Selection{},
			names:    models.Names{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFullAddress(tt.sel, tt.names))
		})
	}
}
