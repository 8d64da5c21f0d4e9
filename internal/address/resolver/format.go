package resolver

import (
	"strings"

	"cleanhome/internal/address/models"
)

const (
	alleyPrefix = "ngách "
	lanePrefix  = "ngõ "
)

// FormatFullAddress joins the address parts in Vietnamese postal order:
// house number, alley, lane, street, building details, ward, district, city.
// Empty parts are skipped so no blank segments or doubled commas appear.
func FormatFullAddress(sel models.Selection, names models.Names) string {
	parts := make([]string, 0, 8)
	add := func(prefix, v string) {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, prefix+v)
		}
	}

	add("", sel.HouseNumber)
	add(alleyPrefix, sel.Alley)
	add(lanePrefix, sel.Lane)
	add("", sel.Street)
	add("", sel.SpecificAddress)
	add("", names.SubSubRegionName)
	add("", names.SubRegionName)
	add("", names.RegionName)

	return strings.Join(parts, ", ")
}
