package resolver

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"cleanhome/internal/address/catalog"
	"cleanhome/internal/address/models"
	dErrors "cleanhome/pkg/domain-errors"
)

type ResolverSuite struct {
	suite.Suite
	resolver *Resolver
	emitted  []models.Selection
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.emitted = nil
	s.resolver = New(catalog.Default(), models.Selection{}, func(sel models.Selection) {
		s.emitted = append(s.emitted, sel)
	})
}

func (s *ResolverSuite) fillBaDinh() {
	s.resolver.SelectRegion("hanoi")
	s.resolver.SelectSubRegion("ba-dinh")
	s.resolver.SelectSubSubRegion("subsub-0")
	s.resolver.SetHouseNumber("12")
	s.resolver.SetStreet("Đội Cấn")
}

func (s *ResolverSuite) TestSelectRegion() {
	s.Run("clears district and ward", func() {
		s.fillBaDinh()
		s.resolver.SelectRegion("ho-chi-minh")

		sel := s.resolver.Selection()
		s.Equal("ho-chi-minh", sel.RegionID)
		s.Empty(sel.SubRegionID)
		s.Empty(sel.SubSubRegionID)
		s.Equal("12", sel.HouseNumber)
		s.Equal("Đội Cấn", sel.Street)
	})

	s.Run("reselecting the same city still clears", func() {
		s.fillBaDinh()
		s.resolver.SelectRegion("hanoi")

		s.Empty(s.resolver.Selection().SubRegionID)
		s.Empty(s.resolver.Selection().SubSubRegionID)
	})

	s.Run("recomputes dependent options", func() {
		s.resolver.SelectRegion("ho-chi-minh")
		s.Equal("quan-1", s.resolver.SubRegions()[0].ID)
		s.Empty(s.resolver.SubSubRegions())

		s.resolver.SelectRegion("")
		s.Empty(s.resolver.SubRegions())
	})
}

func (s *ResolverSuite) TestSelectSubRegion() {
	s.fillBaDinh()
	s.resolver.SelectSubRegion("hoan-kiem")

	sel := s.resolver.Selection()
	s.Equal("hanoi", sel.RegionID)
	s.Equal("hoan-kiem", sel.SubRegionID)
	s.Empty(sel.SubSubRegionID)
	s.Require().NotEmpty(s.resolver.SubSubRegions())
	s.Equal("Phúc Tấn", s.resolver.SubSubRegions()[0].Name)
}

func (s *ResolverSuite) TestSelectSubSubRegionDoesNotCascade() {
	s.fillBaDinh()
	s.resolver.SelectSubSubRegion("subsub-3")

	sel := s.resolver.Selection()
	s.Equal("hanoi", sel.RegionID)
	s.Equal("ba-dinh", sel.SubRegionID)
	s.Equal("subsub-3", sel.SubSubRegionID)
}

func (s *ResolverSuite) TestFreeTextIsVerbatim() {
	s.resolver.SetHouseNumber("  số 1 ")
	s.resolver.SetAlley("6")
	s.resolver.SetLane("")
	s.resolver.SetSpecificAddress("Tầng 5")

	sel := s.resolver.Selection()
	s.Equal("  số 1 ", sel.HouseNumber)
	s.Equal("6", sel.Alley)
	s.Empty(sel.Lane)
	s.Equal("Tầng 5", sel.SpecificAddress)
}

func (s *ResolverSuite) TestEmitsAfterEveryTransition() {
	s.fillBaDinh()

	s.Require().Len(s.emitted, 5)
	s.Equal(models.Selection{RegionID: "hanoi"}, s.emitted[0])
	s.Equal(s.resolver.Selection(), s.emitted[4])
}

func (s *ResolverSuite) TestUnknownTransitionRejected() {
	s.fillBaDinh()
	before := s.resolver.Selection()

	err := s.resolver.ApplyUserTransition(models.Transition{Kind: "set_postcode", Value: "100000"})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal(before, s.resolver.Selection())
	s.Len(s.emitted, 5)
}

func (s *ResolverSuite) TestExternalSync() {
	s.Run("inconsistent value is mirrored verbatim", func() {
		inconsistent := models.Selection{
			RegionID:       "ho-chi-minh",
			SubRegionID:    "ba-dinh",
			SubSubRegionID: "subsub-40",
			HouseNumber:    "7",
			Street:         "Lê Lợi",
		}
		s.resolver.ApplyExternalSync(inconsistent)

		s.Equal(inconsistent, s.resolver.Selection())
		s.Empty(s.emitted)
		s.Empty(s.resolver.SubSubRegions())
	})

	s.Run("next user transition restores the cascade", func() {
		s.resolver.ApplyExternalSync(models.Selection{RegionID: "ho-chi-minh", SubRegionID: "ba-dinh", SubSubRegionID: "subsub-40"})
		s.resolver.SelectSubRegion("quan-1")

		sel := s.resolver.Selection()
		s.Equal("quan-1", sel.SubRegionID)
		s.Empty(sel.SubSubRegionID)
	})

	s.Run("non-cascading user edits leave mirrored keys alone", func() {
		s.resolver.ApplyExternalSync(models.Selection{RegionID: "ho-chi-minh", SubRegionID: "ba-dinh"})
		s.resolver.SetStreet("Lê Lợi")

		s.Equal("ba-dinh", s.resolver.Selection().SubRegionID)
	})

	s.Run("initial value is treated as external", func() {
		initial := models.Selection{RegionID: "hanoi", SubRegionID: "quan-1"}
		r := New(catalog.Default(), initial, nil)

		s.Equal(initial, r.Selection())
		s.Empty(r.SubSubRegions())
		s.Len(r.SubRegions(), 30)
	})
}

func (s *ResolverSuite) TestFormatAddress() {
	s.Run("end to end Ba Dinh", func() {
		s.fillBaDinh()
		s.Equal("12, Đội Cấn, Phúc Xá, Ba Đình, Hà Nội", s.resolver.FormatAddress())
		s.True(s.resolver.IsComplete())
	})

	s.Run("all optional parts", func() {
		s.fillBaDinh()
		s.resolver.SetAlley("6")
		s.resolver.SetLane("1")
		s.resolver.SetSpecificAddress("Chung cư ABC, Tầng 5")
		s.Equal("12, ngách 6, ngõ 1, Đội Cấn, Chung cư ABC, Tầng 5, Phúc Xá, Ba Đình, Hà Nội", s.resolver.FormatAddress())
	})

	s.Run("empty while incomplete", func() {
		s.resolver.SelectRegion("hanoi")
		s.resolver.SelectSubRegion("ba-dinh")
		s.resolver.SetHouseNumber("12")
		s.resolver.SetStreet("Đội Cấn")
		s.Empty(s.resolver.FormatAddress())
		s.False(s.resolver.IsComplete())
	})
}

func TestCascadeInvariantRandomSequences(t *testing.T) {
	c := catalog.Default()
	regions := append(c.ListRegions(), models.Option{ID: ""}, models.Option{ID: "unknown"})
	rng := rand.New(rand.NewPCG(1, 2))

	for run := range 200 {
		r := New(c, models.Selection{}, nil)
		for step := range 30 {
			switch rng.IntN(3) {
			case 0:
				r.SelectRegion(regions[rng.IntN(len(regions))].ID)
				sel := r.Selection()
				require.Emptyf(t, sel.SubRegionID, "run %d step %d: district kept after city change", run, step)
				require.Emptyf(t, sel.SubSubRegionID, "run %d step %d: ward kept after city change", run, step)
			case 1:
				subs := r.SubRegions()
				id := "ghost"
				if len(subs) > 0 {
					id = subs[rng.IntN(len(subs))].ID
				}
				r.SelectSubRegion(id)
				require.Emptyf(t, r.Selection().SubSubRegionID, "run %d step %d: ward kept after district change", run, step)
			case 2:
				wards := r.SubSubRegions()
				if len(wards) > 0 {
					r.SelectSubSubRegion(wards[rng.IntN(len(wards))].ID)
				}
			}
		}
	}
}

func TestFormatCompleteness(t *testing.T) {
	c := catalog.Default()
	full := models.Selection{
		RegionID:       "hanoi",
		SubRegionID:    "ba-dinh",
		SubSubRegionID: "subsub-0",
		HouseNumber:    "12",
		Street:         "Đội Cấn",
	}
	blankers := map[string]func(*models.Selection){
		"city":         func(s *models.Selection) { s.RegionID = "" },
		"district":     func(s *models.Selection) { s.SubRegionID = "" },
		"ward":         func(s *models.Selection) { s.SubSubRegionID = "" },
		"house number": func(s *models.Selection) { s.HouseNumber = "" },
		"street":       func(s *models.Selection) { s.Street = "" },
	}

	// every subset of required fields blanked
	names := []string{"city", "district", "ward", "house number", "street"}
	for mask := 0; mask < 1<<len(names); mask++ {
		sel := full
		for i, name := range names {
			if mask&(1<<i) != 0 {
				blankers[name](&sel)
			}
		}
		for _, optional := range []models.Selection{{}, {Alley: "6"}, {Lane: "1", SpecificAddress: "Tầng 5"}} {
			sel.Alley, sel.Lane, sel.SpecificAddress = optional.Alley, optional.Lane, optional.SpecificAddress
			got := New(c, sel, nil).FormatAddress()

			if mask == 0 {
				assert.NotEmpty(t, got)
				assert.NotContains(t, got, ", ,")
				assert.False(t, strings.HasPrefix(got, ",") || strings.HasSuffix(got, ","), got)
			} else {
				assert.Empty(t, got, "mask %05b", mask)
			}
		}
	}
}
