// Package resolver implements the cascading city → district → ward selection
// used by the booking form.
//
// There are two ways to change a Resolver's state:
//
//   - ApplyUserTransition handles one user input event. Changing the city
//     clears district and ward; changing the district clears the ward. The
//     full selection is then emitted to the change callback.
//   - ApplyExternalSync mirrors a value pushed by the owning form verbatim,
//     even when its keys are inconsistent. Nothing is cleared and nothing is
//     emitted, so the resolver never fights its controlling parent.
//
// A Resolver belongs to a single form session and is not safe for concurrent
// use.
package resolver

import (
	"fmt"

	"cleanhome/internal/address/models"
	dErrors "cleanhome/pkg/domain-errors"
)

// Catalog is the read-only address lookup the resolver depends on.
type Catalog interface {
	ListRegions() []models.Option
	ListSubRegions(regionID string) []models.Option
	ListSubSubRegions(regionID, subRegionID string) []models.Option
	ResolveNames(regionID, subRegionID, subSubRegionID string) models.Names
}

// ChangeFunc receives the complete selection after every user transition.
type ChangeFunc func(models.Selection)

// Resolver holds one form's selection and its dependent option lists.
type Resolver struct {
	catalog  Catalog
	onChange ChangeFunc

	selection     models.Selection
	subRegions    []models.Option
	subSubRegions []models.Option
}

// New creates a resolver seeded with initial. onChange may be nil.
func New(catalog Catalog, initial models.Selection, onChange ChangeFunc) *Resolver {
	r := &Resolver{catalog: catalog, onChange: onChange}
	r.ApplyExternalSync(initial)
	return r
}

// ApplyUserTransition applies one user edit, enforces the cascade and emits
// the updated selection. Unknown transition kinds are rejected without any
// state change.
func (r *Resolver) ApplyUserTransition(t models.Transition) error {
	switch t.Kind {
	case models.SelectRegion:
		r.selection.RegionID = t.Value
		r.selection.SubRegionID = ""
		r.selection.SubSubRegionID = ""
		r.subRegions = r.listSubRegions()
		r.subSubRegions = []models.Option{}
	case models.SelectSubRegion:
		r.selection.SubRegionID = t.Value
		r.selection.SubSubRegionID = ""
		r.subSubRegions = r.listSubSubRegions()
	case models.SelectSubSubRegion:
		r.selection.SubSubRegionID = t.Value
	case models.SetHouseNumber:
		r.selection.HouseNumber = t.Value
	case models.SetAlley:
		r.selection.Alley = t.Value
	case models.SetLane:
		r.selection.Lane = t.Value
	case models.SetStreet:
		r.selection.Street = t.Value
	case models.SetSpecificAddress:
		r.selection.SpecificAddress = t.Value
	default:
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unsupported transition %q", t.Kind))
	}

	if r.onChange != nil {
		r.onChange(r.selection)
	}
	return nil
}

// ApplyExternalSync replaces the selection with sel exactly as given and
// recomputes the option lists for its keys.
func (r *Resolver) ApplyExternalSync(sel models.Selection) {
	r.selection = sel
	r.subRegions = r.listSubRegions()
	r.subSubRegions = r.listSubSubRegions()
}

// SelectRegion is the user picking a city.
func (r *Resolver) SelectRegion(regionID string) {
	_ = r.ApplyUserTransition(models.Transition{Kind: models.SelectRegion, Value: regionID})
}

// SelectSubRegion is the user picking a district.
func (r *Resolver) SelectSubRegion(subRegionID string) {
	_ = r.ApplyUserTransition(models.Transition{Kind: models.SelectSubRegion, Value: subRegionID})
}

// SelectSubSubRegion is the user picking a ward.
func (r *Resolver) SelectSubSubRegion(subSubRegionID string) {
	_ = r.ApplyUserTransition(models.Transition{Kind: models.SelectSubSubRegion, Value: subSubRegionID})
}

func (r *Resolver) SetHouseNumber(v string) {
	_ = r.ApplyUserTransition(models.Transition{Kind: models.SetHouseNumber, Value: v})
}

func (r *Resolver) SetAlley(v string) {
	_ = r.ApplyUserTransition(models.Transition{Kind: models.SetAlley, Value: v})
}

func (r *Resolver) SetLane(v string) {
	_ = r.ApplyUserTransition(models.Transition{Kind: models.SetLane, Value: v})
}

func (r *Resolver) SetStreet(v string) {
	_ = r.ApplyUserTransition(models.Transition{Kind: models.SetStreet, Value: v})
}

func (r *Resolver) SetSpecificAddress(v string) {
	_ = r.ApplyUserTransition(models.Transition{Kind: models.SetSpecificAddress, Value: v})
}

// Selection returns a copy of the current selection.
func (r *Resolver) Selection() models.Selection {
	return r.selection
}

// Regions lists every selectable city.
func (r *Resolver) Regions() []models.Option {
	return r.catalog.ListRegions()
}

// SubRegions lists the districts of the selected city.
func (r *Resolver) SubRegions() []models.Option {
	return append([]models.Option(nil), r.subRegions...)
}

// SubSubRegions lists the wards of the selected district.
func (r *Resolver) SubSubRegions() []models.Option {
	return append([]models.Option(nil), r.subSubRegions...)
}

// IsComplete reports whether all required fields are filled in.
func (r *Resolver) IsComplete() bool {
	return r.selection.IsComplete()
}

// FormatAddress renders the canonical address line, or "" while the
// selection is incomplete.
func (r *Resolver) FormatAddress() string {
	if !r.selection.IsComplete() {
		return ""
	}
	names := r.catalog.ResolveNames(r.selection.RegionID, r.selection.SubRegionID, r.selection.SubSubRegionID)
	return FormatFullAddress(r.selection, names)
}

func (r *Resolver) listSubRegions() []models.Option {
	if r.selection.RegionID == "" {
		return []models.Option{}
	}
	return r.catalog.ListSubRegions(r.selection.RegionID)
}

func (r *Resolver) listSubSubRegions() []models.Option {
	if r.selection.RegionID == "" || r.selection.SubRegionID == "" {
		return []models.Option{}
	}
	return r.catalog.ListSubSubRegions(r.selection.RegionID, r.selection.SubRegionID)
}
