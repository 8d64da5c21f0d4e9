package models

// Selection is the in-progress address a user builds in the booking form.
// Region-level fields hold catalog keys; an empty string means unselected.
type Selection struct {
	RegionID        string `json:"city"`
	SubRegionID     string `json:"district"`
	SubSubRegionID  string `json:"ward"`
	HouseNumber     string `json:"houseNumber"`
	Alley           string `json:"alley,omitempty"`
	Lane            string `json:"lane,omitempty"`
	Street          string `json:"street"`
	SpecificAddress string `json:"specificAddress,omitempty"`
}

// IsComplete reports whether every required field is filled in.
// It does not check the keys against a catalog.
func (s Selection) IsComplete() bool {
	return s.RegionID != "" && s.SubRegionID != "" && s.SubSubRegionID != "" &&
		s.HouseNumber != "" && s.Street != ""
}

// Option is one entry of a dropdown list.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Names holds display names resolved from selection keys. Unresolved levels
// are empty strings.
type Names struct {
	RegionName       string `json:"cityName"`
	SubRegionName    string `json:"districtName"`
	SubSubRegionName string `json:"wardName"`
}

// TransitionKind names a user-driven edit of a single selection field.
type TransitionKind string

const (
	SelectRegion       TransitionKind = "select_city"
	SelectSubRegion    TransitionKind = "select_district"
	SelectSubSubRegion TransitionKind = "select_ward"
	SetHouseNumber     TransitionKind = "set_house_number"
	SetAlley           TransitionKind = "set_alley"
	SetLane            TransitionKind = "set_lane"
	SetStreet          TransitionKind = "set_street"
	SetSpecificAddress TransitionKind = "set_specific_address"
)

// IsValid checks if the transition kind is one of the supported values.
func (k TransitionKind) IsValid() bool {
	switch k {
	case SelectRegion, SelectSubRegion, SelectSubSubRegion,
		SetHouseNumber, SetAlley, SetLane, SetStreet, SetSpecificAddress:
		return true
	}
	return false
}

// Transition is one user input event.
type Transition struct {
	Kind  TransitionKind `json:"kind"`
	Value string         `json:"value"`
}
