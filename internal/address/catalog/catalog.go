// Package catalog serves read-only lookups over the administrative address
// hierarchy: region (city/province) → sub-region (district) → ordered list of
// sub-sub-region (ward) names.
//
// Wards carry no stable key in the source data, so their IDs are synthesized
// from list position ("subsub-0", "subsub-1", ...). Reordering the data
// changes what previously stored ward IDs resolve to.
//
// Lookups never fail: unknown keys produce empty results, because partially
// filled selections are a normal state while a form is being edited.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"cleanhome/internal/address/models"
)

// SubSubRegionIDPrefix prefixes the positional ward index to form its ID.
const SubSubRegionIDPrefix = "subsub-"

//go:embed data/vietnam.json
var vietnamData []byte

// RegionNode is one top-level region as authored in the data file.
type RegionNode struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	SubRegions []SubRegionNode `json:"subRegions"`
}

// SubRegionNode is one sub-region with its ordered ward names.
type SubRegionNode struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	SubSubRegions []string `json:"subSubRegions"`
}

type document struct {
	Regions []RegionNode `json:"regions"`
}

// Catalog is an immutable address hierarchy. It is safe for concurrent use.
type Catalog struct {
	regions []RegionNode
	index   map[string]regionEntry
}

type regionEntry struct {
	node       RegionNode
	subRegions map[string]SubRegionNode
}

// New builds a catalog from regions in declaration order. IDs must be
// non-empty and unique at their level.
func New(regions []RegionNode) (*Catalog, error) {
	c := &Catalog{
		regions: make([]RegionNode, 0, len(regions)),
		index:   make(map[string]regionEntry, len(regions)),
	}
	for _, r := range regions {
		if strings.TrimSpace(r.ID) == "" {
			return nil, errors.New("region id is required")
		}
		if _, dup := c.index[r.ID]; dup {
			return nil, fmt.Errorf("duplicate region id %q", r.ID)
		}
		entry := regionEntry{node: cloneRegion(r), subRegions: make(map[string]SubRegionNode, len(r.SubRegions))}
		for _, sr := range entry.node.SubRegions {
			if strings.TrimSpace(sr.ID) == "" {
				return nil, fmt.Errorf("region %q: sub-region id is required", r.ID)
			}
			if _, dup := entry.subRegions[sr.ID]; dup {
				return nil, fmt.Errorf("region %q: duplicate sub-region id %q", r.ID, sr.ID)
			}
			entry.subRegions[sr.ID] = sr
		}
		c.regions = append(c.regions, entry.node)
		c.index[r.ID] = entry
	}
	return c, nil
}

// Load decodes a catalog document of the form {"regions": [...]}.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode address catalog: %w", err)
	}
	return New(doc.Regions)
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(bytes.NewReader(vietnamData))
})

// Default returns the built-in catalog for Hà Nội and TP. Hồ Chí Minh.
// It is loaded once per process.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		// embedded data is validated by tests; a failure here is a build defect
		panic(fmt.Sprintf("load embedded address catalog: %v", err))
	}
	return c
}

// ListRegions returns all regions in declaration order.
func (c *Catalog) ListRegions() []models.Option {
	out := make([]models.Option, 0, len(c.regions))
	for _, r := range c.regions {
		out = append(out, models.Option{ID: r.ID, Name: r.Name})
	}
	return out
}

// ListSubRegions returns the sub-regions of regionID in declaration order,
// or an empty list if the region is unknown.
func (c *Catalog) ListSubRegions(regionID string) []models.Option {
	entry, ok := c.index[regionID]
	if !ok {
		return []models.Option{}
	}
	out := make([]models.Option, 0, len(entry.node.SubRegions))
	for _, sr := range entry.node.SubRegions {
		out = append(out, models.Option{ID: sr.ID, Name: sr.Name})
	}
	return out
}

// ListSubSubRegions returns the wards of a sub-region with positional IDs,
// or an empty list if either key is unknown.
func (c *Catalog) ListSubSubRegions(regionID, subRegionID string) []models.Option {
	sr, ok := c.subRegion(regionID, subRegionID)
	if !ok {
		return []models.Option{}
	}
	out := make([]models.Option, 0, len(sr.SubSubRegions))
	for i, name := range sr.SubSubRegions {
		out = append(out, models.Option{ID: SubSubRegionID(i), Name: name})
	}
	return out
}

// ResolveNames maps selection keys to display names. Each level that does not
// resolve (including children of an unresolved parent) is left empty.
func (c *Catalog) ResolveNames(regionID, subRegionID, subSubRegionID string) models.Names {
	var names models.Names
	entry, ok := c.index[regionID]
	if !ok {
		return names
	}
	names.RegionName = entry.node.Name

	sr, ok := entry.subRegions[subRegionID]
	if !ok {
		return names
	}
	names.SubRegionName = sr.Name

	if idx, ok := ParseSubSubRegionID(subSubRegionID); ok && idx < len(sr.SubSubRegions) {
		names.SubSubRegionName = sr.SubSubRegions[idx]
	}
	return names
}

// HasSubRegion reports whether subRegionID exists under regionID.
func (c *Catalog) HasSubRegion(regionID, subRegionID string) bool {
	_, ok := c.subRegion(regionID, subRegionID)
	return ok
}

// HasSubSubRegion reports whether subSubRegionID names an existing ward
// position under the given sub-region.
func (c *Catalog) HasSubSubRegion(regionID, subRegionID, subSubRegionID string) bool {
	sr, ok := c.subRegion(regionID, subRegionID)
	if !ok {
		return false
	}
	idx, ok := ParseSubSubRegionID(subSubRegionID)
	return ok && idx < len(sr.SubSubRegions)
}

func (c *Catalog) subRegion(regionID, subRegionID string) (SubRegionNode, bool) {
	entry, ok := c.index[regionID]
	if !ok {
		return SubRegionNode{}, false
	}
	sr, ok := entry.subRegions[subRegionID]
	return sr, ok
}

// SubSubRegionID synthesizes the ID of the ward at position index.
func SubSubRegionID(index int) string {
	return SubSubRegionIDPrefix + strconv.Itoa(index)
}

// ParseSubSubRegionID extracts the positional index from a ward ID.
func ParseSubSubRegionID(id string) (int, bool) {
	raw, ok := strings.CutPrefix(id, SubSubRegionIDPrefix)
	if !ok || raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return idx, true
}

func cloneRegion(r RegionNode) RegionNode {
	out := RegionNode{ID: r.ID, Name: r.Name, SubRegions: make([]SubRegionNode, len(r.SubRegions))}
	for i, sr := range r.SubRegions {
		out.SubRegions[i] = SubRegionNode{
			ID:            sr.ID,
			Name:          sr.Name,
			SubSubRegions: append([]string(nil), sr.SubSubRegions...),
		}
	}
	return out
}
