// Package area derives an MEP fee from a project's spaces: each space's area
// times a $/SF rate for its type, alongside the architectural fee context.
package area

import (
	"fmt"

	"github.com/theirongolddev/feeplan/internal/estimate"
)

// TypicalMEPShare is the usual MEP portion of the architectural fee.
const TypicalMEPShare = 0.15

// SpaceType is a rate category. A nil rate means the type has no area-based
// fee and must be priced with an override.
type SpaceType struct {
	Name string
	Rate *float64
}

func rate(v float64) *float64 { return &v }

// SpaceTypes are the recognized categories in display order.
var SpaceTypes = []SpaceType{
	{"Office (Fitout / Renovation)", rate(1.50)},
	{"Office (Core & Shell)", rate(0.95)},
	{"Lobby / Reception", rate(1.50)},
	{"Conference Rooms", rate(1.50)},
	{"Ballrooms", rate(1.75)},
	{"Hotel Rooms", rate(1.50)},
	{"Retail (dry non-cooking)", rate(0.85)},
	{"Retail (Core & Shell Restaurant)", rate(0.95)},
	{"Restaurant (Kitchen / Dining Areas)", rate(2.75)},
	{"Parking (Open)", rate(0.35)},
	{"Parking (Enclosed)", rate(0.45)},
	{"Multifamily (Garden Style)", rate(0.85)},
	{"Multifamily (High Rise)", rate(1.01)},
	{"BOH Rooms", rate(0.75)},
	{"Classroom", rate(1.50)},
	{"Bar / Lounge Areas", rate(1.25)},
	{"Amenity Areas", rate(1.25)},
	{"Manufacturing Light (Mainly Storage)", rate(0.95)},
	{"Manufacturing Complex (Process Equipment Etc.)", rate(1.50)},
	{"Site Lighting", nil},
	{"Site Parking", nil},
}

// LookupRate returns the $/SF for a space type name. ok is false for unknown
// types; known types without a rate return 0, true.
func LookupRate(name string) (float64, bool) {
	for _, st := range SpaceTypes {
		if st.Name == name {
			if st.Rate == nil {
				return 0, true
			}
			return *st.Rate, true
		}
	}
	return 0, false
}

// Space is one line of the area schedule.
type Space struct {
	Name         string  `toml:"name"`
	Type         string  `toml:"type"`
	AreaSF       float64 `toml:"area_sf" validate:"gte=0"`
	Override     bool    `toml:"override"`
	OverrideRate float64 `toml:"override_rate" validate:"gte=0"`
}

// Rate is the effective $/SF: the override when set, else the lookup rate.
func (s Space) Rate() float64 {
	if s.Override {
		return s.OverrideRate
	}
	r, _ := LookupRate(s.Type)
	return r
}

// Cost is the area-based fee for the space.
func (s Space) Cost() float64 {
	return s.AreaSF * s.Rate()
}

// Context is the project cost and fee context.
type Context struct {
	Spaces              []Space `toml:"spaces" validate:"dive"`
	ConstructionCostPSF float64 `toml:"construction_cost_psf" validate:"gte=0"`
	ArchFeePct          float64 `toml:"arch_fee_pct" validate:"gte=0"`
}

// DefaultContext is a sample mixed-use project.
func DefaultContext() Context {
	return Context{
		Spaces: []Space{
			{Name: "Amenities", Type: "Amenity Areas", AreaSF: 18000},
			{Name: "Back of House", Type: "BOH Rooms", AreaSF: 14000},
			{Name: "Retail", Type: "Retail (Core & Shell Restaurant)", AreaSF: 5000},
			{Name: "Office", Type: "Office (Core & Shell)", AreaSF: 4500},
			{Name: "Parking", Type: "Parking (Enclosed)", AreaSF: 80000},
			{Name: "Residential", Type: "Multifamily (High Rise)", AreaSF: 175000},
		},
		ConstructionCostPSF: 300,
		ArchFeePct:          3.5,
	}
}

// Validate rejects negative areas, rates and percentages, and unknown space types.
func (c Context) Validate() error {
	if err := estimate.Struct(c); err != nil {
		return err
	}
	for _, s := range c.Spaces {
		if _, ok := LookupRate(s.Type); !ok && !s.Override {
			return fmt.Errorf("%w: space %q has unknown type %q", estimate.ErrInvalidInput, s.Name, s.Type)
		}
	}
	return nil
}

// TotalArea sums the area of every space.
func (c Context) TotalArea() float64 {
	var total float64
	for _, s := range c.Spaces {
		total += s.AreaSF
	}
	return total
}

// ConstructionCost is total area times the construction cost per SF.
func (c Context) ConstructionCost() float64 {
	return c.TotalArea() * c.ConstructionCostPSF
}

// ArchFee is the architectural fee on the construction cost.
func (c Context) ArchFee() float64 {
	return c.ConstructionCost() * c.ArchFeePct / 100
}

// TypicalMEPFee is the rule-of-thumb MEP fee.
func (c Context) TypicalMEPFee() float64 {
	return c.ArchFee() * TypicalMEPShare
}

// MEPFee is the area-based MEP fee: the sum of space costs.
func (c Context) MEPFee() float64 {
	var total float64
	for _, s := range c.Spaces {
		total += s.Cost()
	}
	return total
}

// MEPShareOfArchFee is the area-based MEP fee as a fraction of the arch fee.
func (c Context) MEPShareOfArchFee() float64 {
	arch := c.ArchFee()
	if arch <= 0 {
		return 0
	}
	return c.MEPFee() / arch
}
