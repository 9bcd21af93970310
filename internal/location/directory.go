package location

import (
	"fmt"
	"sort"
)

// Lookup kinds accepted by Children
const (
	KindDistrict     = "district"
	KindMunicipality = "municipality"
)

// Directory is the immutable District -> Municipality -> Facility -> Type lookup.
type Directory struct {
	districts      []string
	municipalities map[string][]string
	facilities     map[string][]string
	facilityTypes  map[string]string
	parent         map[string]string
}

// NewDirectory builds the directory from the built-in Eastern Cape tables
func NewDirectory() *Directory {
	return newDirectory(districtOrder, municipalityData, facilityData, facilityTypes)
}

func newDirectory(districts []string, municipalities, facilities map[string][]string, types map[string]string) *Directory {
	d := &Directory{
		districts:      append([]string(nil), districts...),
		municipalities: make(map[string][]string, len(municipalities)),
		facilities:     make(map[string][]string, len(facilities)),
		facilityTypes:  make(map[string]string, len(types)),
		parent:         make(map[string]string),
	}
	for district, ms := range municipalities {
		d.municipalities[district] = append([]string(nil), ms...)
		for _, m := range ms {
			d.parent[m] = district
		}
	}
	for m, fs := range facilities {
		d.facilities[m] = append([]string(nil), fs...)
	}
	for f, t := range types {
		d.facilityTypes[f] = t
	}
	return d
}

// Validate checks that the hierarchy is closed: every municipality with facilities belongs to a district,
// every facility has a known type and every typed facility is listed under a municipality.
func (d *Directory) Validate() error {
	listed := make(map[string]bool)
	for m, fs := range d.facilities {
		if _, ok := d.parent[m]; !ok {
			return fmt.Errorf("municipality %q has no district", m)
		}
		for _, f := range fs {
			listed[f] = true
			t, ok := d.facilityTypes[f]
			if !ok {
				return fmt.Errorf("facility %q has no type", f)
			}
			if !contains(FacilityTypeChoices, t) {
				return fmt.Errorf("facility %q has unknown type %q", f, t)
			}
		}
	}
	for f := range d.facilityTypes {
		if !listed[f] {
			return fmt.Errorf("facility %q is typed but not listed under any municipality", f)
		}
	}
	for _, district := range d.districts {
		if _, ok := d.municipalities[district]; !ok {
			return fmt.Errorf("district %q has no municipalities", district)
		}
	}
	return nil
}

// Districts returns every district in display order
func (d *Directory) Districts() []string {
	return append([]string(nil), d.districts...)
}

// Municipalities returns the municipalities of a district, empty when unknown
func (d *Directory) Municipalities(district string) []string {
	return copyOrEmpty(d.municipalities[district])
}

// Facilities returns the facilities of a municipality, empty when unknown
func (d *Directory) Facilities(municipality string) []string {
	return copyOrEmpty(d.facilities[municipality])
}

// AllFacilities returns every facility name sorted alphabetically
func (d *Directory) AllFacilities() []string {
	names := make([]string, 0, len(d.facilityTypes))
	for f := range d.facilityTypes {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// FacilityType returns the type of a facility and whether the facility is mapped
func (d *Directory) FacilityType(facility string) (string, bool) {
	t, ok := d.facilityTypes[facility]
	return t, ok
}

// Children returns the options below id for the given kind. Unknown kinds or ids give an empty list.
func (d *Directory) Children(kind, id string) []string {
	switch kind {
	case KindDistrict:
		return d.Municipalities(id)
	case KindMunicipality:
		return d.Facilities(id)
	}
	return []string{}
}

// DistrictOf returns the district a municipality belongs to
func (d *Directory) DistrictOf(municipality string) (string, bool) {
	district, ok := d.parent[municipality]
	return district, ok
}

// HasDistrict reports whether the district exists
func (d *Directory) HasDistrict(district string) bool {
	_, ok := d.municipalities[district]
	return ok
}

// HasMunicipality reports whether municipality belongs to district
func (d *Directory) HasMunicipality(district, municipality string) bool {
	return contains(d.municipalities[district], municipality)
}

// HasFacility reports whether facility belongs to municipality
func (d *Directory) HasFacility(municipality, facility string) bool {
	return contains(d.facilities[municipality], facility)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func copyOrEmpty(list []string) []string {
	if len(list) == 0 {
		return []string{}
	}
	return append([]string(nil), list...)
}
