package dashboard

import (
	"sort"
	"time"

	"festive-births-svc/internal/models"
	"festive-births-svc/pkg/utils"
)

// Age bracket labels in display order
const (
	Age10To14 = "10-14 yrs"
	Age15To19 = "15-19 yrs"
	Age20To35 = "20-35 yrs"
	Age35Plus = "35+ yrs"
)

// AgeGroupLabels lists the age brackets in display order
var AgeGroupLabels = []string{Age10To14, Age15To19, Age20To35, Age35Plus}

// Filters narrows the dashboard progressively from report date to facility
type Filters struct {
	ReportDate        string `form:"report_date" json:"report_date,omitempty"`
	District          string `form:"district" json:"district,omitempty"`
	LocalMunicipality string `form:"local_municipality" json:"local_municipality,omitempty"`
	Facility          string `form:"facility" json:"facility,omitempty"`
}

// ReportTitle names a report after the most specific active filter
func (f Filters) ReportTitle() string {
	switch {
	case f.Facility != "":
		return f.Facility + " Report"
	case f.LocalMunicipality != "":
		return f.LocalMunicipality + " Report"
	case f.District != "":
		return f.District + " Report"
	}
	return "Provincial Dashboard Report"
}

// Counts is a gender split of babies
type Counts struct {
	Male   int `json:"male_count"`
	Female int `json:"female_count"`
	Total  int `json:"total"`
}

func (c *Counts) add(b *models.Baby) {
	c.Total++
	switch b.GenderValue() {
	case models.GenderMale:
		c.Male++
	case models.GenderFemale:
		c.Female++
	}
}

// Row is a labelled Counts
type Row struct {
	Label string `json:"label"`
	Counts
}

// Summary is the breakdown by the next level below the active filter
type Summary struct {
	Title   string `json:"title"`
	Header  string `json:"header"`
	Footer  string `json:"footer"`
	GroupBy string `json:"group_by"`
	Rows    []Row  `json:"rows"`
	Totals  Counts `json:"totals"`
}

// TeenageRow counts babies of teenage mothers at one facility
type TeenageRow struct {
	Facility    string `json:"facility"`
	Group10To14 int    `json:"group_10_14"`
	Group15To19 int    `json:"group_15_19"`
}

// TeenageTotals sums TeenageRow across facilities
type TeenageTotals struct {
	Total10To14 int `json:"total_10_14"`
	Total15To19 int `json:"total_15_19"`
}

// MultipleBirthRow counts deliveries with more than one baby at one facility.
// Other holds deliveries with more babies than the capture form allows.
type MultipleBirthRow struct {
	Facility    string `json:"facility"`
	Twins       int    `json:"twins"`
	Triplets    int    `json:"triplets"`
	Quadruplets int    `json:"quadruplets"`
	Quintuplets int    `json:"quintuplets"`
	Other       int    `json:"other"`
}

// Result is everything the dashboard shows
type Result struct {
	Filters          Filters            `json:"filters"`
	TotalBirths      int                `json:"total_births"`
	TotalMales       int                `json:"total_males"`
	TotalFemales     int                `json:"total_females"`
	TotalNilReports  int                `json:"total_nil_reports"`
	Summary          Summary            `json:"summary"`
	AgeGroups        []Row              `json:"age_group_summary"`
	BirthModes       []Row              `json:"birth_mode_summary"`
	TimeSlots        []Row              `json:"time_slot_summary"`
	FacilityTypes    []Row              `json:"facility_type_summary"`
	TeenagePregnancy []TeenageRow       `json:"teenage_pregnancy_summary"`
	TeenageTotals    TeenageTotals      `json:"teenage_totals"`
	MultipleBirths   []MultipleBirthRow `json:"multiple_births_summary"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// HasMultipleBirths reports whether any facility recorded more than one baby in a delivery
func (r *Result) HasMultipleBirths() bool {
	return len(r.MultipleBirths) > 0
}

// Aggregate computes the dashboard over deliveries that are already scoped and filtered.
// Soft-deleted babies must not be present in deliveries. Ages are evaluated on today.
func Aggregate(deliveries []models.Delivery, f Filters, today time.Time, region string) *Result {
	today = utils.Truncate(today)
	res := &Result{Filters: f, GeneratedAt: today}
	res.Summary = newSummary(f, region)

	summary := newGroups()
	modes := newGroups()
	slots := newGroups()
	types := newGroups()
	ages := newGroups(AgeGroupLabels...)
	teen := map[string]*TeenageRow{}
	multiples := map[string]*MultipleBirthRow{}

	edge10 := utils.YearsBefore(today, 10)
	edge15 := utils.YearsBefore(today, 15)
	edge20 := utils.YearsBefore(today, 20)

	for i := range deliveries {
		d := &deliveries[i]

		for j := range d.Babies {
			b := &d.Babies[j]
			res.TotalBirths++
			switch b.GenderValue() {
			case models.GenderMale:
				res.TotalMales++
			case models.GenderFemale:
				res.TotalFemales++
			}
		}

		if n := len(d.Babies); n > 1 {
			row := multiples[d.Facility]
			if row == nil {
				row = &MultipleBirthRow{Facility: d.Facility}
				multiples[d.Facility] = row
			}
			switch n {
			case 2:
				row.Twins++
			case 3:
				row.Triplets++
			case 4:
				row.Quadruplets++
			case 5:
				row.Quintuplets++
			default:
				row.Other++
			}
		}

		if d.NoBirthsToReport {
			res.TotalNilReports++
			continue
		}

		summaryRow := summary.row(groupValue(d, res.Summary.GroupBy))
		slotRow := slots.row(d.TimeSlot)
		typeRow := types.row(d.FacilityType)
		var modeRow *Counts
		if d.BirthMode != nil && *d.BirthMode != "" {
			modeRow = modes.row(*d.BirthMode)
		}
		var ageRow *Counts
		if d.MotherDOB != nil {
			if label := AgeGroup(utils.AgeOn(*d.MotherDOB, today)); label != "" {
				ageRow = ages.row(label)
			}
		}

		for j := range d.Babies {
			b := &d.Babies[j]
			summaryRow.add(b)
			res.Summary.Totals.add(b)
			slotRow.add(b)
			typeRow.add(b)
			if modeRow != nil {
				modeRow.add(b)
			}
			if ageRow != nil {
				ageRow.add(b)
			}
		}

		if d.MotherDOB == nil {
			continue
		}
		dob := time.Date(d.MotherDOB.Year(), d.MotherDOB.Month(), d.MotherDOB.Day(), 0, 0, 0, 0, today.Location())
		in10To14 := !dob.After(edge10) && dob.After(edge15)
		in15To19 := !dob.After(edge15) && dob.After(edge20)
		if !in10To14 && !in15To19 {
			continue
		}
		row := teen[d.Facility]
		if row == nil {
			row = &TeenageRow{Facility: d.Facility}
			teen[d.Facility] = row
		}
		if in10To14 {
			row.Group10To14 += len(d.Babies)
			res.TeenageTotals.Total10To14 += len(d.Babies)
		} else {
			row.Group15To19 += len(d.Babies)
			res.TeenageTotals.Total15To19 += len(d.Babies)
		}
	}

	res.Summary.Rows = summary.sorted()
	res.BirthModes = modes.sorted()
	res.TimeSlots = slots.sorted()
	res.FacilityTypes = types.sorted()
	res.AgeGroups = ages.ordered(AgeGroupLabels)

	res.TeenagePregnancy = make([]TeenageRow, 0, len(teen))
	for _, row := range teen {
		res.TeenagePregnancy = append(res.TeenagePregnancy, *row)
	}
	sort.Slice(res.TeenagePregnancy, func(i, j int) bool {
		return res.TeenagePregnancy[i].Facility < res.TeenagePregnancy[j].Facility
	})

	res.MultipleBirths = make([]MultipleBirthRow, 0, len(multiples))
	for _, row := range multiples {
		res.MultipleBirths = append(res.MultipleBirths, *row)
	}
	sort.Slice(res.MultipleBirths, func(i, j int) bool {
		return res.MultipleBirths[i].Facility < res.MultipleBirths[j].Facility
	})

	return res
}

// AgeGroup returns the bracket label for a mother's age, or "" below ten
func AgeGroup(age int) string {
	switch {
	case age >= 10 && age <= 14:
		return Age10To14
	case age >= 15 && age <= 19:
		return Age15To19
	case age >= 20 && age <= 35:
		return Age20To35
	case age > 35:
		return Age35Plus
	}
	return ""
}

func newSummary(f Filters, region string) Summary {
	switch {
	case f.Facility != "":
		return Summary{Title: "Births in " + f.Facility, Header: "Facility", Footer: f.Facility, GroupBy: "facility"}
	case f.LocalMunicipality != "":
		return Summary{Title: "Births per Facility in " + f.LocalMunicipality, Header: "Facility", Footer: f.LocalMunicipality, GroupBy: "facility"}
	case f.District != "":
		return Summary{Title: "Births per Local Municipality in " + f.District, Header: "Local Municipality", Footer: f.District, GroupBy: "local_municipality"}
	}
	return Summary{Title: "Births per District", Header: "District", Footer: region, GroupBy: "district"}
}

func groupValue(d *models.Delivery, groupBy string) string {
	switch groupBy {
	case "facility":
		return d.Facility
	case "local_municipality":
		return d.LocalMunicipality
	}
	return d.District
}

type groups map[string]*Counts

func newGroups(labels ...string) groups {
	g := groups{}
	for _, l := range labels {
		g[l] = &Counts{}
	}
	return g
}

func (g groups) row(label string) *Counts {
	c := g[label]
	if c == nil {
		c = &Counts{}
		g[label] = c
	}
	return c
}

func (g groups) sorted() []Row {
	labels := make([]string, 0, len(g))
	for l := range g {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return g.ordered(labels)
}

func (g groups) ordered(labels []string) []Row {
	rows := make([]Row, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, Row{Label: l, Counts: *g[l]})
	}
	return rows
}
