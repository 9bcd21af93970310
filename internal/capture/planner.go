package capture

import (
	"fmt"
	"strings"
	"time"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/location"
	"festive-births-svc/internal/models"
	"festive-births-svc/pkg/utils"
)

// State is the lifecycle state a submission resolves to
type State string

const (
	StateDraft     State = "DRAFT"
	StateNil       State = "NIL"
	StateLiveBirth State = "LIVE_BIRTH"
)

const (
	requiredField    = "This field is required."
	requiredForBirth = "This field is required when reporting a birth."
)

// Input is a submitted delivery form
type Input struct {
	District          string    `json:"district"`
	LocalMunicipality string    `json:"local_municipality"`
	Facility          string    `json:"facility"`
	ReportDate        string    `json:"report_date"`
	TimeSlot          string    `json:"time_slot"`
	NoBirthsToReport  bool      `json:"no_births_to_report"`
	BornBeforeArrival bool      `json:"born_before_arrival"`
	DeliveryTime      string    `json:"delivery_time" example:"14:30"`
	MotherName        string    `json:"mother_name"`
	MotherSurname     string    `json:"mother_surname"`
	MotherDOB         string    `json:"mother_dob" example:"1995-04-21"`
	BirthMode         string    `json:"birth_mode"`
	Gravidity         *int      `json:"gravidity"`
	Parity            *int      `json:"parity"`
	NumberOfBabies    *int      `json:"number_of_babies"`
	Babies            []BabyRow `json:"babies"`
}

// BabyRow is one row of the baby sub-form. ID is set for rows that already exist.
type BabyRow struct {
	ID     uint   `json:"id,omitempty"`
	Gender string `json:"gender"`
	Weight *int   `json:"weight"`
	Delete bool   `json:"delete,omitempty"`
}

func (r BabyRow) blank() bool {
	return strings.TrimSpace(r.Gender) == "" && r.Weight == nil
}

// Plan is a validated submission ready to be persisted in one transaction
type Plan struct {
	State    State
	Delivery *models.Delivery
	Create   []models.Baby
	Update   []models.Baby
	Delete   []uint
}

// ActiveBabies is the number of live baby rows once the plan is applied
func (p *Plan) ActiveBabies(existing int) int {
	return existing - len(p.Delete) + len(p.Create)
}

// Planner validates submissions against the location directory and the configured report dates
type Planner struct {
	dir         *location.Directory
	reportDates []string
}

// NewPlanner creates a new Planner
func NewPlanner(dir *location.Directory, reportDates []string) *Planner {
	return &Planner{dir: dir, reportDates: reportDates}
}

// ReportDates returns the accepted report dates
func (p *Planner) ReportDates() []string {
	return append([]string(nil), p.reportDates...)
}

// Plan validates in for the actor. existing is nil on create.
// On success the returned delivery is existing (or a new record) with every submitted field applied.
func (p *Planner) Plan(actor access.Actor, in Input, existing *models.Delivery, today time.Time) (*Plan, error) {
	errs := FieldErrors{}

	d := &models.Delivery{}
	if existing != nil {
		copied := *existing
		d = &copied
	}

	p.applyLocation(actor, in, d, errs)

	if !isChoice(p.reportDates, in.ReportDate) {
		errs.Add("report_date", "Select a valid report date.")
	}
	d.ReportDate = in.ReportDate
	d.NoBirthsToReport = in.NoBirthsToReport
	d.BornBeforeArrival = in.BornBeforeArrival

	plan := &Plan{Delivery: d}
	if in.NoBirthsToReport {
		plan.State = StateNil
		p.planNil(in, existing, plan, errs)
	} else {
		plan.State = StateLiveBirth
		p.planLiveBirth(in, existing, plan, today, errs)
	}

	if err := errs.orNil(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (p *Planner) applyLocation(actor access.Actor, in Input, d *models.Delivery, errs FieldErrors) {
	sel := access.FormSelection{District: in.District, LocalMunicipality: in.LocalMunicipality}
	fields := access.DeriveFieldConstraints(actor, p.dir, access.FormDelivery, sel)

	district := lockedOr(fields["district"], in.District)
	municipality := lockedOr(fields["local_municipality"], in.LocalMunicipality)
	facility := lockedOr(fields["facility"], in.Facility)

	switch {
	case district == "":
		errs.Add("district", requiredField)
	case !p.dir.HasDistrict(district):
		errs.Add("district", "Select a valid district.")
	}
	switch {
	case municipality == "":
		errs.Add("local_municipality", requiredField)
	case !errs.Has("district") && !p.dir.HasMunicipality(district, municipality):
		errs.Add("local_municipality", "Select a valid local municipality for %s.", district)
	}
	switch {
	case facility == "":
		errs.Add("facility", requiredField)
	case !errs.Has("local_municipality") && !p.dir.HasFacility(municipality, facility):
		errs.Add("facility", "Select a valid facility for %s.", municipality)
	}

	d.District = district
	d.LocalMunicipality = municipality
	d.Facility = facility
	d.FacilityType, _ = p.dir.FacilityType(facility)
}

func (p *Planner) planNil(in Input, existing *models.Delivery, plan *Plan, errs FieldErrors) {
	d := plan.Delivery
	switch {
	case in.TimeSlot == "":
		errs.Add("time_slot", "You must select a time slot for a NIL report.")
	case !isChoice(models.TimeSlotChoices, in.TimeSlot):
		errs.Add("time_slot", "Select a valid time slot.")
	}
	d.TimeSlot = in.TimeSlot
	d.DeliveryTime = nil
	d.MotherName = nil
	d.MotherSurname = nil
	d.MotherDOB = nil
	d.BirthMode = nil
	d.Gravidity = nil
	d.Parity = nil

	if existing != nil {
		for _, b := range existing.Babies {
			plan.Delete = append(plan.Delete, b.ID)
		}
	}
}

func (p *Planner) planLiveBirth(in Input, existing *models.Delivery, plan *Plan, today time.Time, errs FieldErrors) {
	d := plan.Delivery

	d.DeliveryTime = nil
	if t := strings.TrimSpace(in.DeliveryTime); t == "" {
		errs.Add("delivery_time", requiredForBirth)
	} else if minutes, err := ParseDeliveryTime(t); err != nil {
		errs.Add("delivery_time", "The entered Time of Delivery is invalid.")
	} else {
		slot, err := DeriveTimeSlot(t)
		if err != nil {
			errs.Add("delivery_time", "The entered Time of Delivery is invalid.")
		}
		normalized := fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
		d.DeliveryTime = &normalized
		d.TimeSlot = slot
	}

	d.MotherName = requiredText(in.MotherName, "mother_name", errs)
	d.MotherSurname = requiredText(in.MotherSurname, "mother_surname", errs)

	d.MotherDOB = nil
	if s := strings.TrimSpace(in.MotherDOB); s == "" {
		errs.Add("mother_dob", requiredForBirth)
	} else if dob, err := time.Parse(utils.DateLayout, s); err != nil {
		errs.Add("mother_dob", "Enter a valid date.")
	} else if err := ValidateMotherDOB(dob, today); err != nil {
		errs.Add("mother_dob", err.Error())
	} else {
		d.MotherDOB = &dob
	}

	d.BirthMode = nil
	switch mode := strings.TrimSpace(in.BirthMode); {
	case mode == "":
		errs.Add("birth_mode", requiredForBirth)
	case !isChoice(models.BirthModeChoices, mode):
		errs.Add("birth_mode", "Select a valid birth mode.")
	default:
		d.BirthMode = &mode
	}

	d.Gravidity = nonNegative(in.Gravidity, "gravidity", errs)
	d.Parity = nonNegative(in.Parity, "parity", errs)

	existingCount := p.planBabies(in.Babies, existing, plan, errs)

	switch n := in.NumberOfBabies; {
	case n == nil:
		errs.Add("number_of_babies", requiredForBirth)
	case *n < 1 || *n > MaxBabies:
		errs.Add("number_of_babies", "Select between 1 and %d babies.", MaxBabies)
	case !errs.Has("babies") && plan.ActiveBabies(existingCount) != *n:
		errs.Add("number_of_babies", "Number of babies is %d but %d baby rows were captured.", *n, plan.ActiveBabies(existingCount))
	}
}

// planBabies sorts rows into creates, updates and deletes and returns the number of existing live rows.
// Blank new rows and unchanged existing rows are skipped without validation.
func (p *Planner) planBabies(rows []BabyRow, existing *models.Delivery, plan *Plan, errs FieldErrors) int {
	current := map[uint]models.Baby{}
	if existing != nil {
		for _, b := range existing.Babies {
			current[b.ID] = b
		}
	}

	if len(rows) > MaxBabies {
		errs.Add("babies", "At most %d baby rows may be submitted.", MaxBabies)
		return len(current)
	}

	for i, row := range rows {
		prefix := fmt.Sprintf("babies.%d", i)
		if row.ID == 0 {
			if row.Delete || row.blank() {
				continue
			}
			if b, ok := validBaby(row, prefix, errs); ok {
				plan.Create = append(plan.Create, b)
			}
			continue
		}

		stored, ok := current[row.ID]
		if !ok {
			errs.Add("babies", "Baby %d does not belong to this delivery.", row.ID)
			continue
		}
		if row.Delete {
			plan.Delete = append(plan.Delete, row.ID)
			continue
		}
		if unchanged(stored, row) {
			continue
		}
		if b, ok := validBaby(row, prefix, errs); ok {
			b.ID = stored.ID
			b.DeliveryID = stored.DeliveryID
			plan.Update = append(plan.Update, b)
		}
	}
	return len(current)
}

func validBaby(row BabyRow, prefix string, errs FieldErrors) (models.Baby, bool) {
	ok := true
	gender := strings.TrimSpace(row.Gender)
	switch {
	case gender == "":
		errs.Add(prefix+".gender", requiredField)
		ok = false
	case !isChoice(models.GenderChoices, gender):
		errs.Add(prefix+".gender", "Select a valid gender.")
		ok = false
	}
	if row.Weight != nil && (*row.Weight < 1 || *row.Weight > MaxWeight) {
		errs.Add(prefix+".weight", "Weight must be between 1 and %d grams.", MaxWeight)
		ok = false
	}
	if !ok {
		return models.Baby{}, false
	}
	return models.Baby{Gender: &gender, Weight: row.Weight}, true
}

func unchanged(stored models.Baby, row BabyRow) bool {
	if stored.GenderValue() != strings.TrimSpace(row.Gender) {
		return false
	}
	switch {
	case stored.Weight == nil && row.Weight == nil:
		return true
	case stored.Weight == nil || row.Weight == nil:
		return false
	}
	return *stored.Weight == *row.Weight
}

func lockedOr(fc access.FieldConstraint, submitted string) string {
	if fc.Locked {
		return fc.Initial
	}
	return strings.TrimSpace(submitted)
}

func requiredText(v, field string, errs FieldErrors) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		errs.Add(field, requiredForBirth)
		return nil
	}
	return &v
}

func nonNegative(v *int, field string, errs FieldErrors) *int {
	if v != nil && *v < 0 {
		errs.Add(field, "Ensure this value is greater than or equal to 0.")
		return nil
	}
	return v
}
