package capture

import (
	"testing"
	"time"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/location"
	"festive-births-svc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PlannerTestSuite struct {
	suite.Suite
	planner *Planner
	today   time.Time
	admin   access.Actor
	user    access.Actor
}

func (s *PlannerTestSuite) SetupTest() {
	s.planner = NewPlanner(location.NewDirectory(), []string{"25 December 2025", "01 January 2026"})
	s.today = time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	s.admin = access.Actor{UserID: 2, Roles: []string{access.RoleAdmin},
		Profile: &access.ProfileLocation{District: "Amathole DM"}}
	s.user = access.Actor{UserID: 3, Roles: []string{access.RoleUser},
		Profile: &access.ProfileLocation{District: "Amathole DM", LocalMunicipality: "Mnquma LM", Facility: "Butterworth Hospital"}}
}

func TestPlannerTestSuite(t *testing.T) {
	suite.Run(t, new(PlannerTestSuite))
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func (s *PlannerTestSuite) liveInput() Input {
	return Input{
		District:          "Amathole DM",
		LocalMunicipality: "Mnquma LM",
		Facility:          "Butterworth Hospital",
		ReportDate:        "25 December 2025",
		DeliveryTime:      "14:30",
		MotherName:        "Thandi",
		MotherSurname:     "Mokoena",
		MotherDOB:         "1995-04-21",
		BirthMode:         "Normal Vertex",
		Gravidity:         intPtr(2),
		Parity:            intPtr(1),
		NumberOfBabies:    intPtr(2),
		Babies: []BabyRow{
			{Gender: models.GenderMale, Weight: intPtr(3100)},
			{Gender: models.GenderFemale, Weight: intPtr(2900)},
			{},
			{},
			{},
		},
	}
}

func (s *PlannerTestSuite) TestLiveBirth_Create() {
	plan, err := s.planner.Plan(s.admin, s.liveInput(), nil, s.today)
	s.Require().NoError(err)

	s.Equal(StateLiveBirth, plan.State)
	s.Equal(models.SlotAfternoon, plan.Delivery.TimeSlot)
	s.Equal("14:30", *plan.Delivery.DeliveryTime)
	s.Equal(location.TypeDistrict, plan.Delivery.FacilityType)
	s.Len(plan.Create, 2)
	s.Empty(plan.Update)
	s.Empty(plan.Delete)
}

func (s *PlannerTestSuite) TestLiveBirth_RequiredFields() {
	in := Input{District: "Amathole DM", LocalMunicipality: "Mnquma LM", Facility: "Butterworth Hospital", ReportDate: "25 December 2025"}

	_, err := s.planner.Plan(s.admin, in, nil, s.today)
	s.Require().Error(err)

	fields := err.(FieldErrors)
	for _, f := range []string{"delivery_time", "mother_name", "mother_surname", "mother_dob", "birth_mode", "number_of_babies"} {
		s.True(fields.Has(f), f)
	}
	s.False(fields.Has("gravidity"))
}

func (s *PlannerTestSuite) TestLiveBirth_GravidityAndParityOptional() {
	in := s.liveInput()
	in.Gravidity = nil
	in.Parity = nil

	plan, err := s.planner.Plan(s.user, in, nil, s.today)
	s.Require().NoError(err)
	s.Nil(plan.Delivery.Gravidity)
	s.Nil(plan.Delivery.Parity)

	in.Gravidity = intPtr(-1)
	in.Parity = intPtr(0)
	_, err = s.planner.Plan(s.user, in, nil, s.today)
	s.Require().Error(err)
	s.True(err.(FieldErrors).Has("gravidity"))
	s.False(err.(FieldErrors).Has("parity"))
}

func (s *PlannerTestSuite) TestLocation_NoProfileAcceptsNothing() {
	orphan := access.Actor{UserID: 9, Roles: []string{access.RoleUser}}
	in := s.liveInput()
	in.District = "OR Tambo DM"
	in.LocalMunicipality = "King Sabata Dalindyebo LM"
	in.Facility = "Mthatha General Hospital"

	_, err := s.planner.Plan(orphan, in, nil, s.today)
	s.Require().Error(err)
	fields := err.(FieldErrors)
	for _, f := range []string{"district", "local_municipality", "facility"} {
		s.True(fields.Has(f), f)
	}
}

func (s *PlannerTestSuite) TestLiveBirth_MotherAgeBounds() {
	in := s.liveInput()
	in.MotherDOB = "2016-12-25"
	_, err := s.planner.Plan(s.admin, in, nil, s.today)
	s.Require().Error(err)
	s.True(err.(FieldErrors).Has("mother_dob"))

	in.MotherDOB = "2015-12-25"
	_, err = s.planner.Plan(s.admin, in, nil, s.today)
	s.NoError(err)
}

func (s *PlannerTestSuite) TestNil_ClearsMotherAndBabies() {
	existing := &models.Delivery{
		ID:                10,
		District:          "Amathole DM",
		LocalMunicipality: "Mnquma LM",
		Facility:          "Butterworth Hospital",
		MotherName:        strPtr("Thandi"),
		MotherSurname:     strPtr("Mokoena"),
		BirthMode:         strPtr("Vacuum"),
		Gravidity:         intPtr(3),
		Parity:            intPtr(2),
		DeliveryTime:      strPtr("08:00"),
		Babies:            []models.Baby{{ID: 1, DeliveryID: 10}, {ID: 2, DeliveryID: 10}},
	}

	in := Input{ReportDate: "01 January 2026", NoBirthsToReport: true, TimeSlot: models.SlotNight,
		MotherName: "ignored", NumberOfBabies: intPtr(3)}

	plan, err := s.planner.Plan(s.user, in, existing, s.today)
	s.Require().NoError(err)

	d := plan.Delivery
	s.Equal(StateNil, plan.State)
	s.Equal(uint(10), d.ID)
	s.Nil(d.DeliveryTime)
	s.Nil(d.MotherName)
	s.Nil(d.MotherSurname)
	s.Nil(d.MotherDOB)
	s.Nil(d.BirthMode)
	s.Nil(d.Gravidity)
	s.Nil(d.Parity)
	s.ElementsMatch([]uint{1, 2}, plan.Delete)
	s.Empty(plan.Create)
	s.Equal("Butterworth Hospital", d.Facility)

	// The stored record is untouched until the plan is persisted.
	s.NotNil(existing.MotherName)
}

func (s *PlannerTestSuite) TestNil_RequiresTimeSlot() {
	in := Input{District: "Amathole DM", LocalMunicipality: "Mnquma LM", Facility: "Butterworth Hospital",
		ReportDate: "25 December 2025", NoBirthsToReport: true}

	_, err := s.planner.Plan(s.admin, in, nil, s.today)
	s.Require().Error(err)
	s.True(err.(FieldErrors).Has("time_slot"))
}

func (s *PlannerTestSuite) TestUserLocationIsForced() {
	in := s.liveInput()
	in.District = "Buffalo City MM"
	in.LocalMunicipality = "Buffalo City SD"
	in.Facility = "Frere Hospital"

	plan, err := s.planner.Plan(s.user, in, nil, s.today)
	s.Require().NoError(err)
	s.Equal("Amathole DM", plan.Delivery.District)
	s.Equal("Butterworth Hospital", plan.Delivery.Facility)
}

func (s *PlannerTestSuite) TestCascadeMismatch() {
	in := s.liveInput()
	in.Facility = "Frere Hospital"

	_, err := s.planner.Plan(s.admin, in, nil, s.today)
	s.Require().Error(err)
	s.True(err.(FieldErrors).Has("facility"))
}

func (s *PlannerTestSuite) TestInvalidReportDate() {
	in := s.liveInput()
	in.ReportDate = "31 December 2025"

	_, err := s.planner.Plan(s.admin, in, nil, s.today)
	s.Require().Error(err)
	s.True(err.(FieldErrors).Has("report_date"))
}

func (s *PlannerTestSuite) TestBabyRows() {
	existing := &models.Delivery{
		ID:     20,
		Babies: []models.Baby{
			{ID: 5, DeliveryID: 20, Gender: strPtr(models.GenderMale), Weight: intPtr(3000)},
			{ID: 6, DeliveryID: 20, Gender: strPtr(models.GenderFemale), Weight: intPtr(2800)},
		},
	}

	in := s.liveInput()
	in.NumberOfBabies = intPtr(2)
	in.Babies = []BabyRow{
		{ID: 5, Gender: models.GenderMale, Weight: intPtr(3000)},
		{ID: 6, Delete: true},
		{Gender: models.GenderFemale, Weight: intPtr(2500)},
		{},
	}

	plan, err := s.planner.Plan(s.admin, in, existing, s.today)
	s.Require().NoError(err)
	s.Empty(plan.Update)
	s.Equal([]uint{6}, plan.Delete)
	s.Len(plan.Create, 1)
	s.Equal(2, plan.ActiveBabies(len(existing.Babies)))
}

func (s *PlannerTestSuite) TestBabyRows_ChangedRowValidated() {
	existing := &models.Delivery{ID: 20, Babies: []models.Baby{{ID: 5, DeliveryID: 20, Gender: strPtr(models.GenderMale)}}}

	in := s.liveInput()
	in.NumberOfBabies = intPtr(1)
	in.Babies = []BabyRow{{ID: 5, Gender: "Unknown", Weight: intPtr(20000)}}

	_, err := s.planner.Plan(s.admin, in, existing, s.today)
	s.Require().Error(err)
	fields := err.(FieldErrors)
	s.True(fields.Has("babies.0.gender"))
	s.True(fields.Has("babies.0.weight"))
}

func (s *PlannerTestSuite) TestBabyRows_CountMismatch() {
	in := s.liveInput()
	in.NumberOfBabies = intPtr(3)

	_, err := s.planner.Plan(s.admin, in, nil, s.today)
	s.Require().Error(err)
	s.True(err.(FieldErrors).Has("number_of_babies"))
}

func (s *PlannerTestSuite) TestBabyRows_TooMany() {
	in := s.liveInput()
	in.Babies = make([]BabyRow, MaxBabies+1)

	_, err := s.planner.Plan(s.admin, in, nil, s.today)
	s.Require().Error(err)
	s.True(err.(FieldErrors).Has("babies"))
}

func (s *PlannerTestSuite) TestBabyRows_ForeignID() {
	in := s.liveInput()
	in.Babies = append(in.Babies[:2], BabyRow{ID: 99, Gender: models.GenderMale})

	_, err := s.planner.Plan(s.admin, in, nil, s.today)
	s.Require().Error(err)
	s.True(err.(FieldErrors).Has("babies"))
}

func TestFieldErrors_Error(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("b", "second")
	errs.Add("a", "first %d", 1)

	require.Error(t, errs.orNil())
	assert.Equal(t, "validation failed: a: first 1, b: second", errs.Error())
	assert.NoError(t, FieldErrors{}.orNil())
}
