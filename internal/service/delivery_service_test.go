package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/capture"
	"festive-births-svc/internal/location"
	"festive-births-svc/internal/models"
	"festive-births-svc/pkg/logger"
)

var testReportDates = []string{"25 December 2025", "01 January 2026"}

func newDeliveryFixture() (DeliveryService, *fakeDeliveryRepo) {
	dir := location.NewDirectory()
	repo := newFakeDeliveryRepo()
	svc := NewDeliveryService(repo, capture.NewPlanner(dir, testReportDates), dir, nil, logger.NewNop())
	return svc, repo
}

func capturer() access.Actor {
	return access.Actor{
		UserID:   5,
		Username: "12345678",
		Roles:    []string{models.RoleUser},
		Profile: &access.ProfileLocation{
			District:          "Amathole DM",
			LocalMunicipality: "Mnquma LM",
			Facility:          "Butterworth Hospital",
		},
	}
}

func liveBirth() capture.Input {
	return capture.Input{
		ReportDate:     "25 December 2025",
		DeliveryTime:   "09:15",
		MotherName:     "Nomsa",
		MotherSurname:  "Khumalo",
		MotherDOB:      "1995-04-21",
		BirthMode:      models.BirthModeChoices[0],
		Gravidity:      intPtr(2),
		Parity:         intPtr(1),
		NumberOfBabies: intPtr(2),
		Babies: []capture.BabyRow{
			{Gender: models.GenderMale, Weight: intPtr(3100)},
			{Gender: models.GenderFemale, Weight: intPtr(2900)},
		},
	}
}

func TestDeliveryCreate_LocksLocationAndStampsCapturer(t *testing.T) {
	svc, _ := newDeliveryFixture()

	in := liveBirth()
	in.District = "Buffalo City MM"
	in.Facility = "Frere Hospital"

	d, err := svc.Create(context.Background(), capturer(), in)
	require.NoError(t, err)
	assert.Equal(t, "Butterworth Hospital", d.Facility)
	assert.Equal(t, models.SlotMorning, d.TimeSlot)
	require.NotNil(t, d.CapturedByID)
	assert.Equal(t, uint(5), *d.CapturedByID)
	assert.NotEmpty(t, d.DocumentID)
	assert.Len(t, d.Babies, 2)
}

func TestDeliveryCreate_ValidationError(t *testing.T) {
	svc, _ := newDeliveryFixture()

	in := liveBirth()
	in.MotherDOB = "2024-01-01"

	_, err := svc.Create(context.Background(), capturer(), in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "mother_dob")
}

func TestDeliveryCreate_ProvinceUserDenied(t *testing.T) {
	svc, _ := newDeliveryFixture()
	actor := access.Actor{UserID: 8, Roles: []string{models.RoleProvinceUser}}

	_, err := svc.Create(context.Background(), actor, liveBirth())
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDeliveryWrites_UnassignedAccountsDenied(t *testing.T) {
	actors := map[string]access.Actor{
		"user without profile":      {UserID: 11, Roles: []string{models.RoleUser}},
		"admin without profile":     {UserID: 12, Roles: []string{models.RoleAdmin}},
		"user without facility":     {UserID: 13, Roles: []string{models.RoleUser}, Profile: &access.ProfileLocation{District: "OR Tambo DM"}},
		"admin with empty district": {UserID: 14, Roles: []string{models.RoleAdmin}, Profile: &access.ProfileLocation{}},
	}

	for name, actor := range actors {
		t.Run(name, func(t *testing.T) {
			svc, repo := newDeliveryFixture()
			existing := repo.add(models.Delivery{District: "OR Tambo DM", LocalMunicipality: "King Sabata Dalindyebo LM", Facility: "Mthatha General Hospital"})
			want := *existing
			ctx := context.Background()

			in := liveBirth()
			in.District = "OR Tambo DM"
			in.LocalMunicipality = "King Sabata Dalindyebo LM"
			in.Facility = "Mthatha General Hospital"

			_, err := svc.Create(ctx, actor, in)
			assert.ErrorIs(t, err, ErrPermissionDenied)

			_, err = svc.Update(ctx, actor, existing.ID, in)
			assert.ErrorIs(t, err, ErrPermissionDenied)

			assert.ErrorIs(t, svc.Delete(ctx, actor, existing.ID), ErrPermissionDenied)

			require.Len(t, repo.deliveries, 1)
			stored := repo.deliveries[existing.ID]
			require.NotNil(t, stored)
			assert.Equal(t, want, *stored)
		})
	}
}

func TestDeliveryGet_OutOfScopeIsNotFound(t *testing.T) {
	svc, repo := newDeliveryFixture()
	other := repo.add(models.Delivery{District: "Buffalo City MM", Facility: "Frere Hospital"})

	_, err := svc.Get(context.Background(), capturer(), other.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), capturer(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeliveryUpdate_NilRemovesBabies(t *testing.T) {
	svc, _ := newDeliveryFixture()
	ctx := context.Background()

	d, err := svc.Create(ctx, capturer(), liveBirth())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, capturer(), d.ID, capture.Input{
		ReportDate:       "25 December 2025",
		NoBirthsToReport: true,
		TimeSlot:         models.SlotNight,
	})
	require.NoError(t, err)
	assert.True(t, updated.NoBirthsToReport)
	assert.Nil(t, updated.MotherName)
	assert.Empty(t, updated.Babies)
	assert.Equal(t, uint(5), *updated.CapturedByID)
}

func TestDeliveryList_ScopeScenario(t *testing.T) {
	svc, repo := newDeliveryFixture()
	ctx := context.Background()
	repo.add(models.Delivery{District: "Amathole DM", Facility: "Butterworth Hospital"})
	repo.add(models.Delivery{District: "Amathole DM", Facility: "Tafalofefe Hospital"})
	repo.add(models.Delivery{District: "Buffalo City MM", Facility: "Frere Hospital"})

	admin := access.Actor{UserID: 2, Roles: []string{models.RoleAdmin}, Profile: &access.ProfileLocation{District: "Amathole DM"}}
	super := access.Actor{UserID: 1, Superuser: true}

	rows, _, err := svc.List(ctx, capturer(), "", 1, 25)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, _, err = svc.List(ctx, admin, "", 1, 25)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, _, err = svc.List(ctx, super, "", 1, 25)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestDeliveryForm_IncludesReportDates(t *testing.T) {
	svc, _ := newDeliveryFixture()

	form := svc.Form(capturer(), access.FormSelection{})
	assert.Equal(t, testReportDates, form.Fields["report_date"].Choices)
	assert.True(t, form.Fields["facility"].Locked)
}
