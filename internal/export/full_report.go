package export

import (
	"festive-births-svc/internal/models"
	"festive-births-svc/pkg/utils"
)

// Full report file details
const (
	FullReportSheet    = "Festive Births Full Report"
	FullReportFilename = "festive_births_full_report.xlsx"
)

// FullReportHeaders is the fixed column order of the full report
var FullReportHeaders = []string{
	"Timestamp", "Report Date", "Time Slot", "Time of Birth", "District",
	"Local Municipality", "Facility", "Facility Type",
	"Mother Name", "Mother Surname",
	"Mother D.O.B.", "Gravidity", "Parity", "Birth Mode", "Born Before Arrival",
	"Baby Number", "Baby Gender", "Baby Weight (grams)",
	"Captured By (Username)",
}

// FullReport writes one row per baby, or one placeholder row per NIL delivery.
// deliveries must be scoped, ordered and carry babies and the capturing user.
func FullReport(deliveries []models.Delivery) ([]byte, string, error) {
	var rows [][]interface{}
	for i := range deliveries {
		d := &deliveries[i]
		common := []interface{}{
			d.CreatedAt.Format("2006-01-02 15:04"),
			d.ReportDate,
			d.TimeSlot,
			text(d.DeliveryTime),
			d.District,
			d.LocalMunicipality,
			d.Facility,
			d.FacilityType,
			text(d.MotherName),
			text(d.MotherSurname),
			date(d),
			number(d.Gravidity),
			number(d.Parity),
			text(d.BirthMode),
			yesNo(d.BornBeforeArrival),
		}
		capturedBy := d.CapturedByUsername()

		if d.NoBirthsToReport {
			rows = append(rows, row(common, "NIL Report", "N/A", "N/A", capturedBy))
			continue
		}
		for n, b := range d.Babies {
			rows = append(rows, row(common, n+1, b.GenderValue(), number(b.Weight), capturedBy))
		}
	}

	data, err := writeSheet(FullReportSheet, FullReportHeaders, rows)
	if err != nil {
		return nil, "", err
	}
	return data, FullReportFilename, nil
}

func row(common []interface{}, extra ...interface{}) []interface{} {
	out := make([]interface{}, 0, len(common)+len(extra))
	out = append(out, common...)
	return append(out, extra...)
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func number(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}

func date(d *models.Delivery) string {
	if d.MotherDOB == nil {
		return ""
	}
	return d.MotherDOB.Format(utils.DateLayout)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
