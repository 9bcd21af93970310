package response

// AbnormalWeightRow is one baby outside the normal weight range with its delivery context
type AbnormalWeightRow struct {
	BabyID            uint    `json:"baby_id" gorm:"column:baby_id"`
	DeliveryID        uint    `json:"delivery_id" gorm:"column:delivery_id"`
	Gender            *string `json:"gender" gorm:"column:gender"`
	Weight            int     `json:"weight" gorm:"column:weight"`
	Category          string  `json:"category" gorm:"-"`
	ReportDate        string  `json:"report_date" gorm:"column:report_date"`
	DeliveryTime      *string `json:"delivery_time" gorm:"column:delivery_time"`
	District          string  `json:"district" gorm:"column:district"`
	LocalMunicipality string  `json:"local_municipality" gorm:"column:local_municipality"`
	Facility          string  `json:"facility" gorm:"column:facility"`
	MotherName        *string `json:"mother_name" gorm:"column:mother_name"`
	MotherSurname     *string `json:"mother_surname" gorm:"column:mother_surname"`
}

// NilReportRow is one NIL delivery in the NIL report
type NilReportRow struct {
	ID                uint   `json:"id" example:"12"`
	DocumentID        string `json:"document_id"`
	ReportDate        string `json:"report_date" example:"25 December 2025"`
	TimeSlot          string `json:"time_slot" example:"00:01 - 06:00"`
	District          string `json:"district" example:"Amathole DM"`
	LocalMunicipality string `json:"local_municipality" example:"Mnquma LM"`
	Facility          string `json:"facility" example:"Butterworth Hospital"`
	CapturedBy        string `json:"captured_by" example:"12345678"`
	Timestamp         string `json:"timestamp" example:"2025-12-25 09:30"`
}

// ActiveUserResponse is one user seen within the presence window
type ActiveUserResponse struct {
	ID           uint   `json:"id" example:"4"`
	Username     string `json:"username" example:"12345678"`
	FullName     string `json:"full_name" example:"Ayanda Dlamini"`
	District     string `json:"district" example:"Amathole DM"`
	Facility     string `json:"facility" example:"Butterworth Hospital"`
	LastActivity string `json:"last_activity" example:"2025-12-25T09:30:00Z"`
}
