package models

// Time slots, one per six-hour reporting window
const (
	SlotNight     = "00:01 - 06:00"
	SlotMorning   = "06:01 - 12:00"
	SlotAfternoon = "12:01 - 18:00"
	SlotEvening   = "18:01 - 24:00"
)

// TimeSlotChoices lists the reporting windows in order
var TimeSlotChoices = []string{SlotNight, SlotMorning, SlotAfternoon, SlotEvening}

// BirthModeChoices lists the accepted modes of delivery
var BirthModeChoices = []string{
	"Normal Vertex",
	"Caesarean section Elective",
	"Caesarean section Emergency",
	"Vacuum",
	"Forceps",
	"Vaginal Breech",
}

// GenderChoices lists the accepted baby genders
var GenderChoices = []string{GenderMale, GenderFemale}
