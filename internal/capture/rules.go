package capture

import (
	"fmt"
	"strings"
	"time"

	"festive-births-svc/internal/models"
	"festive-births-svc/pkg/utils"
)

// Mother age bounds, inclusive
const (
	MinMotherAge = 10
	MaxMotherAge = 65
)

// Baby limits
const (
	MaxBabies = 5
	MaxWeight = 10000
)

const timeLayout = "15:04"

// ParseDeliveryTime accepts "HH:MM" or "HH:MM:SS" and returns minutes after midnight
func ParseDeliveryTime(s string) (int, error) {
	s = strings.TrimSpace(s)
	layout := timeLayout
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DeriveTimeSlot maps a time of delivery onto its reporting window.
// Midnight itself belongs to the last window of the day.
func DeriveTimeSlot(deliveryTime string) (string, error) {
	minutes, err := ParseDeliveryTime(deliveryTime)
	if err != nil {
		return "", err
	}
	switch {
	case minutes == 0:
		return models.SlotEvening, nil
	case minutes <= 6*60:
		return models.SlotNight, nil
	case minutes <= 12*60:
		return models.SlotMorning, nil
	case minutes <= 18*60:
		return models.SlotAfternoon, nil
	case minutes <= 23*60+59:
		return models.SlotEvening, nil
	}
	return "", fmt.Errorf("time %q is outside every slot", deliveryTime)
}

// ValidateMotherDOB checks the mother's age on today falls within the accepted bounds
func ValidateMotherDOB(dob, today time.Time) error {
	age := utils.AgeOn(dob, today)
	if age < MinMotherAge || age > MaxMotherAge {
		return fmt.Errorf("mother's age must be between %d and %d, calculated age is %d", MinMotherAge, MaxMotherAge, age)
	}
	return nil
}

func isChoice(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}
