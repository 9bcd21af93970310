package export

// Normal birth weight range in grams, lower bound inclusive, upper exclusive
const (
	NormalWeightMin = 2500
	NormalWeightMax = 4000
)

// WeightCategory labels a birth weight outside the normal range. Normal weights give "".
func WeightCategory(grams int) string {
	switch {
	case grams < 1000:
		return "Extremely Low Birth Weight"
	case grams < 1500:
		return "Very Low Birth Weight"
	case grams < NormalWeightMin:
		return "Low Birth Weight"
	case grams >= NormalWeightMax:
		return "High Birth Weight (Macrosomia)"
	}
	return ""
}

// IsAbnormalWeight reports whether grams falls outside the normal range
func IsAbnormalWeight(grams int) bool {
	return grams < NormalWeightMin || grams >= NormalWeightMax
}
