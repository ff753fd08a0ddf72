package model

// Category is one of the fixed health-data labels access is scoped to.
type Category string

const (
	CategoryCardioRate       Category = "cardio-rate"
	CategoryBloodPressure    Category = "blood-pressure"
	CategoryRestMetrics      Category = "rest-metrics"
	CategoryFitnessActivity  Category = "fitness-activity"
	CategoryMetabolicGlucose Category = "metabolic-glucose"
	CategoryOxygenSaturation Category = "oxygen-saturation"
	CategoryBodyTemperature  Category = "body-temperature"
	CategoryBodyWeight       Category = "body-weight"
)

var categories = []Category{
	CategoryCardioRate,
	CategoryBloodPressure,
	CategoryRestMetrics,
	CategoryFitnessActivity,
	CategoryMetabolicGlucose,
	CategoryOxygenSaturation,
	CategoryBodyTemperature,
	CategoryBodyWeight,
}

// Categories returns the closed set of categories in declaration order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a raw label into a Category.
func ParseCategory(raw string) (Category, bool) {
	c := Category(raw)
	return c, c.Valid()
}
