// ABOUTME: Body-mass index calculation and classification bands.
// ABOUTME: Invalid height is signalled by a nil BMI, never by an error.
package fitness

// BMIClass is the classification band for a body-mass index value.
type BMIClass int

const (
	InvalidHeight BMIClass = iota
	Underweight
	Normal
	Overweight
	ObeseI
	ObeseII
	ObeseIII
)

var bmiClassNames = map[BMIClass]string{
	InvalidHeight: "invalid height",
	Underweight:   "underweight",
	Normal:        "normal weight",
	Overweight:    "overweight",
	ObeseI:        "obesity class I",
	ObeseII:       "obesity class II",
	ObeseIII:      "obesity class III",
}

func (c BMIClass) String() string {
	if name, ok := bmiClassNames[c]; ok {
		return name
	}
	return "unknown"
}

// ComputeBMI returns weightKg / heightM², or nil when heightM <= 0.
// The value is not rounded.
func ComputeBMI(weightKg, heightM float64) *float64 {
	if heightM <= 0 {
		return nil
	}
	bmi := weightKg / (heightM * heightM)
	return &bmi
}

// Classify maps a BMI to its band. Each band is closed on its lower bound,
// so a value sitting exactly on a threshold belongs to the higher band.
func Classify(bmi *float64) BMIClass {
	if bmi == nil {
		return InvalidHeight
	}
	v := *bmi
	switch {
	case v < 18.5:
		return Underweight
	case v < 25:
		return Normal
	case v < 30:
		return Overweight
	case v < 35:
		return ObeseI
	case v < 40:
		return ObeseII
	default:
		return ObeseIII
	}
}
