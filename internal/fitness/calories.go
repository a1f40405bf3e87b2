// ABOUTME: Calorie expenditure from MET, body weight, and duration.
// ABOUTME: Also derives effective durations for routine items logged without one.
package fitness

import (
	"errors"
	"fmt"
)

const (
	// FallbackMET is used when no table entry matches an exercise name.
	FallbackMET = 6.0

	// DefaultWeightKg is used when no health entry has been recorded yet.
	DefaultWeightKg = 70.0

	// minutesPerRep estimates how long one repetition takes.
	minutesPerRep = 0.2
)

// ErrInvalidInput reports a calculation or record input outside its valid range.
var ErrInvalidInput = errors.New("invalid input")

// CaloriesBurned returns met * weightKg * (durationMin / 60).
// Inputs are not validated; use EstimateCalories for user-supplied values.
func CaloriesBurned(met, weightKg, durationMin float64) float64 {
	return met * weightKg * (durationMin / 60.0)
}

// EstimateCalories is CaloriesBurned with range checks on every input.
func EstimateCalories(met, weightKg, durationMin float64) (float64, error) {
	if met <= 0 {
		return 0, fmt.Errorf("%w: met must be positive, got %g", ErrInvalidInput, met)
	}
	if weightKg <= 0 {
		return 0, fmt.Errorf("%w: weight must be positive, got %g", ErrInvalidInput, weightKg)
	}
	if durationMin <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidInput, durationMin)
	}
	return CaloriesBurned(met, weightKg, durationMin), nil
}

// EffectiveDuration returns durationMin when it is positive, otherwise an
// estimate of sets * reps * 0.2 minutes.
func EffectiveDuration(durationMin float64, sets, reps int) float64 {
	if durationMin > 0 {
		return durationMin
	}
	return float64(sets) * float64(reps) * minutesPerRep
}
