// ABOUTME: Water intake progress from cup counts.
// ABOUTME: Defaults to 200 mL cups and a 2 L daily goal.
package fitness

const (
	DefaultCupML       = 200
	DefaultWaterGoalML = 2000
)

// HydrationStatus summarizes water intake against a daily goal.
type HydrationStatus struct {
	ConsumedML  int     `json:"consumed_ml"`
	RemainingML int     `json:"remaining_ml"`
	GoalML      int     `json:"goal_ml"`
	Progress    float64 `json:"progress"`
}

// Hydration converts a cup count into consumed and remaining millilitres.
// Non-positive cupML or goalML fall back to the defaults.
func Hydration(cups, cupML, goalML int) HydrationStatus {
	if cupML <= 0 {
		cupML = DefaultCupML
	}
	if goalML <= 0 {
		goalML = DefaultWaterGoalML
	}
	if cups < 0 {
		cups = 0
	}

	consumed := cups * cupML
	remaining := goalML - consumed
	if remaining < 0 {
		remaining = 0
	}
	progress := float64(consumed) / float64(goalML)
	if progress > 1 {
		progress = 1
	}

	return HydrationStatus{
		ConsumedML:  consumed,
		RemainingML: remaining,
		GoalML:      goalML,
		Progress:    progress,
	}
}
