// ABOUTME: HealthEntry model for body-metric check-ins.
// ABOUTME: BMI is derived once at creation and stored alongside the inputs.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthhub/internal/fitness"
)

// DateLayout is the stored format of calendar dates.
const DateLayout = "2006-01-02"

// HealthEntry is one weight/height/water check-in.
type HealthEntry struct {
	ID        int64     `json:"id"`
	UID       uuid.UUID `json:"uid"`
	EntryDate string    `json:"entry_date"`
	WeightKg  float64   `json:"weight_kg"`
	HeightM   float64   `json:"height_m"`
	BMI       *float64  `json:"bmi,omitempty"`
	Cups      int       `json:"cups"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewHealthEntry builds an entry dated today with its BMI computed.
func NewHealthEntry(weightKg, heightM float64, cups int, note string) *HealthEntry {
	now := time.Now()
	return &HealthEntry{
		UID:       uuid.New(),
		EntryDate: now.Format(DateLayout),
		WeightKg:  weightKg,
		HeightM:   heightM,
		BMI:       fitness.ComputeBMI(weightKg, heightM),
		Cups:      cups,
		Note:      note,
		CreatedAt: now,
	}
}

// Class returns the BMI band of the entry.
func (e *HealthEntry) Class() fitness.BMIClass {
	return fitness.Classify(e.BMI)
}
