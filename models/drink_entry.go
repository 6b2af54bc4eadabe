package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DrinkType classifies a logged drink. Each type carries a hydration factor
// because not all fluids hydrate equally.
type DrinkType string

const (
	DrinkWater  DrinkType = "water"
	DrinkCoffee DrinkType = "coffee"
	DrinkTea    DrinkType = "tea"
	DrinkJuice  DrinkType = "juice"
	DrinkMilk   DrinkType = "milk"
	DrinkSoda   DrinkType = "soda"
	DrinkOther  DrinkType = "other"
)

var AllDrinkTypes = []DrinkType{
	DrinkWater, DrinkCoffee, DrinkTea, DrinkJuice, DrinkMilk, DrinkSoda, DrinkOther,
}

func (t DrinkType) HydrationFactor() float64 {
	switch t {
	case DrinkWater:
		return 1.0
	case DrinkCoffee:
		return 0.85
	case DrinkTea:
		return 0.95
	case DrinkJuice:
		return 0.9
	case DrinkMilk:
		return 0.9
	case DrinkSoda:
		return 0.8
	default:
		return 0.9
	}
}

func (t DrinkType) Label() string {
	switch t {
	case DrinkWater:
		return "Water"
	case DrinkCoffee:
		return "Coffee"
	case DrinkTea:
		return "Tea"
	case DrinkJuice:
		return "Juice"
	case DrinkMilk:
		return "Milk"
	case DrinkSoda:
		return "Soda"
	default:
		return "Other"
	}
}

func (t DrinkType) Valid() bool {
	switch t {
	case DrinkWater, DrinkCoffee, DrinkTea, DrinkJuice, DrinkMilk, DrinkSoda, DrinkOther:
		return true
	}
	return false
}

// DrinkEntry is one logged drink. EffectiveHydrationMl is derived from
// volume and type at write time and recomputed on every edit.
type DrinkEntry struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uint      `gorm:"index;not null" json:"-"`
	Timestamp            time.Time `gorm:"index;not null" json:"timestamp"`
	VolumeMl             int       `gorm:"not null" json:"volume_ml"`
	DrinkType            DrinkType `gorm:"size:16;not null" json:"drink_type"`
	Name                 string    `json:"name"`
	EffectiveHydrationMl int       `gorm:"not null" json:"effective_hydration_ml"`
	CreatedAt            time.Time `json:"-"`
}

func NewDrinkEntry(userID uint, volumeMl int, drinkType DrinkType, name string, timestamp time.Time) *DrinkEntry {
	if name == "" {
		name = drinkType.Label()
	}
	d := &DrinkEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Timestamp: timestamp,
		VolumeMl:  volumeMl,
		DrinkType: drinkType,
		Name:      name,
	}
	d.RecomputeEffectiveHydration()
	return d
}

func (d *DrinkEntry) RecomputeEffectiveHydration() {
	d.EffectiveHydrationMl = EffectiveHydration(d.VolumeMl, d.DrinkType)
}

func EffectiveHydration(volumeMl int, drinkType DrinkType) int {
	return int(math.Round(float64(volumeMl) * drinkType.HydrationFactor()))
}

// PresetDrink is a quick-log template shown by clients. The preset list is
// static data, not persisted.
type PresetDrink struct {
	Name                 string    `json:"name"`
	VolumeMl             int       `json:"volume_ml"`
	DrinkType            DrinkType `json:"drink_type"`
	Icon                 string    `json:"icon"`
	EffectiveHydrationMl int       `json:"effective_hydration_ml"`
}

func preset(name string, volumeMl int, t DrinkType, icon string) PresetDrink {
	return PresetDrink{
		Name:                 name,
		VolumeMl:             volumeMl,
		DrinkType:            t,
		Icon:                 icon,
		EffectiveHydrationMl: EffectiveHydration(volumeMl, t),
	}
}

var PresetDrinks = []PresetDrink{
	preset("Water", 250, DrinkWater, "drop.fill"),
	preset("Coffee", 200, DrinkCoffee, "cup.and.saucer.fill"),
	preset("Latte", 240, DrinkCoffee, "cup.and.saucer.fill"),
	preset("Tea", 200, DrinkTea, "mug.fill"),
	preset("Juice", 200, DrinkJuice, "wineglass"),
	preset("Milk", 250, DrinkMilk, "waterbottle.fill"),
	preset("Boba", 500, DrinkTea, "bubbles.and.sparkles.fill"),
	preset("Gatorade", 350, DrinkOther, "figure.run"),
	preset("Protein Shake", 414, DrinkMilk, "figure.strengthtraining.traditional"),
}
