package models

import (
	"testing"
	"time"
)

func TestEffectiveHydrationRounding(t *testing.T) {
	cases := []struct {
		volume int
		t      DrinkType
		want   int
	}{
		{250, DrinkWater, 250},
		{333, DrinkCoffee, 283}, // 283.05 rounds down
		{125, DrinkTea, 119},    // 118.75 rounds up
		{100, DrinkSoda, 80},
		{200, DrinkJuice, 180},
		{200, DrinkMilk, 180},
		{200, DrinkOther, 180},
	}
	for _, c := range cases {
		if got := EffectiveHydration(c.volume, c.t); got != c.want {
			t.Errorf("EffectiveHydration(%d, %s) = %d, want %d", c.volume, c.t, got, c.want)
		}
	}
}

func TestNewDrinkEntryDefaults(t *testing.T) {
	ts := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)

	d := NewDrinkEntry(1, 200, DrinkCoffee, "", ts)
	if d.Name != "Coffee" {
		t.Fatalf("default name = %q, want label", d.Name)
	}
	if d.EffectiveHydrationMl != 170 {
		t.Fatalf("effective = %d, want 170", d.EffectiveHydrationMl)
	}

	named := NewDrinkEntry(1, 500, DrinkTea, "Boba", ts)
	if named.Name != "Boba" {
		t.Fatalf("name = %q, want Boba", named.Name)
	}
}

func TestPresetEffectiveHydration(t *testing.T) {
	for _, p := range PresetDrinks {
		if p.EffectiveHydrationMl != EffectiveHydration(p.VolumeMl, p.DrinkType) {
			t.Errorf("preset %q carries stale effective hydration", p.Name)
		}
		if !p.DrinkType.Valid() {
			t.Errorf("preset %q has invalid type %q", p.Name, p.DrinkType)
		}
	}
}

func TestDrinkTypeValidation(t *testing.T) {
	for _, dt := range AllDrinkTypes {
		if !dt.Valid() {
			t.Errorf("%s should be valid", dt)
		}
	}
	if DrinkType("wine").Valid() {
		t.Error("unknown type must be invalid")
	}
}
