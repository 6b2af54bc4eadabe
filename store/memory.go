package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChathunKurera/hydratrack/models"
)

const dayKeyFormat = "2006-01-02"

// Memory is a map-backed Store. It backs the service tests and works as a
// throwaway engine for local runs without Postgres.
type Memory struct {
	mu        sync.RWMutex
	drinks    map[uint][]models.DrinkEntry
	profiles  map[uint]models.UserProfile
	overrides map[uint]map[string]models.DailyGoalOverride
	history   map[uint]map[string]models.GoalHistory
	unlocks   map[uint][]models.AchievementUnlock
	nextID    uint
}

func NewMemory() *Memory {
	return &Memory{
		drinks:    make(map[uint][]models.DrinkEntry),
		profiles:  make(map[uint]models.UserProfile),
		overrides: make(map[uint]map[string]models.DailyGoalOverride),
		history:   make(map[uint]map[string]models.GoalHistory),
		unlocks:   make(map[uint][]models.AchievementUnlock),
		nextID:    1,
	}
}

// ---------- Drinks ----------

func (m *Memory) InsertDrink(_ context.Context, d *models.DrinkEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drinks[d.UserID] = append(m.drinks[d.UserID], *d)
	return nil
}

func (m *Memory) UpdateDrink(_ context.Context, d *models.DrinkEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.drinks[d.UserID]
	for i := range list {
		if list[i].ID == d.ID {
			list[i] = *d
			return nil
		}
	}
	m.drinks[d.UserID] = append(list, *d)
	return nil
}

func (m *Memory) DeleteDrink(_ context.Context, userID uint, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.drinks[userID]
	for i := range list {
		if list[i].ID == id {
			m.drinks[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) DrinkByID(_ context.Context, userID uint, id uuid.UUID) (*models.DrinkEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drinks[userID] {
		if d.ID == id {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) DrinksBetween(_ context.Context, userID uint, start, end time.Time) ([]models.DrinkEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.DrinkEntry
	for _, d := range m.drinks[userID] {
		if !d.Timestamp.Before(start) && d.Timestamp.Before(end) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *Memory) EarliestDrink(_ context.Context, userID uint) (*models.DrinkEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var earliest *models.DrinkEntry
	for i := range m.drinks[userID] {
		d := m.drinks[userID][i]
		if earliest == nil || d.Timestamp.Before(earliest.Timestamp) {
			cp := d
			earliest = &cp
		}
	}
	return earliest, nil
}

func (m *Memory) LatestDrink(_ context.Context, userID uint) (*models.DrinkEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *models.DrinkEntry
	for i := range m.drinks[userID] {
		d := m.drinks[userID][i]
		if latest == nil || d.Timestamp.After(latest.Timestamp) {
			cp := d
			latest = &cp
		}
	}
	return latest, nil
}

func (m *Memory) TotalEffectiveHydration(_ context.Context, userID uint) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, d := range m.drinks[userID] {
		total += d.EffectiveHydrationMl
	}
	return total, nil
}

// ---------- Profile ----------

func (m *Memory) Profile(_ context.Context, userID uint) (*models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (m *Memory) SaveProfile(_ context.Context, p *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	}
	m.profiles[p.UserID] = *p
	return nil
}

// ---------- Overrides ----------

func (m *Memory) OverrideForDate(_ context.Context, userID uint, date time.Time) (*models.DailyGoalOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.overrides[userID][date.Format(dayKeyFormat)]
	if !ok {
		return nil, nil
	}
	cp := o
	return &cp, nil
}

func (m *Memory) UpsertOverride(_ context.Context, userID uint, date time.Time, goalMl int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.overrides[userID] == nil {
		m.overrides[userID] = make(map[string]models.DailyGoalOverride)
	}
	m.overrides[userID][date.Format(dayKeyFormat)] = models.DailyGoalOverride{
		UserID: userID,
		Date:   date,
		GoalMl: goalMl,
	}
	return nil
}

func (m *Memory) DeleteOverride(_ context.Context, userID uint, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overrides[userID], date.Format(dayKeyFormat))
	return nil
}

// ---------- Goal history ----------

func (m *Memory) LatestGoalOnOrBefore(_ context.Context, userID uint, date time.Time) (*models.GoalHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *models.GoalHistory
	for _, h := range m.history[userID] {
		if h.EffectiveDate.After(date) {
			continue
		}
		if latest == nil || h.EffectiveDate.After(latest.EffectiveDate) {
			cp := h
			latest = &cp
		}
	}
	return latest, nil
}

func (m *Memory) UpsertGoalHistory(_ context.Context, userID uint, effectiveDate time.Time, goalMl int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.history[userID] == nil {
		m.history[userID] = make(map[string]models.GoalHistory)
	}
	key := effectiveDate.Format(dayKeyFormat)
	if existing, ok := m.history[userID][key]; ok {
		existing.GoalMl = goalMl
		m.history[userID][key] = existing
		return nil
	}
	m.history[userID][key] = models.GoalHistory{
		UserID:        userID,
		EffectiveDate: effectiveDate,
		GoalMl:        goalMl,
		CreatedAt:     time.Now(),
	}
	return nil
}

func (m *Memory) HasGoalHistory(_ context.Context, userID uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.history[userID]) > 0, nil
}

// ---------- Achievement unlocks ----------

func (m *Memory) IsUnlocked(_ context.Context, userID uint, achievementID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.unlocks[userID] {
		if u.AchievementID == achievementID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) InsertUnlock(_ context.Context, u *models.AchievementUnlock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.nextID
	m.nextID++
	m.unlocks[u.UserID] = append(m.unlocks[u.UserID], *u)
	return nil
}

func (m *Memory) Unlocks(_ context.Context, userID uint) ([]models.AchievementUnlock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.AchievementUnlock, len(m.unlocks[userID]))
	copy(out, m.unlocks[userID])
	sort.Slice(out, func(i, j int) bool { return out[i].UnlockedAt.After(out[j].UnlockedAt) })
	return out, nil
}

func (m *Memory) CountUnseenUnlocks(_ context.Context, userID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, u := range m.unlocks[userID] {
		if !u.HasBeenSeen {
			count++
		}
	}
	return count, nil
}

func (m *Memory) MarkUnlocksSeen(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.unlocks[userID] {
		m.unlocks[userID][i].HasBeenSeen = true
	}
	return nil
}
