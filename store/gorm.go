package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ChathunKurera/hydratrack/models"
)

// Gorm is the Postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm { return &Gorm{db: db} }

// ---------- Drinks ----------

func (s *Gorm) InsertDrink(ctx context.Context, d *models.DrinkEntry) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *Gorm) UpdateDrink(ctx context.Context, d *models.DrinkEntry) error {
	return s.db.WithContext(ctx).Save(d).Error
}

func (s *Gorm) DeleteDrink(ctx context.Context, userID uint, id uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.DrinkEntry{}).Error
}

func (s *Gorm) DrinkByID(ctx context.Context, userID uint, id uuid.UUID) (*models.DrinkEntry, error) {
	var d models.DrinkEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Gorm) DrinksBetween(ctx context.Context, userID uint, start, end time.Time) ([]models.DrinkEntry, error) {
	var drinks []models.DrinkEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Order("timestamp ASC").
		Find(&drinks).Error
	if err != nil {
		return nil, err
	}
	return drinks, nil
}

func (s *Gorm) EarliestDrink(ctx context.Context, userID uint) (*models.DrinkEntry, error) {
	var d models.DrinkEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Gorm) LatestDrink(ctx context.Context, userID uint) (*models.DrinkEntry, error) {
	var d models.DrinkEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Gorm) TotalEffectiveHydration(ctx context.Context, userID uint) (int, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.DrinkEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(effective_hydration_ml), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// ---------- Profile ----------

func (s *Gorm) Profile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Gorm) SaveProfile(ctx context.Context, p *models.UserProfile) error {
	return s.db.WithContext(ctx).Save(p).Error
}

// ---------- Overrides ----------

func (s *Gorm) OverrideForDate(ctx context.Context, userID uint, date time.Time) (*models.DailyGoalOverride, error) {
	var o models.DailyGoalOverride
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Gorm) UpsertOverride(ctx context.Context, userID uint, date time.Time, goalMl int) error {
	var existing models.DailyGoalOverride
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&existing).Error
	if err == nil {
		existing.GoalMl = goalMl
		return s.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.WithContext(ctx).Create(&models.DailyGoalOverride{
		UserID: userID,
		Date:   date,
		GoalMl: goalMl,
	}).Error
}

func (s *Gorm) DeleteOverride(ctx context.Context, userID uint, date time.Time) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.DailyGoalOverride{}).Error
}

// ---------- Goal history ----------

func (s *Gorm) LatestGoalOnOrBefore(ctx context.Context, userID uint, date time.Time) (*models.GoalHistory, error) {
	var h models.GoalHistory
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND effective_date <= ?", userID, date).
		Order("effective_date DESC").
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Gorm) UpsertGoalHistory(ctx context.Context, userID uint, effectiveDate time.Time, goalMl int) error {
	var existing models.GoalHistory
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND effective_date = ?", userID, effectiveDate).
		First(&existing).Error
	if err == nil {
		existing.GoalMl = goalMl
		return s.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.WithContext(ctx).Create(&models.GoalHistory{
		UserID:        userID,
		EffectiveDate: effectiveDate,
		GoalMl:        goalMl,
	}).Error
}

func (s *Gorm) HasGoalHistory(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.GoalHistory{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ---------- Achievement unlocks ----------

func (s *Gorm) IsUnlocked(ctx context.Context, userID uint, achievementID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.AchievementUnlock{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Gorm) InsertUnlock(ctx context.Context, u *models.AchievementUnlock) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *Gorm) Unlocks(ctx context.Context, userID uint) ([]models.AchievementUnlock, error) {
	var unlocks []models.AchievementUnlock
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&unlocks).Error
	if err != nil {
		return nil, err
	}
	return unlocks, nil
}

func (s *Gorm) CountUnseenUnlocks(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.AchievementUnlock{}).
		Where("user_id = ? AND has_been_seen = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *Gorm) MarkUnlocksSeen(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.AchievementUnlock{}).
		Where("user_id = ? AND has_been_seen = ?", userID, false).
		Update("has_been_seen", true).Error
}
