package gamification

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

// SeedFile is the YAML catalog of platform-authored content: system
// challenges, badge definitions and store items. Entries carry fixed IDs so
// reseeding on every boot is an upsert, not a duplication.
type SeedFile struct {
	Challenges []ChallengeSeed `yaml:"challenges"`
	Badges     []BadgeSeed     `yaml:"badges"`
	StoreItems []StoreItemSeed `yaml:"store_items"`
}

type ChallengeSeed struct {
	ID          uuid.UUID `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Period      string    `yaml:"period"`
	Type        string    `yaml:"type"`
	TargetValue int64     `yaml:"target_value"`
	Reward      struct {
		Kind          string     `yaml:"kind"`
		Amount        int64      `yaml:"amount"`
		BadgeID       *uuid.UUID `yaml:"badge_id"`
		BadgeName     string     `yaml:"badge_name"`
		BadgeImageURL string     `yaml:"badge_image_url"`
		Text          string     `yaml:"text"`
	} `yaml:"reward"`
}

type BadgeSeed struct {
	ID           uuid.UUID `yaml:"id"`
	Name         string    `yaml:"name"`
	Description  string    `yaml:"description"`
	ImageURL     string    `yaml:"image_url"`
	CriteriaText string    `yaml:"criteria"`
	RewardXP     int64     `yaml:"reward_xp"`
	RewardCoins  int64     `yaml:"reward_coins"`
	IsHidden     bool      `yaml:"is_hidden"`
}

type StoreItemSeed struct {
	ID          uuid.UUID `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Category    string    `yaml:"category"`
	ItemValue   string    `yaml:"item_value"`
	CostInCoins int64     `yaml:"cost_in_coins"`
	ImageURL    string    `yaml:"image_url"`
	IsAvailable bool      `yaml:"is_available"`
}

type Seeder struct {
	log        *logger.Logger
	challenges repos.ChallengeRepo
	badges     repos.BadgeDefinitionRepo
	storeItems repos.StoreItemRepo
}

func NewSeeder(baseLog *logger.Logger, challenges repos.ChallengeRepo, badges repos.BadgeDefinitionRepo, storeItems repos.StoreItemRepo) *Seeder {
	return &Seeder{
		log:        baseLog.With("service", "Seeder"),
		challenges: challenges,
		badges:     badges,
		storeItems: storeItems,
	}
}

func LoadSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seeds SeedFile
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seeds, nil
}

// Apply inserts seed entries that do not exist yet. Existing rows are left
// untouched so manual tweaks in an environment survive restarts.
func (s *Seeder) Apply(ctx context.Context, seeds *SeedFile, now time.Time) error {
	for _, seed := range seeds.Challenges {
		def, err := s.challengeFromSeed(seed, now)
		if err != nil {
			return fmt.Errorf("challenge seed %q: %w", seed.Name, err)
		}
		existing, err := s.challenges.GetByID(ctx, nil, def.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := s.challenges.Create(ctx, nil, def); err != nil {
			return err
		}
		s.log.Info("seeded system challenge", "name", def.Name)
	}

	existingBadges, err := s.badges.ListAll(ctx, nil)
	if err != nil {
		return err
	}
	knownBadges := make(map[uuid.UUID]bool, len(existingBadges))
	for _, b := range existingBadges {
		knownBadges[b.ID] = true
	}
	for _, seed := range seeds.Badges {
		if knownBadges[seed.ID] {
			continue
		}
		if _, err := s.badges.Create(ctx, nil, &types.BadgeDefinition{
			ID:           seed.ID,
			Name:         seed.Name,
			Description:  seed.Description,
			ImageURL:     seed.ImageURL,
			CriteriaText: seed.CriteriaText,
			RewardXP:     seed.RewardXP,
			RewardCoins:  seed.RewardCoins,
			IsHidden:     seed.IsHidden,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
		s.log.Info("seeded badge", "name", seed.Name)
	}

	for _, seed := range seeds.StoreItems {
		existing, err := s.storeItems.GetByID(ctx, nil, seed.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := s.storeItems.Create(ctx, nil, &types.StoreItem{
			ID:          seed.ID,
			Name:        seed.Name,
			Description: seed.Description,
			Category:    types.StoreItemCategory(seed.Category),
			ItemValue:   seed.ItemValue,
			CostInCoins: seed.CostInCoins,
			ImageURL:    seed.ImageURL,
			IsAvailable: seed.IsAvailable,
			CreatedAt:   now,
		}); err != nil {
			return err
		}
		s.log.Info("seeded store item", "name", seed.Name)
	}
	return nil
}

func (s *Seeder) challengeFromSeed(seed ChallengeSeed, now time.Time) (*types.ChallengeDefinition, error) {
	if seed.ID == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	period := types.ChallengePeriod(seed.Period)
	if !period.Valid() {
		return nil, fmt.Errorf("invalid period %q", seed.Period)
	}
	eventType := types.ChallengeEventType(seed.Type)
	if !eventType.Valid() {
		return nil, fmt.Errorf("invalid type %q", seed.Type)
	}
	if seed.TargetValue <= 0 {
		return nil, fmt.Errorf("target_value must be positive")
	}

	var reward types.Reward
	switch types.RewardKind(seed.Reward.Kind) {
	case types.RewardXP:
		reward = types.XPReward(seed.Reward.Amount)
	case types.RewardCoins:
		reward = types.CoinsReward(seed.Reward.Amount)
	case types.RewardBadge:
		if seed.Reward.BadgeID == nil {
			return nil, fmt.Errorf("badge reward missing badge_id")
		}
		reward = types.BadgeReward(*seed.Reward.BadgeID, seed.Reward.BadgeName, seed.Reward.BadgeImageURL)
	case types.RewardText:
		reward = types.TextReward(seed.Reward.Text)
	default:
		return nil, fmt.Errorf("invalid reward kind %q", seed.Reward.Kind)
	}
	if err := reward.Validate(); err != nil {
		return nil, err
	}

	return &types.ChallengeDefinition{
		ID:                      seed.ID,
		Name:                    seed.Name,
		Description:             seed.Description,
		CreatorUID:              types.SystemCreatorUID,
		Scope:                   types.ChallengeScopePersonal,
		Reward:                  reward,
		Period:                  period,
		Type:                    eventType,
		TargetValue:             seed.TargetValue,
		IsActiveSystemChallenge: true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}, nil
}
