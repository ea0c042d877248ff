package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

const (
	growthPointsPerWatering = 10
	growthPointsPerStage    = 100
	maxGrowthStage          = 5
)

type GardenService interface {
	ListPlants(ctx context.Context, userID uuid.UUID) ([]*types.VirtualPlant, error)
	SelectPlant(ctx context.Context, userID, plantID uuid.UUID) (*types.GamificationProfile, error)
	// WaterPlants waters every plant in the garden at once and advances
	// their growth.
	WaterPlants(ctx context.Context, userID uuid.UUID) ([]*types.VirtualPlant, error)
}

type gardenService struct {
	db          *gorm.DB
	log         *logger.Logger
	plantRepo   repos.PlantRepo
	profileRepo repos.ProfileRepo
	historyRepo repos.HistoryRepo
}

func NewGardenService(gdb *gorm.DB, baseLog *logger.Logger, plantRepo repos.PlantRepo, profileRepo repos.ProfileRepo, historyRepo repos.HistoryRepo) GardenService {
	return &gardenService{
		db:          gdb,
		log:         baseLog.With("service", "GardenService"),
		plantRepo:   plantRepo,
		profileRepo: profileRepo,
		historyRepo: historyRepo,
	}
}

func (gs *gardenService) ListPlants(ctx context.Context, userID uuid.UUID) ([]*types.VirtualPlant, error) {
	return gs.plantRepo.ListByUser(ctx, nil, userID)
}

func (gs *gardenService) SelectPlant(ctx context.Context, userID, plantID uuid.UUID) (*types.GamificationProfile, error) {
	plant, err := gs.plantRepo.GetByID(ctx, nil, plantID)
	if err != nil {
		return nil, err
	}
	if plant == nil || plant.UserID != userID {
		return nil, apierr.NotFound(fmt.Errorf("plant %s not found", plantID))
	}
	profile, err := gs.profileRepo.Get(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apierr.NotFound(fmt.Errorf("gamification profile for user %s not found", userID))
	}
	profile.SelectedPlantInstanceID = &plant.ID
	profile.UpdatedAt = time.Now().UTC()
	if err := gs.profileRepo.Save(ctx, nil, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (gs *gardenService) WaterPlants(ctx context.Context, userID uuid.UUID) ([]*types.VirtualPlant, error) {
	now := time.Now().UTC()
	var watered []*types.VirtualPlant
	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plants, err := gs.plantRepo.ListByUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(plants) == 0 {
			return apierr.PreconditionFailed(fmt.Errorf("no plants to water"))
		}
		for _, plant := range plants {
			// One growth tick per watering day, no matter how often the
			// button is pressed.
			if sameDay(plant.LastWateredAt, now) {
				continue
			}
			plant.GrowthPoints += growthPointsPerWatering
			for plant.GrowthPoints >= growthPointsPerStage && plant.GrowthStage < maxGrowthStage {
				plant.GrowthPoints -= growthPointsPerStage
				plant.GrowthStage++
			}
			plant.LastWateredAt = now
			if err := gs.plantRepo.Save(ctx, tx, plant); err != nil {
				return err
			}
		}
		if err := gs.historyRepo.Append(ctx, tx, &types.GamificationHistoryEntry{
			UserID:            userID,
			Timestamp:         now,
			EventType:         types.HistoryPlantWatered,
			RelatedEntityType: types.RelatedEntityPlant,
			Description:       fmt.Sprintf("Watered %d plants", len(plants)),
		}); err != nil {
			return err
		}
		watered = plants
		return nil
	})
	if err != nil {
		return nil, err
	}
	return watered, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
