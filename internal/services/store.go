package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/db"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type StoreService interface {
	ListItems(ctx context.Context) ([]*types.StoreItem, error)
	// PurchaseItem deducts coins and delivers the item atomically. Buying a
	// plant seed plants it in the garden.
	PurchaseItem(ctx context.Context, userID, itemID uuid.UUID) (*types.GamificationProfile, error)
}

type storeService struct {
	db          *gorm.DB
	log         *logger.Logger
	itemRepo    repos.StoreItemRepo
	profileRepo repos.ProfileRepo
	plantRepo   repos.PlantRepo
	historyRepo repos.HistoryRepo
}

func NewStoreService(
	gdb *gorm.DB,
	baseLog *logger.Logger,
	itemRepo repos.StoreItemRepo,
	profileRepo repos.ProfileRepo,
	plantRepo repos.PlantRepo,
	historyRepo repos.HistoryRepo,
) StoreService {
	return &storeService{
		db:          gdb,
		log:         baseLog.With("service", "StoreService"),
		itemRepo:    itemRepo,
		profileRepo: profileRepo,
		plantRepo:   plantRepo,
		historyRepo: historyRepo,
	}
}

func (ss *storeService) ListItems(ctx context.Context) ([]*types.StoreItem, error) {
	return ss.itemRepo.ListAvailable(ctx, nil)
}

func (ss *storeService) PurchaseItem(ctx context.Context, userID, itemID uuid.UUID) (*types.GamificationProfile, error) {
	item, err := ss.itemRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsAvailable {
		return nil, apierr.NotFound(fmt.Errorf("store item %s not found", itemID))
	}

	now := time.Now().UTC()
	var updated *types.GamificationProfile
	err = db.RunSerializable(ctx, ss.db, func(tx *gorm.DB) error {
		profile, err := ss.profileRepo.Get(ctx, tx, userID)
		if err != nil {
			return err
		}
		if profile == nil {
			return apierr.NotFound(fmt.Errorf("gamification profile for user %s not found", userID))
		}
		if profile.Coins < item.CostInCoins {
			return apierr.PreconditionFailed(fmt.Errorf("not enough coins: have %d, need %d", profile.Coins, item.CostInCoins))
		}
		profile.Coins -= item.CostInCoins
		profile.UpdatedAt = now

		if item.Category == types.StoreItemPlantSeed {
			plant, err := ss.plantRepo.Create(ctx, tx, &types.VirtualPlant{
				ID:            uuid.New(),
				UserID:        userID,
				PlantType:     item.ItemValue,
				LastWateredAt: now,
				CreatedAt:     now,
			})
			if err != nil {
				return err
			}
			if profile.SelectedPlantInstanceID == nil {
				plantID := plant.ID
				profile.SelectedPlantInstanceID = &plantID
			}
		}

		itemID := item.ID
		if err := ss.historyRepo.Append(ctx, tx, &types.GamificationHistoryEntry{
			UserID:          userID,
			Timestamp:       now,
			EventType:       types.HistoryStorePurchase,
			CoinsChange:     -item.CostInCoins,
			RelatedEntityID: &itemID,
			Description:     fmt.Sprintf("Purchased %s", item.Name),
		}); err != nil {
			return err
		}
		if err := ss.profileRepo.Save(ctx, tx, profile); err != nil {
			return err
		}
		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
