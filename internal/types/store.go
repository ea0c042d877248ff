package types

import (
	"time"

	"github.com/google/uuid"
)

type StoreItemCategory string

const (
	StoreItemPlantSeed StoreItemCategory = "PLANT_SEED"
	StoreItemPlantFood StoreItemCategory = "PLANT_FOOD"
	StoreItemCosmetic  StoreItemCategory = "COSMETIC"
)

type StoreItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string            `gorm:"not null;column:name" json:"name"`
	Description string            `gorm:"column:description" json:"description"`
	CostInCoins int64             `gorm:"not null;column:cost_in_coins" json:"cost_in_coins"`
	Category    StoreItemCategory `gorm:"not null;column:category" json:"category"`
	ItemValue   string            `gorm:"column:item_value" json:"item_value"`
	ImageURL    string            `gorm:"column:image_url" json:"image_url"`
	IsAvailable bool              `gorm:"not null;default:true;column:is_available" json:"is_available"`
	CreatedAt   time.Time         `gorm:"not null;default:now()" json:"created_at"`
}

func (StoreItem) TableName() string {
	return "store_item"
}

// VirtualPlant is one plant instance in a user's garden.
type VirtualPlant struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	PlantType     string    `gorm:"not null;column:plant_type" json:"plant_type"`
	GrowthStage   int64     `gorm:"not null;default:0;column:growth_stage" json:"growth_stage"`
	GrowthPoints  int64     `gorm:"not null;default:0;column:growth_points" json:"growth_points"`
	LastWateredAt time.Time `gorm:"not null;column:last_watered_at" json:"last_watered_at"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (VirtualPlant) TableName() string {
	return "virtual_plant"
}
