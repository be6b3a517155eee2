package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	TableStorage          = "storage"
	TableStorageMovements = "storage_movements"
)

// Provenance of a storage item.
const (
	StorageTypeBought  = "comprado"
	StorageTypeDonated = "doado"
)

// IsValidStorageType accepts only the two provenance values.
func IsValidStorageType(t string) bool {
	return t == StorageTypeBought || t == StorageTypeDonated
}

// IsDonation classifies a provenance string by its "doa" prefix, case-insensitively.
func IsDonation(t string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(t)), "doa")
}

// StorageItem is one inventory line of a unit. The amount on hand is never
// stored: it is always InitialQuantity - UsedQuantity.
type StorageItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UnitID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Type            string          `gorm:"not null"`
	MeasureUnit     string          `gorm:"not null;default:''"`
	InitialQuantity int             `gorm:"not null"`
	UsedQuantity    int             `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (StorageItem) TableName() string { return TableStorage }

func (s *StorageItem) CurrentQuantity() int {
	return s.InitialQuantity - s.UsedQuantity
}

// ValidateQuantities checks 0 <= used <= initial.
func ValidateQuantities(initial, used int) error {
	if initial < 0 {
		return Validationf("initial_quantity must be greater than or equal to 0")
	}
	if used < 0 {
		return Validationf("used_quantity must be greater than or equal to 0")
	}
	if used > initial {
		return Validationf("used_quantity cannot be greater than initial_quantity")
	}
	return nil
}

// Consume returns the used quantity after taking requested units out of stock.
func (s *StorageItem) Consume(requested int) (int, error) {
	if requested <= 0 {
		return 0, Validationf("%s: requested quantity must be greater than 0", s.Name)
	}
	next := s.UsedQuantity + requested
	if next > s.InitialQuantity {
		return 0, Validationf("%s: used quantity exceeds initial quantity. Initial: %d, Requested: %d",
			s.Name, s.InitialQuantity, next)
	}
	return next, nil
}

// Movement kinds.
const (
	MovementEntry = "entry"
	MovementExit  = "exit"
)

// StorageMovement is the append-only history of entries and exits.
type StorageMovement struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UnitID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	StorageID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name        string         `gorm:"not null"`
	Kind        string         `gorm:"not null"`
	Quantity    int            `gorm:"not null"`
	Responsible string         `gorm:"not null"`
	Date        datatypes.Date `gorm:"not null"`
	Supplier    *string
	Invoice     *string
	Purpose     *string
	Notes       *string
	CreatedAt   time.Time
}

func (StorageMovement) TableName() string { return TableStorageMovements }
