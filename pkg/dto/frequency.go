package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/domain"
)

type FrequencyCreate struct {
	UnitID uuid.UUID `json:"unit_id" validate:"required"`
	Amount int       `json:"amount" validate:"min=0"`
	Date   string    `json:"date" validate:"required"`
}

type FrequencyUpdate struct {
	Amount *int    `json:"amount,omitempty" validate:"omitempty,min=0"`
	Date   *string `json:"date,omitempty"`
}

// FrequencyFilter selects records with InitialDate <= date <= FinalDate.
type FrequencyFilter struct {
	InitialDate string
	FinalDate   string
	UnitID      *uuid.UUID
}

type FrequencyRead struct {
	ID        uuid.UUID `json:"id"`
	UnitID    uuid.UUID `json:"unit_id"`
	Amount    int       `json:"amount"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToFrequencyRead(f *domain.Frequency) *FrequencyRead {
	return &FrequencyRead{
		ID:        f.ID,
		UnitID:    f.UnitID,
		Amount:    f.Amount,
		Date:      domain.FormatDate(f.Date),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func ToFrequencyReads(fs []*domain.Frequency) []*FrequencyRead {
	out := make([]*FrequencyRead, 0, len(fs))
	for _, f := range fs {
		out = append(out, ToFrequencyRead(f))
	}
	return out
}
