package migration

import (
	"context"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	"github.com/alphaseam/donorbox-backend/internal/domain/port/persistence"
)

// Default causes seeded into an empty database
var defaultCauses = []struct {
	title            string
	description      string
	targetMinorUnits int64
}{
	{"General Fund", "Unrestricted donations applied where the need is greatest", 10000000},
	{"Education Support", "School fees, books and supplies for underprivileged children", 5000000},
	{"Healthcare Access", "Medical care and medicine for families who cannot afford them", 5000000},
	{"Disaster Relief", "Emergency aid for communities hit by floods and earthquakes", 7500000},
}

// SeedDefaultCauses creates the default causes if the causes table is empty
func SeedDefaultCauses(ctx context.Context, causeRepo persistence.CauseRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) error {
	existing, err := causeRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := timeProvider.Now()
	for _, c := range defaultCauses {
		cause := &entity.Cause{
			Title:                  c.title,
			Description:            c.description,
			TargetAmountMinorUnits: c.targetMinorUnits,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if err := causeRepo.Create(ctx, cause); err != nil {
			return err
		}
	}

	logger.Info("Seeded default causes", map[string]any{
		"count": len(defaultCauses),
	})
	return nil
}
