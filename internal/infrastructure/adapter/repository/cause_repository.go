package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CauseRepository implements persistence.CauseRepository using GORM
type CauseRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewCauseRepository creates a new CauseRepository instance
func NewCauseRepository(db *gorm.DB, logger coreport.Logger) *CauseRepository {
	return &CauseRepository{
		db:     db,
		logger: logger,
	}
}

func causeModelToEntity(m *model.Cause) *entity.Cause {
	return &entity.Cause{
		ID:                      m.ID,
		Title:                   m.Title,
		Description:             m.Description,
		TargetAmountMinorUnits:  m.TargetAmountMinorUnits,
		CurrentAmountMinorUnits: m.CurrentAmountMinorUnits,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}

func (r *CauseRepository) handleDatabaseError(operation string, err error, causeID uint64) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"cause_id": causeID,
		"error":    err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrCauseNotFound
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new cause and assigns its ID
func (r *CauseRepository) Create(ctx context.Context, cause *entity.Cause) error {
	causeModel := model.Cause{
		Title:                   cause.Title,
		Description:             cause.Description,
		TargetAmountMinorUnits:  cause.TargetAmountMinorUnits,
		CurrentAmountMinorUnits: cause.CurrentAmountMinorUnits,
		CreatedAt:               cause.CreatedAt,
		UpdatedAt:               cause.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&causeModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating cause", result.Error, 0)
	}

	cause.ID = causeModel.ID
	return nil
}

// GetByID retrieves a cause by ID
func (r *CauseRepository) GetByID(ctx context.Context, id uint64) (*entity.Cause, error) {
	var causeModel model.Cause
	result := r.db.WithContext(ctx).First(&causeModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting cause", result.Error, id)
	}
	return causeModelToEntity(&causeModel), nil
}

// ListAll retrieves every cause ordered by title
func (r *CauseRepository) ListAll(ctx context.Context) ([]*entity.Cause, error) {
	var models []model.Cause
	result := r.db.WithContext(ctx).Order("title ASC").Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing causes", result.Error, 0)
	}

	causes := make([]*entity.Cause, 0, len(models))
	for i := range models {
		causes = append(causes, causeModelToEntity(&models[i]))
	}
	return causes, nil
}

// AddToCurrentAmount increments the raised total in a single SQL expression.
// The increment happens in the database, never as read-modify-write, so
// concurrent completions of donations to the same cause cannot lose updates.
func (r *CauseRepository) AddToCurrentAmount(ctx context.Context, id uint64, amountMinorUnits int64) error {
	result := r.db.WithContext(ctx).Model(&model.Cause{}).
		Where("id = ?", id).
		UpdateColumn("current_amount_minor_units", gorm.Expr("current_amount_minor_units + ?", amountMinorUnits))
	if result.Error != nil {
		return r.handleDatabaseError("incrementing cause amount", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrCauseNotFound
	}

	r.logger.Info("Cause raised amount incremented", map[string]any{
		"cause_id":           id,
		"amount_minor_units": amountMinorUnits,
	})
	return nil
}
