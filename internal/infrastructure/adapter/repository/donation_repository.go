package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// DonationRepository implements persistence.DonationRepository using GORM
type DonationRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewDonationRepository creates a new DonationRepository instance
func NewDonationRepository(db *gorm.DB, logger coreport.Logger) *DonationRepository {
	return &DonationRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a donation model to a domain entity
func modelToEntity(m *model.Donation) *entity.Donation {
	return &entity.Donation{
		ID:                 m.ID,
		DonorName:          m.DonorName,
		DonorEmail:         m.DonorEmail,
		DonorPhone:         m.DonorPhone,
		Amount:             m.Amount,
		AmountMinorUnits:   m.AmountMinorUnits,
		Currency:           m.Currency,
		CauseID:            m.CauseID,
		Message:            m.Message,
		Status:             entity.DonationStatus(m.Status),
		PaymentID:          m.PaymentID,
		OrderID:            m.OrderID,
		FollowupEmailCount: m.FollowupEmailCount,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *DonationRepository) handleDatabaseError(operation string, err error, donationID uint64) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"donation_id": donationID,
		"error":       err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrDonationNotFound
	}
	if r.errorClassifier.IsConnectionError(err) {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new donation and assigns its ID
func (r *DonationRepository) Create(ctx context.Context, donation *entity.Donation) error {
	donationModel := model.Donation{
		DonorName:          donation.DonorName,
		DonorEmail:         donation.DonorEmail,
		DonorPhone:         donation.DonorPhone,
		Amount:             donation.Amount,
		AmountMinorUnits:   donation.AmountMinorUnits,
		Currency:           donation.Currency,
		CauseID:            donation.CauseID,
		Message:            donation.Message,
		Status:             string(donation.Status),
		PaymentID:          donation.PaymentID,
		OrderID:            donation.OrderID,
		FollowupEmailCount: donation.FollowupEmailCount,
		CreatedAt:          donation.CreatedAt,
		UpdatedAt:          donation.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&donationModel)
	if result.Error != nil {
		if r.errorClassifier.IsConstraintError(result.Error) {
			return errs.ErrCauseNotFound
		}
		return r.handleDatabaseError("creating donation", result.Error, 0)
	}

	donation.ID = donationModel.ID

	r.logger.Info("Donation persisted", map[string]any{
		"donation_id": donation.ID,
		"amount":      donation.Amount,
		"currency":    donation.Currency,
	})
	return nil
}

// GetByID retrieves a donation by ID
func (r *DonationRepository) GetByID(ctx context.Context, id uint64) (*entity.Donation, error) {
	var donationModel model.Donation
	result := r.db.WithContext(ctx).First(&donationModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting donation", result.Error, id)
	}
	return modelToEntity(&donationModel), nil
}

// GetByOrderID retrieves a donation by its gateway order id
func (r *DonationRepository) GetByOrderID(ctx context.Context, orderID string) (*entity.Donation, error) {
	var donationModel model.Donation
	result := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&donationModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting donation by order", result.Error, 0)
	}
	return modelToEntity(&donationModel), nil
}

// UpdateStatus persists a status change together with optional gateway ids
func (r *DonationRepository) UpdateStatus(ctx context.Context, id uint64, status entity.DonationStatus, paymentID, orderID string, updatedAt time.Time) error {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": updatedAt,
	}
	if paymentID != "" {
		updates["payment_id"] = paymentID
	}
	if orderID != "" {
		updates["order_id"] = orderID
	}

	result := r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return r.handleDatabaseError("updating donation status", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrDonationNotFound
	}
	return nil
}

// ClaimCompletion marks the donation COMPLETED only if it is not COMPLETED
// already. The conditional update makes the transition edge a single atomic
// claim: under concurrent completions exactly one caller sees true.
func (r *DonationRepository) ClaimCompletion(ctx context.Context, id uint64, paymentID, orderID string, updatedAt time.Time) (bool, error) {
	updates := map[string]any{
		"status":     string(entity.StatusCompleted),
		"updated_at": updatedAt,
	}
	if paymentID != "" {
		updates["payment_id"] = paymentID
	}
	if orderID != "" {
		updates["order_id"] = orderID
	}

	result := r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("id = ? AND status <> ?", id, string(entity.StatusCompleted)).
		Updates(updates)
	if result.Error != nil {
		return false, r.handleDatabaseError("claiming donation completion", result.Error, id)
	}

	if result.RowsAffected == 0 {
		// Either already COMPLETED or missing; tell the two apart
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Donation{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return false, r.handleDatabaseError("checking donation existence", err, id)
		}
		if count == 0 {
			return false, errs.ErrDonationNotFound
		}
		return false, nil
	}

	return true, nil
}

// AttachOrder stores the gateway order id on a donation
func (r *DonationRepository) AttachOrder(ctx context.Context, id uint64, orderID string, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"order_id":   orderID,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("attaching order to donation", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrDonationNotFound
	}
	return nil
}

// ListAll retrieves every donation, newest first
func (r *DonationRepository) ListAll(ctx context.Context) ([]*entity.Donation, error) {
	var models []model.Donation
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing donations", result.Error, 0)
	}
	return modelsToEntities(models), nil
}

// ListPendingWithOrder retrieves PENDING donations that have a gateway order id
func (r *DonationRepository) ListPendingWithOrder(ctx context.Context) ([]*entity.Donation, error) {
	var models []model.Donation
	result := r.db.WithContext(ctx).
		Where("status = ? AND order_id <> ''", string(entity.StatusPending)).
		Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing pending donations", result.Error, 0)
	}
	return modelsToEntities(models), nil
}

// ListCreatedAfter retrieves donations created after the given time
func (r *DonationRepository) ListCreatedAfter(ctx context.Context, after time.Time) ([]*entity.Donation, error) {
	var models []model.Donation
	result := r.db.WithContext(ctx).Where("created_at > ?", after).Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing recent donations", result.Error, 0)
	}
	return modelsToEntities(models), nil
}

// ListPendingForFollowup retrieves PENDING donations created before the given
// time whose follow-up counter is below maxFollowups
func (r *DonationRepository) ListPendingForFollowup(ctx context.Context, before time.Time, maxFollowups int) ([]*entity.Donation, error) {
	var models []model.Donation
	result := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ? AND followup_email_count < ?",
			string(entity.StatusPending), before, maxFollowups).
		Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing donations for follow-up", result.Error, 0)
	}
	return modelsToEntities(models), nil
}

// IncrementFollowupCount bumps the follow-up counter only while it is below
// the cap. The cap lives in the WHERE clause, so concurrent sweeps cannot
// push past it.
func (r *DonationRepository) IncrementFollowupCount(ctx context.Context, id uint64, cap int, updatedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("id = ? AND followup_email_count < ?", id, cap).
		Updates(map[string]any{
			"followup_email_count": gorm.Expr("followup_email_count + 1"),
			"updated_at":           updatedAt,
		})
	if result.Error != nil {
		return false, r.handleDatabaseError("incrementing follow-up counter", result.Error, id)
	}
	return result.RowsAffected > 0, nil
}

// modelsToEntities converts a slice of donation models to entities
func modelsToEntities(models []model.Donation) []*entity.Donation {
	donations := make([]*entity.Donation, 0, len(models))
	for i := range models {
		donations = append(donations, modelToEntity(&models[i]))
	}
	return donations
}
