package donation

import (
	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	gatewayport "github.com/alphaseam/donorbox-backend/internal/domain/port/gateway"
	"github.com/alphaseam/donorbox-backend/internal/domain/port/persistence"
)

// Notifier receives the updated donation after every accepted transition.
// Implemented by the notification dispatcher; kept as an interface so the
// lifecycle manager can be tested without wiring real delivery.
type Notifier interface {
	Dispatch(donation *entity.Donation, orgAddress string)
}

// Service is the donation lifecycle manager: the single authority for
// changing a donation's status and the associated cause total. Both the
// synchronous signature-verify path and the asynchronous reconciliation
// sweep converge on its Transition entry point.
type Service struct {
	uow                  persistence.UnitOfWork
	donationRepo         persistence.DonationRepository
	causeRepo            persistence.CauseRepository
	gateway              gatewayport.PaymentGateway
	notifier             Notifier
	timeProvider         coreport.TimeProvider
	logger               coreport.Logger
	defaultNotifyAddress string
}

// NewService creates the donation lifecycle manager
func NewService(
	uow persistence.UnitOfWork,
	donationRepo persistence.DonationRepository,
	causeRepo persistence.CauseRepository,
	gateway gatewayport.PaymentGateway,
	notifier Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	defaultNotifyAddress string,
) *Service {
	return &Service{
		uow:                  uow,
		donationRepo:         donationRepo,
		causeRepo:            causeRepo,
		gateway:              gateway,
		notifier:             notifier,
		timeProvider:         timeProvider,
		logger:               logger,
		defaultNotifyAddress: defaultNotifyAddress,
	}
}

// effectiveNotifyAddress resolves the org-facing address for a transition
func (s *Service) effectiveNotifyAddress(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return s.defaultNotifyAddress
}
