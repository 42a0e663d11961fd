package commerce

import (
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// ProductCategory is the storage category for product uploads
const ProductCategory = "products"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service implements catalogue, cart, checkout and subscriptions
type Service struct {
	uow          persistence.UnitOfWork
	ledger       usecase.LedgerUseCase
	storage      coreport.FileStorage
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.CommerceUseCase = (*Service)(nil)

// NewCommerceService creates a new commerce service
func NewCommerceService(
	uow persistence.UnitOfWork,
	ledger usecase.LedgerUseCase,
	storage coreport.FileStorage,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		ledger:       ledger,
		storage:      storage,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func pageSize(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageSize
	case limit > maxPageSize:
		return maxPageSize
	default:
		return limit
	}
}
