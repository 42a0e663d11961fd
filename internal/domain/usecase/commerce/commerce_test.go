package commerce

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/usecase/ledger"
	coremocks "github.com/amirhossein-jamali/socialhub/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/socialhub/mocks/port/persistence"
)

var fixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

var ctx = context.Background()

func newTestService(t *testing.T) (*Service, *persistencemocks.Repositories, *coremocks.MockFileStorage) {
	uow, repos := persistencemocks.NewMockUnitOfWorkWithRepositories(t)
	logger := coremocks.NewQuietLogger(t)
	clock := coremocks.NewFixedTimeProvider(t, fixedTime)

	serializer := ledger.NewSerializer(logger, 10)
	t.Cleanup(serializer.Shutdown)
	ledgerService := ledger.NewLedgerService(uow, serializer, clock, logger, 0)

	storage := coremocks.NewMockFileStorage(t)
	return NewCommerceService(uow, ledgerService, storage, clock, logger), repos, storage
}
