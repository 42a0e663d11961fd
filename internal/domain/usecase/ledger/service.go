package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

const (
	// DefaultHistoryLimit is used when a caller asks for no explicit limit
	DefaultHistoryLimit = 20
	// MaxHistoryLimit caps a single history page
	MaxHistoryLimit = 100
)

// Service implements the wallet ledger
type Service struct {
	uow          persistence.UnitOfWork
	serializer   *Serializer
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	historyLimit int
}

var _ usecase.LedgerUseCase = (*Service)(nil)

// NewLedgerService creates a new ledger service
func NewLedgerService(
	uow persistence.UnitOfWork,
	serializer *Serializer,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	historyLimit int,
) *Service {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Service{
		uow:          uow,
		serializer:   serializer,
		timeProvider: timeProvider,
		logger:       logger,
		historyLimit: historyLimit,
	}
}

// AdjustBalance applies one change in its own unit of work, serialized per user
func (s *Service) AdjustBalance(ctx context.Context, req usecase.AdjustRequest) (*entity.Transaction, error) {
	var txn *entity.Transaction
	err := s.serializer.Run(ctx, req.UserID, func(ctx context.Context) error {
		return s.uow.Do(ctx, func(txCtx context.Context) error {
			var err error
			txn, err = s.Post(txCtx, req)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Post applies the change with a conditional update and records exactly one
// transaction row, using the unit of work carried by ctx
func (s *Service) Post(ctx context.Context, req usecase.AdjustRequest) (*entity.Transaction, error) {
	if req.UserID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if err := req.Type.Validate(); err != nil {
		return nil, err
	}

	balanceAfter, err := s.uow.GetUserRepository(ctx).AdjustBalance(ctx, req.UserID, req.Amount)
	if err != nil {
		var insufficient *errs.InsufficientFundsError
		if errors.As(err, &insufficient) {
			s.logger.Warn("Balance adjustment rejected", insufficient.LogFields())
			return nil, err
		}
		if errs.IsNotFoundError(err) {
			return nil, err
		}
		return nil, errs.NewLedgerError(req.UserID, string(req.Type), entity.AmountInCentsToString(req.Amount), "balance update failed", err)
	}

	txn, err := entity.NewTransaction(req.UserID, req.Type, req.Amount, balanceAfter, req.Description, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	if err := s.uow.GetTransactionRepository(ctx).Create(ctx, txn); err != nil {
		return nil, errs.NewLedgerError(req.UserID, string(req.Type), txn.GetAmount(), "failed to record transaction", err)
	}

	s.logger.Info("Balance adjusted successfully", map[string]any{
		"user_id":       req.UserID,
		"type":          string(req.Type),
		"amount":        txn.GetAmount(),
		"balance_after": txn.GetBalanceAfter(),
	})

	return txn, nil
}

// Exclusive runs fn on the user's queue
func (s *Service) Exclusive(ctx context.Context, userID uint64, fn func(ctx context.Context) error) error {
	return s.serializer.Run(ctx, userID, fn)
}

// AdminCredit adds funds to a wallet on behalf of an administrator
func (s *Service) AdminCredit(ctx context.Context, actor entity.Actor, userID uint64, amount int64) (*entity.Transaction, error) {
	if !actor.IsAdmin() {
		return nil, errs.ErrUnauthorized
	}
	if amount <= 0 {
		return nil, errs.ErrNegativeAmount
	}

	txn, err := s.AdjustBalance(ctx, usecase.AdjustRequest{
		UserID:      userID,
		Amount:      amount,
		Type:        entity.TypeAdminCredit,
		Description: "Admin credit",
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin credit applied", map[string]any{
		"admin_id": actor.UserID,
		"user_id":  userID,
		"amount":   txn.GetAmount(),
	})
	return txn, nil
}

// Transfer moves amount from the actor's wallet to toUserID in one unit of work
func (s *Service) Transfer(ctx context.Context, actor entity.Actor, toUserID uint64, amount int64) (*usecase.TransferResult, error) {
	if toUserID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if toUserID == actor.UserID {
		return nil, errs.ErrSelfRelation
	}
	if amount <= 0 {
		return nil, errs.ErrNegativeAmount
	}

	debit := usecase.AdjustRequest{
		UserID:      actor.UserID,
		Amount:      -amount,
		Type:        entity.TypeTransferOut,
		Description: fmt.Sprintf("Transfer to user %d", toUserID),
	}
	credit := usecase.AdjustRequest{
		UserID:      toUserID,
		Amount:      amount,
		Type:        entity.TypeTransferIn,
		Description: fmt.Sprintf("Transfer from user %d", actor.UserID),
	}

	// Rows are updated in id order so opposite transfers cannot deadlock
	first, second := &debit, &credit
	if toUserID < actor.UserID {
		first, second = second, first
	}

	result := &usecase.TransferResult{}
	err := s.serializer.Run(ctx, actor.UserID, func(ctx context.Context) error {
		return s.uow.Do(ctx, func(txCtx context.Context) error {
			exists, err := s.uow.GetUserRepository(txCtx).Exists(txCtx, toUserID)
			if err != nil {
				return err
			}
			if !exists {
				return errs.ErrUserNotFound
			}

			for _, req := range []*usecase.AdjustRequest{first, second} {
				txn, err := s.Post(txCtx, *req)
				if err != nil {
					return err
				}
				if req.Type == entity.TypeTransferOut {
					result.Debit = txn
				} else {
					result.Credit = txn
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transfer completed successfully", map[string]any{
		"from_user_id": actor.UserID,
		"to_user_id":   toUserID,
		"amount":       entity.AmountInCentsToString(amount),
	})
	return result, nil
}

// History returns the newest transactions of a wallet the actor may see
func (s *Service) History(ctx context.Context, actor entity.Actor, userID uint64, limit int) ([]*entity.Transaction, error) {
	if !actor.CanManage(userID) {
		return nil, errs.ErrUnauthorized
	}
	if limit <= 0 {
		limit = s.historyLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	exists, err := s.uow.GetUserRepository(ctx).Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.ErrUserNotFound
	}

	return s.uow.GetTransactionRepository(ctx).ListByUser(ctx, userID, limit)
}

// GetBalance returns the wallet balance in cents
func (s *Service) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, errs.ErrInvalidUserID
	}
	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Balance(), nil
}

// Shutdown drains the per-user queues
func (s *Service) Shutdown() {
	s.serializer.Shutdown()
}
