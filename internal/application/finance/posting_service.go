package finance

import (
	"context"
	"fmt"

	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PostingInput describes the financial side of one reception
type PostingInput struct {
	BranchID      uuid.UUID
	SupplierID    uuid.UUID
	UserID        uuid.UUID
	PaymentMethod finance.PaymentMethod
	Amount        decimal.Decimal // Reception monetary total, always positive
	OrderNumber   string
	CashShiftID   *uuid.UUID
	BankAccountID *uuid.UUID
}

// PostingService resolves a payment method to its channel, validates the
// channel-specific reference, and writes exactly one financial movement per
// reception. It is invoked inside the reception's transaction through the
// transactional repositories it is handed.
type PostingService struct{}

// NewPostingService creates a PostingService
func NewPostingService() *PostingService {
	return &PostingService{}
}

// PostReception validates the channel and writes the reception's movement.
// Register channel: auto-resolves the branch's open shift when no shift id
// is supplied, fails with invalid-state when none is open, and forbids an
// explicit bank account. Bank channel: requires a bank account id and
// forbids a shift id. The none channel (store credit) posts zero deltas.
func (s *PostingService) PostReception(
	ctx context.Context,
	shifts finance.CashShiftRepository,
	accounts finance.BankAccountRepository,
	movements finance.FinancialMovementRepository,
	input PostingInput,
) (*finance.FinancialMovement, error) {
	log := logger.FromContext(ctx)

	if input.Amount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION", "posting amount cannot be negative")
	}

	channel := input.PaymentMethod.ResolveChannel()
	deltaCash := decimal.Zero
	deltaBank := decimal.Zero
	var shiftID *uuid.UUID
	var accountID *uuid.UUID

	switch channel {
	case finance.ChannelRegister:
		if input.BankAccountID != nil {
			return nil, shared.NewDomainError("INVALID_STATE",
				"register-channel payment cannot reference a bank account")
		}
		shift, err := s.resolveShift(ctx, shifts, input)
		if err != nil {
			return nil, err
		}
		shiftID = &shift.ID
		deltaCash = input.Amount.Neg()

	case finance.ChannelBank:
		if input.CashShiftID != nil {
			return nil, shared.NewDomainError("INVALID_STATE",
				"bank-channel payment cannot reference a register shift")
		}
		if input.BankAccountID == nil {
			return nil, shared.NewDomainError("INVALID_STATE",
				"bank-channel payment requires a bank account")
		}
		account, err := accounts.FindByID(ctx, *input.BankAccountID)
		if err != nil {
			return nil, err
		}
		accountID = &account.ID
		deltaBank = input.Amount.Neg()

	case finance.ChannelNone:
		if input.CashShiftID != nil || input.BankAccountID != nil {
			return nil, shared.NewDomainError("INVALID_STATE",
				"store-credit payment cannot reference a shift or bank account")
		}
	}

	movement, err := finance.NewFinancialMovement(
		input.BranchID,
		finance.ClassificationCostOfGoods,
		input.PaymentMethod,
		deltaCash,
		deltaBank,
		fmt.Sprintf("PO:%s", input.OrderNumber),
		shiftID,
		accountID,
		input.SupplierID,
		input.UserID,
	)
	if err != nil {
		return nil, err
	}

	if err := movements.Save(ctx, movement); err != nil {
		return nil, err
	}

	log.Info("financial movement posted",
		zap.String("movement_id", movement.ID.String()),
		zap.String("channel", string(channel)),
		zap.String("reference", movement.Reference),
		zap.String("amount", input.Amount.String()))

	return movement, nil
}

// resolveShift returns the shift a register-channel movement posts to
func (s *PostingService) resolveShift(
	ctx context.Context,
	shifts finance.CashShiftRepository,
	input PostingInput,
) (*finance.CashShift, error) {
	if input.CashShiftID != nil {
		shift, err := shifts.FindByID(ctx, *input.CashShiftID)
		if err != nil {
			return nil, err
		}
		if !shift.IsOpen() {
			return nil, shared.NewDomainError("INVALID_STATE", "referenced cash shift is not open")
		}
		if shift.BranchID != input.BranchID {
			return nil, shared.NewDomainError("INVALID_STATE", "referenced cash shift belongs to another branch")
		}
		return shift, nil
	}

	shift, err := shifts.FindOpenByBranch(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "no open cash shift for branch")
	}
	return shift, nil
}
