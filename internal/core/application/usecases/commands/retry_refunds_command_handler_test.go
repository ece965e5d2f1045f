package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/refund"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingTask(t *testing.T) *refund.RefundTask {
	t.Helper()
	amount, err := kernel.NewMoney(100)
	require.NoError(t, err)
	orderID := kernel.NewUUID()
	task, err := refund.NewRefundTask(orderID, kernel.NewUUID(), amount, "refund:"+orderID.String(), time.Now())
	require.NoError(t, err)
	return task
}

func TestRetryRefundsCommandHandler_Handle_MixedOutcomes(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRetryRefundsCommand()

	settling := pendingTask(t)
	failing := pendingTask(t)

	taskRepo := new(MockRefundTaskRepository)
	uow := new(MockUoW)
	wallet := new(MockWalletLedger)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RefundTaskRepository").Return(taskRepo).Once(),
		taskRepo.On("GetAllPending", ctx).Return([]*refund.RefundTask{settling, failing}, nil).Once(),
		wallet.On("Credit", ctx, settling.CustomerID(), settling.Amount(), settling.IdempotencyKey()).
			Return(nil).
			Once(),
		taskRepo.On("Update", ctx, settling).Return(nil).Once(),
		wallet.On("Credit", ctx, failing.CustomerID(), failing.Amount(), failing.IdempotencyKey()).
			Return(errors.New("wallet timeout")).
			Once(),
		taskRepo.On("Update", ctx, failing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRefundUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRetryRefundsCommandHandler(factory, wallet)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, settling.IsPending())
	assert.Equal(t, 1, settling.Attempts())
	assert.True(t, failing.IsPending())
	assert.Equal(t, 2, failing.Attempts())
	taskRepo.AssertExpectations(t)
	wallet.AssertExpectations(t)
}

func TestRetryRefundsCommandHandler_Handle_NoPendingTasks(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRetryRefundsCommand()

	taskRepo := new(MockRefundTaskRepository)
	uow := new(MockUoW)
	wallet := new(MockWalletLedger)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RefundTaskRepository").Return(taskRepo).Once(),
		taskRepo.On("GetAllPending", ctx).Return([]*refund.RefundTask{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRefundUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRetryRefundsCommandHandler(factory, wallet)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	wallet.AssertNotCalled(t, "Credit", ctx, mock.Anything, mock.Anything, mock.Anything)
}

func TestRetryRefundsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RetryRefundsCommand{} // not constructed properly

	factory := new(MockRefundUoWFactory)
	handler := commands.NewRetryRefundsCommandHandler(factory, new(MockWalletLedger))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrRetryRefundsCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
