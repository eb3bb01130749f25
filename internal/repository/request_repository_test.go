package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmishRehan/Coupon/internal/model"
)

func TestRequestRepository_Insert_Success(t *testing.T) {
	var capturedArgs []any
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			capturedArgs = args
			return &mockRow{scanFn: func(dest ...any) error {
				*dest[0].(*int64) = 42
				return nil
			}}
		},
	}

	repo := NewRequestRepository(mock)
	id, err := repo.Insert(context.Background(), 7, "10% Coffee")

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, []any{int64(7), "10% Coffee"}, capturedArgs)
}

func TestRequestRepository_MarkFulfilled_GuardsRequestedState(t *testing.T) {
	var capturedArgs []any
	tx := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedArgs = arguments
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	repo := NewRequestRepository(&mockPool{})
	ok, err := repo.MarkFulfilled(context.Background(), tx, 42)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.RequestStatusFulfilled, capturedArgs[0])
	assert.Equal(t, int64(42), capturedArgs[1])
	assert.Equal(t, model.RequestStatusRequested, capturedArgs[2], "only requested requests may be fulfilled")
}

func TestRequestRepository_MarkFulfilled_Vanished(t *testing.T) {
	tx := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}

	repo := NewRequestRepository(&mockPool{})
	ok, err := repo.MarkFulfilled(context.Background(), tx, 42)

	require.NoError(t, err, "a vanished request is reported, not errored")
	assert.False(t, ok)
}

func TestRequestRepository_MarkUsed_Success(t *testing.T) {
	var capturedArgs []any
	tx := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedArgs = arguments
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	repo := NewRequestRepository(&mockPool{})
	ok, err := repo.MarkUsed(context.Background(), tx, 42)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.RequestStatusUsed, capturedArgs[0])
}

func TestRequestRepository_ListPending_QueryError(t *testing.T) {
	mock := &mockPool{
		queryFn: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return nil, errors.New("connection refused")
		},
	}

	repo := NewRequestRepository(mock)
	requests, err := repo.ListPending(context.Background())

	require.Error(t, err)
	assert.Nil(t, requests)
}
