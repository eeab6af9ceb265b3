package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/billedapp/billflow/internal/domain/entity"
	"github.com/billedapp/billflow/internal/domain/workflow"
	"github.com/billedapp/billflow/pkg/database"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	logger := zap.NewNop()
	db, err := database.New(database.Config{
		Path:         filepath.Join(t.TempDir(), "bills.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).Run(Migrations))

	return NewSQLiteStore(db, logger)
}

func mustUpdate(t *testing.T, client Client, bill entity.Bill) *entity.Bill {
	t.Helper()

	data, err := json.Marshal(bill)
	require.NoError(t, err)

	updated, err := client.Update(context.Background(), UpdateOp{
		Data:     string(data),
		Selector: bill.ID,
	})
	require.NoError(t, err)
	return updated
}

func TestSQLiteStore_CreateAndList(t *testing.T) {
	client := newTestStore(t).Bills()
	ctx := context.Background()

	created, err := client.Create(ctx, CreateOp{Email: "a@billed.com", FileName: "facture.jpg"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Key)
	assert.Contains(t, created.FileURL, "facture.jpg")

	bills, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, created.Key, bills[0].ID)
	assert.Equal(t, entity.StatusPending, bills[0].Status)
	assert.Equal(t, "a@billed.com", bills[0].Email)
}

func TestSQLiteStore_UpdateFillsSubmission(t *testing.T) {
	client := newTestStore(t).Bills()
	ctx := context.Background()

	created, err := client.Create(ctx, CreateOp{Email: "john.doe@billed.com", FileName: "taxi.png"})
	require.NoError(t, err)

	updated := mustUpdate(t, client, entity.Bill{
		ID:     created.Key,
		Email:  "john.doe@billed.com",
		Name:   "Course taxi",
		Type:   "Transports",
		Amount: 42,
		Date:   "2004-04-04",
		Status: entity.StatusPending,
	})

	assert.Equal(t, "Course taxi", updated.Name)
	assert.Equal(t, 42.0, updated.Amount)
	assert.Equal(t, "2004-04-04", updated.Date)
}

func TestSQLiteStore_AcceptIsTerminal(t *testing.T) {
	client := newTestStore(t).Bills()
	ctx := context.Background()

	created, err := client.Create(ctx, CreateOp{Email: "a@billed.com", FileName: "f.jpg"})
	require.NoError(t, err)

	accepted := mustUpdate(t, client, entity.Bill{
		ID:           created.Key,
		Email:        "a@billed.com",
		Status:       entity.StatusAccepted,
		CommentAdmin: "ok",
	})
	assert.Equal(t, entity.StatusAccepted, accepted.Status)
	assert.Equal(t, "ok", accepted.CommentAdmin)

	// A terminal bill cannot move again.
	data, err := json.Marshal(entity.Bill{ID: created.Key, Email: "a@billed.com", Status: entity.StatusRefused})
	require.NoError(t, err)
	_, err = client.Update(ctx, UpdateOp{Data: string(data), Selector: created.Key})
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestSQLiteStore_ConcurrentReviewsSingleWinner(t *testing.T) {
	logger := zap.NewNop()
	db, err := database.New(database.Config{
		Path:         filepath.Join(t.TempDir(), "bills.db"),
		MaxOpenConns: 25,
		MaxIdleConns: 5,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewMigrator(db, logger).Run(Migrations))

	client := NewSQLiteStore(db, logger).Bills()
	ctx := context.Background()

	created, err := client.Create(ctx, CreateOp{Email: "a@billed.com", FileName: "f.jpg"})
	require.NoError(t, err)

	payloads := make(map[entity.Status]string)
	for _, status := range []entity.Status{entity.StatusAccepted, entity.StatusRefused} {
		data, err := json.Marshal(entity.Bill{
			ID:     created.Key,
			Email:  "a@billed.com",
			Status: status,
		})
		require.NoError(t, err)
		payloads[status] = string(data)
	}

	decide := func(status entity.Status) error {
		_, err := client.Update(ctx, UpdateOp{Data: payloads[status], Selector: created.Key})
		return err
	}

	const rounds = 50
	results := make(chan error, 2*rounds)
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		for _, status := range []entity.Status{entity.StatusAccepted, entity.StatusRefused} {
			wg.Add(1)
			go func(s entity.Status) {
				defer wg.Done()
				<-start
				results <- decide(s)
			}(status)
		}
	}
	close(start)
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
		}
	}
	// Exactly one decision lands; every other attempt is rejected.
	assert.Equal(t, 1, wins)

	bills, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Contains(t, []entity.Status{entity.StatusAccepted, entity.StatusRefused}, bills[0].Status)
}

func TestSQLiteStore_UpdateReturnsWrittenRecord(t *testing.T) {
	client := newTestStore(t).Bills()
	ctx := context.Background()

	created, err := client.Create(ctx, CreateOp{Email: "a@billed.com", FileName: "f.jpg"})
	require.NoError(t, err)

	stored, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	updated := mustUpdate(t, client, entity.Bill{
		ID:     created.Key,
		Email:  "a@billed.com",
		Name:   "Diner client",
		Status: entity.StatusPending,
	})

	require.NotNil(t, updated)
	assert.Equal(t, "Diner client", updated.Name)
	assert.Equal(t, stored[0].CreatedAt, updated.CreatedAt)
}

func TestSQLiteStore_UpdateUnknownBill(t *testing.T) {
	client := newTestStore(t).Bills()

	data, err := json.Marshal(entity.Bill{ID: "missing", Status: entity.StatusPending})
	require.NoError(t, err)

	_, err = client.Update(context.Background(), UpdateOp{Data: string(data), Selector: "missing"})

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusNotFound, transportErr.Status)
	assert.Equal(t, "Erreur 404", transportErr.Message)
}
