package reminder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/miickii/HSKTrainer-sub000/internal/database"
	"github.com/miickii/HSKTrainer-sub000/internal/vocab"
	"github.com/miickii/HSKTrainer-sub000/pkg/models"
)

type captureNotifier struct {
	count int
	sent  bool
}

func (n *captureNotifier) SendReminder(dueCount int) error {
	n.count = dueCount
	n.sent = true
	return nil
}

func newTestRepo(t *testing.T) (*vocab.Repository, *database.WordStore) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := database.NewWordStore(db, zap.NewNop())
	return vocab.New(store, vocab.Config{ActiveLevels: []int{1}}, zap.NewNop()), store
}

func TestRunManualCheck_SendsDueCount(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &models.Word{
		ID:         "due",
		Simplified: "词",
		Level:      1,
		NextReview: "2000-01-01",
		Examples:   []models.ExampleSentence{{Simplified: "例", English: "example"}},
	}))

	notifier := &captureNotifier{}
	r := New(repo, notifier, 9, zap.NewNop())
	require.NoError(t, r.RunManualCheck(ctx))

	assert.True(t, notifier.sent)
	assert.Equal(t, 1, notifier.count)
}

func TestRunManualCheck_SilentWhenNothingDue(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &models.Word{
		ID:         "future",
		Simplified: "词",
		Level:      1,
		NextReview: "2999-01-01",
		Examples:   []models.ExampleSentence{{Simplified: "例", English: "example"}},
	}))

	notifier := &captureNotifier{}
	r := New(repo, notifier, 9, zap.NewNop())
	require.NoError(t, r.RunManualCheck(ctx))

	assert.False(t, notifier.sent)
}
