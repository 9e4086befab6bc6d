package events_test

import (
	"sync"
	"testing"

	"github.com/ferreirogomes/cotinha/events"
	"github.com/ferreirogomes/cotinha/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotifierDeliversToSubscriber: evento publicado chega ao assinante do
// tópico.
func TestNotifierDeliversToSubscriber(t *testing.T) {
	notifier := events.NewNotifier()

	var mu sync.Mutex
	var received []models.FractionEvent
	err := notifier.Subscribe(models.TopicFractionPurchased, func(e models.FractionEvent) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e)
	})
	require.NoError(t, err)

	notifier.Publish(models.TopicFractionPurchased, models.FractionEvent{
		EventID:      "ev-1",
		AssetID:      0,
		Counterparty: "buyer-b",
		Count:        5,
		Amount:       50,
	})
	notifier.WaitAsync()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, "buyer-b", received[0].Counterparty)
	assert.Equal(t, int64(50), received[0].Amount)
}

// TestNotifierIsBestEffort: publicar em tópico sem assinantes não bloqueia
// nem falha.
func TestNotifierIsBestEffort(t *testing.T) {
	notifier := events.NewNotifier()
	notifier.Publish(models.TopicFractionSold, models.FractionEvent{EventID: "ev-2"})
	notifier.WaitAsync()
}
