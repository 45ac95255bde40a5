package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishQueuesEncodedEvent(t *testing.T) {
	h := NewHub(zap.NewNop())

	h.Publish(StockEvent{
		Type:      TypeStockUpdate,
		Action:    ActionSaleRecorded,
		ProductID: "p-1",
		SKU:       "ABC-1",
		OldStock:  45,
		NewStock:  43,
		User:      EventUser{ID: "u-1", Name: "Ops"},
	})

	require.Len(t, h.Broadcast, 1)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(<-h.Broadcast, &got))
	assert.Equal(t, "stock_update", got["type"])
	assert.Equal(t, "sale_recorded", got["action"])
	assert.Equal(t, float64(43), got["new_stock"])
}

func TestPublishDropsWhenQueueFull(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	h := NewHub(zap.New(core))

	for i := 0; i < broadcastBuffer+5; i++ {
		h.Publish(StockEvent{Type: TypeStockUpdate})
	}

	assert.Len(t, h.Broadcast, broadcastBuffer)
	assert.Equal(t, 5, logs.FilterMessageSnippet("queue full").Len())
}

func TestPublishOnNilHub(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() { h.Publish(StockEvent{}) })
}
