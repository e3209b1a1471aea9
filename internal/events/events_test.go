package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceChanged_Drop(t *testing.T) {
	tests := []struct {
		name        string
		oldPrice    float64
		newPrice    float64
		wantDrop    bool
		wantPercent float64
	}{
		{"drop", 20000, 14000, true, 30},
		{"raise", 5000, 6000, false, 0},
		{"same", 5000, 5000, false, 0},
		{"from zero", 0, 0, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := PriceChanged{OldPrice: tt.oldPrice, NewPrice: tt.newPrice}
			assert.Equal(t, tt.wantDrop, ev.Drop())
			assert.InDelta(t, tt.wantPercent, ev.DropPercent(), 1e-9)
		})
	}
}

func TestMessage_Decode(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	data, err := json.Marshal(PriceChanged{Kind: KindHotel, ID: "h1", OldPrice: 10, NewPrice: 8, At: at})
	require.NoError(t, err)

	msg := &Message{Subject: SubjectPriceChanged, Data: data}
	var ev PriceChanged
	require.NoError(t, msg.Decode(&ev))
	assert.Equal(t, "h1", ev.ID)
	assert.True(t, ev.At.Equal(at))

	bad := &Message{Subject: SubjectPriceChanged, Data: []byte("{")}
	err = bad.Decode(&ev)
	require.Error(t, err)
	assert.Contains(t, err.Error(), SubjectPriceChanged)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), SubjectPostCreated, PostCreated{ID: "p"}))
	assert.NoError(t, p.Close())
}

func TestNewNATSBus_Unreachable(t *testing.T) {
	_, err := NewNATSBus("nats://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}
