// Package events carries TripWise domain events over NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects published by the service layer.
const (
	SubjectPriceChanged = "catalog.price.changed"
	SubjectPostCreated  = "community.post.created"
)

// Kinds of priced entities.
const (
	KindHotel = "hotel"
	KindCar   = "car"
)

// Publisher sends an event payload on a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, v any) error
	Close() error
}

// Subscriber delivers messages published on a subject.
type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	Close() error
}

// Message is a received event.
type Message struct {
	Subject string
	Data    []byte
}

// Decode unmarshals the payload into v.
func (m *Message) Decode(v any) error {
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("decode %s event: %w", m.Subject, err)
	}
	return nil
}

// PriceChanged is published after an administrator edits a hotel or car price.
type PriceChanged struct {
	Kind     string    `json:"kind"`
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	OldPrice float64   `json:"oldPrice"`
	NewPrice float64   `json:"newPrice"`
	At       time.Time `json:"at"`
}

// Drop reports whether the price went down.
func (p PriceChanged) Drop() bool {
	return p.NewPrice < p.OldPrice
}

// DropPercent is the size of a price drop relative to the old price.
func (p PriceChanged) DropPercent() float64 {
	if !p.Drop() || p.OldPrice <= 0 {
		return 0
	}
	return (p.OldPrice - p.NewPrice) / p.OldPrice * 100
}

// PostCreated is published after a community post is stored.
type PostCreated struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	At     time.Time `json:"at"`
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                                { return nil }

// NATSBus publishes and subscribes JSON events on a NATS connection.
type NATSBus struct {
	conn *nats.Conn
}

// NewNATSBus connects to the NATS server at url.
func NewNATSBus(url string) (*NATSBus, error) {
	conn, err := nats.Connect(url, nats.Name("tripwise"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSBus{conn: conn}, nil
}

func (n *NATSBus) Publish(_ context.Context, subject string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	return n.conn.Publish(subject, payload)
}

func (n *NATSBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{Subject: msg.Subject, Data: msg.Data})
	})
	return err
}

// Close drains pending messages and closes the connection.
func (n *NATSBus) Close() error {
	return n.conn.Drain()
}
