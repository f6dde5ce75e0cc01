// Package telemetry publishes indicator phase changes to an MQTT broker.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/micro-nova/meetlight/internal/models"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	qosAtLeastOnce = 1
)

// SendFunc delivers one retained message.
type SendFunc func(topic string, payload []byte) error

// Subscriber is the part of the event bus the publisher reads.
type Subscriber interface {
	Subscribe(id string) <-chan models.Snapshot
	Unsubscribe(id string)
}

// Publisher sends a retained snapshot to topic whenever the phase changes.
type Publisher struct {
	topic  string
	send   SendFunc
	client mqtt.Client
}

// NewPublisher returns a Publisher that delivers through send.
func NewPublisher(topic string, send SendFunc) *Publisher {
	return &Publisher{topic: topic, send: send}
}

// Dial connects to broker and returns a Publisher using that connection.
func Dial(broker, clientID, topic string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)
	client := mqtt.NewClient(opts)
	if tok := client.Connect(); !tok.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("telemetry: connect %s: timed out", broker)
	} else if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("telemetry: connect %s: %w", broker, err)
	}

	p := NewPublisher(topic, func(topic string, payload []byte) error {
		tok := client.Publish(topic, qosAtLeastOnce, true, payload)
		if !tok.WaitTimeout(publishTimeout) {
			return fmt.Errorf("publish to %s timed out", topic)
		}
		return tok.Error()
	})
	p.client = client
	slog.Info("telemetry: connected", "broker", broker, "topic", topic)
	return p, nil
}

// Run forwards phase changes from bus until ctx is done. Delivery failures
// are logged and the next change is tried again.
func (p *Publisher) Run(ctx context.Context, bus Subscriber) {
	const id = "telemetry"
	ch := bus.Subscribe(id)
	defer bus.Unsubscribe(id)

	last := ""
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			if snap.Phase == last {
				continue
			}
			if err := p.Publish(snap); err != nil {
				slog.Warn("telemetry: publish failed", "phase", snap.Phase, "err", err)
				continue
			}
			last = snap.Phase
		}
	}
}

// Publish sends snap immediately.
func (p *Publisher) Publish(snap models.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return p.send(p.topic, payload)
}

// Close disconnects from the broker, if Dial made the connection.
func (p *Publisher) Close() {
	if p.client != nil {
		p.client.Disconnect(250)
	}
}
