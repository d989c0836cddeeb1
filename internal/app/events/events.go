// Package events publishes the calendar service's integration events.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event names emitted by this service.
const (
	SelectionCompleted = "calendar.selection_completed"
	PeakRangeMarked    = "calendar.peak_range_marked"
	PeakRangeUnmarked  = "calendar.peak_range_unmarked"
)

// Producer delivers an encoded event to a topic. Implemented by the Kafka
// broker adapter; NopProducer drops events when no brokers are configured.
type Producer interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
}

// Emitter wraps a Producer with the platform's event envelope.
type Emitter struct {
	Producer    Producer
	TopicPrefix string
	Source      string
}

type envelope struct {
	SpecVersion     string    `json:"specversion"`
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Source          string    `json:"source"`
	Time            time.Time `json:"time"`
	DataContentType string    `json:"datacontenttype"`
	Data            any       `json:"data"`
}

// Emit wraps data in the versioned envelope and publishes it. The aggregate
// id becomes the partition key.
func (e *Emitter) Emit(ctx context.Context, name, aggregate string, data any) error {
	if e == nil || e.Producer == nil {
		return nil
	}
	evt := envelope{
		SpecVersion:     "1.0",
		ID:              uuid.NewString(),
		Type:            name + ".v1",
		Source:          e.source(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return e.Producer.Publish(ctx, e.TopicPrefix+name, aggregate, payload)
}

func (e *Emitter) source() string {
	if e.Source == "" {
		return "jatajar-calendar"
	}
	return e.Source
}

// NopProducer discards all events.
type NopProducer struct{}

func (NopProducer) Publish(context.Context, string, string, []byte) error { return nil }

var _ Producer = NopProducer{}
