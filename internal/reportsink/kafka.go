package reportsink

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"groupdtc/internal/compensate"
)

// kafkaReport is the JSON wire shape published to the failures topic —
// this is the concrete integration point spec.md §1 calls "the queue
// itself is out of scope": the core only produces into it, it never
// consumes or drains.
type kafkaReport struct {
	GroupID           string   `json:"groupId"`
	IntendedOperation string   `json:"intendedOperation"`
	SuccessSet        []int    `json:"successSet"`
	LastOutcomes      []string `json:"lastOutcomes"`
	Timestamp         string   `json:"timestamp"`
}

// KafkaSink publishes one JSON record per FAILED transaction to a
// configured topic via github.com/twmb/franz-go. Report is fire-and-forget:
// a produce error is logged, never propagated back into the core.
type KafkaSink struct {
	client  *kgo.Client
	topic   string
	timeout time.Duration
}

// NewKafkaSink creates a franz-go client for seedBrokers; Report sets topic
// on every record it produces. Close the returned sink's underlying client
// via Close when the coordinator shuts down.
func NewKafkaSink(seedBrokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(kgo.SeedBrokers(seedBrokers...))
	if err != nil {
		return nil, err
	}
	return &KafkaSink{client: client, topic: topic, timeout: 5 * time.Second}, nil
}

// Close releases the underlying Kafka connections.
func (k *KafkaSink) Close() {
	k.client.Close()
}

// Report implements compensate.Sink.
func (k *KafkaSink) Report(r compensate.Report) {
	outcomes := make([]string, len(r.LastCompensationOut))
	for i, o := range r.LastCompensationOut {
		outcomes[i] = o.String()
	}

	payload, err := json.Marshal(kafkaReport{
		GroupID:           r.GroupID,
		IntendedOperation: r.IntendedOperation.String(),
		SuccessSet:        r.SuccessSet,
		LastOutcomes:      outcomes,
		Timestamp:         time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		log.Printf("reportsink: kafka marshal failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	result := k.client.ProduceSync(ctx, &kgo.Record{Topic: k.topic, Value: payload, Key: []byte(r.GroupID)})
	if err := result.FirstErr(); err != nil {
		log.Printf("reportsink: kafka produce failed: %v", err)
	}
}
