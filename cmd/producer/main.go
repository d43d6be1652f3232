package main

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sanspareilsmyn/latencylens/internal/timing"
)

const (
	kafkaBroker  = "localhost:9092"
	topic        = "timing-reports"
	windowLength = 30 * time.Second
)

// Tags whose windows the sample producer publishes. The aggregation itself
// happens upstream in real deployments; this producer just fabricates
// plausible finished windows.
var sampleTags = []string{"dbQuery", "renderPage", "authCheck", "cacheRead"}

func main() {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(kafkaBroker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer func() {
		if err := writer.Close(); err != nil {
			log.Fatalf("Error closing kafka writer: %v", err)
		}
	}()
	log.Printf("Starting sample producer for topic: %s on broker: %s", topic, kafkaBroker)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		log.Println("Shutdown signal received, stopping producer...")
		cancel()
	}()

	ticker := time.NewTicker(windowLength)
	defer ticker.Stop()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		select {
		case <-ticker.C:
			payload, err := samplePayload(rng)
			if err != nil {
				log.Printf("Error marshalling window: %v", err)
				continue
			}

			err = writer.WriteMessages(ctx, kafka.Message{Value: payload})
			if err != nil {
				if ctx.Err() != nil {
					log.Println("Context cancelled, exiting message loop.")
					return
				}
				log.Printf("Error writing message: %v", err)
			} else {
				log.Printf("Produced window: %s", string(payload))
			}

		case <-ctx.Done():
			log.Println("Producer loop stopped.")
			return
		}
	}
}

// samplePayload fabricates one completed timing window. Roughly one message
// in ten is plain text instead, to exercise the non-statistics path.
func samplePayload(rng *rand.Rand) ([]byte, error) {
	if rng.Float64() < 0.1 {
		return []byte("producer heartbeat, all tags nominal"), nil
	}

	stop := time.Now().Truncate(windowLength)
	start := stop.Add(-windowLength)

	byTag := make(map[string]timing.TimingStatistics)
	for _, tag := range sampleTags {
		// ~20% chance a tag saw no traffic this window
		if rng.Float64() < 0.2 {
			continue
		}
		byTag[tag] = sampleStats(rng, tag)
	}

	window := timing.NewGroupedTimingStatistics(start, stop, byTag)
	return json.Marshal(window)
}

func sampleStats(rng *rand.Rand, tag string) timing.TimingStatistics {
	count := int64(1 + rng.Intn(500))
	mean := 20.0 + rng.Float64()*80.0
	stdDev := mean * (0.1 + rng.Float64()*0.3)
	min := math.Max(0, mean-2.5*stdDev)
	max := mean + 2.5*stdDev + rng.Float64()*50.0
	return timing.NewTimingStatistics(tag, count, mean, min, max, stdDev)
}
