package metrics

import (
	"testing"
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
)

// BenchmarkBuffer benchmarks a buffer holding a full retention horizon of
// one-second samples.
func BenchmarkBuffer(b *testing.B) {
	const size = 900

	now := time.Now()

	b.Run("AddAndEvict", func(b *testing.B) {
		buffer := NewBuffer(size)

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			ts := now.Add(time.Duration(i) * time.Second)
			buffer.Add(models.Sample{Timestamp: ts, Value: float64(i % 100)})
			buffer.EvictOlderThan(models.RetentionHorizon, ts)
		}
	})

	b.Run("Aggregate", func(b *testing.B) {
		buffer := NewBuffer(size)
		for i := 0; i < size; i++ {
			buffer.Add(models.Sample{Timestamp: now.Add(time.Duration(i) * time.Second), Value: float64(i % 100)})
		}

		end := now.Add(size * time.Second)

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_, _ = Aggregate(buffer, end)
		}
	})
}
