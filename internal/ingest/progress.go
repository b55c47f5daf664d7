package ingest

import (
	"context"
	"math/rand/v2"
	"time"
)

// progressSimulator emits a monotonically non-decreasing value from 0 to
// 100. It is purely cosmetic: no bytes are transferred, so the pace has
// nothing to report on.
type progressSimulator struct {
	interval time.Duration
	step     func() float64
	onUpdate func(float64)
}

func randomStep() float64 {
	return rand.Float64() * 10
}

func (s *progressSimulator) run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	value := 0.0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			value += s.step()
			if value > 100 {
				value = 100
			}
			if s.onUpdate != nil {
				s.onUpdate(value)
			}
			if value >= 100 {
				return nil
			}
		}
	}
}
