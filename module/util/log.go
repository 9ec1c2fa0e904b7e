package util

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogProgressFunc adds to the progress of a task. It may be called concurrently.
type LogProgressFunc func(addProgress int)

// LogProgress returns a function which logs the progress of a task of the given total
// size each time it is advanced. Every call produces one log line, which suits tasks
// where each step is slow and worth reporting, such as registering oracles one by one.
func LogProgress(log zerolog.Logger, msg string, total int) LogProgressFunc {
	start := time.Now()
	current := 0
	var mu sync.Mutex

	return func(add int) {
		if add <= 0 {
			return
		}

		mu.Lock()
		defer mu.Unlock()

		current += add
		percentage := float64(100)
		if total > 0 {
			percentage = float64(current) / float64(total) * 100
		}

		log.Info().
			Int("current", current).
			Int("total", total).
			Dur("elapsed", time.Since(start).Round(time.Millisecond)).
			Msgf("%s progress %d/%d (%.1f%%)", msg, current, total, percentage)
	}
}
