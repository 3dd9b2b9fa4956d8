package testutil

import (
	"testing"
	"time"
)

// Eventually вызывает cond каждые tick до истечения timeout.
// Возвращает true, если cond вернул true хотя бы раз.
func Eventually(t testing.TB, timeout, tick time.Duration, cond func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(tick)
	}
	return cond()
}
