package ai

import (
	"io"
	"log/slog"
	"testing"

	"github.com/udisondev/rotasim/internal/game/combat"
	"github.com/udisondev/rotasim/internal/rng"
)

// BenchmarkBestSkill measures a depth-4 search with one goroutine per root candidate.
func BenchmarkBestSkill(b *testing.B) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	EnableDebugLogging(false)

	s := combat.NewTestState(b, rng.NewPCG(1), combat.NewTestOpponent("Striker", combat.KindStriker, 5000, 10))

	b.ResetTimer()
	for range b.N {
		if _, err := BestSkill(s, 4, 0); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSearch_Sequential is the single-goroutine baseline for BenchmarkBestSkill.
func BenchmarkSearch_Sequential(b *testing.B) {
	s := combat.NewTestState(b, rng.NewPCG(1), combat.NewTestOpponent("Striker", combat.KindStriker, 5000, 10))

	b.ResetTimer()
	for range b.N {
		if _, err := Search(s, 4); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkIsDebugEnabled measures raw performance of IsDebugEnabled() check.
func BenchmarkIsDebugEnabled(b *testing.B) {
	EnableDebugLogging(false)

	b.ResetTimer()
	for range b.N {
		_ = IsDebugEnabled()
	}
}
