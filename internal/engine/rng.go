package engine

import "math/rand/v2"

// RandomSource abstracts every random draw the engine makes (capture shakes,
// protect streaks, flee checks, AI choices, damage rolls in the default
// calculator). Tests inject a seeded source to make outcomes reproducible.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

type defaultRNG struct{}

func (defaultRNG) Float64() float64 { return rand.Float64() }
func (defaultRNG) Intn(n int) int   { return rand.IntN(n) }

// DefaultRNG returns the process-wide random source.
func DefaultRNG() RandomSource { return defaultRNG{} }

type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a reproducible source for tests and replays.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
func (s *seededRNG) Intn(n int) int   { return s.r.IntN(n) }
