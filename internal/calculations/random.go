package calculations

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource выдает равномерные числа из [0, 1)
type RandomSource interface {
	Float64() float64
}

// LockedSource wraps a *rand.Rand so it can be shared between goroutines.
type LockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLockedSource создает источник; seed == 0 означает seed от текущего времени
func NewLockedSource(seed uint64) *LockedSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &LockedSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 implements RandomSource.
func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// FixedSource всегда возвращает одно и то же значение (для воспроизводимых расчетов)
type FixedSource float64

// Float64 implements RandomSource.
func (f FixedSource) Float64() float64 {
	return float64(f)
}
