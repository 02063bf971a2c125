package noise

import (
	"sync"

	"github.com/ojrac/opensimplex-go"
)

// Simplex samples OpenSimplex noise. Generators are seeded at construction,
// so one is kept per seed.
type Simplex struct {
	mu   sync.Mutex
	gens map[int64]opensimplex.Noise
}

// NewSimplex creates a Simplex sampler.
func NewSimplex() *Simplex {
	return &Simplex{gens: make(map[int64]opensimplex.Noise)}
}

func (s *Simplex) generator(seed int64) opensimplex.Noise {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gens[seed]
	if !ok {
		g = opensimplex.New(seed)
		s.gens[seed] = g
	}
	return g
}

// Sample2D returns noise in [-1,1] at (x,z).
func (s *Simplex) Sample2D(seed int64, x, z float64) float64 {
	return clamp(s.generator(seed).Eval2(x, z))
}

// Sample3D returns noise in [-1,1] at (x,y,z).
func (s *Simplex) Sample3D(seed int64, x, y, z float64) float64 {
	return clamp(s.generator(seed).Eval3(x, y, z))
}
