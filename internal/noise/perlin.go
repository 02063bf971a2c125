package noise

import (
	"sync"

	"github.com/aquilax/go-perlin"
)

// Perlin parameters: alpha=2, beta=2, n=3 give terrain-like noise.
const (
	perlinAlpha = 2
	perlinBeta  = 2
	perlinN     = 3
)

// Perlin samples classic Perlin noise. go-perlin seeds a generator at
// construction, so one generator is kept per seed.
type Perlin struct {
	mu   sync.Mutex
	gens map[int64]*perlin.Perlin
}

// NewPerlin creates a Perlin sampler.
func NewPerlin() *Perlin {
	return &Perlin{gens: make(map[int64]*perlin.Perlin)}
}

func (p *Perlin) generator(seed int64) *perlin.Perlin {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.gens[seed]
	if !ok {
		g = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
		p.gens[seed] = g
	}
	return g
}

// Sample2D returns noise in [-1,1] at (x,z).
func (p *Perlin) Sample2D(seed int64, x, z float64) float64 {
	return clamp(p.generator(seed).Noise2D(x, z))
}

// Sample3D returns noise in [-1,1] at (x,y,z).
func (p *Perlin) Sample3D(seed int64, x, y, z float64) float64 {
	return clamp(p.generator(seed).Noise3D(x, y, z))
}
