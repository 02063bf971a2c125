package noise

import (
	"math"
)

// Value samples fractal value noise over an integer-hashed lattice.
type Value struct {
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// NewValue creates a Value sampler with 4 octaves.
func NewValue() *Value {
	return &Value{Octaves: 4, Persistence: 0.5, Lacunarity: 2.0}
}

// Sample2D returns noise in [-1,1] at (x,z).
func (v *Value) Sample2D(seed int64, x, z float64) float64 {
	return clamp(octave2D(x, z, seed, v.Octaves, v.Persistence, v.Lacunarity)*2 - 1)
}

// Sample3D returns noise in [-1,1] at (x,y,z).
func (v *Value) Sample3D(seed int64, x, y, z float64) float64 {
	return clamp(octave3D(x, y, z, seed, v.Octaves, v.Persistence, v.Lacunarity)*2 - 1)
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hash3 is a SplitMix64 style integer hash, stable across runs.
func hash3(x, y, z int64, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// lattice maps a lattice point to [0,1].
func lattice(x, y, z int64, seed int64) float64 {
	return float64(hash3(x, y, z, seed)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func value2D(x, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	fx := fade(x - x0)
	fz := fade(z - z0)
	ix, iz := int64(x0), int64(z0)

	v00 := lattice(ix, 0, iz, seed)
	v10 := lattice(ix+1, 0, iz, seed)
	v01 := lattice(ix, 0, iz+1, seed)
	v11 := lattice(ix+1, 0, iz+1, seed)

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fz)
}

func value3D(x, y, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)
	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	i00 := lerp(lattice(ix, iy, iz, seed), lattice(ix+1, iy, iz, seed), fx)
	i10 := lerp(lattice(ix, iy+1, iz, seed), lattice(ix+1, iy+1, iz, seed), fx)
	i01 := lerp(lattice(ix, iy, iz+1, seed), lattice(ix+1, iy, iz+1, seed), fx)
	i11 := lerp(lattice(ix, iy+1, iz+1, seed), lattice(ix+1, iy+1, iz+1, seed), fx)

	return lerp(lerp(i00, i10, fy), lerp(i01, i11, fy), fz)
}

func octave2D(x, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	return fractal(octaves, persistence, lacunarity, func(f float64, s int64) float64 {
		return value2D(x*f, z*f, seed+s)
	})
}

func octave3D(x, y, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	return fractal(octaves, persistence, lacunarity, func(f float64, s int64) float64 {
		return value3D(x*f, y*f, z*f, seed+s)
	})
}

// fractal sums octaves of base and normalizes back to [0,1].
func fractal(octaves int, persistence, lacunarity float64, base func(freq float64, seedOffset int64) float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		sum += base(frequency, int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
