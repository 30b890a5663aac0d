package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// DefaultBufferSize is the number of uniforms generated per refill.
const DefaultBufferSize = 10_000

// RandomSource yields uniforms in [0, 1).
type RandomSource interface {
	Float64() float64
}

// Replicable RNG (e.g. Monte Carlo)
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a PCG generator. Workers sharing a seed get distinct
// streams, so their sequences do not overlap.
func NewSeededRNG(seed, stream uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, stream))}
}

// NewEntropyRNG returns a PCG generator seeded from crypto/rand.
func NewEntropyRNG() RandomSource {
	var buf [16]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return &seededRNG{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	hi := binary.BigEndian.Uint64(buf[:8])
	lo := binary.BigEndian.Uint64(buf[8:])
	return &seededRNG{r: rand.New(rand.NewPCG(hi, lo))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// BufferedSource hands out uniforms from a pre-generated buffer and regenerates
// the whole buffer in one batch once it is used up.
// It is not safe for concurrent use; each worker builds its own.
type BufferedSource struct {
	src     RandomSource
	buf     []float64
	pos     int
	refills int
}

// NewBufferedSource fills a buffer of the given size from src.
// size <= 0 falls back to DefaultBufferSize; a nil src uses NewEntropyRNG.
func NewBufferedSource(src RandomSource, size int) *BufferedSource {
	if size <= 0 {
		size = DefaultBufferSize
	}
	if src == nil {
		src = NewEntropyRNG()
	}
	b := &BufferedSource{src: src, buf: make([]float64, size)}
	b.fill()
	return b
}

func (b *BufferedSource) fill() {
	for i := range b.buf {
		b.buf[i] = b.src.Float64()
	}
	b.pos = 0
}

// Float64 returns the next buffered uniform in [0, 1).
func (b *BufferedSource) Float64() float64 {
	if b.pos >= len(b.buf) {
		b.fill()
		b.refills++
	}
	v := b.buf[b.pos]
	b.pos++
	return v
}

// Refills reports how many times the buffer was regenerated after construction.
func (b *BufferedSource) Refills() int { return b.refills }

// Size is the buffer length.
func (b *BufferedSource) Size() int { return len(b.buf) }
