package calculation

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ReturnStream supplies annual investment returns to one simulated path.
// A stream is owned by a single trial and is not safe for concurrent use.
type ReturnStream interface {
	Draw(mean, stdev float64) float64
}

// StreamFactory hands out an independent ReturnStream per trial index. The
// same factory must return streams producing the same draws for the same
// trial, so runs are reproducible whatever order trials execute in.
type StreamFactory interface {
	Stream(trial int) ReturnStream
}

// NormalStream draws normally distributed returns from its own PCG source.
type NormalStream struct {
	src rand.Source
}

// NewNormalStream seeds a stream directly.
func NewNormalStream(seed uint64) *NormalStream {
	return &NormalStream{src: rand.NewSource(seed)}
}

func (s *NormalStream) Draw(mean, stdev float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: stdev, Src: s.src}.Rand()
}

// SeededStreams derives one NormalStream per trial from a base seed.
type SeededStreams struct {
	Seed uint64
}

// NewSeededStreams returns a factory rooted at seed.
func NewSeededStreams(seed uint64) SeededStreams {
	return SeededStreams{Seed: seed}
}

func (s SeededStreams) Stream(trial int) ReturnStream {
	return NewNormalStream(TrialSeed(s.Seed, trial))
}

// TrialSeed mixes the base seed with the trial index (splitmix64 finalizer)
// so neighbouring trials start from unrelated generator states.
func TrialSeed(base uint64, trial int) uint64 {
	z := base + uint64(trial+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
