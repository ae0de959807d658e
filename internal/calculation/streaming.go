package calculation

import (
	"context"
	"math"
	"sort"

	"github.com/rpgo/savings-simulator/internal/domain"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// trialsPerWorkerChunk bounds how many paths RunStreaming holds at once.
const trialsPerWorkerChunk = 64

// StreamingSummary is what RunStreaming keeps of a run: exact terminal
// statistics (terminal values are one per trial) and per-year statistics
// whose percentiles are P² estimates.
type StreamingSummary struct {
	Terminal       domain.TerminalStatistic
	Yearly         []domain.YearlyStatistic
	TerminalValues []float64
}

// RunStreaming simulates the same trials as Run without materializing the
// ensemble. Paths are produced in parallel chunks and folded into per-year
// accumulators in trial order, so a given seed always yields the same summary.
func (mce *MonteCarloEngine) RunStreaming(ctx context.Context, params domain.ParameterSet) (*StreamingSummary, error) {
	ctx, span := tracer.Start(ctx, "montecarlo.run_streaming", trace.WithAttributes(mce.spanAttributes(params)...))
	defer span.End()

	summary, err := mce.runStreaming(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return summary, nil
}

func (mce *MonteCarloEngine) runStreaming(ctx context.Context, params domain.ParameterSet) (*StreamingSummary, error) {
	start := nowFunc()
	horizon := params.HorizonYears()
	trials := params.NumTrials()

	years := make([]*yearAccumulator, horizon)
	for i := range years {
		years[i] = newYearAccumulator()
	}
	terminal := make([]float64, 0, trials)

	chunk := mce.workers() * trialsPerWorkerChunk
	buf := make([]domain.Path, chunk)
	mce.Logger.Debugf("streaming %d trials over %d years in chunks of %d", trials, horizon, chunk)

	for from := 0; from < trials; from += chunk {
		to := min(from+chunk, trials)
		err := mce.forEachTrial(ctx, from, to, func(trial int) error {
			path := SimulatePath(params, mce.Streams.Stream(trial))
			if err := mce.checkFinite(trial, path); err != nil {
				return err
			}
			buf[trial-from] = path
			return nil
		})
		if err != nil {
			return nil, err
		}
		for _, path := range buf[:to-from] {
			for year, v := range path {
				years[year].add(v)
			}
			terminal = append(terminal, path.Final())
		}
	}

	summary := &StreamingSummary{
		Yearly:         make([]domain.YearlyStatistic, horizon),
		TerminalValues: terminal,
	}
	mean, p5, p95 := summarize(terminal)
	summary.Terminal = domain.TerminalStatistic{Mean: mean, P5: p5, P95: p95}
	for i, acc := range years {
		summary.Yearly[i] = domain.YearlyStatistic{
			Year: i + 1,
			Mean: acc.mean(),
			P5:   acc.lower.Value(),
			P95:  acc.upper.Value(),
		}
	}

	mce.Logger.Infof("streamed %d trials in %s", trials, nowFunc().Sub(start))
	return summary, nil
}

type yearAccumulator struct {
	n     int
	sum   float64
	lower *P2Quantile
	upper *P2Quantile
}

func newYearAccumulator() *yearAccumulator {
	return &yearAccumulator{
		lower: NewP2Quantile(LowerPercentile / 100),
		upper: NewP2Quantile(UpperPercentile / 100),
	}
}

func (a *yearAccumulator) add(v float64) {
	a.n++
	a.sum += v
	a.lower.Add(v)
	a.upper.Add(v)
}

func (a *yearAccumulator) mean() float64 { return a.sum / float64(a.n) }

// P2Quantile estimates one quantile of a stream in constant memory using the
// P² algorithm (Jain & Chlamtac, 1985). Until five observations have been
// seen the exact interpolated percentile is returned.
type P2Quantile struct {
	p       float64
	count   int
	nan     bool
	heights [5]float64
	pos     [5]float64
	desired [5]float64
	incr    [5]float64
}

// NewP2Quantile tracks quantile p in (0, 1).
func NewP2Quantile(p float64) *P2Quantile {
	return &P2Quantile{
		p:    p,
		incr: [5]float64{0, p / 2, p, (1 + p) / 2, 1},
	}
}

// Add feeds one observation.
func (q *P2Quantile) Add(x float64) {
	// A NaN column has no ordering; the estimate stays NaN as in exact mode.
	if q.nan || math.IsNaN(x) {
		q.nan = true
		q.count++
		return
	}
	if q.count < 5 {
		q.heights[q.count] = x
		q.count++
		if q.count == 5 {
			sort.Float64s(q.heights[:])
			q.pos = [5]float64{1, 2, 3, 4, 5}
			q.desired = [5]float64{1, 1 + 2*q.p, 1 + 4*q.p, 3 + 2*q.p, 5}
		}
		return
	}
	q.count++

	var k int
	switch {
	case x < q.heights[0]:
		q.heights[0] = x
		k = 0
	case x >= q.heights[4]:
		q.heights[4] = x
		k = 3
	default:
		for k = 0; k < 3; k++ {
			if x < q.heights[k+1] {
				break
			}
		}
	}

	for i := k + 1; i < 5; i++ {
		q.pos[i]++
	}
	for i := range q.desired {
		q.desired[i] += q.incr[i]
	}

	for i := 1; i <= 3; i++ {
		d := q.desired[i] - q.pos[i]
		if (d >= 1 && q.pos[i+1]-q.pos[i] > 1) || (d <= -1 && q.pos[i-1]-q.pos[i] < -1) {
			s := 1.0
			if d < 0 {
				s = -1.0
			}
			h := q.parabolic(i, s)
			if q.heights[i-1] < h && h < q.heights[i+1] {
				q.heights[i] = h
			} else {
				q.heights[i] = q.linear(i, s)
			}
			q.pos[i] += s
		}
	}
}

// Value returns the current estimate, or NaN before any observation.
func (q *P2Quantile) Value() float64 {
	if q.nan {
		return math.NaN()
	}
	if q.count <= 5 {
		return Percentile(q.heights[:q.count], q.p*100)
	}
	return q.heights[2]
}

func (q *P2Quantile) parabolic(i int, s float64) float64 {
	n, h := q.pos, q.heights
	return h[i] + s/(n[i+1]-n[i-1])*((n[i]-n[i-1]+s)*(h[i+1]-h[i])/(n[i+1]-n[i])+
		(n[i+1]-n[i]-s)*(h[i]-h[i-1])/(n[i]-n[i-1]))
}

func (q *P2Quantile) linear(i int, s float64) float64 {
	j := i + int(s)
	return q.heights[i] + s*(q.heights[j]-q.heights[i])/(q.pos[j]-q.pos[i])
}
