// Package compare ranks, diffs and optimizes candidate mix designs.
package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/ports"
)

// DefaultWorkers bounds concurrent predictions when no option is given.
const DefaultWorkers = 4

type options struct {
	workers int
}

// Option configures a comparison.
type Option func(*options)

// WithWorkers bounds how many candidates are predicted at once.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Ranked is one candidate in a ranking. Rank starts at 1; Index is the
// position in the input sequence.
type Ranked struct {
	Rank       int               `json:"rank"`
	Index      int               `json:"index"`
	Score      float64           `json:"score"`
	Prediction domain.Prediction `json:"prediction"`
}

// PredictAll predicts every mix concurrently and returns results in input order.
func PredictAll(ctx context.Context, p ports.Predictor, mixes []domain.MixDesign, opts ...Option) ([]domain.Prediction, error) {
	o := options{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}

	preds := make([]domain.Prediction, len(mixes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, m := range mixes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pred, err := p.Predict(m)
			if err != nil {
				return fmt.Errorf("failed to predict mix %d (%s): %w", i, m.Label(fmt.Sprintf("#%d", i+1)), err)
			}
			preds[i] = pred
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return preds, nil
}

// Rank predicts every mix and orders them by the objective. Ties go to the
// cheaper mix, then to the earlier input.
func Rank(ctx context.Context, p ports.Predictor, mixes []domain.MixDesign, obj Objective, opts ...Option) ([]Ranked, error) {
	if len(mixes) == 0 {
		return nil, &domain.EmptyInputError{Operation: "compare"}
	}
	if _, err := ParseObjective(string(obj)); err != nil {
		return nil, err
	}

	preds, err := PredictAll(ctx, p, mixes, opts...)
	if err != nil {
		return nil, err
	}

	ranked := make([]Ranked, len(preds))
	for i, pred := range preds {
		score, _ := obj.Score(pred)
		ranked[i] = Ranked{Index: i, Score: score, Prediction: pred}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if c := a.Prediction.Cost.Cmp(b.Prediction.Cost); c != 0 {
			return c < 0
		}
		return a.Index < b.Index
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// Delta holds per-property differences, To minus From.
type Delta struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Compressive float64         `json:"compressive_mpa"`
	Tensile     float64         `json:"tensile_mpa"`
	Modulus     float64         `json:"elastic_modulus_mpa"`
	UPV         float64         `json:"upv_ms"`
	Cost        decimal.Decimal `json:"cost_usd_per_m3"`
}

// Diff compares two ranked candidates.
func Diff(from, to Ranked) Delta {
	a, b := from.Prediction, to.Prediction
	return Delta{
		From:        a.Mix.Label(fmt.Sprintf("#%d", from.Index+1)),
		To:          b.Mix.Label(fmt.Sprintf("#%d", to.Index+1)),
		Compressive: b.CompressiveStrength.Value - a.CompressiveStrength.Value,
		Tensile:     b.TensileStrength.Value - a.TensileStrength.Value,
		Modulus:     b.ElasticModulus.Value - a.ElasticModulus.Value,
		UPV:         b.UPV.Value - a.UPV.Value,
		Cost:        b.Cost.Sub(a.Cost),
	}
}
