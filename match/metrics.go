package match

import (
	"context"

	"github.com/milk9111/lightcycle/system"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/milk9111/lightcycle/match"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments counts lifecycle events. Nil counters are skipped.
type instruments struct {
	rounds       metric.Int64Counter
	eliminations metric.Int64Counter
	matches      metric.Int64Counter
}

func newInstruments(m metric.Meter) (instruments, error) {
	var (
		in  instruments
		err error
	)
	in.rounds, err = m.Int64Counter(
		"lightcycle.rounds",
		metric.WithDescription("Rounds scored, by outcome"),
	)
	if err != nil {
		return instruments{}, err
	}
	in.eliminations, err = m.Int64Counter(
		"lightcycle.eliminations",
		metric.WithDescription("Bikes eliminated, by cause"),
	)
	if err != nil {
		return instruments{}, err
	}
	in.matches, err = m.Int64Counter(
		"lightcycle.matches",
		metric.WithDescription("Matches completed, by outcome"),
	)
	if err != nil {
		return instruments{}, err
	}
	return in, nil
}

func (in instruments) round(o RoundOutcome, elims []system.Elimination) {
	ctx := context.Background()
	if in.rounds != nil {
		in.rounds.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", o.String())))
	}
	if in.eliminations != nil {
		for _, e := range elims {
			in.eliminations.Add(ctx, 1, metric.WithAttributes(
				attribute.String("slot", e.Slot.String()),
				attribute.String("hit", e.Hit.String()),
			))
		}
	}
}

func (in instruments) match(o MatchOutcome) {
	if in.matches != nil {
		in.matches.Add(context.Background(), 1, metric.WithAttributes(attribute.String("outcome", o.String())))
	}
}
