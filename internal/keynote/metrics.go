package keynote

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"conferenceapi/internal/model"
)

// InstrumentedLookup counts lookups by outcome in keynote_lookups_total.
type InstrumentedLookup struct {
	next    Lookup
	lookups *prometheus.CounterVec
}

// NewInstrumentedLookup wraps next and registers its counter on reg.
func NewInstrumentedLookup(next Lookup, reg prometheus.Registerer) (*InstrumentedLookup, error) {
	l := &InstrumentedLookup{
		next: next,
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keynote_lookups_total",
				Help: "Keynote lookups performed for response enrichment, by result.",
			},
			[]string{"result"},
		),
	}
	if err := reg.Register(l.lookups); err != nil {
		return nil, err
	}
	return l, nil
}

var _ Lookup = (*InstrumentedLookup)(nil)

func (l *InstrumentedLookup) GetByID(ctx context.Context, id int64) (*model.Keynote, error) {
	k, err := l.next.GetByID(ctx, id)
	l.lookups.WithLabelValues(resultLabel(err)).Inc()
	return k, err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "unavailable"
	}
}
