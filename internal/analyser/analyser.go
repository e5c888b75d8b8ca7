package analyser

import (
	"context"
	"errors"
	"time"

	"github.com/vk/cellan/internal/ctxlog"
	"github.com/vk/cellan/internal/model"
)

// ErrNilModel is returned by Analyse when it is given no model.
var ErrNilModel = errors.New("analyser: nil model")

// Analyser classifies the variables of a model, orders its equations and
// groups the ones that must be solved together.
//
// An Analyser is not safe for concurrent use, but independent analysers may
// run concurrently, over the same model too, since analysis only reads it.
type Analyser struct {
	opts      options
	externals []*ExternalVariable
	last      *Model
}

// New creates an Analyser.
func New(opts ...Option) *Analyser {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Analyser{opts: o}
}

// Analyse runs the whole analysis over m and returns a fresh result. Problems
// in the model are reported as issues on the result; an error is returned
// only for a nil model.
func (a *Analyser) Analyse(ctx context.Context, m *model.Model) (*Model, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	ctx = ctxlog.With(ctx, "model", m.Name)
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	an := newAnalysis(ctx, m, a.opts, a.externals)
	an.run()
	res := an.result()

	logger.Debug("Analysis finished.",
		"type", res.Type().String(),
		"equations", len(res.Equations()),
		"nla_systems", len(res.NLASystems()),
		"issues", len(res.Issues()),
		"duration", time.Since(start),
	)
	a.last = res
	return res, nil
}

// Model returns the result of the last analysis, or an empty model of type
// ModelUnknown when nothing has been analysed yet.
func (a *Analyser) Model() *Model {
	if a.last == nil {
		return emptyModel()
	}
	return a.last
}
