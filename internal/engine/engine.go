// Package engine wires the spec parser, selector, and replacer into the
// single pipeline a mutate run drives: parse the spec, resolve and select
// mutations against a seeded RNG, optionally strip comments, and apply the
// selection to the source. It owns no I/O; the adapter layer reads and
// writes the actual files.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rowmut/rowmut/internal/chacharng"
	"github.com/rowmut/rowmut/internal/model"
	"github.com/rowmut/rowmut/internal/mutagenerr"
	"github.com/rowmut/rowmut/internal/replacer"
	"github.com/rowmut/rowmut/internal/selector"
	"github.com/rowmut/rowmut/internal/specparse"
	"github.com/rowmut/rowmut/internal/specrow"
	"github.com/rowmut/rowmut/internal/warnings"
)

// Config carries every run parameter the CLI boundary resolves before the
// engine ever sees it: a concrete 32-byte seed (already generated, decoded,
// or read from a seed file), the count-selection strategy, and the two
// heuristic toggles that change how the source is treated rather than
// which mutations are chosen.
type Config struct {
	Seed          [32]byte
	Count         *int
	MinCount      *int
	MaxCount      *int
	Verbose       bool
	StripComments bool
}

// Result is everything a run produces: the mutated source text, the
// mutations the selector chose (a chosen mutation whose pattern never
// matched is still listed, with a no-match warning), the number of possible
// mutations, and the warnings collected along the way.
type Result struct {
	Output        string
	Selected      []model.SelectedMutation
	PossibleCount int
	Warnings      *warnings.Aggregator
}

// Engine runs the mutate pipeline against a source and spec text pair.
type Engine interface {
	Run(ctx context.Context, source, specText string, cfg Config) (Result, error)
}

type engine struct{}

// New returns the default Engine.
func New() Engine {
	return &engine{}
}

func (e *engine) Run(ctx context.Context, source, specText string, cfg Config) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	rows, err := specrow.Parse(specText)
	if err != nil {
		return Result{}, err
	}

	possible, err := specparse.Parse(rows)
	if err != nil {
		return Result{}, err
	}

	if len(possible) == 0 {
		return Result{}, mutagenerr.New(mutagenerr.SpecParse, "no mutations found in spec")
	}

	rng := chacharng.New(cfg.Seed)
	warn := warnings.New()

	count, clamped := selector.ResolveCount(selector.CountConfig{
		Count:    cfg.Count,
		MinCount: cfg.MinCount,
		MaxCount: cfg.MaxCount,
	}, len(possible), rng)

	if clamped {
		warn.FreeText(fmt.Sprintf("requested count clamped to %d possible mutations", count))
	}

	if cfg.Verbose {
		slog.Debug(fmt.Sprintf("%d possible mutations have been selected", count))
	}

	selected := selector.Select(possible, count, rng)

	working := source
	if cfg.StripComments {
		working = replacer.StripComments(working)
	}

	output, err := replacer.Apply(working, selected, warn)
	if err != nil {
		return Result{}, err
	}

	return Result{Output: output, Selected: selected, PossibleCount: len(possible), Warnings: warn}, nil
}
