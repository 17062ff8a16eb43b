package merge

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
)

// Strategy selects how secondary rows are looked up.
type Strategy int

const (
	// StrategyIndex builds a normalized-key index over the secondary
	// dataset in one pass, then probes it once per primary row.
	StrategyIndex Strategy = iota

	// StrategyScan searches the secondary dataset from the top for every
	// primary row. It produces the same result as StrategyIndex.
	StrategyScan
)

// Engine performs left-join merges with a fixed configuration.
// An Engine holds no per-merge state and may be reused.
type Engine struct {
	normalizer Normalizer
	strategy   Strategy
	logger     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithEmptyKeyPolicy sets how blank keys are matched.
func WithEmptyKeyPolicy(p EmptyKeyPolicy) Option {
	return func(e *Engine) {
		e.normalizer.Policy = p
	}
}

// WithUnicodeNormalization enables NFC folding of keys before comparison.
func WithUnicodeNormalization(enabled bool) Option {
	return func(e *Engine) {
		e.normalizer.UnicodeNFC = enabled
	}
}

// WithStrategy sets the lookup strategy.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) {
		e.strategy = s
	}
}

// WithLogger sets the logger used for merge diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine. Without options it uses EmptyKeysMatch and
// StrategyIndex and does not log.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		normalizer: Normalizer{Policy: EmptyKeysMatch},
		strategy:   StrategyIndex,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the engine's empty key policy.
func (e *Engine) Policy() EmptyKeyPolicy {
	return e.normalizer.Policy
}

// Merge left-joins a against b on key using an Engine with default options.
func Merge(a, b dataset.Dataset, key string) (*ResultSet, error) {
	return NewEngine().Merge(a, b, key)
}

// Merge left-joins a against b on key.
//
// It fails with an InvalidKeyError when key is blank or is not one of the
// columns shared by the first rows of a and b. An empty a yields an empty
// result; an empty b leaves every row of a unmatched.
func (e *Engine) Merge(a, b dataset.Dataset, key string) (*ResultSet, error) {
	if err := ValidateKey(a, b, key); err != nil {
		return nil, err
	}

	start := time.Now()
	rs := &ResultSet{
		Key:            key,
		PrimaryCount:   a.Len(),
		SecondaryCount: b.Len(),
		MergedRows:     make([]dataset.Row, 0, a.Len()),
		UnmatchedRows:  make([]dataset.Row, 0),
	}

	lookup := e.lookupFunc(b, key)
	for _, row := range a.Rows {
		match, ok := e.match(lookup, row, key)
		if !ok {
			rs.UnmatchedRows = append(rs.UnmatchedRows, row.Clone())
			continue
		}
		rs.MergedRows = append(rs.MergedRows, row.Merge(match))
	}
	rs.MergedCount = len(rs.MergedRows)
	rs.UnmatchedCount = len(rs.UnmatchedRows)

	e.logger.Debug().
		Str("key", key).
		Str("policy", string(e.normalizer.Policy)).
		Int("primary_rows", rs.PrimaryCount).
		Int("secondary_rows", rs.SecondaryCount).
		Int("merged", rs.MergedCount).
		Int("unmatched", rs.UnmatchedCount).
		Dur("elapsed", time.Since(start)).
		Msg("merge complete")

	return rs, nil
}

// ValidateKey checks that key belongs to the intersection of a and b. An
// empty dataset places no constraint on the key.
func ValidateKey(a, b dataset.Dataset, key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.NewInvalidKeyError(key, "key is empty")
	}
	if !a.IsEmpty() && !a.Rows[0].Has(key) {
		return errors.NewInvalidKeyError(key, "not a field of the primary dataset")
	}
	if !b.IsEmpty() && !b.Rows[0].Has(key) {
		return errors.NewInvalidKeyError(key, "not a field of the secondary dataset")
	}
	return nil
}

func (e *Engine) match(lookup func(string) (dataset.Row, bool), row dataset.Row, key string) (dataset.Row, bool) {
	k, eligible := e.normalizer.Key(row, key)
	if !eligible {
		return dataset.Row{}, false
	}
	return lookup(k)
}

func (e *Engine) lookupFunc(b dataset.Dataset, key string) func(string) (dataset.Row, bool) {
	if e.strategy == StrategyScan {
		return func(k string) (dataset.Row, bool) {
			for _, row := range b.Rows {
				if rk, ok := e.normalizer.Key(row, key); ok && rk == k {
					return row, true
				}
			}
			return dataset.Row{}, false
		}
	}

	index := e.buildIndex(b, key)
	return func(k string) (dataset.Row, bool) {
		row, ok := index[k]
		return row, ok
	}
}

// buildIndex maps each normalized key to the first secondary row carrying it.
func (e *Engine) buildIndex(b dataset.Dataset, key string) map[string]dataset.Row {
	index := make(map[string]dataset.Row, b.Len())
	for _, row := range b.Rows {
		k, ok := e.normalizer.Key(row, key)
		if !ok {
			continue
		}
		if _, exists := index[k]; exists {
			continue
		}
		index[k] = row
	}
	return index
}
