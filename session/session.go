// Package session holds the state of one interactive merge: the two loaded
// datasets, their common columns, the selected key and the latest result.
//
// A Session is safe for concurrent use. Every operation takes the session
// lock, so at most one load, merge or export runs at a time.
package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
	"github.com/vegasq/tablemerge/internal/logging"
	"github.com/vegasq/tablemerge/merge"
	"github.com/vegasq/tablemerge/output"
	"github.com/vegasq/tablemerge/reader"
)

// Role names one of the two inputs of a merge.
type Role string

const (
	Primary   Role = "primary"
	Secondary Role = "secondary"
)

// Session tracks one primary/secondary pair through load, key selection,
// merge and export.
type Session struct {
	mu sync.Mutex

	id         string
	engine     *merge.Engine
	logger     zerolog.Logger
	readerOpts []reader.Option
	exportOpts []output.ExportOption

	primary   *dataset.Dataset
	secondary *dataset.Dataset
	columns   []string
	key       string
	result    *merge.ResultSet
}

// Option configures a Session.
type Option func(*Session)

// WithMergeOptions configures the merge engine.
func WithMergeOptions(opts ...merge.Option) Option {
	return func(s *Session) {
		s.engine = merge.NewEngine(opts...)
	}
}

// WithReaderOptions sets options passed to every parse.
func WithReaderOptions(opts ...reader.Option) Option {
	return func(s *Session) {
		s.readerOpts = append(s.readerOpts, opts...)
	}
}

// WithExportOptions sets options passed to every export.
func WithExportOptions(opts ...output.ExportOption) Option {
	return func(s *Session) {
		s.exportOpts = append(s.exportOpts, opts...)
	}
}

// WithLogger sets the session logger. Log events carry the session ID.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		logger:  logging.Nop,
		columns: []string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("session", s.id).Logger()
	if s.engine == nil {
		s.engine = merge.NewEngine()
	}
	s.readerOpts = append(s.readerOpts, reader.WithLogger(s.logger))
	return s
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string {
	return s.id
}

// LoadPrimary parses r as the primary dataset. name is the file name and
// selects the parser.
//
// On failure the previously loaded primary dataset, if any, is kept and the
// error is returned. On success any merge result is discarded, the common
// columns are recomputed and the key is reset to the first of them.
func (s *Session) LoadPrimary(ctx context.Context, name string, r io.Reader) error {
	return s.load(ctx, Primary, name, r)
}

// LoadSecondary parses r as the secondary dataset. It follows the same rules
// as LoadPrimary.
func (s *Session) LoadSecondary(ctx context.Context, name string, r io.Reader) error {
	return s.load(ctx, Secondary, name, r)
}

// LoadPrimaryFile loads the primary dataset from path.
func (s *Session) LoadPrimaryFile(ctx context.Context, path string) error {
	return s.loadFile(ctx, Primary, path)
}

// LoadSecondaryFile loads the secondary dataset from path.
func (s *Session) LoadSecondaryFile(ctx context.Context, path string) error {
	return s.loadFile(ctx, Secondary, path)
}

func (s *Session) loadFile(ctx context.Context, role Role, path string) error {
	// Reject unsupported types before touching the file system.
	if _, err := reader.DetectFormat(path); err != nil {
		return s.loadFailed(role, path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return s.loadFailed(role, path, fmt.Errorf("failed to open file: %w", err))
	}
	defer func() { _ = f.Close() }()

	return s.load(ctx, role, filepath.Base(path), f)
}

func (s *Session) load(ctx context.Context, role Role, name string, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := reader.Parse(ctx, r, name, s.readerOpts...)
	if err != nil {
		return s.loadFailed(role, name, err)
	}

	switch role {
	case Primary:
		s.primary = &ds
	case Secondary:
		s.secondary = &ds
	}
	s.result = nil
	s.refreshColumns()

	s.logger.Info().
		Str("role", string(role)).
		Str("file", name).
		Int("rows", ds.Len()).
		Strs("columns", s.columns).
		Str("key", s.key).
		Msg("dataset loaded")
	return nil
}

func (s *Session) loadFailed(role Role, name string, err error) error {
	s.logger.Warn().Err(err).Str("role", string(role)).Str("file", name).Msg("load failed")
	return errors.Wrap(err, fmt.Sprintf("failed to load %s file %s", role, name))
}

// refreshColumns recomputes the common columns and resets the key.
func (s *Session) refreshColumns() {
	s.columns = []string{}
	s.key = ""
	if s.primary == nil || s.secondary == nil {
		return
	}
	s.columns = merge.Intersect(*s.primary, *s.secondary)
	s.key, _ = merge.DefaultKey(s.columns)
}

// Columns returns the fields common to both datasets, in primary order.
// It is empty until both are loaded.
func (s *Session) Columns() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.columns...)
}

// Key returns the selected merge key, or "" when none is selected.
func (s *Session) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// SelectKey selects the merge key. key must be one of Columns; otherwise an
// InvalidKeyError is returned and the selection is unchanged. Selecting a
// different key discards the current result.
func (s *Session) SelectKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectKey(key)
}

func (s *Session) selectKey(key string) error {
	if !merge.Contains(s.columns, key) {
		return errors.NewInvalidKeyError(key, "not a column shared by both files")
	}
	if key != s.key {
		s.key = key
		s.result = nil
	}
	return nil
}

// Ready reports whether both datasets are loaded and a key is selected.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready()
}

func (s *Session) ready() bool {
	return s.primary != nil && s.secondary != nil && s.key != ""
}

// Merge joins the loaded datasets on the selected key and stores the result.
// It fails with ErrNotReady until Ready reports true.
func (s *Session) Merge(ctx context.Context) (*merge.ResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merge(ctx)
}

// MergeKey selects key and merges in one step.
func (s *Session) MergeKey(ctx context.Context, key string) (*merge.ResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primary == nil || s.secondary == nil {
		return nil, errors.ErrNotReady
	}
	if err := s.selectKey(key); err != nil {
		return nil, err
	}
	return s.merge(ctx)
}

func (s *Session) merge(ctx context.Context) (*merge.ResultSet, error) {
	if !s.ready() {
		return nil, errors.ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.engine.Merge(*s.primary, *s.secondary, s.key)
	if err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("merge failed")
		return nil, err
	}
	s.result = res

	s.logger.Info().
		Str("key", res.Key).
		Int("merged", res.MergedCount).
		Int("unmatched", res.UnmatchedCount).
		Dur("elapsed", time.Since(start)).
		Msg("merge finished")
	return res, nil
}

// Result returns the latest merge result, or nil.
func (s *Session) Result() *merge.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Reset discards both datasets, the key and the result. It never fails and
// may be called at any time.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.primary = nil
	s.secondary = nil
	s.columns = []string{}
	s.key = ""
	s.result = nil
	s.logger.Debug().Msg("session reset")
}

// ExportMerged writes the merged rows of the latest result to path, or to
// output.DefaultMergedFilename when path is empty. The format follows the
// extension.
func (s *Session) ExportMerged(path string) (string, error) {
	return s.export(path, output.DefaultMergedFilename, func(r *merge.ResultSet) []dataset.Row {
		return r.MergedRows
	})
}

// ExportUnmatched writes the unmatched rows of the latest result to path, or
// to output.DefaultUnmatchedFilename when path is empty.
func (s *Session) ExportUnmatched(path string) (string, error) {
	return s.export(path, output.DefaultUnmatchedFilename, func(r *merge.ResultSet) []dataset.Row {
		return r.UnmatchedRows
	})
}

func (s *Session) export(path, fallback string, pick func(*merge.ResultSet) []dataset.Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return "", errors.ErrNoResult
	}
	if path == "" {
		path = fallback
	}
	rows := pick(s.result)
	if err := output.WriteFile(path, rows, s.exportOpts...); err != nil {
		return "", err
	}
	s.logger.Info().Str("path", path).Int("rows", len(rows)).Msg("exported rows")
	return path, nil
}
