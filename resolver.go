package pathlink

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"regexp"
	"sync"
	"time"
)

// Metadata is the result of a successful filesystem probe.
type Metadata struct {
	IsDir bool
}

// FS is the host's filesystem probe. Metadata returns (nil, nil) when the
// path does not exist; errors are treated as "not this candidate".
type FS interface {
	Metadata(ctx context.Context, path string) (*Metadata, error)
}

// Worktree is one workspace root the host has open. ContainsEntry reports
// whether the worktree tracks the given root-relative path. Editor hosts
// answer from their in-memory entry index, which is what makes the worktree
// pass cheaper than a filesystem probe.
type Worktree interface {
	Root() string
	ContainsEntry(rel string) bool
}

// Env is the host state a resolution runs against, snapshotted at start:
// worktrees in priority order, the terminal's cwd, the user's home dir
// (empty disables "~" expansion), the navigation level, and any custom path
// regexes (pre-filtered by CompilePathRegexes).
type Env struct {
	Worktrees   []Worktree
	CWD         string
	HomeDir     string
	Navigation  Navigation
	PathRegexes []*regexp.Regexp
	FS          FS
}

// roots are the prefixes tried when absolutizing a relative candidate, in
// order: worktree roots first, then the cwd.
func (e *Env) roots() []string {
	roots := make([]string, 0, len(e.Worktrees)+1)
	for _, wt := range e.Worktrees {
		roots = append(roots, wt.Root())
	}
	if e.CWD != "" {
		roots = append(roots, e.CWD)
	}
	return roots
}

// OpenTarget is a resolved path the host can open: the absolute path, an
// optional row/column, and the byte range of the winning candidate within
// the originating line (extend by Position.SuffixLen for the hyperlink).
type OpenTarget struct {
	Path     string
	Position *RowColumn
	Range    Range
}

// HyperlinkRange is the line range to underline for this target.
func (t *OpenTarget) HyperlinkRange() Range {
	if t.Position != nil {
		return Range{t.Range.Start, t.Range.End + t.Position.SuffixLen}
	}
	return t.Range
}

// DefaultExhaustiveTimeout bounds the Exhaustive tier per resolution.
const DefaultExhaustiveTimeout = 500 * time.Millisecond

// Resolver runs the tiered resolution pipeline. At most one resolution is
// live at a time: starting a new one cancels the previous, and late results
// from a cancelled run are never delivered.
type Resolver struct {
	env               Env
	exhaustiveTimeout time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewResolver(env Env) *Resolver {
	return &Resolver{env: env, exhaustiveTimeout: DefaultExhaustiveTimeout}
}

// SetExhaustiveTimeout overrides the Exhaustive tier deadline.
func (r *Resolver) SetExhaustiveTimeout(d time.Duration) {
	r.exhaustiveTimeout = d
}

// Start begins resolving on a background goroutine, superseding any prior
// in-flight resolution. The returned channel delivers the open target (nil
// for no hit) and is closed without a send when the run is superseded or
// cancelled. Hosts should also call Cancel on terminal content changes: grid
// coordinates of a stale hover are meaningless.
func (r *Resolver) Start(mp *MaybePath) <-chan *OpenTarget {
	ctx, cancel := context.WithCancel(context.Background())

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
	r.mu.Unlock()

	out := make(chan *OpenTarget, 1)
	go func() {
		defer close(out)
		target, err := r.Resolve(ctx, mp)
		if err != nil {
			return
		}
		select {
		case out <- target:
		case <-ctx.Done():
		}
	}()

	return out
}

// Cancel aborts the in-flight resolution, if any.
func (r *Resolver) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Resolve runs the pipeline synchronously under ctx: Default tier first
// (worktrees, then filesystem), escalating to Advanced and Exhaustive as the
// navigation level allows. The first successful probe wins. A nil target
// with nil error means resolution completed with no hit.
func (r *Resolver) Resolve(ctx context.Context, mp *MaybePath) (*OpenTarget, error) {
	env := r.env
	roots := env.roots()

	if target, err := r.runTier(ctx, mp.DefaultVariants(), &env, roots, true); target != nil || err != nil {
		return target, err
	}

	if env.Navigation >= NavigationAdvanced {
		if target, err := r.runTier(ctx, mp.AdvancedVariants(env.PathRegexes), &env, roots, false); target != nil || err != nil {
			return target, err
		}
	}

	if env.Navigation >= NavigationExhaustive {
		deadline, cancel := context.WithTimeout(ctx, r.exhaustiveTimeout)
		defer cancel()
		target, err := r.runTier(deadline, mp.ExhaustiveVariants(), &env, roots, false)
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			// Budget exhausted, not superseded: report a clean miss.
			return nil, nil
		}
		return target, err
	}

	return nil, nil
}

// runTier drains one tier, polling cancellation between variants and before
// every probe. checkWorktrees enables the cheap worktree-entry pass that
// only the Default tier performs.
func (r *Resolver) runTier(ctx context.Context, variants iter.Seq[MaybePathVariant], env *Env, roots []string, checkWorktrees bool) (*OpenTarget, error) {
	for variant := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if checkWorktrees {
			if target := matchWorktrees(env.Worktrees, &variant); target != nil {
				return target, nil
			}
		}

		for _, candidate := range variant.AbsolutizedVariations(roots, env.HomeDir) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			meta, err := env.FS.Metadata(ctx, candidate.Path)
			if err != nil {
				slog.Debug("path probe failed", "path", candidate.Path, "err", err)
				continue
			}
			if meta != nil {
				return &OpenTarget{Path: candidate.Path, Position: candidate.Position, Range: candidate.Range}, nil
			}
		}
	}

	return nil, ctx.Err()
}

// matchWorktrees checks a variant's relative variations, positioned first,
// against each worktree's entries.
func matchWorktrees(worktrees []Worktree, variant *MaybePathVariant) *OpenTarget {
	for _, wt := range worktrees {
		for _, rel := range variant.RelativeVariations(wt.Root()) {
			if wt.ContainsEntry(rel.Path) {
				return &OpenTarget{
					Path:     joinRoot(wt.Root(), rel.Path),
					Position: rel.Position,
					Range:    rel.Range,
				}
			}
		}
	}
	return nil
}

// OSFS probes the real filesystem with os.Stat.
type OSFS struct{}

func (OSFS) Metadata(ctx context.Context, path string) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Metadata{IsDir: info.IsDir()}, nil
}

// DirWorktree is a Worktree backed by a directory on the real filesystem,
// for hosts without an entry index; its ContainsEntry stats the path.
type DirWorktree struct {
	Dir string
}

func (w DirWorktree) Root() string { return w.Dir }

func (w DirWorktree) ContainsEntry(rel string) bool {
	if rel == "" || isAbsolutePath(rel) {
		return false
	}
	_, err := os.Stat(joinRoot(w.Dir, rel))
	return err == nil
}
