// Package names normalizes species names from field lists with gnparser,
// so names written with authorship or unusual spacing can be matched to
// names of the habitat catalog.
package names

import (
	"context"
	"runtime"
	"sync"

	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/classify"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/parserpool"
	"golang.org/x/sync/errgroup"
)

// Normalizer finds canonical forms of species names.
type Normalizer struct {
	pool    parserpool.Pool
	jobsNum int
}

// New creates a Normalizer that uses the given parser pool with up to
// jobsNum concurrent workers.
func New(pool parserpool.Pool, jobsNum int) *Normalizer {
	if jobsNum <= 0 {
		jobsNum = runtime.NumCPU()
	}
	return &Normalizer{pool: pool, jobsNum: jobsNum}
}

// Canonicals returns the simple and the full canonical forms of a name.
// The last result is false when the name cannot be parsed.
func (n *Normalizer) Canonicals(name string) (simple, full string, ok bool) {
	p := n.pool.Parse(name)
	if !p.Parsed || p.Canonical == nil {
		return "", "", false
	}
	return p.Canonical.Simple, p.Canonical.Full, true
}

// Suggest proposes a known name for every unknown name whose canonical
// form belongs to the known universe. The simple canonical form is tried
// first, then the full one. Names without a suggestion are not in the
// result.
func (n *Normalizer) Suggest(
	ctx context.Context,
	unknown []string,
	known classify.Membership,
) (map[string]string, error) {
	var mu sync.Mutex
	res := make(map[string]string)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(n.jobsNum)

	for _, name := range unknown {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			suggestion, ok := n.suggest(name, known)
			if !ok {
				return nil
			}
			mu.Lock()
			res[name] = suggestion
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (n *Normalizer) suggest(name string, known classify.Membership) (string, bool) {
	simple, full, ok := n.Canonicals(name)
	if !ok {
		return "", false
	}
	for _, v := range []string{simple, full} {
		if v != "" && v != name && known.IsKnown(v) {
			return v, true
		}
	}
	return "", false
}

// Replace returns a copy of names where every name with a suggestion is
// replaced by it.
func Replace(names []string, suggestions map[string]string) []string {
	res := make([]string, len(names))
	for i, v := range names {
		if s, ok := suggestions[v]; ok {
			res[i] = s
			continue
		}
		res[i] = v
	}
	return res
}
