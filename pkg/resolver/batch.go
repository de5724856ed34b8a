package resolver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/veesix-networks/hostnet/pkg/hieradata"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

type Result struct {
	Hostname string
	Config   *hieradata.Config
	Err      error
}

// ResolveAll resolves every snapshot concurrently. Results are returned in
// input order and a failing host does not stop the others.
func (r *Resolver) ResolveAll(ctx context.Context, snaps []*topology.Snapshot) []Result {
	results := make([]Result, len(snaps))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, snap := range snaps {
		g.Go(func() error {
			if snap != nil {
				results[i].Hostname = snap.Host.Hostname
			}
			results[i].Config, results[i].Err = r.Resolve(ctx, snap)
			return nil
		})
	}
	g.Wait()

	return results
}
