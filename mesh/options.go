// SPDX-License-Identifier: MIT

package mesh

import (
	"math"

	"github.com/katalvlaran/hemesh/topology"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultVertexCount selects the general polygon family.
	DefaultVertexCount = topology.Polygon

	// DefaultEpsilon is the absolute area below which an input cell is
	// rejected as degenerate.
	DefaultEpsilon = 1e-14

	// DefaultSubdomain is the tag given to every input cell unless
	// WithSubdomains says otherwise.
	DefaultSubdomain = 1
)

// ---------- Internal panic messages ----------

const (
	panicVertexCountInvalid = "mesh: WithVertexCount: nv must be 0, 3 or 4"
	panicSubdomainZero      = "mesh: WithSubdomains: tag 0 is reserved for the exterior"
	panicEpsilonInvalid     = "mesh: WithEpsilon: eps must be finite, non-negative"
)

// Option configures FromSimpleMesh. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*Options)

// Options holds the resolved construction settings.
type Options struct {
	nv         int     // DefaultVertexCount
	subdomains []int   // nil ⇒ DefaultSubdomain everywhere
	eps        float64 // DefaultEpsilon
}

// WithVertexCount fixes the mesh-wide vertex count: topology.Polygon (0),
// topology.Triangle (3) or topology.Quadrilateral (4). The hint selects the
// refinement and coarsening family used by Refine and Coarsen.
func WithVertexCount(nv int) Option {
	if nv != topology.Polygon && nv != topology.Triangle && nv != topology.Quadrilateral {
		panic(panicVertexCountInvalid)
	}

	return func(o *Options) { o.nv = nv }
}

// WithSubdomains assigns one tag per input cell: positive tags are interior
// regions, negative tags are holes. The slice is copied.
func WithSubdomains(tags []int) Option {
	for _, tag := range tags {
		if tag == topology.ExteriorTag {
			panic(panicSubdomainZero)
		}
	}
	cp := append([]int(nil), tags...)

	return func(o *Options) { o.subdomains = cp }
}

// WithEpsilon sets the degenerate-area tolerance.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// DefaultOptions returns the zero-configuration settings.
func DefaultOptions() Options {
	return Options{nv: DefaultVertexCount, eps: DefaultEpsilon}
}

// gatherOptions applies opts over DefaultOptions in order.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
