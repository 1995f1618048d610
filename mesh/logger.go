// SPDX-License-Identifier: MIT

package mesh

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerPtr holds the mesh logger; it is never nil after init.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger routes the mesh package's records to l. Meshes log nothing until
// a logger is set; SetLogger(nil) silences them again.
//
// Records, by message:
//   - Info "mesh: refined": one per Refine call, with family (polygon,
//     triangle, quad), the red/green/blue cell counts, split edges and the
//     new numCells. Triangle records add restored green pairs, quad records
//     add converted blue families.
//   - Info "mesh: coarsened": one per Coarsen call, with op, the removed
//     nodes or merged families, and numCells.
//   - Debug "mesh: built from simple mesh" and "mesh: reversed clockwise
//     cell" from FromSimpleMesh.
//   - Debug "mesh: polygon closure", "mesh: triangle closure", "mesh: quad
//     closure": marked and closed cell counts and the number of passes.
//   - Debug "mesh: marked cells kept": marked cells Coarsen could not merge.
//
// For example, to see closure passes on stderr:
//
//	mesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//	    &slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
