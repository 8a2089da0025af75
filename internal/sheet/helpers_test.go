package sheet

import (
	"io"
	"log/slog"
	"testing"

	"github.com/keygrid/keygrid/sheet-go/internal/config"
	"github.com/keygrid/keygrid/sheet-go/internal/curve"
)

// seekRecorder captures timeline seeks issued by the view.
type seekRecorder struct {
	frames []float64
}

func (r *seekRecorder) Seek(frame float64) { r.frames = append(r.frames, frame) }

// fixture wires the sample model to a view with an identity time mapping:
// one pixel per frame, left edge at 0, 20px rows. Row order (all expanded):
//
//	0 Read1  1 Group1  2 Transform1  3 translate  4 translate.x
//	5 translate.y  6 Grade1  7 gain  8 Blur1  9 size
type fixture struct {
	model  *curve.Model
	layout *TableLayout
	stack  *Stack
	view   *View
	seeks  *seekRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		model: curve.NewSampleModel(),
		seeks: &seekRecorder{},
	}
	f.layout = NewTableLayout(f.model, 0)
	f.layout.SetWidth(800)
	f.stack = NewStack(f.model)
	cfg := config.Config{ClickTolerancePx: 5, KeyframeGlyphPx: 14}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.view = NewView(f.model, f.layout, f.seeks, f.stack, cfg, logger)
	return f
}

func (f *fixture) node(t *testing.T, name string) *curve.Node {
	t.Helper()
	for _, id := range f.model.Nodes() {
		if n, ok := f.model.Node(id); ok && n.Name == name {
			return n
		}
	}
	t.Fatalf("node %q not in model", name)
	return nil
}

func (f *fixture) param(t *testing.T, node, param string) *curve.Param {
	t.Helper()
	n := f.node(t, node)
	for _, pid := range n.Params {
		if p, ok := f.model.Param(pid); ok && p.Name == param {
			return p
		}
	}
	t.Fatalf("param %q not on node %q", param, node)
	return nil
}

// rowCenterY returns the vertical center of the i-th visible row.
func rowCenterY(i int) float64 { return float64(i)*20 + 10 }
