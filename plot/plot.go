// Package plot renders a signal and its detected breakpoints to a Plotly
// HTML figure: the signal as a line trace, with a dashed vertical marker
// at each breakpoint.
package plot

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/MetalBlueberry/go-plotly/offline"

	cp "github.com/invertedv/changepoint"
)

// Browser is the command used to open a figure when Show is set;
// overridable in tests.
var Browser = "xdg-open"

// Def specifies the figure's presentation.
type Def struct {
	Show     bool    // open the figure in Browser after rendering
	Title    string  // plot title
	XTitle   string  // x-axis title
	YTitle   string  // y-axis title
	Height   float64 // figure height in pixels
	Width    float64 // figure width in pixels
	FileName string  // output HTML file; empty means a temp file
}

// Signal renders dim (a 0-based dimension index into signal) as a line
// trace with vertical markers at each breakpoint.
func Signal(signal cp.Signal, dim int, breakpoints []int, def *Def) error {
	if dim < 0 || dim >= signal.Dims() {
		return cp.Wrap(cp.OutOfRange, "plot.Signal", cp.Segment{}, float64(dim), nil)
	}
	if def == nil {
		def = &Def{}
	}

	row := signal.Data[dim]
	x := make([]float64, len(row))
	for i := range row {
		x[i] = float64(i)
	}

	trace := &grob.Scatter{
		Type: grob.TraceTypeScatter,
		X:    x,
		Y:    row,
		Mode: grob.ScatterModeLines,
		Name: "signal",
		Line: &grob.ScatterLine{Color: "black"},
	}

	fig := &grob.Fig{Data: grob.Traces{trace}}

	ymin, ymax := minMax(row)
	for _, b := range breakpoints {
		fig.AddTraces(&grob.Scatter{
			Type: grob.TraceTypeScatter,
			X:    []float64{float64(b), float64(b)},
			Y:    []float64{ymin, ymax},
			Mode: grob.ScatterModeLines,
			Name: fmt.Sprintf("breakpoint %d", b),
			Line: &grob.ScatterLine{Color: "red", Dash: "dash"},
		})
	}

	return render(fig, nil, def)
}

func minMax(vals []float64) (lo, hi float64) {
	if len(vals) == 0 {
		return 0, 0
	}

	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}

// render lays out fig per def and writes/opens it: newlines in the title
// become <br>, a temp file is used when FileName is empty, and the
// browser is only launched when Show is set.
func render(fig *grob.Fig, lay *grob.Layout, def *Def) error {
	def.Title = strings.ReplaceAll(def.Title, "\n", "<br>")

	if lay == nil {
		lay = &grob.Layout{}
	}

	if def.Title != "" {
		lay.Title = &grob.LayoutTitle{Text: def.Title}
	}
	if def.YTitle != "" {
		lay.Yaxis = &grob.LayoutYaxis{Title: &grob.LayoutYaxisTitle{Text: def.YTitle}, Showline: grob.True}
	}
	if def.XTitle != "" {
		lay.Xaxis = &grob.LayoutXaxis{Title: &grob.LayoutXaxisTitle{Text: def.XTitle}}
	}
	if def.Width > 0 {
		lay.Width = def.Width
	}
	if def.Height > 0 {
		lay.Height = def.Height
	}

	fig.Layout = lay

	tmp := false
	if def.FileName == "" {
		tmp = true
		def.FileName = tempFileName()
	}

	offline.ToHtml(fig, def.FileName)

	if def.Show {
		cmd := exec.Command(Browser, def.FileName)
		if err := cmd.Start(); err != nil {
			return err
		}

		time.Sleep(time.Second) // let the browser load before an early temp-file removal
	}

	if tmp && def.Show {
		if err := os.Remove(def.FileName); err != nil {
			return err
		}
	}

	return nil
}

func tempFileName() string {
	return fmt.Sprintf("%s/changepoint%s.html", os.TempDir(), strconv.FormatUint(uint64(rand.Uint32()), 10))
}
