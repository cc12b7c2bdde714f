package repo

import (
	"fmt"
	"io"

	"github.com/muesli/reflow/truncate"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// ProgressAggregator folds transfer and checkout events of one clone into a
// single in-place progress line. It is not safe for concurrent use; the
// cloner serialises events.
type ProgressAggregator struct {
	out     io.Writer
	width   int
	state   domain.CloneProgressState
	newline bool
}

// NewProgressAggregator renders to out. A positive width clips the composite
// line to the terminal width.
func NewProgressAggregator(out io.Writer, width int) *ProgressAggregator {
	return &ProgressAggregator{out: out, width: width}
}

func (p *ProgressAggregator) State() domain.CloneProgressState {
	return p.state
}

func (p *ProgressAggregator) OnEvent(event domain.ProgressEvent) {
	switch ev := event.(type) {
	case domain.TransferProgress:
		p.state.ReceivedObjects = ev.ReceivedObjects
		p.state.TotalObjects = ev.TotalObjects
		p.state.IndexedObjects = ev.IndexedObjects
		p.state.IndexedDeltas = ev.IndexedDeltas
		p.state.TotalDeltas = ev.TotalDeltas
		p.state.ReceivedBytes = ev.ReceivedBytes
		if ev.TotalObjects > 0 && ev.ReceivedObjects == ev.TotalObjects {
			p.state.TransferComplete = true
		}
	case domain.CheckoutProgress:
		p.state.CheckoutCurrent = ev.Current
		p.state.CheckoutTotal = ev.Total
		p.state.CheckoutPath = ev.Path
	default:
		return
	}
	p.render()
}

func (p *ProgressAggregator) render() {
	if p.state.TransferComplete {
		if !p.newline {
			fmt.Fprintln(p.out)
			p.newline = true
		}
		fmt.Fprintf(p.out, "Resolving deltas %d/%d\r", p.state.IndexedDeltas, p.state.TotalDeltas)
		return
	}
	fmt.Fprint(p.out, p.clip(p.compositeLine())+"\r")
}

func (p *ProgressAggregator) compositeLine() string {
	s := p.state
	return fmt.Sprintf("net %3d%% (%4d kb, %5d/%5d)  /  idx %3d%% (%5d/%5d)  /  chk %3d%% (%4d/%4d) %s",
		percent(s.ReceivedObjects, s.TotalObjects),
		s.ReceivedBytes/1024,
		s.ReceivedObjects,
		s.TotalObjects,
		percent(s.IndexedObjects, s.TotalObjects),
		s.IndexedObjects,
		s.TotalObjects,
		percent(uint64(max(s.CheckoutCurrent, 0)), uint64(max(s.CheckoutTotal, 0))),
		s.CheckoutCurrent,
		s.CheckoutTotal,
		s.CheckoutPath,
	)
}

func (p *ProgressAggregator) clip(line string) string {
	if p.width <= 1 {
		return line
	}
	return truncate.String(line, uint(p.width-1))
}

func percent(done, total uint64) uint64 {
	if total == 0 {
		return 0
	}
	return 100 * done / total
}
