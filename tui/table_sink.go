// Package tui renders the stat registry as a terminal table.
package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/rivo/tview"

	"github.com/jiyeyuran/streamstats"
)

// TableSink is a streamstats.RenderSink keeping one table row per stat id, in
// the order ids were first seen. When attached to a running application,
// updates are queued onto its event loop until Stop is called.
type TableSink struct {
	mu         sync.Mutex
	app        *tview.Application
	stopped    bool
	table      *tview.Table
	footer     *tview.TextView
	root       *tview.Flex
	rows       map[string]int
	cells      []streamstats.Stat
	updates    uint64
	lastUpdate time.Time
	logger     logr.Logger
}

// NewTableSink builds the table. app may be nil, in which case cells are
// updated synchronously.
func NewTableSink(app *tview.Application) *TableSink {
	table := tview.NewTable().
		SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(false, false)
	table.SetBorder(true).SetTitle(" Stream stats ")

	footer := tview.NewTextView().SetDynamicColors(false)

	s := &TableSink{
		app:    app,
		table:  table,
		footer: footer,
		root: tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(table, 0, 1, false).
			AddItem(footer, 1, 0, false),
		rows:   make(map[string]int),
		logger: streamstats.NewLogger("TableSink"),
	}
	s.writeHeader()

	return s
}

// Primitive returns the root primitive to place in a layout.
func (s *TableSink) Primitive() tview.Primitive {
	return s.root
}

func (s *TableSink) Notify(id, title, value string) {
	s.mu.Lock()
	row, ok := s.rows[id]
	if !ok {
		row = len(s.rows) + 1
		s.rows[id] = row
		s.cells = append(s.cells, streamstats.Stat{})
	}
	s.cells[row-1] = streamstats.Stat{Id: id, Title: title, Value: value}
	s.updates++
	s.lastUpdate = time.Now()
	footer := s.footerText()
	s.mu.Unlock()

	if !ok {
		s.logger.V(1).Info("row added", "id", id, "row", row)
	}

	s.draw(func() {
		s.table.SetCell(row, 0, tview.NewTableCell(title).SetTextColor(tcell.ColorYellow))
		s.table.SetCell(row, 1, tview.NewTableCell(value).SetExpansion(1))
		s.footer.SetText(footer)
	})
}

// Reset drops every row.
func (s *TableSink) Reset() {
	s.mu.Lock()
	s.rows = make(map[string]int)
	s.cells = nil
	s.updates = 0
	s.lastUpdate = time.Time{}
	s.mu.Unlock()

	s.draw(func() {
		s.table.Clear()
		s.writeHeader()
		s.footer.SetText("")
	})
}

// Rows returns the number of stat rows, excluding the header.
func (s *TableSink) Rows() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.rows)
}

// Cell returns the title and value last notified for id. It does not touch
// the table, so it is safe while the application is running.
func (s *TableSink) Cell(id string) (title, value string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return "", "", false
	}
	cell := s.cells[row-1]
	return cell.Title, cell.Value, true
}

// Stop detaches the sink from the application event loop. Call it once the
// application has returned from Run; later updates are applied directly.
func (s *TableSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
}

func (s *TableSink) footerText() string {
	if s.lastUpdate.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s updates, last %s", humanize.Comma(int64(s.updates)), humanize.Time(s.lastUpdate))
}

func (s *TableSink) writeHeader() {
	s.table.SetCell(0, 0, tview.NewTableCell("Stat").SetSelectable(false).SetAttributes(tcell.AttrBold))
	s.table.SetCell(0, 1, tview.NewTableCell("Value").SetSelectable(false).SetAttributes(tcell.AttrBold))
}

func (s *TableSink) draw(fn func()) {
	s.mu.Lock()
	queue := s.app != nil && !s.stopped
	s.mu.Unlock()

	if !queue {
		fn()
		return
	}
	s.app.QueueUpdateDraw(fn)
}
