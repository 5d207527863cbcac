package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Flyrell/shopsum/internal/export"
	"github.com/Flyrell/shopsum/internal/summary"
	"github.com/Flyrell/shopsum/internal/tool"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// frozenColumns stay visible while scrolling horizontally (Day, Type).
const frozenColumns = 2

type tableColumn struct {
	title string
	width int
	right bool
}

// summaryColumns follow export.Columns order.
var summaryColumns = []tableColumn{
	{"Day", 10, false},
	{"Type", 9, false},
	{"Orders", 6, true},
	{"Gross", 10, true},
	{"Discounts", 10, true},
	{"Returns", 9, true},
	{"Net", 10, true},
	{"Shipping", 9, true},
	{"Duties", 8, true},
	{"Additional", 10, true},
	{"Taxes", 9, true},
	{"Total", 10, true},
	{"Qty", 5, true},
	{"Qty ret.", 8, true},
	{"Week end", 10, false},
	{"Month end", 10, false},
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	footerStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	returningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CFCF"))
)

type summaryModel struct {
	store      string
	rows       [][]string
	totals     []string
	scrollX    int // first visible scrollable column (offset past the frozen ones)
	scrollY    int // first visible row
	cursorRow  int
	termWidth  int
	termHeight int
}

func newSummaryModel(res tool.Result) summaryModel {
	rows := make([][]string, len(res.Summary))
	for i, r := range res.Summary {
		rows[i] = export.Record(r)
	}
	totals := export.Record(summary.Totals(res.Summary))
	totals[0], totals[1] = "Total", ""
	return summaryModel{
		store:      res.Store,
		rows:       rows,
		totals:     totals,
		termWidth:  120,
		termHeight: 40,
	}
}

func scrollableColumns() int { return len(summaryColumns) - frozenColumns }

func frozenWidth() int {
	w := 0
	for _, c := range summaryColumns[:frozenColumns] {
		w += c.width + 3
	}
	return w
}

// fitFrom returns how many scrollable columns starting at offset fit in the
// terminal width. At least one column is always shown.
func (m summaryModel) fitFrom(offset int) int {
	available := m.termWidth - frozenWidth()
	n := 0
	for i := frozenColumns + offset; i < len(summaryColumns); i++ {
		available -= summaryColumns[i].width + 3
		if available < 0 {
			break
		}
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (m summaryModel) visibleCols() int {
	return m.fitFrom(m.scrollX)
}

func (m summaryModel) visibleRows() int {
	// title(1) + header(1) + separator(1) + totals separator(1) + totals(1) + footer(2)
	available := m.termHeight - 7
	if available < 1 {
		return 1
	}
	if available > len(m.rows) {
		return len(m.rows)
	}
	return available
}

func (m summaryModel) maxScrollX() int {
	for offset := 0; offset < scrollableColumns(); offset++ {
		if offset+m.fitFrom(offset) >= scrollableColumns() {
			return offset
		}
	}
	return scrollableColumns() - 1
}

func (m summaryModel) maxScrollY() int {
	max := len(m.rows) - m.visibleRows()
	if max < 0 {
		return 0
	}
	return max
}

func (m summaryModel) Init() tea.Cmd {
	return nil
}

func (m summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m = m.ensureCursorVisible()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "down", "j":
			if m.cursorRow < len(m.rows)-1 {
				m.cursorRow++
			}
		case "up", "k":
			if m.cursorRow > 0 {
				m.cursorRow--
			}
		case "pgdown", " ":
			m.cursorRow += m.visibleRows()
			if m.cursorRow > len(m.rows)-1 {
				m.cursorRow = len(m.rows) - 1
			}
		case "pgup":
			m.cursorRow -= m.visibleRows()
			if m.cursorRow < 0 {
				m.cursorRow = 0
			}
		case "home", "g":
			m.cursorRow = 0
		case "end", "G":
			m.cursorRow = len(m.rows) - 1
		case "right", "l":
			m.scrollX++
		case "left", "h":
			m.scrollX--
		}
		m = m.ensureCursorVisible()
	}
	return m, nil
}

// ensureCursorVisible adjusts vertical scroll so the cursor is within the
// viewport, then clamps both scroll offsets.
func (m summaryModel) ensureCursorVisible() summaryModel {
	if m.cursorRow < m.scrollY {
		m.scrollY = m.cursorRow
	}
	if m.cursorRow >= m.scrollY+m.visibleRows() {
		m.scrollY = m.cursorRow - m.visibleRows() + 1
	}
	return m.clampScroll()
}

// clampScroll ensures scroll values are within valid bounds.
func (m summaryModel) clampScroll() summaryModel {
	if m.scrollX > m.maxScrollX() {
		m.scrollX = m.maxScrollX()
	}
	if m.scrollX < 0 {
		m.scrollX = 0
	}
	if m.scrollY > m.maxScrollY() {
		m.scrollY = m.maxScrollY()
	}
	if m.scrollY < 0 {
		m.scrollY = 0
	}
	return m
}

func (m summaryModel) View() string {
	view := tableView{
		store:     m.store,
		rows:      m.rows,
		totals:    m.totals,
		columns:   m.columnIndexes(m.scrollX, m.visibleCols()),
		firstRow:  m.scrollY,
		rowCount:  m.visibleRows(),
		cursorRow: m.cursorRow,
	}
	footer := fmt.Sprintf("%s  |  row %d/%d  |  ←/→ columns  |  ↑/↓ rows  |  q quit",
		m.store, m.cursorRow+1, len(m.rows))
	return view.render() + "\n" + footerStyle.Render(footer)
}

// columnIndexes returns the frozen columns followed by count scrollable
// columns starting at offset.
func (m summaryModel) columnIndexes(offset, count int) []int {
	idx := make([]int, 0, frozenColumns+count)
	for i := 0; i < frozenColumns; i++ {
		idx = append(idx, i)
	}
	for i := 0; i < count && frozenColumns+offset+i < len(summaryColumns); i++ {
		idx = append(idx, frozenColumns+offset+i)
	}
	return idx
}

// tableView is one rendering of the summary table.
type tableView struct {
	store     string
	rows      [][]string
	totals    []string
	columns   []int
	firstRow  int
	rowCount  int
	cursorRow int // -1 disables highlighting
}

func (v tableView) render() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("--- Orders summary: %s ---", v.store)))
	b.WriteString("\n")

	titles := make([]string, len(summaryColumns))
	for i, c := range summaryColumns {
		titles[i] = c.title
	}
	b.WriteString(headerStyle.Render(v.line(titles)))
	b.WriteString("\n")
	b.WriteString(v.separator())
	b.WriteString("\n")

	end := v.firstRow + v.rowCount
	if end > len(v.rows) {
		end = len(v.rows)
	}
	for i := v.firstRow; i < end; i++ {
		line := v.line(v.rows[i])
		switch {
		case i == v.cursorRow:
			line = selectedStyle.Render(line)
		case v.rows[i][1] == string(summary.Returning):
			line = returningStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(v.separator())
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(v.line(v.totals)))
	b.WriteString("\n")
	return b.String()
}

func (v tableView) line(cells []string) string {
	parts := make([]string, len(v.columns))
	for i, idx := range v.columns {
		c := summaryColumns[idx]
		if c.right {
			parts[i] = padLeft(cells[idx], c.width)
		} else {
			parts[i] = padRight(cells[idx], c.width)
		}
	}
	return strings.Join(parts, " | ")
}

func (v tableView) separator() string {
	parts := make([]string, len(v.columns))
	for i, idx := range v.columns {
		parts[i] = strings.Repeat("-", summaryColumns[idx].width)
	}
	return strings.Join(parts, "-+-")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft right-aligns s. Amounts wider than the column are kept whole.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func runSummaryTable(cmd *cobra.Command, res tool.Result, tty bool) error {
	out := cmd.OutOrStdout()

	// Non-TTY fallback: print static table
	if !tty {
		return printStaticSummaryTable(out, res)
	}

	p := tea.NewProgram(newSummaryModel(res), tea.WithAltScreen(), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

func printStaticSummaryTable(w io.Writer, res tool.Result) error {
	m := newSummaryModel(res)
	view := tableView{
		store:     m.store,
		rows:      m.rows,
		totals:    m.totals,
		columns:   m.columnIndexes(0, scrollableColumns()),
		rowCount:  len(m.rows),
		cursorRow: -1,
	}
	_, err := fmt.Fprint(w, view.render())
	return err
}
