// Package render draws the task list as a fixed-width bordered table.
package render

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tasklist/internal/task"
)

const (
	BodyWidth  = 44
	dateWidth  = 10
	timeWidth  = 5
	indexWidth = 3
	taskTitle  = "Task"
)

// Table renders records. With Color set, markers are drawn on their colour
// tag background; otherwise the bare letter is printed. Renderer decides the
// colour profile; nil means lipgloss's default, which detects it from stdout.
type Table struct {
	Color    bool
	Renderer *lipgloss.Renderer
}

// Render returns the whole table, header included, with urgency computed
// against now. The result ends with a newline.
func (t Table) Render(records []task.Record, now time.Time) string {
	width := indexColumnWidth(len(records))
	divider := dividerLine(width)

	var b strings.Builder
	b.WriteString(divider)
	b.WriteString(headerLine(width))
	b.WriteString(divider)
	for i, r := range records {
		t.writeRecord(&b, i+1, width, r, now)
		b.WriteString(divider)
	}
	return b.String()
}

func (t Table) writeRecord(b *strings.Builder, pos, width int, r task.Record, now time.Time) {
	num := padRight(strconv.Itoa(pos), width)
	blankNum := strings.Repeat(" ", width)
	first := true
	for _, line := range r.Body {
		for _, chunk := range Wrap(line, BodyWidth) {
			if first {
				b.WriteString("| " + num + "| " + r.Date + " | " + r.Time + " | " +
					t.marker(r.Priority) + " | " + t.marker(r.Urgency(now).Marker()) + " |" + chunk + "|\n")
				first = false
				continue
			}
			b.WriteString("| " + blankNum + "| " + strings.Repeat(" ", dateWidth) + " | " +
				strings.Repeat(" ", timeWidth) + " |   |   |" + chunk + "|\n")
		}
	}
}

func (t Table) marker(m task.Marker) string {
	if !t.Color {
		return m.Letter
	}
	style := lipgloss.NewStyle()
	if t.Renderer != nil {
		style = t.Renderer.NewStyle()
	}
	return style.
		Background(lipgloss.Color(m.Color)).
		Foreground(lipgloss.Color("0")).
		Render(m.Letter)
}

// Wrap cuts line into chunks of exactly width display cells, padding the
// last chunk with spaces. A wide rune that would straddle a boundary starts
// the next chunk. Control characters are drawn as a space and zero-width
// runes take one cell. An empty line yields no chunks.
func Wrap(line string, width int) []string {
	var chunks []string
	var cur strings.Builder
	used := 0
	for _, r := range line {
		if unicode.IsControl(r) {
			r = ' '
		}
		w := max(runewidth.RuneWidth(r), 1)
		if used+w > width && used > 0 {
			chunks = append(chunks, cur.String()+strings.Repeat(" ", width-used))
			cur.Reset()
			used = 0
		}
		cur.WriteRune(r)
		used += w
	}
	if used > 0 {
		chunks = append(chunks, cur.String()+strings.Repeat(" ", width-used))
	}
	return chunks
}

// RowCount is the number of physical rows a record occupies.
func RowCount(r task.Record) int {
	n := 0
	for _, line := range r.Body {
		n += len(Wrap(line, BodyWidth))
	}
	return n
}

// indexColumnWidth fits three digits and grows for longer lists.
func indexColumnWidth(n int) int {
	return max(indexWidth, len(strconv.Itoa(n)))
}

func dividerLine(width int) string {
	return "+" + strings.Repeat("-", width+1) +
		"+" + strings.Repeat("-", dateWidth+2) +
		"+" + strings.Repeat("-", timeWidth+2) +
		"+---+---+" + strings.Repeat("-", BodyWidth) + "+\n"
}

func headerLine(width int) string {
	left := (BodyWidth - len(taskTitle)) / 2
	title := strings.Repeat(" ", left-1) + taskTitle + strings.Repeat(" ", BodyWidth-left+1-len(taskTitle))
	return "| " + padRight("N", width) + "|    Date    | Time  | P | D |" + title + "|\n"
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
