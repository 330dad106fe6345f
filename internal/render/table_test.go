package render

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/task"
)

var now = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func record(t *testing.T, date, clock string, p task.Marker, body ...string) task.Record {
	t.Helper()
	r, err := task.NewRecord(date, clock, p, body)
	require.NoError(t, err)
	return r
}

func TestWrapExactWidth(t *testing.T) {
	line := strings.Repeat("a", BodyWidth)
	chunks := Wrap(line, BodyWidth)
	require.Len(t, chunks, 1)
	assert.Equal(t, line, chunks[0])
}

func TestWrapOneOver(t *testing.T) {
	line := strings.Repeat("a", BodyWidth+1)
	chunks := Wrap(line, BodyWidth)
	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("a", BodyWidth), chunks[0])
	assert.Equal(t, "a"+strings.Repeat(" ", BodyWidth-1), chunks[1])
	assert.Len(t, chunks[1], BodyWidth)
}

func TestWrapShortAndEmpty(t *testing.T) {
	assert.Equal(t, []string{"hi" + strings.Repeat(" ", BodyWidth-2)}, Wrap("hi", BodyWidth))
	assert.Empty(t, Wrap("", BodyWidth))
}

func TestWrapWideRunes(t *testing.T) {
	chunks := Wrap(strings.Repeat("日", 23), BodyWidth)
	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("日", 22), chunks[0])
	assert.Equal(t, "日"+strings.Repeat(" ", BodyWidth-2), chunks[1])
}

func TestRowCount(t *testing.T) {
	r := record(t, "2024-01-10", "10:00", task.Normal,
		strings.Repeat("x", 44), strings.Repeat("y", 45), "z", strings.Repeat("w", 89))
	assert.Equal(t, 1+2+1+3, RowCount(r))
}

func TestRenderLayout(t *testing.T) {
	records := []task.Record{
		record(t, "2024-01-09", "08:00", task.Critical, "Buy milk", strings.Repeat("b", 45)),
		record(t, "2024-01-11", "9:5", task.Low, "Later"),
	}
	got := Table{}.Render(records, now)

	pad := func(s string) string { return s + strings.Repeat(" ", BodyWidth-len(s)) }
	divider := "+----+------------+-------+---+---+--------------------------------------------+"
	want := strings.Join([]string{
		divider,
		"| N  |    Date    | Time  | P | D |                   Task                     |",
		divider,
		"| 1  | 2024-01-09 | 08:00 | C | O |" + pad("Buy milk") + "|",
		"|    |            |       |   |   |" + strings.Repeat("b", 44) + "|",
		"|    |            |       |   |   |" + pad("b") + "|",
		divider,
		"| 2  | 2024-01-11 | 09:05 | L | I |" + pad("Later") + "|",
		divider,
	}, "\n") + "\n"
	assert.Equal(t, want, got)
}

func TestRenderRowsShareWidth(t *testing.T) {
	records := []task.Record{
		record(t, "2024-01-10", "12:00", task.High, strings.Repeat("q", 100), "short"),
	}
	out := strings.TrimSuffix(Table{}.Render(records, now), "\n")
	lines := strings.Split(out, "\n")
	for _, l := range lines {
		assert.Len(t, l, len(lines[0]), l)
	}
	assert.Contains(t, out, "| H | T |")
}

func TestRenderEmpty(t *testing.T) {
	out := Table{}.Render(nil, now)
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.NotContains(t, out, "| 1")
}

func TestRenderIndexColumn(t *testing.T) {
	body := []task.Record{}
	for range 12 {
		body = append(body, record(t, "2024-01-11", "10:00", task.Normal, "x"))
	}
	out := Table{}.Render(body, now)
	assert.Contains(t, out, "| 9  | ")
	assert.Contains(t, out, "| 10 | ")
	assert.Contains(t, out, "| 12 | ")

	many := make([]task.Record, 1000)
	for i := range many {
		many[i] = body[0]
	}
	out = Table{}.Render(many, now)
	assert.Contains(t, out, "| 1   | ")
	assert.Contains(t, out, "| 999 | ")
	assert.Contains(t, out, "| 1000| ")
	assert.Contains(t, out, "| N   |")
	assert.True(t, strings.HasPrefix(out, "+-----+"))
}

func TestRenderColorWithForcedProfile(t *testing.T) {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(termenv.ANSI256)
	records := []task.Record{record(t, "2024-01-11", "10:00", task.Critical, "x")}

	out := Table{Color: true, Renderer: renderer}.Render(records, now)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "C")
	assert.Contains(t, out, "I")

	plain := Table{Renderer: renderer}.Render(records, now)
	assert.NotContains(t, plain, "\x1b[")
}

func TestWrapCountsTabsAndControlRunes(t *testing.T) {
	chunks := Wrap(strings.Repeat("x", BodyWidth)+"\t", BodyWidth)
	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat(" ", BodyWidth), chunks[1])

	chunks = Wrap("a\tb\x07c", BodyWidth)
	require.Len(t, chunks, 1)
	assert.Equal(t, "a b c"+strings.Repeat(" ", BodyWidth-5), chunks[0])

	// e followed by a combining acute accent counts as two cells.
	chunks = Wrap(strings.Repeat("x", BodyWidth-1)+"e\u0301", BodyWidth)
	require.Len(t, chunks, 2)
}

func TestRenderTabBodyKeepsAlignment(t *testing.T) {
	records := []task.Record{record(t, "2024-01-11", "10:00", task.Normal, "a\tb")}
	out := strings.TrimSuffix(Table{}.Render(records, now), "\n")
	lines := strings.Split(out, "\n")
	for _, l := range lines {
		assert.Len(t, l, len(lines[0]), l)
	}
}
