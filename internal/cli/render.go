package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/what-to-code-complete/where-is/pkg/types"
)

// renderer writes command output to out and status lines to status.
type renderer struct {
	out     io.Writer
	status  io.Writer
	noColor bool
}

func newRenderer(out, status io.Writer, noColor bool) *renderer {
	return &renderer{out: out, status: status, noColor: noColor}
}

// paint returns a color that honors --no-color on top of fatih/color's own
// terminal detection.
func (r *renderer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.noColor {
		c.DisableColor()
	}
	return c
}

type statusStyle struct {
	icon string
	attr color.Attribute
}

var (
	styleInfo    = statusStyle{"i", color.FgBlue}
	styleSuccess = statusStyle{"✓", color.FgGreen}
	styleWarn    = statusStyle{"!", color.FgYellow}
	styleError   = statusStyle{"✗", color.FgRed}
)

func (r *renderer) statusLine(style statusStyle, msg string) {
	c := r.paint(style.attr)
	for _, line := range strings.Split(strings.TrimRight(msg, "\n"), "\n") {
		fmt.Fprintln(r.status, c.Sprintf(" [%s] %s", style.icon, line))
	}
}

func (r *renderer) Info(msg string)    { r.statusLine(styleInfo, msg) }
func (r *renderer) Success(msg string) { r.statusLine(styleSuccess, msg) }
func (r *renderer) Warn(msg string)    { r.statusLine(styleWarn, msg) }
func (r *renderer) Error(msg string)   { r.statusLine(styleError, msg) }

// JSON writes v as indented JSON to out.
func (r *renderer) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

// table lays rows out with tabwriter and then colors whole lines, so the
// escape codes never skew column widths. lineColor picks the color of row i;
// nil leaves it plain.
func (r *renderer) table(title string, header []string, rows [][]string, lineColor func(i int) *color.Color) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	if title != "" {
		r.paint(color.Bold, color.FgMagenta).Fprintln(r.out, title)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		switch {
		case i == 0:
			line = r.paint(color.Bold).Sprint(line)
		case lineColor != nil:
			if c := lineColor(i - 1); c != nil {
				line = c.Sprint(line)
			}
		}
		fmt.Fprintln(r.out, line)
	}
}

// Locations prints an entry's locations and what exists at each.
func (r *renderer) Locations(name string, statuses []types.LocationStatus) {
	rows := make([][]string, len(statuses))
	for i, s := range statuses {
		rows[i] = []string{s.Path, strconv.FormatBool(s.Exists), strconv.FormatBool(s.IsFile), strconv.FormatBool(s.IsDir)}
	}
	found, missing := r.paint(color.FgGreen), r.paint(color.FgRed)
	r.table(fmt.Sprintf("Config files found for %s", name),
		[]string{"LOCATION", "EXISTS", "IS FILE", "IS FOLDER"}, rows,
		func(i int) *color.Color {
			if statuses[i].Exists {
				return found
			}
			return missing
		})
}

// KeyValues prints a two-column table.
func (r *renderer) KeyValues(title string, pairs [][2]string) {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	r.table(title, []string{"KEY", "VALUE"}, rows, nil)
}
