// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/stctl/internal/config"
	"github.com/tfctl/stctl/internal/filters"
	"github.com/tfctl/stctl/internal/log"
)

// Options controls rendering.
type Options struct {
	Format  string // text, json or yaml
	Attrs   []string
	Filter  string
	Sort    string
	Titles  bool
	Color   bool
	Padding int
	// Now anchors relative expiry times in text output. Defaults to time.Now.
	Now time.Time
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Write renders rows to w. If w is nil, os.Stdout is used.
func Write(w io.Writer, rows []Row, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	attrs := opts.Attrs
	if len(attrs) == 0 {
		attrs = DefaultAttrs
	}

	dataset, err := project(rows, attrs, filters.BuildFilters(opts.Filter))
	if err != nil {
		return err
	}
	SortDataset(dataset, opts.Sort)

	switch opts.Format {
	case "json":
		b, err := json.MarshalIndent(dataset, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(dataset)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		for _, row := range dataset {
			if exp, ok := row["expires"].(string); ok && exp != "" {
				if t, err := time.Parse(time.RFC3339, exp); err == nil {
					row["expires"] = humanize.RelTime(t, now, "ago", "from now")
				}
			}
		}
		TableWriter(dataset, attrs, opts, w)
		return nil
	}
}

// project selects attrs from each row that passes fs, using gjson paths over
// the row's JSON form.
func project(rows []Row, attrs []string, fs []filters.Filter) ([]map[string]interface{}, error) {
	dataset := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		b, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("json marshal: %w", err)
		}
		doc := gjson.ParseBytes(b)
		if !filters.Match(doc, fs) {
			continue
		}

		out := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			v := doc.Get(attr)
			if !v.Exists() {
				log.Debugf("unknown attribute %q", attr)
			}
			out[attr] = v.Value()
		}
		dataset = append(dataset, out)
	}
	return dataset, nil
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(resultSet []map[string]interface{}, attrs []string, opts Options, w io.Writer) {
	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if ColorEnabled(opts.Color, w) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			row = append(row, InterfaceToString(result[attr], "-"))
		}
		rows = append(rows, row)
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(attrs...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// ColorEnabled reports whether colored output should be produced. Color is
// only used when requested and w is a terminal.
func ColorEnabled(requested bool, w io.Writer) bool {
	if !requested {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// getColors returns configured color values for table rendering, falling back
// to defaults chosen for the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
