// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/rpmlib/lib/config"
)

// printer renders command results in the configured format.
type printer struct {
	w        io.Writer
	format   string
	renderer *lipgloss.Renderer
}

func newPrinter(w io.Writer, output config.OutputConfig) *printer {
	// The profile is always set explicitly: the renderer otherwise
	// re-detects from the process environment rather than from w.
	renderer := lipgloss.NewRenderer(w)
	switch output.Color {
	case "always":
		renderer.SetColorProfile(termenv.ANSI256)
	case "never":
		renderer.SetColorProfile(termenv.Ascii)
	default:
		if isTerminal(w) {
			renderer.SetColorProfile(termenv.ANSI256)
		} else {
			renderer.SetColorProfile(termenv.Ascii)
		}
	}
	return &printer{w: w, format: output.Format, renderer: renderer}
}

// structured reports whether results are emitted as JSON or YAML.
func (p *printer) structured() bool {
	return p.format == "json" || p.format == "yaml"
}

// value writes v as JSON or YAML.
func (p *printer) value(v any) error {
	switch p.format {
	case "yaml":
		encoder := yaml.NewEncoder(p.w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(p.w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}
}

// table writes rows under a bold header with a rule beneath it and no
// other borders.
func (p *printer) table(headers []string, rows [][]string) {
	headerStyle := p.renderer.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := p.renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		BorderHeader(true).
		BorderStyle(p.renderer.NewStyle().Faint(true)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, column int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(p.w, t.Render())
}

// styled applies a foreground colour to text when colour is enabled.
func (p *printer) styled(color lipgloss.Color, text string) string {
	return p.renderer.NewStyle().Foreground(color).Render(text)
}

var (
	colorAdded   = lipgloss.Color("2")
	colorRemoved = lipgloss.Color("1")
	colorChanged = lipgloss.Color("3")
)
