package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/preview/internal/catalog"
)

var titleCase = cases.Title(language.English)

// locationDoc collects one table row per catalog entry. Rows are written
// in catalog order regardless of callback order.
type locationDoc struct {
	rows []string
}

func newLocationDoc(n int) *locationDoc {
	return &locationDoc{rows: make([]string, n)}
}

func (d *locationDoc) set(i int, e catalog.Entry, rendered bool) {
	img := ""
	if rendered {
		img = fmt.Sprintf("![%s](../images/locations/%s.png)", e.Name, e.Name)
	}
	d.rows[i] = tableRow(
		img,
		list(e.Biome.Names()),
		displayName(e.Name),
		e.Name,
		properties(e),
		strconv.Itoa(e.Quantity),
		strconv.FormatFloat(e.ExteriorRadius, 'g', -1, 64),
	)
}

func (d *locationDoc) String() string {
	var b strings.Builder
	b.WriteString("# Location list\n\n")
	b.WriteString("All of the locations in the catalog.\n\n")
	b.WriteString("This file is generated by previewdoc.\n\n")
	b.WriteString(tableRow("Preview", "Biome", "Display name", "Name", "Properties", "Quantity", "Exterior radius"))
	b.WriteString("|" + strings.Repeat("---|", 7) + "\n")
	for _, r := range d.rows {
		b.WriteString(r)
	}
	return b.String()
}

func (d *locationDoc) save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(d.String()), 0o644)
}

// displayName turns a snake_case name into title case words.
func displayName(name string) string {
	return titleCase.String(strings.ReplaceAll(name, "_", " "))
}

func properties(e catalog.Entry) string {
	var props []string
	if e.Unique {
		props = append(props, "Unique")
	}
	return list(props)
}

func list(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "<ul><li>" + strings.Join(items, "</li><li>") + "</li></ul>"
}

func tableRow(cells ...string) string {
	return "|" + strings.Join(cells, "|") + "|\n"
}
