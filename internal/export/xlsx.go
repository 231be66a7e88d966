package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"haccp/internal/service"
)

const (
	defaultSheet  = "Sheet1"
	maxSheetName  = 31
	fallbackSheet = "Dokumentation"
)

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// WriteXLSX renders o as a workbook with one sheet per section.
func WriteXLSX(out io.Writer, o *service.DokuOverview) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2EFDA"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}
	open, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#C00000"},
	})
	if err != nil {
		return fmt.Errorf("xlsx open style: %w", err)
	}

	names := make(map[string]bool)
	first := true

	sections := o.Sections
	if len(sections) == 0 {
		sections = []service.DokuSectionView{{Title: fallbackSheet}}
	}
	for i := range sections {
		sec := &sections[i]
		name := uniqueSheetName(sec.Title, names)
		if first {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("xlsx rename sheet: %w", err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx new sheet: %w", err)
		}
		if err := writeSheet(f, name, sec.Rows(), header, open); err != nil {
			return err
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows []service.DokuRow, headerStyle, openStyle int) error {
	head := make([]interface{}, len(columns))
	for i, c := range columns {
		head[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}

	for i := range rows {
		r := &rows[i]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			r.Section,
			r.FormKey,
			r.FormLabel,
			categoryLabel(string(r.Category)),
			periodicityLabel(string(r.Periodicity)),
			r.PeriodRef,
			r.PeriodLabel,
			r.Start.Format("02.01.2006"),
			r.LastDay.Format("02.01.2006"),
			r.EntryCount,
			r.Required,
			StatusOf(r),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
		if !r.Done && !r.Future {
			statusCell, _ := excelize.CoordinatesToCellName(len(columns), i+2)
			if err := f.SetCellStyle(sheet, statusCell, statusCell, openStyle); err != nil {
				return fmt.Errorf("xlsx status style: %w", err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
		return fmt.Errorf("xlsx col width: %w", err)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// uniqueSheetName strips characters Excel forbids, truncates to 31 runes and
// appends a counter on collisions.
func uniqueSheetName(title string, used map[string]bool) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(title))
	base = strings.Trim(base, "'")
	if base == "" {
		base = fallbackSheet
	}
	base = truncateRunes(base, maxSheetName)
	name := base
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
