// Package export renders the Dokumentation overview as CSV and XLSX files.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"haccp/internal/service"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by the CSV and XLSX exports.
var columns = []string{
	"Bereich",
	"Formular-Schlüssel",
	"Formular",
	"Kategorie",
	"Rhythmus",
	"Zeitraum",
	"Bezeichnung",
	"Beginn",
	"Ende",
	"Einträge",
	"Soll",
	"Status",
}

// Status labels for a slot.
const (
	StatusDone    = "Erledigt"
	StatusOpen    = "Offen"
	StatusPending = "Ausstehend"
)

// Writer wraps csv.Writer for exporting Dokumentation rows. Fields are
// separated by semicolons, the delimiter German Excel expects.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return &Writer{csv: cw}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows writes one CSV row per slot.
func (w *Writer) WriteRows(rows []service.DokuRow) error {
	for i := range rows {
		if err := w.csv.Write(rowToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, header and every row of o to out.
func WriteCSV(out io.Writer, o *service.DokuOverview) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRows(o.Rows()); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func rowToRecord(r *service.DokuRow) []string {
	return []string{
		r.Section,
		r.FormKey,
		r.FormLabel,
		categoryLabel(string(r.Category)),
		periodicityLabel(string(r.Periodicity)),
		r.PeriodRef,
		r.PeriodLabel,
		r.Start.Format("02.01.2006"),
		r.LastDay.Format("02.01.2006"),
		strconv.Itoa(r.EntryCount),
		strconv.Itoa(r.Required),
		StatusOf(r),
	}
}

// StatusOf returns the German status label of a slot.
func StatusOf(r *service.DokuRow) string {
	switch {
	case r.Done:
		return StatusDone
	case r.Future:
		return StatusPending
	default:
		return StatusOpen
	}
}

var categoryLabels = map[string]string{
	"CLEANING":      "Reinigung",
	"TEMPERATURE":   "Temperatur",
	"GOODS_RECEIPT": "Wareneingang",
	"OTHER":         "Sonstiges",
}

func categoryLabel(c string) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return c
}

var periodicityLabels = map[string]string{
	"DAILY":       "Täglich",
	"WEEKLY":      "Wöchentlich",
	"MONTHLY":     "Monatlich",
	"QUARTERLY":   "Quartalsweise",
	"HALF_YEARLY": "Halbjährlich",
	"YEARLY":      "Jährlich",
}

func periodicityLabel(p string) string {
	if l, ok := periodicityLabels[p]; ok {
		return l
	}
	return p
}
