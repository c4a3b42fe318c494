package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"sectorscreen/internal/screen"
)

// MIMEType is the content type of the produced artifacts.
const MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultSheet is used when the caller supplies no sheet name.
const DefaultSheet = "Companies"

// Plain serializes the table without styling: header row plus raw
// values, all rows and columns, missing values as blank cells.
func Plain(t screen.Table, sheet string) (*bytes.Buffer, error) {
	f, err := newWorkbook(t, sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.WriteToBuffer()
}

// Styled serializes the table with per-cell color grading: margin
// columns get a direct red-to-green scale, ratio columns an inverse
// one. Intensities come from the gradient normalizer over the same
// table snapshot a Plain export would see, so the two downloads agree.
func Styled(t screen.Table, sheet string) (*bytes.Buffer, error) {
	f, err := newWorkbook(t, sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = DefaultSheet
	}

	// style cache: one style per fill color
	styleByColor := make(map[string]int)
	styleFor := func(color string) (int, error) {
		if id, ok := styleByColor[color]; ok {
			return id, nil
		}
		numFmt := "0.00"
		id, err := f.NewStyle(&excelize.Style{
			Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			CustomNumFmt: &numFmt,
		})
		if err != nil {
			return 0, err
		}
		styleByColor[color] = id
		return id, nil
	}

	apply := func(colName string, reverse bool) error {
		values, ok := t.NumericColumn(colName)
		if !ok {
			return fmt.Errorf("unknown gradient column %q", colName)
		}
		colIdx := columnIndex(colName)
		scaled := screen.NormalizeGradient(values, reverse)
		for row, s := range scaled {
			if s == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row+2)
			if err != nil {
				return err
			}
			styleID, err := styleFor(gradientColor(*s))
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return err
			}
		}
		return nil
	}

	for _, col := range screen.GradientColumns() {
		if err := apply(col, false); err != nil {
			return nil, err
		}
	}
	for _, col := range screen.InverseGradientColumns() {
		if err := apply(col, true); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func newWorkbook(t screen.Table, sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]any, 0, len(screen.Columns()))
	for _, c := range screen.Columns() {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	for i, rec := range t {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := rec.Values()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func columnIndex(name string) int {
	for i, c := range screen.Columns() {
		if c == name {
			return i
		}
	}
	return -1
}

// Color scale endpoints, matching the common red/yellow/green Excel
// conditional-format palette.
var (
	scaleLow  = [3]int{0xF8, 0x69, 0x6B}
	scaleMid  = [3]int{0xFF, 0xEB, 0x84}
	scaleHigh = [3]int{0x63, 0xBE, 0x7B}
)

// gradientColor maps a normalized intensity in [0,1] to a hex fill.
func gradientColor(x float64) string {
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	var from, to [3]int
	var frac float64
	if x < 0.5 {
		from, to = scaleLow, scaleMid
		frac = x * 2
	} else {
		from, to = scaleMid, scaleHigh
		frac = (x - 0.5) * 2
	}
	var rgb [3]int
	for i := range rgb {
		rgb[i] = from[i] + int(frac*float64(to[i]-from[i]))
	}
	return fmt.Sprintf("%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}
