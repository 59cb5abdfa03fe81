package config

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/hall"
)

// LoadInventoryXLSX reads a booth inventory from the first sheet of an XLSX
// workbook. The header row must contain "area" and "count" columns; casing
// and surrounding whitespace are ignored. Blank rows are skipped.
func LoadInventoryXLSX(path string) ([]hall.BoothSpec, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFileNotFound, "opening inventory workbook %s", path)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidFormat, "reading sheet %s", sheet)
	}
	if len(rows) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInventory, "inventory sheet %s has no data rows", sheet)
	}

	areaCol, countCol := -1, -1
	for i, val := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "area":
			areaCol = i
		case "count":
			countCol = i
		}
	}
	if areaCol == -1 || countCol == -1 {
		return nil, errors.New(errors.ErrCodeInvalidInventory, "inventory sheet %s is missing area/count columns", sheet)
	}

	var specs []hall.BoothSpec
	for n, row := range rows[1:] {
		if len(row) <= areaCol || len(row) <= countCol {
			continue
		}
		areaText := strings.TrimSpace(row[areaCol])
		countText := strings.TrimSpace(row[countCol])
		if areaText == "" && countText == "" {
			continue
		}

		area, err := strconv.ParseFloat(areaText, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInventory, "row %d: bad area %q", n+2, areaText)
		}
		count, err := strconv.Atoi(countText)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInventory, "row %d: bad count %q", n+2, countText)
		}
		specs = append(specs, hall.BoothSpec{Area: area, Count: count})
	}

	if err := hall.ValidateInventory(specs); err != nil {
		return nil, err
	}
	return specs, nil
}
