package export

import (
	"fmt"
	"io"

	"github.com/limaJavier/floorplan/pkg/model"
	"github.com/xuri/excelize/v2"
)

var roomHeader = []string{"Room", "AX", "AY", "BX", "BY", "Area"}

// WriteXlsx writes one sheet per layout: the label grid on top and the room table below it.
func WriteXlsx(w io.Writer, result model.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if len(result.Layouts) == 0 {
		if err := f.SetCellValue("Sheet1", "A1", result.Status.String()); err != nil {
			return err
		}
		_, err := f.WriteTo(w)
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, layout := range result.Layouts {
		sheet := fmt.Sprintf("Layout %d", i+1)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}

		for x, row := range layout.Grid {
			cell, err := excelize.CoordinatesToCellName(1, x+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
		}

		top := len(layout.Grid) + 2
		headerCell, _ := excelize.CoordinatesToCellName(1, top)
		if err := f.SetSheetRow(sheet, headerCell, &roomHeader); err != nil {
			return err
		}
		lastHeader, _ := excelize.CoordinatesToCellName(len(roomHeader), top)
		if err := f.SetCellStyle(sheet, headerCell, lastHeader, headerStyle); err != nil {
			return err
		}

		for j, room := range layout.Rooms {
			cell, _ := excelize.CoordinatesToCellName(1, top+j+1)
			values := []any{room.Label.String(), room.Rect.AX, room.Rect.AY, room.Rect.BX, room.Rect.BY, room.Area}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return err
			}
		}

		objectiveCell, _ := excelize.CoordinatesToCellName(1, top+len(layout.Rooms)+2)
		objective := []any{"Objective", layout.Objective.Total}
		if err := f.SetSheetRow(sheet, objectiveCell, &objective); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
