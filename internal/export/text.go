package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/limaJavier/floorplan/pkg/model"
)

const cellWidth = 10

// WriteText prints every layout as a label grid padded to fixed-width columns, followed by the room
// corners and the objective terms.
func WriteText(w io.Writer, result model.Result) error {
	var builder strings.Builder
	fmt.Fprintln(&builder, result.Status)

	for _, layout := range result.Layouts {
		for _, row := range layout.Grid {
			for _, cell := range row {
				builder.WriteString(cell)
				builder.WriteString(strings.Repeat(" ", max(cellWidth-len(cell), 1)))
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")

		for _, room := range layout.Rooms {
			fmt.Fprintf(&builder, "%v\na:(%d,%d), b:(%d,%d)\n\n", room.Label, room.Rect.AX, room.Rect.AY, room.Rect.BX, room.Rect.BY)
		}

		objective := layout.Objective
		fmt.Fprintf(&builder, "sunlit %d\n", objective.Sunlit)
		fmt.Fprintf(&builder, "lessThan %d\n", objective.LessThan)
		fmt.Fprintf(&builder, "greaterThan %d\n", objective.GreaterThan)
		fmt.Fprintf(&builder, "bedroomDistance %d\n", objective.BedroomDistance)
		fmt.Fprintf(&builder, "bathroomDistance %d\n", objective.BathroomDistance)
		builder.WriteString("****\n")
	}

	_, err := io.WriteString(w, builder.String())
	return err
}
