package console

import (
	"fmt"
	"io"
	"strings"

	"sketchgen/internal/output"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Print renders the activation report to the writer in a compact format.
func Print(w io.Writer, r output.Report) {
	fmt.Fprintf(w, "%s%s %s%s\n", colorCyan, "■", "SKETCHGEN REPORT", colorReset)

	for _, sec := range r.Sections {
		if len(sec.Items) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s%s%s\n", colorCyan, "─ "+sec.Title, colorReset)

		for _, it := range sec.Items {
			label := it.Label
			if len(label) > 20 {
				label = label[:17] + "..."
			}

			valStr := ""
			if it.Unit != "" {
				valStr = fmt.Sprintf("%.1f%s", it.Value, it.Unit)
			} else if it.Note != "" {
				valStr = it.Note
				if len(valStr) > 40 {
					valStr = valStr[:37] + "..."
				}
			} else {
				valStr = fmt.Sprintf("%.0f", it.Value)
			}

			statusMarker := ""
			switch it.Status {
			case output.StatusOK:
				statusMarker = fmt.Sprintf(" %s✓%s", colorFor(it.Status), colorReset)
			case output.StatusWarn:
				statusMarker = fmt.Sprintf(" %s!%s", colorFor(it.Status), colorReset)
			case output.StatusCrit:
				statusMarker = fmt.Sprintf(" %sX%s", colorFor(it.Status), colorReset)
			}

			dots := strings.Repeat("·", 22-len(label))
			fmt.Fprintf(w, "  %s%s %s%s\n", label, colorCyan+dots+colorReset, valStr, statusMarker)
		}
	}

	fmt.Fprintf(w, "%s─ Summary%s: %d activation(s) against %s\n\n", colorCyan, colorReset, r.Activations, r.Endpoint)
}

func colorFor(status string) string {
	switch status {
	case output.StatusWarn:
		return colorYellow
	case output.StatusCrit:
		return colorRed
	default:
		return colorGreen
	}
}
