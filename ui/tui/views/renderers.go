package views

import (
	"sketchgen/ui/tui/state"
)

func RenderGenerate(s state.AppState, props ViewProps) string {
	return GenerateView{}.Render(s, props)
}

func RenderActivity(s state.AppState, chartView string, width, height, scrollY int, logs []string) string {
	v := ActivityView{}
	return v.Render(s, ViewProps{
		Width:     width,
		Height:    height,
		ScrollY:   scrollY,
		Logs:      logs,
		ChartView: chartView,
	})
}
