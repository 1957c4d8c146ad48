package output

import (
	"fmt"
	"time"

	"sketchgen/internal/history"
	"sketchgen/internal/trigger"
)

// Section constants to avoid hardcoded strings
const (
	SectionLatest   = "latest"
	SectionTotals   = "totals"
	SectionActivity = "activity"
)

// Status markers shared by the console and TUI renderers.
const (
	StatusOK   = "OK"
	StatusWarn = "WARN"
	StatusCrit = "CRIT"
)

// UI/view-model types (no printing here)
type Item struct {
	Key    string
	Label  string
	Value  float64
	Unit   string
	Status string
	Note   string
}

type Section struct {
	ID    string
	Title string
	Items []Item
}

type Report struct {
	Sections    []Section
	Endpoint    string
	Activations int
}

// StatusFor maps an outcome kind to a status marker. Skipped activations have none.
func StatusFor(k trigger.Kind) string {
	switch k {
	case trigger.KindSuccess:
		return StatusOK
	case trigger.KindMissingResult:
		return StatusWarn
	case trigger.KindRequestFailure:
		return StatusCrit
	default:
		return ""
	}
}

// BuildReport converts the activation history into UI-ready sections.
func BuildReport(endpoint string, sum history.Summary, recent []trigger.Outcome) Report {
	latest := Section{ID: SectionLatest, Title: "Latest Activation"}
	if sum.Last != nil {
		o := sum.Last
		latest.Items = append(latest.Items,
			Item{Key: "image", Label: "Image", Note: o.ImageRef, Status: StatusFor(o.Kind)},
			Item{Key: "kind", Label: "Outcome", Note: string(o.Kind)},
			Item{Key: "duration", Label: "Duration", Value: ms(o.Duration), Unit: "ms"},
		)
		if o.ErrDetail != "" {
			latest.Items = append(latest.Items, Item{Key: "error", Label: "Error", Note: o.ErrDetail})
		}
	} else {
		latest.Items = append(latest.Items, Item{Key: "image", Label: "Image", Note: "none yet"})
	}

	totals := Section{ID: SectionTotals, Title: "Totals"}
	for _, k := range []trigger.Kind{trigger.KindSuccess, trigger.KindMissingResult, trigger.KindRequestFailure, trigger.KindSkipped} {
		totals.Items = append(totals.Items, Item{
			Key:    string(k),
			Label:  string(k),
			Value:  float64(sum.ByKind[k]),
			Status: StatusFor(k),
		})
	}
	totals.Items = append(totals.Items, Item{Key: "avg_duration", Label: "Avg Duration", Value: ms(sum.AvgDuration), Unit: "ms"})

	activity := Section{ID: SectionActivity, Title: "Recent Activity"}
	for _, o := range recent {
		activity.Items = append(activity.Items, Item{
			Key:    fmt.Sprintf("activation_%d", o.Seq),
			Label:  fmt.Sprintf("#%d %s", o.Seq, o.Started.Format("15:04:05")),
			Note:   describe(o),
			Status: StatusFor(o.Kind),
		})
	}

	return Report{
		Sections:    []Section{latest, totals, activity},
		Endpoint:    endpoint,
		Activations: sum.Total,
	}
}

func describe(o trigger.Outcome) string {
	switch o.Kind {
	case trigger.KindSuccess:
		return o.ImageRef
	case trigger.KindSkipped:
		return "skipped (in flight)"
	default:
		return string(o.Kind)
	}
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func (r Report) SectionByID(id string) *Section {
	for i := range r.Sections {
		if r.Sections[i].ID == id {
			return &r.Sections[i]
		}
	}
	return nil
}

func (s Section) ItemByKey(key string) *Item {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return &s.Items[i]
		}
	}
	return nil
}
