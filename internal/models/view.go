package models

// ReportView is the widget layout for one completed analysis. Widgets whose
// backing data is missing are nil and the corresponding pointer is omitted
// from the JSON, so the client never renders an empty chart.
type ReportView struct {
	MatchGauge  *GaugeView      `json:"match_gauge,omitempty"`
	MatchBar    *BarChartView   `json:"match_bar,omitempty"`
	SkillRadar  *RadarChartView `json:"skill_radar,omitempty"`
	ATSFeedback string          `json:"ats_feedback,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
	CoverLetter string          `json:"cover_letter,omitempty"`
}

type GaugeView struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

type BarChartView struct {
	Title string    `json:"title"`
	Max   float64   `json:"max"`
	Bars  []BarView `json:"bars"`
}

type BarView struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type RadarChartView struct {
	Title string      `json:"title"`
	Max   float64     `json:"max"`
	Axes  []RadarAxis `json:"axes"`
}

type RadarAxis struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
