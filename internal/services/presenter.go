package services

import (
	"sort"

	"resumefit/resume-analyzer/internal/models"
)

// Presenter maps a parsed AnalysisResult onto the widget viewmodel. Widgets
// whose backing data the parser could not recover are left nil: no percentage
// means no gauge and no bar, no skill scores means no radar.
type Presenter struct{}

func NewPresenter() *Presenter {
	return &Presenter{}
}

func (p *Presenter) BuildReportView(result *models.AnalysisResult) *models.ReportView {
	if result == nil {
		return nil
	}

	view := &models.ReportView{
		ATSFeedback: result.ATSFeedback,
		Suggestions: result.Suggestions,
		CoverLetter: result.CoverLetter,
	}

	if result.MatchPercentage != nil {
		view.MatchGauge = &models.GaugeView{
			Label:   "Match Score",
			Percent: *result.MatchPercentage,
		}
		view.MatchBar = &models.BarChartView{
			Title: "Resume Match",
			Max:   100,
			Bars: []models.BarView{
				{Label: "Resume Match", Value: float64(*result.MatchPercentage)},
			},
		}
	}

	if len(result.SkillScores) > 0 {
		view.SkillRadar = &models.RadarChartView{
			Title: "Skill Proficiency",
			Max:   100,
			Axes:  sortedAxes(result.SkillScores),
		}
	}

	return view
}

// sortedAxes orders skills by name so the radar layout is stable across
// renders of the same result.
func sortedAxes(scores map[string]float64) []models.RadarAxis {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	axes := make([]models.RadarAxis, 0, len(names))
	for _, name := range names {
		axes = append(axes, models.RadarAxis{Label: name, Value: scores[name]})
	}

	return axes
}
