package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"nestfinder/models"
)

// RenderScoreChart writes an HTML bar chart comparing the axis scores of
// every recommendation in resp.
func RenderScoreChart(w io.Writer, resp *models.SearchResponse) error {
	if resp == nil {
		return fmt.Errorf("no search response to render")
	}

	labels := make([]string, 0, len(resp.Recommendations))
	series := map[string][]opts.BarData{}
	order := []string{"Overall", "Commute", "Neighborhood", "Budget", "Amenities"}

	for _, rec := range resp.Recommendations {
		labels = append(labels, fmt.Sprintf("#%d %s", rec.Rank, rec.Listing.ID))

		commute := 0
		if rec.Commute.HasCommute {
			commute = rec.Commute.Score
		}
		values := map[string]int{
			"Overall":      rec.OverallScore,
			"Commute":      commute,
			"Neighborhood": rec.Neighborhood.Score,
			"Budget":       rec.Budget.Score,
			"Amenities":    rec.Amenities.Score,
		}
		for _, name := range order {
			series[name] = append(series[name], opts.BarData{Value: values[name]})
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Nestfinder scores",
			Width:     "1000px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Recommendation scores",
			Subtitle: fmt.Sprintf("search %s - %d candidates", resp.SearchID, resp.TotalFound),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
	)

	bar.SetXAxis(labels)
	for _, name := range order {
		bar.AddSeries(name, series[name])
	}

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render score chart: %w", err)
	}
	return nil
}
