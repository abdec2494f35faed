package render

import "bookcatalog/internal/catalog"

const (
	chartWidth   = 480
	chartHeight  = 240
	chartPadding = 32
)

// Bar is one laid-out bar of a chart, in SVG user units.
type Bar struct {
	Label  string
	Count  int
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// LabelX is the horizontal center of the bar.
func (b Bar) LabelX() float64 { return b.X + b.Width/2 }

// ChartInstance is a drawn chart occupying one region. Once destroyed it holds
// no bars and must not be drawn again.
type ChartInstance struct {
	Region    catalog.Region
	Title     string
	Bars      []Bar
	Width     int
	Height    int
	Baseline  float64
	Max       int
	destroyed bool
}

func newChartInstance(c catalog.Chart) *ChartInstance {
	inst := &ChartInstance{
		Region:   c.Region,
		Title:    c.Title,
		Width:    chartWidth,
		Height:   chartHeight,
		Baseline: chartHeight - chartPadding,
	}
	for _, cnt := range c.Counts {
		inst.Max = max(inst.Max, cnt.Count)
	}
	if len(c.Counts) == 0 {
		return inst
	}

	plotWidth := float64(chartWidth - 2*chartPadding)
	plotHeight := float64(chartHeight - 2*chartPadding)
	slot := plotWidth / float64(len(c.Counts))
	for i, cnt := range c.Counts {
		// y axis starts at zero, so the tallest bar fills the plot
		h := plotHeight * float64(cnt.Count) / float64(inst.Max)
		inst.Bars = append(inst.Bars, Bar{
			Label:  cnt.Label,
			Count:  cnt.Count,
			X:      chartPadding + float64(i)*slot + slot*0.1,
			Y:      inst.Baseline - h,
			Width:  slot * 0.8,
			Height: h,
		})
	}
	return inst
}

// Destroy releases the chart's bars.
func (c *ChartInstance) Destroy() {
	c.destroyed = true
	c.Bars = nil
}

func (c *ChartInstance) Destroyed() bool { return c.destroyed }

// Empty reports whether the chart has nothing to plot.
func (c *ChartInstance) Empty() bool { return len(c.Bars) == 0 }
