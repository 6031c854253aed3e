package charts

// Figure is a Plotly figure as consumed by Plotly.newPlot.
type Figure struct {
	ID     string  `json:"id"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Config Config  `json:"config"`
}

// Trace covers the bar, candlestick and scatter fields used here.
type Trace struct {
	Type   string    `json:"type"`
	Name   string    `json:"name,omitempty"`
	Mode   string    `json:"mode,omitempty"`
	X      any       `json:"x"`
	Y      []float64 `json:"y,omitempty"`
	Open   []float64 `json:"open,omitempty"`
	High   []float64 `json:"high,omitempty"`
	Low    []float64 `json:"low,omitempty"`
	Close  []float64 `json:"close,omitempty"`
	Base   *float64  `json:"base,omitempty"`
	Marker *Marker   `json:"marker,omitempty"`
	Line   *Line     `json:"line,omitempty"`
}

// Marker sets the fill colour of bar traces.
type Marker struct {
	Color string `json:"color"`
}

// Line styles a scatter line.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Layout is the subset of Plotly layout options the dashboard uses.
type Layout struct {
	Title   Title   `json:"title"`
	Margin  Margin  `json:"margin"`
	Height  int     `json:"height"`
	BarMode string  `json:"barmode,omitempty"`
	Legend  *Legend `json:"legend,omitempty"`
}

// Title is a chart title.
type Title struct {
	Text string `json:"text"`
}

// Margin holds plot margins in pixels.
type Margin struct {
	T int `json:"t"`
	B int `json:"b"`
	L int `json:"l"`
	R int `json:"r"`
}

// Legend positions the trace legend.
type Legend struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor"`
	YAnchor     string  `json:"yanchor"`
	Orientation string  `json:"orientation"`
}

// Config is the per-graph mode-bar configuration.
type Config struct {
	DisplayLogo            bool        `json:"displaylogo"`
	ModeBarButtonsToRemove []string    `json:"modeBarButtonsToRemove"`
	ToImageButtonOptions   ImageExport `json:"toImageButtonOptions"`
}

// ImageExport configures the mode-bar PNG download.
type ImageExport struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
	Scale    int    `json:"scale"`
}

// NewConfig returns the mode-bar configuration shared by both charts; the
// PNG export is saved under filename.
func NewConfig(filename string) Config {
	return Config{
		DisplayLogo: false,
		ModeBarButtonsToRemove: []string{
			"zoom", "pan", "zoomIn", "zoomOut", "resetView",
			"autoScale", "resetScale", "lasso2d", "select2d",
		},
		ToImageButtonOptions: ImageExport{
			Format:   "png",
			Filename: filename,
			Height:   700,
			Width:    1300,
			Scale:    1,
		},
	}
}
