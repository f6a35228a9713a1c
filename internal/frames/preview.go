package frames

// PreviewRecipe approximates a frame over the live camera feed. Sizes are
// in preview points (the booth scales them to the window), colors are
// "#rrggbb" or "#rrggbbaa". The final image is drawn by the compose
// package; the two share bar placement and proportions but not pixels.
type PreviewRecipe struct {
	Inset     int            `yaml:"inset"`
	Border    *PreviewBorder `yaml:"border,omitempty"`
	TopBar    *PreviewBar    `yaml:"topBar,omitempty"`
	BottomBar *PreviewBar    `yaml:"bottomBar,omitempty"`
	Sprockets int            `yaml:"sprockets,omitempty"`
	Labels    []PreviewLabel `yaml:"labels,omitempty"`
}

// PreviewBorder is a stroked rounded rectangle inset from the feed edges.
type PreviewBorder struct {
	Width    int      `yaml:"width"`
	Radius   int      `yaml:"radius"`
	Color    string   `yaml:"color,omitempty"`
	Gradient []string `yaml:"gradient,omitempty"`
	Glow     string   `yaml:"glow,omitempty"`
}

// Fade describes how a bar blends into the feed.
type Fade string

const (
	FadeNone Fade = ""
	// FadeDown is opaque at the top edge and transparent at the bottom.
	FadeDown Fade = "down"
	// FadeUp is opaque at the bottom edge and transparent at the top.
	FadeUp Fade = "up"
)

// PreviewBar is a horizontal band pinned to the top or bottom of the feed.
type PreviewBar struct {
	Height int    `yaml:"height"`
	Inset  bool   `yaml:"inset,omitempty"`
	Color  string `yaml:"color"`
	Fade   Fade   `yaml:"fade,omitempty"`
	Radius int    `yaml:"radius,omitempty"`
}

// LabelText selects which branding string a label shows.
type LabelText string

const (
	LabelBrand     LabelText = "brand"
	LabelWatermark LabelText = "watermark"
)

// PreviewLabel places branding text inside a bar.
type PreviewLabel struct {
	Text     LabelText `yaml:"text"`
	Bar      string    `yaml:"bar"`
	Size     int       `yaml:"size"`
	Weight   int       `yaml:"weight"`
	Color    string    `yaml:"color,omitempty"`
	Gradient []string  `yaml:"gradient,omitempty"`
	Glow     string    `yaml:"glow,omitempty"`
	Align    string    `yaml:"align"`
	// Line orders labels stacked in the same bar, top to bottom.
	Line int `yaml:"line,omitempty"`
}

var polaroidPreview = PreviewRecipe{
	Inset:     12,
	Border:    &PreviewBorder{Width: 6, Radius: 12, Color: "#ffffff"},
	BottomBar: &PreviewBar{Height: 64, Inset: true, Color: "#ffffff", Radius: 12},
	Labels: []PreviewLabel{
		{Text: LabelBrand, Bar: "bottom", Size: 10, Weight: 600, Color: "#1e293b", Align: "center"},
		{Text: LabelWatermark, Bar: "bottom", Size: 7, Weight: 500, Color: "#64748b", Align: "center", Line: 1},
	},
}

var minimalPreview = PreviewRecipe{
	Inset:     16,
	Border:    &PreviewBorder{Width: 3, Radius: 16, Color: "#ffffffe6"},
	BottomBar: &PreviewBar{Height: 40, Inset: true, Color: "#fffffff2", Fade: FadeUp, Radius: 16},
	Labels: []PreviewLabel{
		{Text: LabelBrand, Bar: "bottom", Size: 7, Weight: 500, Color: "#94a3b8", Align: "left"},
		{Text: LabelWatermark, Bar: "bottom", Size: 6, Weight: 400, Color: "#94a3b8", Align: "right"},
	},
}

var filmPreview = PreviewRecipe{
	TopBar:    &PreviewBar{Height: 28, Color: "#0f172af2"},
	BottomBar: &PreviewBar{Height: 36, Color: "#0f172af2"},
	Sprockets: 3,
	Labels: []PreviewLabel{
		{Text: LabelWatermark, Bar: "bottom", Size: 8, Weight: 500, Color: "#cbd5e1", Align: "right"},
	},
}

var neonPreview = PreviewRecipe{
	Inset: 12,
	Border: &PreviewBorder{
		Width:    3,
		Radius:   24,
		Gradient: []string{"#d946ef", "#a855f7", "#22d3ee"},
		Glow:     "#ec489999",
	},
	TopBar:    &PreviewBar{Height: 48, Inset: true, Color: "#0f172af2", Fade: FadeDown, Radius: 24},
	BottomBar: &PreviewBar{Height: 56, Inset: true, Color: "#0f172af2", Fade: FadeUp, Radius: 24},
	Labels: []PreviewLabel{
		{
			Text:     LabelBrand,
			Bar:      "bottom",
			Size:     9,
			Weight:   700,
			Gradient: []string{"#e9d5ff", "#fbbf24", "#06b6d4"},
			Glow:     "#a855f799",
			Align:    "center",
		},
		{Text: LabelWatermark, Bar: "bottom", Size: 6, Weight: 400, Color: "#94a3b8", Align: "center", Line: 1},
	},
}

// Themed returns the recipe adjusted for the active UI theme. Under the neon
// theme plain borders pick up a pink glow so they read against the darker
// chrome; the recipe is otherwise unchanged.
func (p PreviewRecipe) Themed(neon bool) PreviewRecipe {
	if !neon || p.Border == nil || p.Border.Glow != "" {
		return p
	}
	b := *p.Border
	b.Glow = "#ec489966"
	p.Border = &b
	return p
}
