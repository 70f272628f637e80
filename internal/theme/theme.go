// Package theme holds the colour and font palette shared by the views.
package theme

type Palette struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Highlight  string `json:"highlight"`
}

type Fonts struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Theme is passed by value into every view that draws; nothing mutates it after construction.
type Theme struct {
	Background string  `json:"background"`
	Text       string  `json:"text"`
	Black      string  `json:"black"`
	Surface    Palette `json:"surface"`
	Accent     Palette `json:"accent"`
	Success    Palette `json:"success"`
	Error      Palette `json:"error"`
	Fonts      Fonts   `json:"fonts"`
}

type Random interface {
	Intn(n int) int
}

func Default() Theme {
	return Theme{
		Background: "midnightblue",
		Text:       "white",
		Black:      "black",
		Surface: Palette{
			Background: "darkslateblue",
			Text:       "white",
			Highlight:  "slateblue",
		},
		Accent: Palette{
			Background: "gold",
			Text:       "black",
			Highlight:  "yellow",
		},
		Success: Palette{
			Background: "darkgreen",
			Text:       "white",
			Highlight:  "forestgreen",
		},
		Error: Palette{
			Background: "firebrick",
			Text:       "white",
			Highlight:  "red",
		},
		Fonts: Fonts{
			Title: "Impact, sans-serif",
			Body:  "Verdana, sans-serif",
		},
	}
}

// Colors - every colour of the theme, in a stable order.
func (that Theme) Colors() []string {
	colors := []string{that.Background, that.Text}
	for _, palette := range []Palette{that.Surface, that.Accent, that.Success, that.Error} {
		colors = append(colors, palette.Background, palette.Highlight)
	}

	return colors
}

func (that Theme) RandomColor(r Random) string {
	colors := that.Colors()
	return colors[r.Intn(len(colors))]
}
