// Package catalog holds the built-in presentation themes and slide
// templates. The catalog is static: lookups by unknown name fall back
// to a default entry instead of erroring.
package catalog

// Theme is a named visual style for generated presentations.
type Theme struct {
	Name    string            `json:"name"`
	Colors  map[string]string `json:"colors"`
	Fonts   map[string]string `json:"fonts"`
	Spacing map[string]string `json:"spacing"`
}

// Element is one placeholder slot in a slide template.
type Element struct {
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	FontSize    string `json:"fontSize,omitempty"`
	Align       string `json:"align,omitempty"`
	ChartType   string `json:"chart_type,omitempty"`
	Width       string `json:"width,omitempty"`
	Height      string `json:"height,omitempty"`
}

// SlideTemplate is a named slide layout built from placeholder
// elements.
type SlideTemplate struct {
	Name      string             `json:"name"`
	Structure map[string]Element `json:"structure"`
}

const (
	defaultThemeName    = "professional"
	defaultTemplateName = "title_content"
)

var themes = map[string]Theme{
	"professional": {
		Name: "Professional",
		Colors: map[string]string{
			"primary":    "#1976D2",
			"secondary":  "#455A64",
			"accent":     "#FFC107",
			"background": "#FFFFFF",
			"text":       "#333333",
		},
		Fonts: map[string]string{
			"title":   "Roboto",
			"heading": "Roboto",
			"body":    "Open Sans",
		},
		Spacing: map[string]string{
			"margin":  "24px",
			"padding": "16px",
		},
	},
	"creative": {
		Name: "Creative",
		Colors: map[string]string{
			"primary":    "#FF5722",
			"secondary":  "#9C27B0",
			"accent":     "#8BC34A",
			"background": "#FAFAFA",
			"text":       "#212121",
		},
		Fonts: map[string]string{
			"title":   "Montserrat",
			"heading": "Montserrat",
			"body":    "Roboto",
		},
		Spacing: map[string]string{
			"margin":  "32px",
			"padding": "24px",
		},
	},
	"minimalist": {
		Name: "Minimalist",
		Colors: map[string]string{
			"primary":    "#212121",
			"secondary":  "#757575",
			"accent":     "#2196F3",
			"background": "#FFFFFF",
			"text":       "#212121",
		},
		Fonts: map[string]string{
			"title":   "Lato",
			"heading": "Lato",
			"body":    "Lato",
		},
		Spacing: map[string]string{
			"margin":  "24px",
			"padding": "16px",
		},
	},
}

var slideTemplates = map[string]SlideTemplate{
	"title": {
		Name: "Title slide",
		Structure: map[string]Element{
			"title": {
				Type:        "text",
				Placeholder: "Presentation title",
				FontSize:    "42px",
				Align:       "center",
			},
			"subtitle": {
				Type:        "text",
				Placeholder: "Subtitle or author",
				FontSize:    "24px",
				Align:       "center",
			},
		},
	},
	"title_content": {
		Name: "Title and content",
		Structure: map[string]Element{
			"title": {
				Type:        "text",
				Placeholder: "Slide title",
				FontSize:    "36px",
				Align:       "left",
			},
			"content": {
				Type:        "text_block",
				Placeholder: "Slide content...",
				FontSize:    "20px",
				Align:       "left",
			},
		},
	},
	"title_two_columns": {
		Name: "Title and two columns",
		Structure: map[string]Element{
			"title": {
				Type:        "text",
				Placeholder: "Slide title",
				FontSize:    "36px",
				Align:       "left",
			},
			"column_left": {
				Type:        "text_block",
				Placeholder: "Left column content...",
				FontSize:    "20px",
				Align:       "left",
			},
			"column_right": {
				Type:        "text_block",
				Placeholder: "Right column content...",
				FontSize:    "20px",
				Align:       "left",
			},
		},
	},
	"title_image": {
		Name: "Title and image",
		Structure: map[string]Element{
			"title": {
				Type:        "text",
				Placeholder: "Slide title",
				FontSize:    "36px",
				Align:       "left",
			},
			"image": {
				Type:        "image",
				Placeholder: "Image",
				Width:       "70%",
				Height:      "auto",
				Align:       "center",
			},
			"caption": {
				Type:        "text",
				Placeholder: "Image description",
				FontSize:    "16px",
				Align:       "center",
			},
		},
	},
	"chart": {
		Name: "Chart with title",
		Structure: map[string]Element{
			"title": {
				Type:        "text",
				Placeholder: "Chart title",
				FontSize:    "36px",
				Align:       "left",
			},
			"chart": {
				Type:      "chart",
				ChartType: "bar",
				Width:     "80%",
				Height:    "400px",
				Align:     "center",
			},
			"description": {
				Type:        "text",
				Placeholder: "Chart description",
				FontSize:    "18px",
				Align:       "left",
			},
		},
	},
}

// Themes returns the full theme catalog keyed by name.
func Themes() map[string]Theme {
	return themes
}

// ThemeByName returns the named theme, falling back to the
// professional theme for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[defaultThemeName]
}

// SlideTemplates returns the full slide template catalog keyed by name.
func SlideTemplates() map[string]SlideTemplate {
	return slideTemplates
}

// TemplateByName returns the named template, falling back to
// title_content for unknown names.
func TemplateByName(name string) SlideTemplate {
	if t, ok := slideTemplates[name]; ok {
		return t
	}
	return slideTemplates[defaultTemplateName]
}
