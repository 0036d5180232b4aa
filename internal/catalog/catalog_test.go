package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeCatalog(t *testing.T) {
	all := Themes()
	require.Len(t, all, 3)
	for _, name := range []string{"professional", "creative", "minimalist"} {
		theme, ok := all[name]
		require.True(t, ok, "missing theme %s", name)
		assert.NotEmpty(t, theme.Name)
		assert.Contains(t, theme.Colors, "primary")
		assert.Contains(t, theme.Fonts, "body")
		assert.Contains(t, theme.Spacing, "margin")
	}
}

func TestThemeByNameFallsBack(t *testing.T) {
	assert.Equal(t, "Creative", ThemeByName("creative").Name)
	assert.Equal(t, "Professional", ThemeByName("no-such-theme").Name)
}

func TestSlideTemplateCatalog(t *testing.T) {
	all := SlideTemplates()
	require.Len(t, all, 5)
	for _, name := range []string{"title", "title_content", "title_two_columns", "title_image", "chart"} {
		tpl, ok := all[name]
		require.True(t, ok, "missing template %s", name)
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Structure)
	}

	chart := all["chart"].Structure["chart"]
	assert.Equal(t, "chart", chart.Type)
	assert.Equal(t, "bar", chart.ChartType)
}

func TestTemplateByNameFallsBack(t *testing.T) {
	assert.Equal(t, "Title slide", TemplateByName("title").Name)
	assert.Equal(t, "Title and content", TemplateByName("no-such-template").Name)
}
