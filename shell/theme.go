package shell

import (
	"strings"

	"github.com/fatih/color"
)

// Theme is one of the fixed display themes
type Theme int

const (
	ThemeMatrix Theme = iota
	ThemeCyberpunk
	ThemeOcean
	ThemeRetro
	numThemes
)

var themeNames = [numThemes]string{
	ThemeMatrix:    "matrix",
	ThemeCyberpunk: "cyberpunk",
	ThemeOcean:     "ocean",
	ThemeRetro:     "retro",
}

func (t Theme) String() string {
	if t < 0 || t >= numThemes {
		return "unknown"
	}
	return themeNames[t]
}

// ParseTheme maps a theme name to its Theme
func ParseTheme(name string) (Theme, bool) {
	for t := Theme(0); t < numThemes; t++ {
		if themeNames[t] == name {
			return t, true
		}
	}
	return 0, false
}

// Themes returns every theme in declaration order
func Themes() []Theme {
	out := make([]Theme, numThemes)
	for i := range out {
		out[i] = Theme(i)
	}
	return out
}

func themeList() string {
	return strings.Join(themeNames[:], ", ")
}

// Palette holds the terminal colors of a theme
type Palette struct {
	Text    *color.Color
	Accent  *color.Color
	Error   *color.Color
	Success *color.Color
	Warning *color.Color
}

// Palette returns the colors a terminal front end should use for t
func (t Theme) Palette() Palette {
	p := Palette{
		Error:   color.New(color.FgHiRed),
		Success: color.New(color.FgHiGreen),
		Warning: color.New(color.FgHiYellow),
	}
	switch t {
	case ThemeCyberpunk:
		p.Text = color.New(color.FgHiCyan)
		p.Accent = color.New(color.FgHiMagenta, color.Bold)
	case ThemeOcean:
		p.Text = color.New(color.FgHiBlue)
		p.Accent = color.New(color.FgCyan, color.Bold)
	case ThemeRetro:
		p.Text = color.New(color.FgYellow)
		p.Accent = color.New(color.FgHiYellow, color.Bold)
	default:
		p.Text = color.New(color.FgHiGreen)
		p.Accent = color.New(color.FgGreen, color.Bold)
		p.Success = color.New(color.FgGreen)
	}
	return p
}
