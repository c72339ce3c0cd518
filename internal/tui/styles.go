package tui

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"

	"redox/internal/config"
)

// flavor is the active catppuccin palette
var flavor catppuccin.Flavor = catppuccin.Mocha

// SetTheme selects the catppuccin flavor by name, keeping the current one
// when the name is unknown
func SetTheme(name string) {
	if f := catppuccin.Variant(name); f != nil {
		flavor = f
	}
}

func color(c catppuccin.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex)
}

// colorByName maps a config color name to the flavor's color
func colorByName(name string) lipgloss.Color {
	switch strings.ToLower(name) {
	case "rosewater":
		return color(flavor.Rosewater())
	case "flamingo":
		return color(flavor.Flamingo())
	case "pink":
		return color(flavor.Pink())
	case "mauve":
		return color(flavor.Mauve())
	case "red":
		return color(flavor.Red())
	case "maroon":
		return color(flavor.Maroon())
	case "peach":
		return color(flavor.Peach())
	case "yellow":
		return color(flavor.Yellow())
	case "green":
		return color(flavor.Green())
	case "teal":
		return color(flavor.Teal())
	case "sky":
		return color(flavor.Sky())
	case "sapphire":
		return color(flavor.Sapphire())
	case "blue":
		return color(flavor.Blue())
	case "lavender":
		return color(flavor.Lavender())
	case "subtext", "subtext0":
		return color(flavor.Subtext0())
	case "overlay", "overlay0":
		return color(flavor.Overlay0())
	default:
		return color(flavor.Text())
	}
}

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(color(flavor.Mauve()))
}

func PromptStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color(flavor.Red()))
}

func ModeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color(flavor.Sapphire()))
}

func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color(flavor.Overlay1()))
}

func LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(color(flavor.Blue()))
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(color(flavor.Red()))
}

func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color(flavor.Green()))
}

func DangerHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(color(flavor.Red()))
}

func DangerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color(flavor.Maroon()))
}

func CommentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Italic(true).Foreground(color(flavor.Subtext0()))
}

// SelectedStyle highlights the selected result row
func SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(color(flavor.Surface1()))
}

func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color(flavor.Overlay0()))
}

func VariableKeyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color(flavor.Yellow()))
}

// StyleForGroup returns the style of a snippet group, or plain text for nil
func StyleForGroup(g *config.SnippetGroup) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(color(flavor.Text()))
	if g == nil {
		return s
	}
	return s.Foreground(colorByName(g.Color)).Bold(g.Bold)
}
