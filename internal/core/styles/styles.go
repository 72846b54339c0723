// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style
	SuccessStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style

	// TUI shared styles.
	TextMutedStyle               lipgloss.Style
	TextForegroundStyle          lipgloss.Style
	TextPrimaryStyle             lipgloss.Style
	SelectFieldItemSelectedStyle lipgloss.Style

	HeaderStyle        lipgloss.Style
	SectionTitleStyle  lipgloss.Style
	ButtonStyle        lipgloss.Style
	ButtonFocusedStyle lipgloss.Style
	ButtonDisabled     lipgloss.Style

	FormTitleStyle        lipgloss.Style
	FormTitleBlurredStyle lipgloss.Style
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormErrorStyle        lipgloss.Style
	FormHelpStyle         lipgloss.Style

	// Abstract file line.
	FileValidStyle   lipgloss.Style
	FileInvalidStyle lipgloss.Style

	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	ConfirmMessageStyle  lipgloss.Style
	TextPrimaryBoldStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	SelectFieldItemSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)
	SectionTitleStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginTop(1)
	ButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorForeground)
	ButtonFocusedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)
	ButtonDisabled = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted).
		Faint(true)

	FormTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	FormTitleBlurredStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	FormErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	FormHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	FileValidStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	FileInvalidStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.
		BorderForeground(ColorSuccess).
		Foreground(ColorForeground)
	ToastWarningStyle = toast.
		BorderForeground(ColorWarning).
		Foreground(ColorForeground)
	ToastErrorStyle = toast.
		BorderForeground(ColorError).
		Foreground(ColorForeground)

	ConfirmMessageStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	TextPrimaryBoldStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
