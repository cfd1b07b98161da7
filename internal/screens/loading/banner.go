package loading

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dictaz/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗ ██████╗████████╗ █████╗ ███████╗
 ██╔══██╗██║██╔════╝╚══██╔══╝██╔══██╗╚══███╔╝
 ██║  ██║██║██║        ██║   ███████║  ███╔╝
 ██║  ██║██║██║        ██║   ██╔══██║ ███╔╝
 ██████╔╝██║╚██████╗   ██║   ██║  ██║███████╗
 ╚═════╝ ╚═╝ ╚═════╝   ╚═╝   ╚═╝  ╚═╝╚══════╝`

const bannerCompact = "D I C T A Z"

// RenderBanner returns the DICTAZ banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
