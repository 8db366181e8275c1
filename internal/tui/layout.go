package tui

// Vertical layout: title line on top, help line at the bottom
const (
	HeaderHeight = 1
	FooterHeight = 1
	ChromeHeight = HeaderHeight + FooterHeight
)

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	m.Grid.SetSize(m.Width, max(m.Height-ChromeHeight, 1))
	m.Overlay.SetWidth(m.Width)
	m.Alert.SetWidth(m.Width)
}
