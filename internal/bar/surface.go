package bar

// Alignment is the horizontal placement of the message text.
type Alignment int

const (
	// AlignCenter centers text on a surface without an action button.
	AlignCenter Alignment = iota
	// AlignLeft places text left of the action button.
	AlignLeft
)

// String returns the string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Surface is the host rendering surface the bar draws on.
type Surface interface {
	SetVisible(visible bool)
	SetText(text string)
	SetTextAlignment(align Alignment)
	SetButtonVisible(visible bool)
	SetButton(label string, icon Icon)
}

// render puts m on the surface: text plus button when m has an action,
// centered text alone otherwise.
func render[T any](s Surface, m Message[T]) {
	s.SetVisible(true)
	s.SetText(m.Text())
	if label, ok := m.Action(); ok {
		s.SetTextAlignment(AlignLeft)
		s.SetButton(label, m.Icon())
		s.SetButtonVisible(true)
		return
	}
	s.SetTextAlignment(AlignCenter)
	s.SetButtonVisible(false)
}
