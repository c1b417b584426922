package display

import (
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/messagebar/internal/config"
)

// placement is the layer-shell anchoring for a configured position.
type placement struct {
	top, bottom, left, right bool
	marginX, marginY         int
}

// placementFor maps a position name to edge anchors and margins.
// Unknown positions fall back to bottom-center.
func placementFor(pos config.Position, offsetX, offsetY int) placement {
	p := placement{marginX: offsetX, marginY: offsetY}

	switch pos {
	case config.PositionTopLeft:
		p.top, p.left = true, true
	case config.PositionTopCenter:
		p.top = true
	case config.PositionTopRight:
		p.top, p.right = true, true
	case config.PositionBottomLeft:
		p.bottom, p.left = true, true
	case config.PositionBottomRight:
		p.bottom, p.right = true, true
	default:
		p.bottom = true
	}
	return p
}

// apply sets the anchors and margins on a layer-shell window.
func (p placement) apply(window *gtk.Window) {
	layershell.SetAnchor(window, layershell.LayerShellEdgeTop, p.top)
	layershell.SetAnchor(window, layershell.LayerShellEdgeBottom, p.bottom)
	layershell.SetAnchor(window, layershell.LayerShellEdgeLeft, p.left)
	layershell.SetAnchor(window, layershell.LayerShellEdgeRight, p.right)

	if p.top {
		layershell.SetMargin(window, layershell.LayerShellEdgeTop, p.marginY)
	}
	if p.bottom {
		layershell.SetMargin(window, layershell.LayerShellEdgeBottom, p.marginY)
	}
	if p.left {
		layershell.SetMargin(window, layershell.LayerShellEdgeLeft, p.marginX)
	}
	if p.right {
		layershell.SetMargin(window, layershell.LayerShellEdgeRight, p.marginX)
	}
}
