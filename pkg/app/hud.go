package app

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const hudHelp = "<-/-> variant  Space replay  Enter play  P pause  K kill  D dark  M reduced  L loop"

// hudText 左上角状态文字
func (a *App) hudText() string {
	c := a.controller
	opts := c.Options()
	name := opts.Variant
	if tl := c.Current(); tl != nil {
		name = tl.Name()
	}

	var flags []string
	if opts.Dark {
		flags = append(flags, "dark")
	}
	if opts.Loop {
		flags = append(flags, fmt.Sprintf("loop+%.1fs", opts.LoopDelay))
	}
	if a.settings.ReducedMotion() || a.forceReduced {
		flags = append(flags, "reduced")
	}
	if a.hub != nil {
		flags = append(flags, fmt.Sprintf("relay:%d", a.hub.Clients()))
	}

	return fmt.Sprintf("%s  [%s]  %.2f / %.2fs  cue:%s  %s\n%s",
		name, c.State(), c.Playhead(), c.TotalDuration(), a.lastCue,
		strings.Join(flags, ","), hudHelp)
}

func (a *App) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, a.hudText())
}
