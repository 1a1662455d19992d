package towerblocks

import (
	"fmt"
	"strconv"

	"github.com/taubyte/example-games-tower-blocks/internal/core"
	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

// HUD text.
const (
	hintText    = "Click or press Space to place the block"
	startText   = "Press Space to start"
	restartText = "Press Space or R to restart"
)

// Render draws the tower, particles and HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.machine == nil {
		return
	}

	dst.Blit(g.scene.Screen())
	g.fx.Draw(dst, g.scene.Project)

	switch g.machine.State() {
	case tower.StateReady:
		g.drawTitle(dst)
	case tower.StatePlaying, tower.StateResetting:
		g.drawScore(dst)
		if g.showHint() {
			dst.DrawTextCentered(dst.Height()-2, hintText, core.ColorGray)
		}
	case tower.StateEnded:
		g.drawScore(dst)
		g.drawGameOver(dst)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	g.drawToasts(dst)
	g.drawStatus(dst)
}

func (g *Game) showHint() bool {
	limit := g.opts.Config.Gameplay.HideHintAfter
	return limit <= 0 || g.machine.Stack().Len() <= limit
}

func (g *Game) drawTitle(dst *core.Screen) {
	y := dst.Height() / 5
	dst.DrawTextCentered(y, g.title, core.ColorBrightWhite)
	dst.DrawTextCentered(y+2, startText, core.ColorGray)
	if g.best > 0 {
		dst.DrawTextCentered(y+3, fmt.Sprintf("Best: %d", g.best), core.ColorYellow)
	}
}

func (g *Game) drawScore(dst *core.Screen) {
	dst.DrawTextCentered(1, strconv.Itoa(g.machine.Score()), core.ColorBrightWhite)
	if g.best > 0 {
		best := fmt.Sprintf("Best %d", g.best)
		dst.DrawTextColored(dst.Width()-len(best)-2, 1, best, core.ColorGray)
	}
	if n := g.machine.ConsecutivePerfect(); n > 1 {
		dst.DrawTextCentered(2, fmt.Sprintf("Perfect x%d", n), core.ColorBrightYellow)
	}
}

func (g *Game) drawGameOver(dst *core.Screen) {
	sub := fmt.Sprintf("Score: %d  |  %s", g.machine.Score(), restartText)
	g.drawCenteredMessage(dst, "GAME OVER", sub)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w, h := dst.Width(), dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.Rect{X: (w - boxW) / 2, Y: (h - boxH) / 2, W: boxW, H: boxH}

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorBrightRed)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}

func (g *Game) drawToasts(dst *core.Screen) {
	for i, t := range g.toasts {
		dst.DrawTextCentered(4+i, t.text, core.ColorBrightGreen)
	}
}

func (g *Game) drawStatus(dst *core.Screen) {
	a := g.opts.Audio
	if a == nil || !a.Enabled() {
		return
	}
	sfx, music := "on", "on"
	if a.Muted() {
		sfx = "off"
	}
	if a.MusicMuted() {
		music = "off"
	}
	status := fmt.Sprintf("sfx %s [m]  music %s [n]  track %d [t]", sfx, music, a.Track()+1)
	dst.DrawTextColored(1, dst.Height()-1, status, core.ColorGray)
}
