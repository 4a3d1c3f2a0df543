package forager

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-forager/internal/actor"
	"github.com/vovakirdan/tui-forager/internal/assets"
	"github.com/vovakirdan/tui-forager/internal/core"
)

// Layout and timing of the terminal view.
const (
	minScreenW     = 24
	minScreenH     = 8
	noticeDuration = 2 * time.Second
)

// viewport maps world units to the cells inside the field border.
type viewport struct {
	x0, y0 int // first inner cell
	w, h   int // inner size in cells
	worldW float64
	worldH float64
}

func (v viewport) cell(x, y float64) (int, int) {
	cx := v.x0 + int(x/v.worldW*float64(v.w))
	cy := v.y0 + int(y/v.worldH*float64(v.h))
	return core.Clamp(cx, v.x0, v.x0+v.w-1), core.Clamp(cy, v.y0, v.y0+v.h-1)
}

// Render draws the HUD, field, actor, crafting panel and notifications.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorRed)
		return
	}

	g.drawHUD(dst)

	dst.DrawBox(0, 1, w, h-2, core.ColorGreen)
	vp := viewport{x0: 1, y0: 2, w: w - 2, h: h - 4, worldW: g.session.Bounds.W, worldH: g.session.Bounds.H}

	for _, e := range g.field.Live() {
		cx, cy := e.Box.Center()
		x, y := vp.cell(cx, cy)
		info := e.Kind.Info()
		dst.SetColor(x, y, info.Glyph, info.Color)
	}

	g.drawActor(dst, vp)

	if g.craftOpen {
		g.drawCraftPanel(dst)
	}

	g.drawFooter(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	a := g.actor
	left := fmt.Sprintf(" Lvl %d  XP %d/%d  Collected %d  Items %d/%d",
		a.Level(), a.Experience(), a.ExpToNext(), g.field.Collected(), g.store.Total(), g.store.Capacity())
	dst.DrawTextColor(0, 0, left, core.ColorBrightYellow)

	right := fmt.Sprintf("%s %s ", g.title, formatClock(g.clock))
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(right), 0, right, core.ColorGray)
}

func (g *Game) drawActor(dst *core.Screen, vp viewport) {
	a := g.actor
	frame := g.actorFrame()
	if a.Facing() == actor.FacingLeft {
		frame = assets.Mirror(frame)
	}

	box := a.Bounds()
	x, y := vp.cell(box.X, box.Y)
	fw, fh := frame.Width(), len(frame.Lines)
	x = core.Clamp(x, vp.x0, core.Max(vp.x0, vp.x0+vp.w-fw))
	y = core.Clamp(y, vp.y0, core.Max(vp.y0, vp.y0+vp.h-fh))

	for i, line := range frame.Lines {
		col := 0
		for _, r := range line {
			if r != ' ' {
				dst.SetColor(x+col, y+i, r, frame.Color)
			}
			col++
		}
	}

	if y-1 >= vp.y0 {
		label := fmt.Sprintf("Lv%d", a.Level())
		dst.DrawTextColor(x, y-1, label, core.ColorWhite)
	}
}

// actorFrame picks the sprite for the current animation state. The
// simulation does not depend on it; unloaded sheets fall back to a
// placeholder.
func (g *Game) actorFrame() assets.Frame {
	name := "actor_" + g.actor.State().String()
	if g.session.Assets == nil {
		return assets.Placeholder(name, g.actor.Frame())
	}
	return g.session.Assets.Frame(name, g.actor.Frame())
}

func (g *Game) drawCraftPanel(dst *core.Screen) {
	recipes := g.engine.Affordability(g.store)
	lines := make([]string, 0, len(recipes))
	for i, a := range recipes {
		var parts []string
		for _, ing := range a.Ingredients {
			parts = append(parts, fmt.Sprintf("%s %d/%d", ing.Item, ing.Have, ing.Need))
		}
		lines = append(lines, fmt.Sprintf("%d %-8s %s", i+1, a.Recipe.Name, strings.Join(parts, " ")))
	}
	title := "Crafting: 1-9 craft, X clear"

	panelW := utf8.RuneCountInString(title) + 4
	for _, l := range lines {
		panelW = core.Max(panelW, utf8.RuneCountInString(l)+4)
	}
	panelW = core.Min(panelW, dst.Width()-2)
	panelH := core.Min(len(lines)+3, dst.Height()-4)
	px := dst.Width() - panelW - 1
	py := 2

	dst.FillRect(px, py, panelW, panelH, ' ', core.ColorDefault)
	dst.DrawBox(px, py, panelW, panelH, core.ColorCyan)
	dst.DrawTextColor(px+2, py+1, title, core.ColorCyan)
	for i, l := range lines {
		if py+2+i >= py+panelH-1 {
			break
		}
		c := core.ColorGray
		if recipes[i].CanCraft {
			c = core.ColorBrightGreen
		}
		dst.DrawTextColor(px+2, py+2+i, truncate(l, panelW-4), c)
	}
}

func (g *Game) drawFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if n := len(g.events); n > 0 {
		last := g.events[n-1]
		if g.clock-last.At < noticeDuration {
			c := core.ColorBrightYellow
			if last.Kind == EventCraftFailed {
				c = core.ColorRed
			}
			dst.DrawTextCentered(y, last.Message, c)
			return
		}
	}

	stacks := g.store.NonEmpty()
	if len(stacks) == 0 {
		dst.DrawTextColor(1, y, "Inventory empty  [WASD] move  [Space] attack  [C] craft  [P] pause", core.ColorGray)
		return
	}
	x := 1
	for _, s := range stacks {
		info := s.Item.Info()
		dst.SetColor(x, y, info.Glyph, info.Color)
		text := fmt.Sprintf(" %s x%d  ", info.Name, s.Qty)
		dst.DrawTextColor(x+1, y, text, core.ColorWhite)
		x += 1 + utf8.RuneCountInString(text)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)
	dst.DrawTextCentered(boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorDefault)
}

func formatClock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
