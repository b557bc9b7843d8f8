package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/scenario"
	"github.com/lixenwraith/skybastion/vmath"
)

const (
	// worldExtent is the half-width of the plotted area in world units
	worldExtent = 2200.0
	// hudRows are reserved at the bottom for bars and help
	hudRows = 6
)

var (
	styleDefault  = tcell.StyleDefault
	styleBoss     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleShielded = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleEscort   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleWeapon   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDisabled = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	styleLock     = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleLaser    = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleBarFull  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBarEmpty = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// view is the interactive terminal host: a top-down X/Z plot of the encounter with a HUD
type view struct {
	screen tcell.Screen
	enc    *scenario.Encounter
	tick   time.Duration

	width, height int

	// selected indexes enc.Players for manual control
	selected int
	paused   bool
	laserOn  []bool
	boostOn  []bool
}

func newView(enc *scenario.Encounter, tick time.Duration) (*view, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	v := &view{
		screen:  screen,
		enc:     enc,
		tick:    tick,
		laserOn: make([]bool, len(enc.Players)),
		boostOn: make([]bool, len(enc.Players)),
	}
	v.width, v.height = screen.Size()
	return v, nil
}

func (v *view) close() {
	v.screen.Fini()
}

func (v *view) run() {
	ticker := time.NewTicker(v.tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if !v.paused {
				v.enc.Step(v.tick)
			}
			v.draw()
		}
	}
}

// player returns the controlled player, or the null handle without players
func (v *view) player() core.Entity {
	if len(v.enc.Players) == 0 {
		return 0
	}
	return v.enc.Players[v.selected]
}

func (v *view) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyTab && len(v.enc.Players) > 0 {
			v.selected = (v.selected + 1) % len(v.enc.Players)
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		w := v.enc.World
		p := v.player()
		switch ev.Rune() {
		case 'q':
			return false
		case 'p':
			v.paused = !v.paused
		case 'a':
			v.enc.Autopilot = !v.enc.Autopilot
		case 'm':
			if !p.IsNull() {
				w.PushEvent(event.EventMissileLaunchRequest, &event.PlayerPayload{Player: p})
			}
		case 'l':
			if !p.IsNull() {
				v.laserOn[v.selected] = !v.laserOn[v.selected]
				w.PushEvent(event.EventLaserRequest, &event.PlayerTogglePayload{Player: p, On: v.laserOn[v.selected]})
			}
		case 'b':
			if !p.IsNull() {
				v.boostOn[v.selected] = !v.boostOn[v.selected]
				w.PushEvent(event.EventBoostRequest, &event.PlayerTogglePayload{Player: p, On: v.boostOn[v.selected]})
			}
		}

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

// project maps a world position onto the plot, X to columns and Z to rows with +Z up
// Columns are scaled twice as wide to offset the cell aspect
func (v *view) project(p vmath.Vec3F) (col, row int, ok bool) {
	plotH := v.height - hudRows
	if plotH <= 2 || v.width <= 2 {
		return 0, 0, false
	}
	scale := float64(plotH) / (2 * worldExtent)
	if s := float64(v.width) / (4 * worldExtent); s < scale {
		scale = s
	}
	col = v.width/2 + int(math.Round(p.X*scale*2))
	row = plotH/2 - int(math.Round(p.Z*scale))
	ok = col >= 0 && col < v.width && row >= 0 && row < plotH
	return col, row, ok
}

func (v *view) plot(p vmath.Vec3F, r rune, style tcell.Style) {
	if col, row, ok := v.project(p); ok {
		v.screen.SetContent(col, row, r, nil, style)
	}
}

// line draws a straight segment between two world points
func (v *view) line(a, b vmath.Vec3F, r rune, style tcell.Style) {
	c0, r0, _ := v.project(a)
	c1, r1, _ := v.project(b)
	steps := max(abs(c1-c0), abs(r1-r0))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		v.plot(vmath.V3FAdd(a, vmath.V3FScale(vmath.V3FSub(b, a), t)), r, style)
	}
}

func (v *view) text(col, row int, s string, style tcell.Style) int {
	for _, r := range s {
		if col >= v.width {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
	return col
}

func (v *view) bar(col, row, width, cur, max int, label string) int {
	col = v.text(col, row, label, styleDefault)
	filled := 0
	if max > 0 {
		filled = width * cur / max
	}
	for i := 0; i < width; i++ {
		if i < filled {
			v.screen.SetContent(col+i, row, '█', nil, styleBarFull)
		} else {
			v.screen.SetContent(col+i, row, '░', nil, styleBarEmpty)
		}
	}
	return col + width + 1
}

func (v *view) draw() {
	v.screen.Clear()
	w := v.enc.World
	s := v.enc.Summary()

	// Emplacements under everything else so hulls stay readable
	for _, g := range v.enc.Groups {
		grp, ok := w.Components.Group.GetComponent(g)
		if !ok {
			continue
		}
		glyph := 't'
		switch grp.Class {
		case component.WeaponSmallCannon:
			glyph = 'c'
		case component.WeaponBigCannon:
			glyph = 'C'
		}
		for _, m := range grp.Members {
			tr, ok := w.Components.Transform.GetComponent(m)
			if !ok {
				continue
			}
			emp, _ := w.Components.Emplacement.GetComponent(m)
			if emp.Enabled {
				v.plot(tr.Position, glyph, styleWeapon)
			} else {
				v.plot(tr.Position, 'x', styleDisabled)
			}
		}
	}

	if boss, ok := w.Components.Boss.GetComponent(v.enc.Boss); ok {
		for _, esc := range boss.Escorts {
			if tr, ok := w.Components.Transform.GetComponent(esc); ok && w.Alive(esc) {
				v.plot(tr.Position, 'e', styleEscort)
			}
		}
	}
	if tr, ok := w.Components.Transform.GetComponent(v.enc.Boss); ok && s.BossAlive {
		style := styleBoss
		if !s.DamageOpen {
			style = styleShielded
		}
		v.plot(tr.Position, 'B', style)
	}

	for i, p := range s.Players {
		tr, ok := w.Components.Transform.GetComponent(p.Entity)
		if !ok || !p.Alive {
			continue
		}
		if pw, ok := w.Components.PlayerWeapon.GetComponent(p.Entity); ok && pw.LaserFiring {
			v.line(tr.Position, pw.LaserEnd, '·', styleLaser)
		}
		if ttr, ok := w.Components.Transform.GetComponent(p.Locked); ok && w.Alive(p.Locked) {
			if col, row, ok := v.project(ttr.Position); ok {
				v.screen.SetContent(col-1, row, '[', nil, styleLock)
				v.screen.SetContent(col+1, row, ']', nil, styleLock)
			}
		}
		style := stylePlayer
		if i == v.selected {
			style = styleSelected
		}
		v.plot(tr.Position, 'P', style)
	}

	v.drawHUD(s)
	v.screen.Show()
}

func (v *view) drawHUD(s scenario.Summary) {
	row := v.height - hudRows

	col := v.bar(0, row, 30, s.BossHitPoints, s.BossMax, "BOSS ")
	state := "SHIELDED"
	if s.DamageOpen {
		state = "VULNERABLE"
	}
	if !s.BossAlive {
		state = "DESTROYED"
	}
	v.text(col, row, fmt.Sprintf("%d/%d %s escorts:%d respawns:%d", s.BossHitPoints, s.BossMax, state, s.EscortsAlive, s.Respawns), styleDefault)

	row++
	col = 0
	for _, g := range s.Groups {
		label := fmt.Sprintf("%s %d/%d", g.Class, g.Alive, g.Max)
		if g.ReviveArmed {
			label += fmt.Sprintf(" (%ds)", int(g.ReviveRemaining.Seconds()))
		}
		col = v.text(col, row, label, styleWeapon) + 3
	}
	if s.ForceArmed {
		v.text(col, row, "FORCE-REVIVE ARMED", styleBoss)
	}

	row++
	if len(s.Players) > 0 {
		p := s.Players[v.selected]
		col = v.bar(0, row, 20, p.HitPoints, parameter.CombatHPPlayer, fmt.Sprintf("P%d HP ", v.selected+1))
		col = v.bar(col, row, p.LaserMax, p.Laser, p.LaserMax, "LASER ")
		col = v.bar(col, row, p.ThrusterMax, p.Thruster, p.ThrusterMax, "THRUST ")
		lock := "none"
		if !p.Locked.IsNull() {
			lock = fmt.Sprintf("%d", p.Locked.Index())
		}
		v.text(col, row, fmt.Sprintf("lock:%s missiles:%d", lock, p.Missiles), styleDefault)
	}

	row++
	flags := ""
	if v.enc.Autopilot {
		flags += " AUTOPILOT"
	}
	if v.paused {
		flags += " PAUSED"
	}
	v.text(0, row, fmt.Sprintf("t=%s tick=%d%s", s.GameTime.Truncate(100*time.Millisecond), s.Tick, flags), styleDefault)

	row++
	v.text(0, row, "m missile  l laser  b boost  tab player  a autopilot  p pause  q quit", styleHelp)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
