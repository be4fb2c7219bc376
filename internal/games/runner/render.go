package runner

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/lane-runner/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '▲'
	AirChar      = '△'
	ObstacleChar = '▓'
	AlienChar    = 'Ж'
	MissileChar  = '↓'
	GemChar      = '◆'
	PortalChar   = '◎'
	LaneChar     = '┊'
	EdgeChar     = '║'
	BurstChar    = '*'
)

const (
	hudRows     = 2
	maxLaneCols = 9
	behindZ     = 4.0 // Road shown behind the player
)

// viewport maps world coordinates to screen cells for one render.
type viewport struct {
	left, top   int
	rows        int
	laneCols    int
	maxLane     int
	width       float64
	nearZ, farZ float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	maxLane := g.cfg.MaxLane()
	lanes := 2*maxLane + 1
	cols := core.Clamp((dst.Width()-2)/lanes, 1, maxLaneCols)
	road := cols * lanes
	return viewport{
		left:     (dst.Width() - road) / 2,
		top:      hudRows,
		rows:     max(dst.Height()-hudRows-1, 1),
		laneCols: cols,
		maxLane:  maxLane,
		width:    g.cfg.Lanes.Width,
		nearZ:    g.cfg.Player.Z + behindZ,
		farZ:     -g.cfg.World.SpawnDistance,
	}
}

// row returns the screen row for depth z and whether it is on screen.
func (v viewport) row(z float64) (int, bool) {
	if z < v.farZ || z > v.nearZ {
		return 0, false
	}
	frac := (z - v.farZ) / (v.nearZ - v.farZ)
	return v.top + int(frac*float64(v.rows-1)), true
}

// col returns the screen column at the center of the lane nearest x.
func (v viewport) col(x float64) int {
	lane := core.Clamp(int(math.Round(x/v.width)), -v.maxLane, v.maxLane)
	return v.left + (lane+v.maxLane)*v.laneCols + v.laneCols/2
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	snap := g.world.Snapshot()
	v := g.viewport(dst)

	g.drawRoad(dst, v)
	for _, e := range snap.Entities {
		if e.Active {
			g.drawEntity(dst, v, e)
		}
	}
	for _, b := range g.bursts {
		if y, ok := v.row(b.pos.Z); ok {
			dst.SetColored(v.col(b.pos.X), y, BurstChar, b.color)
		}
	}
	g.drawPlayer(dst, v, snap.Player)
	g.drawHUD(dst)

	switch g.session.Status() {
	case StatusMenu:
		g.drawCenteredMessage(dst, strings.ToUpper(g.title), "Press ENTER to start")
	case StatusShop:
		g.drawShop(dst)
	case StatusGameOver:
		sub := fmt.Sprintf("Score: %d  |  Press R to restart", g.session.Score())
		if g.session.Fault() != nil {
			sub = "Run halted by an internal error  |  Press R"
		}
		g.drawCenteredMessage(dst, "GAME OVER", sub)
	case StatusVictory:
		g.drawCenteredMessage(dst, "VICTORY", fmt.Sprintf("Score: %d  |  Press R to play again", g.session.Score()))
	}
	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawRoad(dst *core.Screen, v viewport) {
	edge := core.ColorGray
	if g.flash > 0 && g.flash%2 == 0 {
		edge = core.ColorBrightRed
	}
	lanes := 2*v.maxLane + 1
	right := v.left + lanes*v.laneCols
	dst.DrawVLine(v.left-1, v.top, v.rows, EdgeChar, edge)
	dst.DrawVLine(right, v.top, v.rows, EdgeChar, edge)
	for i := 1; i < lanes; i++ {
		dst.DrawVLine(v.left+i*v.laneCols, v.top, v.rows, LaneChar, core.ColorGray)
	}
}

func (g *Game) drawEntity(dst *core.Screen, v viewport, e Entity) {
	y, ok := v.row(e.Pos.Z)
	if !ok {
		return
	}
	switch e.Kind {
	case KindShopPortal:
		lanes := 2*v.maxLane + 1
		for x := v.left; x < v.left+lanes*v.laneCols; x++ {
			dst.SetColored(x, y, PortalChar, e.Color)
		}
		return
	case KindLetter:
		word := g.session.Word()
		if e.Letter >= 0 && e.Letter < len(word) {
			dst.SetColored(v.col(e.Pos.X), y, word[e.Letter], e.Color)
		}
		return
	}

	var ch rune
	switch e.Kind {
	case KindObstacle:
		ch = ObstacleChar
	case KindAlien:
		ch = AlienChar
	case KindMissile:
		ch = MissileChar
	case KindGem:
		ch = GemChar
	default:
		return
	}
	x := v.col(e.Pos.X)
	dst.SetColored(x, y, ch, e.Color)
	if e.Kind == KindObstacle && v.laneCols >= 3 {
		dst.SetColored(x-1, y, ch, e.Color)
		dst.SetColored(x+1, y, ch, e.Color)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport, p PlayerView) {
	// Blink while the post-hit window is open.
	if p.Invincible && g.tick%4 < 2 {
		return
	}
	y, ok := v.row(g.cfg.Player.Z)
	if !ok {
		return
	}
	color := core.ColorBrightWhite
	if g.session.ImmortalActive() {
		color = core.ColorBrightYellow
	}
	ch := PlayerChar
	if p.Height > 0 {
		ch = AirChar
	}
	dst.SetColored(v.col(p.X), y, ch, color)
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.session
	left := fmt.Sprintf(" Score: %d  Dist: %d  Lvl: %d ", s.Score(), int(s.Distance()), s.Level())
	dst.DrawText(0, 0, left)

	lives := fmt.Sprintf(" Lives: %s%s ",
		strings.Repeat("♥", s.Lives()),
		strings.Repeat("♡", max(s.MaxLives()-s.Lives(), 0)))
	dst.DrawTextColored(dst.Width()-len([]rune(lives)), 0, lives, core.ColorBrightRed)

	// Word progress: collected letters lit, missing ones dimmed.
	x := 1
	for i, r := range s.Word() {
		c := core.ColorGray
		if s.CollectedLetters().Has(i) {
			c = letterColors[i%len(letterColors)]
		}
		dst.SetColored(x+i*2, 1, r, c)
	}

	var extras []string
	if s.HasDoubleJump() {
		extras = append(extras, "2xJump")
	}
	if s.ImmortalActive() {
		extras = append(extras, fmt.Sprintf("IMMORTAL %.1fs", s.ImmortalLeft().Seconds()))
	} else if s.ImmortalCharges() > 0 {
		extras = append(extras, fmt.Sprintf("E: immortal x%d", s.ImmortalCharges()))
	}
	if len(extras) > 0 {
		text := " " + strings.Join(extras, "  ") + " "
		dst.DrawTextColored(dst.Width()-len([]rune(text)), 1, text, core.ColorBrightYellow)
	}
}

func (g *Game) drawShop(dst *core.Screen) {
	s := g.session
	lines := make([]string, 0, len(Items)+4)
	lines = append(lines, fmt.Sprintf("SHOP  (wallet: %d)", s.Wallet()), "")
	for i, it := range Items {
		price, _ := s.Price(it)
		cursor := "  "
		if i == g.shopCursor {
			cursor = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-20s %5d", cursor, it, price))
	}
	lines = append(lines, "", "<-/-> select  SPACE buy  ENTER leave")
	if g.shopMsg != "" {
		lines = append(lines, g.shopMsg)
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	for i, l := range lines {
		dst.DrawText(boxX+2, boxY+1+i, l)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
