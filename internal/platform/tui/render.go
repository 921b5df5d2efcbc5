package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/robot"
	"github.com/vovakirdan/robotsim/internal/world"
)

// glyph is one rendered cell: a rune and the style key it is drawn with.
type glyph struct {
	r     rune
	style string
}

// cellStyles maps style keys to lipgloss styles.
var cellStyles = map[string]lipgloss.Style{
	"free":     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	"obstacle": lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	"fire":     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	"base":     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	"item":     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	"walker":   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	"beacon":   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	"broken":   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	"liar":     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	"hostile":  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

var terrainGlyphs = map[world.Terrain]glyph{
	world.Free:           {'.', "free"},
	world.Obstacle:       {'#', "obstacle"},
	world.Fire:           {'^', "fire"},
	world.Base:           {'H', "base"},
	world.OccupiedByItem: {'*', "item"},
}

// robotGlyph picks the rune for a robot. Carriers are upper case.
func robotGlyph(r *robot.Robot) glyph {
	if r.Role == robot.Beacon {
		return glyph{'@', "beacon"}
	}
	var g glyph
	switch r.Profile {
	case robot.Normal:
		g = glyph{'n', "walker"}
	case robot.Broken:
		g = glyph{'b', "broken"}
	case robot.Liar:
		g = glyph{'l', "liar"}
	case robot.ItemDestroyer:
		g = glyph{'d', "hostile"}
	case robot.Arsonist:
		g = glyph{'a', "hostile"}
	default:
		g = glyph{'?', "walker"}
	}
	if r.Held != nil {
		g.r -= 'a' - 'A'
	}
	return g
}

func cellGlyph(cell world.Cell, robots []*robot.Robot) glyph {
	if id, ok := cell.RobotID(); ok {
		if id >= 0 && id < len(robots) {
			return robotGlyph(robots[id])
		}
		return glyph{'?', "walker"}
	}
	if g, ok := terrainGlyphs[cell.Terrain()]; ok {
		return g
	}
	return glyph{' ', "free"}
}

// RenderGrid draws the grid top row first. Adjacent cells with the same
// style are grouped to minimize ANSI escape sequences. In plain mode no
// styling is applied at all.
func RenderGrid(g *world.Grid, robots []*robot.Robot, plain bool) string {
	var sb strings.Builder
	sb.Grow(g.W*g.H*2 + g.H)

	for y := g.H - 1; y >= 0; y-- {
		if y < g.H-1 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < g.W {
			start := cellGlyph(g.Cell(core.C(x, y)), robots)

			var run strings.Builder
			for x < g.W {
				gl := cellGlyph(g.Cell(core.C(x, y)), robots)
				if gl.style != start.style {
					break
				}
				run.WriteRune(gl.r)
				x++
			}

			if plain {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cellStyles[start.style].Render(run.String()))
		}
	}
	return sb.String()
}

// Legend explains the glyphs used by RenderGrid.
func Legend(plain bool) string {
	entries := []struct {
		g    glyph
		text string
	}{
		{glyph{'.', "free"}, "free"},
		{glyph{'#', "obstacle"}, "obstacle"},
		{glyph{'^', "fire"}, "fire"},
		{glyph{'H', "base"}, "base"},
		{glyph{'*', "item"}, "item"},
		{glyph{'n', "walker"}, "normal"},
		{glyph{'b', "broken"}, "broken"},
		{glyph{'l', "liar"}, "liar"},
		{glyph{'d', "hostile"}, "destroyer"},
		{glyph{'a', "hostile"}, "arsonist"},
		{glyph{'@', "beacon"}, "beacon"},
	}
	parts := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		sym := string(e.g.r)
		if !plain {
			sym = cellStyles[e.g.style].Render(sym)
		}
		parts = append(parts, fmt.Sprintf("%s %s", sym, e.text))
	}
	parts = append(parts, "upper case: carrying")
	return strings.Join(parts, "  ")
}
