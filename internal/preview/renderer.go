// Package preview draws a generated layout top-down in a terminal
package preview

import (
	"context"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
)

// cellAspect is how many columns of world space one terminal row covers
const cellAspect = 2.0

// Glyphs per piece kind
const (
	GlyphFirstRoom = 'S'
	GlyphRoom      = '#'
	GlyphShop      = '$'
	GlyphEndRoom   = 'E'
	GlyphCorridor  = '+'
	GlyphEmpty     = ' '
)

var (
	styleDefault  = tcell.StyleDefault
	styleStatus   = tcell.StyleDefault.Reverse(true)
	styleCorridor = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleRoom     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleFirst    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleShop     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleEnd      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Config holds the dependencies for the renderer
type Config struct {
	Screen tcell.Screen // must already be initialised
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Screen == nil {
		vb.RequiredField("Screen")
	}

	return vb.Build()
}

// Renderer paints layouts onto a tcell screen
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer
func NewRenderer(cfg *Config) (*Renderer, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid preview config")
	}

	return &Renderer{screen: cfg.Screen}, nil
}

type footprint struct {
	box   geometry.Box
	glyph rune
	style tcell.Style
}

// viewport maps screen cells to world coordinates. +X runs right, +Y runs up.
type viewport struct {
	minX, maxY   float64
	unitsPerCol  float64
	unitsPerRow  float64
	width, lines int
}

func (v viewport) world(col, row int) (float64, float64) {
	return v.minX + (float64(col)+0.5)*v.unitsPerCol, v.maxY - (float64(row)+0.5)*v.unitsPerRow
}

// Draw paints the layout's piece footprints and a status line, then shows the screen.
// Rooms are drawn over corridors.
func (r *Renderer) Draw(layout *entities.Layout) error {
	if layout == nil {
		return errors.InvalidArgument("layout is required")
	}

	r.screen.Clear()
	width, height := r.screen.Size()
	if width <= 0 || height <= 0 {
		return errors.FailedPreconditionf("screen has no area: %dx%d", width, height)
	}

	r.drawStatus(layout, width, height-1)

	prints := footprints(layout)
	if len(prints) > 0 && height > 1 {
		view := fit(prints, width, height-1)
		for row := 0; row < view.lines; row++ {
			for col := 0; col < view.width; col++ {
				x, y := view.world(col, row)
				glyph, style := GlyphEmpty, styleDefault
				for _, fp := range prints {
					if fp.box.ContainsFootprint(x, y) {
						glyph, style = fp.glyph, fp.style
						break
					}
				}
				r.screen.SetContent(col, row, glyph, nil, style)
			}
		}
	}

	r.screen.Show()
	return nil
}

// Run draws the layout and redraws on resize until a quit key or ctx ends the preview
func (r *Renderer) Run(ctx context.Context, layout *entities.Layout) error {
	if err := r.Draw(layout); err != nil {
		return err
	}

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go r.screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				r.screen.Sync()
				if err := r.Draw(layout); err != nil {
					return err
				}
			case *tcell.EventKey:
				if isQuit(ev) {
					return nil
				}
			}
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func (r *Renderer) drawStatus(layout *entities.Layout, width, row int) {
	status := fmt.Sprintf(" %s seed=%d rooms=%d/%d halt=%s ",
		layout.ID, layout.Seed, layout.RoomsPlaced, layout.TargetRooms, layout.HaltReason)

	col := 0
	for _, ch := range status {
		if col >= width {
			break
		}
		r.screen.SetContent(col, row, ch, nil, styleStatus)
		col++
	}
	for ; col < width; col++ {
		r.screen.SetContent(col, row, ' ', nil, styleStatus)
	}
}

// footprints lists the bounded pieces, rooms first
func footprints(layout *entities.Layout) []footprint {
	var rooms, corridors []footprint
	for _, p := range layout.Pieces {
		if p.Bounds == nil {
			continue
		}
		fp := footprint{box: p.Bounds.Box()}
		switch p.Kind {
		case entities.KindFirstRoom:
			fp.glyph, fp.style = GlyphFirstRoom, styleFirst
		case entities.KindShop:
			fp.glyph, fp.style = GlyphShop, styleShop
		case entities.KindEndRoom:
			fp.glyph, fp.style = GlyphEndRoom, styleEnd
		case entities.KindCorridor:
			fp.glyph, fp.style = GlyphCorridor, styleCorridor
		default:
			fp.glyph, fp.style = GlyphRoom, styleRoom
		}
		if p.Kind.IsRoom() {
			rooms = append(rooms, fp)
		} else {
			corridors = append(corridors, fp)
		}
	}
	return append(rooms, corridors...)
}

// fit scales the footprints' combined extent into a width x lines area
func fit(prints []footprint, width, lines int) viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, fp := range prints {
		for _, c := range fp.box.Corners() {
			minX, maxX = math.Min(minX, c.X()), math.Max(maxX, c.X())
			minY, maxY = math.Min(minY, c.Y()), math.Max(maxY, c.Y())
		}
	}

	perCol := math.Max((maxX-minX)/float64(width), (maxY-minY)/(float64(lines)*cellAspect))
	if perCol <= 0 {
		perCol = 1
	}

	return viewport{
		minX:        minX,
		maxY:        maxY,
		unitsPerCol: perCol,
		unitsPerRow: perCol * cellAspect,
		width:       width,
		lines:       lines,
	}
}
