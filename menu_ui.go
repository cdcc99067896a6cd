package main

import (
	"fmt"
	"image/color"

	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/match"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

type menuActions struct {
	Start           func()
	CycleDifficulty func()
	Slower          func()
	Faster          func()
}

// MenuUI is the overlay shown outside of rounds: before the first match,
// after a match and while suspended.
type MenuUI struct {
	UI *ebitenui.UI

	title         *widget.Text
	detail        *widget.Text
	speed         *widget.Text
	startBtn      *widget.Button
	difficultyBtn *widget.Button
}

func NewMenuUI(actions menuActions) *MenuUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 210})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x1c, G: 0x2b, B: 0x44, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x2a, G: 0x44, B: 0x6b, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	newButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnHover}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
	}

	m := &MenuUI{}
	m.title = widget.NewText(
		widget.TextOpts.Text("LIGHT CYCLES", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)
	m.detail = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xaa, G: 0xcc, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(center),
	)
	m.startBtn = newButton("Start", actions.Start)
	m.difficultyBtn = newButton("Difficulty: normal", actions.CycleDifficulty)
	m.speed = widget.NewText(
		widget.TextOpts.Text("Speed 1.00x", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)

	speedRow := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
		)),
		widget.ContainerOpts.WidgetOpts(center),
	)
	speedRow.AddChild(newButton("-", actions.Slower))
	speedRow.AddChild(m.speed)
	speedRow.AddChild(newButton("+", actions.Faster))

	help := widget.NewText(
		widget.TextOpts.Text("Left/Right or A/D to turn, swipe on touch. C copies the score.", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(m.title)
	panel.AddChild(m.detail)
	panel.AddChild(m.startBtn)
	panel.AddChild(m.difficultyBtn)
	panel.AddChild(speedRow)
	panel.AddChild(help)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	m.UI = &ebitenui.UI{Container: root}
	return m
}

// Refresh updates the labels for the current match state and settings.
func (m *MenuUI) Refresh(state match.State, outcome match.MatchOutcome, score match.MatchState, s match.Settings) {
	if m == nil {
		return
	}
	title, start, detail := "LIGHT CYCLES", "Start", fmt.Sprintf("First of %d rounds", common.TotalRounds)
	switch state {
	case match.StateSuspended:
		title, start = "SUSPENDED", "Resume"
		detail = fmt.Sprintf("Round %d  player %d - %d AI", score.Round, score.PlayerScore, score.AIScore)
	case match.StateMatchComplete:
		title, start = outcomeTitle(outcome), "Play again"
		detail = fmt.Sprintf("Final score  player %d - %d AI", score.PlayerScore, score.AIScore)
	}
	m.title.Label = title
	m.detail.Label = detail
	if text := m.startBtn.Text(); text != nil {
		text.Label = start
	}
	if text := m.difficultyBtn.Text(); text != nil {
		text.Label = "Difficulty: " + s.Difficulty.String()
	}
	m.speed.Label = fmt.Sprintf("Speed %.2fx", s.SpeedMultiplier)
}

func outcomeTitle(o match.MatchOutcome) string {
	switch o {
	case match.PlayerWinsMatch:
		return "YOU WIN THE MATCH"
	case match.AIWinsMatch:
		return "AI WINS THE MATCH"
	default:
		return "MATCH DRAWN"
	}
}
