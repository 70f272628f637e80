package view

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/theme"
)

const (
	scoreFontSize  = 24
	winnerFontSize = 16
)

type Line struct {
	Text     string `json:"text"`
	Color    string `json:"color"`
	Font     string `json:"font"`
	FontSize int    `json:"font_size"`
}

// ScoreView lists every player's best line and, once decided, the winner.
type ScoreView struct {
	theme  theme.Theme
	source Source
	lines  []Line
}

func NewScoreView(th theme.Theme) *ScoreView {
	return &ScoreView{theme: th}
}

func (that *ScoreView) Attach(source Source) {
	that.source = source
}

func (that *ScoreView) Draw() {
	that.lines = that.lines[:0]

	if that.source == nil {
		return
	}

	scores := that.source.MaxScores()
	for _, player := range entity.Players {
		that.lines = append(that.lines, Line{
			Text:     fmt.Sprintf("%s: %d", player, scores[player]),
			Color:    that.theme.Text,
			Font:     that.theme.Fonts.Body,
			FontSize: scoreFontSize,
		})
	}

	if winner, ok := that.source.CheckWinner(); ok {
		that.lines = append(that.lines, Line{
			Text:     fmt.Sprintf("%s wins!", winner),
			Color:    that.theme.Success.Text,
			Font:     that.theme.Fonts.Body,
			FontSize: winnerFontSize,
		})
	}
}

// Lines - the result of the last Draw.
func (that *ScoreView) Lines() []Line {
	return append([]Line(nil), that.lines...)
}

func (that *ScoreView) Text() []string {
	texts := make([]string, len(that.lines))
	for i, line := range that.lines {
		texts[i] = line.Text
	}

	return texts
}
