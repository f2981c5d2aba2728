// state/selecting_state.go
package state

import (
	"encoding/json"

	"github.com/wfunc/sketchdash/models"
	"github.com/wfunc/sketchdash/network"
	"github.com/wfunc/sketchdash/words"
)

// SelectingState 画手从3个候选词里挑一个。只认画手发来的
// word_selected，倒计时归零自动用第一个候选词。
type SelectingState struct {
	gameStateBase
}

func newSelectingState(g *Game) *SelectingState {
	return &SelectingState{gameStateBase{id: PhaseSelecting, game: g}}
}

func (s *SelectingState) OnEnter() {
	s.game.setupTurn()
}

func (s *SelectingState) OnTick() {
	g := s.game
	g.timerSeconds--
	g.broadcastTimer()
	if g.timerSeconds <= 0 {
		// 超时自动定词
		g.beginDrawing(g.wordChoices[0])
	}
}

func (s *SelectingState) HandleEvent(playerID string, msgID uint16, data []byte) {
	g := s.game
	if msgID != network.MsgTypeWordSelected || playerID != g.drawerID {
		return
	}

	var sel models.WordSelection
	if err := json.Unmarshal(data, &sel); err != nil {
		return
	}

	// 只接受当前候选词之一，其余一律当作迟到或伪造的选择丢弃
	word := words.Normalize(sel.Word)
	for _, choice := range g.wordChoices {
		if choice == word {
			g.beginDrawing(word)
			return
		}
	}
}
