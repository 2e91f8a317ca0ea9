package session

import (
	"github.com/zimocha/crazy-sevens/internal/game"
	"github.com/zimocha/crazy-sevens/internal/protocol"
	"github.com/zimocha/crazy-sevens/internal/protocol/convert"
)

var phaseNames = map[game.Phase]string{
	game.PhaseWaiting:  "waiting",
	game.PhasePlaying:  "playing",
	game.PhaseMustDraw: "must_draw",
	game.PhaseCanEnd:   "can_end",
	game.PhaseGameOver: "game_over",
}

var interruptNames = map[game.InterruptKind]string{
	game.InterruptChain:   "chain",
	game.InterruptDispute: "dispute",
	game.InterruptJack:    "jack",
	game.InterruptAce:     "ace",
}

// buildStateDTO 按观察者视角生成状态快照：只有 viewer 自己的
// 手牌进快照，其余座位脱敏为手牌数量。viewer 为 -1 时全部脱敏
func (gs *GameSession) buildStateDTO(viewer int) protocol.GameStateDTO {
	st := gs.st

	seats := make([]protocol.SeatInfo, len(st.Seats))
	for i, seat := range st.Seats {
		b := gs.seats[i]
		seats[i] = protocol.SeatInfo{
			PlayerID:   b.PlayerID,
			PlayerName: b.Name,
			Seat:       i,
			CardsCount: len(seat.Hand),
			Declared:   seat.Declared,
			Penalty:    seat.Penalty,
			Online:     !b.Offline,
			Bot:        b.Kind == game.SeatBot,
		}
	}

	dto := protocol.GameStateDTO{
		Phase:        phaseNames[st.Phase],
		Seats:        seats,
		TopCard:      convert.CardToInfo(st.TopCard()),
		SuitOverride: int(st.SuitOverride),
		Direction:    int(st.Dir),
		Current:      st.Current,
		DrawCount:    st.Effects.DrawCount,
		SkipPending:  st.Effects.SkipPending,
		DrawPileLeft: len(st.DrawPile),
		Winner:       st.Winner,
		Turn:         st.Turn,
	}

	if viewer >= 0 && viewer < len(st.Seats) {
		dto.Hand = convert.CardsToInfos(st.Seats[viewer].Hand)
	}

	if st.Interrupt.Kind != game.InterruptNone {
		dto.Interrupt = interruptNames[st.Interrupt.Kind]
		dto.Responder = st.Responder()
	}

	return dto
}

// StateDTOFor 对外暴露的快照（重连恢复用）
func (gs *GameSession) StateDTOFor(playerID string) *protocol.GameStateDTO {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	dto := gs.buildStateDTO(gs.seatIndex(playerID))
	return &dto
}
