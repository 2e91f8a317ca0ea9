package session

import (
	"context"
	"log"

	"github.com/zimocha/crazy-sevens/internal/game"
	"github.com/zimocha/crazy-sevens/internal/protocol"
	"github.com/zimocha/crazy-sevens/internal/protocol/codec"
	"github.com/zimocha/crazy-sevens/internal/protocol/convert"
)

// Start 开局：逐座位下发开局消息与各自视角的状态，然后进入首回合
func (gs *GameSession) Start() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	players := gs.room.GetPlayerInfos()
	for i, b := range gs.seats {
		msg := codec.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{
			Players: players,
			Seat:    i,
		})
		gs.room.SendTo(b.PlayerID, msg)
	}

	log.Printf("🎮 对局开始: 房间 %s, %d 人", gs.room.Code, len(gs.seats))

	gs.broadcastStateLocked()
	gs.beginTurnLocked()
	gs.persistLocked()
}

// broadcastStateLocked 给每个座位发各自脱敏后的状态快照
func (gs *GameSession) broadcastStateLocked() {
	for i, b := range gs.seats {
		if b.Offline {
			continue
		}
		dto := gs.buildStateDTO(i)
		gs.room.SendTo(b.PlayerID, codec.MustNewMessage(protocol.MsgGameState, dto))
	}
}

// beginTurnLocked 当前座位接手回合：结算欠罚摸，广播回合开始，
// 起回合计时；托管座位安排自动行动
func (gs *GameSession) beginTurnLocked() {
	gs.st = gs.st.ConfirmHandoff()

	if gs.st.Phase == game.PhaseGameOver {
		gs.endGameLocked()
		return
	}

	cur := gs.st.Current
	b := gs.seats[cur]
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTurnBegin, protocol.TurnBeginPayload{
		PlayerID: b.PlayerID,
		Seat:     cur,
		MustDraw: gs.st.Phase == game.PhaseMustDraw,
		Timeout:  gs.cfg.TurnTimeout,
	}))
	gs.broadcastStateLocked()

	gs.startTurnTimerLocked()

	switch {
	case b.Kind == game.SeatBot:
		gs.scheduleBotTurn(cur)
	case b.Offline:
		// 离线的真人等宽限期，到点转托管再行动
		gs.pauseTimer()
		gs.armOfflineGrace(cur)
	}
}

// advanceTurnLocked 轮转到下一座位并开始其回合
func (gs *GameSession) advanceTurnLocked() {
	gs.st = gs.st.NextTurn()

	if gs.st.Phase == game.PhaseGameOver {
		gs.endGameLocked()
		return
	}

	gs.beginTurnLocked()
	gs.persistLocked()
}

// endGameLocked 对局结束：停表、亮牌、广播胜负，回调会话清理
func (gs *GameSession) endGameLocked() {
	gs.stopTimers()

	winner := gs.st.Winner
	payload := protocol.GameOverPayload{}
	if winner != game.NoWinner {
		payload.WinnerID = gs.seats[winner].PlayerID
		payload.WinnerName = gs.seats[winner].Name
	}
	for i, seat := range gs.st.Seats {
		payload.PlayerHands = append(payload.PlayerHands, protocol.PlayerHand{
			PlayerID:   gs.seats[i].PlayerID,
			PlayerName: gs.seats[i].Name,
			Cards:      convert.CardsToInfos(seat.Hand),
		})
	}
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgGameOver, payload))

	log.Printf("✅ 对局结束: 房间 %s, 胜者座位 %d", gs.room.Code, winner)

	if gs.OnGameOver != nil {
		go gs.OnGameOver(gs.room.Code)
	}
}

// persistLocked 把房间和引擎状态落盘到 Redis（store 为空则跳过）
func (gs *GameSession) persistLocked() {
	if gs.store == nil {
		return
	}
	data := gs.room.ToRoomData()
	snapshot := gs.st
	data.Game = &snapshot
	if err := gs.store.SaveRoom(context.Background(), gs.room.Code, data); err != nil {
		log.Printf("⚠️ 保存对局状态失败: 房间 %s, %v", gs.room.Code, err)
	}
}
