package session

import (
	"log"
	"time"

	"github.com/zimocha/crazy-sevens/internal/game"
	"github.com/zimocha/crazy-sevens/internal/protocol"
	"github.com/zimocha/crazy-sevens/internal/protocol/codec"
	"github.com/zimocha/crazy-sevens/internal/protocol/convert"
)

// startTurnTimerLocked 给当前座位起普通回合计时，超时执行默认行动
func (gs *GameSession) startTurnTimerLocked() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	gs.stopTimersInner()
	gs.timerIsResponse = false
	gs.timerStartTime = time.Now()
	gs.remainingTime = 0
	gs.turnTimer = time.AfterFunc(gs.cfg.TurnTimeoutDuration(), gs.onTurnTimeout)
}

// startResponseTimerLocked 给应答座位起短超时计时，超时前发警告
func (gs *GameSession) startResponseTimerLocked(responder int) {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	gs.stopTimersInner()
	gs.timerIsResponse = true
	gs.timerStartTime = time.Now()
	gs.remainingTime = 0

	warnAt := gs.cfg.ResponseTimeoutDuration() - gs.cfg.WarningBeforeDuration()
	if warnAt > 0 {
		playerID := gs.seats[responder].PlayerID
		gs.warnTimer = time.AfterFunc(warnAt, func() {
			gs.room.Broadcast(codec.MustNewMessage(protocol.MsgActionWarning, protocol.ActionWarningPayload{
				PlayerID:  playerID,
				Remaining: gs.cfg.WarningBefore,
			}))
		})
	}
	gs.turnTimer = time.AfterFunc(gs.cfg.ResponseTimeoutDuration(), gs.onResponseTimeout)
}

// stopTimers 停掉所有计时器（对局结束时调用）
func (gs *GameSession) stopTimers() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()
	gs.stopTimersInner()
	if gs.offlineWaitTimer != nil {
		gs.offlineWaitTimer.Stop()
		gs.offlineWaitTimer = nil
	}
}

// stopTimersInner 调用方持有 timerMu
func (gs *GameSession) stopTimersInner() {
	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
		gs.turnTimer = nil
	}
	if gs.warnTimer != nil {
		gs.warnTimer.Stop()
		gs.warnTimer = nil
	}
	gs.remainingTime = 0
}

// onTurnTimeout 回合超时：当前座位执行默认行动
func (gs *GameSession) onTurnTimeout() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.st.Phase == game.PhaseGameOver {
		return
	}
	log.Printf("⏰ 回合超时: 房间 %s, 座位 %d", gs.room.Code, gs.st.Current)
	gs.defaultTurnActionLocked()
	gs.persistLocked()
}

// onResponseTimeout 应答超时：按默认方式关闭开着的子协议
func (gs *GameSession) onResponseTimeout() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.st.Phase == game.PhaseGameOver || gs.st.Interrupt.Kind == game.InterruptNone {
		return
	}
	log.Printf("⏰ 应答超时: 房间 %s, 座位 %d", gs.room.Code, gs.st.Responder())
	gs.defaultResponseActionLocked()
	gs.persistLocked()
}

// defaultTurnActionLocked 超时/托管座位的保守行动：
// 先结清欠摸，然后摸一张（不出牌），结束回合
func (gs *GameSession) defaultTurnActionLocked() {
	if gs.st.Interrupt.Kind != game.InterruptNone {
		gs.defaultResponseActionLocked()
		return
	}

	for gs.st.Phase == game.PhaseMustDraw {
		gs.drawLocked(gs.st.Current)
	}
	if gs.st.Phase == game.PhasePlaying {
		gs.drawLocked(gs.st.Current)
	}
	if gs.st.Phase == game.PhaseCanEnd {
		gs.advanceTurnLocked()
	}
}

// defaultResponseActionLocked 应答座位的默认应答：连锁承受，
// 质疑接受结论，窗口确认效果
func (gs *GameSession) defaultResponseActionLocked() {
	switch gs.st.Interrupt.Kind {
	case game.InterruptChain:
		gs.resolveChainLocked()
	case game.InterruptDispute:
		gs.settleDisputeLocked()
	case game.InterruptJack, game.InterruptAce:
		gs.acceptWindowLocked()
	}
}

// scheduleBotTurn 托管座位稍后自动行动
func (gs *GameSession) scheduleBotTurn(idx int) {
	time.AfterFunc(botActionDelay, func() {
		gs.mu.Lock()
		defer gs.mu.Unlock()

		if gs.st.Phase == game.PhaseGameOver || gs.st.Current != idx ||
			gs.st.Interrupt.Kind != game.InterruptNone {
			return
		}
		gs.botTurnLocked(idx)
		gs.persistLocked()
	})
}

// botTurnLocked 托管座位的回合：结清欠摸后尽量出牌，
// 降到单牌前先报单，出不了就摸一张，最后结束回合
func (gs *GameSession) botTurnLocked(idx int) {
	for gs.st.Phase == game.PhaseMustDraw {
		gs.drawLocked(idx)
	}

	if gs.st.Phase == game.PhasePlaying {
		if p, ok := firstLegalPlay(gs.st, idx); ok {
			if len(gs.st.Seats[idx].Hand)-len(p.Cards) == 1 && gs.st.CanDeclare(idx) {
				gs.st = gs.st.ApplyDeclare()
				gs.room.Broadcast(codec.MustNewMessage(protocol.MsgLastDeclared, protocol.LastDeclaredPayload{
					PlayerID:   gs.seats[idx].PlayerID,
					PlayerName: gs.seats[idx].Name,
				}))
			}
			// playLocked 打开子协议或终局时自行接管后续
			if err := gs.playLocked(idx, p, true); err != nil {
				return
			}
			if gs.st.Phase == game.PhaseCanEnd && gs.st.Interrupt.Kind == game.InterruptNone {
				gs.advanceTurnLocked()
			}
			return
		}
		gs.drawLocked(idx)
	}

	if gs.st.Phase == game.PhaseCanEnd {
		gs.advanceTurnLocked()
	}
}

// scheduleBotResponse 托管应答座位稍后自动应答：
// 连锁能转嫁就转嫁，其余按默认方式关闭
func (gs *GameSession) scheduleBotResponse(idx int) {
	time.AfterFunc(botActionDelay, func() {
		gs.mu.Lock()
		defer gs.mu.Unlock()

		if gs.st.Phase == game.PhaseGameOver || gs.st.Responder() != idx {
			return
		}

		if gs.st.Interrupt.Kind == game.InterruptChain {
			if ds := gs.st.LegalDeflections(); len(ds) > 0 {
				c := ds[0]
				gs.st = gs.st.ApplyDeflect(c)
				if gs.st.Phase == game.PhaseGameOver {
					gs.endGameLocked()
					return
				}
				gs.room.Broadcast(codec.MustNewMessage(protocol.MsgChainDeflect, protocol.ChainDeflectPayload{
					PlayerID:  gs.seats[idx].PlayerID,
					Card:      convert.CardToInfo(c),
					DrawCount: gs.st.Effects.DrawCount,
					Responder: gs.st.Interrupt.Chain.Responder,
				}))
				gs.promptResponderLocked()
				gs.persistLocked()
				return
			}
		}
		gs.defaultResponseActionLocked()
		gs.persistLocked()
	})
}

// PlayerOffline 座位离线：若正轮到其行动则暂停计时，
// 超过宽限期仍未回来就转为托管并立即补上默认行动
func (gs *GameSession) PlayerOffline(playerID string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 || gs.st.Phase == game.PhaseGameOver {
		return
	}
	gs.seats[idx].Offline = true
	log.Printf("📴 座位离线: 房间 %s, 座位 %d", gs.room.Code, idx)

	if !gs.onClockLocked(idx) {
		return
	}
	gs.pauseTimer()
	gs.armOfflineGrace(idx)
}

// armOfflineGrace 起离线宽限计时，到点转托管
func (gs *GameSession) armOfflineGrace(idx int) {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()
	if gs.offlineWaitTimer != nil {
		gs.offlineWaitTimer.Stop()
	}
	gs.offlineWaitTimer = time.AfterFunc(gs.cfg.OfflineGraceDuration(), func() {
		gs.takeoverSeat(idx)
	})
}

// PlayerOnline 座位重连：取回被托管的座位并恢复暂停的计时
func (gs *GameSession) PlayerOnline(playerID string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return
	}
	gs.seats[idx].Offline = false
	log.Printf("📶 座位重连: 房间 %s, 座位 %d", gs.room.Code, idx)

	// 有玩家绑定的座位开局都是真人，托管只发生在离线超时之后
	if gs.seats[idx].Kind == game.SeatBot {
		gs.seats[idx].Kind = game.SeatHuman
		log.Printf("👤 取消托管: 房间 %s, 座位 %d", gs.room.Code, idx)
	}

	gs.timerMu.Lock()
	if gs.offlineWaitTimer != nil {
		gs.offlineWaitTimer.Stop()
		gs.offlineWaitTimer = nil
	}
	gs.timerMu.Unlock()

	gs.resumeTimer()
}

// onClockLocked 座位 idx 是否正被计时（当前行动方或应答方）
func (gs *GameSession) onClockLocked(idx int) bool {
	if gs.st.Interrupt.Kind != game.InterruptNone {
		return gs.st.Responder() == idx
	}
	return gs.st.Current == idx
}

// pauseTimer 暂停行动计时并记下剩余时间
func (gs *GameSession) pauseTimer() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.turnTimer == nil {
		return
	}
	gs.turnTimer.Stop()
	gs.turnTimer = nil
	if gs.warnTimer != nil {
		gs.warnTimer.Stop()
		gs.warnTimer = nil
	}

	total := gs.cfg.TurnTimeoutDuration()
	if gs.timerIsResponse {
		total = gs.cfg.ResponseTimeoutDuration()
	}
	gs.remainingTime = total - time.Since(gs.timerStartTime)
	if gs.remainingTime < time.Second {
		gs.remainingTime = time.Second
	}
	log.Printf("⏸️ 计时暂停: 房间 %s, 剩余 %v", gs.room.Code, gs.remainingTime)
}

// resumeTimer 用剩余时间继续计时
func (gs *GameSession) resumeTimer() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.remainingTime <= 0 {
		return
	}
	remaining := gs.remainingTime
	gs.remainingTime = 0
	gs.timerStartTime = time.Now().Add(remaining - gs.currentTotal())

	if gs.timerIsResponse {
		gs.turnTimer = time.AfterFunc(remaining, gs.onResponseTimeout)
	} else {
		gs.turnTimer = time.AfterFunc(remaining, gs.onTurnTimeout)
	}
	log.Printf("▶️ 计时恢复: 房间 %s, 剩余 %v", gs.room.Code, remaining)
}

func (gs *GameSession) currentTotal() time.Duration {
	if gs.timerIsResponse {
		return gs.cfg.ResponseTimeoutDuration()
	}
	return gs.cfg.TurnTimeoutDuration()
}

// takeoverSeat 离线宽限期已过：座位转为托管并立即补上默认行动
func (gs *GameSession) takeoverSeat(idx int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.st.Phase == game.PhaseGameOver || !gs.seats[idx].Offline {
		return
	}
	gs.seats[idx].Kind = game.SeatBot
	log.Printf("🤖 座位托管: 房间 %s, 座位 %d", gs.room.Code, idx)

	if !gs.onClockLocked(idx) {
		return
	}
	if gs.st.Interrupt.Kind != game.InterruptNone {
		gs.defaultResponseActionLocked()
	} else {
		gs.defaultTurnActionLocked()
	}
	gs.persistLocked()
}
