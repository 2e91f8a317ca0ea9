package session

import (
	"github.com/zimocha/crazy-sevens/internal/apperrors"
	"github.com/zimocha/crazy-sevens/internal/game"
	"github.com/zimocha/crazy-sevens/internal/game/card"
	"github.com/zimocha/crazy-sevens/internal/game/rule"
	"github.com/zimocha/crazy-sevens/internal/protocol"
	"github.com/zimocha/crazy-sevens/internal/protocol/codec"
	"github.com/zimocha/crazy-sevens/internal/protocol/convert"
)

// HandlePlayCards 当前座位出牌。合法性先过引擎枚举，
// 打出后按激活的功能开启对应的应答窗口
func (gs *GameSession) HandlePlayCards(playerID string, payload *protocol.PlayCardsPayload) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return apperrors.ErrNotInRoom
	}
	if idx != gs.st.Current || gs.st.Interrupt.Kind != game.InterruptNone {
		return apperrors.ErrNotYourTurn
	}
	if gs.st.Phase == game.PhaseMustDraw {
		return apperrors.ErrMustDraw
	}
	if gs.st.Phase != game.PhasePlaying {
		return apperrors.ErrCannotAct
	}

	p, err := convert.PlayFromPayload(payload)
	if err != nil {
		return apperrors.ErrIllegalPlay
	}
	if !gs.st.IsPlayLegal(idx, p) {
		return apperrors.ErrIllegalPlay
	}

	return gs.playLocked(idx, p, payload.Activate)
}

// playLocked 应用一手出牌并广播后续。调用方已校验合法性
func (gs *GameSession) playLocked(idx int, p rule.Play, activate bool) error {
	gs.st = gs.st.ApplyPlay(p, activate)
	b := gs.seats[idx]

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		PlayerID:   b.PlayerID,
		PlayerName: b.Name,
		Cards:      convert.CardsToInfos(p.Cards),
		Suit:       int(p.Suit),
		Activated:  activate,
		CardsLeft:  len(gs.st.Seats[idx].Hand),
	}))

	if gs.st.Phase == game.PhaseGameOver {
		gs.endGameLocked()
		return nil
	}

	switch gs.st.Interrupt.Kind {
	case game.InterruptChain:
		gs.promptResponderLocked()
	case game.InterruptJack, game.InterruptAce:
		w := gs.st.Interrupt.Window
		kind := "jack"
		if gs.st.Interrupt.Kind == game.InterruptAce {
			kind = "ace"
		}
		gs.room.Broadcast(codec.MustNewMessage(protocol.MsgWindowOpened, protocol.WindowOpenedPayload{
			PlayerID:  b.PlayerID,
			Kind:      kind,
			Suit:      int(w.Suit),
			Responder: w.Responder,
		}))
		gs.promptResponderLocked()
	default:
		gs.broadcastStateLocked()
	}

	gs.persistLocked()
	return nil
}

// HandleDraw 当前座位摸牌：欠摸阶段结算罚摸，普通阶段自愿摸一张
func (gs *GameSession) HandleDraw(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return apperrors.ErrNotInRoom
	}
	if idx != gs.st.Current || gs.st.Interrupt.Kind != game.InterruptNone {
		return apperrors.ErrNotYourTurn
	}

	switch gs.st.Phase {
	case game.PhaseMustDraw, game.PhasePlaying:
		gs.drawLocked(idx)
		gs.persistLocked()
		return nil
	default:
		return apperrors.ErrCannotAct
	}
}

// drawLocked 应用摸牌并广播张数。调用方已校验阶段
func (gs *GameSession) drawLocked(idx int) {
	before := len(gs.st.Seats[idx].Hand)
	if gs.st.Phase == game.PhaseMustDraw {
		gs.st = gs.st.ApplyForcedDraw()
	} else {
		gs.st = gs.st.ApplyDraw(1)
	}

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgCardsDrawn, protocol.CardsDrawnPayload{
		PlayerID:  gs.seats[idx].PlayerID,
		Count:     len(gs.st.Seats[idx].Hand) - before,
		CardsLeft: len(gs.st.Seats[idx].Hand),
	}))
	gs.broadcastStateLocked()
}

// HandleEndTurn 当前座位结束回合
func (gs *GameSession) HandleEndTurn(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return apperrors.ErrNotInRoom
	}
	if idx != gs.st.Current || gs.st.Interrupt.Kind != game.InterruptNone {
		return apperrors.ErrNotYourTurn
	}
	if gs.st.Phase != game.PhaseCanEnd {
		return apperrors.ErrCannotAct
	}

	gs.advanceTurnLocked()
	return nil
}

// HandleDeclare 当前座位报单牌
func (gs *GameSession) HandleDeclare(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return apperrors.ErrNotInRoom
	}
	if !gs.st.CanDeclare(idx) {
		return apperrors.ErrCannotAct
	}

	gs.st = gs.st.ApplyDeclare()
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgLastDeclared, protocol.LastDeclaredPayload{
		PlayerID:   gs.seats[idx].PlayerID,
		PlayerName: gs.seats[idx].Name,
	}))
	gs.persistLocked()
	return nil
}

// HandleDeflect 连锁应答座位打出同点牌转嫁
func (gs *GameSession) HandleDeflect(playerID string, payload *protocol.DeflectPayload) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return apperrors.ErrNotInRoom
	}
	if gs.st.Interrupt.Kind != game.InterruptChain || idx != gs.st.Interrupt.Chain.Responder {
		return apperrors.ErrNotResponder
	}

	c, err := convert.InfoToCard(payload.Card)
	if err != nil {
		return apperrors.ErrIllegalPlay
	}
	legal := false
	for _, d := range gs.st.LegalDeflections() {
		if d == c {
			legal = true
			break
		}
	}
	if !legal {
		return apperrors.ErrIllegalPlay
	}

	gs.st = gs.st.ApplyDeflect(c)

	if gs.st.Phase == game.PhaseGameOver {
		gs.room.Broadcast(codec.MustNewMessage(protocol.MsgChainDeflect, protocol.ChainDeflectPayload{
			PlayerID:  gs.seats[idx].PlayerID,
			Card:      convert.CardToInfo(c),
			DrawCount: gs.st.Effects.DrawCount,
			Responder: -1,
		}))
		gs.endGameLocked()
		return nil
	}

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgChainDeflect, protocol.ChainDeflectPayload{
		PlayerID:  gs.seats[idx].PlayerID,
		Card:      convert.CardToInfo(c),
		DrawCount: gs.st.Effects.DrawCount,
		Responder: gs.st.Interrupt.Chain.Responder,
	}))
	gs.promptResponderLocked()
	gs.persistLocked()
	return nil
}

// HandleResolve 连锁应答座位选择承受
func (gs *GameSession) HandleResolve(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return apperrors.ErrNotInRoom
	}
	if gs.st.Interrupt.Kind != game.InterruptChain || idx != gs.st.Interrupt.Chain.Responder {
		return apperrors.ErrNotResponder
	}

	gs.resolveChainLocked()
	gs.persistLocked()
	return nil
}

// resolveChainLocked 结算连锁：承受者就地接手回合
func (gs *GameSession) resolveChainLocked() {
	resolver := gs.st.Interrupt.Chain.Responder
	drawCount := gs.st.Effects.DrawCount
	gs.st = gs.st.ApplyResolve()

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgChainResolved, protocol.ChainResolvedPayload{
		PlayerID:  gs.seats[resolver].PlayerID,
		DrawCount: drawCount,
	}))
	gs.beginTurnLocked()
}

// HandleSeven 打出一张 7：连锁中发起质疑，质疑中反制，
// 报单牌声明窗口内质疑声明
func (gs *GameSession) HandleSeven(playerID string, payload *protocol.PlaySevenPayload) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return apperrors.ErrNotInRoom
	}

	c, err := convert.InfoToCard(payload.Card)
	if err != nil {
		return apperrors.ErrIllegalPlay
	}
	if !gs.st.CanSevenCancel(idx, c) {
		return apperrors.ErrCannotAct
	}

	gs.st = gs.st.ApplySevenCancel(idx, c)

	if gs.st.Phase == game.PhaseGameOver {
		gs.endGameLocked()
		return nil
	}

	d := gs.st.Interrupt.Dispute
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgDisputeOpened, protocol.DisputeOpenedPayload{
		PlayerID:  gs.seats[idx].PlayerID,
		Card:      convert.CardToInfo(c),
		Kind:      disputeKindName(d.Kind),
		Cancelled: d.Cancelled,
		Responder: d.Responder,
	}))
	gs.promptResponderLocked()
	gs.persistLocked()
	return nil
}

// HandleAcceptDispute 质疑应答座位接受当前结论
func (gs *GameSession) HandleAcceptDispute(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return apperrors.ErrNotInRoom
	}
	if gs.st.Interrupt.Kind != game.InterruptDispute || idx != gs.st.Interrupt.Dispute.Responder {
		return apperrors.ErrNotResponder
	}

	gs.settleDisputeLocked()
	gs.persistLocked()
	return nil
}

// settleDisputeLocked 裁定质疑并继续流程：效果落在应答座位时
// 其就地接手回合，否则轮转到下一座位
func (gs *GameSession) settleDisputeLocked() {
	d := gs.st.Interrupt.Dispute
	gs.st = gs.st.ApplySevenDisputeAccept()

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgDisputeSettle, protocol.DisputeSettledPayload{
		Kind:      disputeKindName(d.Kind),
		Cancelled: d.Cancelled,
	}))

	if gs.st.Phase == game.PhaseCanEnd {
		gs.advanceTurnLocked()
		return
	}
	gs.beginTurnLocked()
}

// HandleCancelWindow 应答座位取消 J/A 窗口
func (gs *GameSession) HandleCancelWindow(playerID string, payload *protocol.CancelWindowPayload) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return apperrors.ErrNotInRoom
	}

	c, err := convert.InfoToCard(payload.Card)
	if err != nil {
		return apperrors.ErrIllegalPlay
	}
	if !gs.st.CanCancelWindow(idx, c) {
		return apperrors.ErrCannotAct
	}

	kind := windowKindName(gs.st.Interrupt.Kind)
	gs.st = gs.st.ApplyWindowCancel(idx, c)

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgWindowClosed, protocol.WindowClosedPayload{
		Kind:      kind,
		Cancelled: true,
		Card:      convert.CardToInfo(c),
	}))

	if gs.st.Phase == game.PhaseGameOver {
		gs.endGameLocked()
		return nil
	}

	gs.advanceTurnLocked()
	return nil
}

// HandleAcceptWindow 应答座位确认 J/A 窗口的效果
func (gs *GameSession) HandleAcceptWindow(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	idx := gs.seatIndex(playerID)
	if idx == -1 {
		return apperrors.ErrNotInRoom
	}
	k := gs.st.Interrupt.Kind
	if (k != game.InterruptJack && k != game.InterruptAce) || idx != gs.st.Interrupt.Window.Responder {
		return apperrors.ErrNotResponder
	}

	gs.acceptWindowLocked()
	gs.persistLocked()
	return nil
}

// acceptWindowLocked 确认窗口效果并结束出牌者的回合
func (gs *GameSession) acceptWindowLocked() {
	kind := windowKindName(gs.st.Interrupt.Kind)
	gs.st = gs.st.ApplyWindowAccept()

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgWindowClosed, protocol.WindowClosedPayload{
		Kind:      kind,
		Cancelled: false,
	}))
	gs.advanceTurnLocked()
}

// promptResponderLocked 广播状态并对应答座位起短超时计时；
// 托管或离线的应答座位安排自动应答
func (gs *GameSession) promptResponderLocked() {
	gs.broadcastStateLocked()

	responder := gs.st.Responder()
	if responder < 0 {
		return
	}
	gs.startResponseTimerLocked(responder)

	b := gs.seats[responder]
	switch {
	case b.Kind == game.SeatBot:
		gs.scheduleBotResponse(responder)
	case b.Offline:
		gs.pauseTimer()
		gs.armOfflineGrace(responder)
	}
}

func disputeKindName(k game.DisputeKind) string {
	if k == game.DisputeClaim {
		return "claim"
	}
	return "effect"
}

func windowKindName(k game.InterruptKind) string {
	if k == game.InterruptAce {
		return "ace"
	}
	return "jack"
}

// firstLegalPlay 托管座位的出牌选择：优先不含功能牌的一手，
// 减少窗口开销；没有则取枚举的第一手
func firstLegalPlay(st game.State, idx int) (rule.Play, bool) {
	plays := st.LegalPlays(idx)
	if len(plays) == 0 {
		return rule.Play{}, false
	}
	for _, p := range plays {
		if !rule.HasSpecial(p.Cards) {
			return p, true
		}
	}
	p := plays[0]
	// 只剩 A 可出时，枚举已按花色展开，挑声明手中最多花色的那手
	if p.Cards[len(p.Cards)-1].Rank == card.RankA {
		want := mostHeldSuit(st.Seats[idx].Hand)
		for _, q := range plays {
			if q.Suit == want {
				return q, true
			}
		}
	}
	return p, true
}

func mostHeldSuit(hand []card.Card) card.Suit {
	counts := [4]int{}
	for _, c := range hand {
		counts[c.Suit]++
	}
	best := card.Spade
	for s := card.Spade; s <= card.Diamond; s++ {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}
