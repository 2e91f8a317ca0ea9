package game

import (
	"github.com/zimocha/crazy-sevens/internal/game/card"
	"github.com/zimocha/crazy-sevens/internal/game/rule"
)

// LegalDeflections 当前应答座位可用来转移连锁的牌。
// 只有与连锁点数完全一致的牌可以转移
func (s State) LegalDeflections() []card.Card {
	if s.Interrupt.Kind != InterruptChain || s.Winner != NoWinner {
		return nil
	}
	hand := s.Seats[s.Interrupt.Chain.Responder].Hand
	return rule.LegalDeflections(hand, s.Interrupt.Chain.Rank)
}

// ApplyDeflect 应答座位打出同点牌转移连锁：罚摸数值累计，
// 跳过保持标记不叠加，应答方传给下一座；打空手牌立即获胜
func (s State) ApplyDeflect(c card.Card) State {
	if s.Winner != NoWinner || s.Interrupt.Kind != InterruptChain {
		return s
	}
	chain := s.Interrupt.Chain
	if c.Rank != chain.Rank {
		return s
	}

	n := s.clone()
	responder := &n.Seats[chain.Responder]
	remaining := rule.RemoveCards(responder.Hand, []card.Card{c})
	if remaining == nil {
		return s
	}
	responder.Hand = remaining
	n.Discard = append(n.Discard, c)
	n.Effects.DrawCount += rule.DrawValue(c.Rank)

	if len(responder.Hand) == 0 {
		n.Winner = chain.Responder
		n.Phase = PhaseGameOver
		n.Interrupt = Interrupt{}
		return n
	}

	n.Interrupt.Chain.Source = chain.Responder
	n.Interrupt.Chain.Responder = n.seatAfter(chain.Responder)
	return n
}

// ApplyResolve 应答座位承受连锁：成为当前座位，欠罚摸则进入
// 必摸阶段；待跳过由承受者消耗（跳过其回合）
func (s State) ApplyResolve() State {
	if s.Winner != NoWinner || s.Interrupt.Kind != InterruptChain {
		return s
	}
	n := s.clone()
	resolver := n.Interrupt.Chain.Responder
	n.Interrupt = Interrupt{}
	n.Current = resolver

	if n.Effects.DrawCount > 0 {
		// 连锁里可能同时带跳过（同花连出 4 与罚摸牌），
		// 摸完罚摸后回合本就结束，跳过随之消耗
		n.Effects.SkipPending = false
		n.Phase = PhaseMustDraw
		return n
	}

	if n.Effects.SkipPending {
		n.Effects.SkipPending = false
		n.Current = n.seatAfter(resolver)
	}
	n.Phase = PhaseWaiting
	return n
}
