package game

import (
	"github.com/zimocha/crazy-sevens/internal/game/card"
	"github.com/zimocha/crazy-sevens/internal/game/rule"
)

// CanSevenCancel 座位 idx 此刻能否打出 c 发起或反制七牌质疑
func (s State) CanSevenCancel(idx int, c card.Card) bool {
	if s.Winner != NoWinner || c.Rank != card.Rank7 {
		return false
	}
	if !s.holds(idx, c) {
		return false
	}
	switch s.Interrupt.Kind {
	case InterruptChain:
		// 连锁中：应答座位用一张生效花色的 7 发起质疑
		return idx == s.Interrupt.Chain.Responder && c.Suit == s.EffectiveSuit()
	case InterruptDispute:
		// 质疑中：应答座位用任意 7 反制
		return idx == s.Interrupt.Dispute.Responder
	case InterruptNone:
		// 报单牌声明后的下一回合：行动者用一张生效花色的 7 质疑声明
		return s.canChallengeClaim(idx) && c.Suit == s.EffectiveSuit()
	default:
		return false
	}
}

// canChallengeClaim 座位 idx 是否处于可质疑报单牌声明的窗口
func (s State) canChallengeClaim(idx int) bool {
	return s.Claim != nil &&
		s.Claim.Turn+1 == s.Turn &&
		idx == s.Current &&
		idx != s.Claim.Claimant &&
		s.Phase == PhasePlaying
}

// ApplySevenCancel 打出一张 7：连锁中发起效果质疑，质疑中反制
// （翻转结论），声明窗口内发起声明质疑。打空手牌立即获胜
func (s State) ApplySevenCancel(idx int, c card.Card) State {
	if !s.CanSevenCancel(idx, c) {
		return s
	}

	n := s.clone()
	seat := &n.Seats[idx]
	seat.Hand = rule.RemoveCards(seat.Hand, []card.Card{c})
	n.Discard = append(n.Discard, c)

	if len(seat.Hand) == 0 {
		n.Winner = idx
		n.Phase = PhaseGameOver
		n.Interrupt = Interrupt{}
		return n
	}

	switch s.Interrupt.Kind {
	case InterruptChain:
		chain := s.Interrupt.Chain
		n.Interrupt = Interrupt{
			Kind: InterruptDispute,
			Dispute: DisputeState{
				Kind:      DisputeEffect,
				Cancelled: true,
				Responder: chain.Source,
				Other:     idx,
				Snapshot:  n.Effects,
				Claimant:  -1,
			},
		}
	case InterruptDispute:
		d := n.Interrupt.Dispute
		d.Cancelled = !d.Cancelled
		d.Responder, d.Other = d.Other, d.Responder
		n.Interrupt.Dispute = d
	default: // 声明质疑
		n.Interrupt = Interrupt{
			Kind: InterruptDispute,
			Dispute: DisputeState{
				Kind:      DisputeClaim,
				Cancelled: true,
				Responder: n.Claim.Claimant,
				Other:     idx,
				Claimant:  n.Claim.Claimant,
			},
		}
	}
	return n
}

// ApplySevenDisputeAccept 当前应答座位接受质疑结论。
// 效果质疑：被推翻则清空全部待结算效果，未被推翻则效果
// 落在应答座位身上。声明质疑：被推翻则撤销报单牌声明并给
// 报牌者打上漏报处罚，未被推翻则声明继续有效
func (s State) ApplySevenDisputeAccept() State {
	if s.Winner != NoWinner || s.Interrupt.Kind != InterruptDispute {
		return s
	}
	n := s.clone()
	d := n.Interrupt.Dispute
	n.Interrupt = Interrupt{}

	if d.Kind == DisputeEffect {
		if d.Cancelled {
			n.Effects = Effects{}
			n.Phase = PhaseCanEnd
			return n
		}
		n.Effects = d.Snapshot
		n.Current = d.Responder
		if n.Effects.DrawCount > 0 {
			n.Effects.SkipPending = false
			n.Phase = PhaseMustDraw
			return n
		}
		if n.Effects.SkipPending {
			n.Effects.SkipPending = false
			n.Current = n.seatAfter(d.Responder)
		}
		n.Phase = PhaseWaiting
		return n
	}

	// 声明质疑
	if d.Cancelled {
		n.Seats[d.Claimant].Declared = false
		n.Seats[d.Claimant].Penalty = true
		n.Claim = nil
	}
	n.Phase = PhaseCanEnd
	return n
}

// holds 座位 idx 手中是否有这张牌
func (s State) holds(idx int, c card.Card) bool {
	if idx < 0 || idx >= len(s.Seats) {
		return false
	}
	for _, h := range s.Seats[idx].Hand {
		if h == c {
			return true
		}
	}
	return false
}
