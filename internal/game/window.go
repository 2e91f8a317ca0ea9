package game

import (
	"github.com/zimocha/crazy-sevens/internal/game/card"
	"github.com/zimocha/crazy-sevens/internal/game/rule"
)

// CanCancelWindow 座位 idx 能否用 c 取消开着的 J/A 窗口。
// J 窗口用另一张 J 取消，A 窗口用一张指定花色的 7 取消
func (s State) CanCancelWindow(idx int, c card.Card) bool {
	if s.Winner != NoWinner || !s.holds(idx, c) {
		return false
	}
	switch s.Interrupt.Kind {
	case InterruptJack:
		return idx == s.Interrupt.Window.Responder && c.Rank == card.RankJ
	case InterruptAce:
		return idx == s.Interrupt.Window.Responder &&
			c.Rank == card.Rank7 && c.Suit == s.Interrupt.Window.Suit
	default:
		return false
	}
}

// ApplyWindowCancel 取消窗口：J 窗口的方向反转作废，
// A 窗口的变色撤销。取消牌垫入堆顶之下，目标仍由开窗的那张牌
// 决定。打空手牌立即获胜
func (s State) ApplyWindowCancel(idx int, c card.Card) State {
	if !s.CanCancelWindow(idx, c) {
		return s
	}
	n := s.clone()
	seat := &n.Seats[idx]
	seat.Hand = rule.RemoveCards(seat.Hand, []card.Card{c})
	n.Discard = append(n.Discard, c)
	last := len(n.Discard) - 1
	n.Discard[last-1], n.Discard[last] = n.Discard[last], n.Discard[last-1]

	if len(seat.Hand) == 0 {
		n.Winner = idx
		n.Phase = PhaseGameOver
		n.Interrupt = Interrupt{}
		return n
	}

	if s.Interrupt.Kind == InterruptAce {
		n.SuitOverride = card.SuitNone
	}
	n.Interrupt = Interrupt{}
	return n
}

// ApplyWindowAccept 确认窗口：J 的反转立即生效，A 的变色保持。
// 窗口未被处理时 NextTurn 也会按同样的默认结算
func (s State) ApplyWindowAccept() State {
	if s.Winner != NoWinner {
		return s
	}
	if s.Interrupt.Kind != InterruptJack && s.Interrupt.Kind != InterruptAce {
		return s
	}
	n := s.clone()
	if n.Interrupt.Kind == InterruptJack && n.Interrupt.Window.Flip {
		n.Dir = n.Dir.reversed()
	}
	n.Interrupt = Interrupt{}
	return n
}
