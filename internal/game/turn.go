package game

import (
	"github.com/zimocha/crazy-sevens/internal/game/card"
	"github.com/zimocha/crazy-sevens/internal/game/rule"
)

// ConfirmHandoff 当前座位确认接手：欠罚摸或带漏报处罚时进入
// 必摸阶段，否则进入可行动阶段
func (s State) ConfirmHandoff() State {
	if s.Winner != NoWinner || s.Phase != PhaseWaiting || s.Interrupt.Kind != InterruptNone {
		return s
	}
	n := s.clone()
	if n.Seats[n.Current].Penalty || n.Effects.DrawCount > 0 {
		n.Phase = PhaseMustDraw
	} else {
		n.Phase = PhasePlaying
	}
	return n
}

// ApplyPlay 当前座位打出一手牌。合法性必须由驱动方先经
// rule.IsPlayLegal 检查，这里只做结构性的拒绝（牌不在手中等）。
// activate 为 false 时功能牌按普通牌结算，不累计效果也不开窗口。
func (s State) ApplyPlay(p rule.Play, activate bool) State {
	if s.Winner != NoWinner || s.Phase != PhasePlaying || s.Interrupt.Kind != InterruptNone {
		return s
	}
	if len(p.Cards) == 0 {
		return s
	}

	n := s.clone()
	actor := &n.Seats[n.Current]

	remaining := rule.RemoveCards(actor.Hand, p.Cards)
	if remaining == nil {
		return s // 有牌不在手中，整手拒绝
	}
	actor.Hand = remaining
	n.Discard = append(n.Discard, p.Cards...)

	last := p.Cards[len(p.Cards)-1]

	// 变色：末张为 A 且激活时生效，其余任何出牌清除变色
	if activate && last.Rank == card.RankA {
		n.SuitOverride = p.Suit
	} else {
		n.SuitOverride = card.SuitNone
	}

	n.LastSpecial = activate && rule.HasSpecial(p.Cards)

	if activate {
		for _, c := range p.Cards {
			n.Effects.DrawCount += rule.DrawValue(c.Rank)
		}
		if !n.Effects.SkipPending {
			for _, c := range p.Cards {
				if rule.IsSkip(c.Rank) {
					n.Effects.SkipPending = true
					break
				}
			}
		}
	}

	// 打空手牌即获胜，不再开启任何子协议
	if len(actor.Hand) == 0 {
		n.Winner = n.Current
		n.Phase = PhaseGameOver
		return n
	}

	// J 的方向反转按张数取奇偶。与连锁同时出现时立即生效，
	// 连锁的应答方按反转后的方向计算
	jacks := 0
	for _, c := range p.Cards {
		if c.Rank == card.RankJ {
			jacks++
		}
	}
	flip := jacks%2 == 1

	if activate && rule.HasEffect(p.Cards) {
		if flip {
			n.Dir = n.Dir.reversed()
		}
		n.Interrupt = Interrupt{
			Kind: InterruptChain,
			Chain: ChainState{
				Rank:      rule.ChainRank(p.Cards),
				Responder: n.seatAfter(n.Current),
				Source:    n.Current,
			},
		}
		n.Phase = PhaseCanEnd
		return n
	}

	if activate && jacks > 0 {
		n.Interrupt = Interrupt{
			Kind: InterruptJack,
			Window: WindowState{
				Responder: n.seatAfter(n.Current),
				Suit:      card.SuitNone,
				Flip:      flip,
			},
		}
		n.Phase = PhaseCanEnd
		return n
	}

	if activate && last.Rank == card.RankA {
		n.Interrupt = Interrupt{
			Kind: InterruptAce,
			Window: WindowState{
				Responder: n.seatAfter(n.Current),
				Suit:      p.Suit,
			},
		}
		n.Phase = PhaseCanEnd
		return n
	}

	n.Phase = PhaseCanEnd
	return n
}

// ApplyDraw 当前座位摸 count 张。总是清零累计罚摸和漏报处罚标记
func (s State) ApplyDraw(count int) State {
	if s.Winner != NoWinner || s.Interrupt.Kind != InterruptNone {
		return s
	}
	if s.Phase != PhasePlaying && s.Phase != PhaseMustDraw {
		return s
	}
	n := s.clone()
	n.drawCards(n.Current, count)
	n.Effects.DrawCount = 0
	n.Seats[n.Current].Penalty = false
	n.Phase = PhaseCanEnd
	return n
}

// ApplyForcedDraw 结算欠下的摸牌。漏报处罚优先于连锁总数：
// 带处罚标记时只摸 1 张并只清处罚，否则摸清全部累计罚摸
func (s State) ApplyForcedDraw() State {
	if s.Winner != NoWinner || s.Interrupt.Kind != InterruptNone {
		return s
	}
	if s.Phase != PhaseMustDraw {
		return s
	}
	n := s.clone()
	if n.Seats[n.Current].Penalty {
		n.drawCards(n.Current, 1)
		n.Seats[n.Current].Penalty = false
		if n.Effects.DrawCount > 0 {
			n.Phase = PhaseMustDraw
		} else {
			n.Phase = PhaseCanEnd
		}
		return n
	}
	n.drawCards(n.Current, n.Effects.DrawCount)
	n.Effects.DrawCount = 0
	n.Phase = PhaseCanEnd
	return n
}

// NextTurn 推进到下一个座位：未处理的窗口按默认结算，
// 漏报单牌的离场者打上处罚标记，待跳过在这里消耗
func (s State) NextTurn() State {
	if s.Winner != NoWinner || s.Phase == PhaseGameOver {
		return s
	}
	n := s.clone()

	// 开着的子协议只在本回合内有效：J 窗口默认生效，其余直接清除
	if n.Interrupt.Kind == InterruptJack && n.Interrupt.Window.Flip {
		n.Dir = n.Dir.reversed()
	}
	n.Interrupt = Interrupt{}

	out := &n.Seats[n.Current]
	if len(out.Hand) == 1 && !out.Declared && !n.LastSpecial {
		out.Penalty = true
	}
	out.Declared = false
	n.LastSpecial = false

	next := n.seatAfter(n.Current)
	if n.Effects.SkipPending {
		n.Effects.SkipPending = false
		next = n.seatAfter(next)
	}
	n.Current = next
	n.Turn++

	// 报单牌声明只对紧随其后的一个回合有效
	if n.Claim != nil && n.Claim.Turn <= n.Turn-2 {
		n.Claim = nil
	}

	n.Phase = PhaseWaiting
	return n
}

// ApplyDeclare 当前座位报单牌：即将通过一手不含功能牌的出牌
// 降到只剩一张时申报，生成一条可被下家质疑的声明
func (s State) ApplyDeclare() State {
	if s.Winner != NoWinner || s.Phase != PhasePlaying || s.Interrupt.Kind != InterruptNone {
		return s
	}
	actor := s.Seats[s.Current]
	if actor.Declared || len(actor.Hand) < 2 {
		return s
	}
	n := s.clone()
	n.Seats[n.Current].Declared = true
	n.Claim = &Claim{Claimant: n.Current, Turn: n.Turn}
	return n
}

func (d Direction) reversed() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}

// drawCards 给座位 idx 摸 count 张。摸牌堆耗尽时把堆顶以外的
// 弃牌洗回再继续；两堆俱尽则静默停止，少摸不算错误
func (s *State) drawCards(idx, count int) {
	for range count {
		if len(s.DrawPile) == 0 {
			s.recycleDiscard()
		}
		if len(s.DrawPile) == 0 {
			return
		}
		s.Seats[idx].Hand = append(s.Seats[idx].Hand, s.DrawPile[0])
		s.DrawPile = s.DrawPile[1:]
	}
}

// recycleDiscard 把弃牌堆除堆顶外的牌洗回摸牌堆，堆顶保持不动。
// 洗牌随机性来自状态内保存的 LCG，保证回放可复现
func (s *State) recycleDiscard() {
	if len(s.Discard) <= 1 {
		return
	}
	top := s.Discard[len(s.Discard)-1]
	recycled := make(card.Deck, len(s.Discard)-1)
	copy(recycled, s.Discard[:len(s.Discard)-1])

	rng := card.NewLCG(s.Rng)
	recycled.Shuffle(rng)
	s.Rng = rng.State()

	s.DrawPile = recycled
	s.Discard = []card.Card{top}
}
