package game

import (
	"fmt"
	"strings"

	"github.com/zimocha/crazy-sevens/internal/game/card"
	"github.com/zimocha/crazy-sevens/internal/game/rule"
)

// TopCard 弃牌堆顶的牌
func (s State) TopCard() card.Card {
	return s.Discard[len(s.Discard)-1]
}

// EffectiveSuit 生效花色：A 的变色优先，否则取堆顶自身花色
func (s State) EffectiveSuit() card.Suit {
	if s.SuitOverride != card.SuitNone {
		return s.SuitOverride
	}
	return s.TopCard().Suit
}

// EffectiveRank 生效点数，即堆顶的点数
func (s State) EffectiveRank() card.Rank {
	return s.TopCard().Rank
}

// Target 当前需要跟的目标
func (s State) Target() rule.Target {
	return rule.Target{Rank: s.EffectiveRank(), Suit: s.EffectiveSuit()}
}

// DrawableCount 两堆合计还能摸到的张数（堆顶永不回收）
func (s State) DrawableCount() int {
	n := len(s.DrawPile)
	if len(s.Discard) > 1 {
		n += len(s.Discard) - 1
	}
	return n
}

// LegalPlays 座位 idx 的全部合法出法。欠罚摸、带漏报处罚、
// 或任一子协议开启时没有任何合法出法
func (s State) LegalPlays(idx int) []rule.Play {
	if s.Winner != NoWinner || s.Interrupt.Kind != InterruptNone {
		return nil
	}
	if idx < 0 || idx >= len(s.Seats) {
		return nil
	}
	if s.Effects.DrawCount > 0 || s.Seats[idx].Penalty {
		return nil
	}
	return rule.LegalPlays(s.Seats[idx].Hand, s.Target())
}

// IsPlayLegal 座位 idx 的这手牌是否合法，驱动方的唯一合法性闸门
func (s State) IsPlayLegal(idx int, p rule.Play) bool {
	key := p.Key()
	for _, legal := range s.LegalPlays(idx) {
		if legal.Key() == key {
			return true
		}
	}
	return false
}

// --- 阶段谓词，供驱动方决定计时和默认动作 ---

// IsInResponsePhase 响应连锁是否开启
func (s State) IsInResponsePhase() bool {
	return s.Interrupt.Kind == InterruptChain
}

// IsInSevenDispute 七牌质疑是否开启
func (s State) IsInSevenDispute() bool {
	return s.Interrupt.Kind == InterruptDispute
}

// IsInJackResponse J 反向窗口是否开启
func (s State) IsInJackResponse() bool {
	return s.Interrupt.Kind == InterruptJack
}

// IsInAceResponse A 变色窗口是否开启
func (s State) IsInAceResponse() bool {
	return s.Interrupt.Kind == InterruptAce
}

// Responder 当前开启的子协议的应答座位，无子协议时返回 -1
func (s State) Responder() int {
	switch s.Interrupt.Kind {
	case InterruptChain:
		return s.Interrupt.Chain.Responder
	case InterruptDispute:
		return s.Interrupt.Dispute.Responder
	case InterruptJack, InterruptAce:
		return s.Interrupt.Window.Responder
	default:
		return -1
	}
}

// CanDeflect 座位 idx 此刻能否转移连锁
func (s State) CanDeflect(idx int) bool {
	return s.Interrupt.Kind == InterruptChain &&
		idx == s.Interrupt.Chain.Responder &&
		len(s.LegalDeflections()) > 0
}

// CanChallengeClaim 座位 idx 是否处于可质疑报单牌声明的窗口
func (s State) CanChallengeClaim(idx int) bool {
	return s.canChallengeClaim(idx)
}

// CanDeclare 座位 idx 此刻能否报单牌
func (s State) CanDeclare(idx int) bool {
	if s.Winner != NoWinner || s.Phase != PhasePlaying || s.Interrupt.Kind != InterruptNone {
		return false
	}
	if idx != s.Current {
		return false
	}
	seat := s.Seats[idx]
	return !seat.Declared && len(seat.Hand) >= 2
}

// Status 人类可读的局面摘要
func (s State) Status() string {
	var b strings.Builder
	if s.Winner != NoWinner {
		fmt.Fprintf(&b, "对局结束，座位 %d 获胜", s.Winner)
		return b.String()
	}
	fmt.Fprintf(&b, "回合 %d｜座位 %d 行动｜堆顶 %s", s.Turn, s.Current, s.TopCard())
	if s.SuitOverride != card.SuitNone {
		fmt.Fprintf(&b, "（变色 %s）", s.SuitOverride)
	}
	if s.Effects.DrawCount > 0 {
		fmt.Fprintf(&b, "｜累计罚摸 %d", s.Effects.DrawCount)
	}
	if s.Effects.SkipPending {
		b.WriteString("｜待跳过")
	}
	switch s.Interrupt.Kind {
	case InterruptChain:
		fmt.Fprintf(&b, "｜%s 连锁应答中：座位 %d", s.Interrupt.Chain.Rank, s.Interrupt.Chain.Responder)
	case InterruptDispute:
		fmt.Fprintf(&b, "｜七牌质疑中：座位 %d 应答", s.Interrupt.Dispute.Responder)
	case InterruptJack:
		fmt.Fprintf(&b, "｜J 反向窗口：座位 %d 可取消", s.Interrupt.Window.Responder)
	case InterruptAce:
		fmt.Fprintf(&b, "｜A 变色窗口：座位 %d 可取消", s.Interrupt.Window.Responder)
	}
	return b.String()
}
