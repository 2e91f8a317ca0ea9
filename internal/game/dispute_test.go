package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimocha/crazy-sevens/internal/game/card"
)

func TestEffectDisputeAccepted(t *testing.T) {
	t.Parallel()

	// 应答方只有一张生效花色的 7，开启质疑（结论=推翻）；
	// 出牌者没有 7，接受：罚摸清零，质疑关闭，阶段可结束
	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank2), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Spade, card.Rank7), cc(card.Club, card.Rank6)},
	)
	s = s.ApplyPlay(single(cc(card.Spade, card.Rank2)), true)
	require.True(t, s.CanSevenCancel(1, cc(card.Spade, card.Rank7)))

	s = s.ApplySevenCancel(1, cc(card.Spade, card.Rank7))
	require.True(t, s.IsInSevenDispute())
	assert.True(t, s.Interrupt.Dispute.Cancelled)
	assert.Equal(t, 0, s.Interrupt.Dispute.Responder, "对手成为应答方")
	assert.Equal(t, Effects{DrawCount: 2}, s.Interrupt.Dispute.Snapshot)

	s = s.ApplySevenDisputeAccept()
	assert.Equal(t, 0, s.Effects.DrawCount)
	assert.False(t, s.IsInSevenDispute())
	assert.Equal(t, PhaseCanEnd, s.Phase)
	assert.Equal(t, 0, s.Current)
}

func TestEffectDisputeCountered(t *testing.T) {
	t.Parallel()

	// 质疑中任意花色的 7 都能反制，结论翻转、应答方互换；
	// 最终接受时效果落在应答方身上
	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank2), cc(card.Heart, card.Rank7), cc(card.Club, card.Rank9)},
		[]card.Card{cc(card.Spade, card.Rank7), cc(card.Club, card.Rank6)},
	)
	s = s.ApplyPlay(single(cc(card.Spade, card.Rank2)), true)
	s = s.ApplySevenCancel(1, cc(card.Spade, card.Rank7))

	require.True(t, s.CanSevenCancel(0, cc(card.Heart, card.Rank7)), "反制的 7 不限花色")
	s = s.ApplySevenCancel(0, cc(card.Heart, card.Rank7))
	require.True(t, s.IsInSevenDispute(), "反制后手里还有牌，质疑继续")
	assert.False(t, s.Interrupt.Dispute.Cancelled)
	assert.Equal(t, 1, s.Interrupt.Dispute.Responder)

	s = s.ApplySevenDisputeAccept()
	assert.Equal(t, 2, s.Effects.DrawCount, "效果原样落回应答方")
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, PhaseMustDraw, s.Phase)
}

func TestDisputeSevenMustMatchEffectiveSuitToOpen(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank2), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Heart, card.Rank7), cc(card.Club, card.Rank6)},
	)
	s = s.ApplyPlay(single(cc(card.Spade, card.Rank2)), true)

	assert.False(t, s.CanSevenCancel(1, cc(card.Heart, card.Rank7)), "开启质疑的 7 必须匹配生效花色")
	unchanged := s.ApplySevenCancel(1, cc(card.Heart, card.Rank7))
	assert.Equal(t, s.Interrupt, unchanged.Interrupt)
}

func TestDisputeWinsImmediately(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank2), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Spade, card.Rank7)},
	)
	s = s.ApplyPlay(single(cc(card.Spade, card.Rank2)), true)
	s = s.ApplySevenCancel(1, cc(card.Spade, card.Rank7))

	assert.Equal(t, 1, s.Winner, "质疑交锋中打空手牌立即获胜")
	assert.Equal(t, PhaseGameOver, s.Phase)
}

func TestClaimDisputeStripsDeclaration(t *testing.T) {
	t.Parallel()

	// 座位 0 报单牌后降到一张；下一回合座位 1 用生效花色的 7
	// 质疑，座位 0 无法反制只能接受：声明被撤销并背上漏报处罚
	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Spade, card.Rank7), cc(card.Club, card.Rank6)},
	)
	s = s.ApplyDeclare()
	s = s.ApplyPlay(single(cc(card.Spade, card.Rank8)), true)
	s = s.NextTurn()
	s = s.ConfirmHandoff()

	require.True(t, s.CanSevenCancel(1, cc(card.Spade, card.Rank7)))
	s = s.ApplySevenCancel(1, cc(card.Spade, card.Rank7))
	require.True(t, s.IsInSevenDispute())
	assert.Equal(t, DisputeClaim, s.Interrupt.Dispute.Kind)
	assert.Equal(t, 0, s.Interrupt.Dispute.Responder)

	s = s.ApplySevenDisputeAccept()
	assert.True(t, s.Seats[0].Penalty, "声明被推翻后补上漏报处罚")
	assert.Nil(t, s.Claim)
	assert.False(t, s.IsInSevenDispute())
}

func TestClaimDisputeUpheld(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8), cc(card.Diamond, card.Rank7), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Spade, card.Rank7), cc(card.Club, card.Rank6)},
	)
	s = s.ApplyDeclare()
	s = s.ApplyPlay(single(cc(card.Spade, card.Rank8)), true)
	s = s.NextTurn()
	s = s.ConfirmHandoff()

	s = s.ApplySevenCancel(1, cc(card.Spade, card.Rank7)) // 座位 1 质疑
	s = s.ApplySevenCancel(0, cc(card.Diamond, card.Rank7)) // 座位 0 反制
	require.False(t, s.Interrupt.Dispute.Cancelled)

	s = s.ApplySevenDisputeAccept() // 座位 1 接受
	assert.False(t, s.Seats[0].Penalty, "声明维持有效")
	assert.NotNil(t, s.Claim)
}
