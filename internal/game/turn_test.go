package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimocha/crazy-sevens/internal/game/card"
	"github.com/zimocha/crazy-sevens/internal/game/rule"
)

func single(c card.Card) rule.Play {
	return rule.Play{Cards: []card.Card{c}, Suit: card.SuitNone}
}

func TestPlaySuitMatch(t *testing.T) {
	t.Parallel()

	// 堆顶 ♠6，出 ♠8（花色相同）：新堆顶 ♠8，生效花色 ♠
	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	p := single(cc(card.Spade, card.Rank8))
	require.True(t, s.IsPlayLegal(0, p))

	s = s.ApplyPlay(p, true)
	assert.Equal(t, cc(card.Spade, card.Rank8), s.TopCard())
	assert.Equal(t, card.Spade, s.EffectiveSuit())
	assert.Equal(t, PhaseCanEnd, s.Phase)
	assert.Equal(t, InterruptNone, s.Interrupt.Kind)
}

func TestConfirmHandoff(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	s.Phase = PhaseWaiting
	assert.Equal(t, PhasePlaying, s.ConfirmHandoff().Phase)

	owed := s
	owed.Effects.DrawCount = 2
	assert.Equal(t, PhaseMustDraw, owed.ConfirmHandoff().Phase)

	punished := s.clone()
	punished.Seats[0].Penalty = true
	assert.Equal(t, PhaseMustDraw, punished.ConfirmHandoff().Phase)
}

func TestAceOverrideSetAndCleared(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.RankA), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Diamond, card.Rank9), cc(card.Club, card.Rank3)},
	)
	p := rule.Play{Cards: []card.Card{cc(card.Spade, card.RankA)}, Suit: card.Diamond}
	require.True(t, s.IsPlayLegal(0, p))

	s = s.ApplyPlay(p, true)
	assert.Equal(t, card.Diamond, s.EffectiveSuit(), "A 指定的花色应生效")
	require.True(t, s.IsInAceResponse())

	// 窗口默认结算后轮到下家，出任意非 A 牌清除变色
	s = s.NextTurn().ConfirmHandoff()
	require.Equal(t, 1, s.Current)
	s = s.ApplyPlay(single(cc(card.Diamond, card.Rank9)), true)
	assert.Equal(t, card.SuitNone, s.SuitOverride)
	assert.Equal(t, card.Diamond, s.EffectiveSuit())
}

func TestMissedDeclarationPenalty(t *testing.T) {
	t.Parallel()

	// 没报单牌、最后一手也不是特殊牌：离场时打上处罚标记，
	// 下次接手必摸且没有任何合法出法
	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Club, card.Rank3), cc(card.Club, card.Rank6)},
	)
	s = s.ApplyPlay(single(cc(card.Spade, card.Rank8)), true)
	s = s.NextTurn()
	require.True(t, s.Seats[0].Penalty)

	// 座位 1 正常走完一个回合
	s = s.ConfirmHandoff()
	s = s.ApplyDraw(1)
	s = s.NextTurn()
	require.Equal(t, 0, s.Current)

	s = s.ConfirmHandoff()
	assert.Equal(t, PhaseMustDraw, s.Phase)
	assert.Empty(t, s.LegalPlays(0))

	before := len(s.Seats[0].Hand)
	s = s.ApplyForcedDraw()
	assert.Len(t, s.Seats[0].Hand, before+1, "处罚固定只摸 1 张")
	assert.False(t, s.Seats[0].Penalty)
}

func TestDeclareProtectsFromPenalty(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	require.True(t, s.CanDeclare(0))
	s = s.ApplyDeclare()
	require.NotNil(t, s.Claim)
	assert.Equal(t, 0, s.Claim.Claimant)

	s = s.ApplyPlay(single(cc(card.Spade, card.Rank8)), true)
	s = s.NextTurn()
	assert.False(t, s.Seats[0].Penalty, "已报单牌不触发处罚")
	assert.False(t, s.Seats[0].Declared, "报单牌标记在回合结束时复位")
}

func TestSpecialFinalPlaySuppressesPenalty(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank2), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	s = s.ApplyPlay(single(cc(card.Spade, card.Rank2)), true)
	require.True(t, s.IsInResponsePhase())

	s = s.NextTurn()
	assert.False(t, s.Seats[0].Penalty, "最后一手是特殊牌，豁免漏报处罚")
}

func TestClaimExpiry(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Spade, card.Rank7), cc(card.Club, card.Rank6)},
		[]card.Card{cc(card.Spade, card.Rank3), cc(card.Club, card.Rank9)},
	)
	s = s.ApplyDeclare()
	claimTurn := s.Turn
	s = s.ApplyPlay(single(cc(card.Spade, card.Rank8)), true)
	s = s.NextTurn()

	// 紧随其后的回合：座位 1 可质疑
	require.NotNil(t, s.Claim)
	require.Equal(t, claimTurn+1, s.Turn)
	s = s.ConfirmHandoff()
	assert.True(t, s.CanChallengeClaim(1))
	assert.False(t, s.CanChallengeClaim(2))

	// 再过一个回合声明自动过期
	s = s.ApplyDraw(1)
	s = s.NextTurn()
	assert.Nil(t, s.Claim)
	s = s.ConfirmHandoff()
	assert.False(t, s.CanChallengeClaim(2))
}

func TestForcedDrawPenaltyPriority(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	s.Phase = PhaseMustDraw
	s.Effects.DrawCount = 4
	s.Seats[0].Penalty = true

	// 处罚优先：先只摸 1 张，累计罚摸保持
	s = s.ApplyForcedDraw()
	assert.Len(t, s.Seats[0].Hand, 2)
	assert.False(t, s.Seats[0].Penalty)
	assert.Equal(t, 4, s.Effects.DrawCount)
	require.Equal(t, PhaseMustDraw, s.Phase)

	s = s.ApplyForcedDraw()
	assert.Len(t, s.Seats[0].Hand, 6)
	assert.Equal(t, 0, s.Effects.DrawCount)
	assert.Equal(t, PhaseCanEnd, s.Phase)
}

func TestDrawRecyclesDiscard(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	s.DrawPile = nil
	s.Discard = []card.Card{
		cc(card.Heart, card.Rank4),
		cc(card.Heart, card.Rank5),
		cc(card.Heart, card.Rank6),
		cc(card.Heart, card.Rank7),
		cc(card.Spade, card.Rank6), // 堆顶
	}

	total := totalCards(s)
	s = s.ApplyDraw(3)

	assert.Len(t, s.Seats[0].Hand, 4)
	assert.Equal(t, cc(card.Spade, card.Rank6), s.TopCard(), "回收洗牌不得动堆顶")
	assert.Len(t, s.Discard, 1)
	assert.Equal(t, total, totalCards(s))
}

func TestDrawExhaustedTruncatesSilently(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	s.DrawPile = nil

	s = s.ApplyDraw(5)
	assert.Len(t, s.Seats[0].Hand, 1, "两堆俱尽时静默少摸")
	assert.Equal(t, PhaseCanEnd, s.Phase)
}

func TestDeactivatedPlayHasNoEffect(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank2), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	s = s.ApplyPlay(single(cc(card.Spade, card.Rank2)), false)

	assert.Equal(t, 0, s.Effects.DrawCount)
	assert.Equal(t, InterruptNone, s.Interrupt.Kind)
	assert.False(t, s.LastSpecial)
	assert.Equal(t, PhaseCanEnd, s.Phase)
}

func TestNextTurnConsumesSkip(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8)},
		[]card.Card{cc(card.Club, card.Rank3)},
		[]card.Card{cc(card.Club, card.Rank9)},
	)
	s.Phase = PhaseCanEnd
	s.Effects.SkipPending = true

	s = s.NextTurn()
	assert.Equal(t, 2, s.Current, "待跳过额外步进一个座位")
	assert.False(t, s.Effects.SkipPending)
}

func TestNextTurnRespectsDirection(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8)},
		[]card.Card{cc(card.Club, card.Rank3)},
		[]card.Card{cc(card.Club, card.Rank9)},
	)
	s.Phase = PhaseCanEnd
	s.Dir = Reverse

	s = s.NextTurn()
	assert.Equal(t, 2, s.Current)
}
