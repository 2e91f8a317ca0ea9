package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimocha/crazy-sevens/internal/game/card"
	"github.com/zimocha/crazy-sevens/internal/game/rule"
)

// aceTo 打出一张 A 并声明目标花色
func aceTo(c card.Card, s card.Suit) rule.Play {
	return rule.Play{Cards: []card.Card{c}, Suit: s}
}

func TestJackWindowDefaultFlip(t *testing.T) {
	t.Parallel()

	// J 窗口无人处理：推进回合时反转默认生效，按新方向步进
	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.RankJ), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Club, card.Rank3)},
		[]card.Card{cc(card.Club, card.Rank9)},
	)
	s = s.ApplyPlay(single(cc(card.Spade, card.RankJ)), true)
	require.True(t, s.IsInJackResponse())
	assert.True(t, s.Interrupt.Window.Flip)
	assert.Equal(t, 1, s.Responder())

	s = s.NextTurn()
	assert.Equal(t, Reverse, s.Dir)
	assert.Equal(t, 2, s.Current)
}

func TestJackWindowCancel(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.RankJ), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Heart, card.RankJ), cc(card.Club, card.Rank3)},
		[]card.Card{cc(card.Club, card.Rank9)},
	)
	s = s.ApplyPlay(single(cc(card.Spade, card.RankJ)), true)
	require.True(t, s.CanCancelWindow(1, cc(card.Heart, card.RankJ)))

	s = s.ApplyWindowCancel(1, cc(card.Heart, card.RankJ))
	assert.False(t, s.IsInJackResponse())

	s = s.NextTurn()
	assert.Equal(t, Forward, s.Dir, "被取消的反转作废")
	assert.Equal(t, 1, s.Current)
}

func TestJackWindowAccept(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.RankJ), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Club, card.Rank3)},
		[]card.Card{cc(card.Club, card.Rank9)},
	)
	s = s.ApplyPlay(single(cc(card.Spade, card.RankJ)), true)
	s = s.ApplyWindowAccept()
	require.Equal(t, Reverse, s.Dir)

	s = s.NextTurn()
	assert.Equal(t, Reverse, s.Dir, "确认后的反转不会在推进时重复生效")
	assert.Equal(t, 2, s.Current)
}

func TestJackPairCancelsOut(t *testing.T) {
	t.Parallel()

	// 一手两张 J 反转两次，净效果为不变
	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.RankJ), cc(card.Heart, card.RankJ), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	p := s.LegalPlays(0)
	pair := -1
	for i := range p {
		if len(p[i].Cards) == 2 {
			pair = i
			break
		}
	}
	require.NotEqual(t, -1, pair, "双 J 连打应在候选中")

	s = s.ApplyPlay(p[pair], true)
	require.True(t, s.IsInJackResponse())
	assert.False(t, s.Interrupt.Window.Flip)

	s = s.NextTurn()
	assert.Equal(t, Forward, s.Dir)
}

func TestAceWindowCancel(t *testing.T) {
	t.Parallel()

	// A 变色被指定花色的 7 取消后恢复堆顶自身花色
	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.RankA), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Diamond, card.Rank7), cc(card.Club, card.Rank3)},
	)
	s = s.ApplyPlay(aceTo(cc(card.Spade, card.RankA), card.Diamond), true)
	require.True(t, s.IsInAceResponse())
	require.Equal(t, card.Diamond, s.EffectiveSuit())

	require.False(t, s.CanCancelWindow(1, cc(card.Club, card.Rank3)))
	require.True(t, s.CanCancelWindow(1, cc(card.Diamond, card.Rank7)))

	s = s.ApplyWindowCancel(1, cc(card.Diamond, card.Rank7))
	assert.False(t, s.IsInAceResponse())
	assert.Equal(t, card.SuitNone, s.SuitOverride)
	// 取消的 7 垫在 A 之下，堆顶和目标花色不变
	assert.Equal(t, cc(card.Spade, card.RankA), s.TopCard())
	assert.Equal(t, card.Spade, s.EffectiveSuit())
	assert.Contains(t, s.Discard, cc(card.Diamond, card.Rank7))
}

func TestAceWindowAccept(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.RankA), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	s = s.ApplyPlay(aceTo(cc(card.Spade, card.RankA), card.Diamond), true)
	s = s.ApplyWindowAccept()

	assert.False(t, s.IsInAceResponse())
	assert.Equal(t, card.Diamond, s.EffectiveSuit())
}
