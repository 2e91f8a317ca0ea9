package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimocha/crazy-sevens/internal/game/card"
)

func cc(s card.Suit, r card.Rank) card.Card {
	return card.Card{Suit: s, Rank: r}
}

func TestLegalPlaysSingles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		hand   []card.Card
		target Target
		want   []string // 期望出现的单张
		absent []string // 期望不出现的单张
	}{
		{
			name:   "Suit match",
			hand:   []card.Card{cc(card.Spade, card.Rank8), cc(card.Heart, card.Rank9)},
			target: Target{Rank: card.Rank6, Suit: card.Spade},
			want:   []string{cc(card.Spade, card.Rank8).String()},
			absent: []string{cc(card.Heart, card.Rank9).String()},
		},
		{
			name:   "Rank match",
			hand:   []card.Card{cc(card.Heart, card.Rank6), cc(card.Diamond, card.RankK)},
			target: Target{Rank: card.Rank6, Suit: card.Spade},
			want:   []string{cc(card.Heart, card.Rank6).String()},
			absent: []string{cc(card.Diamond, card.RankK).String()},
		},
		{
			name:   "Ace is not fully wild",
			hand:   []card.Card{cc(card.Heart, card.RankA)},
			target: Target{Rank: card.Rank6, Suit: card.Spade},
			want:   nil,
			absent: []string{cc(card.Heart, card.RankA).String()},
		},
		{
			name:   "Ace on ace regardless of suit",
			hand:   []card.Card{cc(card.Heart, card.RankA), cc(card.Diamond, card.Rank3)},
			target: Target{Rank: card.RankA, Suit: card.Spade},
			want:   []string{cc(card.Heart, card.RankA).String()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			plays := LegalPlays(tt.hand, tt.target)
			got := make(map[string]bool)
			for _, p := range plays {
				if len(p.Cards) == 1 {
					got[p.Cards[0].String()] = true
				}
			}
			for _, w := range tt.want {
				assert.True(t, got[w], "应包含单张 %s", w)
			}
			for _, a := range tt.absent {
				assert.False(t, got[a], "不应包含单张 %s", a)
			}
		})
	}
}

func TestLegalPlaysGoOutConstraint(t *testing.T) {
	t.Parallel()

	target := Target{Rank: card.Rank8, Suit: card.Club}

	// 手里只剩一对 8：单张可出（打空获胜），对子会清空手牌所以不可出
	hand := []card.Card{cc(card.Spade, card.Rank8), cc(card.Heart, card.Rank8)}
	plays := LegalPlays(hand, target)
	require.NotEmpty(t, plays)
	for _, p := range plays {
		assert.Len(t, p.Cards, 1, "多张连出不允许清空手牌: %v", p)
	}

	// 多一张垫牌后，对子就允许了
	hand = append(hand, cc(card.Diamond, card.Rank3))
	plays = LegalPlays(hand, target)
	var pairSeen bool
	for _, p := range plays {
		if len(p.Cards) == 2 {
			pairSeen = true
			assert.Equal(t, p.Cards[0].Rank, p.Cards[1].Rank)
		}
	}
	assert.True(t, pairSeen, "应枚举出同点对子")
}

func TestLegalPlaysAceExpansion(t *testing.T) {
	t.Parallel()

	hand := []card.Card{cc(card.Spade, card.RankA), cc(card.Club, card.Rank2)}
	target := Target{Rank: card.Rank9, Suit: card.Spade}

	plays := LegalPlays(hand, target)
	suits := make(map[card.Suit]bool)
	for _, p := range plays {
		if len(p.Cards) == 1 && p.Cards[0].Rank == card.RankA {
			suits[p.Suit] = true
		}
	}
	assert.Len(t, suits, 4, "以 A 结尾的出法应按 4 种花色各展开一个候选")
}

func TestLegalPlaysSameSuitRunLeadAce(t *testing.T) {
	t.Parallel()

	// 目标跟 ♥3：♠A 单出不合法（A 不是万能牌），
	// 但 ♠A 可以领头同花连出
	hand := []card.Card{
		cc(card.Spade, card.RankA),
		cc(card.Spade, card.Rank9),
		cc(card.Heart, card.RankK),
	}
	target := Target{Rank: card.Rank3, Suit: card.Heart}

	plays := LegalPlays(hand, target)
	var aceLead, aceSingle, nineLead bool
	for _, p := range plays {
		if len(p.Cards) == 1 && p.Cards[0].Rank == card.RankA {
			aceSingle = true
		}
		if len(p.Cards) == 2 && p.Cards[0] == cc(card.Spade, card.RankA) {
			aceLead = true
		}
		if len(p.Cards) == 2 && p.Cards[0] == cc(card.Spade, card.Rank9) {
			nineLead = true
		}
	}
	assert.False(t, aceSingle)
	assert.True(t, aceLead, "A 应可领头同花连出")
	assert.False(t, nineLead, "♠9 跟不上 ♥3，不能领头")
}

func TestLegalPlaysDeduplicated(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		cc(card.Spade, card.Rank6),
		cc(card.Heart, card.Rank6),
		cc(card.Spade, card.Rank9),
		cc(card.Club, card.Rank3),
	}
	plays := LegalPlays(hand, Target{Rank: card.Rank6, Suit: card.Diamond})

	seen := make(map[string]bool)
	for _, p := range plays {
		key := p.Key()
		assert.False(t, seen[key], "重复出法: %s", key)
		seen[key] = true
	}
}

func TestIsPlayLegal(t *testing.T) {
	t.Parallel()

	hand := []card.Card{cc(card.Spade, card.Rank8), cc(card.Heart, card.Rank9)}
	target := Target{Rank: card.Rank6, Suit: card.Spade}

	legal := Play{Cards: []card.Card{cc(card.Spade, card.Rank8)}, Suit: card.SuitNone}
	illegal := Play{Cards: []card.Card{cc(card.Heart, card.Rank9)}, Suit: card.SuitNone}
	notInHand := Play{Cards: []card.Card{cc(card.Spade, card.Rank6)}, Suit: card.SuitNone}

	assert.True(t, IsPlayLegal(hand, target, legal))
	assert.False(t, IsPlayLegal(hand, target, illegal))
	assert.False(t, IsPlayLegal(hand, target, notInHand))
}

func TestLegalDeflectionsRankExclusive(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		cc(card.Spade, card.Rank2),
		cc(card.Heart, card.Rank2),
		cc(card.Club, card.Rank5),
		cc(card.Diamond, card.Rank4),
	}

	// 2 的连锁只有 2 能转移，罚摸牌转移不了跳过，反之亦然
	got := LegalDeflections(hand, card.Rank2)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, card.Rank2, c.Rank)
	}

	got = LegalDeflections(hand, card.Rank4)
	require.Len(t, got, 1)
	assert.Equal(t, card.Rank4, got[0].Rank)
}

func TestRemoveCards(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		cc(card.Spade, card.Rank6),
		cc(card.Heart, card.Rank6),
		cc(card.Club, card.Rank3),
	}

	remaining := RemoveCards(hand, []card.Card{cc(card.Heart, card.Rank6)})
	require.Len(t, remaining, 2)
	assert.Len(t, hand, 3, "原切片不应被修改")

	assert.Nil(t, RemoveCards(hand, []card.Card{cc(card.Diamond, card.RankK)}))
}

func TestChainRankTakesLastEffectCard(t *testing.T) {
	t.Parallel()

	cards := []card.Card{
		cc(card.Spade, card.Rank2),
		cc(card.Spade, card.Rank5),
	}
	assert.Equal(t, card.Rank5, ChainRank(cards))
	assert.Equal(t, card.Rank(0), ChainRank([]card.Card{cc(card.Spade, card.Rank9)}))
}
