package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimocha/crazy-sevens/internal/game/card"
)

func cc(s card.Suit, r card.Rank) card.Card {
	return card.Card{Suit: s, Rank: r}
}

// fixture 构造一个两座或多座的测试局面，座位 0 处于可行动阶段
func fixture(t *testing.T, top card.Card, hands ...[]card.Card) State {
	t.Helper()
	s := State{
		Current:      0,
		Dir:          Forward,
		SuitOverride: card.SuitNone,
		Phase:        PhasePlaying,
		Winner:       NoWinner,
		Turn:         1,
		Rng:          7,
		Discard:      []card.Card{top},
		DrawPile: []card.Card{
			cc(card.Diamond, card.Rank9),
			cc(card.Diamond, card.Rank10),
			cc(card.Club, card.Rank9),
			cc(card.Club, card.Rank10),
			cc(card.Heart, card.Rank3),
			cc(card.Heart, card.Rank10),
		},
	}
	for i, h := range hands {
		hand := make([]card.Card, len(h))
		copy(hand, h)
		s.Seats = append(s.Seats, Seat{ID: i, Kind: SeatHuman, Hand: hand})
	}
	return s
}

// totalCards 两堆加所有手牌的总张数
func totalCards(s State) int {
	n := len(s.DrawPile) + len(s.Discard)
	for _, seat := range s.Seats {
		n += len(seat.Hand)
	}
	return n
}

func TestNewGame(t *testing.T) {
	t.Parallel()

	s, err := New(2, []SeatKind{SeatHuman, SeatBot}, 1)
	require.NoError(t, err)

	assert.Len(t, s.Seats, 2)
	for _, seat := range s.Seats {
		assert.Len(t, seat.Hand, InitialHandSize)
	}
	assert.Len(t, s.Discard, 1)
	assert.Len(t, s.DrawPile, 37)
	assert.Equal(t, Effects{}, s.Effects, "翻开的牌不触发任何效果")
	assert.Equal(t, PhaseWaiting, s.Phase)
	assert.Equal(t, NoWinner, s.Winner)
	assert.Equal(t, card.SuitNone, s.SuitOverride)
}

func TestNewGameConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		seats int
		kinds []SeatKind
	}{
		{"Too few seats", 1, []SeatKind{SeatHuman}},
		{"Too many seats", 5, []SeatKind{SeatHuman, SeatHuman, SeatHuman, SeatHuman, SeatHuman}},
		{"Kind list mismatch", 3, []SeatKind{SeatHuman, SeatBot}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.seats, tt.kinds, 1)
			assert.Error(t, err)
		})
	}
}

func TestNewGameDeterministic(t *testing.T) {
	t.Parallel()

	a, err := New(4, []SeatKind{SeatHuman, SeatBot, SeatBot, SeatBot}, 20260831)
	require.NoError(t, err)
	b, err := New(4, []SeatKind{SeatHuman, SeatBot, SeatBot, SeatBot}, 20260831)
	require.NoError(t, err)

	for i := range a.Seats {
		assert.Equal(t, a.Seats[i].Hand, b.Seats[i].Hand, "同一种子发牌应逐字节一致")
	}
	assert.Equal(t, a.TopCard(), b.TopCard())

	c, err := New(4, []SeatKind{SeatHuman, SeatBot, SeatBot, SeatBot}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.Seats[0].Hand, c.Seats[0].Hand, "不同种子应得到不同的牌")
}

// TestConservation 用默认动作驱动整局：任何可达状态下
// 两堆加手牌恒等于整副 52 张
func TestConservation(t *testing.T) {
	t.Parallel()

	s, err := New(3, []SeatKind{SeatHuman, SeatBot, SeatBot}, 99)
	require.NoError(t, err)

	for i := 0; i < 500 && s.Winner == NoWinner; i++ {
		require.Equal(t, card.DeckSize, totalCards(s), "第 %d 步守恒被破坏", i)

		switch {
		case s.IsInResponsePhase():
			s = s.ApplyResolve()
		case s.IsInSevenDispute():
			s = s.ApplySevenDisputeAccept()
		case s.IsInJackResponse() || s.IsInAceResponse():
			s = s.ApplyWindowAccept()
		case s.Phase == PhaseWaiting:
			s = s.ConfirmHandoff()
		case s.Phase == PhaseMustDraw:
			s = s.ApplyForcedDraw()
		case s.Phase == PhasePlaying:
			if plays := s.LegalPlays(s.Current); len(plays) > 0 {
				s = s.ApplyPlay(plays[0], true)
			} else {
				s = s.ApplyDraw(1)
			}
		case s.Phase == PhaseCanEnd:
			s = s.NextTurn()
		}
	}
	assert.Equal(t, card.DeckSize, totalCards(s))
}

func TestImmutability(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8), cc(card.Heart, card.Rank9)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	before := len(s.Seats[0].Hand)
	topBefore := s.TopCard()

	_ = s.ApplyPlay(s.LegalPlays(0)[0], true)

	assert.Len(t, s.Seats[0].Hand, before, "转移函数不得修改传入的状态")
	assert.Equal(t, topBefore, s.TopCard())
}

func TestWinnerIsTerminal(t *testing.T) {
	t.Parallel()

	s := fixture(t, cc(card.Spade, card.Rank6),
		[]card.Card{cc(card.Spade, card.Rank8)},
		[]card.Card{cc(card.Club, card.Rank3)},
	)
	s = s.ApplyPlay(s.LegalPlays(0)[0], true)
	require.Equal(t, 0, s.Winner)
	require.Equal(t, PhaseGameOver, s.Phase)

	// 胜负已分后任何转移都不再改动手牌和牌堆
	after := s.NextTurn().ApplyDraw(3).ConfirmHandoff()
	assert.Equal(t, s.Seats, after.Seats)
	assert.Equal(t, s.DrawPile, after.DrawPile)
	assert.Equal(t, s.Discard, after.Discard)
}
