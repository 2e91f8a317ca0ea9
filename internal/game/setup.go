package game

import (
	"fmt"

	"github.com/zimocha/crazy-sevens/internal/game/card"
)

const (
	// MinSeats 最少座位数
	MinSeats = 2
	// MaxSeats 最多座位数
	MaxSeats = 4
	// InitialHandSize 每个座位的起始手牌数
	InitialHandSize = 7
)

// New 创建一局新游戏：洗牌、每座发 7 张、翻开一张作为弃牌堆顶。
// 翻开的牌不触发任何效果。座位数必须在 2–4 之间，
// kinds 的长度必须与座位数一致，否则返回错误（唯一的显式失败点）。
func New(seats int, kinds []SeatKind, seed uint64) (State, error) {
	if seats < MinSeats || seats > MaxSeats {
		return State{}, fmt.Errorf("座位数 %d 超出范围 [%d, %d]", seats, MinSeats, MaxSeats)
	}
	if len(kinds) != seats {
		return State{}, fmt.Errorf("座位类型列表长度 %d 与座位数 %d 不一致", len(kinds), seats)
	}

	deck := card.NewDeck()
	rng := card.NewLCG(seed)
	deck.Shuffle(rng)

	s := State{
		Seats:        make([]Seat, seats),
		Current:      0,
		Dir:          Forward,
		SuitOverride: card.SuitNone,
		Phase:        PhaseWaiting,
		Winner:       NoWinner,
		Turn:         1,
		Rng:          rng.State(),
	}

	for i := range s.Seats {
		s.Seats[i] = Seat{
			ID:   i,
			Kind: kinds[i],
			Hand: make([]card.Card, 0, InitialHandSize),
		}
	}

	// 轮流发牌
	for range InitialHandSize {
		for i := range s.Seats {
			s.Seats[i].Hand = append(s.Seats[i].Hand, deck[0])
			deck = deck[1:]
		}
	}

	// 翻开一张作为目标，其效果不激活
	s.Discard = []card.Card{deck[0]}
	deck = deck[1:]

	s.DrawPile = make([]card.Card, len(deck))
	copy(s.DrawPile, deck)

	return s, nil
}
