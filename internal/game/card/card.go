package card

import "strconv"

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Club                // 梅花
	Diamond             // 方块
)

// SuitNone 表示没有花色（用于未指定的变色）
const SuitNone Suit = -1

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// Suits 所有花色，按固定顺序排列（变色候选按此顺序生成）
var Suits = [4]Suit{Spade, Heart, Club, Diamond}

const (
	RankA  Rank = iota + 1 // A，变色牌
	Rank2                  // 2，迫使下家摸 2 张
	Rank3
	Rank4 // 4，跳过下家
	Rank5 // 5，迫使下家摸 5 张
	Rank6
	Rank7 // 7，质疑牌
	Rank8
	Rank9
	Rank10
	RankJ // J，反转方向
	RankQ
	RankK
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	RankA:  "A",
	Rank2:  "2",
	Rank3:  "3",
	Rank4:  "4",
	Rank5:  "5",
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Card 定义一张牌，按（点数，花色）相等比较
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// Deck 定义一副牌
type Deck []Card

// DeckSize 一副标准牌的张数
const DeckSize = 52

// NewDeck 创建一副 52 张的标准牌
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, s := range Suits {
		for r := RankA; r <= RankK; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Source 洗牌随机源，每次调用产生 [0,1) 区间的值
type Source interface {
	Float64() float64
}

// Shuffle 用 Fisher-Yates 原地洗牌，随机性完全来自注入的随机源
func (d Deck) Shuffle(src Source) {
	for i := len(d) - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		d[i], d[j] = d[j], d[i]
	}
}
