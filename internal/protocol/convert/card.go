package convert

import (
	"fmt"

	"github.com/zimocha/crazy-sevens/internal/game/card"
	"github.com/zimocha/crazy-sevens/internal/game/rule"
	"github.com/zimocha/crazy-sevens/internal/protocol"
)

// CardToInfo 引擎牌转线上表示
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{Suit: int(c.Suit), Rank: int(c.Rank)}
}

// CardsToInfos 批量转换
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard 线上表示转引擎牌，越界时返回错误
func InfoToCard(info protocol.CardInfo) (card.Card, error) {
	if info.Suit < int(card.Spade) || info.Suit > int(card.Diamond) {
		return card.Card{}, fmt.Errorf("无效的花色: %d", info.Suit)
	}
	if info.Rank < int(card.RankA) || info.Rank > int(card.RankK) {
		return card.Card{}, fmt.Errorf("无效的点数: %d", info.Rank)
	}
	return card.Card{Suit: card.Suit(info.Suit), Rank: card.Rank(info.Rank)}, nil
}

// InfosToCards 批量转换，任一张无效则整批拒绝
func InfosToCards(infos []protocol.CardInfo) ([]card.Card, error) {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		c, err := InfoToCard(info)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}

// SuitFromWire 线上花色值转引擎花色。窗口和变色用 -1 表示无花色
func SuitFromWire(s int) card.Suit {
	if s < int(card.Spade) || s > int(card.Diamond) {
		return card.SuitNone
	}
	return card.Suit(s)
}

// PlayFromPayload 出牌请求转引擎出牌
func PlayFromPayload(p *protocol.PlayCardsPayload) (rule.Play, error) {
	cards, err := InfosToCards(p.Cards)
	if err != nil {
		return rule.Play{}, err
	}
	// 非 A 结尾的出牌没有声明花色，零值是黑桃而不是无花色
	play := rule.Play{Cards: cards, Suit: card.SuitNone}
	if len(cards) > 0 && cards[len(cards)-1].Rank == card.RankA {
		play.Suit = SuitFromWire(p.Suit)
	}
	return play, nil
}
