package rule

import "github.com/zimocha/crazy-sevens/internal/game/card"

// DrawValue 一张牌的罚摸数值：2 罚摸 2 张，5 罚摸 5 张，其余为 0
func DrawValue(r card.Rank) int {
	switch r {
	case card.Rank2:
		return 2
	case card.Rank5:
		return 5
	default:
		return 0
	}
}

// IsSkip 是否为跳过牌（4）
func IsSkip(r card.Rank) bool {
	return r == card.Rank4
}

// IsEffect 是否为功能牌（罚摸或跳过，出牌后开启响应连锁）
func IsEffect(r card.Rank) bool {
	return DrawValue(r) > 0 || IsSkip(r)
}

// IsSpecial 是否为特殊牌。出过特殊牌的回合不触发漏报单牌的处罚
func IsSpecial(r card.Rank) bool {
	return IsEffect(r) || r == card.RankJ || r == card.RankA
}

// HasEffect 一手牌中是否含有功能牌
func HasEffect(cards []card.Card) bool {
	for _, c := range cards {
		if IsEffect(c.Rank) {
			return true
		}
	}
	return false
}

// HasSpecial 一手牌中是否含有特殊牌
func HasSpecial(cards []card.Card) bool {
	for _, c := range cards {
		if IsSpecial(c.Rank) {
			return true
		}
	}
	return false
}

// ChainRank 返回一手牌开启连锁的点数：取最后一张功能牌的点数。
// 同花连出可能同时含 2 和 5，以后出的那张为准；无功能牌时返回 0
func ChainRank(cards []card.Card) card.Rank {
	var rank card.Rank
	for _, c := range cards {
		if IsEffect(c.Rank) {
			rank = c.Rank
		}
	}
	return rank
}

// RemoveCards 从手牌中按顺序移除指定的牌，返回新切片，原切片不变。
// 任何一张不在手中则返回 nil
func RemoveCards(hand []card.Card, cards []card.Card) []card.Card {
	remaining := make([]card.Card, len(hand))
	copy(remaining, hand)
	for _, c := range cards {
		found := -1
		for i, h := range remaining {
			if h == c {
				found = i
				break
			}
		}
		if found == -1 {
			return nil
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
	return remaining
}
