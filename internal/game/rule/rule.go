package rule

import (
	"strings"

	"github.com/zimocha/crazy-sevens/internal/game/card"
)

// MaxRunLength 连出的最大张数
const MaxRunLength = 4

// Target 当前需要跟的目标：弃牌堆顶的点数和生效花色
// （A 变色时生效花色为指定花色，否则为堆顶自身花色）
type Target struct {
	Rank card.Rank
	Suit card.Suit
}

// Play 一手牌：按出牌顺序排列的牌，末张为 A 时附带指定的花色
type Play struct {
	Cards []card.Card
	Suit  card.Suit // 非 A 结尾时为 card.SuitNone
}

// Key 返回用于去重和比较的唯一键
func (p Play) Key() string {
	var b strings.Builder
	for _, c := range p.Cards {
		b.WriteString(c.String())
	}
	b.WriteByte('|')
	b.WriteString(p.Suit.String())
	return b.String()
}

func (p Play) String() string {
	var b strings.Builder
	for i, c := range p.Cards {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	if p.Suit != card.SuitNone {
		b.WriteString(" → ")
		b.WriteString(p.Suit.String())
	}
	return b.String()
}

// Matches 判断一张牌是否跟得上目标（花色或点数相同）
func Matches(c card.Card, t Target) bool {
	return c.Suit == t.Suit || c.Rank == t.Rank
}

// LegalPlays 枚举一手牌对给定目标的所有合法出法。
// 包括单张、同点连出（2..4 张）、同花连出（2..4 张），
// 以 A 结尾的出法按 4 种指定花色各展开一个候选。
// 多张连出不允许打空手牌（最后一张必须单出），单张无此限制。
func LegalPlays(hand []card.Card, target Target) []Play {
	var plays []Play

	// 单张：跟得上目标即可，打空手牌（胜利）也允许
	for _, c := range hand {
		if Matches(c, target) {
			plays = append(plays, expandAce([]card.Card{c})...)
		}
	}

	// 同点连出
	byRank := make(map[card.Rank][]card.Card)
	for _, c := range hand {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	for _, group := range byRank {
		plays = append(plays, runPlays(group, len(hand), func(first card.Card) bool {
			return Matches(first, target)
		})...)
	}

	// 同花连出：首张跟得上目标，或首张是 A
	bySuit := make(map[card.Suit][]card.Card)
	for _, c := range hand {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}
	for _, group := range bySuit {
		plays = append(plays, runPlays(group, len(hand), func(first card.Card) bool {
			return Matches(first, target) || first.Rank == card.RankA
		})...)
	}

	return dedupe(plays)
}

// IsPlayLegal 唯一的合法性闸门：任何驱动方在应用出牌前都必须先通过这里
func IsPlayLegal(hand []card.Card, target Target, p Play) bool {
	key := p.Key()
	for _, legal := range LegalPlays(hand, target) {
		if legal.Key() == key {
			return true
		}
	}
	return false
}

// LegalDeflections 返回手中能转移连锁的牌：点数必须与连锁点数完全一致
//（待跳过不能用罚摸牌转移，反之亦然）
func LegalDeflections(hand []card.Card, chainRank card.Rank) []card.Card {
	var out []card.Card
	for _, c := range hand {
		if c.Rank == chainRank {
			out = append(out, c)
		}
	}
	return out
}

// runPlays 枚举一个分组内所有 2..4 张的有序连出。
// handSize 用于执行"最后一张必须单出"的约束。
func runPlays(group []card.Card, handSize int, firstOK func(card.Card) bool) []Play {
	var plays []Play
	maxLen := min(len(group), MaxRunLength)
	for size := 2; size <= maxLen; size++ {
		if size >= handSize {
			break // 多张连出不允许清空手牌
		}
		for _, seq := range permutations(group, size) {
			if !firstOK(seq[0]) {
				continue
			}
			plays = append(plays, expandAce(seq)...)
		}
	}
	return plays
}

// expandAce 以 A 结尾的序列展开为 4 个指定花色的候选，否则原样返回
func expandAce(seq []card.Card) []Play {
	cards := make([]card.Card, len(seq))
	copy(cards, seq)
	if cards[len(cards)-1].Rank != card.RankA {
		return []Play{{Cards: cards, Suit: card.SuitNone}}
	}
	plays := make([]Play, 0, len(card.Suits))
	for _, s := range card.Suits {
		plays = append(plays, Play{Cards: cards, Suit: s})
	}
	return plays
}

// permutations 返回从 group 中取 size 张的所有有序排列
func permutations(group []card.Card, size int) [][]card.Card {
	var result [][]card.Card
	used := make([]bool, len(group))
	seq := make([]card.Card, 0, size)

	var walk func()
	walk = func() {
		if len(seq) == size {
			out := make([]card.Card, size)
			copy(out, seq)
			result = append(result, out)
			return
		}
		for i, c := range group {
			if used[i] {
				continue
			}
			used[i] = true
			seq = append(seq, c)
			walk()
			seq = seq[:len(seq)-1]
			used[i] = false
		}
	}
	walk()
	return result
}

// dedupe 按（牌序列，指定花色）去重，保持首次出现的顺序
func dedupe(plays []Play) []Play {
	seen := make(map[string]struct{}, len(plays))
	out := plays[:0]
	for _, p := range plays {
		key := p.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
