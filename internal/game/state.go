package game

import (
	"github.com/zimocha/crazy-sevens/internal/game/card"
)

// SeatKind 座位类型
type SeatKind int

const (
	SeatHuman SeatKind = iota // 真人
	SeatBot                   // 自动托管
)

// Phase 回合阶段
type Phase int

const (
	PhaseWaiting  Phase = iota // 等待确认接手（手牌遮盖）
	PhasePlaying               // 当前座位可行动
	PhaseMustDraw              // 必须摸牌
	PhaseCanEnd                // 本回合行动已完成，可结束
	PhaseGameOver              // 对局结束
)

// Direction 出牌方向
type Direction int

const (
	Forward Direction = iota // 顺时针
	Reverse                  // 逆时针
)

// Seat 座位状态
type Seat struct {
	ID       int
	Kind     SeatKind
	Hand     []card.Card
	Declared bool // 本轮是否已报单牌
	Penalty  bool // 漏报单牌的处罚标记，下次接手时强制摸 1 张
}

// Effects 待结算效果：累计罚摸数和待跳过标记
type Effects struct {
	DrawCount   int
	SkipPending bool
}

// IsZero 是否没有任何待结算效果
func (e Effects) IsZero() bool {
	return e.DrawCount == 0 && !e.SkipPending
}

// InterruptKind 中断子协议类型。四种子协议互斥，
// 用一个带标记的联合体保证结构上最多只有一个开启
type InterruptKind int

const (
	InterruptNone    InterruptKind = iota
	InterruptChain                 // 响应连锁（转移/承受）
	InterruptDispute               // 七牌质疑
	InterruptJack                  // J 反向窗口
	InterruptAce                   // A 变色窗口
)

// ChainState 响应连锁子状态
type ChainState struct {
	Rank      card.Rank // 连锁点数，只有同点牌能转移
	Responder int       // 当前应答座位
	Source    int       // 当前负担的来源座位（最后出牌或转移者）
}

// DisputeKind 质疑对象类型
type DisputeKind int

const (
	DisputeEffect DisputeKind = iota // 质疑待结算效果
	DisputeClaim                     // 质疑报单牌声明
)

// DisputeState 七牌质疑子状态
type DisputeState struct {
	Kind      DisputeKind
	Cancelled bool    // 当前质疑结论：true 表示效果/声明被推翻
	Responder int     // 当前应答座位
	Other     int     // 对抗的另一方，每次反制后与 Responder 互换
	Snapshot  Effects // 效果质疑开启时保存的待结算效果
	Claimant  int     // 声明质疑时的报牌者，效果质疑时为 -1
}

// WindowState J/A 响应窗口子状态
type WindowState struct {
	Responder int
	Suit      card.Suit // A 窗口指定的花色，J 窗口为 SuitNone
	Flip      bool      // J 窗口待生效的方向反转（按 J 的张数取奇偶）
}

// Interrupt 中断联合体，Kind 决定哪个子状态有效
type Interrupt struct {
	Kind    InterruptKind
	Chain   ChainState
	Dispute DisputeState
	Window  WindowState
}

// Claim 报单牌声明，仅在紧随其后的一个回合内可被质疑
type Claim struct {
	Claimant int
	Turn     int // 声明产生时的回合号
}

// NoWinner 尚无胜者
const NoWinner = -1

// State 一局游戏的完整状态。所有转移函数接收一个 State、
// 返回一个新 State，绝不修改传入值
type State struct {
	Seats        []Seat
	Current      int       // 当前座位下标
	Dir          Direction // 出牌方向
	DrawPile     []card.Card
	Discard      []card.Card // 末位为堆顶，发牌后永不为空
	SuitOverride card.Suit   // A 指定的花色，SuitNone 表示未变色
	Effects      Effects
	Phase        Phase
	Winner       int  // 胜者座位，NoWinner 表示未分胜负
	LastSpecial  bool // 当前行动者最后一手是否特殊牌（豁免漏报处罚）
	Interrupt    Interrupt
	Claim        *Claim
	Turn         int    // 单调递增的回合号
	Rng          uint64 // 弃牌堆回收洗牌用的 LCG 状态，普通值便于快照
}

// clone 深拷贝：座位手牌和两个牌堆都复制，保证值语义
func (s State) clone() State {
	next := s
	next.Seats = make([]Seat, len(s.Seats))
	for i, seat := range s.Seats {
		next.Seats[i] = seat
		next.Seats[i].Hand = make([]card.Card, len(seat.Hand))
		copy(next.Seats[i].Hand, seat.Hand)
	}
	next.DrawPile = make([]card.Card, len(s.DrawPile))
	copy(next.DrawPile, s.DrawPile)
	next.Discard = make([]card.Card, len(s.Discard))
	copy(next.Discard, s.Discard)
	if s.Claim != nil {
		claim := *s.Claim
		next.Claim = &claim
	}
	return next
}

// seatAfter 按当前方向返回 idx 的下一个座位
func (s State) seatAfter(idx int) int {
	n := len(s.Seats)
	if s.Dir == Forward {
		return (idx + 1) % n
	}
	return (idx - 1 + n) % n
}
