package card

// LCG 线性同余随机源。同一种子产生完全相同的序列，
// 用于可复现的发牌和回放调试。
type LCG struct {
	state uint64
}

// NewLCG 用给定种子创建随机源
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Float64 返回 [0,1) 区间的下一个值并推进内部状态
func (l *LCG) Float64() float64 {
	l.state = LCGNext(l.state)
	return LCGFloat64(l.state)
}

// State 返回当前内部状态，可存入对局状态后用 NewLCG 恢复
func (l *LCG) State() uint64 {
	return l.state
}

// Knuth MMIX 的乘数和增量
const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1442695040888963407
)

// LCGNext 纯函数形式的单步推进，供把随机状态当作普通值保存的调用方使用
func LCGNext(state uint64) uint64 {
	return state*lcgMultiplier + lcgIncrement
}

// LCGFloat64 把一个 LCG 状态映射到 [0,1)
func LCGFloat64(state uint64) float64 {
	return float64(state>>11) / (1 << 53)
}
