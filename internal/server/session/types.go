package session

import (
	"sync"
	"time"

	"github.com/zimocha/crazy-sevens/internal/config"
	"github.com/zimocha/crazy-sevens/internal/game"
	"github.com/zimocha/crazy-sevens/internal/server/room"
	"github.com/zimocha/crazy-sevens/internal/server/storage"
)

// 托管座位行动前的短暂延迟，避免消息风暴
const botActionDelay = 500 * time.Millisecond

// SeatBinding 座位与玩家的绑定
type SeatBinding struct {
	PlayerID string
	Name     string
	Kind     game.SeatKind
	Offline  bool
}

// GameSession 一局游戏的会话。引擎状态唯一，所有变更都在
// mu 保护下进行（单写者），进来的动作先过引擎谓词再应用，
// 被拒绝的动作不触碰状态
type GameSession struct {
	room  *room.Room
	cfg   *config.GameConfig
	store *storage.RedisStore // 可为 nil（测试）

	st    game.State
	seats []SeatBinding

	mu sync.Mutex

	// 超时控制：普通回合一层，应答窗口一层（更短，带预警）
	turnTimer        *time.Timer
	warnTimer        *time.Timer
	offlineWaitTimer *time.Timer
	remainingTime    time.Duration // 暂停时剩余的时间
	timerStartTime   time.Time     // 计时器开始时间
	timerIsResponse  bool          // 暂停的是应答计时还是回合计时
	timerMu          sync.Mutex

	// OnGameOver 对局结束回调（由消息处理层清理会话映射）
	OnGameOver func(roomCode string)
}

// NewGameSession 创建游戏会话。座位顺序取房间内的加入顺序
func NewGameSession(r *room.Room, cfg *config.GameConfig, store *storage.RedisStore, seed uint64) (*GameSession, error) {
	seats := make([]SeatBinding, len(r.PlayerOrder))
	kinds := make([]game.SeatKind, len(r.PlayerOrder))
	for i, id := range r.PlayerOrder {
		name := ""
		if c := r.Players[id].Client; c != nil {
			name = c.GetName()
		}
		seats[i] = SeatBinding{PlayerID: id, Name: name, Kind: game.SeatHuman}
		kinds[i] = game.SeatHuman
	}

	st, err := game.New(len(seats), kinds, seed)
	if err != nil {
		return nil, err
	}

	return &GameSession{
		room:  r,
		cfg:   cfg,
		store: store,
		st:    st,
		seats: seats,
	}, nil
}

// seatIndex 玩家对应的座位下标，不在局中返回 -1
func (gs *GameSession) seatIndex(playerID string) int {
	for i, b := range gs.seats {
		if b.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// State 当前引擎状态的快照（值语义，拿到即脱离会话）
func (gs *GameSession) State() game.State {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.st
}
