package room

import (
	"sync"
	"time"

	"github.com/zimocha/crazy-sevens/internal/game"
	"github.com/zimocha/crazy-sevens/internal/protocol"
	"github.com/zimocha/crazy-sevens/internal/server/storage"
	"github.com/zimocha/crazy-sevens/internal/types"
)

const (
	roomCodeLength = 6            // 房间号长度
	roomCodeChars  = "0123456789" // 房间号字符集
)

// RoomState 房间状态
type RoomState int

const (
	RoomStateWaiting RoomState = iota // 等待玩家
	RoomStatePlaying                  // 游戏进行中
	RoomStateEnded                    // 游戏已结束
)

// RoomPlayer 房间中的玩家
type RoomPlayer struct {
	Client types.ClientInterface
	Seat   int  // 座位号 0-3
	Ready  bool // 是否准备
}

// Room 游戏房间
type Room struct {
	Code        string                 // 房间号
	State       RoomState              // 房间状态
	Players     map[string]*RoomPlayer // 玩家列表
	PlayerOrder []string               // 玩家顺序（按座位）
	CreatedAt   time.Time              // 创建时间

	mu sync.RWMutex
}

// RoomManager 房间管理器
type RoomManager struct {
	redisStore  *storage.RedisStore
	roomTimeout time.Duration
	rooms       map[string]*Room
	mu          sync.RWMutex

	// OnRoomReady 所有玩家准备就绪时回调（由消息处理层接上开局逻辑）
	OnRoomReady func(r *Room)
}

// NewRoomManager 创建房间管理器
func NewRoomManager(rs *storage.RedisStore, roomTimeout time.Duration) *RoomManager {
	rm := &RoomManager{
		redisStore:  rs,
		roomTimeout: roomTimeout,
		rooms:       make(map[string]*Room),
	}

	// 启动房间清理协程
	go rm.cleanupLoop()

	return rm
}

// Broadcast 向房间内所有在线玩家广播消息
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.Players {
		if p.Client != nil {
			p.Client.SendMessage(msg)
		}
	}
}

// BroadcastExcept 向房间内除指定玩家外的在线玩家广播消息
func (r *Room) BroadcastExcept(exceptID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, p := range r.Players {
		if id != exceptID && p.Client != nil {
			p.Client.SendMessage(msg)
		}
	}
}

// SendTo 向房间内指定玩家发送消息
func (r *Room) SendTo(playerID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.Players[playerID]; ok && p.Client != nil {
		p.Client.SendMessage(msg)
	}
}

// GetPlayerInfo 生成玩家信息
func (r *Room) GetPlayerInfo(playerID string) protocol.PlayerInfo {
	p, exists := r.Players[playerID]
	if !exists {
		return protocol.PlayerInfo{}
	}
	name := ""
	online := false
	if p.Client != nil {
		name = p.Client.GetName()
		online = true
	}
	return protocol.PlayerInfo{
		ID:     playerID,
		Name:   name,
		Seat:   p.Seat,
		Ready:  p.Ready,
		Online: online,
	}
}

// GetPlayerInfos 生成房间内所有玩家信息（按座位顺序）
func (r *Room) GetPlayerInfos() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.PlayerOrder))
	for _, id := range r.PlayerOrder {
		infos = append(infos, r.GetPlayerInfo(id))
	}
	return infos
}

// checkAllReady 检查是否满足开局条件：人数够且全员准备
// 调用方必须持有 r.mu
func (r *Room) checkAllReady() bool {
	if len(r.Players) < game.MinSeats {
		return false
	}
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}
