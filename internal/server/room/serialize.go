package room

import (
	"github.com/zimocha/crazy-sevens/internal/server/storage"
)

// ToRoomData 转换为 Redis 序列化格式
func (r *Room) ToRoomData() *storage.RoomData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]storage.PlayerData, 0, len(r.PlayerOrder))
	for _, id := range r.PlayerOrder {
		p := r.Players[id]
		name := ""
		if p.Client != nil {
			name = p.Client.GetName()
		}
		players = append(players, storage.PlayerData{
			ID:    id,
			Name:  name,
			Seat:  p.Seat,
			Ready: p.Ready,
		})
	}

	order := make([]string, len(r.PlayerOrder))
	copy(order, r.PlayerOrder)

	return &storage.RoomData{
		Code:        r.Code,
		State:       int(r.State),
		Players:     players,
		PlayerOrder: order,
		CreatedAt:   r.CreatedAt.Unix(),
	}
}
