package handler

import (
	"strings"
	"time"

	"github.com/zimocha/crazy-sevens/internal/protocol"
	"github.com/zimocha/crazy-sevens/internal/protocol/codec"
	"github.com/zimocha/crazy-sevens/internal/types"
)

const maxChatLength = 200

// handleChat 处理房间内聊天，服务端填充发送者信息后广播
func (h *Handler) handleChat(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ChatPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	content := strings.TrimSpace(payload.Content)
	if content == "" {
		return
	}
	if len(content) > maxChatLength {
		content = content[:maxChatLength]
	}

	r := h.roomManager.GetRoom(client.GetRoom())
	if r == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return
	}

	r.Broadcast(codec.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{
		SenderID:   client.GetID(),
		SenderName: client.GetName(),
		Content:    content,
		Time:       time.Now().Unix(),
	}))
}
