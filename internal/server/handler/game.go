package handler

import (
	"errors"

	"github.com/zimocha/crazy-sevens/internal/apperrors"
	"github.com/zimocha/crazy-sevens/internal/protocol"
	"github.com/zimocha/crazy-sevens/internal/protocol/codec"
	"github.com/zimocha/crazy-sevens/internal/server/session"
	"github.com/zimocha/crazy-sevens/internal/types"
)

// gameSessionFor 取客户端所在对局的会话，不在对局中返回 nil 并回报错误
func (h *Handler) gameSessionFor(client types.ClientInterface) *session.GameSession {
	roomCode := client.GetRoom()
	if roomCode == "" {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return nil
	}
	gs := h.GetGameSession(roomCode)
	if gs == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeGameNotStart))
		return nil
	}
	return gs
}

// handlePlayCards 处理出牌
func (h *Handler) handlePlayCards(client types.ClientInterface, msg *protocol.Message) {
	gs := h.gameSessionFor(client)
	if gs == nil {
		return
	}
	payload, err := codec.ParsePayload[protocol.PlayCardsPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.replyGameErr(client, gs.HandlePlayCards(client.GetID(), payload))
}

// handleDrawCard 处理摸牌
func (h *Handler) handleDrawCard(client types.ClientInterface) {
	gs := h.gameSessionFor(client)
	if gs == nil {
		return
	}
	h.replyGameErr(client, gs.HandleDraw(client.GetID()))
}

// handleEndTurn 处理结束回合
func (h *Handler) handleEndTurn(client types.ClientInterface) {
	gs := h.gameSessionFor(client)
	if gs == nil {
		return
	}
	h.replyGameErr(client, gs.HandleEndTurn(client.GetID()))
}

// handleDeclareLast 处理报单牌
func (h *Handler) handleDeclareLast(client types.ClientInterface) {
	gs := h.gameSessionFor(client)
	if gs == nil {
		return
	}
	h.replyGameErr(client, gs.HandleDeclare(client.GetID()))
}

// handleDeflect 处理连锁转嫁
func (h *Handler) handleDeflect(client types.ClientInterface, msg *protocol.Message) {
	gs := h.gameSessionFor(client)
	if gs == nil {
		return
	}
	payload, err := codec.ParsePayload[protocol.DeflectPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.replyGameErr(client, gs.HandleDeflect(client.GetID(), payload))
}

// handleResolveChain 处理承受连锁
func (h *Handler) handleResolveChain(client types.ClientInterface) {
	gs := h.gameSessionFor(client)
	if gs == nil {
		return
	}
	h.replyGameErr(client, gs.HandleResolve(client.GetID()))
}

// handlePlaySeven 处理七牌质疑
func (h *Handler) handlePlaySeven(client types.ClientInterface, msg *protocol.Message) {
	gs := h.gameSessionFor(client)
	if gs == nil {
		return
	}
	payload, err := codec.ParsePayload[protocol.PlaySevenPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.replyGameErr(client, gs.HandleSeven(client.GetID(), payload))
}

// handleAcceptDispute 处理接受质疑结论
func (h *Handler) handleAcceptDispute(client types.ClientInterface) {
	gs := h.gameSessionFor(client)
	if gs == nil {
		return
	}
	h.replyGameErr(client, gs.HandleAcceptDispute(client.GetID()))
}

// handleCancelWindow 处理取消 J/A 窗口
func (h *Handler) handleCancelWindow(client types.ClientInterface, msg *protocol.Message) {
	gs := h.gameSessionFor(client)
	if gs == nil {
		return
	}
	payload, err := codec.ParsePayload[protocol.CancelWindowPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.replyGameErr(client, gs.HandleCancelWindow(client.GetID(), payload))
}

// handleAcceptWindow 处理确认 J/A 窗口
func (h *Handler) handleAcceptWindow(client types.ClientInterface) {
	gs := h.gameSessionFor(client)
	if gs == nil {
		return
	}
	h.replyGameErr(client, gs.HandleAcceptWindow(client.GetID()))
}

// replyGameErr 动作被拒时回报错误码，成功则静默（结果走广播）
func (h *Handler) replyGameErr(client types.ClientInterface, err error) {
	if err == nil {
		return
	}
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(codec.NewErrorMessage(gameErr.Code))
		return
	}
	client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}
