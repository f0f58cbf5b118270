package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/chat"
)

// ChatHandler поднимает websocket-сессии и гоняет сообщения через шлюз.
// Хэндл участника — его email; комната выводится из пары хэндлов.
type ChatHandler struct {
	gateway *chat.Gateway
	users   auth.UserRepository
}

func NewChatHandler(gateway *chat.Gateway, users auth.UserRepository) *ChatHandler {
	return &ChatHandler{gateway: gateway, users: users}
}

// Upgrade пропускает дальше только websocket-запросы и резолвит email
// участника до апгрейда, пока доступен контекст Fiber.
func (h *ChatHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	uid, err := actorID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	u, err := h.users.GetByID(c.Context(), uid)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	c.Locals("chatHandle", chat.NormalizeHandle(u.Email))
	return c.Next()
}

type inboundMessage struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// Serve — цикл чтения одной websocket-сессии. Каждое входящее сообщение
// доставляется адресату, если он онлайн; офлайн-получатель сообщение теряет.
func (h *ChatHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		handle, _ := conn.Locals("chatHandle").(string)
		if handle == "" {
			_ = conn.Close()
			return
		}
		connID := uuid.NewString()
		h.gateway.Register(connID, handle, conn)
		defer h.gateway.Leave(connID, handle)

		for {
			var in inboundMessage
			if err := conn.ReadJSON(&in); err != nil {
				return // соединение закрыто или битый кадр
			}
			to := chat.NormalizeHandle(in.To)
			if to == "" || strings.TrimSpace(in.Text) == "" {
				continue
			}
			msg := chat.Message{
				From:   handle,
				To:     to,
				Text:   in.Text,
				SentAt: time.Now().UTC(),
			}
			if n := h.gateway.Emit(to, msg); n == 0 {
				log.Printf("chat: recipient %s offline, message dropped", to)
			}
			// Эхо отправителю, чтобы все его вкладки видели переписку.
			h.gateway.Emit(handle, msg)
		}
	})
}
