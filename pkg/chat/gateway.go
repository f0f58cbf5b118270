package chat

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Conn — минимальный контракт соединения; ему удовлетворяет
// *websocket.Conn из gofiber/websocket.
type Conn interface {
	WriteJSON(v any) error
}

// Message — полезная нагрузка, доставляемая в комнату получателя.
type Message struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

// NormalizeHandle приводит ник к ключу комнаты: нижний регистр + trim.
func NormalizeHandle(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// RoomID — детерминированный идентификатор личной переписки двух участников.
func RoomID(a, b string) string {
	pair := []string{NormalizeHandle(a), NormalizeHandle(b)}
	sort.Strings(pair)
	return pair[0] + "|" + pair[1]
}

// Gateway держит реестр подключений процесса: handle → connID → Conn.
// Реестр эфемерный — после рестарта процесса он пуст, персистентность
// сообщений лежит на хранилище, не на шлюзе.
type Gateway struct {
	mu    sync.Mutex
	rooms map[string]map[string]Conn
}

func NewGateway() *Gateway {
	return &Gateway{rooms: make(map[string]map[string]Conn)}
}

// Register добавляет соединение в комнату получателя.
// Повторная регистрация того же connID — no-op, не ошибка.
func (g *Gateway) Register(connID, handle string, c Conn) {
	key := NormalizeHandle(handle)
	if key == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[key]
	if !ok {
		room = make(map[string]Conn)
		g.rooms[key] = room
	}
	if _, exists := room[connID]; exists {
		return
	}
	room[connID] = c
}

// Leave убирает соединение; пустая комната удаляется из реестра.
func (g *Gateway) Leave(connID, handle string) {
	key := NormalizeHandle(handle)
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[key]
	if !ok {
		return
	}
	delete(room, connID)
	if len(room) == 0 {
		delete(g.rooms, key)
	}
}

// Emit доставляет payload всем соединениям получателя и возвращает число
// доставок. Нет подключений — сообщение молча теряется (at-most-once).
// Единая точка диспетчеризации под мьютексом даёт FIFO-порядок доставки
// для одного получателя.
func (g *Gateway) Emit(recipient string, payload any) int {
	key := NormalizeHandle(recipient)
	g.mu.Lock()
	defer g.mu.Unlock()
	delivered := 0
	for _, c := range g.rooms[key] {
		if err := c.WriteJSON(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Online сообщает, есть ли живые подключения у получателя.
func (g *Gateway) Online(handle string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms[NormalizeHandle(handle)]) > 0
}
