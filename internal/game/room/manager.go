package room

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/apples-to-apples/internal/apperrors"
	"github.com/palemoky/apples-to-apples/internal/game/card"
	"github.com/palemoky/apples-to-apples/internal/protocol"
	"github.com/palemoky/apples-to-apples/internal/types"
)

// CreateRoom 创建房间，创建者成为房主
func (rm *RoomManager) CreateRoom(client types.ClientInterface, name string) *Room {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	code := rm.generateRoomCode()

	room := &Room{
		Code:        code,
		Phase:       PhaseLobby,
		Players:     make([]*Player, 0, 8),
		Hands:       make(map[string][]card.Card),
		Submissions: make(map[string]*Submission),
		CreatedAt:   time.Now(),
		catalog:     rm.catalog,
		opts:        rm.opts,
		recorder:    rm.recorder,
	}

	room.mu.Lock()
	host := room.addPlayerLocked(client, name)
	room.HostID = host.ID
	room.broadcastStateLocked()
	room.mu.Unlock()

	rm.rooms[code] = room

	log.Printf("🏠 房间 %s 已创建，房主 %s", code, host.Name)

	return room
}

// JoinRoom 加入房间
// playerID 匹配房间内已有玩家时为重连，任意阶段均可；
// 否则仅限大厅阶段加入新玩家
func (rm *RoomManager) JoinRoom(client types.ClientInterface, code, name, playerID string) (*Room, *Player, bool, error) {
	rm.mu.RLock()
	room, exists := rm.rooms[code]
	rm.mu.RUnlock()
	if !exists {
		return nil, nil, false, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	// 重连：令牌匹配则重新挂接，手牌和分数都还在
	if playerID != "" {
		if p := room.findPlayerLocked(playerID); p != nil {
			p.Client = client
			if sanitized := SanitizeName(name); sanitized != "" {
				p.Name = sanitized
			}
			client.SetRoom(code)
			client.SetPlayerID(p.ID)
			client.SetName(p.Name)

			log.Printf("📶 玩家 %s 重连到房间 %s", p.Name, code)

			room.broadcastStateLocked()
			return room, p, true, nil
		}
	}

	if room.Phase != PhaseLobby {
		return nil, nil, false, apperrors.ErrGameAlreadyStarted
	}

	p := room.addPlayerLocked(client, name)
	log.Printf("👤 玩家 %s 加入房间 %s (座位 %d)", p.Name, code, len(room.Players)-1)

	room.broadcastStateLocked()
	return room, p, false, nil
}

// addPlayerLocked 追加一名新玩家并绑定连接
func (r *Room) addPlayerLocked(client types.ClientInterface, name string) *Player {
	p := &Player{
		ID:     uuid.New().String(),
		Name:   SanitizeName(name),
		Client: client,
	}
	if p.Name == "" {
		p.Name = GenerateNickname()
	}

	r.Players = append(r.Players, p)
	client.SetRoom(r.Code)
	client.SetPlayerID(p.ID)
	client.SetName(p.Name)
	return p
}

// Disconnect 连接断开
// 只标记离线并清除连接引用，手牌与分数保留等待重连；
// 房主掉线时移交房主，提交阶段重新检查是否可以进入裁判阶段
func (rm *RoomManager) Disconnect(client types.ClientInterface) {
	code := client.GetRoom()
	if code == "" {
		return
	}

	rm.mu.RLock()
	room, exists := rm.rooms[code]
	rm.mu.RUnlock()
	if !exists {
		return
	}

	room.mu.Lock()

	p := room.findPlayerLocked(client.GetPlayerID())
	if p == nil || p.Client != client {
		room.mu.Unlock()
		return
	}

	p.Client = nil
	p.Ready = false
	client.SetRoom("")
	client.SetPlayerID("")

	if room.HostID == p.ID {
		room.transferHostLocked(p.ID)
	}

	// 期望提交数只统计在线的非裁判玩家，掉线可能让本轮凑齐
	if room.Phase == PhaseSubmit {
		room.maybeAdvanceSubmitLocked()
	}

	log.Printf("📴 玩家 %s 在房间 %s 中掉线", p.Name, code)

	if room.connectedCountLocked() == 0 {
		room.mu.Unlock()
		rm.removeRoom(code)
		log.Printf("🧹 房间 %s 所有玩家已断开连接，清理房间", code)
		return
	}

	room.broadcastStateLocked()
	room.mu.Unlock()
}

// transferHostLocked 房主移交：优先座位顺序上的下一个在线玩家，
// 否则下一个玩家，只剩自己时保持不变等待回收
func (r *Room) transferHostLocked(fromID string) {
	idx := r.seatOfLocked(fromID)
	n := len(r.Players)
	if idx < 0 || n <= 1 {
		return
	}

	for i := 1; i < n; i++ {
		q := r.Players[(idx+i)%n]
		if q.Connected() {
			r.HostID = q.ID
			log.Printf("👑 房间 %s 房主移交给 %s", r.Code, q.Name)
			return
		}
	}
	r.HostID = r.Players[(idx+1)%n].ID
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// GetActiveGamesCount 获取进行中的游戏数量
func (rm *RoomManager) GetActiveGamesCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	count := 0
	for _, room := range rm.rooms {
		room.mu.RLock()
		switch room.Phase {
		case PhaseSubmit, PhaseJudgePick, PhaseScore:
			count++
		}
		room.mu.RUnlock()
	}
	return count
}

// removeRoom 删除房间
func (rm *RoomManager) removeRoom(code string) {
	rm.mu.Lock()
	delete(rm.rooms, code)
	rm.mu.Unlock()
}

// generateRoomCode 生成当前唯一的房间号（冲突重试）
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, rm.opts.CodeLength)
		for i := range code {
			code[i] = rm.opts.CodeChars[rand.IntN(len(rm.opts.CodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// cleanupLoop 定期清理超时房间
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rm.cleanup()
	}
}

// cleanup 清理在大厅中等待超时的房间
func (rm *RoomManager) cleanup() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	now := time.Now()

	for code, room := range rm.rooms {
		room.mu.Lock()
		if room.Phase == PhaseLobby && now.Sub(room.CreatedAt) > rm.roomTimeout {
			room.broadcastMessageLocked(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "房间超时已关闭"))
			for _, p := range room.Players {
				if p.Client != nil {
					p.Client.SetRoom("")
					p.Client.SetPlayerID("")
				}
			}
			room.mu.Unlock()
			delete(rm.rooms, code)
			log.Printf("🏠 房间 %s 超时已清理", code)
		} else {
			room.mu.Unlock()
		}
	}
}
