package types

import (
	"github.com/palemoky/apples-to-apples/internal/protocol"
)

// ServerInterface 定义服务器接口（用于打破循环依赖）
type ServerInterface interface {
	IsMaintenanceMode() bool
	GetOnlineCount() int
}

// ClientInterface 定义客户端连接接口
// 一个连接同一时刻至多绑定一个 (房间, 玩家) 对
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetRoom() string
	SetRoom(code string)
	GetPlayerID() string
	SetPlayerID(id string)
	SendMessage(msg *protocol.Message)
	Close()
}
