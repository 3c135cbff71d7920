package room

import (
	"context"
	"sync"
	"time"

	"github.com/palemoky/apples-to-apples/internal/game/card"
	"github.com/palemoky/apples-to-apples/internal/types"
)

// Phase 房间阶段
type Phase string

const (
	PhaseLobby     Phase = "lobby"      // 等待玩家加入
	PhaseSubmit    Phase = "submit"     // 非裁判玩家匿名提交红卡
	PhaseJudgePick Phase = "judge_pick" // 裁判在匿名提交中选出获胜卡
	PhaseScore     Phase = "score"      // 公布本轮结果，等房主进入下一轮
	PhaseGameOver  Phase = "game_over"  // 有人达到胜利分数，或绿卡耗尽
)

// Player 房间中的玩家
// ID 在首次加入时分配，跨重连保持不变，同时充当重连令牌
type Player struct {
	ID     string
	Name   string
	Score  int
	Ready  bool
	Client types.ClientInterface // nil 表示离线
}

// Connected 玩家是否在线
func (p *Player) Connected() bool {
	return p.Client != nil
}

// Submission 一条匿名提交
// ID 在房间生命周期内单调递增，绝不复用
type Submission struct {
	ID       string
	PlayerID string
	Card     card.Card
}

// Options 引擎常量（来自配置）
type Options struct {
	WinScore   int    // 获胜所需分数
	HandSize   int    // 目标手牌数
	MinPlayers int    // 开局最少在线人数
	CodeLength int    // 房间号长度
	CodeChars  string // 房间号字符集
}

// DefaultOptions 测试与缺省场景使用的引擎常量
func DefaultOptions() Options {
	return Options{
		WinScore:   5,
		HandSize:   7,
		MinPlayers: 3,
		CodeLength: 4,
		CodeChars:  "ABCDEFGHJKLMNPQRSTUVWXYZ23456789",
	}
}

// ResultRecorder 胜场上报接口（由 storage.LeaderboardStore 实现）
type ResultRecorder interface {
	RecordWin(ctx context.Context, playerName string) error
}

// Room 游戏房间
// 房间是独立的可变状态单元，所有命令在 mu 保护下原子执行；
// 快照也在持锁期间广播，保证两次变更的快照不会交错
type Room struct {
	Code                string
	HostID              string
	Phase               Phase
	Round               int
	JudgeIndex          int
	Players             []*Player // 座位顺序（加入顺序）
	Hands               map[string][]card.Card
	Submissions         map[string]*Submission
	RedDeck             *card.Deck
	GreenDeck           *card.Deck
	CurrentGreen        *card.Card
	LastWinnerID        string
	WinningSubmissionID string
	CreatedAt           time.Time

	catalog       *card.Catalog
	opts          Options
	recorder      ResultRecorder
	submissionSeq int

	mu sync.RWMutex
}

// RoomManager 房间管理器
type RoomManager struct {
	catalog     *card.Catalog
	opts        Options
	recorder    ResultRecorder
	roomTimeout time.Duration
	rooms       map[string]*Room
	mu          sync.RWMutex
}

// NewRoomManager 创建房间管理器
// recorder 可为 nil（不上报胜场）
func NewRoomManager(catalog *card.Catalog, opts Options, recorder ResultRecorder, roomTimeout time.Duration) *RoomManager {
	rm := &RoomManager{
		catalog:     catalog,
		opts:        opts,
		recorder:    recorder,
		roomTimeout: roomTimeout,
		rooms:       make(map[string]*Room),
	}

	// 启动房间清理协程
	go rm.cleanupLoop()

	return rm
}

// IsHost 判断该玩家是否为房主
func (r *Room) IsHost(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return playerID != "" && r.HostID == playerID
}

// findPlayerLocked 按稳定 ID 查找玩家，调用方持锁
func (r *Room) findPlayerLocked(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// seatOfLocked 返回玩家座位号，找不到返回 -1
func (r *Room) seatOfLocked(playerID string) int {
	for i, p := range r.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// connectedCountLocked 在线玩家数
func (r *Room) connectedCountLocked() int {
	count := 0
	for _, p := range r.Players {
		if p.Connected() {
			count++
		}
	}
	return count
}

// currentJudgeLocked 返回当前裁判
// 从存储的裁判指针向后扫描第一个在线玩家，并把指针修正回写（自愈），
// 保证只要还有人在线，掉线就不会让房间失去裁判；
// 全员离线时指针保持不变
func (r *Room) currentJudgeLocked() *Player {
	n := len(r.Players)
	if n == 0 {
		return nil
	}
	if r.JudgeIndex >= n {
		r.JudgeIndex = 0
	}
	for i := range n {
		idx := (r.JudgeIndex + i) % n
		if r.Players[idx].Connected() {
			r.JudgeIndex = idx
			return r.Players[idx]
		}
	}
	return r.Players[r.JudgeIndex]
}
