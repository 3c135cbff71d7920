package room

import (
	"sort"

	"github.com/palemoky/apples-to-apples/internal/protocol"
)

// revealPhases 提交列表（去身份）对外可见的阶段
var revealPhases = map[Phase]bool{
	PhaseJudgePick: true,
	PhaseScore:     true,
	PhaseGameOver:  true,
}

// winnerPhases 本轮获胜者对外可见的阶段
var winnerPhases = map[Phase]bool{
	PhaseScore:    true,
	PhaseGameOver: true,
}

// PublicSnapshot 导出房间公开快照
// 纯投影：所有隐私规则集中在这里，手牌和提交者身份永不进入公开结构
func (r *Room) PublicSnapshot() protocol.RoomUpdatePayload {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() protocol.RoomUpdatePayload {
	snapshot := protocol.RoomUpdatePayload{
		RoomCode:        r.Code,
		Phase:           string(r.Phase),
		Round:           r.Round,
		HostID:          r.HostID,
		SubmissionCount: len(r.Submissions),
		Players:         make([]protocol.PlayerInfo, 0, len(r.Players)),
		Leaderboard:     r.leaderboardLocked(),
	}

	if r.Phase != PhaseLobby {
		if judge := r.peekJudgeLocked(); judge != nil {
			snapshot.JudgeID = judge.ID
		}
		snapshot.ExpectedCount = r.peekExpectedLocked()
	}

	// 获胜者身份只在翻牌之后暴露
	if winnerPhases[r.Phase] {
		snapshot.LastWinnerID = r.LastWinnerID
		snapshot.WinningSubmission = r.WinningSubmissionID
	}

	if r.CurrentGreen != nil {
		snapshot.GreenCard = &protocol.CardInfo{ID: r.CurrentGreen.ID, Text: r.CurrentGreen.Text}
	}

	for _, p := range r.Players {
		snapshot.Players = append(snapshot.Players, protocol.PlayerInfo{
			ID:        p.ID,
			Name:      p.Name,
			Score:     p.Score,
			Ready:     p.Ready,
			Connected: p.Connected(),
			IsHost:    p.ID == r.HostID,
		})
	}

	// 提交列表只在裁判阶段起可见，且永远不带提交者身份
	if revealPhases[r.Phase] && len(r.Submissions) > 0 {
		snapshot.Submissions = make([]protocol.SubmissionInfo, 0, len(r.Submissions))
		for _, sub := range r.Submissions {
			snapshot.Submissions = append(snapshot.Submissions, protocol.SubmissionInfo{
				ID:       sub.ID,
				CardID:   sub.Card.ID,
				CardText: sub.Card.Text,
			})
		}
		sort.Slice(snapshot.Submissions, func(i, j int) bool {
			return snapshot.Submissions[i].ID < snapshot.Submissions[j].ID
		})
	}

	return snapshot
}

// peekJudgeLocked 只读版的裁判查找，不回写指针（快照可能在读锁下构建）
func (r *Room) peekJudgeLocked() *Player {
	n := len(r.Players)
	if n == 0 {
		return nil
	}
	start := r.JudgeIndex % n
	for i := range n {
		idx := (start + i) % n
		if r.Players[idx].Connected() {
			return r.Players[idx]
		}
	}
	return r.Players[start]
}

// peekExpectedLocked 只读版的期望提交数
func (r *Room) peekExpectedLocked() int {
	judge := r.peekJudgeLocked()
	count := 0
	for _, p := range r.Players {
		if p.Connected() && (judge == nil || p.ID != judge.ID) {
			count++
		}
	}
	return count
}

// leaderboardLocked 派生排名：分数降序，同分按名字升序保证确定性
func (r *Room) leaderboardLocked() []protocol.ScoreEntry {
	entries := make([]protocol.ScoreEntry, 0, len(r.Players))
	for _, p := range r.Players {
		entries = append(entries, protocol.ScoreEntry{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// PlayerState 导出玩家私有状态（手牌 + 本轮是否已提交）
func (r *Room) PlayerState(playerID string) protocol.PlayerStatePayload {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playerStateLocked(playerID)
}

func (r *Room) playerStateLocked(playerID string) protocol.PlayerStatePayload {
	state := protocol.PlayerStatePayload{
		Hand: make([]protocol.CardInfo, 0, len(r.Hands[playerID])),
	}
	for _, c := range r.Hands[playerID] {
		state.Hand = append(state.Hand, protocol.CardInfo{ID: c.ID, Text: c.Text})
	}
	for _, sub := range r.Submissions {
		if sub.PlayerID == playerID {
			state.Submitted = true
			break
		}
	}
	return state
}

// broadcastStateLocked 变更提交后的快照广播：
// 公开快照发给房间内所有在线连接，私有状态逐一单发
func (r *Room) broadcastStateLocked() {
	update := protocol.MustNewMessage(protocol.MsgRoomUpdate, r.snapshotLocked())
	for _, p := range r.Players {
		if p.Client == nil {
			continue
		}
		p.Client.SendMessage(update)
		p.Client.SendMessage(protocol.MustNewMessage(protocol.MsgPlayerState, r.playerStateLocked(p.ID)))
	}
}

// broadcastMessageLocked 向房间内所有在线连接发送一条消息
func (r *Room) broadcastMessageLocked(msg *protocol.Message) {
	for _, p := range r.Players {
		if p.Client != nil {
			p.Client.SendMessage(msg)
		}
	}
}
