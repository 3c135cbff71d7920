package room

import (
	"context"
	"fmt"
	"log"

	"github.com/palemoky/apples-to-apples/internal/apperrors"
	"github.com/palemoky/apples-to-apples/internal/game/card"
	"github.com/palemoky/apples-to-apples/internal/protocol"
)

// ToggleReady 切换准备状态，仅限大厅阶段
func (r *Room) ToggleReady(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase != PhaseLobby {
		return apperrors.ErrWrongPhase
	}
	p := r.findPlayerLocked(playerID)
	if p == nil {
		return apperrors.ErrNotInRoom
	}

	p.Ready = !p.Ready
	r.broadcastStateLocked()
	return nil
}

// Start 房主开始游戏：重置并发牌，直接进入提交阶段
func (r *Room) Start(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase != PhaseLobby {
		return apperrors.ErrWrongPhase
	}
	if playerID != r.HostID {
		return apperrors.ErrNotAuthorized
	}
	if r.connectedCountLocked() < r.opts.MinPlayers {
		return apperrors.ErrInsufficientPlayers
	}

	r.startGameLocked()
	log.Printf("🎮 房间 %s 开始游戏，%d 名玩家", r.Code, len(r.Players))
	return nil
}

// startGameLocked 完整重置：牌堆重建重洗、手牌重发、分数清零，进入第一轮提交
func (r *Room) startGameLocked() {
	r.Round = 1
	r.JudgeIndex = 0
	r.submissionSeq = 0
	r.LastWinnerID = ""
	r.WinningSubmissionID = ""
	r.RedDeck = card.NewDeck(r.catalog.Red)
	r.GreenDeck = card.NewDeck(r.catalog.Green)
	r.Hands = make(map[string][]card.Card)
	r.Submissions = make(map[string]*Submission)
	for _, p := range r.Players {
		p.Score = 0
		p.Ready = false
	}

	r.currentJudgeLocked() // 修正裁判指针，0 号座位可能已离线
	r.enterSubmitLocked()
}

// enterSubmitLocked 进入提交阶段：翻开新绿卡并补齐手牌
func (r *Room) enterSubmitLocked() {
	green, ok := r.GreenDeck.Draw()
	if !ok {
		r.exhaustedLocked()
		return
	}
	r.CurrentGreen = &green
	r.dealHandsLocked()
	r.Phase = PhaseSubmit
	r.broadcastStateLocked()
}

// exhaustedLocked 绿卡耗尽：本局终止，广播明确的耗尽信号
func (r *Room) exhaustedLocked() {
	r.clearSubmissionsLocked()
	r.CurrentGreen = nil
	r.Phase = PhaseGameOver

	log.Printf("🃏 房间 %s 绿卡耗尽，游戏终止", r.Code)

	r.broadcastMessageLocked(protocol.MustNewMessage(protocol.MsgCardsExhausted, protocol.CardsExhaustedPayload{
		RoomCode: r.Code,
	}))
	r.broadcastStateLocked()
}

// dealHandsLocked 为所有玩家补齐手牌到目标数量
// 红牌供给耗尽时尽力而为，不报错
func (r *Room) dealHandsLocked() {
	for _, p := range r.Players {
		for len(r.Hands[p.ID]) < r.opts.HandSize {
			c, ok := r.RedDeck.Draw()
			if !ok {
				return
			}
			r.Hands[p.ID] = append(r.Hands[p.ID], c)
		}
	}
}

// removeFromHandLocked 按 id 从手牌中移除并返回该牌，找不到不做任何修改
func (r *Room) removeFromHandLocked(playerID, cardID string) (card.Card, bool) {
	hand := r.Hands[playerID]
	for i, c := range hand {
		if c.ID == cardID {
			r.Hands[playerID] = append(hand[:i], hand[i+1:]...)
			return c, true
		}
	}
	return card.Card{}, false
}

// SubmitCard 非裁判玩家提交一张红卡
// 手牌移除与提交创建是同一原子步骤；凑齐后自动进入裁判阶段
func (r *Room) SubmitCard(playerID, cardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase != PhaseSubmit {
		return apperrors.ErrWrongPhase
	}
	p := r.findPlayerLocked(playerID)
	if p == nil {
		return apperrors.ErrNotInRoom
	}
	if judge := r.currentJudgeLocked(); judge != nil && judge.ID == playerID {
		return apperrors.ErrNotAuthorized
	}
	for _, sub := range r.Submissions {
		if sub.PlayerID == playerID {
			return apperrors.ErrDuplicateSubmission
		}
	}

	c, ok := r.removeFromHandLocked(playerID, cardID)
	if !ok {
		return apperrors.ErrCardNotInHand
	}

	r.submissionSeq++
	sub := &Submission{
		ID:       fmt.Sprintf("s%04d", r.submissionSeq),
		PlayerID: playerID,
		Card:     c,
	}
	r.Submissions[sub.ID] = sub

	r.maybeAdvanceSubmitLocked()
	r.broadcastStateLocked()
	return nil
}

// expectedSubmissionsLocked 本轮期望的提交数：在线的非裁判玩家数
func (r *Room) expectedSubmissionsLocked() int {
	judge := r.currentJudgeLocked()
	count := 0
	for _, p := range r.Players {
		if p.Connected() && (judge == nil || p.ID != judge.ID) {
			count++
		}
	}
	return count
}

// maybeAdvanceSubmitLocked 提交数达到期望时自动进入裁判阶段
// 至少要有一条提交，否则裁判无牌可选
func (r *Room) maybeAdvanceSubmitLocked() {
	if r.Phase != PhaseSubmit {
		return
	}
	if len(r.Submissions) == 0 {
		return
	}
	if len(r.Submissions) >= r.expectedSubmissionsLocked() {
		r.Phase = PhaseJudgePick
	}
}

// JudgePick 裁判选出本轮获胜提交
// 获胜者加一分；达到胜利分数进入 game_over，否则进入计分阶段
func (r *Room) JudgePick(playerID, submissionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase != PhaseJudgePick {
		return apperrors.ErrWrongPhase
	}
	judge := r.currentJudgeLocked()
	if judge == nil || judge.ID != playerID {
		return apperrors.ErrNotAuthorized
	}
	sub, ok := r.Submissions[submissionID]
	if !ok {
		return apperrors.ErrInvalidWinner
	}

	winner := r.findPlayerLocked(sub.PlayerID)
	if winner == nil {
		return apperrors.ErrInvalidWinner
	}

	winner.Score++
	r.LastWinnerID = winner.ID
	r.WinningSubmissionID = sub.ID

	log.Printf("🏆 房间 %s 第 %d 轮：%s 的「%s」被选中", r.Code, r.Round, winner.Name, sub.Card.Text)

	if winner.Score >= r.opts.WinScore {
		r.finishGameLocked(winner)
		return nil
	}

	r.Phase = PhaseScore
	r.dealHandsLocked()
	r.broadcastStateLocked()
	return nil
}

// finishGameLocked 有人到达胜利分数：清空提交与当前绿卡，不再发牌
func (r *Room) finishGameLocked(winner *Player) {
	r.clearSubmissionsLocked()
	if r.CurrentGreen != nil {
		r.GreenDeck.Discard(*r.CurrentGreen)
		r.CurrentGreen = nil
	}
	r.Phase = PhaseGameOver

	log.Printf("🎉 房间 %s 游戏结束，获胜者 %s（%d 分）", r.Code, winner.Name, winner.Score)

	// 异步上报全局胜场，失败不影响游戏
	if r.recorder != nil {
		name := winner.Name
		go func() { _ = r.recorder.RecordWin(context.Background(), name) }()
	}

	r.broadcastStateLocked()
}

// clearSubmissionsLocked 清空本轮提交，卡先进红卡弃牌堆
func (r *Room) clearSubmissionsLocked() {
	for _, sub := range r.Submissions {
		r.RedDeck.Discard(sub.Card)
	}
	r.Submissions = make(map[string]*Submission)
}

// NextRound 房主进入下一轮：轮转裁判、换绿卡、补手牌
func (r *Room) NextRound(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase != PhaseScore {
		return apperrors.ErrWrongPhase
	}
	if playerID != r.HostID {
		return apperrors.ErrNotAuthorized
	}

	r.clearSubmissionsLocked()
	if r.CurrentGreen != nil {
		r.GreenDeck.Discard(*r.CurrentGreen)
		r.CurrentGreen = nil
	}
	r.advanceJudgeLocked()
	r.Round++
	r.LastWinnerID = ""
	r.WinningSubmissionID = ""

	r.enterSubmitLocked()
	return nil
}

// advanceJudgeLocked 裁判轮转：座位顺序上的下一个在线玩家
// 跳过离线座位；全员离线时指针保持不变
func (r *Room) advanceJudgeLocked() {
	n := len(r.Players)
	if n == 0 {
		return
	}
	for i := 1; i <= n; i++ {
		idx := (r.JudgeIndex + i) % n
		if r.Players[idx].Connected() {
			r.JudgeIndex = idx
			return
		}
	}
}

// Rematch 游戏结束后重新开局，语义同 Start
func (r *Room) Rematch(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase != PhaseGameOver {
		return apperrors.ErrWrongPhase
	}
	if playerID != r.HostID {
		return apperrors.ErrNotAuthorized
	}
	if r.connectedCountLocked() < r.opts.MinPlayers {
		return apperrors.ErrInsufficientPlayers
	}

	r.startGameLocked()
	log.Printf("🔄 房间 %s 重新开局", r.Code)
	return nil
}
