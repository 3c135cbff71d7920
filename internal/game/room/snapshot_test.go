package room

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_SubmissionsHiddenDuringSubmit(t *testing.T) {
	t.Parallel()

	_, r, _ := setupRoom(t, 4, DefaultOptions())
	startGame(t, r)
	submitFirstCard(t, r, r.Players[1].ID)

	snapshot := r.PublicSnapshot()

	assert.Equal(t, string(PhaseSubmit), snapshot.Phase)
	assert.Empty(t, snapshot.Submissions, "submissions stay hidden until judge_pick")
	assert.Equal(t, 1, snapshot.SubmissionCount)
	assert.Equal(t, 3, snapshot.ExpectedCount)
}

func TestSnapshot_RevealIsAnonymous(t *testing.T) {
	t.Parallel()

	_, r, _ := setupRoom(t, 3, DefaultOptions())
	startGame(t, r)
	submitFirstCard(t, r, r.Players[1].ID)
	submitFirstCard(t, r, r.Players[2].ID)
	require.Equal(t, PhaseJudgePick, r.Phase)

	snapshot := r.PublicSnapshot()
	require.Len(t, snapshot.Submissions, 2)

	// 公开快照序列化后绝不出现提交者身份字段
	raw, err := json.Marshal(snapshot.Submissions)
	require.NoError(t, err)
	for _, p := range r.Players {
		assert.NotContains(t, string(raw), p.ID)
	}
}

func TestSnapshot_WinnerRevealTiming(t *testing.T) {
	t.Parallel()

	_, r, _ := setupRoom(t, 3, DefaultOptions())

	assert.Empty(t, r.PublicSnapshot().LastWinnerID)

	startGame(t, r)
	assert.Empty(t, r.PublicSnapshot().LastWinnerID)

	submitFirstCard(t, r, r.Players[1].ID)
	submitFirstCard(t, r, r.Players[2].ID)
	assert.Empty(t, r.PublicSnapshot().LastWinnerID, "winner hidden in judge_pick")

	judge := r.currentJudge()
	require.NoError(t, r.JudgePick(judge.ID, anySubmissionID(r)))

	snapshot := r.PublicSnapshot()
	assert.NotEmpty(t, snapshot.LastWinnerID)
	assert.NotEmpty(t, snapshot.WinningSubmission)

	// 下一轮的提交阶段重新隐藏
	require.NoError(t, r.NextRound(r.HostID))
	assert.Empty(t, r.PublicSnapshot().LastWinnerID)
}

func TestSnapshot_NoHandDataEver(t *testing.T) {
	t.Parallel()

	_, r, _ := setupRoom(t, 3, DefaultOptions())
	startGame(t, r)

	raw, err := json.Marshal(r.PublicSnapshot())
	require.NoError(t, err)

	// 任何玩家手牌中的红卡 id 都不能出现在公开快照里
	for _, hand := range r.Hands {
		for _, c := range hand {
			assert.NotContains(t, string(raw), c.ID)
		}
	}
}

func TestPlayerState_OwnHandOnly(t *testing.T) {
	t.Parallel()

	_, r, _ := setupRoom(t, 3, DefaultOptions())
	startGame(t, r)

	p1 := r.Players[1]
	state := r.PlayerState(p1.ID)

	assert.Len(t, state.Hand, r.opts.HandSize)
	assert.False(t, state.Submitted)

	submitFirstCard(t, r, p1.ID)
	state = r.PlayerState(p1.ID)
	assert.Len(t, state.Hand, r.opts.HandSize-1)
	assert.True(t, state.Submitted)

	// 其他玩家的私有状态不受影响
	assert.False(t, r.PlayerState(r.Players[2].ID).Submitted)
}

func TestLeaderboard_Deterministic(t *testing.T) {
	t.Parallel()

	_, r, _ := setupRoom(t, 4, DefaultOptions())

	r.mu.Lock()
	r.Players[0].Name = "丙"
	r.Players[0].Score = 2
	r.Players[1].Name = "乙"
	r.Players[1].Score = 3
	r.Players[2].Name = "甲"
	r.Players[2].Score = 2
	r.Players[3].Name = "丁"
	r.Players[3].Score = 0
	r.mu.Unlock()

	first := r.PublicSnapshot().Leaderboard
	require.Len(t, first, 4)

	// 分数降序，同分按名字升序
	assert.Equal(t, "乙", first[0].Name)
	assert.Equal(t, "丙", first[1].Name)
	assert.Equal(t, "甲", first[2].Name)
	assert.Equal(t, "丁", first[3].Name)

	// 输入不变时排序可复现
	for range 5 {
		assert.Equal(t, first, r.PublicSnapshot().Leaderboard)
	}
}
