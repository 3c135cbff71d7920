package card

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCards(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{ID: fmt.Sprintf("c%03d", i+1), Text: fmt.Sprintf("card-%d", i+1)}
	}
	return cards
}

func TestDeck_DrawAll(t *testing.T) {
	t.Parallel()

	cards := makeCards(10)
	d := NewDeck(cards)

	seen := make(map[string]bool)
	for range 10 {
		c, ok := d.Draw()
		require.True(t, ok)
		assert.False(t, seen[c.ID], "card %s drawn twice", c.ID)
		seen[c.ID] = true
	}

	// 两堆都空了
	_, ok := d.Draw()
	assert.False(t, ok)
	assert.Equal(t, 0, d.Remaining())
}

func TestDeck_ReshuffleFromDiscard(t *testing.T) {
	t.Parallel()

	d := NewDeck(makeCards(3))

	// 抽空后把牌全丢进弃牌堆
	var drawn []Card
	for {
		c, ok := d.Draw()
		if !ok {
			break
		}
		drawn = append(drawn, c)
	}
	require.Len(t, drawn, 3)
	for _, c := range drawn {
		d.Discard(c)
	}

	// 弃牌堆洗回抽牌堆后可以继续抽
	c, ok := d.Draw()
	assert.True(t, ok)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, 2, d.Remaining())
}

func TestDeck_Conservation(t *testing.T) {
	t.Parallel()

	cards := makeCards(20)
	d := NewDeck(cards)

	// 抽一半，弃三张，剩下的总量始终守恒
	var held []Card
	for range 10 {
		c, ok := d.Draw()
		require.True(t, ok)
		held = append(held, c)
	}
	for i := range 3 {
		d.Discard(held[i])
	}
	held = held[3:]

	ids := make(map[string]int)
	for _, c := range d.Cards() {
		ids[c.ID]++
	}
	for _, c := range held {
		ids[c.ID]++
	}

	assert.Len(t, ids, 20)
	for id, count := range ids {
		assert.Equal(t, 1, count, "card %s duplicated", id)
	}
}

func TestShuffle_Permutation(t *testing.T) {
	t.Parallel()

	cards := makeCards(30)
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	Shuffle(shuffled)

	// 洗牌不增不减
	assert.ElementsMatch(t, cards, shuffled)
}
