package card

import (
	"math/rand/v2"
)

// Deck 单色牌堆：抽牌堆 + 弃牌堆
// Deck 本身不加锁，由持有它的房间串行访问
type Deck struct {
	drawPile    []Card
	discardPile []Card
}

// NewDeck 从卡牌列表创建牌堆并洗牌（不修改入参）
func NewDeck(cards []Card) *Deck {
	d := &Deck{
		drawPile: make([]Card, len(cards)),
	}
	copy(d.drawPile, cards)
	Shuffle(d.drawPile)
	return d
}

// Shuffle 原地洗牌（Fisher–Yates）
func Shuffle(cards []Card) {
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Draw 抽一张牌
// 抽牌堆为空时，洗入弃牌堆后再抽；两堆都空时返回 false
func (d *Deck) Draw() (Card, bool) {
	if len(d.drawPile) == 0 {
		if len(d.discardPile) == 0 {
			return Card{}, false
		}
		d.drawPile = d.discardPile
		d.discardPile = nil
		Shuffle(d.drawPile)
	}

	c := d.drawPile[len(d.drawPile)-1]
	d.drawPile = d.drawPile[:len(d.drawPile)-1]
	return c, true
}

// Discard 将一张牌放入弃牌堆
func (d *Deck) Discard(c Card) {
	d.discardPile = append(d.discardPile, c)
}

// Remaining 返回两堆剩余总数
func (d *Deck) Remaining() int {
	return len(d.drawPile) + len(d.discardPile)
}

// Cards 返回两堆中所有牌（用于校验守恒，不保证顺序）
func (d *Deck) Cards() []Card {
	all := make([]Card, 0, len(d.drawPile)+len(d.discardPile))
	all = append(all, d.drawPile...)
	all = append(all, d.discardPile...)
	return all
}
