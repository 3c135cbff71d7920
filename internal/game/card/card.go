package card

// Color 定义卡牌颜色
type Color int

const (
	Red   Color = iota // 红卡：名词
	Green              // 绿卡：形容词
)

var colorNames = map[Color]string{
	Red:   "red",
	Green: "green",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// Card 定义一张卡牌
// 抽出后不可变；同一 id 不会同时出现在两个手牌中，或同时出现在手牌和牌堆中
type Card struct {
	ID   string   `json:"id"`
	Text string   `json:"text"`
	Tags []string `json:"tags,omitempty"`
}
