package card

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog 卡库：全部红卡（名词）与绿卡（形容词）模板
// 启动时构建一次，引擎只读
type Catalog struct {
	Red   []Card
	Green []Card
}

// catalogFile 自定义卡库 JSON 文件结构
type catalogFile struct {
	Red   []catalogEntry `json:"red"`
	Green []catalogEntry `json:"green"`
}

type catalogEntry struct {
	Text string   `json:"text"`
	Tags []string `json:"tags,omitempty"`
}

// LoadFromFile 从 JSON 文件加载卡库
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析卡库文件失败: %w", err)
	}

	return buildCatalog(file.Red, file.Green)
}

// Builtin 返回内置卡库
func Builtin() *Catalog {
	red := make([]catalogEntry, 0, len(builtinNouns))
	for _, n := range builtinNouns {
		red = append(red, catalogEntry{Text: n.text, Tags: []string{n.tag}})
	}
	green := make([]catalogEntry, 0, len(builtinAdjectives))
	for _, a := range builtinAdjectives {
		green = append(green, catalogEntry{Text: a.text, Tags: a.tags})
	}

	catalog, err := buildCatalog(red, green)
	if err != nil {
		panic(err) // 内置卡库不可能非法
	}
	return catalog
}

// buildCatalog 构建卡库并分配稳定的卡牌 id
func buildCatalog(red, green []catalogEntry) (*Catalog, error) {
	if len(red) == 0 || len(green) == 0 {
		return nil, fmt.Errorf("卡库不能为空: 红卡 %d 张, 绿卡 %d 张", len(red), len(green))
	}

	c := &Catalog{
		Red:   make([]Card, 0, len(red)),
		Green: make([]Card, 0, len(green)),
	}
	for i, e := range red {
		if e.Text == "" {
			return nil, fmt.Errorf("第 %d 张红卡缺少文本", i+1)
		}
		c.Red = append(c.Red, Card{ID: fmt.Sprintf("r%03d", i+1), Text: e.Text, Tags: e.Tags})
	}
	for i, e := range green {
		if e.Text == "" {
			return nil, fmt.Errorf("第 %d 张绿卡缺少文本", i+1)
		}
		c.Green = append(c.Green, Card{ID: fmt.Sprintf("g%03d", i+1), Text: e.Text, Tags: e.Tags})
	}
	return c, nil
}

type builtinNoun struct {
	text string
	tag  string
}

type builtinAdjective struct {
	text string
	tags []string
}

// 内置词库
var (
	builtinNouns = []builtinNoun{
		{"大熊猫", "动物"}, {"柯基犬", "动物"}, {"橘猫", "动物"}, {"企鹅", "动物"},
		{"羊驼", "动物"}, {"水獭", "动物"}, {"仓鼠", "动物"}, {"长颈鹿", "动物"},
		{"鳄鱼", "动物"}, {"蚊子", "动物"}, {"章鱼", "动物"}, {"刺猬", "动物"},
		{"火锅", "食物"}, {"小笼包", "食物"}, {"臭豆腐", "食物"}, {"珍珠奶茶", "食物"},
		{"泡面", "食物"}, {"榴莲", "食物"}, {"烤串", "食物"}, {"皮蛋", "食物"},
		{"月饼", "食物"}, {"辣条", "食物"}, {"螺蛳粉", "食物"}, {"冰淇淋", "食物"},
		{"程序员", "人物"}, {"班主任", "人物"}, {"广场舞大妈", "人物"}, {"外卖小哥", "人物"},
		{"海盗", "人物"}, {"忍者", "人物"}, {"魔术师", "人物"}, {"宇航员", "人物"},
		{"隔壁老王", "人物"}, {"键盘侠", "人物"}, {"杠精", "人物"}, {"锦鲤", "人物"},
		{"洗衣机", "物品"}, {"遥控器", "物品"}, {"充电宝", "物品"}, {"自拍杆", "物品"},
		{"马桶搋子", "物品"}, {"风扇", "物品"}, {"闹钟", "物品"}, {"拖鞋", "物品"},
		{"保温杯", "物品"}, {"二维码", "物品"}, {"Wi-Fi 密码", "物品"}, {"老年机", "物品"},
		{"早高峰地铁", "场景"}, {"办公室茶水间", "场景"}, {"网吧", "场景"}, {"菜市场", "场景"},
		{"火车站广场", "场景"}, {"电梯", "场景"}, {"宿舍", "场景"}, {"春运", "场景"},
		{"加班", "概念"}, {"双十一", "概念"}, {"减肥", "概念"}, {"星期一", "概念"},
		{"堵车", "概念"}, {"断网", "概念"}, {"期末考试", "概念"}, {"体检报告", "概念"},
	}

	builtinAdjectives = []builtinAdjective{
		{"勇敢的", []string{"无畏", "胆大"}},
		{"尴尬的", []string{"社死", "难堪"}},
		{"高冷的", []string{"冷漠", "傲慢"}},
		{"呆萌的", []string{"可爱", "憨厚"}},
		{"危险的", []string{"刺激", "吓人"}},
		{"昂贵的", []string{"奢侈", "烧钱"}},
		{"神秘的", []string{"未知", "诡异"}},
		{"吵闹的", []string{"喧哗", "聒噪"}},
		{"优雅的", []string{"体面", "讲究"}},
		{"油腻的", []string{"世故", "腻味"}},
		{"硬核的", []string{"强悍", "专业"}},
		{"梦幻的", []string{"浪漫", "虚幻"}},
		{"过时的", []string{"老土", "怀旧"}},
		{"魔性的", []string{"上头", "洗脑"}},
		{"佛系的", []string{"随缘", "淡定"}},
		{"离谱的", []string{"荒唐", "夸张"}},
		{"温柔的", []string{"体贴", "柔和"}},
		{"倔强的", []string{"固执", "头铁"}},
		{"潮湿的", []string{"黏糊", "闷热"}},
		{"闪亮的", []string{"耀眼", "浮夸"}},
		{"沙雕的", []string{"搞笑", "无厘头"}},
		{"严肃的", []string{"正经", "板正"}},
		{"快乐的", []string{"开心", "欢脱"}},
		{"疲惫的", []string{"累垮", "躺平"}},
		{"香喷喷的", []string{"诱人", "馋人"}},
		{"冷冰冰的", []string{"冰凉", "疏远"}},
		{"慢吞吞的", []string{"拖拉", "磨蹭"}},
		{"硬邦邦的", []string{"僵硬", "死板"}},
	}
)
