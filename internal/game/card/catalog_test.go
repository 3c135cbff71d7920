package card

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	t.Parallel()

	c := Builtin()

	assert.NotEmpty(t, c.Red)
	assert.NotEmpty(t, c.Green)

	// 卡牌 id 全局唯一
	ids := make(map[string]bool)
	for _, card := range append(append([]Card{}, c.Red...), c.Green...) {
		assert.NotEmpty(t, card.Text)
		assert.False(t, ids[card.ID], "duplicate card id %s", card.ID)
		ids[card.ID] = true
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	content := `{
		"red": [
			{"text": "甲", "tags": ["测试"]},
			{"text": "乙"}
		],
		"green": [
			{"text": "丙的", "tags": ["同义"]}
		]
	}`
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadFromFile(path)
	require.NoError(t, err)

	require.Len(t, c.Red, 2)
	require.Len(t, c.Green, 1)
	assert.Equal(t, "r001", c.Red[0].ID)
	assert.Equal(t, "g001", c.Green[0].ID)
	assert.Equal(t, []string{"测试"}, c.Red[0].Tags)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// 空卡库
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"red":[],"green":[]}`), 0o644))
	_, err := LoadFromFile(empty)
	assert.Error(t, err)

	// 缺文本
	noText := filepath.Join(dir, "notext.json")
	require.NoError(t, os.WriteFile(noText, []byte(`{"red":[{"tags":["x"]}],"green":[{"text":"y"}]}`), 0o644))
	_, err = LoadFromFile(noText)
	assert.Error(t, err)

	// 文件不存在
	_, err = LoadFromFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
