package embedded

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试用文件系统
// 真正的资源嵌入在项目根目录的 embed.go 中，这里只验证分发逻辑。
func testFS() (fstest.MapFS, fstest.MapFS) {
	assets := fstest.MapFS{
		"assets/images/cards/card_back.png": {Data: []byte("png")},
		"assets/particles/fire.json":        {Data: []byte(`{"frequency":0.1}`)},
	}
	data := fstest.MapFS{
		"data/manifest.yaml": {Data: []byte("version: \"1.0\"")},
	}
	return assets, data
}

func reset() {
	initialized = false
	assetsFS = nil
	dataFS = nil
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	reset()
	defer reset()

	assert.False(t, IsInitialized())

	assets, data := testFS()
	Init(assets, data)

	assert.True(t, IsInitialized())
}

// TestAccessBeforeInit 测试未初始化时访问资源
func TestAccessBeforeInit(t *testing.T) {
	reset()

	_, err := Open("assets/test.png")
	assert.True(t, errors.Is(err, ErrNotInitialized))

	_, err = ReadFile("data/manifest.yaml")
	assert.True(t, errors.Is(err, ErrNotInitialized))

	_, err = Glob("assets/*.png")
	assert.True(t, errors.Is(err, ErrNotInitialized))

	assert.False(t, Exists("assets/test.png"))
}

// TestReadFileDispatchesByPrefix 测试按前缀选择文件系统
func TestReadFileDispatchesByPrefix(t *testing.T) {
	reset()
	defer reset()
	assets, data := testFS()
	Init(assets, data)

	content, err := ReadFile("assets/particles/fire.json")
	require.NoError(t, err)
	assert.Equal(t, `{"frequency":0.1}`, string(content))

	content, err = ReadFile("./data/manifest.yaml")
	require.NoError(t, err)
	assert.Equal(t, `version: "1.0"`, string(content))

	_, err = ReadFile("other/file.txt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resource path prefix")
}

func TestExistsAndGlob(t *testing.T) {
	reset()
	defer reset()
	assets, data := testFS()
	Init(assets, data)

	assert.True(t, Exists("assets/images/cards/card_back.png"))
	assert.False(t, Exists("assets/images/cards/missing.png"))

	matches, err := Glob("assets/particles/*.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/particles/fire.json"}, matches)
}

// TestFSView 测试 fs.FS 视图可被标准库函数使用
func TestFSView(t *testing.T) {
	reset()
	defer reset()
	assets, data := testFS()
	Init(assets, data)

	content, err := fs.ReadFile(FS(), "assets/images/cards/card_back.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(content))

	_, err = FS().Open("../escape")
	assert.True(t, errors.Is(err, fs.ErrInvalid))
}
