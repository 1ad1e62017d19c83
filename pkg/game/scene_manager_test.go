package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	name      string
	events    *[]string
	deltaTime float64
	width     int
	height    int
}

func (m *MockScene) Update(deltaTime float64) {
	m.deltaTime = deltaTime
	*m.events = append(*m.events, m.name+":update")
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	*m.events = append(*m.events, m.name+":draw")
}

func (m *MockScene) Dispose() {
	*m.events = append(*m.events, m.name+":dispose")
}

func (m *MockScene) Resize(width, height int) {
	m.width, m.height = width, height
}

func newManager(events *[]string) (*SceneManager, *FrameClock, map[string]*MockScene) {
	clock := NewFrameClock()
	sm := NewSceneManager(clock)
	created := make(map[string]*MockScene)
	sm.SetSceneFactory(func(name string, scope *ClockScope) (Scene, error) {
		if name == "broken" {
			return nil, errors.New("cannot build")
		}
		*events = append(*events, name+":create")
		scope.OnTick(func(dt float64) {
			*events = append(*events, name+":tick")
		})
		s := &MockScene{name: name, events: events}
		created[name] = s
		return s, nil
	})
	return sm, clock, created
}

func TestSceneManagerUpdateOrder(t *testing.T) {
	var events []string
	sm, _, created := newManager(&events)
	require.NoError(t, sm.SwitchTo("menu"))

	events = nil
	sm.Update(0.016)
	assert.Equal(t, []string{"menu:update", "menu:tick"}, events)
	assert.Equal(t, 0.016, created["menu"].deltaTime)
	assert.Equal(t, "menu", sm.CurrentName())
}

// 旧场景完全销毁后才构造新场景
func TestSceneManagerNavigateTearsDownFirst(t *testing.T) {
	var events []string
	sm, clock, _ := newManager(&events)
	require.NoError(t, sm.SwitchTo("menu"))

	events = nil
	sm.Navigate("cards")
	assert.Equal(t, "menu", sm.CurrentName(), "navigation is deferred to the next frame")

	sm.Update(0.016)
	assert.Equal(t, []string{"menu:dispose", "cards:create", "cards:update", "cards:tick"}, events)
	assert.Equal(t, 1, clock.Len(), "only the new scene's listener remains")
}

func TestSceneManagerLastNavigateWins(t *testing.T) {
	var events []string
	sm, _, _ := newManager(&events)
	require.NoError(t, sm.SwitchTo("menu"))

	sm.Navigate("cards")
	sm.Navigate("flame")
	sm.Update(0.016)
	assert.Equal(t, "flame", sm.CurrentName())
}

func TestSceneManagerFactoryError(t *testing.T) {
	var events []string
	sm, clock, _ := newManager(&events)
	require.NoError(t, sm.SwitchTo("menu"))

	err := sm.SwitchTo("broken")
	assert.Error(t, err)
	assert.Nil(t, sm.GetCurrentScene())
	assert.Equal(t, 0, clock.Len())

	// Update without a scene must not panic
	sm.Update(0.016)
}

func TestSceneManagerWithoutFactory(t *testing.T) {
	sm := NewSceneManager(NewFrameClock())
	assert.Error(t, sm.SwitchTo("menu"))
	sm.Update(0.016)
}

func TestSceneManagerResize(t *testing.T) {
	var events []string
	sm, _, created := newManager(&events)

	sm.Resize(800, 600)
	require.NoError(t, sm.SwitchTo("menu"))
	assert.Equal(t, 800, created["menu"].width, "new scenes receive the known size")

	sm.Resize(1024, 768)
	assert.Equal(t, 1024, created["menu"].width)
	assert.Equal(t, 768, created["menu"].height)
}

func TestSceneManagerDraw(t *testing.T) {
	var events []string
	sm, _, _ := newManager(&events)
	require.NoError(t, sm.SwitchTo("menu"))

	events = nil
	screen := ebiten.NewImage(10, 10)
	sm.Draw(screen)
	assert.Equal(t, []string{"menu:draw"}, events)
}
