package game

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 播放加载阶段解码好的音效和背景音乐（从 AssetCache 读取 *AudioClip）
//   - 音量与静音控制
//
// context 为 nil 时所有播放调用都是空操作（无音频设备或测试环境）。
type AudioManager struct {
	context        *audio.Context
	cache          *AssetCache
	musicVolume    float64
	soundVolume    float64
	muted          bool
	soundPlayers   map[string]*audio.Player // 音效播放器缓存（资源 key -> 播放器）
	musicPlayers   map[string]*audio.Player // 背景音乐播放器缓存
	currentMusic   *audio.Player
	currentMusicID string
}

// NewAudioManager 创建新的音频管理器
func NewAudioManager(ctx *audio.Context, cache *AssetCache, musicVolume, soundVolume float64) *AudioManager {
	return &AudioManager{
		context:      ctx,
		cache:        cache,
		musicVolume:  musicVolume,
		soundVolume:  soundVolume,
		soundPlayers: make(map[string]*audio.Player),
		musicPlayers: make(map[string]*audio.Player),
	}
}

// PlaySound 播放音效，单次播放
// 返回是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.context == nil || am.muted {
		return false
	}

	player := am.soundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.soundVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlayMusic 播放背景音乐（循环）
// 同一时间只播放一首，已在播放同一首时不重复开始
func (am *AudioManager) PlayMusic(musicID string) bool {
	if am.context == nil {
		return false
	}
	if am.currentMusicID == musicID && am.currentMusic != nil {
		if !am.muted && !am.currentMusic.IsPlaying() {
			am.currentMusic.Play()
		}
		return true
	}

	am.StopMusic()

	player := am.musicPlayer(musicID)
	if player == nil {
		return false
	}

	player.SetVolume(am.musicVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music %s: %v", musicID, err)
	}
	am.currentMusic = player
	am.currentMusicID = musicID
	if !am.muted {
		player.Play()
	}

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f, muted: %v)", musicID, am.musicVolume, am.muted)
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// CurrentMusic 返回当前背景音乐的 key
func (am *AudioManager) CurrentMusic() string {
	return am.currentMusicID
}

// SetMuted 静音或取消静音，背景音乐随之暂停或恢复
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	if am.currentMusic == nil {
		return
	}
	if muted {
		am.currentMusic.Pause()
	} else {
		am.currentMusic.Play()
	}
}

// ToggleMute 切换静音，返回新的静音状态
func (am *AudioManager) ToggleMute() bool {
	am.SetMuted(!am.muted)
	return am.muted
}

// Muted 是否静音
func (am *AudioManager) Muted() bool {
	return am.muted
}

// SetMusicVolume 设置音乐音量，立即应用到当前音乐
func (am *AudioManager) SetMusicVolume(volume float64) {
	am.musicVolume = volume
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(volume)
	}
}

// SetSoundVolume 设置音效音量，影响后续播放
func (am *AudioManager) SetSoundVolume(volume float64) {
	am.soundVolume = volume
}

// Volumes 返回音乐和音效音量
func (am *AudioManager) Volumes() (music, sound float64) {
	return am.musicVolume, am.soundVolume
}

func (am *AudioManager) clip(id string) *AudioClip {
	clip, ok := Lookup[*AudioClip](am.cache, id)
	if !ok {
		log.Printf("[AudioManager] Warning: Audio not loaded: %s", id)
		return nil
	}
	return clip
}

// soundPlayer 获取或创建音效播放器
func (am *AudioManager) soundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}
	clip := am.clip(soundID)
	if clip == nil {
		return nil
	}
	player := am.context.NewPlayerFromBytes(clip.PCM)
	am.soundPlayers[soundID] = player
	return player
}

// musicPlayer 获取或创建循环播放的音乐播放器
func (am *AudioManager) musicPlayer(musicID string) *audio.Player {
	if player, exists := am.musicPlayers[musicID]; exists {
		return player
	}
	clip := am.clip(musicID)
	if clip == nil {
		return nil
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(clip.PCM), int64(len(clip.PCM)))
	player, err := am.context.NewPlayer(loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create music player %s: %v", musicID, err)
		return nil
	}
	am.musicPlayers[musicID] = player
	return player
}
