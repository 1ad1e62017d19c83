package config

// 资源 key，与 data/manifest.yaml 保持一致
const (
	AssetCardBack             = "CARD_BACK"
	AssetTable                = "TABLE"
	AssetBackgroundVideo      = "BACKGROUND_VIDEO"
	AssetSoundClick           = "SOUND_CLICK"
	AssetSoundDeal            = "SOUND_DEAL"
	AssetMusicMenu            = "MUSIC_MENU"
	AssetParticlesFire        = "PARTICLES_FIRE"
	AssetParticlesFireIntense = "PARTICLES_FIRE_INTENSE"
	AssetDialogue             = "DIALOGUE"
)

// CardFaceKeys 卡牌正面贴图，按牌序循环使用
var CardFaceKeys = []string{"CARD_FACE_0", "CARD_FACE_1", "CARD_FACE_2", "CARD_FACE_3"}

// TextureSuffix 视频资源派生贴图 key 的后缀
const TextureSuffix = "#texture"

// VideoTextureKey 返回视频资源的派生贴图 key
func VideoTextureKey(key string) string {
	return key + TextureSuffix
}

// EmojiKey 对话文档引用的表情图片 key
func EmojiKey(name string) string {
	return "emoji:" + name
}

// AvatarKey 对话文档引用的头像图片 key
func AvatarKey(name string) string {
	return "avatar:" + name
}

// ParticleTextureKey 粒子配置引用的贴图 key（路径相对嵌入文件系统根目录）
func ParticleTextureKey(path string) string {
	return "particle:" + path
}
