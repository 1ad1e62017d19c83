package config

import (
	"errors"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"
)

// AssetKind 资源类型
type AssetKind string

const (
	KindTexture    AssetKind = "texture"
	KindAudio      AssetKind = "audio"
	KindVideo      AssetKind = "video"
	KindJSONConfig AssetKind = "json-config"
	KindRemoteJSON AssetKind = "remote-json"
)

// AllKinds 按加载顺序列出所有资源类型
var AllKinds = []AssetKind{KindTexture, KindAudio, KindVideo, KindJSONConfig, KindRemoteJSON}

var (
	// ErrInvalidManifest 清单结构不合法
	ErrInvalidManifest = errors.New("invalid manifest")
	// ErrUnknownKind 清单中出现未知的资源类型
	ErrUnknownKind = errors.New("unknown asset kind")
	// ErrDuplicateKey 清单中出现重复的 key
	ErrDuplicateKey = errors.New("duplicate asset key")
)

// AssetEntry 清单中的一项资源
//
//	- key: CARD_BACK
//	  kind: texture
//	  path: images/cards/card_back.png
//
//	- key: DIALOGUE
//	  kind: remote-json
//	  url: https://example.com/dialogue
type AssetEntry struct {
	Key  string    `yaml:"key"`
	Kind AssetKind `yaml:"kind"`
	Path string    `yaml:"path,omitempty"`
	URL  string    `yaml:"url,omitempty"`
	Loop bool      `yaml:"loop,omitempty"` // 音频：循环播放
}

// Manifest 对应 data/manifest.yaml
type Manifest struct {
	Version  string       `yaml:"version"`
	BasePath string       `yaml:"base_path"`
	Assets   []AssetEntry `yaml:"assets"`
}

// ParseManifest 解析并校验资源清单
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate 校验清单：key 非空且唯一，类型已知，本地资源有 path，远程资源有 url
func (m *Manifest) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil manifest", ErrInvalidManifest)
	}
	seen := make(map[string]struct{}, len(m.Assets))
	for i, a := range m.Assets {
		if a.Key == "" {
			return fmt.Errorf("%w: asset #%d has an empty key", ErrInvalidManifest, i)
		}
		if _, dup := seen[a.Key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, a.Key)
		}
		seen[a.Key] = struct{}{}

		switch a.Kind {
		case KindTexture, KindAudio, KindVideo, KindJSONConfig:
			if a.Path == "" {
				return fmt.Errorf("%w: asset %s has no path", ErrInvalidManifest, a.Key)
			}
		case KindRemoteJSON:
			if a.URL == "" {
				return fmt.Errorf("%w: asset %s has no url", ErrInvalidManifest, a.Key)
			}
		default:
			return fmt.Errorf("%w: %q (asset %s)", ErrUnknownKind, a.Kind, a.Key)
		}
	}
	return nil
}

// ResolvePath 返回本地资源相对于嵌入文件系统根目录的路径
func (m *Manifest) ResolvePath(a AssetEntry) string {
	if m.BasePath == "" {
		return path.Clean(a.Path)
	}
	return path.Join(m.BasePath, a.Path)
}

// ByKind 按类型分组，保持清单中的相对顺序
func (m *Manifest) ByKind() map[AssetKind][]AssetEntry {
	groups := make(map[AssetKind][]AssetEntry)
	for _, a := range m.Assets {
		groups[a.Kind] = append(groups[a.Kind], a)
	}
	return groups
}

// SetURL 替换指定 key 的远程地址，用于 --dialogue-url
func (m *Manifest) SetURL(key, url string) bool {
	for i := range m.Assets {
		if m.Assets[i].Key == key && m.Assets[i].Kind == KindRemoteJSON {
			m.Assets[i].URL = url
			return true
		}
	}
	return false
}

// Entry 按 key 查找资源条目
func (m *Manifest) Entry(key string) (AssetEntry, bool) {
	for _, a := range m.Assets {
		if a.Key == key {
			return a, true
		}
	}
	return AssetEntry{}, false
}
