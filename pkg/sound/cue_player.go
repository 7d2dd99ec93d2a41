// Package sound 为 Cue 播放合成音效。
//
// 音效在创建时按配置预先合成为 16 位立体声 PCM，Cue 触发时只做播放。
package sound

import (
	"encoding/binary"
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/brandintro/pkg/config"
	"github.com/decker502/brandintro/pkg/settings"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// defaultGain 配置未给出增益时使用
const defaultGain = 0.5

// attack 起音时长（秒），避免爆音
const attack = 0.005

// SynthesizeTone 合成一段正弦音：短起音后指数衰减。
// 输出为 16 位小端立体声 PCM，长度 = 采样数 × 4 字节。
//
// 参数：
//   - tone: 频率、时长、增益
//   - sampleRate: 采样率
func SynthesizeTone(tone config.ToneConfig, sampleRate int) []byte {
	if tone.Freq <= 0 || tone.Duration <= 0 || sampleRate <= 0 {
		return nil
	}
	gain := tone.Gain
	if gain == 0 {
		gain = defaultGain
	}
	n := int(tone.Duration * float64(sampleRate))
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-5 * t / tone.Duration)
		if t < attack {
			env *= t / attack
		}
		v := int16(gain * env * math.Sin(2*math.Pi*tone.Freq*t) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// CuePlayer 把 Cue 名称映射到合成音并播放
type CuePlayer struct {
	mu       sync.Mutex
	ctx      *audio.Context           // 可为 nil（降级模式，不发声）
	settings *settings.Manager        // 可为 nil（始终启用，音量 1.0）
	pcm      map[string][]byte        // Cue 名称 -> PCM
	players  map[string]*audio.Player // 播放器缓存
	played   map[string]int           // 播放计数
}

// NewCuePlayer 创建 Cue 音效播放器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - sm: 设置管理器，可为 nil
//   - tones: Cue 名称 -> 合成音配置
func NewCuePlayer(ctx *audio.Context, sm *settings.Manager, tones map[string]config.ToneConfig) *CuePlayer {
	p := &CuePlayer{
		ctx:      ctx,
		settings: sm,
		pcm:      make(map[string][]byte, len(tones)),
		players:  make(map[string]*audio.Player),
		played:   make(map[string]int),
	}
	for name, tone := range tones {
		if data := SynthesizeTone(tone, SampleRate); data != nil {
			p.pcm[name] = data
		}
	}
	if ctx == nil {
		log.Printf("[CuePlayer] Warning: no audio context, cue sounds are muted")
	}
	return p
}

// Has 是否为该 Cue 配置了音效
func (p *CuePlayer) Has(name string) bool {
	_, ok := p.pcm[name]
	return ok
}

// OnCue 可直接作为 Cue 回调使用
func (p *CuePlayer) OnCue(name string, offset float64) {
	p.Play(name)
}

// Play 播放 Cue 音效
//
// 返回：
//   - bool: 是否真正发声（未配置、已禁用或无音频上下文时为 false）
func (p *CuePlayer) Play(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, ok := p.pcm[name]
	if !ok {
		return false
	}
	volume := 1.0
	if p.settings != nil {
		s := p.settings.Settings()
		if !s.SoundEnabled {
			return false
		}
		volume = s.SoundVolume
	}
	p.played[name]++
	if p.ctx == nil {
		return false
	}

	player, ok := p.players[name]
	if !ok {
		player = p.ctx.NewPlayerFromBytes(data)
		p.players[name] = player
	}
	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[CuePlayer] Warning: Failed to rewind %s: %v", name, err)
	}
	player.Play()
	return true
}

// Played 某 Cue 被请求播放的次数（含静音模式）
func (p *CuePlayer) Played(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[name]
}
