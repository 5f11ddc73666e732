package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Player 播放提示音
type Player interface {
	Play(cue Cue)
	Close()
}

// Nop 不发声的播放器
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) Close()   {}

// EbitenPlayer 通过 Ebitengine 音频上下文播放提示音
// 每种提示音只渲染一次，之后复用 PCM 字节
type EbitenPlayer struct {
	ctx   *ebitenaudio.Context
	cache map[Cue][]byte
}

// NewEbitenPlayer 创建播放器
// 参数:
//   - ctx: 采样率必须为 SampleRate 的音频上下文
func NewEbitenPlayer(ctx *ebitenaudio.Context) *EbitenPlayer {
	if ctx.SampleRate() != int(SampleRate) {
		log.Printf("[Audio] Warning: audio context sample rate %d differs from %d, cues will be pitched", ctx.SampleRate(), int(SampleRate))
	}
	return &EbitenPlayer{ctx: ctx, cache: make(map[Cue][]byte)}
}

// Play 播放提示音
func (p *EbitenPlayer) Play(cue Cue) {
	pcm, ok := p.cache[cue]
	if !ok {
		pcm = RenderPCM(Synthesize(cue, SampleRate), SampleRate.N(Duration(cue)+cueRelease))
		p.cache[cue] = pcm
	}
	if len(pcm) == 0 {
		return
	}
	player := p.ctx.NewPlayerFromBytes(pcm)
	player.Play()
}

// Close 释放缓存
func (p *EbitenPlayer) Close() {
	p.cache = make(map[Cue][]byte)
}

// SpeakerPlayer 通过 beep 扬声器播放提示音
type SpeakerPlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// NewSpeakerPlayer 初始化扬声器
// 没有可用音频设备时返回错误，调用方可以退回 Nop
func NewSpeakerPlayer() (*SpeakerPlayer, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	p := &SpeakerPlayer{mixer: &beep.Mixer{}}
	speaker.Play(p.mixer)
	return p, nil
}

// Play 把提示音加入混音器
func (p *SpeakerPlayer) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	s := Synthesize(cue, SampleRate)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close 停止所有提示音并关闭扬声器
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.closed = true
}
