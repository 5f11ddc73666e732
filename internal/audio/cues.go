// Package audio 合成拖放过程中的提示音
//
// 提示音全部在运行时用振荡器生成，不依赖音频资源文件。
// 同一组合成流可以交给 beep 扬声器（终端前端）播放，
// 也可以渲染成 PCM 字节交给 Ebitengine 的音频上下文（图形前端）播放。
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate 所有提示音使用的采样率
const SampleRate = beep.SampleRate(48000)

// Cue 提示音类型
type Cue int

const (
	// CuePickUp 拿起物品
	CuePickUp Cue = iota
	// CueCommit 放置成功
	CueCommit
	// CueReject 放置被拒绝，物品飞回
	CueReject
)

func (c Cue) String() string {
	switch c {
	case CuePickUp:
		return "pickup"
	case CueCommit:
		return "commit"
	case CueReject:
		return "reject"
	}
	return "unknown"
}

// 提示音参数
const (
	pickUpDuration = 60 * time.Millisecond
	pickUpFreq     = 660.0

	commitNoteDuration = 70 * time.Millisecond
	commitLowFreq      = 523.25 // C5
	commitHighFreq     = 783.99 // G5

	rejectDuration = 150 * time.Millisecond
	rejectFreq     = 120.0

	cueAttack  = 5 * time.Millisecond
	cueRelease = 40 * time.Millisecond
	cueVolume  = 0.4
)

// Synthesize 生成提示音的音频流
// 返回的流有固定长度，播放完毕后结束
func Synthesize(cue Cue, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CuePickUp:
		s = tone(pickUpFreq, pickUpDuration, rate)
	case CueCommit:
		s = beep.Seq(
			tone(commitLowFreq, commitNoteDuration, rate),
			tone(commitHighFreq, commitNoteDuration, rate),
		)
	case CueReject:
		s = newEnvelope(beep.Take(rate.N(rejectDuration), NewBuzzGenerator(rate, rejectFreq)), rejectDuration, rate)
	default:
		s = beep.Silence(0)
	}
	return volume(s, cueVolume)
}

// Duration 返回提示音的时长
func Duration(cue Cue) time.Duration {
	switch cue {
	case CuePickUp:
		return pickUpDuration
	case CueCommit:
		return 2 * commitNoteDuration
	case CueReject:
		return rejectDuration
	}
	return 0
}

// tone 一个带包络的正弦音
func tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		// 频率超出采样率一半时退化为静音
		return beep.Silence(rate.N(d))
	}
	return newEnvelope(beep.Take(rate.N(d), sine), d, rate)
}

func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// BuzzGenerator 锯齿波蜂鸣
type BuzzGenerator struct {
	rate  beep.SampleRate
	freq  float64
	phase float64
}

// NewBuzzGenerator 创建锯齿波发生器，输出无限长
func NewBuzzGenerator(rate beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{rate: rate, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (int, bool) {
	step := g.freq / float64(g.rate)
	for i := range samples {
		v := 2*g.phase - 1
		samples[i][0] = v
		samples[i][1] = v
		g.phase += step
		g.phase -= math.Floor(g.phase)
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error { return nil }

// envelope 线性起音与释音，避免提示音首尾的爆音
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(cueAttack),
		release:  rate.N(cueRelease),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining < e.release {
			gain = math.Max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
