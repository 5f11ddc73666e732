package audio

import (
	"github.com/gopxl/beep"
)

// BytesPerFrame 16 位立体声每帧字节数
const BytesPerFrame = 4

// RenderPCM 把音频流渲染成 16 位有符号小端立体声 PCM
// 这是 Ebitengine 音频上下文接受的格式；超出 [-1, 1] 的采样会被削顶
//
// 参数:
//   - s: 有限长的音频流
//   - maxFrames: 最多渲染的帧数，防止无限长的流
func RenderPCM(s beep.Streamer, maxFrames int) []byte {
	buf := make([][2]float64, 512)
	out := make([]byte, 0, maxFrames*BytesPerFrame)

	for frames := 0; frames < maxFrames; {
		chunk := buf
		if left := maxFrames - frames; left < len(chunk) {
			chunk = chunk[:left]
		}
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = appendSample(out, chunk[i][0])
			out = appendSample(out, chunk[i][1])
		}
		frames += n
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func appendSample(out []byte, v float64) []byte {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	pcm := int16(v * 32767)
	// 小端序
	return append(out, byte(pcm), byte(pcm>>8))
}
