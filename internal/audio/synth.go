package audio

import (
	"math"

	"geofighter/internal/game"
)

// Generate renders cue as interleaved stereo float32 LE frames. seed picks
// the noise variant; the same seed always gives the same buffer.
func Generate(cue game.SoundCue, seed uint64) []byte {
	switch cue {
	case game.CueSpawnGood:
		return genSpawnGood()
	case game.CueSpawnBad:
		return genSpawnBad()
	case game.CueExplodeGood:
		return genExplodeGood(seed)
	case game.CueExplodeBad:
		return genExplodeBad(seed)
	case game.CueGameOver:
		return genGameOver()
	}
	return nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// genSpawnGood: rising FM chirp as a shape launches.
func genSpawnGood() []byte {
	n := int(0.14 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.4, 0.2, 0.3)
		freq := 300 + 900*p*p
		s := fm(t, freq, 2.0, 2.5*env) * env * 0.4
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.05
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genSpawnBad: low detuned growl that sinks as it rises.
func genSpawnBad() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.03, 0.3, 0.5, 0.35)
		freq := 140 - 60*p
		s := fm(t, freq, 1.01, 4.0*env) * env * 0.45
		s += fm(t, freq*1.5, 0.5, 1.2) * env * 0.15
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genExplodeGood: bright bell pop with a short sparkle of noise.
func genExplodeGood(seed uint64) []byte {
	freqs := []float64{783.99, 1046.5} // G5 C6
	noteLen := int(0.05 * SampleRate)
	total := len(freqs)*noteLen + int(0.16*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			mix[start+j] += fm(t, freq, 2.756, 5.0*env) * env * 0.34
		}
	}
	hp := 0.0
	for i := range mix {
		p := float64(i) / float64(total)
		raw := lcg(&seed)
		hp = hp*0.4 + raw*0.6
		mix[i] += (raw - hp) * math.Exp(-p*18) * 0.25
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genExplodeBad: sub boom, crack and bandpassed noise body.
func genExplodeBad(seed uint64) []byte {
	const dur = 0.5
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	lp1, lp2 := 0.0, 0.0
	rumLP := 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subFreq := 120 * math.Pow(24.0/120, p*2.3)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*5) * 0.6

		crack := 0.0
		if p < 0.028 {
			crack = lcg(&seed) * (1 - p/0.028) * 0.7
		}

		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*5) * 0.38

		rumLP = rumLP*0.95 + lcg(&seed)*0.05
		rumble := rumLP * math.Exp(-p*2.2) * 0.16

		putStereoF32(buf, i, softSat((sub+crack+body+rumble)*0.86))
	}
	return buf
}

// genGameOver: slow descending minor chord, staggered.
func genGameOver() []byte {
	const dur = 0.9
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.16}, // C4
		{220.00, 0.32}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
