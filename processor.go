package streamstats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jiyeyuran/streamstats/h264"
)

// bytesPrecision is the number of fractional digits of the received data stat.
const bytesPrecision = 2

// StatsProcessor turns telemetry into display stats. It holds no state; the
// returned stats are in the fixed emission order of their category.
type StatsProcessor struct {
	// Sections gates the session stats category.
	Sections SectionConfig

	// Numbers groups the digits of integer stats. Default DefaultLocale.
	Numbers NumberFormatter

	// CodecProfiles appends the H264 profile and level to the video codec.
	CodecProfiles bool
}

// Connection derives the connection and media stats of one snapshot. It
// returns nil when the session stats section is disabled.
func (p StatsProcessor) Connection(stats *AggregatedStats) []Stat {
	if stats == nil || !p.Sections.IsEnabled(SectionSessionStats) {
		return nil
	}

	numbers := p.numbers()
	video, audio := stats.InboundVideo, stats.InboundAudio
	out := make([]Stat, 0, 14)

	if n, ok := video.BytesReceived.Get(); ok {
		out = append(out, newStat(StatInboundData, FormatBytes(n, bytesPrecision)))
	}

	packetsLost := ChromeOnly
	if n, ok := video.PacketsLost.Get(); ok {
		packetsLost = numbers.FormatInteger(n)
	}
	out = append(out, newStat(StatPacketsLost, packetsLost))

	if v, ok := truthy(video.Bitrate); ok {
		out = append(out, newStat(StatVideoBitrate, formatNumber(v)))
	}
	if v, ok := truthy(audio.Bitrate); ok {
		out = append(out, newStat(StatAudioBitrate, formatNumber(v)))
	}

	resolution := ChromeOnly
	width, hasWidth := video.FrameWidth.Get()
	height, hasHeight := video.FrameHeight.Get()
	if hasWidth && hasHeight && width != 0 && height != 0 {
		resolution = fmt.Sprintf("%dx%d", width, height)
	}
	out = append(out, newStat(StatVideoResolution, resolution))

	framesDecoded := ChromeOnly
	if n, ok := video.FramesDecoded.Get(); ok {
		framesDecoded = numbers.FormatInteger(int64(n))
	}
	out = append(out, newStat(StatFramesDecoded, framesDecoded))

	if v, ok := truthy(video.FramesPerSecond); ok {
		out = append(out, newStat(StatFramerate, formatNumber(v)))
	}

	// Passed through as is: an unknown count renders empty rather than as a
	// sentinel.
	out = append(out, newStat(StatFramesDropped, video.FramesDropped.String()))

	if id, ok := video.CodecId.Get(); ok && id != "" {
		out = append(out, newStat(StatVideoCodec, p.codecName(stats.Codecs, id)))
	}
	if id, ok := audio.CodecId.Get(); ok && id != "" {
		out = append(out, newStat(StatAudioCodec, p.codecName(stats.Codecs, id)))
	}

	pair := stats.ActiveCandidatePair()
	if pair == nil {
		pair = &CandidatePairStats{}
	}
	rtt := CantCalculate
	if seconds, ok := pair.CurrentRoundTripTime.Get(); ok && isFinite(seconds) {
		rtt = strconv.FormatInt(RoundToMillis(seconds), 10)
	}
	out = append(out, newStat(StatRoundTripTime, rtt))

	out = append(out,
		newStat(StatDuration, stats.Session.RunTime),
		newStat(StatControlsInput, stats.Session.ControlsStreamInput),
	)

	if qp, ok := stats.Session.VideoEncoderAvgQP.Get(); ok && !math.IsNaN(qp) {
		out = append(out, newStat(StatQuantizationParameter, formatNumber(qp)))
	}

	return out
}

// Latency derives the latency test stats. Readings that are missing or not
// positive are skipped so the previous value stays on display.
func (p StatsProcessor) Latency(info *LatencyBreakdown) []Stat {
	if info == nil || !p.Sections.IsEnabled(SectionSessionStats) {
		return nil
	}

	readings := []struct {
		id string
		ms Optional[float64]
	}{
		{StatSenderLatency, info.SenderLatencyMs},
		{StatAssemblyDelay, info.AverageAssemblyDelayMs},
		{StatDecodeDelay, info.AverageDecodeLatencyMs},
		{StatJitterBufferDelay, info.AverageJitterBufferDelayMs},
		{StatProcessingDelay, info.AverageProcessingDelayMs},
		{StatEndToEndLatency, info.AverageE2ELatencyMs},
	}

	var out []Stat

	for _, reading := range readings {
		if ms, ok := reading.ms.Get(); ok && ms > 0 {
			out = append(out, newStat(reading.id, strconv.FormatInt(CeilMillis(ms), 10)))
		}
	}

	return out
}

// Players returns the participant count stat. It is not gated.
func (p StatsProcessor) Players(count uint32) []Stat {
	return []Stat{newStat(StatPlayers, strconv.FormatUint(uint64(count), 10))}
}

func (p StatsProcessor) numbers() NumberFormatter {
	if p.Numbers == nil {
		return NewNumberFormatter(DefaultLocale)
	}
	return p.Numbers
}

// codecName returns the mime type of the codec without its media type prefix.
// An id missing from the table is shown as is.
func (p StatsProcessor) codecName(codecs map[string]CodecStats, id string) string {
	codec, ok := codecs[id]
	if !ok {
		return id
	}

	name := strings.TrimPrefix(strings.TrimPrefix(codec.MimeType, "video/"), "audio/")

	if p.CodecProfiles && strings.EqualFold(name, "H264") && codec.SdpFmtpLine != "" {
		if profile := h264.ProfileLevelIdFromFmtp(codec.SdpFmtpLine); profile != nil {
			if desc := profile.Describe(); desc != "" {
				name += " (" + desc + ")"
			}
		}
	}

	return name
}

// truthy returns the value if it is set, non-zero and not NaN.
func truthy(o Optional[float64]) (float64, bool) {
	v, ok := o.Get()
	if !ok || v == 0 || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
