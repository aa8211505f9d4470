package streamstats

// Connection stat ids.
const (
	StatInboundData           = "InboundDataStat"
	StatPacketsLost           = "PacketsLostStat"
	StatVideoBitrate          = "VideoBitrateStat"
	StatAudioBitrate          = "AudioBitrateStat"
	StatVideoResolution       = "VideoResStat"
	StatFramesDecoded         = "FramesDecodedStat"
	StatFramerate             = "FramerateStat"
	StatFramesDropped         = "FramesDroppedStat"
	StatVideoCodec            = "VideoCodecStat"
	StatAudioCodec            = "AudioCodecStat"
	StatRoundTripTime         = "RTTStat"
	StatDuration              = "DurationStat"
	StatControlsInput         = "ControlsInputStat"
	StatQuantizationParameter = "QPStat"
)

// Latency test stat ids.
const (
	StatSenderLatency     = "SenderSideLatency"
	StatAssemblyDelay     = "AvgAssemblyDelay"
	StatDecodeDelay       = "AvgDecodeDelay"
	StatJitterBufferDelay = "AvgJitterBufferDelay"
	StatProcessingDelay   = "AvgProcessingDelay"
	StatEndToEndLatency   = "AvgE2ELatency"
	StatPlayers           = "PlayersStat"
)

// Display sentinels for values the browser cannot provide.
const (
	ChromeOnly    = "Chrome only"
	CantCalculate = "Can't calculate"
)

var statTitles = map[string]string{
	StatInboundData:           "Received",
	StatPacketsLost:           "Packets Lost",
	StatVideoBitrate:          "Video Bitrate (kbps)",
	StatAudioBitrate:          "Audio Bitrate (kbps)",
	StatVideoResolution:       "Video resolution",
	StatFramesDecoded:         "Frames Decoded",
	StatFramerate:             "Framerate",
	StatFramesDropped:         "Frames dropped",
	StatVideoCodec:            "Video codec",
	StatAudioCodec:            "Audio codec",
	StatRoundTripTime:         "Net RTT (ms)",
	StatDuration:              "Duration",
	StatControlsInput:         "Controls stream input",
	StatQuantizationParameter: "Video quantization parameter",

	StatSenderLatency:     "Sender latency (ms)",
	StatAssemblyDelay:     "Assembly delay (ms)",
	StatDecodeDelay:       "Decode time (ms)",
	StatJitterBufferDelay: "Jitter buffer (ms)",
	StatProcessingDelay:   "Processing delay (ms)",
	StatEndToEndLatency:   "Total latency (ms)",

	StatPlayers: "Players",
}

// StatTitle returns the display label of a known stat id.
func StatTitle(id string) string {
	return statTitles[id]
}

func newStat(id, value string) Stat {
	return Stat{Id: id, Title: statTitles[id], Value: value}
}
