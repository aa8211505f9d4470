package streamstats

// InboundVideoStats is the inbound-rtp report of the video track.
type InboundVideoStats struct {
	BytesReceived Optional[uint64] `json:"bytesReceived"`
	PacketsLost   Optional[int64]  `json:"packetsLost"`
	// Bitrate is in kbps.
	Bitrate         Optional[float64] `json:"bitrate"`
	FrameWidth      Optional[int64]   `json:"frameWidth"`
	FrameHeight     Optional[int64]   `json:"frameHeight"`
	FramesDecoded   Optional[uint64]  `json:"framesDecoded"`
	FramesPerSecond Optional[float64] `json:"framesPerSecond"`
	FramesDropped   Optional[uint64]  `json:"framesDropped"`
	CodecId         Optional[string]  `json:"codecId"`
}

// InboundAudioStats is the inbound-rtp report of the audio track.
type InboundAudioStats struct {
	BytesReceived Optional[uint64] `json:"bytesReceived"`
	PacketsLost   Optional[int64]  `json:"packetsLost"`
	// Bitrate is in kbps.
	Bitrate Optional[float64] `json:"bitrate"`
	CodecId Optional[string]  `json:"codecId"`
}

// CandidatePairStats describes one ICE candidate pair.
type CandidatePairStats struct {
	Id        string `json:"id"`
	State     string `json:"state,omitempty"`
	Nominated bool   `json:"nominated,omitempty"`
	// Selected marks the pair the transport currently sends on.
	Selected bool `json:"selected,omitempty"`
	// CurrentRoundTripTime is in seconds.
	CurrentRoundTripTime Optional[float64] `json:"currentRoundTripTime"`
	BytesSent            Optional[uint64]  `json:"bytesSent"`
	BytesReceived        Optional[uint64]  `json:"bytesReceived"`
}

// CodecStats is a codec report referenced by codecId from the inbound stats.
type CodecStats struct {
	Id          string `json:"id"`
	MimeType    string `json:"mimeType"`
	SdpFmtpLine string `json:"sdpFmtpLine,omitempty"`
}

// SessionStats carries values computed by the session owner rather than the
// peer connection.
type SessionStats struct {
	// RunTime is the preformatted session duration.
	RunTime string `json:"runTime"`
	// ControlsStreamInput is the preformatted input control mode.
	ControlsStreamInput string `json:"controlsStreamInput"`
	// VideoEncoderAvgQP is the average encoder quantization parameter
	// reported by the streamer.
	VideoEncoderAvgQP Optional[float64] `json:"videoEncoderAvgQP"`
}

// AggregatedStats is a point-in-time bundle of the receive side statistics.
type AggregatedStats struct {
	InboundVideo   InboundVideoStats     `json:"inboundVideoStats"`
	InboundAudio   InboundAudioStats     `json:"inboundAudioStats"`
	CandidatePairs []CandidatePairStats  `json:"candidatePairs,omitempty"`
	Codecs         map[string]CodecStats `json:"codecs,omitempty"`
	Session        SessionStats          `json:"sessionStats"`
}

// ActiveCandidatePair returns the selected candidate pair, falling back to a
// nominated pair in state "succeeded". It returns nil if there is none.
func (s *AggregatedStats) ActiveCandidatePair() *CandidatePairStats {
	for i := range s.CandidatePairs {
		if s.CandidatePairs[i].Selected {
			return &s.CandidatePairs[i]
		}
	}
	for i := range s.CandidatePairs {
		if pair := &s.CandidatePairs[i]; pair.Nominated && pair.State == "succeeded" {
			return pair
		}
	}
	return nil
}

// LatencyBreakdown is the result of a latency test. Every field is in
// milliseconds and optional.
type LatencyBreakdown struct {
	SenderLatencyMs            Optional[float64] `json:"senderLatencyMs"`
	AverageAssemblyDelayMs     Optional[float64] `json:"averageAssemblyDelayMs"`
	AverageDecodeLatencyMs     Optional[float64] `json:"averageDecodeLatencyMs"`
	AverageJitterBufferDelayMs Optional[float64] `json:"averageJitterBufferDelayMs"`
	AverageProcessingDelayMs   Optional[float64] `json:"averageProcessingDelayMs"`
	AverageE2ELatencyMs        Optional[float64] `json:"averageE2ELatency"`
}
