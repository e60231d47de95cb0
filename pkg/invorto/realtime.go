package invorto

import (
	"net/url"
	"path"
	"strconv"
)

// RealtimeOptions configures a live audio/event stream connection. The
// stream itself is established by a separate realtime collaborator; this
// package only shapes its entry point.
type RealtimeOptions struct {
	AudioFormat         *string `json:"audio_format,omitempty"`
	SampleRate          *int    `json:"sample_rate,omitempty"`
	Channels            *int    `json:"channels,omitempty"`
	EnableRecording     *bool   `json:"enable_recording,omitempty"`
	EnableTranscription *bool   `json:"enable_transcription,omitempty"`
}

// NewRealtimeOptions returns RealtimeOptions with platform defaults: 16 kHz
// single-channel linear16 audio with recording and transcription on.
func NewRealtimeOptions() RealtimeOptions {
	return RealtimeOptions{
		AudioFormat:         ptr("linear16"),
		SampleRate:          ptr(16000),
		Channels:            ptr(1),
		EnableRecording:     ptr(true),
		EnableTranscription: ptr(true),
	}
}

// RealtimeURL derives the websocket endpoint for a call's realtime stream
// from the client's base endpoint. Pure; no connection is opened.
func (c *Client) RealtimeURL(callID string, opts RealtimeOptions) string {
	u := *c.base
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = path.Join(c.base.Path, "/v1/realtime/", callID)

	q := url.Values{}
	if opts.AudioFormat != nil {
		q.Set("audio_format", *opts.AudioFormat)
	}
	if opts.SampleRate != nil {
		q.Set("sample_rate", strconv.Itoa(*opts.SampleRate))
	}
	if opts.Channels != nil {
		q.Set("channels", strconv.Itoa(*opts.Channels))
	}
	if opts.EnableRecording != nil {
		q.Set("recording", strconv.FormatBool(*opts.EnableRecording))
	}
	if opts.EnableTranscription != nil {
		q.Set("transcription", strconv.FormatBool(*opts.EnableTranscription))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
