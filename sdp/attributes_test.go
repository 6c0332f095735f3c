package sdp_test

import (
	"testing"

	"github.com/safermobility/sdpcodec/sdp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		line  string
		want  sdp.Attribute
		key   string
		value string
		s2    string // non-blank if the line is written differently
	}{
		{"cat:foo.bar", &sdp.Category{Category: "foo.bar"}, "cat", "foo.bar", ""},
		{"keywds:sdp,rfc", &sdp.Keywords{Keywords: "sdp,rfc"}, "keywds", "sdp,rfc", ""},
		{"tool:sdpfmt 1.0", &sdp.Tool{Tool: "sdpfmt 1.0"}, "tool", "sdpfmt 1.0", ""},
		{"type:moderated", &sdp.ConferenceType{Type: sdp.ConferenceModerated}, "type", "moderated", ""},
		{"charset:ISO-8859-1", &sdp.Charset{Charset: "ISO-8859-1"}, "charset", "ISO-8859-1", ""},
		{"sdplang:en", &sdp.SDPLanguage{Language: "en"}, "sdplang", "en", ""},
		{"lang:de", &sdp.MediaLanguage{Language: "de"}, "lang", "de", ""},
		{"ptime:20", &sdp.PacketTime{Duration: 20}, "ptime", "20", ""},
		{"maxptime:150", &sdp.MaxPacketTime{Duration: 150}, "maxptime", "150", ""},
		{"ptime:22.5", &sdp.PacketTime{Duration: 23}, "ptime", "23", "ptime:23"},
		{"ptime:19.4", &sdp.PacketTime{Duration: 19}, "ptime", "19", "ptime:19"},
		{"maxptime:40.0", &sdp.MaxPacketTime{Duration: 40}, "maxptime", "40", "maxptime:40"},
		{"sendrecv", &sdp.Direction{Direction: sdp.SendRecv}, "sendrecv", "", ""},
		{"sendonly", &sdp.Direction{Direction: sdp.SendOnly}, "sendonly", "", ""},
		{"recvonly", &sdp.Direction{Direction: sdp.RecvOnly}, "recvonly", "", ""},
		{"inactive", &sdp.Direction{Direction: sdp.Inactive}, "inactive", "", ""},
		{"orient:seascape", &sdp.OrientationAttr{Orientation: sdp.Seascape}, "orient", "seascape", ""},
		{"orient:Landscape", &sdp.OrientationAttr{Orientation: sdp.Landscape}, "orient", "landscape", "orient:landscape"},
		{"framerate:24.000", &sdp.Framerate{Framerate: 24}, "framerate", "24", "framerate:24"},
		{"framerate:23.976", &sdp.Framerate{Framerate: 23.976}, "framerate", "23.976", ""},
		{"framerate:30.5", &sdp.Framerate{Framerate: 30.5}, "framerate", "30.5", ""},
		{"quality:5.0", &sdp.Quality{Quality: 5}, "quality", "5", "quality:5"},
		{"quality:4.5", &sdp.Quality{Quality: 5}, "quality", "5", "quality:5"},
		{"quality:10", &sdp.Quality{Quality: 10}, "quality", "10", ""},
		{"quality:7.6", &sdp.Quality{Quality: 8}, "quality", "8", "quality:8"},
		{"fmtp:101 0-16", &sdp.FormatParams{PayloadType: 101, Params: "0-16"}, "fmtp", "101 0-16", ""},
		{"fmtp:96", &sdp.FormatParams{PayloadType: 96}, "fmtp", "96", ""},
		{
			"fmtp:96 profile-level-id=42e01f; packetization-mode=1",
			&sdp.FormatParams{PayloadType: 96, Params: "profile-level-id=42e01f; packetization-mode=1"},
			"fmtp", "96 profile-level-id=42e01f; packetization-mode=1", "",
		},
		{
			"rtpmap:0 PCMU/8000",
			&sdp.RtpMap{PayloadType: 0, EncodingName: "PCMU", ClockRate: 8000, Channels: 1},
			"rtpmap", "0 PCMU/8000", "",
		},
		{
			"rtpmap:98 L16/16000/2",
			&sdp.RtpMap{PayloadType: 98, EncodingName: "L16", ClockRate: 16000, Channels: 2},
			"rtpmap", "98 L16/16000/2", "",
		},
		{
			"rtpmap:97 iLBC/8000/1",
			&sdp.RtpMap{PayloadType: 97, EncodingName: "iLBC", ClockRate: 8000, Channels: 1},
			"rtpmap", "97 iLBC/8000", "rtpmap:97 iLBC/8000",
		},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			attr, err := sdp.ParseAttribute(test.line)
			require.NoError(t, err)
			assert.Equal(t, test.want, attr)
			assert.Equal(t, test.key, attr.Key())
			assert.Equal(t, test.value, attr.Value())

			want := test.line
			if test.s2 != "" {
				want = test.s2
			}
			assert.Equal(t, want, attr.SDPLine())
		})
	}
}

func TestParseAttributeErrors(t *testing.T) {
	tests := []struct {
		line string
		err  error
	}{
		{"x-unregistered:1", sdp.ErrUnknownAttribute},
		{"SENDRECV", sdp.ErrUnknownAttribute},
		{"ptime:-20", sdp.ErrOutOfRange},
		{"ptime:twenty", sdp.ErrInvalidNumber},
		{"ptime:NaN", sdp.ErrInvalidNumber},
		{"maxptime:1e30", sdp.ErrOutOfRange},
		{"maxptime:", sdp.ErrInvalidNumber},
		{"orient:upside-down", sdp.ErrInvalidValue},
		{"framerate:fast", sdp.ErrInvalidValue},
		{"framerate:-1", sdp.ErrInvalidValue},
		{"quality:high", sdp.ErrInvalidNumber},
		{"quality:4294967296", sdp.ErrOutOfRange},
		{"quality:-1", sdp.ErrOutOfRange},
		{"fmtp:", sdp.ErrInvalidValue},
		{"fmtp:200 x=1", sdp.ErrOutOfRange},
		{"rtpmap:98", sdp.ErrInvalidValue},
		{"rtpmap:98 L16", sdp.ErrInvalidValue},
		{"rtpmap:128 L16/8000", sdp.ErrOutOfRange},
		{"rtpmap:-1 L16/8000", sdp.ErrOutOfRange},
		{"rtpmap:x L16/8000", sdp.ErrInvalidNumber},
		{"rtpmap:98 L16/fast", sdp.ErrInvalidNumber},
		{"rtpmap:98 L16/8000/two", sdp.ErrInvalidNumber},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			attr, err := sdp.ParseAttribute(test.line)
			assert.Nil(t, attr)
			assert.ErrorIs(t, err, test.err)
		})
	}
}

func TestFramerateValue(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{29.97, "29.97"},
		{24, "24"},
		{23.976, "23.976"},
		{30.5, "30.5"},
		{0.1234, "0.123"},
		{0, "0"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, (&sdp.Framerate{Framerate: test.rate}).Value())
	}
}

func TestGenericAttributeLine(t *testing.T) {
	assert.Equal(t, "ice-lite", (&sdp.GenericAttribute{Name: "ice-lite", Property: true}).SDPLine())
	assert.Equal(t, "mid:0", (&sdp.GenericAttribute{Name: "mid", Val: "0"}).SDPLine())
	assert.Equal(t, "mid:", (&sdp.GenericAttribute{Name: "mid"}).SDPLine())
	assert.ErrorIs(t, (&sdp.GenericAttribute{}).Validate(), sdp.ErrFormat)
}

func TestAttributeValidate(t *testing.T) {
	assert.NoError(t, (&sdp.Direction{Direction: sdp.Inactive}).Validate())
	assert.ErrorIs(t, (&sdp.Direction{Direction: "Inactive"}).Validate(), sdp.ErrFormat)
	assert.ErrorIs(t, (&sdp.RtpMap{PayloadType: 96, ClockRate: 8000}).Validate(), sdp.ErrFormat)
	assert.ErrorIs(t, (&sdp.RtpMap{PayloadType: 200, EncodingName: "x", ClockRate: 8000}).Validate(), sdp.ErrFormat)
	assert.ErrorIs(t, (&sdp.FormatParams{PayloadType: 128}).Validate(), sdp.ErrFormat)
	assert.ErrorIs(t, (&sdp.Framerate{Framerate: -1}).Validate(), sdp.ErrFormat)
}

func TestStaticRtpMap(t *testing.T) {
	pcma, ok := sdp.StaticRtpMap(8)
	require.True(t, ok)
	assert.Equal(t, &sdp.RtpMap{PayloadType: 8, EncodingName: "PCMA", ClockRate: 8000, Channels: 1}, pcma)

	l16, ok := sdp.StaticRtpMap(10)
	require.True(t, ok)
	assert.Equal(t, uint32(2), l16.Channels)

	// callers get a copy
	pcma.EncodingName = "changed"
	again, _ := sdp.StaticRtpMap(8)
	assert.Equal(t, "PCMA", again.EncodingName)

	_, ok = sdp.StaticRtpMap(96)
	assert.False(t, ok)

	assert.False(t, sdp.IsDynamicPayloadType(95))
	assert.True(t, sdp.IsDynamicPayloadType(96))
	assert.True(t, sdp.IsDynamicPayloadType(127))
	assert.False(t, sdp.IsDynamicPayloadType(128))
}
