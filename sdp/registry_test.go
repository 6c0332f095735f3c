package sdp_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/safermobility/sdpcodec/sdp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type crypto struct {
	tag   string
	suite string
	key   string
}

func (a *crypto) Key() string     { return "crypto" }
func (a *crypto) Value() string   { return a.tag + " " + a.suite + " " + a.key }
func (a *crypto) SDPLine() string { return a.Key() + ":" + a.Value() }

func parseCrypto(key, value string) (sdp.Attribute, error) {
	f := strings.Fields(value)
	if len(f) != 3 {
		return nil, errors.New("crypto needs three fields")
	}
	return &crypto{tag: f[0], suite: f[1], key: f[2]}, nil
}

func TestRegistryExtension(t *testing.T) {
	reg := sdp.NewRegistry()
	reg.Register("crypto", parseCrypto)

	doc := "v=0\r\n" +
		"o=- 1 1 IN IP4 1.2.3.4\r\n" +
		"s=-\r\n" +
		"t=0 0\r\n" +
		"m=audio 4000 RTP/SAVP 0\r\n" +
		"a=crypto:1 AES_CM_128_HMAC_SHA1_80 inline:WVNfX19zZW1jdGwgKCkgewkyMjA7fQp9CnVubGVz\r\n"

	parsed, err := sdp.Parse(doc, sdp.WithRegistry(reg))
	require.NoError(t, err)
	require.Len(t, parsed.Streams[0].Attributes, 1)
	assert.Equal(t, &crypto{
		tag:   "1",
		suite: "AES_CM_128_HMAC_SHA1_80",
		key:   "inline:WVNfX19zZW1jdGwgKCkgewkyMjA7fQp9CnVubGVz",
	}, parsed.Streams[0].Attributes[0])

	out, err := parsed.Format()
	require.NoError(t, err)
	assert.Equal(t, doc, out)

	// the default registry is untouched
	parsed, err = sdp.Parse(doc)
	require.NoError(t, err)
	assert.IsType(t, &sdp.GenericAttribute{}, parsed.Streams[0].Attributes[0])

	// custom parser errors are fatal like any other field error
	_, err = sdp.Parse(strings.Replace(doc, " inline:", "", 1), sdp.WithRegistry(reg))
	assert.ErrorIs(t, err, sdp.ErrInvalidSDP)
}

func TestRegistryOverride(t *testing.T) {
	reg := sdp.NewRegistry()
	reg.Register(sdp.KeyPacketTime, func(key, value string) (sdp.Attribute, error) {
		return &sdp.GenericAttribute{Name: key, Val: "overridden " + value}, nil
	})

	attr, err := reg.Parse("ptime:20")
	require.NoError(t, err)
	assert.Equal(t, "overridden 20", attr.Value())

	reg.Register(sdp.KeyPacketTime, nil)
	_, err = reg.Parse("ptime:20")
	assert.ErrorIs(t, err, sdp.ErrUnknownAttribute)
	assert.NotContains(t, reg.Keys(), sdp.KeyPacketTime)
}

func TestRegistryKeysAndClone(t *testing.T) {
	reg := sdp.NewRegistry()
	assert.Equal(t, []string{
		"cat", "charset", "fmtp", "framerate", "inactive", "keywds", "lang",
		"maxptime", "orient", "ptime", "quality", "recvonly", "rtpmap",
		"sdplang", "sendonly", "sendrecv", "tool", "type",
	}, reg.Keys())

	clone := reg.Clone()
	clone.Register("x-only-in-clone", parseCrypto)
	assert.Contains(t, clone.Keys(), "x-only-in-clone")
	assert.NotContains(t, reg.Keys(), "x-only-in-clone")
}

func TestRegisterAttributeDefault(t *testing.T) {
	const key = "x-registry-test"
	sdp.RegisterAttribute(key, func(key, value string) (sdp.Attribute, error) {
		return &sdp.Tool{Tool: value}, nil
	})
	defer sdp.RegisterAttribute(key, nil)

	attr, err := sdp.ParseAttribute(key + ":hello")
	require.NoError(t, err)
	assert.Equal(t, &sdp.Tool{Tool: "hello"}, attr)
}

func TestRegistryConcurrentUse(t *testing.T) {
	reg := sdp.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.Register("x-concurrent", parseCrypto)
		}()
		go func() {
			defer wg.Done()
			_, err := reg.Parse("ptime:20")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestParseOptions(t *testing.T) {
	_, err := sdp.Parse("v=0\r\n", sdp.WithRegistry(nil))
	assert.ErrorIs(t, err, sdp.ErrNilRegistry)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	parsed, err := sdp.Parse("v=0\r\nx=1\r\n", sdp.WithGroupLogger(logger, "sdp"))
	require.NotNil(t, parsed)
	assert.ErrorIs(t, err, sdp.WarnMalformedSDP)
	assert.Contains(t, buf.String(), "skipping sdp line")
	assert.Contains(t, buf.String(), "sdp.line.num=2")

	buf.Reset()
	_, err = sdp.Parse("v=0\r\nx=1\r\n", sdp.WithLogger(logger))
	assert.ErrorIs(t, err, sdp.WarnMalformedSDP)
	assert.Contains(t, buf.String(), "line.num=2")
}
