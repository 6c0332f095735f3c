package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messy = "v=0\n" +
	"o=root 31589 31589 in ip4 10.0.0.38\n" +
	"s=session\n" +
	"c=IN IP4 10.0.0.38\n" +
	"x=junk\n" +
	"t=0 0\n" +
	"m=audio 30126 RTP/AVP 0\n" +
	"a=rtpmap:0 PCMU/8000/1\n" +
	"a=x-custom:1\n"

func TestRunFormatsStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(messy), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t,
		"v=0\r\n"+
			"o=root 31589 31589 IN IP4 10.0.0.38\r\n"+
			"s=session\r\n"+
			"c=IN IP4 10.0.0.38\r\n"+
			"t=0 0\r\n"+
			"m=audio 30126 RTP/AVP 0\r\n"+
			"a=rtpmap:0 PCMU/8000\r\n"+
			"a=x-custom:1\r\n",
		stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunVerboseLogsSkippedLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-v"}, strings.NewReader(messy), &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "skipping sdp line")
	assert.Contains(t, stderr.String(), "sdp.line.num=5")
}

func TestRunStrictFails(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-strict"}, strings.NewReader(messy), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "unable to parse sdp")
}

func TestRunNoGeneric(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-no-generic"}, strings.NewReader(messy), &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.NotContains(t, stdout.String(), "x-custom")
}

func TestRunPionFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "call.sdp")
	require.NoError(t, os.WriteFile(path, []byte(messy), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-pion", path}, nil, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.True(t, strings.HasPrefix(stdout.String(), "v=0\r\no=root 31589 31589 IN IP4 10.0.0.38\r\n"), stdout.String())
	assert.Contains(t, stdout.String(), "a=rtpmap:0 PCMU/8000\r\n")
}

func TestRunBadArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"a", "b"}, nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-bogus"}, nil, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{filepath.Join(t.TempDir(), "missing.sdp")}, nil, &stdout, &stderr))
}
