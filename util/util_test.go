package util_test

import (
	"net/netip"
	"testing"

	"github.com/safermobility/sdpcodec/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, util.Split("a:b:c", ":", 0))
	assert.Equal(t, []string{"a", "b:c"}, util.Split("a:b:c", ":", 2))
	assert.Equal(t, []string{"abc"}, util.Split("abc", ":", 2))
	assert.Equal(t, []string{"", ""}, util.Split(":", ":", 2))
}

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		out  []string
	}{
		{"unlimited", "a  b\tc", 0, []string{"a", "b", "c"}},
		{"limit keeps tail", "96 param1 param2;param3", 2, []string{"96", "param1 param2;param3"}},
		{"limit not reached", "96", 2, []string{"96"}},
		{"leading space", "  x y z", 2, []string{"x", "y z"}},
		{"tail keeps inner runs", "a b  c", 2, []string{"a", "b  c"}},
		{"empty", "", 3, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.out, util.Fields(test.in, test.max))
		})
	}
}

func TestParseWidths(t *testing.T) {
	v16, err := util.ParseUint16("65535")
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), v16)

	_, err = util.ParseUint16("65536")
	assert.ErrorIs(t, err, util.ErrOutOfRange)

	_, err = util.ParseUint32("4294967296")
	assert.ErrorIs(t, err, util.ErrOutOfRange)

	_, err = util.ParseUint64("-1")
	assert.ErrorIs(t, err, util.ErrInvalidNumber)
	assert.EqualError(t, err, "invalid number: '-1' is not a 64-bit unsigned integer")

	_, err = util.ParseUint16("70000")
	assert.EqualError(t, err, "value out of range: '70000' does not fit a 16-bit unsigned integer")

	v32, err := util.ParseInt32("-2147483648")
	require.NoError(t, err)
	assert.Equal(t, int32(-2147483648), v32)

	_, err = util.ParseInt32("2147483648")
	assert.ErrorIs(t, err, util.ErrOutOfRange)

	v64, err := util.ParseInt64("-3600")
	require.NoError(t, err)
	assert.Equal(t, int64(-3600), v64)

	_, err = util.ParseInt64("12x")
	assert.ErrorIs(t, err, util.ErrInvalidNumber)
}

func TestIsIPv6(t *testing.T) {
	assert.True(t, util.IsIPv6("dead:beef::666"))
	assert.True(t, util.IsIPv6("::"))
	assert.False(t, util.IsIPv6("10.0.0.38"))
	assert.False(t, util.IsIPv6("::ffff:10.0.0.1"))
	assert.False(t, util.IsIPv6("example.com"))
}

func TestAddrRoundTrip(t *testing.T) {
	a, err := util.ParseAddr("::ffff:192.0.2.1")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.1", util.AddrString(a))

	a = netip.MustParseAddr("2001:db8::1")
	assert.Equal(t, "2001:db8::1", util.AddrString(a))

	_, err = util.ParseAddr("not-an-ip")
	assert.Error(t, err)
}

func TestGenerateOriginID(t *testing.T) {
	id := util.GenerateOriginID()
	require.NotEmpty(t, id)
	_, err := util.ParseInt64(id)
	assert.NoError(t, err)
}
