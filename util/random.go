package util

import (
	"strconv"

	"github.com/pion/randutil"
)

// Session ids should fit in 63 bits so they survive signed NTP-style parsers.
const maxOriginID = 1<<63 - 1

var mathRand = randutil.NewMathRandomGenerator()

// GenerateOriginID returns a random decimal session id suitable for o= lines.
func GenerateOriginID() string {
	id, err := randutil.CryptoUint64()
	if err != nil {
		id = mathRand.Uint64()
	}
	return strconv.FormatUint(id&maxOriginID, 10)
}
