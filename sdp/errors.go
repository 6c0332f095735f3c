package sdp

import (
	"errors"
	"fmt"

	"github.com/safermobility/sdpcodec/util"
)

var (
	ErrInvalidSDP         = errors.New("invalid sdp")
	ErrInvalidValue       = errors.New("invalid value")
	ErrUnknownAttribute   = errors.New("unknown attribute")
	ErrUnknownLine        = errors.New("unexpected line type")
	ErrUnsupportedVersion = errors.New("unsupported sdp version")
	ErrFormat             = errors.New("unable to format sdp")
	ErrOutOfRange         = util.ErrOutOfRange
	ErrInvalidNumber      = util.ErrInvalidNumber

	WarnMalformedSDP = errors.New("parsing issues in sdp")
)

// LineError ties a parse failure to the line that caused it.
type LineError struct {
	Line int    // 1-based line number within the document
	Text string // the raw line
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d '%s': %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
