package sdp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/safermobility/sdpcodec/util"
	"golang.org/x/exp/slog"
)

type parser struct {
	strict   bool
	generic  bool
	registry *Registry
	logger   *slog.Logger

	sdp    *SDP
	stream *Stream // the latest m= block; nil while still at session level

	foundWarnings bool
	warning       error
}

// Parse turns sdp message text (CRLF line endings) into a happy data
// structure.
//
// Malformed fields abort the parse with an error wrapping ErrInvalidSDP and a
// *LineError; no partial result is returned. Recoverable problems (short or
// malformed lines, unknown line codes, unknown attribute keys when generic
// attributes are disabled) are skipped: Parse then returns the description
// together with an error wrapping WarnMalformedSDP that lists them. With
// WithStrict(true), unknown line codes and attribute keys become fatal.
func Parse(s string, opts ...ParseOption) (*SDP, error) {
	p, err := newParser(opts...)
	if err != nil {
		return nil, err
	}
	return p.parse(s)
}

func (p *parser) parse(s string) (*SDP, error) {
	if !strings.HasPrefix(s, "v=") {
		return nil, fmt.Errorf("%w: sdp must start with v=", ErrInvalidSDP)
	}

	p.sdp = &SDP{}
	p.stream = nil
	p.foundWarnings = false
	p.warning = WarnMalformedSDP

	for i, line := range strings.Split(s, "\r\n") {
		num := i + 1
		switch {
		case line == "":
			continue
		case len(line) < 2:
			p.warn(num, line, errors.New("line too short"))
			continue
		case line[1] != '=':
			p.warn(num, line, errors.New("missing '=' after line type"))
			continue
		}

		if err := p.parseLine(num, line); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSDP, &LineError{Line: num, Text: line, Err: err})
		}
	}

	if p.foundWarnings {
		return p.sdp, p.warning
	}
	return p.sdp, nil
}

func (p *parser) parseLine(num int, line string) error {
	code := line[0]
	if code >= 'A' && code <= 'Z' {
		code += 'a' - 'A'
	}
	value := line[2:]

	if code == 'm' {
		md, err := ParseMediaDescription(value)
		if err != nil {
			return err
		}
		p.stream = &Stream{Media: md}
		p.sdp.Streams = append(p.sdp.Streams, p.stream)
		return nil
	}

	if p.stream == nil {
		return p.parseSessionLine(num, line, code, value)
	}
	return p.parseStreamLine(num, line, code, value)
}

func (p *parser) parseSessionLine(num int, line string, code byte, value string) error {
	sdp := p.sdp
	var err error

	switch code {
	case 'v':
		sdp.Version, err = ParseVersion(value)
	case 'o':
		sdp.Origin, err = ParseOrigin(value)
	case 's':
		// "s= " is how an empty name is written
		if strings.TrimSpace(value) == "" {
			value = ""
		}
		sdp.SessionName = value
	case 'i':
		sdp.SessionInformation = value
	case 'u':
		sdp.URI = value
	case 'e':
		sdp.Email = value
	case 'p':
		sdp.Phone = value
	case 'c':
		sdp.ConnectionData, err = ParseConnectionData(value)
	case 'b':
		sdp.Bandwidth, err = ParseBandwidth(value)
	case 't':
		var t Timing
		if t, err = ParseTiming(value); err == nil {
			sdp.Timings = append(sdp.Timings, t)
		}
	case 'z':
		var adjustments []TimeZoneAdjustment
		if adjustments, err = ParseTimeZones(value); err == nil {
			sdp.TimeZoneAdjustments = append(sdp.TimeZoneAdjustments, adjustments...)
		}
	case 'r':
		if len(sdp.Timings) == 0 {
			return fmt.Errorf("%w: r= without t=", ErrInvalidValue)
		}
		var rt RepeatingTime
		if rt, err = ParseRepeatingTime(value); err == nil {
			last := &sdp.Timings[len(sdp.Timings)-1]
			last.RepeatingTimes = append(last.RepeatingTimes, rt)
		}
	case 'k':
		sdp.Encryption, err = ParseEncryption(value)
	case 'a':
		var attr Attribute
		if attr, err = p.parseAttribute(num, line, value); err == nil && attr != nil {
			sdp.Attributes = append(sdp.Attributes, attr)
		}
	default:
		return p.unexpected(num, line, "session")
	}

	return err
}

func (p *parser) parseStreamLine(num int, line string, code byte, value string) error {
	stream := p.stream
	var err error

	switch code {
	case 'i':
		stream.Title = value
	case 'c':
		stream.ConnectionData, err = ParseConnectionData(value)
	case 'b':
		stream.Bandwidth, err = ParseBandwidth(value)
	case 'k':
		stream.Encryption, err = ParseEncryption(value)
	case 'a':
		var attr Attribute
		if attr, err = p.parseAttribute(num, line, value); err == nil && attr != nil {
			stream.Attributes = append(stream.Attributes, attr)
		}
	default:
		return p.unexpected(num, line, "media")
	}

	return err
}

// parseAttribute returns a nil attribute when an unknown key was skipped.
func (p *parser) parseAttribute(num int, line, value string) (Attribute, error) {
	attr, err := p.registry.Parse(value)
	if err == nil {
		if attr == nil {
			return nil, fmt.Errorf("%w: parser for '%s' returned nothing", ErrInvalidValue, value)
		}
		return attr, nil
	}
	if !errors.Is(err, ErrUnknownAttribute) {
		return nil, err
	}

	switch {
	case p.generic:
		parts := util.Split(value, ":", 2)
		if parts[0] == "" {
			// empty key, i.e. line started with "a=:"
			return nil, fmt.Errorf("%w: attribute without a name", ErrInvalidValue)
		}
		g := &GenericAttribute{Name: parts[0], Property: len(parts) == 1}
		if len(parts) > 1 {
			g.Val = parts[1]
		}
		return g, nil
	case p.strict:
		return nil, err
	default:
		p.warn(num, line, err)
		return nil, nil
	}
}

func (p *parser) unexpected(num int, line, level string) error {
	err := fmt.Errorf("%w '%c' at %s level", ErrUnknownLine, line[0], level)
	if p.strict {
		return err
	}
	p.warn(num, line, err)
	return nil
}

func (p *parser) warn(num int, line string, err error) {
	p.foundWarnings = true
	p.warning = fmt.Errorf("%w; dropping line %d '%s': %w", p.warning, num, line, err)
	p.logger.Warn("skipping sdp line", util.SlogLine(num, line), util.SlogError(err))
}
