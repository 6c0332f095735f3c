package sdp

import (
	"fmt"
	"sync"

	"github.com/safermobility/sdpcodec/util"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// AttributeParser decodes the value of an a= line. key is the attribute name
// exactly as it appeared in the line.
type AttributeParser func(key, value string) (Attribute, error)

// Registry maps attribute keys (case-sensitive) to their parsers. It is safe
// for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]AttributeParser
}

// NewRegistry returns a registry populated with the built-in attributes.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]AttributeParser)}
	for _, d := range []MediaDirection{SendRecv, SendOnly, RecvOnly, Inactive} {
		r.parsers[string(d)] = ParseDirection
	}
	r.parsers[KeyCategory] = ParseCategory
	r.parsers[KeyKeywords] = ParseKeywords
	r.parsers[KeyTool] = ParseTool
	r.parsers[KeyPacketTime] = ParsePacketTime
	r.parsers[KeyMaxPacketTime] = ParseMaxPacketTime
	r.parsers[KeyRtpMap] = ParseRtpMap
	r.parsers[KeyOrientation] = ParseOrientationAttr
	r.parsers[KeyConferenceType] = ParseConferenceType
	r.parsers[KeyCharset] = ParseCharset
	r.parsers[KeySDPLanguage] = ParseSDPLanguage
	r.parsers[KeyLanguage] = ParseLanguage
	r.parsers[KeyFramerate] = ParseFramerate
	r.parsers[KeyQuality] = ParseQuality
	r.parsers[KeyFormatParams] = ParseFormatParams
	return r
}

// Register adds a parser for key, replacing any existing one.
func (r *Registry) Register(key string, fn AttributeParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		delete(r.parsers, key)
		return
	}
	r.parsers[key] = fn
}

func (r *Registry) lookup(key string) (AttributeParser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.parsers[key]
	return fn, ok
}

// Parse decodes the text after "a=". Everything following the first colon
// is the value; a line without a colon is a bare key with an empty value.
// Parser errors are returned unchanged.
func (r *Registry) Parse(line string) (Attribute, error) {
	parts := util.Split(line, ":", 2)
	key := parts[0]
	value := ""
	if len(parts) > 1 {
		value = parts[1]
	}

	fn, ok := r.lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: no parser for key '%s'", ErrUnknownAttribute, key)
	}
	return fn(key, value)
}

// Keys lists the registered attribute keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	keys := maps.Keys(r.parsers)
	r.mu.RUnlock()
	slices.Sort(keys)
	return keys
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{parsers: maps.Clone(r.parsers)}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry is the process-wide registry used when Parse is not given
// one with WithRegistry.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// RegisterAttribute adds or overrides a parser in the default registry. It
// should be called before parsing documents that use key.
func RegisterAttribute(key string, fn AttributeParser) {
	DefaultRegistry().Register(key, fn)
}

// ParseAttribute decodes an a= line body with the default registry.
func ParseAttribute(line string) (Attribute, error) {
	return DefaultRegistry().Parse(line)
}
