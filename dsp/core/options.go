package core

import (
	"fmt"
	"strings"
)

// Method selects a convolution strategy.
type Method int

const (
	// MethodLinear is direct O(N*M) linear convolution.
	MethodLinear Method = iota
	// MethodCircular is direct circular convolution at length max(N, M).
	MethodCircular
	// MethodOverlapAdd partitions the input into disjoint blocks and sums the tails.
	MethodOverlapAdd
	// MethodOverlapSave partitions the input into overlapping blocks and drops the aliased prefix.
	MethodOverlapSave
	// MethodRealTime feeds the input one sample at a time through a FIR filter.
	MethodRealTime
)

var methodNames = [...]string{
	MethodLinear:      "linear",
	MethodCircular:    "circular",
	MethodOverlapAdd:  "overlap-add",
	MethodOverlapSave: "overlap-save",
	MethodRealTime:    "realtime",
}

// String returns the canonical name of m.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// IsBlockBased reports whether m consumes a block length.
func (m Method) IsBlockBased() bool {
	return m == MethodOverlapAdd || m == MethodOverlapSave
}

// ParseMethod maps a method name (case-insensitive; "ola" and "ols" are
// accepted as short forms) to its Method.
func ParseMethod(name string) (Method, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "ola":
		return MethodOverlapAdd, nil
	case "ols":
		return MethodOverlapSave, nil
	default:
		for i, s := range methodNames {
			if s == n {
				return Method(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidArgument, name)
}

// ProcessorConfig defines common convolution settings.
type ProcessorConfig struct {
	Method      Method
	BlockLength int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns direct linear convolution with a 64-sample
// block length for the block-based methods.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		Method:      MethodLinear,
		BlockLength: 64,
	}
}

// WithMethod sets the convolution strategy.
func WithMethod(m Method) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if m >= 0 && int(m) < len(methodNames) {
			cfg.Method = m
		}
	}
}

// WithBlockLength sets the analysis block length for block-based methods.
func WithBlockLength(blockLength int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockLength > 0 {
			cfg.BlockLength = blockLength
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
