// Package fir provides a direct-form FIR filter that processes one sample
// at a time.
//
// A [Filter] owns a history of the M most recent input samples (most recent
// first) and produces one output per input, so feeding a stream x through a
// fresh filter yields the first len(x) samples of the linear convolution of x
// with the coefficients. No tail is produced after the input ends.
//
// Each Filter is exclusively owned by the goroutine driving its stream.
// Independent instances share nothing and may run concurrently.
//
// Coefficient design (windowed-sinc, Parks-McClellan, etc.) is a separate
// concern. For whole-signal filtering see package dsp/conv.
package fir
