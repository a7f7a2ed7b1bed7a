// Package buffer provides a reusable sample buffer and a pool of them for
// allocation-friendly block processing. The block convolvers in dsp/conv
// draw their per-call working blocks from a Pool; callers may do the same
// for their own output buffers.
package buffer
