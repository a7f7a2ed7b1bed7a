package conv

import "github.com/cwbudde/algo-vecmath"

// linearFloat64 scatters each input sample's scaled kernel into dst.
// dst must be zeroed and have length len(x)+len(h)-1. temp is reused when it
// holds at least len(h) samples.
func linearFloat64(dst, x, h, temp []float64) {
	m := len(h)
	if len(temp) < m {
		temp = make([]float64, m)
	}
	temp = temp[:m]

	for i, xi := range x {
		vecmath.ScaleBlock(temp, h, xi)
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}
