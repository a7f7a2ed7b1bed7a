package core

// Zero sets all values in buf to 0.
func Zero[T Sample](buf []T) {
	for i := range buf {
		buf[i] = 0
	}
}

// Clone returns a copy of s that shares no memory with it.
func Clone[T Sample](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// ZeroPad returns a copy of s extended with zeros to length n.
// If s is already at least n long the copy is truncated to n.
func ZeroPad[T Sample](s []T, n int) []T {
	if n <= 0 {
		return nil
	}
	out := make([]T, n)
	copy(out, s)
	return out
}

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen[T Sample](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}
