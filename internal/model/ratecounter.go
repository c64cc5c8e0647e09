package model

// RateCounter is the fixed-window request count for one key
type RateCounter struct {
	Key         string
	WindowStart int64 // epoch seconds
	Count       int
}

// WindowExpired reports whether a window of windowSeconds opened at
// WindowStart has fully elapsed at now (epoch seconds).
func (c RateCounter) WindowExpired(now, windowSeconds int64) bool {
	return now-c.WindowStart >= windowSeconds
}
