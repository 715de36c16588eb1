package debugui

// History is a fixed-size ring of samples for plotting.
type History struct {
	samples []float32
	next    int
	filled  bool
}

func NewHistory(size int) *History {
	return &History{samples: make([]float32, size)}
}

// Push records a sample, overwriting the oldest once full.
func (h *History) Push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.filled = true
	}
}

// Len returns the number of recorded samples.
func (h *History) Len() int {
	if h.filled {
		return len(h.samples)
	}
	return h.next
}

// Average returns the mean of the recorded samples.
func (h *History) Average() float32 {
	n := h.Len()
	if n == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples[:n] {
		sum += v
	}
	return sum / float32(n)
}

// Max returns the largest recorded sample.
func (h *History) Max() float32 {
	var m float32
	for _, v := range h.samples[:h.Len()] {
		m = max(m, v)
	}
	return m
}

// Ordered returns the samples oldest first, padded with zeros to the full
// size so plots keep a stable width.
func (h *History) Ordered() []float32 {
	out := make([]float32, len(h.samples))
	if !h.filled {
		copy(out[len(out)-h.next:], h.samples[:h.next])
		return out
	}
	n := copy(out, h.samples[h.next:])
	copy(out[n:], h.samples[:h.next])
	return out
}
