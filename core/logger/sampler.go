package logger

import (
	"strconv"
	"strings"
	"sync"
)

// ratioSampler lets through num events out of every den.
type ratioSampler struct {
	mu       sync.Mutex
	num, den int
	n        int
}

func newRatioSampler(num, den int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(num, den)
	return s
}

// Set changes the ratio. Non-positive values disable sampling entirely.
func (s *ratioSampler) Set(num, den int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if num <= 0 || den <= 0 {
		num, den = 0, 0
	}
	s.num, s.den, s.n = min(num, den), den, 0
}

// Allow reports whether the next event passes.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.den == 0 {
		return true
	}
	s.n = s.n%s.den + 1
	return s.n <= s.num
}

// parseRatio accepts "num/den" or a bare "den" meaning 1/den.
// "0" or garbage yields 0/0.
func parseRatio(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if a, b, ok := strings.Cut(spec, "/"); ok {
		num, err1 := strconv.Atoi(strings.TrimSpace(a))
		den, err2 := strconv.Atoi(strings.TrimSpace(b))
		if err1 == nil && err2 == nil {
			return num, den
		}
		return 0, 0
	}
	if v, err := strconv.Atoi(spec); err == nil && v > 0 {
		return 1, v
	}
	return 0, 0
}
