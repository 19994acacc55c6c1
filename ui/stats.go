package ui

import (
	"log"
	"time"
)

// frameStats tracks rolling frame timing for the backend. Logs a summary at
// the update interval when enabled.
type frameStats struct {
	frameCount     int
	totalFrameTime time.Duration
	worstFrameTime time.Duration
	lastTime       time.Time
	updateInterval time.Duration
}

// newFrameStats creates frame stats with a 1 second log interval.
//
// Returns:
//   - *frameStats: the newly created stats tracker
func newFrameStats() *frameStats {
	return &frameStats{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// tick records one frame's duration and logs a summary when the update
// interval has elapsed.
//
// Parameters:
//   - frameTime: the duration of the frame just rendered
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (s *frameStats) tick(frameTime time.Duration) bool {
	s.frameCount++
	s.totalFrameTime += frameTime
	if frameTime > s.worstFrameTime {
		s.worstFrameTime = frameTime
	}

	now := time.Now()
	elapsed := now.Sub(s.lastTime)
	if elapsed < s.updateInterval {
		return false
	}

	fps := float64(s.frameCount) / elapsed.Seconds()
	avgMs := float64(s.totalFrameTime.Microseconds()) / float64(s.frameCount) / 1000
	worstMs := float64(s.worstFrameTime.Microseconds()) / 1000

	log.Printf("[UI] FPS: %.2f | Frame: %.2f ms avg, %.2f ms worst", fps, avgMs, worstMs)

	s.frameCount = 0
	s.totalFrameTime = 0
	s.worstFrameTime = 0
	s.lastTime = now
	return true
}
