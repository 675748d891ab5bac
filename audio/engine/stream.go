package engine

import (
	"encoding/binary"
	"math"
)

const streamChannels = 2

// Stream adapts a Controller's block renderer into an io.Reader of
// interleaved float32 little-endian stereo PCM, the format the output
// device player consumes. The mono render is duplicated onto both
// channels.
//
// Read never fails and never blocks on engine state: a stopped or
// degraded controller simply streams silence, which keeps the device
// player's pull loop trivially alive across start/stop cycles.
type Stream struct {
	c   *Controller
	buf []float64
	pcm []byte
	pos int
}

// NewStream creates a PCM stream over the controller.
func NewStream(c *Controller) *Stream {
	block := c.BlockSize()
	return &Stream{
		c:   c,
		buf: make([]float64, block),
		pcm: make([]byte, 0, block*streamChannels*4),
	}
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if s.pos == len(s.pcm) {
			s.fill()
		}
		m := copy(p[n:], s.pcm[s.pos:])
		n += m
		s.pos += m
	}
	return n, nil
}

func (s *Stream) fill() {
	if err := s.c.RenderBlock(s.buf); err != nil {
		clear(s.buf)
	}

	s.pcm = s.pcm[:0]
	for _, v := range s.buf {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		bits := math.Float32bits(float32(v))
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], bits)
		for range streamChannels {
			s.pcm = append(s.pcm, b[:]...)
		}
	}
	s.pos = 0
}
