package synth

// Param is a sample-accurate ramped scalar parameter. Setting a new
// target cancels any pending ramp, pins the value at "now", and ramps
// linearly from there, so out-of-order or rapid-fire updates cannot
// produce a jump: the latest call always wins and starts smoothly from
// wherever the parameter currently is.
type Param struct {
	sampleRate float64
	value      float64
	target     float64
	step       float64
	remaining  int
}

// NewParam creates a parameter holding initial with no ramp pending.
func NewParam(sampleRate, initial float64) *Param {
	return &Param{
		sampleRate: sampleRate,
		value:      initial,
		target:     initial,
	}
}

// Value returns the current value without advancing time.
func (p *Param) Value() float64 {
	return p.value
}

// Target returns the value the parameter is ramping toward.
func (p *Param) Target() float64 {
	return p.target
}

// SetTarget cancels any pending ramp and schedules a linear ramp from
// the current value to target over rampSeconds. A non-positive ramp
// duration applies the target immediately.
func (p *Param) SetTarget(target, rampSeconds float64) {
	p.target = target

	n := int(rampSeconds * p.sampleRate)
	if n <= 0 {
		p.value = target
		p.step = 0
		p.remaining = 0
		return
	}

	p.step = (target - p.value) / float64(n)
	p.remaining = n
}

// Next advances one sample and returns the new value.
func (p *Param) Next() float64 {
	if p.remaining > 0 {
		p.value += p.step
		p.remaining--
		if p.remaining == 0 {
			p.value = p.target
		}
	}
	return p.value
}

// Fill writes len(dst) successive sample values into dst.
func (p *Param) Fill(dst []float64) {
	for i := range dst {
		dst[i] = p.Next()
	}
}

// Skip advances n samples without observing the intermediate values.
// Used for parameters consumed at block rate.
func (p *Param) Skip(n int) {
	if p.remaining <= 0 {
		return
	}
	if n >= p.remaining {
		p.value = p.target
		p.remaining = 0
		return
	}
	p.value += p.step * float64(n)
	p.remaining -= n
}
