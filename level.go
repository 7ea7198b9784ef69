package troubadour

import "math"

// Level is a peak-holding level meter. Both fields live in [MinDecibels, 0];
// 0 dB represents full scale.
type Level struct {
	Current Decibel
	Peak    Decibel

	seen bool // false until the first Update
}

// Update folds one sample's magnitude into the meter, raising Peak if
// the new Current exceeds it. The first Update on a zero Level sets
// Peak to that sample's level.
func (l *Level) Update(sample float32) {
	mag := float32(math.Abs(float64(sample)))
	var db float32
	if mag > 0 {
		db = clampRange(float32(20*math.Log10(float64(mag))), MinDecibels, 0)
	} else {
		db = MinDecibels
	}
	l.Current = Decibel(db)
	if !l.seen || l.Current > l.Peak {
		l.Peak = l.Current
		l.seen = true
	}
}

// DecayPeak lowers Peak by amount dB, floored at MinDecibels. amount is
// expected to be non-negative; a negative amount would raise the peak
// and is clamped to 0.
func (l *Level) DecayPeak(amount float32) {
	if amount < 0 {
		amount = 0
	}
	l.Peak = Decibel(clampRange(l.Peak.Float32()-amount, MinDecibels, 0))
}
