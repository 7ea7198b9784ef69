package troubadour

import "testing"

func TestLevelUpdateTracksPeak(t *testing.T) {
	var l Level
	l.Update(0.5)
	if l.Peak != l.Current {
		t.Fatalf("peak should track first sample: peak=%v current=%v", l.Peak, l.Current)
	}
	first := l.Peak
	l.Update(0.1)
	if l.Peak != first {
		t.Fatalf("peak should not drop on quieter sample: got %v, want %v", l.Peak, first)
	}
	if l.Current == first {
		t.Fatalf("current should follow the latest sample")
	}
}

func TestLevelUpdateSilence(t *testing.T) {
	var l Level
	l.Update(0)
	if l.Current != MinDecibels {
		t.Errorf("silent sample current = %v, want %v", l.Current, MinDecibels)
	}
}

func TestLevelDecayPeak(t *testing.T) {
	var l Level
	l.Update(1.0)
	before := l.Peak
	l.DecayPeak(6)
	if l.Peak >= before {
		t.Errorf("decay should lower peak: before=%v after=%v", before, l.Peak)
	}
}

func TestLevelDecayPeakFloors(t *testing.T) {
	var l Level
	l.Update(1.0)
	l.DecayPeak(1000)
	if l.Peak != MinDecibels {
		t.Errorf("decay should floor at MinDecibels, got %v", l.Peak)
	}
}

func TestLevelDecayPeakNegativeAmountClamped(t *testing.T) {
	var l Level
	l.Update(0.5)
	before := l.Peak
	l.DecayPeak(-10)
	if l.Peak != before {
		t.Errorf("negative decay amount must not raise peak: before=%v after=%v", before, l.Peak)
	}
}
