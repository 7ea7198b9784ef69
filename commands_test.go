package troubadour

import "testing"

func TestCommandSurfaceAddAndRemoveChannel(t *testing.T) {
	s := NewCommandSurface(NewMixer())
	if r := s.AddChannel("mic", "Mic"); !r.Ok() {
		t.Fatalf("AddChannel failed: %v", r.Err)
	}
	if r := s.RemoveChannel("mic"); !r.Ok() {
		t.Fatalf("RemoveChannel failed: %v", r.Err)
	}
	if r := s.RemoveChannel("mic"); r.Ok() {
		t.Fatalf("removing an already-removed channel should fail")
	}
}

func TestCommandSurfaceToggleMuteReturnsState(t *testing.T) {
	s := NewCommandSurface(NewMixer())
	s.AddChannel("mic", "Mic")
	r := s.ToggleMute("mic")
	if !r.Ok() || r.Value != "true" {
		t.Fatalf("ToggleMute = %+v, want Ok with Value \"true\"", r)
	}
	r = s.ToggleMute("mic")
	if !r.Ok() || r.Value != "false" {
		t.Fatalf("second ToggleMute = %+v, want Ok with Value \"false\"", r)
	}
}

func TestCommandSurfaceAddBusReturnsID(t *testing.T) {
	s := NewCommandSurface(NewMixer())
	r := s.AddBus()
	if !r.Ok() || r.Value == "" {
		t.Fatalf("AddBus = %+v, want Ok with a non-empty id", r)
	}
}

func TestCommandSurfaceSetRoute(t *testing.T) {
	s := NewCommandSurface(NewMixer())
	s.AddChannel("mic", "Mic")
	if r := s.SetRoute("mic", "A1", true); !r.Ok() {
		t.Fatalf("SetRoute failed: %v", r.Err)
	}
	if r := s.SetRoute("ghost", "A1", true); r.Ok() {
		t.Fatalf("SetRoute with an unknown endpoint should fail")
	}
}
