package troubadour

import "testing"

func TestRoutingSetAndIsRouted(t *testing.T) {
	m := NewRoutingMatrix()
	if m.IsRouted("mic", "A1") {
		t.Fatalf("unset route should be disabled")
	}
	m.SetRoute("mic", "A1", true)
	if !m.IsRouted("mic", "A1") {
		t.Fatalf("set route should be enabled")
	}
	m.SetRoute("mic", "A1", false)
	if m.IsRouted("mic", "A1") {
		t.Fatalf("cleared route should be disabled")
	}
}

func TestRoutingGetOutputs(t *testing.T) {
	m := NewRoutingMatrix()
	m.SetRoute("mic", "A1", true)
	m.SetRoute("mic", "A2", true)
	m.SetRoute("music", "A1", true)
	outs := m.GetOutputs("mic")
	if len(outs) != 2 {
		t.Fatalf("GetOutputs(mic) = %v, want 2 entries", outs)
	}
}

func TestRoutingRemoveEntityPurgesBothSides(t *testing.T) {
	m := NewRoutingMatrix()
	m.SetRoute("mic", "A1", true)
	m.SetRoute("A1", "mic", true) // hypothetical reverse entry, exercising both sides
	m.RemoveEntity("A1")
	if m.IsRouted("mic", "A1") || m.IsRouted("A1", "mic") {
		t.Fatalf("RemoveEntity should purge routes naming the id on either side")
	}
}

func TestRoutingClear(t *testing.T) {
	m := NewRoutingMatrix()
	m.SetRoute("mic", "A1", true)
	m.Clear()
	if len(m.Snapshot()) != 0 {
		t.Fatalf("Clear should empty the matrix")
	}
}

func TestRoutingSnapshot(t *testing.T) {
	m := NewRoutingMatrix()
	m.SetRoute("mic", "A1", true)
	m.SetRoute("mic", "A2", false)
	snap := m.Snapshot()
	if len(snap) != 1 || snap[0] != [2]string{"mic", "A1"} {
		t.Fatalf("Snapshot() = %v, want exactly [[mic A1]]", snap)
	}
}
