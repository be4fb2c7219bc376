package core

import "testing"

func TestInputFrameMaskRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
	}{
		{"empty", nil},
		{"single jump", []Action{ActionJump}},
		{"lane and power", []Action{ActionLeft, ActionPower}},
		{"everything", []Action{ActionLeft, ActionRight, ActionJump, ActionPower, ActionConfirm, ActionBack, ActionRestart, ActionQuit, ActionPause}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}

			back := InputFrameFromMask(f.Mask())
			for _, a := range tc.actions {
				if !back.Has(a) {
					t.Errorf("action %v lost in mask round trip", a)
				}
			}
			if len(back.Actions) != len(tc.actions) {
				t.Errorf("got %d actions, expected %d", len(back.Actions), len(tc.actions))
			}
		})
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)

	c := f.Clone()
	f.Clear()

	if f.Has(ActionJump) {
		t.Error("Clear should remove actions")
	}
	if !c.Has(ActionJump) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}
}
