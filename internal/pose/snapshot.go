package pose

import "github.com/ayusman/handcount/internal/landmark"

// Snapshot is an immutable copy of the tracker's observable state, safe to
// hand across goroutines. Points are included only for fingers whose data
// passed confidence filtering this frame; renderers convert coordinates and
// pick colors themselves.
type Snapshot struct {
	Count    int                       `json:"count"`
	Extended map[string]bool           `json:"extended"`
	Wrist    *landmark.Point           `json:"wrist,omitempty"`
	Tips     map[string]landmark.Point `json:"tips,omitempty"`
	Bases    map[string]landmark.Point `json:"bases,omitempty"`
}

// Snapshot captures the tracker's current state. Must be called from the
// same goroutine that calls Update and Clear.
func (t *Tracker) Snapshot() Snapshot {
	snap := Snapshot{
		Count:    t.count,
		Extended: make(map[string]bool, NumFingers),
	}

	for f := Thumb; f < NumFingers; f++ {
		snap.Extended[f.String()] = t.extended[f]
	}

	if t.wrist.OK {
		w := t.wrist.Point
		snap.Wrist = &w
	}

	for f := Thumb; f < NumFingers; f++ {
		if t.tips[f].OK {
			if snap.Tips == nil {
				snap.Tips = make(map[string]landmark.Point, NumFingers)
			}
			snap.Tips[f.String()] = t.tips[f].Point
		}
		if t.bases[f].OK {
			if snap.Bases == nil {
				snap.Bases = make(map[string]landmark.Point, NumFingers)
			}
			snap.Bases[f.String()] = t.bases[f].Point
		}
	}

	return snap
}
