// Package pose interprets per-frame hand landmark observations into a
// per-finger extension signal and a derived extended-finger count.
package pose

import (
	"math"

	"github.com/ayusman/handcount/internal/landmark"
)

// Finger identifies one of the five fingers of a hand.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Little
	NumFingers
)

// String returns the lowercase finger name.
func (f Finger) String() string {
	switch f {
	case Thumb:
		return "thumb"
	case Index:
		return "index"
	case Middle:
		return "middle"
	case Ring:
		return "ring"
	case Little:
		return "little"
	default:
		return "unknown"
	}
}

// fingerJoints maps each finger to its tip and base landmark indices.
// The base is the MCP knuckle (MP for the thumb). This table is fixed;
// it follows the MediaPipe hand landmark convention.
var fingerJoints = [NumFingers]struct{ tip, base int }{
	Thumb:  {landmark.ThumbTip, landmark.ThumbMCP},
	Index:  {landmark.IndexTip, landmark.IndexMCP},
	Middle: {landmark.MiddleTip, landmark.MiddleMCP},
	Ring:   {landmark.RingTip, landmark.RingMCP},
	Little: {landmark.PinkyTip, landmark.PinkyMCP},
}

// extensionThreshold is the per-finger projection-factor bar. The thumb
// needs a higher one because its base vector is the least collinear with
// the wrist-to-knuckle axis.
var extensionThreshold = [NumFingers]float64{
	Thumb:  1.5,
	Index:  1.2,
	Middle: 1.2,
	Ring:   1.2,
	Little: 1.2,
}

// minJointConfidence is the acceptance gate for landmark observations.
// Confidences must strictly exceed it for a point to count this frame.
const minJointConfidence = 0.5

// OptPoint holds a landmark location that may be absent for the frame.
type OptPoint struct {
	Point landmark.Point
	OK    bool
}

// Vector is a wrist-relative displacement in normalized image coordinates.
type Vector struct {
	X float64
	Y float64
}

// OptVector holds a wrist-relative vector that may be absent for the frame.
type OptVector struct {
	Vec Vector
	OK  bool
}

// Tracker converts one externally detected hand landmark set per frame into
// per-finger extended flags and an aggregate count, and invokes a registered
// callback exactly when the count changes.
//
// All derived state is recomputed from scratch on every Update; the only
// cross-frame memory is the previous count, kept to decide whether the
// change notification fires. The tracker does no locking: Update and Clear
// must not be called concurrently, and the callback runs synchronously on
// the calling goroutine.
type Tracker struct {
	wrist    OptPoint
	bases    [NumFingers]OptPoint
	tips     [NumFingers]OptPoint
	baseVecs [NumFingers]OptVector
	tipVecs  [NumFingers]OptVector
	extended [NumFingers]bool
	count    int

	// OnCountChange, when set, is invoked with the new count whenever the
	// extended-finger count changes value.
	OnCountChange func(count int)
}

// NewTracker creates a Tracker with all points absent and count zero.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Update consumes one hand observation and fully recomputes the derived
// state. Missing or low-confidence joints degrade to absent points and
// vectors and to "not extended"; Update never fails.
func (t *Tracker) Update(hand *landmark.Hand) {
	t.extractPoints(hand)
	t.deriveVectors()
	t.assessExtension()
	t.aggregate()
}

// Clear resets every point, vector and extended flag to its absent/false
// default, for frames in which no hand was detected. If the count drops
// from a nonzero value the change notification fires as usual.
func (t *Tracker) Clear() {
	t.wrist = OptPoint{}
	for f := Thumb; f < NumFingers; f++ {
		t.tips[f] = OptPoint{}
		t.bases[f] = OptPoint{}
		t.tipVecs[f] = OptVector{}
		t.baseVecs[f] = OptVector{}
		t.extended[f] = false
	}
	t.aggregate()
}

// extractPoints gates the wrist and each finger's tip/base pair on landmark
// confidence. A finger's tip and base are accepted together or not at all.
func (t *Tracker) extractPoints(hand *landmark.Hand) {
	t.wrist = OptPoint{}
	if w := hand.Joint(landmark.Wrist); w.Confidence > minJointConfidence {
		t.wrist = OptPoint{Point: w.Point, OK: true}
	}

	for f := Thumb; f < NumFingers; f++ {
		t.tips[f] = OptPoint{}
		t.bases[f] = OptPoint{}

		tip := hand.Joint(fingerJoints[f].tip)
		base := hand.Joint(fingerJoints[f].base)
		if tip.Confidence > minJointConfidence && base.Confidence > minJointConfidence {
			t.tips[f] = OptPoint{Point: tip.Point, OK: true}
			t.bases[f] = OptPoint{Point: base.Point, OK: true}
		}
	}
}

// deriveVectors computes wrist-relative tip and base vectors for every
// finger whose points and the wrist all passed the confidence gate.
func (t *Tracker) deriveVectors() {
	for f := Thumb; f < NumFingers; f++ {
		t.tipVecs[f] = OptVector{}
		t.baseVecs[f] = OptVector{}

		if !t.wrist.OK || !t.tips[f].OK || !t.bases[f].OK {
			continue
		}

		t.tipVecs[f] = OptVector{Vec: subtract(t.tips[f].Point, t.wrist.Point), OK: true}
		t.baseVecs[f] = OptVector{Vec: subtract(t.bases[f].Point, t.wrist.Point), OK: true}
	}
}

func (t *Tracker) assessExtension() {
	for f := Thumb; f < NumFingers; f++ {
		t.extended[f] = t.isExtended(f)
	}
}

// isExtended applies the projection test: the finger counts as extended
// when its tip projects strictly farther along the base vector's direction
// than the base itself reaches from the wrist.
func (t *Tracker) isExtended(f Finger) bool {
	tipVec := t.tipVecs[f]
	baseVec := t.baseVecs[f]
	if !tipVec.OK || !baseVec.OK {
		return false
	}

	baseLenSq := dot(baseVec.Vec, baseVec.Vec)
	if baseLenSq == 0 {
		return false
	}

	p := dot(tipVec.Vec, baseVec.Vec) / baseLenSq
	if p <= extensionThreshold[f] {
		return false
	}

	if f == Thumb {
		return t.thumbClearOfPalm(tipVec.Vec, baseVec.Vec)
	}
	return true
}

// thumbClearOfPalm filters the common false positive where the thumb rests
// across the palm near the index knuckle but still passes the projection
// test. The thumb counts as extended only if its tip sits farther from the
// index finger's base than from the thumb's own base, measured in the
// wrist-relative vector space. Without an index base vector this frame the
// check cannot run and the thumb stays not extended.
func (t *Tracker) thumbClearOfPalm(tipVec, thumbBase Vector) bool {
	indexBase := t.baseVecs[Index]
	if !indexBase.OK {
		return false
	}
	return distance(tipVec, indexBase.Vec) > distance(tipVec, thumbBase)
}

// aggregate recounts the extended flags and fires the change notification
// if the count differs from the previous frame's.
func (t *Tracker) aggregate() {
	count := 0
	for _, ext := range t.extended {
		if ext {
			count++
		}
	}

	changed := count != t.count
	t.count = count

	if changed && t.OnCountChange != nil {
		t.OnCountChange(count)
	}
}

// Count returns the number of fingers currently assessed as extended.
func (t *Tracker) Count() int {
	return t.count
}

// Extended reports whether the given finger is currently extended.
func (t *Tracker) Extended(f Finger) bool {
	if f < 0 || f >= NumFingers {
		return false
	}
	return t.extended[f]
}

// ExtendedFingers returns the per-finger extended flags, indexed by Finger.
func (t *Tracker) ExtendedFingers() [NumFingers]bool {
	return t.extended
}

// WristPoint returns the wrist location accepted this frame, if any.
func (t *Tracker) WristPoint() OptPoint {
	return t.wrist
}

// TipPoint returns the given finger's tip location accepted this frame.
func (t *Tracker) TipPoint(f Finger) OptPoint {
	if f < 0 || f >= NumFingers {
		return OptPoint{}
	}
	return t.tips[f]
}

// BasePoint returns the given finger's base location accepted this frame.
func (t *Tracker) BasePoint(f Finger) OptPoint {
	if f < 0 || f >= NumFingers {
		return OptPoint{}
	}
	return t.bases[f]
}

// TipVector returns the given finger's wrist-relative tip vector.
func (t *Tracker) TipVector(f Finger) OptVector {
	if f < 0 || f >= NumFingers {
		return OptVector{}
	}
	return t.tipVecs[f]
}

// BaseVector returns the given finger's wrist-relative base vector.
func (t *Tracker) BaseVector(f Finger) OptVector {
	if f < 0 || f >= NumFingers {
		return OptVector{}
	}
	return t.baseVecs[f]
}

func subtract(p, origin landmark.Point) Vector {
	return Vector{X: p.X - origin.X, Y: p.Y - origin.Y}
}

func dot(a, b Vector) float64 {
	return a.X*b.X + a.Y*b.Y
}

func distance(a, b Vector) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
