// Package landmark provides the hand landmark model and detection interfaces
// for the handcount finger tracking system.
package landmark

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist     = 0
	ThumbCMC  = 1
	ThumbMCP  = 2
	ThumbIP   = 3
	ThumbTip  = 4
	IndexMCP  = 5
	IndexPIP  = 6
	IndexDIP  = 7
	IndexTip  = 8
	MiddleMCP = 9
	MiddlePIP = 10
	MiddleDIP = 11
	MiddleTip = 12
	RingMCP   = 13
	RingPIP   = 14
	RingDIP   = 15
	RingTip   = 16
	PinkyMCP  = 17
	PinkyPIP  = 18
	PinkyDIP  = 19
	PinkyTip  = 20
	NumJoints = 21
)

// Point is a 2D location in normalized image coordinates (0-1 on both axes).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Joint is a single observed landmark: its location plus the detection
// confidence reported for that landmark (0.0-1.0). A zero-value Joint has
// confidence 0 and is treated as unobserved by consumers.
type Joint struct {
	Point      Point   `json:"point"`
	Confidence float64 `json:"confidence"`
}

// Hand is one detected hand: the full set of 21 joints, which hand it is,
// and the detector's overall score for the detection.
type Hand struct {
	Joints     [NumJoints]Joint `json:"joints"`
	Handedness string           `json:"handedness"` // "Left" or "Right"
	Score      float64          `json:"score"`
}

// Joint returns the observation for the given joint index.
// Out-of-range indices return a zero (unobserved) joint.
func (h *Hand) Joint(index int) Joint {
	if index < 0 || index >= NumJoints {
		return Joint{}
	}
	return h.Joints[index]
}
