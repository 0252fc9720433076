package landmark

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []Hand
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Hand) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// presetConfidence is the landmark confidence used by the preset hands,
// comfortably above the tracker's 0.5 acceptance gate.
const presetConfidence = 0.9

func presetJoint(x, y float64) Joint {
	return Joint{Point: Point{X: x, Y: y}, Confidence: presetConfidence}
}

// OpenPalmHand returns a preset Hand with all five fingers extended.
// Coordinates are normalized image space with the wrist near the bottom
// and fingertips pointing up (smaller Y).
func OpenPalmHand() Hand {
	hand := Hand{
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Joints[Wrist] = presetJoint(0.50, 0.90)

	// Thumb splayed to the side, tip well past the MP joint
	hand.Joints[ThumbCMC] = presetJoint(0.55, 0.86)
	hand.Joints[ThumbMCP] = presetJoint(0.60, 0.80)
	hand.Joints[ThumbIP] = presetJoint(0.64, 0.76)
	hand.Joints[ThumbTip] = presetJoint(0.68, 0.72)

	// Index extended straight out from its MCP
	hand.Joints[IndexMCP] = presetJoint(0.55, 0.65)
	hand.Joints[IndexPIP] = presetJoint(0.56, 0.60)
	hand.Joints[IndexDIP] = presetJoint(0.57, 0.55)
	hand.Joints[IndexTip] = presetJoint(0.58, 0.50)

	// Middle extended
	hand.Joints[MiddleMCP] = presetJoint(0.50, 0.63)
	hand.Joints[MiddlePIP] = presetJoint(0.50, 0.58)
	hand.Joints[MiddleDIP] = presetJoint(0.50, 0.52)
	hand.Joints[MiddleTip] = presetJoint(0.50, 0.47)

	// Ring extended
	hand.Joints[RingMCP] = presetJoint(0.45, 0.65)
	hand.Joints[RingPIP] = presetJoint(0.44, 0.60)
	hand.Joints[RingDIP] = presetJoint(0.43, 0.55)
	hand.Joints[RingTip] = presetJoint(0.42, 0.50)

	// Pinky extended
	hand.Joints[PinkyMCP] = presetJoint(0.41, 0.68)
	hand.Joints[PinkyPIP] = presetJoint(0.39, 0.64)
	hand.Joints[PinkyDIP] = presetJoint(0.38, 0.59)
	hand.Joints[PinkyTip] = presetJoint(0.36, 0.55)

	return hand
}

// FistHand returns a preset Hand with all fingers curled into the palm.
func FistHand() Hand {
	hand := Hand{
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Joints[Wrist] = presetJoint(0.50, 0.90)

	// Thumb folded across the palm
	hand.Joints[ThumbCMC] = presetJoint(0.55, 0.86)
	hand.Joints[ThumbMCP] = presetJoint(0.60, 0.80)
	hand.Joints[ThumbIP] = presetJoint(0.58, 0.74)
	hand.Joints[ThumbTip] = presetJoint(0.56, 0.68)

	// Fingers curled: tips pulled back toward the wrist, below the knuckles
	hand.Joints[IndexMCP] = presetJoint(0.55, 0.65)
	hand.Joints[IndexPIP] = presetJoint(0.56, 0.62)
	hand.Joints[IndexDIP] = presetJoint(0.55, 0.70)
	hand.Joints[IndexTip] = presetJoint(0.54, 0.75)

	hand.Joints[MiddleMCP] = presetJoint(0.50, 0.63)
	hand.Joints[MiddlePIP] = presetJoint(0.50, 0.60)
	hand.Joints[MiddleDIP] = presetJoint(0.50, 0.68)
	hand.Joints[MiddleTip] = presetJoint(0.50, 0.73)

	hand.Joints[RingMCP] = presetJoint(0.45, 0.65)
	hand.Joints[RingPIP] = presetJoint(0.45, 0.62)
	hand.Joints[RingDIP] = presetJoint(0.45, 0.70)
	hand.Joints[RingTip] = presetJoint(0.46, 0.74)

	hand.Joints[PinkyMCP] = presetJoint(0.41, 0.68)
	hand.Joints[PinkyPIP] = presetJoint(0.41, 0.66)
	hand.Joints[PinkyDIP] = presetJoint(0.42, 0.72)
	hand.Joints[PinkyTip] = presetJoint(0.43, 0.76)

	return hand
}

// PointingHand returns a preset Hand with only the index finger extended.
func PointingHand() Hand {
	hand := FistHand()

	hand.Joints[IndexMCP] = presetJoint(0.55, 0.65)
	hand.Joints[IndexPIP] = presetJoint(0.56, 0.60)
	hand.Joints[IndexDIP] = presetJoint(0.57, 0.55)
	hand.Joints[IndexTip] = presetJoint(0.58, 0.50)

	return hand
}
