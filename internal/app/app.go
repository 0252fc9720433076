// Package app wires the capture, detection, pose tracking and persistence
// pieces of the handcount finger tracking system together.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/handcount/internal/capture"
	"github.com/ayusman/handcount/internal/landmark"
	"github.com/ayusman/handcount/internal/pose"
	"github.com/ayusman/handcount/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a hand is plausibly in frame.
	ActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the pipeline waits
	// before dropping back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
}

// App owns the frame pipeline: camera capture, motion gating, hand landmark
// detection, pose interpretation, and fan-out of count changes to the event
// log and registered callbacks.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector landmark.Detector
	tracker  *pose.Tracker

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	session *store.Session

	// prevCount is touched only by the pipeline goroutine, via the
	// tracker's change callback.
	prevCount int

	snapMu   sync.RWMutex
	snapshot pose.Snapshot

	cbMu           sync.RWMutex
	countCallbacks []func(count int)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.CameraID),
		motion:  capture.NewMotionDetector(motionThreshold),
		tracker: pose.NewTracker(),
		enabled: false,
	}
	a.tracker.OnCountChange = a.handleCountChange
	a.snapshot = a.tracker.Snapshot()

	// Try MediaPipe first, fall back to mock detector
	if mp, err := landmark.NewMediaPipeDetector(landmark.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = landmark.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables hand tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether hand tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d landmark.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() landmark.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// RegisterCountCallback adds a callback invoked with the new count whenever
// the extended-finger count changes. Callbacks run on the pipeline
// goroutine; callers needing another goroutine marshal themselves.
func (a *App) RegisterCountCallback(fn func(count int)) {
	if fn == nil {
		return
	}
	a.cbMu.Lock()
	defer a.cbMu.Unlock()
	a.countCallbacks = append(a.countCallbacks, fn)
}

// Snapshot returns the most recently published pose state.
func (a *App) Snapshot() pose.Snapshot {
	a.snapMu.RLock()
	defer a.snapMu.RUnlock()
	return a.snapshot
}

// Start opens the camera, begins a capture session, and launches the
// detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	if _, err := a.beginSessionLocked(); err != nil {
		log.Printf("Failed to create session: %v", err)
	}

	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline, ends the capture session, and releases
// resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.config.Store != nil && a.session != nil {
		if err := a.config.Store.Sessions().End(a.session.ID); err != nil {
			log.Printf("Error ending session: %v", err)
		}
		a.session = nil
	}

	log.Println("Detection pipeline stopped")
}

// BeginSession opens a new capture session in the store; count transitions
// are recorded against it until Stop. Start calls this automatically, so
// explicit calls are only needed when driving ProcessFrame without the
// camera pipeline.
func (a *App) BeginSession() (*store.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.beginSessionLocked()
}

func (a *App) beginSessionLocked() (*store.Session, error) {
	if a.config.Store == nil || a.session != nil {
		return a.session, nil
	}

	session, err := a.config.Store.Sessions().Create()
	if err != nil {
		return nil, err
	}

	a.session = session
	log.Printf("Capture session %s started", session.ID)
	return session, nil
}

// currentSession returns the active capture session, if any.
func (a *App) currentSession() *store.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// handleCountChange is the tracker's change callback: it records the
// transition in the event log and fans it out to registered callbacks.
func (a *App) handleCountChange(count int) {
	previous := a.prevCount
	a.prevCount = count

	log.Printf("Finger count changed: %d -> %d", previous, count)

	if session := a.currentSession(); session != nil && a.config.Store != nil {
		event := &store.CountEvent{
			SessionID:     session.ID,
			Count:         count,
			PreviousCount: previous,
			AtMs:          time.Now().UnixMilli(),
		}
		if err := a.config.Store.Events().Record(event); err != nil {
			log.Printf("Failed to record count event: %v", err)
		}
	}

	a.cbMu.RLock()
	callbacks := a.countCallbacks
	a.cbMu.RUnlock()

	for _, fn := range callbacks {
		fn(count)
	}
}
