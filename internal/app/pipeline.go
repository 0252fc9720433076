package app

import (
	"log"
	"time"

	"github.com/ayusman/handcount/internal/landmark"
)

// runPipeline is the main loop that processes frames from the camera.
//
// Pipeline logic:
// 1. Start in idle mode (5 FPS), watching for motion only
// 2. On motion, switch to active mode (15 FPS) and run landmark detection
// 3. Feed each frame's detection result to the pose tracker: no hand clears
//    the tracker, a hand updates it
// 4. Publish a snapshot of the tracker state after every processed frame
// 5. After 2s without motion, clear the tracker and fall back to idle mode
func (a *App) runPipeline() {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					ticker.Reset(time.Second / time.Duration(ActiveFPS))
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					ticker.Reset(time.Second / time.Duration(IdleFPS))

					// The hand is gone; drop all derived pose state
					a.ProcessFrame(nil)
					log.Println("Switched to idle mode")
				}
			}

			detector := a.Detector()
			if !activeMode || detector == nil {
				frame.Close()
				continue
			}

			hands, err := detector.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			a.ProcessFrame(hands)
		}
	}
}

// ProcessFrame feeds one frame's detection result to the pose tracker and
// refreshes the published snapshot. No hand clears the tracker; when the
// detector reports several hands, the highest-score one wins (the tracker
// interprets a single hand per frame).
func (a *App) ProcessFrame(hands []landmark.Hand) {
	if len(hands) == 0 {
		a.tracker.Clear()
	} else {
		best := &hands[0]
		for i := 1; i < len(hands); i++ {
			if hands[i].Score > best.Score {
				best = &hands[i]
			}
		}
		a.tracker.Update(best)
	}

	snap := a.tracker.Snapshot()
	a.snapMu.Lock()
	a.snapshot = snap
	a.snapMu.Unlock()
}
