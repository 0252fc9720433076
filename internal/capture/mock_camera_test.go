package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_Playback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	f1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer f1.Close()
	f2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer f2.Close()

	cam := NewMockCamera([]*gocv.Mat{&f1, &f2}, false)

	if _, err := cam.ReadFrame(); err != ErrCameraNotOpen {
		t.Fatalf("ReadFrame before Open: err = %v, want ErrCameraNotOpen", err)
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame %d error = %v", i, err)
		}
		frame.Close()
	}

	// Non-looping camera runs out after the last frame
	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error after frames are exhausted")
	}

	cam.Reset()
	frame, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame after Reset error = %v", err)
	}
	frame.Close()
}

func TestMockCamera_Loop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	f := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer f.Close()

	cam := NewMockCamera([]*gocv.Mat{&f}, true)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := 0; i < 5; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("looping ReadFrame %d error = %v", i, err)
		}
		frame.Close()
	}
}
