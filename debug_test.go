package fractal

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugRenderLogsStats(t *testing.T) {
	r := &Renderer{Debug: true, Workers: 2}
	output := captureStderr(t, func() {
		if _, err := r.Render(context.Background(), smallParams()); err != nil {
			t.Error(err)
		}
	})
	if !strings.Contains(output, "[fractal] render 100x100") {
		t.Errorf("expected render stats in stderr, got: %q", output)
	}
	if !strings.Contains(output, "workers 2") {
		t.Errorf("expected worker count in stderr, got: %q", output)
	}
	if !strings.Contains(output, "interior:") {
		t.Errorf("expected interior count in stderr, got: %q", output)
	}
}

func TestDebugFramesLogsAnimation(t *testing.T) {
	r := &Renderer{Debug: true}
	output := captureStderr(t, func() {
		if _, err := r.GenerateFrames(context.Background(), tinyParams(), AnimationWave, 3); err != nil {
			t.Error(err)
		}
	})
	if !strings.Contains(output, "[fractal] animation wave: frames 3") {
		t.Errorf("expected animation stats in stderr, got: %q", output)
	}
}

func TestDebugOffIsSilent(t *testing.T) {
	r := &Renderer{}
	output := captureStderr(t, func() {
		if _, err := r.GenerateFrames(context.Background(), tinyParams(), AnimationZoomIn, 2); err != nil {
			t.Error(err)
		}
	})
	if output != "" {
		t.Errorf("expected no stderr output, got: %q", output)
	}
}

func TestPercent(t *testing.T) {
	assertNear(t, "percent(1, 4)", percent(1, 4), 25)
	assertNear(t, "percent(3, 0)", percent(3, 0), 0)
}
