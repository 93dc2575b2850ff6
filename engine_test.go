package docs2pdf

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		wantType string
		wantErr  error
	}{
		{"", "rod", nil},
		{"rod", "rod", nil},
		{"ChromeDP", "chromedp", nil},
		{"playwright", "", ErrUnknownEngine},
	}

	for _, tt := range tests {
		e, err := newEngine(tt.name, time.Second)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("newEngine(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			continue
		}

		var got string
		switch e.(type) {
		case *rodEngine:
			got = "rod"
		case *chromedpEngine:
			got = "chromedp"
		}
		if got != tt.wantType {
			t.Errorf("newEngine(%q) = %s, want %s", tt.name, got, tt.wantType)
		}
		if IsValidEngine(tt.name) != (tt.wantErr == nil) {
			t.Errorf("IsValidEngine(%q) disagrees with newEngine", tt.name)
		}
	}
}

func TestEngineClose_WithoutBrowser(t *testing.T) {
	t.Parallel()

	for _, e := range []browserEngine{newRodEngine(time.Second), newChromedpEngine(time.Second)} {
		if err := e.Close(); err != nil {
			t.Errorf("%T.Close() before use error = %v", e, err)
		}
	}
}

func TestSandboxDisabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want bool
	}{
		{"default keeps the sandbox", nil, false},
		{"CI", map[string]string{"CI": "true"}, true},
		{"CI other value", map[string]string{"CI": "1"}, false},
		{"explicit override", map[string]string{"ROD_NO_SANDBOX": "1"}, true},
		{"override other value", map[string]string{"ROD_NO_SANDBOX": "true"}, false},
		{"pre-installed browser", map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			getenv := func(k string) string { return tt.vars[k] }
			if got := SandboxDisabled(getenv); got != tt.want {
				t.Errorf("SandboxDisabled(%v) = %v, want %v", tt.vars, got, tt.want)
			}
		})
	}
}

func TestTimeoutFor(t *testing.T) {
	t.Parallel()

	t.Run("no deadline uses fallback", func(t *testing.T) {
		t.Parallel()

		got, err := timeoutFor(context.Background(), time.Minute)
		if err != nil || got != time.Minute {
			t.Errorf("timeoutFor() = %v, %v", got, err)
		}
	})

	t.Run("earlier deadline wins", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		got, err := timeoutFor(ctx, time.Minute)
		if err != nil || got > 10*time.Second || got <= 0 {
			t.Errorf("timeoutFor() = %v, %v", got, err)
		}
	})

	t.Run("later deadline keeps fallback", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()

		got, err := timeoutFor(ctx, time.Minute)
		if err != nil || got != time.Minute {
			t.Errorf("timeoutFor() = %v, %v", got, err)
		}
	})

	t.Run("expired deadline", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		if _, err := timeoutFor(ctx, time.Minute); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("timeoutFor() error = %v, want DeadlineExceeded", err)
		}
	})
}

func TestBuildRodPDFOptions(t *testing.T) {
	t.Parallel()

	p := printParams{PaperWidth: 8.5, PaperHeight: 11, MarginTop: 1, Scale: 0.7, Landscape: true, PrintBackground: true}
	got := buildRodPDFOptions(p)

	if !got.Landscape || !got.PrintBackground {
		t.Error("flags not carried over")
	}
	if *got.PaperWidth != 8.5 || *got.PaperHeight != 11 || *got.MarginTop != 1 || *got.Scale != 0.7 {
		t.Errorf("dimensions = %v x %v, margin %v, scale %v", *got.PaperWidth, *got.PaperHeight, *got.MarginTop, *got.Scale)
	}
}
