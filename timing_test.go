package cursorfx

import (
	"errors"
	"testing"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"200ms", 200},
		{"0.2s", 200},
		{".5s", 500},
		{"1.5S", 1500},
		{"0", 0},
		{" 75ms ", 75},
		{"-100ms", -100},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			if err != nil {
				t.Fatalf("ParseTime(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTimeInvalid(t *testing.T) {
	for _, in := range []string{"", "200", "soon", "200px", "10ms 5ms", "ms"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseTime(in); !errors.Is(err, ErrInvalidTime) {
				t.Errorf("ParseTime(%q) error = %v, want ErrInvalidTime", in, err)
			}
		})
	}
}

func TestParseTimingFunction(t *testing.T) {
	tests := []struct {
		in   string
		x    float64
		want float64
	}{
		{"linear", 0.3, 0.3},
		{"LINEAR", 0.7, 0.7},
		{"ease-in-out", 0.5, 0.5},
		{"ease", 0, 0},
		{"ease", 1, 1},
		{"cubic-bezier(0, 0, 1, 1)", 0.3, 0.3},
		{"cubic-bezier(0.25, 0.1, 0.25, 1)", 1, 1},
		{"step-start", 0, 1},
		{"step-end", 0.99, 0},
		{"steps(4)", 0.3, 0.25},
		{"steps(4)", 1, 1},
		{"steps(4, jump-start)", 0, 0.25},
		{"steps(5, jump-none)", 0.5, 0.5},
		{"steps(5, jump-none)", 1, 1},
		{"steps(3, jump-both)", 0, 0.25},
		{"steps(3, jump-both)", 1, 1},
		{"linear(0, 0.25 75%, 1)", 0.375, 0.125},
		{"linear(0, 0.25 75%, 1)", 0.875, 0.625},
		{"linear(0, 1, 0)", 0.25, 0.5},
		{"linear(0, 1 20% 80%, 0)", 0.5, 1},
		{"out-quad", 0.5, 0.75},
		{"in-quad", 0.5, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			fn, err := ParseTimingFunction(tt.in)
			if err != nil {
				t.Fatalf("ParseTimingFunction(%q): %v", tt.in, err)
			}
			if got := fn(tt.x); !approxEqual(got, tt.want, 1e-5) {
				t.Errorf("%s(%v) = %v, want %v", tt.in, tt.x, got, tt.want)
			}
		})
	}
}

func TestParseTimingFunctionInvalid(t *testing.T) {
	tests := []string{
		"",
		"wobbly",
		"ease-in ease-out",
		"cubic-bezier(2, 0, 0, 1)",
		"cubic-bezier(0, 0, 1)",
		"cubic-bezier(0, 0, 1, 1",
		"cubic-bezier(0px, 0, 1, 1)",
		"steps(0)",
		"steps(2.5)",
		"steps(1, jump-none)",
		"steps(2, sideways)",
		"linear(1)",
		"linear(0, 1 50% 60% 70%)",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseTimingFunction(in); !errors.Is(err, ErrInvalidTimingFunction) {
				t.Errorf("ParseTimingFunction(%q) error = %v, want ErrInvalidTimingFunction", in, err)
			}
		})
	}
}

func TestCubicBezierMonotonicForMonotonicCurve(t *testing.T) {
	fn := cubicBezier(0.42, 0, 0.58, 1)
	prev := fn(0)
	for i := 1; i <= 100; i++ {
		cur := fn(float64(i) / 100)
		if cur < prev-1e-9 {
			t.Fatalf("ease-in-out decreased at %v: %v < %v", float64(i)/100, cur, prev)
		}
		prev = cur
	}
}

func TestCubicBezierOvershoot(t *testing.T) {
	fn := cubicBezier(0.2, 1.4, 0.6, 1)
	peak := 0.0
	for i := 0; i <= 100; i++ {
		if v := fn(float64(i) / 100); v > peak {
			peak = v
		}
	}
	if peak <= 1 {
		t.Errorf("peak = %v, want overshoot above 1", peak)
	}
	if fn(1) != 1 {
		t.Errorf("fn(1) = %v, want exactly 1", fn(1))
	}
}

func TestCubicBezierClampsInput(t *testing.T) {
	fn := cubicBezier(0.25, 0.1, 0.25, 1)
	if fn(-1) != 0 || fn(2) != 1 {
		t.Errorf("fn(-1), fn(2) = %v, %v, want 0, 1", fn(-1), fn(2))
	}
}
