package version

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// countingProber records how many times Probe was called.
type countingProber struct {
	mu     sync.Mutex
	calls  int
	output string
	err    error
	delay  time.Duration
}

func (p *countingProber) Probe(ctx context.Context, binaryPath string) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return p.output, p.err
}

func (p *countingProber) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestDetectorParsesProbeOutput(t *testing.T) {
	prober := &countingProber{output: "LakeXpress 0.2.8\nDatabase to Parquet export tool\n"}
	detector := NewDetector("/usr/local/bin/LakeXpress", WithProber(prober))

	v, err := detector.Detect()
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if v == nil || *v != (Version{0, 2, 8}) {
		t.Fatalf("Detect() = %v, want 0.2.8", v)
	}
}

func TestDetectorMemoizesOutcome(t *testing.T) {
	prober := &countingProber{err: errors.New("binary not found")}
	detector := NewDetector("/nonexistent/LakeXpress", WithProber(prober))

	for i := 0; i < 3; i++ {
		v, err := detector.Detect()
		if v != nil {
			t.Fatalf("Detect() = %v, want nil after probe failure", v)
		}
		if err == nil {
			t.Fatal("Detect() error = nil, want detection failure")
		}
	}

	if got := prober.callCount(); got != 1 {
		t.Errorf("probe attempted %d times, want exactly 1", got)
	}
}

func TestDetectorConcurrentCallersShareOneProbe(t *testing.T) {
	prober := &countingProber{output: "LakeXpress 0.2.8"}
	detector := NewDetector("/usr/local/bin/LakeXpress", WithProber(prober))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, _ := detector.Detect(); v == nil {
				t.Error("Detect() returned nil for successful probe")
			}
		}()
	}
	wg.Wait()

	if got := prober.callCount(); got != 1 {
		t.Errorf("probe attempted %d times, want exactly 1", got)
	}
}

func TestDetectorTimeout(t *testing.T) {
	prober := &countingProber{output: "LakeXpress 0.2.8", delay: time.Second}
	detector := NewDetector("/usr/local/bin/LakeXpress",
		WithProber(prober), WithProbeTimeout(10*time.Millisecond))

	v, err := detector.Detect()
	if v != nil {
		t.Fatalf("Detect() = %v, want nil on timeout", v)
	}
	if err == nil {
		t.Fatal("Detect() error = nil, want timeout failure")
	}
}

func TestDetectorUnparseableOutput(t *testing.T) {
	prober := &countingProber{output: "usage: LakeXpress [command]"}
	detector := NewDetector("/usr/local/bin/LakeXpress", WithProber(prober))

	if v, err := detector.Detect(); v != nil || err == nil {
		t.Fatalf("Detect() = (%v, %v), want (nil, error) for unparseable output", v, err)
	}
}

func TestResolverFallsBackWhenUndetected(t *testing.T) {
	prober := &countingProber{err: errors.New("no such file")}
	detector := NewDetector("/nonexistent/LakeXpress", WithProber(prober))
	resolver := NewResolver(DefaultRegistry(), detector)

	if resolver.Detected() != nil {
		t.Fatal("Detected() should be nil when the probe fails")
	}

	caps := resolver.Capabilities()
	if !caps.SourceDatabases["postgresql"] {
		t.Error("undetected version must resolve to the newest known capability set")
	}
}
