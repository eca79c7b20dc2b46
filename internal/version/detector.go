package version

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"sync"
	"time"

	"evalgo.org/lakeservice/internal/domain"
)

// DefaultProbeTimeout bounds how long a version probe may run.
const DefaultProbeTimeout = 10 * time.Second

// probePattern matches the banner line printed by "LakeXpress --version".
var probePattern = regexp.MustCompile(`LakeXpress\s+(\d+)\.(\d+)\.(\d+)`)

// Prober invokes the LakeXpress binary with its version-query flags and
// returns the combined output.
type Prober interface {
	Probe(ctx context.Context, binaryPath string) (string, error)
}

// ExecProber probes by actually running the binary.
type ExecProber struct{}

// Probe runs "<binary> --version --no_banner" and returns combined
// stdout/stderr. A non-zero exit with usable output is not an error; some
// builds print the banner to stderr and exit non-zero.
func (ExecProber) Probe(ctx context.Context, binaryPath string) (string, error) {
	cmd := exec.CommandContext(ctx, binaryPath, "--version", "--no_banner")
	out, err := cmd.CombinedOutput()
	if err != nil && len(out) == 0 {
		return "", err
	}
	return string(out), nil
}

// Detector probes the LakeXpress binary version exactly once per process
// lifetime. The first call to Detect performs the probe; every later call,
// from any goroutine, observes the cached outcome. A failed probe is cached
// as permanently undetected and never retried.
type Detector struct {
	binaryPath string
	prober     Prober
	timeout    time.Duration

	once     sync.Once
	detected *Version
	probeErr error
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithProber substitutes the probe implementation (used in tests).
func WithProber(p Prober) DetectorOption {
	return func(d *Detector) { d.prober = p }
}

// WithProbeTimeout overrides the probe timeout.
func WithProbeTimeout(t time.Duration) DetectorOption {
	return func(d *Detector) { d.timeout = t }
}

// NewDetector creates a detector for the binary at the given path.
func NewDetector(binaryPath string, opts ...DetectorOption) *Detector {
	d := &Detector{
		binaryPath: binaryPath,
		prober:     ExecProber{},
		timeout:    DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the detected version, or nil with a *domain.DetectionError
// describing why detection failed. Both outcomes are memoized.
func (d *Detector) Detect() (*Version, error) {
	d.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		out, err := d.prober.Probe(ctx, d.binaryPath)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				d.probeErr = domain.NewDetectionError("version probe timed out", err)
				return
			}
			d.probeErr = domain.NewDetectionError("version probe failed", err)
			return
		}

		m := probePattern.FindStringSubmatch(out)
		if m == nil {
			d.probeErr = domain.NewDetectionError("could not parse version from probe output", nil)
			return
		}
		major, _ := strconv.Atoi(m[1])
		minor, _ := strconv.Atoi(m[2])
		patch, _ := strconv.Atoi(m[3])
		d.detected = &Version{Major: major, Minor: minor, Patch: patch}
	})
	return d.detected, d.probeErr
}

// Resolver ties a detector to the version registry: one probe, then
// capability resolution per the registry rules.
type Resolver struct {
	registry *Registry
	detector *Detector
}

// NewResolver creates a resolver over the given registry and detector.
func NewResolver(registry *Registry, detector *Detector) *Resolver {
	return &Resolver{registry: registry, detector: detector}
}

// Detected returns the probed version, or nil when detection failed.
func (r *Resolver) Detected() *Version {
	v, _ := r.detector.Detect()
	return v
}

// Capabilities resolves the capability set for the detected (or undetected)
// binary version.
func (r *Resolver) Capabilities() CapabilitySet {
	return r.registry.Resolve(r.Detected())
}
