package downmix

// Option configures a StereoMixer at construction time.
type Option func(*StereoMixer)

// WithoutFastPaths forces the generic matrix path for all layouts, including
// the ones that would otherwise take a specialized closed form. Mainly useful
// for testing the matrix path in isolation and for A/B measurements.
func WithoutFastPaths() Option {
	return func(m *StereoMixer) {
		m.fastPaths = false
	}
}
