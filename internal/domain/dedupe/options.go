package dedupe

// Option applies a configuration option to the ring deduper.
type Option func(*ringDeduper)

// WithMaxSize bounds the number of fingerprints kept in memory. The oldest
// entry is evicted when the bound is reached. maxSize <= 0 keeps everything.
func WithMaxSize(maxSize int) Option {
	return func(d *ringDeduper) {
		d.maxSize = maxSize
	}
}
