package markstressd

const (
	DefaultGoroutines = 8
	DefaultIterations = 10000
	DefaultKeyRange   = 1024
)

type Options struct {
	Goroutines     int
	Iterations     int
	KeyRange       int64
	EmulateLocking bool
	SnapshotPath   string
	LogLevel       string
}

func (p *Options) setDefaults() {
	if p.Goroutines == 0 {
		p.Goroutines = DefaultGoroutines
	}
	if p.Iterations == 0 {
		p.Iterations = DefaultIterations
	}
	if p.KeyRange == 0 {
		p.KeyRange = DefaultKeyRange
	}
}
