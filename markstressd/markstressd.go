package markstressd

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	"soloos/sdatomic"
	"soloos/sdatomic/harrislist"
	"soloos/sdatomic/log"
)

var (
	ErrCounterMismatch = errors.New("markable counter lost an update")
	ErrListMismatch    = errors.New("harrislist size does not match its keys")
)

type Report struct {
	Goroutines   int
	Iterations   int
	CASAttempts  int64
	CASSuccesses int64
	Counter      int64
	CounterMark  bool
	ListLen      int
	LockFree     bool
	Elapsed      time.Duration
}

// MARKSTRESSD races goroutines over one MarkableReference counter and one
// harrislist, then checks that no update was lost.
type MARKSTRESSD struct {
	options Options

	counter      sdatomic.MarkableReference[int64]
	casAttempts  sdatomic.Integer
	casSuccesses sdatomic.Integer
	list         *harrislist.List

	report Report
}

func (p *MARKSTRESSD) Init(options Options) error {
	var err error

	options.setDefaults()
	if options.Goroutines < 0 || options.Iterations < 0 || options.KeyRange < 0 {
		return fmt.Errorf("%w: negative stress options %+v", sdatomic.ErrInvalidArgument, options)
	}
	// keys are drawn from [0, KeyRange]
	if options.KeyRange == math.MaxInt64 {
		return fmt.Errorf("%w: key range %d too large", sdatomic.ErrInvalidArgument, options.KeyRange)
	}
	if options.LogLevel != "" {
		if err = log.SetLevel(options.LogLevel); err != nil {
			return err
		}
	}
	p.options = options

	atomicOptions := sdatomic.Options{EmulateLocking: options.EmulateLocking}
	var zero int64
	err = p.counter.InitWithOptions(&zero, false, atomicOptions)
	if err != nil {
		return err
	}
	p.casAttempts.Init(0, atomicOptions)
	p.casSuccesses.Init(0, atomicOptions)
	p.list = harrislist.NewListWithOptions(atomicOptions)

	return nil
}

func (p *MARKSTRESSD) Start() error {
	var (
		wg    sync.WaitGroup
		start = time.Now()
	)

	log.Info("markstressd start, goroutines:", p.options.Goroutines,
		", iterations:", p.options.Iterations, ", lockfree:", p.counter.LockFree())
	for i := 0; i < p.options.Goroutines; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			p.work(rand.New(rand.NewSource(seed)))
		}(start.UnixNano() + int64(i))
	}
	wg.Wait()

	err := p.verify(time.Since(start))
	if err != nil {
		log.Error("markstressd verify error, err:", err)
		return err
	}
	log.Info("markstressd done, report:", fmt.Sprintf("%+v", p.report))

	if p.options.SnapshotPath != "" {
		err = os.WriteFile(p.options.SnapshotPath, p.list.Snapshot(), 0o644)
		if err != nil {
			log.Error("markstressd write snapshot error, path:", p.options.SnapshotPath, ", err:", err)
			return err
		}
	}

	return nil
}

func (p *MARKSTRESSD) work(r *rand.Rand) {
	for j := 0; j < p.options.Iterations; j++ {
		p.incrementCounter()

		key := r.Int63n(p.options.KeyRange + 1)
		switch r.Intn(3) {
		case 0:
			p.list.Add(key)
		case 1:
			p.list.Remove(key)
		default:
			p.list.Contains(key)
		}
	}
}

func (p *MARKSTRESSD) incrementCounter() {
	for {
		cur, mark := p.counter.Get()
		next := *cur + 1
		p.casAttempts.Increment()
		if p.counter.CompareAndSet(cur, &next, mark, !mark) {
			p.casSuccesses.Increment()
			return
		}
	}
}

func (p *MARKSTRESSD) verify(elapsed time.Duration) error {
	counter, mark := p.counter.Get()
	p.report = Report{
		Goroutines:   p.options.Goroutines,
		Iterations:   p.options.Iterations,
		CASAttempts:  p.casAttempts.Get(),
		CASSuccesses: p.casSuccesses.Get(),
		Counter:      *counter,
		CounterMark:  mark,
		ListLen:      p.list.Len(),
		LockFree:     p.counter.LockFree(),
		Elapsed:      elapsed,
	}

	expect := int64(p.options.Goroutines) * int64(p.options.Iterations)
	if p.report.Counter != expect || p.report.CASSuccesses != expect ||
		p.report.CounterMark != (expect%2 == 1) {
		return fmt.Errorf("%w: counter %d, successes %d, expect %d",
			ErrCounterMismatch, p.report.Counter, p.report.CASSuccesses, expect)
	}
	if keys := p.list.Keys(); len(keys) != p.report.ListLen {
		return fmt.Errorf("%w: len %d, keys %d", ErrListMismatch, p.report.ListLen, len(keys))
	}
	return nil
}

func (p *MARKSTRESSD) Report() Report {
	return p.report
}
