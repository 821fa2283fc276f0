package predict

import "sync/atomic"

// Totals is a snapshot of simulation volume across a run.
type Totals struct {
	Trials    int64
	Conquests int64
}

// Collector accumulates simulation counters. Implementations must be safe
// for concurrent use: one collector is typically shared by every predictor
// in a planning run.
type Collector interface {
	AddTrial()
	AddConquest()
	Snapshot() Totals
}

type collector struct {
	trials    atomic.Int64
	conquests atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) AddTrial() {
	c.trials.Add(1)
}

func (c *collector) AddConquest() {
	c.conquests.Add(1)
}

func (c *collector) Snapshot() Totals {
	return Totals{
		Trials:    c.trials.Load(),
		Conquests: c.conquests.Load(),
	}
}

type nopCollector struct{}

func NewNopCollector() Collector {
	return nopCollector{}
}

func (nopCollector) AddTrial()        {}
func (nopCollector) AddConquest()     {}
func (nopCollector) Snapshot() Totals { return Totals{} }
