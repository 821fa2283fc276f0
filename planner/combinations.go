package planner

// counter enumerates every assignment of a bonus level in 0..=max to each of
// its digits by mixed-radix incrementing: bump digit 0, carry into digit 1
// when it passes max, and so on. It yields the full Cartesian product of
// (max+1)^digits states; the sum constraint is the consumer's filter. State
// starts at all zeros and is exhausted when every digit wraps at once.
type counter struct {
	digits []int
	max    int
}

func newCounter(digitCount, max int) *counter {
	return &counter{
		digits: make([]int, digitCount),
		max:    max,
	}
}

// next advances to the following state, reporting false when the counter has
// wrapped back to all zeros.
func (c *counter) next() bool {
	for i := range c.digits {
		c.digits[i]++
		if c.digits[i] <= c.max {
			return true
		}
		c.digits[i] = 0
	}
	return false
}

func (c *counter) sum() int {
	total := 0
	for _, digit := range c.digits {
		total += digit
	}
	return total
}
