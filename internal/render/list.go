package render

// ListContext tracks ordered-list counters, one per open nesting depth.
// The counter slice is never empty.
type ListContext struct {
	counters []int
}

func NewListContext() *ListContext {
	return &ListContext{counters: []int{0}}
}

// Next increments the counter at the current depth and returns it.
func (c *ListContext) Next() int {
	last := len(c.counters) - 1
	c.counters[last]++
	return c.counters[last]
}

// Push opens a new nesting depth starting at zero.
func (c *ListContext) Push() {
	c.counters = append(c.counters, 0)
}

// Pop closes the current depth. Popping the last depth re-seeds a zero
// counter.
func (c *ListContext) Pop() {
	c.counters = c.counters[:len(c.counters)-1]
	if len(c.counters) == 0 {
		c.counters = append(c.counters, 0)
	}
}

// Depth reports the number of open nesting depths.
func (c *ListContext) Depth() int {
	return len(c.counters)
}
