package render

// ListContext is the per-render list state: a counter per open list level
// and the current indent string. A fresh context is used for every top-level
// render call.
type ListContext struct {
	counters []int
	ordered  []bool
	indent   string
}

// NewListContext returns an empty context at depth zero.
func NewListContext() *ListContext {
	return &ListContext{}
}

// Enter opens a list level.
func (c *ListContext) Enter(ordered bool) {
	c.counters = append(c.counters, 0)
	c.ordered = append(c.ordered, ordered)
}

// Leave closes the innermost list level. It is a no-op at depth zero.
func (c *ListContext) Leave() {
	if len(c.counters) == 0 {
		return
	}
	c.counters = c.counters[:len(c.counters)-1]
	c.ordered = c.ordered[:len(c.ordered)-1]
}

// Next advances the innermost counter and returns the new item number.
// Outside any list it returns 0.
func (c *ListContext) Next() int {
	if len(c.counters) == 0 {
		return 0
	}
	c.counters[len(c.counters)-1]++
	return c.counters[len(c.counters)-1]
}

// Depth returns the number of open list levels.
func (c *ListContext) Depth() int {
	return len(c.counters)
}

// Ordered reports whether the innermost open list is ordered.
func (c *ListContext) Ordered() bool {
	return len(c.ordered) > 0 && c.ordered[len(c.ordered)-1]
}

// Indent returns the current indent string.
func (c *ListContext) Indent() string {
	return c.indent
}

// SetIndent replaces the current indent string.
func (c *ListContext) SetIndent(indent string) {
	c.indent = indent
}
