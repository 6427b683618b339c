package orchard

// depthManager keeps the engine's paint order sorted by a per-body depth.
// Bodies without a declared depth sit at depthDefault.
type depthManager struct {
	depths map[BodyID]int
	buf    []BodyID
}

func newDepthManager() *depthManager {
	return &depthManager{depths: make(map[BodyID]int)}
}

func (d *depthManager) set(id BodyID, depth int) {
	if depth == depthDefault {
		delete(d.depths, id)
		return
	}
	d.depths[id] = depth
}

func (d *depthManager) forget(id BodyID) {
	delete(d.depths, id)
}

func (d *depthManager) depth(id BodyID) int {
	return d.depths[id]
}

// apply re-sorts the engine's draw order. Uses insertion sort: stable, no
// allocations once the buffer has grown, and O(n) in the usual case where a
// single body was appended to an already sorted list.
func (d *depthManager) apply(e Engine) {
	order := e.DrawOrder()
	d.buf = append(d.buf[:0], order...)
	for i := 1; i < len(d.buf); i++ {
		key := d.buf[i]
		kd := d.depths[key]
		j := i - 1
		for j >= 0 && d.depths[d.buf[j]] > kd {
			d.buf[j+1] = d.buf[j]
			j--
		}
		d.buf[j+1] = key
	}
	sorted := make([]BodyID, len(d.buf))
	copy(sorted, d.buf)
	e.SetDrawOrder(sorted)
}
