package command

// ring is a fixed-capacity stack that silently drops its oldest entry
// when full. History, undo and redo all sit on one of these so a long
// session cannot grow without bound.
type ring[T any] struct {
	buf   []T
	start int
	n     int
}

func newRing[T any](capacity int) *ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &ring[T]{buf: make([]T, capacity)}
}

func (r *ring[T]) Len() int { return r.n }

func (r *ring[T]) Cap() int { return len(r.buf) }

// Push appends v as the newest entry, evicting the oldest when full.
func (r *ring[T]) Push(v T) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = v
		r.n++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

// Pop removes and returns the newest entry.
func (r *ring[T]) Pop() (T, bool) {
	var zero T
	if r.n == 0 {
		return zero, false
	}
	i := (r.start + r.n - 1) % len(r.buf)
	v := r.buf[i]
	r.buf[i] = zero
	r.n--
	return v, true
}

// Peek returns the newest entry without removing it.
func (r *ring[T]) Peek() (T, bool) {
	var zero T
	if r.n == 0 {
		return zero, false
	}
	return r.buf[(r.start+r.n-1)%len(r.buf)], true
}

// At returns the i-th entry counting from the oldest.
func (r *ring[T]) At(i int) T {
	return r.buf[(r.start+i)%len(r.buf)]
}

// Items copies the entries out, oldest first.
func (r *ring[T]) Items() []T {
	out := make([]T, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = r.At(i)
	}
	return out
}

func (r *ring[T]) Clear() {
	var zero T
	for i := 0; i < r.n; i++ {
		r.buf[(r.start+i)%len(r.buf)] = zero
	}
	r.start, r.n = 0, 0
}
