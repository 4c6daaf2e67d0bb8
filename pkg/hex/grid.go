package hex

// Chunk dimensions in tiles.
const (
	ChunkWidth  = 8
	ChunkHeight = 8
	ChunkSize   = ChunkWidth * ChunkHeight
)

// Storage is the capability set the pathfinding code needs from a hex grid.
// Any spatial structure that satisfies it can back terrain or a direction field.
type Storage[T any] interface {
	// Get returns the tile value and whether the tile exists.
	Get(a Axial) (T, bool)
	// Set creates or replaces the tile at a.
	Set(a Axial, v T)
	// InsertChunk copies every present tile of c into the storage.
	InsertChunk(c *Chunk[T])
	// Neighbors returns the six coordinates adjacent to a, present or not.
	Neighbors(a Axial) [6]Axial
	// Clear removes every tile.
	Clear()
	// Len returns the number of present tiles.
	Len() int
	// Each calls fn for every present tile. Iteration order is unspecified.
	Each(fn func(a Axial, v T))
}

// Chunk is a ChunkWidth x ChunkHeight block of optional tiles.
// Chunk (cq, cr) covers q in [cq*ChunkWidth, (cq+1)*ChunkWidth) and the same for r.
type Chunk[T any] struct {
	Q, R    int
	tiles   [ChunkSize]T
	present [ChunkSize]bool
	count   int
}

// NewChunk creates an empty chunk at chunk coordinate (q, r).
func NewChunk[T any](q, r int) *Chunk[T] {
	return &Chunk[T]{Q: q, R: r}
}

// Origin returns the axial coordinate of the chunk's first tile.
func (c *Chunk[T]) Origin() Axial {
	return Axial{Q: c.Q * ChunkWidth, R: c.R * ChunkHeight}
}

// SetLocal stores v at local offset (lq, lr). Out of range offsets are ignored.
func (c *Chunk[T]) SetLocal(lq, lr int, v T) {
	if lq < 0 || lr < 0 || lq >= ChunkWidth || lr >= ChunkHeight {
		return
	}
	idx := lr*ChunkWidth + lq
	if !c.present[idx] {
		c.present[idx] = true
		c.count++
	}
	c.tiles[idx] = v
}

// GetLocal returns the tile at local offset (lq, lr).
func (c *Chunk[T]) GetLocal(lq, lr int) (T, bool) {
	var zero T
	if lq < 0 || lr < 0 || lq >= ChunkWidth || lr >= ChunkHeight {
		return zero, false
	}
	idx := lr*ChunkWidth + lq
	if !c.present[idx] {
		return zero, false
	}
	return c.tiles[idx], true
}

// Fill sets every tile of the chunk from fn, called with world coordinates.
func (c *Chunk[T]) Fill(fn func(a Axial) T) {
	origin := c.Origin()
	for lr := 0; lr < ChunkHeight; lr++ {
		for lq := 0; lq < ChunkWidth; lq++ {
			c.SetLocal(lq, lr, fn(origin.Add(Axial{Q: lq, R: lr})))
		}
	}
}

// Len returns the number of present tiles.
func (c *Chunk[T]) Len() int {
	return c.count
}

func (c *Chunk[T]) clear(idx int) {
	if c.present[idx] {
		var zero T
		c.present[idx] = false
		c.tiles[idx] = zero
		c.count--
	}
}

// Grid is chunked hex storage. Chunks are allocated lazily on first write.
type Grid[T any] struct {
	chunks map[Axial]*Chunk[T]
	count  int
}

// NewGrid creates an empty chunked grid.
func NewGrid[T any]() *Grid[T] {
	return &Grid[T]{chunks: make(map[Axial]*Chunk[T])}
}

// ChunkOf returns the chunk coordinate containing a.
func ChunkOf(a Axial) Axial {
	return Axial{Q: floorDiv(a.Q, ChunkWidth), R: floorDiv(a.R, ChunkHeight)}
}

func (g *Grid[T]) locate(a Axial) (chunk Axial, lq, lr int) {
	chunk = ChunkOf(a)
	return chunk, a.Q - chunk.Q*ChunkWidth, a.R - chunk.R*ChunkHeight
}

// Get returns the tile at a.
func (g *Grid[T]) Get(a Axial) (T, bool) {
	key, lq, lr := g.locate(a)
	c, ok := g.chunks[key]
	if !ok {
		var zero T
		return zero, false
	}
	return c.GetLocal(lq, lr)
}

// Set stores v at a, allocating the chunk if needed.
func (g *Grid[T]) Set(a Axial, v T) {
	key, lq, lr := g.locate(a)
	c, ok := g.chunks[key]
	if !ok {
		c = NewChunk[T](key.Q, key.R)
		g.chunks[key] = c
	}
	before := c.count
	c.SetLocal(lq, lr, v)
	g.count += c.count - before
}

// Delete removes the tile at a, if present.
func (g *Grid[T]) Delete(a Axial) {
	key, lq, lr := g.locate(a)
	c, ok := g.chunks[key]
	if !ok {
		return
	}
	before := c.count
	c.clear(lr*ChunkWidth + lq)
	g.count -= before - c.count
	if c.count == 0 {
		delete(g.chunks, key)
	}
}

// InsertChunk installs c, replacing any chunk at the same coordinate.
// The grid takes ownership of c.
func (g *Grid[T]) InsertChunk(c *Chunk[T]) {
	key := Axial{Q: c.Q, R: c.R}
	if old, ok := g.chunks[key]; ok {
		g.count -= old.count
	}
	g.chunks[key] = c
	g.count += c.count
}

// Neighbors returns the six coordinates adjacent to a.
func (g *Grid[T]) Neighbors(a Axial) [6]Axial {
	return a.Neighbors()
}

// Clear removes all chunks.
func (g *Grid[T]) Clear() {
	clear(g.chunks)
	g.count = 0
}

// Len returns the number of present tiles.
func (g *Grid[T]) Len() int {
	return g.count
}

// ChunkCount returns the number of allocated chunks.
func (g *Grid[T]) ChunkCount() int {
	return len(g.chunks)
}

// Each calls fn for every present tile.
func (g *Grid[T]) Each(fn func(a Axial, v T)) {
	for _, c := range g.chunks {
		origin := c.Origin()
		for idx := 0; idx < ChunkSize; idx++ {
			if !c.present[idx] {
				continue
			}
			fn(origin.Add(Axial{Q: idx % ChunkWidth, R: idx / ChunkWidth}), c.tiles[idx])
		}
	}
}

// MapStorage is Storage backed by a plain map keyed by coordinate.
type MapStorage[T any] struct {
	tiles map[Axial]T
}

// NewMapStorage creates an empty map-backed storage.
func NewMapStorage[T any]() *MapStorage[T] {
	return &MapStorage[T]{tiles: make(map[Axial]T)}
}

// Get returns the tile at a.
func (m *MapStorage[T]) Get(a Axial) (T, bool) {
	v, ok := m.tiles[a]
	return v, ok
}

// Set stores v at a.
func (m *MapStorage[T]) Set(a Axial, v T) {
	m.tiles[a] = v
}

// InsertChunk copies the present tiles of c.
func (m *MapStorage[T]) InsertChunk(c *Chunk[T]) {
	origin := c.Origin()
	for idx := 0; idx < ChunkSize; idx++ {
		if c.present[idx] {
			m.tiles[origin.Add(Axial{Q: idx % ChunkWidth, R: idx / ChunkWidth})] = c.tiles[idx]
		}
	}
}

// Neighbors returns the six coordinates adjacent to a.
func (m *MapStorage[T]) Neighbors(a Axial) [6]Axial {
	return a.Neighbors()
}

// Clear removes all tiles.
func (m *MapStorage[T]) Clear() {
	clear(m.tiles)
}

// Len returns the number of tiles.
func (m *MapStorage[T]) Len() int {
	return len(m.tiles)
}

// Each calls fn for every tile.
func (m *MapStorage[T]) Each(fn func(a Axial, v T)) {
	for a, v := range m.tiles {
		fn(a, v)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
