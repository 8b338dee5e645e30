package heliobridge

// stashUUIDs copies a result into the Env's UUID scratch buffer and
// returns a slice aliasing it. The alias is valid only until the next
// list-returning call on the same Env — the documented read-before-
// next-write window. Reusing one buffer avoids handing the caller
// engine-owned memory it would have to free.
func (e *Env) stashUUIDs(src []uint32) []uint32 {
	if cap(e.uuidBuf) < len(src) {
		e.uuidBuf = make([]uint32, len(src))
	}
	e.uuidBuf = e.uuidBuf[:len(src)]
	copy(e.uuidBuf, src)
	return e.uuidBuf
}
