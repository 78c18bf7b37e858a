//go:build confinecheck

package loop

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
)

type ownerID struct {
	id atomic.Uint64
}

func (o *ownerID) claim() {
	o.id.Store(goroutineID())
}

func (o *ownerID) assert(op string) {
	owner := o.id.Load()
	if owner == 0 {
		// Not running yet: tests and startup drive state directly.
		return
	}
	if current := goroutineID(); current != owner {
		panic(fmt.Sprintf("%s called on goroutine %d, owned by event loop goroutine %d", op, current, owner))
	}
}

func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	field := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(field, ' '); i >= 0 {
		field = field[:i]
	}
	id, _ := strconv.ParseUint(string(field), 10, 64)
	return id
}
