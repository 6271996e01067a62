package lazy

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// fetchRows is a process-wide, per-goroutine cell overriding the row cap a
// scan-based collection honors. Go has no native thread-local storage, so
// the "thread" identity is approximated with the calling goroutine's stack
// trace id, looked up in a registry keyed by that id. One package-level
// mutex, shared by all goroutines, guards every set, lookup and delete on
// that registry.
var (
	fetchRowsMu sync.Mutex
	fetchRows   = make(map[string]int)
)

// SetFetchRows configures the effective row cap for the calling goroutine.
// Callers set it immediately before a fetch(n)-style collection and clear
// it immediately after with ClearFetchRows.
func SetFetchRows(n int) {
	fetchRowsMu.Lock()
	defer fetchRowsMu.Unlock()
	fetchRows[goroutineID()] = n
}

// GetFetchRows returns the row cap set by the calling goroutine, if any.
func GetFetchRows() (int, bool) {
	fetchRowsMu.Lock()
	defer fetchRowsMu.Unlock()
	n, ok := fetchRows[goroutineID()]
	return n, ok
}

// ClearFetchRows removes any row cap set by the calling goroutine.
func ClearFetchRows() {
	fetchRowsMu.Lock()
	defer fetchRowsMu.Unlock()
	delete(fetchRows, goroutineID())
}

// goroutineID extracts the numeric goroutine id from the current stack
// trace header ("goroutine 123 [running]: ..."). It is the closest
// approximation to a thread identity Go exposes without cgo.
func goroutineID() string {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	line := string(buf[:n])
	const prefix = "goroutine "
	if !strings.HasPrefix(line, prefix) {
		return "0"
	}
	rest := line[len(prefix):]
	end := strings.IndexByte(rest, ' ')
	if end < 0 {
		return "0"
	}
	id := rest[:end]
	if _, err := strconv.Atoi(id); err != nil {
		return "0"
	}
	return id
}
