// Package frontier queues source files in natural, numeric-aware name order
// and hands each file out once.
package frontier

import (
	"container/heap"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
)

type FileItem struct {
	Name  string
	Path  string
	index int
}

type PriorityQueue []*FileItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return NaturalLess(pq[i].Name, pq[j].Name)
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*FileItem)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}

type Frontier struct {
	queue *PriorityQueue
	seen  map[string]bool
	mu    sync.Mutex
}

// New returns an empty frontier. Names in skip are treated as already seen.
func New(skip []string) *Frontier {
	pq := make(PriorityQueue, 0)
	heap.Init(&pq)

	seen := make(map[string]bool)
	for _, name := range skip {
		seen[name] = true
	}

	return &Frontier{
		queue: &pq,
		seen:  seen,
	}
}

// AddFile queues path unless a file with the same base name was already queued.
func (f *Frontier) AddFile(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.add(path)
}

func (f *Frontier) AddFiles(paths []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, path := range paths {
		f.add(path)
	}
}

func (f *Frontier) add(path string) {
	name := filepath.Base(path)
	if f.seen[name] {
		return
	}
	f.seen[name] = true

	heap.Push(f.queue, &FileItem{Name: name, Path: path})
}

// GetNext pops the next file in natural order; ok is false once the queue is empty.
func (f *Frontier) GetNext() (path string, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return "", false
	}

	item := heap.Pop(f.queue).(*FileItem)
	return item.Path, true
}

// Drain pops every queued file in order.
func (f *Frontier) Drain() []string {
	var paths []string
	for {
		path, ok := f.GetNext()
		if !ok {
			return paths
		}
		paths = append(paths, path)
	}
}

func (f *Frontier) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

func (f *Frontier) IsEmpty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len() == 0
}

func (f *Frontier) HasSeen(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[filepath.Base(name)]
}

// NaturalLess orders names with digit runs compared by numeric value and
// everything else compared without regard to case, so "__P2.HTM" sorts before
// "__P10.HTM". Names that compare equal that way fall back to byte order.
func NaturalLess(a, b string) bool {
	if c := naturalCompare(a, b); c != 0 {
		return c < 0
	}
	return a < b
}

func naturalCompare(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ra) && j < len(rb) {
		ca, cb := ra[i], rb[j]
		if isDigit(ca) && isDigit(cb) {
			si := i
			for i < len(ra) && isDigit(ra[i]) {
				i++
			}
			sj := j
			for j < len(rb) && isDigit(rb[j]) {
				j++
			}
			if c := compareNumbers(string(ra[si:i]), string(rb[sj:j])); c != 0 {
				return c
			}
			continue
		}

		la, lb := unicode.ToLower(ca), unicode.ToLower(cb)
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch {
	case len(ra)-i < len(rb)-j:
		return -1
	case len(ra)-i > len(rb)-j:
		return 1
	}
	return 0
}

// compareNumbers compares two digit strings by value without parsing, so runs
// longer than an int still order correctly.
func compareNumbers(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	return strings.Compare(x, y)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
