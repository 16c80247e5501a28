package sim

import "container/heap"

// bucketRef is one pending bucket: its scheduled time and synthetic id.
// index is the heap slot, maintained by bucketQueue for removal.
type bucketRef struct {
	time  float64
	id    int64
	index int
}

// bucketQueue is a priority queue of pending buckets with deterministic
// ordering: time first, then synthetic id. Ids are monotonic and coincident
// events coalesce into a single bucket, so the id tie-break only keeps the
// ordering total. Removal by id lets cancellation retire a bucket it
// emptied.
type bucketQueue struct {
	refs []*bucketRef
	byID map[int64]*bucketRef
}

func newBucketQueue() *bucketQueue {
	q := &bucketQueue{byID: make(map[int64]*bucketRef)}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *bucketQueue) Len() int { return len(q.refs) }

// Less implements heap.Interface: earlier time first, lower id on ties
func (q *bucketQueue) Less(i, j int) bool {
	if q.refs[i].time != q.refs[j].time {
		return q.refs[i].time < q.refs[j].time
	}
	return q.refs[i].id < q.refs[j].id
}

// Swap implements heap.Interface
func (q *bucketQueue) Swap(i, j int) {
	q.refs[i], q.refs[j] = q.refs[j], q.refs[i]
	q.refs[i].index = i
	q.refs[j].index = j
}

// Push implements heap.Interface
func (q *bucketQueue) Push(x any) {
	ref := x.(*bucketRef)
	ref.index = len(q.refs)
	q.refs = append(q.refs, ref)
}

// Pop implements heap.Interface
func (q *bucketQueue) Pop() any {
	old := q.refs
	n := len(old)
	ref := old[n-1]
	old[n-1] = nil
	q.refs = old[:n-1]
	return ref
}

// Add inserts a bucket id scheduled at the given time.
func (q *bucketQueue) Add(id int64, time float64) {
	ref := &bucketRef{time: time, id: id}
	q.byID[id] = ref
	heap.Push(q, ref)
}

// Min returns the earliest pending bucket without removing it.
func (q *bucketQueue) Min() (id int64, time float64, ok bool) {
	if len(q.refs) == 0 {
		return 0, 0, false
	}
	return q.refs[0].id, q.refs[0].time, true
}

// Remove deletes a bucket id from the queue. Unknown ids are ignored.
func (q *bucketQueue) Remove(id int64) {
	ref, ok := q.byID[id]
	if !ok {
		return
	}
	delete(q.byID, id)
	heap.Remove(q, ref.index)
}
