package pathfinder

// queueItem is a frontier entry. Entries are never updated in place: a cheaper
// path to a state pushes a new entry and the old one is skipped when popped.
type queueItem struct {
	NodeIndex int
	FCost     int
	Sequence  uint64
}

// priorityQueue orders items by FCost, then by insertion sequence so that equal
// estimates are expanded first-in first-out.
type priorityQueue []queueItem

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	if queue[i].FCost != queue[j].FCost {
		return queue[i].FCost < queue[j].FCost
	}
	return queue[i].Sequence < queue[j].Sequence
}
func (queue priorityQueue) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *priorityQueue) Push(x any) {
	*queue = append(*queue, x.(queueItem))
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	*queue = oldQueue[:n-1]
	return item
}
