package domain

// Dataset is the authoritative in-memory store: the ordered WBS nodes and
// the ordered tasks. Sibling display order is the order of WBS.
type Dataset struct {
	WBS   []*WBSNode
	Tasks []*Task
}

// NewDataset returns an empty dataset with non-nil slices.
func NewDataset() *Dataset {
	return &Dataset{WBS: []*WBSNode{}, Tasks: []*Task{}}
}

// Clone deep-copies every record so the copy can be mutated independently.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		WBS:   make([]*WBSNode, 0, len(d.WBS)),
		Tasks: make([]*Task, 0, len(d.Tasks)),
	}
	for _, n := range d.WBS {
		out.WBS = append(out.WBS, n.Clone())
	}
	for _, t := range d.Tasks {
		out.Tasks = append(out.Tasks, t.Clone())
	}
	return out
}

// NodeIndex maps node ids to records.
func (d *Dataset) NodeIndex() map[string]*WBSNode {
	idx := make(map[string]*WBSNode, len(d.WBS))
	for _, n := range d.WBS {
		idx[n.ID] = n
	}
	return idx
}

// TaskIndex maps task ids to records.
func (d *Dataset) TaskIndex() map[string]*Task {
	idx := make(map[string]*Task, len(d.Tasks))
	for _, t := range d.Tasks {
		idx[t.ID] = t
	}
	return idx
}

// Node returns the node with the given id, or nil.
func (d *Dataset) Node(id string) *WBSNode {
	for _, n := range d.WBS {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Task returns the task with the given id, or nil.
func (d *Dataset) Task(id string) *Task {
	for _, t := range d.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// NodeIDs returns node ids in dataset order.
func (d *Dataset) NodeIDs() []string {
	ids := make([]string, 0, len(d.WBS))
	for _, n := range d.WBS {
		ids = append(ids, n.ID)
	}
	return ids
}

// TaskIDs returns task ids in dataset order.
func (d *Dataset) TaskIDs() []string {
	ids := make([]string, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}
