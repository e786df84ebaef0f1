package render

// DisplayList хранит прикреплённые корневые узлы каждой группы в порядке добавления
type DisplayList struct {
	groups map[Group][]*Node
}

func (d *DisplayList) Attach(h Handle, g Group) error {
	n, err := AsNode(h)
	if err != nil {
		return err
	}
	if d.groups == nil {
		d.groups = make(map[Group][]*Node)
	}
	d.groups[g] = append(d.groups[g], n)
	return nil
}

func (d *DisplayList) Detach(h Handle, g Group) error {
	n, err := AsNode(h)
	if err != nil {
		return err
	}
	list := d.groups[g]
	for i, x := range list {
		if x == n {
			d.groups[g] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotAttached
}

// Each calls fn for every attached node of g.
func (d *DisplayList) Each(g Group, fn func(*Node)) {
	for _, n := range d.groups[g] {
		fn(n)
	}
}

// Len returns the number of nodes attached to g.
func (d *DisplayList) Len(g Group) int {
	return len(d.groups[g])
}
