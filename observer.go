package cursorfx

// MutationType distinguishes the kinds of structural change.
type MutationType uint8

const (
	MutationChildList  MutationType = iota // children added to or removed from Target
	MutationAttributes                     // an attribute of Target changed
)

// MutationRecord describes one structural change.
type MutationRecord struct {
	Type          MutationType
	Target        *Element
	Added         []*Element
	Removed       []*Element
	AttributeName string // MutationAttributes only: "class" or "style"
	OldValue      string // MutationAttributes only
}

// ObserveOptions selects which changes an observation reports.
type ObserveOptions struct {
	// ChildList reports children added to or removed from the target.
	ChildList bool
	// Subtree extends ChildList and attribute reporting to all descendants.
	Subtree bool
	// AttributeFilter lists the attribute names to report. Empty means no
	// attribute changes.
	AttributeFilter []string
}

func (o ObserveOptions) wantsAttribute(name string) bool {
	for _, a := range o.AttributeFilter {
		if a == name {
			return true
		}
	}
	return false
}

type observation struct {
	target *Element
	opts   ObserveOptions
}

// matches reports whether rec falls inside this observation's scope. Scope is
// evaluated against the tree as it is when the record is queued.
func (ob observation) matches(rec *MutationRecord) bool {
	if rec.Target != ob.target && !(ob.opts.Subtree && isAncestor(ob.target, rec.Target)) {
		return false
	}
	switch rec.Type {
	case MutationChildList:
		return ob.opts.ChildList
	case MutationAttributes:
		return ob.opts.wantsAttribute(rec.AttributeName)
	}
	return false
}

// MutationObserver collects structural changes inside its observed scopes and
// delivers them in batches. Records are queued as mutations happen and handed
// to the callback by Scene.FlushMutations.
type MutationObserver struct {
	scene        *Scene
	callback     func([]MutationRecord)
	observations []observation
	queue        []MutationRecord
}

// NewMutationObserver creates an observer whose callback receives each batch of
// records. The observer reports nothing until Observe is called.
func (s *Scene) NewMutationObserver(callback func([]MutationRecord)) *MutationObserver {
	o := &MutationObserver{scene: s, callback: callback}
	s.observers = append(s.observers, o)
	return o
}

// Observe adds a scope. Observing the same target again replaces its options.
func (o *MutationObserver) Observe(target *Element, opts ObserveOptions) {
	if o.scene == nil {
		return
	}
	for i := range o.observations {
		if o.observations[i].target == target {
			o.observations[i].opts = opts
			return
		}
	}
	o.observations = append(o.observations, observation{target: target, opts: opts})
}

// Disconnect stops all observation and drops pending records.
func (o *MutationObserver) Disconnect() {
	o.observations = nil
	o.queue = nil
	if o.scene == nil {
		return
	}
	obs := o.scene.observers
	for i, other := range obs {
		if other == o {
			copy(obs[i:], obs[i+1:])
			obs[len(obs)-1] = nil
			o.scene.observers = obs[:len(obs)-1]
			break
		}
	}
	o.scene = nil
}

// TakeRecords returns and clears the pending records without invoking the
// callback.
func (o *MutationObserver) TakeRecords() []MutationRecord {
	recs := o.queue
	o.queue = nil
	return recs
}

func (o *MutationObserver) enqueue(rec *MutationRecord) {
	for _, ob := range o.observations {
		if ob.matches(rec) {
			o.queue = append(o.queue, *rec)
			return
		}
	}
}

// queueMutation offers rec to every observer of the scene.
func (s *Scene) queueMutation(rec MutationRecord) {
	for _, o := range s.observers {
		o.enqueue(&rec)
	}
}

// FlushMutations delivers pending records to each observer's callback. Records
// queued by a callback are delivered in the same flush.
func (s *Scene) FlushMutations() {
	for pending := true; pending; {
		pending = false
		for i := 0; i < len(s.observers); i++ {
			o := s.observers[i]
			if len(o.queue) == 0 {
				continue
			}
			recs := o.TakeRecords()
			pending = true
			if o.callback != nil {
				o.callback(recs)
			}
		}
	}
}
