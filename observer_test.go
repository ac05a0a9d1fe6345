package cursorfx

import "testing"

type recordingObserver struct {
	batches [][]MutationRecord
}

func (r *recordingObserver) callback(recs []MutationRecord) {
	r.batches = append(r.batches, recs)
}

func (r *recordingObserver) all() []MutationRecord {
	var out []MutationRecord
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func TestObserverBatchesUntilFlush(t *testing.T) {
	s := NewScene(100, 100)
	rec := &recordingObserver{}
	o := s.NewMutationObserver(rec.callback)
	o.Observe(s.Body(), ObserveOptions{ChildList: true, Subtree: true})

	a := NewElement("a")
	b := NewElement("b")
	s.Body().AddChild(a)
	a.AddChild(b)
	if len(rec.batches) != 0 {
		t.Fatal("records delivered before flush")
	}
	s.FlushMutations()
	if len(rec.batches) != 1 || len(rec.batches[0]) != 2 {
		t.Fatalf("batches = %v, want one batch of two", rec.batches)
	}
	if r := rec.batches[0][0]; r.Target != s.Body() || len(r.Added) != 1 || r.Added[0] != a {
		t.Errorf("first record = %+v", r)
	}
	if r := rec.batches[0][1]; r.Target != a || r.Added[0] != b {
		t.Errorf("second record = %+v", r)
	}
}

func TestObserverScope(t *testing.T) {
	s := NewScene(100, 100)
	rec := &recordingObserver{}
	o := s.NewMutationObserver(rec.callback)
	o.Observe(s.Body(), ObserveOptions{ChildList: true})

	wrapper := NewElement("wrapper")
	s.Body().AddChild(wrapper)
	wrapper.AddChild(NewElement("deep"))
	s.Head().AddChild(NewElement("meta"))
	s.FlushMutations()

	all := rec.all()
	if len(all) != 1 || all[0].Target != s.Body() {
		t.Errorf("records = %+v, want only the direct body change", all)
	}
}

func TestObserverAttributeFilter(t *testing.T) {
	s := NewScene(100, 100)
	rec := &recordingObserver{}
	o := s.NewMutationObserver(rec.callback)
	o.Observe(s.Body(), ObserveOptions{Subtree: true, AttributeFilter: []string{"class"}})

	e := NewElement("e")
	s.Body().AddChild(e)
	e.SetStyleProperty(PropFadeInTime, "1s")
	e.AddClass("x")
	s.FlushMutations()

	all := rec.all()
	if len(all) != 1 {
		t.Fatalf("records = %+v, want one class record", all)
	}
	if all[0].Type != MutationAttributes || all[0].AttributeName != "class" {
		t.Errorf("record = %+v", all[0])
	}
}

func TestObserverDetachedChangesIgnored(t *testing.T) {
	s := NewScene(100, 100)
	rec := &recordingObserver{}
	o := s.NewMutationObserver(rec.callback)
	o.Observe(s.Body(), ObserveOptions{ChildList: true, Subtree: true, AttributeFilter: []string{"class"}})

	e := NewElement("e")
	e.AddChild(NewElement("child"))
	e.AddClass("x")
	s.FlushMutations()
	if len(rec.batches) != 0 {
		t.Errorf("records for a detached tree: %+v", rec.all())
	}
}

func TestObserverRemovalRecord(t *testing.T) {
	s := NewScene(100, 100)
	e := NewElement("e")
	s.Body().AddChild(e)

	rec := &recordingObserver{}
	o := s.NewMutationObserver(rec.callback)
	o.Observe(s.Body(), ObserveOptions{ChildList: true})
	e.RemoveFromParent()
	s.FlushMutations()

	all := rec.all()
	if len(all) != 1 || len(all[0].Removed) != 1 || all[0].Removed[0] != e {
		t.Errorf("records = %+v, want one removal of e", all)
	}
}

func TestObserverReparentRecordsBoth(t *testing.T) {
	s := NewScene(100, 100)
	a := NewElement("a")
	b := NewElement("b")
	c := NewElement("c")
	s.Body().AddChild(a)
	s.Body().AddChild(b)
	a.AddChild(c)

	rec := &recordingObserver{}
	o := s.NewMutationObserver(rec.callback)
	o.Observe(s.Body(), ObserveOptions{ChildList: true, Subtree: true})
	b.AddChild(c)
	s.FlushMutations()

	all := rec.all()
	if len(all) != 2 {
		t.Fatalf("records = %d, want 2", len(all))
	}
	if all[0].Target != a || all[0].Removed[0] != c {
		t.Errorf("first record = %+v, want removal from a", all[0])
	}
	if all[1].Target != b || all[1].Added[0] != c {
		t.Errorf("second record = %+v, want addition to b", all[1])
	}
}

func TestObserverCallbackMutationsSameFlush(t *testing.T) {
	s := NewScene(100, 100)
	var o *MutationObserver
	calls := 0
	o = s.NewMutationObserver(func(recs []MutationRecord) {
		calls++
		if calls == 1 {
			s.Body().AddChild(NewElement("second"))
		}
	})
	o.Observe(s.Body(), ObserveOptions{ChildList: true})
	s.Body().AddChild(NewElement("first"))
	s.FlushMutations()
	if calls != 2 {
		t.Errorf("callback ran %d times in one flush, want 2", calls)
	}
}

func TestObserverDisconnect(t *testing.T) {
	s := NewScene(100, 100)
	rec := &recordingObserver{}
	o := s.NewMutationObserver(rec.callback)
	o.Observe(s.Body(), ObserveOptions{ChildList: true})
	s.Body().AddChild(NewElement("pending"))

	o.Disconnect()
	s.Body().AddChild(NewElement("after"))
	s.FlushMutations()
	if len(rec.batches) != 0 {
		t.Errorf("disconnected observer received %+v", rec.all())
	}
	o.Observe(s.Body(), ObserveOptions{ChildList: true})
	o.Disconnect()
}

func TestObserverTakeRecords(t *testing.T) {
	s := NewScene(100, 100)
	rec := &recordingObserver{}
	o := s.NewMutationObserver(rec.callback)
	o.Observe(s.Body(), ObserveOptions{ChildList: true})
	s.Body().AddChild(NewElement("x"))

	if got := o.TakeRecords(); len(got) != 1 {
		t.Errorf("TakeRecords() = %d records, want 1", len(got))
	}
	s.FlushMutations()
	if len(rec.batches) != 0 {
		t.Error("taken records delivered again")
	}
}
