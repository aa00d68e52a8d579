package broadcast

import "testing"

func TestSendDeliversToAllSubscribers(t *testing.T) {
	b := New[int]()
	a := b.Subscribe(4)
	c := b.Subscribe(4)

	b.Send(1)
	b.Send(2)

	if u := <-a; u.Value != 1 || u.Overflowed != 0 {
		t.Errorf("a first = %+v", u)
	}
	if u := <-a; u.Value != 2 {
		t.Errorf("a second = %+v", u)
	}
	if u := <-c; u.Value != 1 {
		t.Errorf("c first = %+v", u)
	}
}

func TestSendCountsOverflowWithoutBlocking(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe(1)

	b.Send(1)
	b.Send(2) // sub's buffer is full; this should be counted, not block.

	u := <-sub
	if u.Value != 1 || u.Overflowed != 0 {
		t.Fatalf("first read = %+v", u)
	}

	b.Send(3)
	u = <-sub
	if u.Value != 3 || u.Overflowed != 1 {
		t.Fatalf("second read = %+v, want Value=3 Overflowed=1", u)
	}
}

func TestCloseClosesSubscriberChannels(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe(1)
	b.Close()

	if _, ok := <-sub; ok {
		t.Error("expected sub channel to be closed")
	}

	late := b.Subscribe(1)
	if _, ok := <-late; ok {
		t.Error("expected a post-close subscribe to return an already-closed channel")
	}

	b.Send(1) // must not panic after close.
}
