package oscwire

import "testing"

func TestMessageRoundTrip(t *testing.T) {
	buf, err := EncodeMessage(nil, "/VMC/Ext/Bone/Pos", []interface{}{
		"Hips", float32(1), float32(2), float32(3), float32(0), float32(0), float32(0), float32(1),
	})
	if err != nil {
		t.Fatal(err)
	}

	p, err := DecodePacket(buf)
	if err != nil {
		t.Fatal(err)
	}

	msg, ok := p.(Message)
	if !ok {
		t.Fatalf("expected Message, got %T", p)
	}
	if msg.Address != "/VMC/Ext/Bone/Pos" {
		t.Errorf("Address = %q", msg.Address)
	}
	if len(msg.Args) != 8 {
		t.Fatalf("expected 8 args, got %d", len(msg.Args))
	}
	if msg.Args[0].(string) != "Hips" {
		t.Errorf("Args[0] = %v, want Hips", msg.Args[0])
	}
	if msg.Args[1].(float32) != 1 {
		t.Errorf("Args[1] = %v, want 1", msg.Args[1])
	}
}

func TestBundleRoundTrip(t *testing.T) {
	inner1, _ := EncodeMessage(nil, "/VMC/Ext/OK", []interface{}{int32(1)})
	p1, _ := DecodePacket(inner1)

	buf, err := EncodeBundle(nil, 0, []Packet{p1.(Message)})
	if err != nil {
		t.Fatal(err)
	}

	p, err := DecodePacket(buf)
	if err != nil {
		t.Fatal(err)
	}

	bundle, ok := p.(Bundle)
	if !ok {
		t.Fatalf("expected Bundle, got %T", p)
	}
	if len(bundle.Packets) != 1 {
		t.Fatalf("expected 1 inner packet, got %d", len(bundle.Packets))
	}

	msg, ok := bundle.Packets[0].(Message)
	if !ok {
		t.Fatalf("expected inner Message, got %T", bundle.Packets[0])
	}
	if msg.Address != "/VMC/Ext/OK" {
		t.Errorf("inner Address = %q", msg.Address)
	}
	if msg.Args[0].(int32) != 1 {
		t.Errorf("inner Args[0] = %v, want 1", msg.Args[0])
	}
}

func TestArgInt32AcceptsInt64WithinRange(t *testing.T) {
	v, err := ArgInt32([]interface{}{int64(42)}, 0)
	if err != nil || v != 42 {
		t.Errorf("ArgInt32(int64(42)) = (%v, %v)", v, err)
	}

	if _, err := ArgInt32([]interface{}{int64(1) << 40}, 0); err == nil {
		t.Error("expected an error for an out-of-range int64")
	}
}

func TestStringPaddingIsFourByteAligned(t *testing.T) {
	buf := AppendString(nil, "abc")
	if len(buf)%4 != 0 {
		t.Errorf("padded string length %d is not a multiple of 4", len(buf))
	}

	buf2 := AppendString(nil, "abcd")
	if len(buf2) != 8 {
		t.Errorf("4-char string should pad to 8 bytes (NUL + 3 pad), got %d", len(buf2))
	}
}
