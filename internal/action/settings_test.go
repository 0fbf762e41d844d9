package action

import "testing"

func TestUnion_Nil(t *testing.T) {
	var s *Settings
	if s.Union(nil) != nil {
		t.Error("nil union nil should be nil")
	}

	other := &Settings{DeleteMessage: true}
	got := s.Union(other)
	if got == nil || !got.DeleteMessage {
		t.Error("nil union settings should copy the settings")
	}
	if got == other {
		t.Error("union should not alias its argument")
	}
}

func TestUnion_PrefersStricter(t *testing.T) {
	a := &Settings{InfractionType: "warning", InfractionReason: "spam", PingMods: true}
	b := &Settings{InfractionType: "ban", InfractionReason: "scam", DeleteMessage: true}

	got := a.Union(b)
	if got.InfractionType != "ban" {
		t.Errorf("infraction_type = %q, want ban", got.InfractionType)
	}
	if got.InfractionReason != "scam" {
		t.Errorf("infraction_reason = %q, want the stricter infraction's reason", got.InfractionReason)
	}
	if !got.DeleteMessage || !got.PingMods {
		t.Error("boolean actions should be ORed")
	}

	// Union is commutative for the fields that matter here.
	rev := b.Union(a)
	if rev.InfractionType != "ban" || !rev.DeleteMessage || !rev.PingMods {
		t.Error("reversed union lost a stricter value")
	}
}

func TestUnion_DMContent(t *testing.T) {
	a := &Settings{DMContent: "please stop"}
	b := &Settings{DMContent: "ignored"}
	if got := a.Union(b); got.DMContent != "please stop" {
		t.Errorf("dm_content = %q", got.DMContent)
	}

	empty := &Settings{}
	if got := empty.Union(b); got.DMContent != "ignored" {
		t.Errorf("dm_content = %q, want the only configured value", got.DMContent)
	}
}

func TestMarshal_Nil(t *testing.T) {
	if Marshal(nil) != nil {
		t.Error("nil settings should marshal to nil")
	}
	if data := Marshal(&Settings{DeleteMessage: true}); len(data) == 0 {
		t.Error("expected JSON for non-nil settings")
	}
}
