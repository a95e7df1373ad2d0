package faultline

import "testing"

func TestScrubber_ScrubParams_SensitiveKeys(t *testing.T) {
	s := NewScrubber(DefaultScrubberConfig())

	params := NewMap().
		Set("user_id", Scalar{Val: "u-123"}).
		Set("api_key", Scalar{Val: "sk-abc123"}).
		Set("password", Scalar{Val: "hunter2"}).
		Set("auth_token", Scalar{Val: "tok"}).
		Set("normal_field", Scalar{Val: "visible"})

	s.ScrubParams(params)

	if v, _ := params.Get("user_id"); v != (Scalar{Val: "u-123"}) {
		t.Errorf("user_id should be preserved, got %v", v)
	}
	if v, _ := params.Get("normal_field"); v != (Scalar{Val: "visible"}) {
		t.Errorf("normal_field should be preserved, got %v", v)
	}

	for _, key := range []string{"api_key", "password", "auth_token"} {
		if v, _ := params.Get(key); v != (Scalar{Val: "[Filtered]"}) {
			t.Errorf("params key %q should be filtered, got %v", key, v)
		}
	}
}

func TestScrubber_ScrubParams_Nested(t *testing.T) {
	s := NewScrubber(DefaultScrubberConfig())

	inner := NewMap().Set("secret", Scalar{Val: "shh"})
	params := NewMap().Set("config", NewSeq(inner))

	s.ScrubParams(params)

	configVal, _ := params.Get("config")
	seq := configVal.(*Seq)
	got, _ := seq.Items[0].(*Map).Get("secret")
	if got != (Scalar{Val: "[Filtered]"}) {
		t.Errorf("nested secret should be filtered, got %v", got)
	}
}

func TestScrubber_ScrubParams_ToleratesCycles(t *testing.T) {
	s := NewScrubber(DefaultScrubberConfig())

	m := NewMap()
	m.Set("self", m)

	done := make(chan struct{})
	go func() {
		s.ScrubParams(m)
		close(done)
	}()
	<-done
}

func TestScrubber_ScrubParams_CustomBlocklist(t *testing.T) {
	s := NewScrubber(ScrubberConfig{KeyBlocklist: []string{"card_number"}})

	params := NewMap().Set("Card_Number", Scalar{Val: "4111111111111111"})
	s.ScrubParams(params)

	if v, _ := params.Get("Card_Number"); v != (Scalar{Val: "[Filtered]"}) {
		t.Errorf("custom blocklist key should be filtered, got %v", v)
	}
}

func TestScrubber_ScrubContext(t *testing.T) {
	s := NewScrubber(DefaultScrubberConfig())

	context := map[string]string{
		"component":  "billing",
		"auth_token": "secret",
	}
	s.ScrubContext(context)

	if context["component"] != "billing" {
		t.Errorf("component should be preserved, got %q", context["component"])
	}
	if context["auth_token"] != "[Filtered]" {
		t.Errorf("auth_token should be filtered, got %q", context["auth_token"])
	}
}

func TestScrubber_ScrubContext_NilMap(t *testing.T) {
	s := NewScrubber(DefaultScrubberConfig())
	s.ScrubContext(nil) // must not panic
}
