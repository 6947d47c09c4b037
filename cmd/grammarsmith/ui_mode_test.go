package main

import "testing"

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := readUIMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("readUIMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("readUIMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShouldUseTUIExplicit(t *testing.T) {
	if !shouldUseTUI(uiModeOn) {
		t.Error("on must enable the UI")
	}
	if shouldUseTUI(uiModeOff) {
		t.Error("off must disable the UI")
	}
}

func TestReadFormat(t *testing.T) {
	for in, want := range map[string]outputFormat{
		"":        formatPretty,
		"pretty":  formatPretty,
		"JSON":    formatJSON,
		"msgpack": formatMsgPack,
		"short":   formatShort,
	} {
		got, err := readFormat(in)
		if err != nil || got != want {
			t.Errorf("readFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readFormat("xml"); err == nil {
		t.Error("readFormat(xml) must fail")
	}
}
