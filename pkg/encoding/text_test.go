package encoding

import "testing"

func TestDecodeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "crate_01", "crate_01"},
		{"utf8", "château", "château"},
		{"euc-kr", string(UTF8ToEUCKR("나무")), "나무"},
		{"windows-1252", "caf\xe9", "café"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeName(tt.in); got != tt.want {
				t.Errorf("DecodeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEUCKRRoundTrip(t *testing.T) {
	const s = "텍스처"
	encoded := UTF8ToEUCKR(s)
	if string(encoded) == s {
		t.Fatal("encoder returned UTF-8 unchanged")
	}
	if got := EUCKRToUTF8(encoded); got != s {
		t.Errorf("EUCKRToUTF8 = %q, want %q", got, s)
	}
}
