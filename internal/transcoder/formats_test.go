package transcoder

import "testing"

func TestFileExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"meeting.mp4", "mp4"},
		{"Recording.MP3", "mp3"},
		{"audio.ogg", "ogg"},
		{"archive.tar.gz", "gz"},
		{"noextension", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FileExtension(tt.name); got != tt.want {
			t.Errorf("FileExtension(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNeedsConversion(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{"mp3", false},
		{"MP3", false},
		{"mp4", true},
		{"webm", true},
		{"mov", true},
		{"wav", true},
		{"ogg", true},
		{"m4a", true},
		{"flac", true},
		{"", true},
		{"unknown", true},
	}

	for _, tt := range tests {
		if got := NeedsConversion(tt.ext); got != tt.want {
			t.Errorf("NeedsConversion(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}
