package shared

import (
	"strings"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	url := "https://accounts.spotify.com/authorize?client_id=x&state=y"

	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{"darwin", "open", false},
		{"linux", "xdg-open", false},
		{"freebsd", "xdg-open", false},
		{"windows", "rundll32", false},
		{"plan9", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("browserCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if !strings.HasSuffix(cmd.Path, tt.want) && cmd.Args[0] != tt.want {
				t.Errorf("expected %s, got %v", tt.want, cmd.Args)
			}
			if cmd.Args[len(cmd.Args)-1] != url {
				t.Errorf("expected URL as last argument, got %v", cmd.Args)
			}
		})
	}
}

func TestOpenBrowserUnsupported(t *testing.T) {
	original := getRuntime
	t.Cleanup(func() { getRuntime = original })
	getRuntime = func() string { return "plan9" }

	if err := OpenBrowser("https://example.com"); err == nil {
		t.Error("expected error on unsupported platform")
	}
}
