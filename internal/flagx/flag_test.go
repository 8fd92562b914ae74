package flagx

import (
	"reflect"
	"testing"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-s", "secret", "-a", "localhost"},
			allowedFlags: []string{"-s", "--secret"},
			want:         []string{"-s", "secret"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--secret=alt", "-a", "localhost"},
			allowedFlags: []string{"-s", "--secret"},
			want:         []string{"--secret=alt"},
		},
		{
			name:         "both short and long present, preserve order",
			args:         []string{"--secret=first", "-s", "second", "-x", "1"},
			allowedFlags: []string{"-s", "--secret"},
			want:         []string{"--secret=first", "-s", "second"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-s", "--secret"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-s"},
			allowedFlags: []string{"-s", "--secret"},
			want:         []string{"-s"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-s", "-notvalue"},
			allowedFlags: []string{"-s", "--secret"},
			want:         []string{"-s"},
		},
		{
			name:         "multiple allowed flags kept",
			args:         []string{"-a", "localhost:8080", "-s", "secret", "--other", "x"},
			allowedFlags: []string{"-s", "-a"},
			want:         []string{"-a", "localhost:8080", "-s", "secret"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-s", "--secret"},
			want:         []string{},
		},
		{
			name:         "do not treat next dash-starting token as value",
			args:         []string{"-s", "--secret=alt"},
			allowedFlags: []string{"-s", "--secret"},
			want:         []string{"-s", "--secret=alt"},
		},
		{
			name:         "repeated allowed flag is preserved in order",
			args:         []string{"-s", "one", "-s", "two"},
			allowedFlags: []string{"-s"},
			want:         []string{"-s", "one", "-s", "two"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
