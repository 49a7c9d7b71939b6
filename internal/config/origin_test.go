package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBaseOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       OriginInputs
		want     string
		wantRule string
	}{
		{
			name:     "same origin of the page",
			in:       OriginInputs{Location: "https://fish.example.com/inventory/index.html"},
			want:     "https://fish.example.com",
			wantRule: "same-origin",
		},
		{
			name:     "deployed origin beats same origin",
			in:       OriginInputs{Location: "https://static.example.com/", DeployedOrigin: "https://api.example.com/"},
			want:     "https://api.example.com",
			wantRule: "deployed",
		},
		{
			name:     "loopback static server maps to local backend",
			in:       OriginInputs{Location: "http://127.0.0.1:5500/index.html", DeployedOrigin: "https://api.example.com"},
			want:     LocalBackendOrigin,
			wantRule: "loopback",
		},
		{
			name:     "localhost static server maps to local backend",
			in:       OriginInputs{Location: "http://localhost:5500/"},
			want:     LocalBackendOrigin,
			wantRule: "loopback",
		},
		{
			name:     "file page maps to local backend",
			in:       OriginInputs{Location: "file:///home/me/index.html"},
			want:     LocalBackendOrigin,
			wantRule: "loopback",
		},
		{
			name:     "loopback on another port stays same origin",
			in:       OriginInputs{Location: "http://127.0.0.1:5000/"},
			want:     "http://127.0.0.1:5000",
			wantRule: "same-origin",
		},
		{
			name:     "api query wins over loopback",
			in:       OriginInputs{Location: "http://localhost:5500/?api=http://10.0.0.2:8080/"},
			want:     "http://10.0.0.2:8080",
			wantRule: "query",
		},
		{
			name:     "explicit override wins over query",
			in:       OriginInputs{Location: "http://localhost:5500/?api=http://10.0.0.2:8080", Override: "https://override.example/"},
			want:     "https://override.example",
			wantRule: "override",
		},
		{
			name:     "empty location has empty same origin",
			in:       OriginInputs{},
			want:     "",
			wantRule: "same-origin",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := ResolveBaseOrigin(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRule, rule)
		})
	}
}
