package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedResultText(t *testing.T) {
	cases := []struct {
		name   string
		result SeedResult
		want   string
	}{
		{
			name:   "created in mongo",
			result: SeedResult{ID: "a1", Email: "root@blog.local", Created: true, Persistent: true},
			want:   "Created admin root@blog.local (a1)\n",
		},
		{
			name:   "existing",
			result: SeedResult{Email: "root@blog.local", Persistent: true},
			want:   "Admin root@blog.local already exists\n",
		},
		{
			name:   "memory store",
			result: SeedResult{ID: "a1", Email: "root@blog.local", Created: true},
			want:   "Created admin root@blog.local (a1)\nWarning: in-memory store, nothing was persisted\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewOutput("text", &buf).Print(tc.result)
			assert.Equal(t, tc.want, buf.String())
		})
	}
}
