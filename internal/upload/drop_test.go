package upload

import (
	"testing"

	"github.com/at-ishikawa/mathsnap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDroppedPath(t *testing.T) {
	tests := []struct {
		name    string
		dropped string
		want    string
		wantErr bool
	}{
		{name: "plain path", dropped: "/tmp/problem.png", want: "/tmp/problem.png"},
		{name: "trailing newline", dropped: "/tmp/problem.png\n", want: "/tmp/problem.png"},
		{name: "single quoted", dropped: "'/tmp/my problem.png' ", want: "/tmp/my problem.png"},
		{name: "double quoted", dropped: `"/tmp/my problem.png"`, want: "/tmp/my problem.png"},
		{name: "backslash inside double quotes is kept", dropped: `"/tmp/a\b.png"`, want: `/tmp/a\b.png`},
		{name: "escaped quote inside double quotes", dropped: `"/tmp/\"x\".png"`, want: `/tmp/"x".png`},
		{name: "backslash inside single quotes is kept", dropped: `'/tmp/a\ b.png'`, want: `/tmp/a\ b.png`},
		{name: "escaped spaces", dropped: `/tmp/my\ problem.png`, want: "/tmp/my problem.png"},
		{name: "first of many", dropped: `/tmp/a.png /tmp/b.png`, want: "/tmp/a.png"},
		{name: "file url", dropped: "file:///tmp/my%20problem.png", want: "/tmp/my problem.png"},
		{name: "empty", dropped: "   ", wantErr: true},
		{name: "unterminated quote", dropped: `'/tmp/a.png`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DroppedPath(tt.dropped)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromDrop_SameAsPicker(t *testing.T) {
	tmpDir := t.TempDir()
	path := testutil.WritePNG(t, tmpDir, "my problem.png", 2, 2)

	picked, err := FromPath(path, "")
	require.NoError(t, err)
	dropped, err := FromDrop("'"+path+"'\n", "")
	require.NoError(t, err)

	assert.Equal(t, picked.Name, dropped.Name)
	assert.Equal(t, picked.ContentType, dropped.ContentType)
	assert.Equal(t, picked.Size, dropped.Size)
}
