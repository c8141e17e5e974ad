package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalMap(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{
			name: "empty",
			vars: map[string]string{},
			want: "",
		},
		{
			name: "sorted and empty skipped",
			vars: map[string]string{"B": "2", "A": "1", "C": ""},
			want: "A=1\nB=2\n",
		},
		{
			name: "quoted values",
			vars: map[string]string{"NAME": "warm friend", "HASH": "a#b"},
			want: "HASH=\"a#b\"\nNAME=\"warm friend\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarshalMap(tt.vars))
		})
	}
}

func TestUpdate_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".env")

	require.NoError(t, Update(path, map[string]string{"COMPANION_MODEL": "llama3-70b-8192", "GREETING": "hi there"}))
	require.NoError(t, Update(path, map[string]string{"COMPANION_MODEL": "mixtral"}))

	got, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "mixtral", got["COMPANION_MODEL"])
	assert.Equal(t, "hi there", got["GREETING"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
