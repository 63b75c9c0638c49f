package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileCommandEqual(t *testing.T) {
	base := CompileCommand{
		File:      "main.cpp",
		Directory: `c:\src`,
		Arguments: []string{"cl.exe", "/c", "main.cpp"},
	}

	assert.True(t, base.Equal(base))

	changedFile := base
	changedFile.File = "other.cpp"
	assert.False(t, base.Equal(changedFile))

	changedDir := base
	changedDir.Directory = `c:\other`
	assert.False(t, base.Equal(changedDir))

	fewerArgs := base
	fewerArgs.Arguments = base.Arguments[:2]
	assert.False(t, base.Equal(fewerArgs))

	reordered := base
	reordered.Arguments = []string{"/c", "cl.exe", "main.cpp"}
	assert.False(t, base.Equal(reordered))
}
