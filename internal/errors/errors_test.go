package errors

import (
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			"missing file name",
			MissingFileName("src/"),
			`path "src/" is missing a file name component`,
		},
		{
			"missing extension",
			MissingExtension("main"),
			`path "main" is missing an extension`,
		},
		{
			"invalid fo argument",
			InvalidFoArgument("/Fo"),
			"invalid /Fo argument: /Fo",
		},
		{
			"empty token vector",
			EmptyTokenVector(),
			"token vector is empty",
		},
		{
			"unexpected entry",
			UnexpectedEntry("/dev/null"),
			`encountered unexpected directory entry "/dev/null"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorCarriesContext(t *testing.T) {
	err := UnexpectedLine("cl.exe /nologo", "cl.exe /c")
	assert.Equal(t, "cl.exe /nologo", err.Line)
	assert.Equal(t, "cl.exe /c", err.Partial)
	assert.Contains(t, err.Error(), "cl.exe /nologo")
	assert.Contains(t, err.Error(), "cl.exe /c")

	resErr := UnresolvedSourcePath("main.cpp", []string{"cl.exe", "/c", "main.cpp"})
	assert.Equal(t, "main.cpp", resErr.Path)
	assert.Len(t, resErr.Arguments, 3)
}

func TestUnwrapAndIs(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := IoError(cause, "/root/secret")

	assert.ErrorIs(t, err, cause)
	assert.True(t, stderrors.Is(err, &Error{Kind: KindIo}))
	assert.False(t, stderrors.Is(err, &Error{Kind: KindLogRead}))
}

func TestIsKind(t *testing.T) {
	err := LogRead(fmt.Errorf("boom"), "msbuild.log")
	assert.True(t, IsKind(err, KindLogRead))
	assert.False(t, IsKind(err, KindIo))

	wrapped := fmt.Errorf("stage failed: %w", err)
	assert.True(t, IsKind(wrapped, KindLogRead))

	assert.False(t, IsKind(fmt.Errorf("plain"), KindIo))
	assert.False(t, IsKind(nil, KindIo))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unexpected-line", KindUnexpectedLine.String())
	assert.Equal(t, "io", KindIo.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestCollectorAppendAndDrain(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.HasErrors())

	c.Append(nil)
	assert.Equal(t, 0, c.Len())

	ch := make(chan error, 3)
	ch <- EmptyTokenVector()
	ch <- MissingFileName("x")
	close(ch)
	c.Drain(ch)

	require.Equal(t, 2, c.Len())
	assert.True(t, c.HasErrors())
	assert.True(t, IsKind(c.Errors()[0], KindEmptyTokenVector))
}

func TestCollectorConcurrentAppend(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Append(EmptyTokenVector())
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, c.Len())
}

func TestCollectorErrorsReturnsCopy(t *testing.T) {
	c := NewCollector()
	c.Append(EmptyTokenVector())

	errs := c.Errors()
	errs[0] = nil
	require.NotNil(t, c.Errors()[0])
}
