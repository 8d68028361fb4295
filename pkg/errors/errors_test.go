package errors

import (
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	req := require.New(t)
	req.Equal("FileNotReadable", FileNotReadable.String())
	req.Equal("FileNotWritable", FileNotWritable.String())
	req.Equal("MalformedImportBlock", MalformedImportBlock.String())
	req.Equal("UnrecognizedStatementShape", UnrecognizedStatementShape.String())
	req.Equal("Unknown", Kind(42).String())
}

func TestError(t *testing.T) {
	req := require.New(t)
	cause := goerrors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"with line", New(MalformedImportBlock, "a.py", 3, cause), "a.py:3: MalformedImportBlock: boom"},
		{"without line", New(FileNotReadable, "a.py", 0, cause), "a.py: FileNotReadable: boom"},
		{"without path", New(FileNotWritable, "", 0, cause), "FileNotWritable: boom"},
		{"formatted", Newf(UnrecognizedStatementShape, "b.py", 1, "bad %q", "from x"), `b.py:1: UnrecognizedStatementShape: bad "from x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, tt.err.Error())
		})
	}

	req.ErrorIs(New(FileNotReadable, "a.py", 0, cause), cause)
}

func TestKindOf(t *testing.T) {
	req := require.New(t)
	err := fmt.Errorf("outer: %w", New(FileNotWritable, "a.py", 0, goerrors.New("denied")))
	req.Equal(FileNotWritable, KindOf(err))
	req.Equal(Unknown, KindOf(goerrors.New("plain")))
	req.Equal(Unknown, KindOf(nil))
}
