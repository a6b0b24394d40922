package shell

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeRunsLines(t *testing.T) {
	f := newFixture(t)
	in := strings.NewReader("ads1115 -p\r\nads1115 -t reg -a VDD\nhello\n\nads1115 -i")
	require.NoError(t, f.sh.Serve(context.Background(), in))
	out := f.out.String()
	assert.True(t, strings.HasPrefix(out, Welcome+"\n"))
	assert.Contains(t, out, "ads1115: SCL connected to GP5.")
	assert.Contains(t, out, "ads1115: param is invalid.")
	assert.Contains(t, out, "ads1115: unknown command.")
	assert.Contains(t, out, "ads1115: chip is", "last line without newline still runs")
	assert.Len(t, f.rep.Entries, 4)
}

func TestServeLineTooLong(t *testing.T) {
	f := newFixture(t)
	long := "ads1115 " + strings.Repeat("x", MaxLine)
	in := strings.NewReader(long + "\nads1115 -p\n")
	require.NoError(t, f.sh.Serve(context.Background(), in))
	out := f.out.String()
	assert.Contains(t, out, "ads1115: length is too long.")
	assert.Contains(t, out, "ads1115: INT connected to GP6.")
}

func TestServeLongLastLineWithoutNewline(t *testing.T) {
	f := newFixture(t)
	in := strings.NewReader("ads1115 -p\nads1115 " + strings.Repeat("y", 400))
	require.NoError(t, f.sh.Serve(context.Background(), in))
	out := f.out.String()
	assert.Contains(t, out, "ads1115: length is too long.")
	assert.NotContains(t, out, "param is invalid", "overlong line was run")
	assert.Len(t, f.rep.Entries, 1)
}

func TestReadLineBoundsBuffer(t *testing.T) {
	long := strings.Repeat("z", 10*MaxLine)
	br := bufio.NewReaderSize(strings.NewReader(long+"\nnext\n"), MaxLine+1)
	_, err := readLine(br)
	assert.ErrorIs(t, err, errLineTooLong)
	line, err := readLine(br)
	require.NoError(t, err)
	assert.Equal(t, "next", line)

	br = bufio.NewReaderSize(strings.NewReader(long), MaxLine+1)
	_, err = readLine(br)
	assert.ErrorIs(t, err, errLineTooLong, "EOF must not hide the length error")
	_, err = readLine(br)
	assert.ErrorIs(t, err, io.EOF)
}

func TestServeStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := f.sh.Serve(ctx, strings.NewReader("ads1115 -i\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
