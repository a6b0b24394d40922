package shell

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// MaxLine is the longest accepted console line, excluding the newline.
const MaxLine = 256

// Welcome is printed when a console session starts.
const Welcome = "ads1115: welcome to the ads1115 shell."

// Serve runs a line console on r until ctx is done or r reports EOF. Each
// non-zero status is followed by its StatusMessage.
func (s *Shell) Serve(ctx context.Context, r io.Reader) error {
	s.out.Printf("%s\n", Welcome)
	br := bufio.NewReaderSize(r, MaxLine+1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := readLine(br)
		switch {
		case errors.Is(err, errLineTooLong):
			s.out.Printf("ads1115: length is too long.\n")
			continue
		case errors.Is(err, io.EOF):
			if line != "" {
				s.exec(line)
			}
			return nil
		case err != nil:
			return err
		}
		s.exec(line)
	}
}

func (s *Shell) exec(line string) {
	if msg := StatusMessage(s.Exec(line)); msg != "" {
		s.out.Printf("%s\n", msg)
	}
}

var errLineTooLong = errors.New("shell: line too long")

// readLine returns one line without its terminator. An overlong line is
// consumed up to its newline or EOF without buffering past MaxLine, and
// reported as errLineTooLong.
func readLine(br *bufio.Reader) (string, error) {
	var b strings.Builder
	long := false
	for {
		frag, err := br.ReadSlice('\n')
		if !long {
			b.Write(frag)
			long = len(strings.TrimRight(b.String(), "\r\n")) > MaxLine
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if long {
			return "", errLineTooLong
		}
		return strings.TrimRight(b.String(), "\r\n"), err
	}
}
