package palette

import "io"

// MaxFileSize is the largest palette file LoadFile reads.
const MaxFileSize = 1 << 20

// limitedReader fails with ErrTooLarge once more than max bytes are
// available, instead of silently truncating like io.LimitReader.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func newLimitedReader(r io.Reader, max int64) *limitedReader {
	return &limitedReader{r: r, remaining: max}
}

// Read implements io.Reader with a size limit.
func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		var probe [1]byte
		n, err := l.r.Read(probe[:])
		if n > 0 {
			return 0, ErrTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
