package storage

import "io"

// progressReader reports transfer progress as the transport consumes the
// payload. Percentages are monotonically non-decreasing; the terminal 100
// comes from finish alone, since the transport reading the last byte does not
// mean the upload succeeded.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	lastPct    float64
	onProgress func(pct float64)
}

func newProgressReader(r io.Reader, total int64, onProgress func(float64)) *progressReader {
	return &progressReader{r: r, total: total, onProgress: onProgress}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.onProgress == nil || p.total <= 0 {
		return
	}
	pct := float64(p.read) / float64(p.total) * 100
	// 100 is reserved for finish; a fully consumed payload is not a
	// completed upload.
	if pct >= 100 {
		pct = 99
	}
	if pct > p.lastPct {
		p.lastPct = pct
		p.onProgress(pct)
	}
}

// finish emits the terminal 100 exactly once. Callers invoke it only after
// the transfer has been acknowledged as successful.
func (p *progressReader) finish() {
	if p.onProgress == nil {
		return
	}
	if p.lastPct < 100 {
		p.lastPct = 100
		p.onProgress(100)
	}
}
