package port

import "io"

// PDFInspector reads a PDF stream and reports its page count.
type PDFInspector interface {
	PageCount(rs io.ReadSeeker) (int, error)
}
