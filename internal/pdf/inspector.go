package pdf

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"docintake/internal/port"
)

type inspector struct {
	conf *model.Configuration
}

// NewInspector creates a pdfcpu-backed PDFInspector using relaxed validation.
func NewInspector() port.PDFInspector {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &inspector{conf: conf}
}

// PageCount parses the document and returns its page count. The stream is rewound to the
// start afterwards so callers can keep reading it. Parser panics on malformed input are
// returned as errors.
func (i *inspector) PageCount(rs io.ReadSeeker) (pages int, err error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seeking pdf: %w", err)
	}
	defer func() {
		if _, seekErr := rs.Seek(0, io.SeekStart); seekErr != nil && err == nil {
			pages, err = 0, fmt.Errorf("rewinding pdf: %w", seekErr)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("reading pdf: %v", r)
		}
	}()

	pages, err = api.PageCount(rs, i.conf)
	if err != nil {
		return 0, fmt.Errorf("reading pdf: %w", err)
	}
	return pages, nil
}
