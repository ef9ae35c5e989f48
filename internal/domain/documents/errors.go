package documents

import "errors"

var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrRenderFailed        = errors.New("document render failed")
	ErrMonthRenderFailed   = errors.New("salary slip render failed for month")
	ErrEmptyRender         = errors.New("renderer returned an empty document")
)
