package constants

import "strings"

// Backend names the PDF parsing collaborator used for a run.
type Backend string

const (
	BackendNative  Backend = "native"  // github.com/ledongthuc/pdf, in-process
	BackendPoppler Backend = "poppler" // pdfinfo + pdftotext subprocesses
)

// Mode selects how a page's text is laid out.
type Mode string

const (
	ModeLayout Mode = "layout" // keep the 2-D arrangement (columns, indentation)
	ModePlain  Mode = "plain"  // reading-order concatenation
)

// Backends holds the accepted PDFTEXT_BACKEND values.
var Backends = []Backend{BackendNative, BackendPoppler}

// Modes holds the accepted PDFTEXT_MODE values.
var Modes = []Mode{ModeLayout, ModePlain}

// ParseBackend lowercases and trims s and reports whether it names a known backend.
func ParseBackend(s string) (Backend, bool) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Backends {
		if b == known {
			return b, true
		}
	}
	return "", false
}

// ParseMode lowercases and trims s and reports whether it names a known mode.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, true
		}
	}
	return "", false
}
