package latex

import "github.com/dpotapov/go-htmltex/css"

// envMask tracks alignment environments opened by the style applier
// that still owe their \end counterpart.
type envMask uint8

const (
	envCenter envMask = 1 << iota
	envFlushRight
	envFlushLeft
	envJustify
)

// state is the per-conversion mutable state machine: label counters,
// paragraph/list/table nesting, the pending table caption, and the
// style-emission bookkeeping shared with the applier.
type state struct {
	// Counters for generated labels and captions.
	tableIdx  int
	figureIdx int
	imageIdx  int

	// Nesting.
	listDepth     int
	inParagraph   bool
	inTable       bool
	inTableRow    bool
	inTableCell   bool
	tableColumns  int
	currentColumn int
	verbatimDepth int

	// Pending table caption, filled on the first <caption>.
	tableCaption    string
	tableHasCaption bool

	// Style emission: closing braces owed, environments owed, and the
	// properties already applied for the current element so a wrapper
	// is never emitted twice.
	openBraces uint8
	openEnvs   envMask
	applied    css.Mask
}

func (s *state) reset() {
	*s = state{}
}

// resetTable clears the per-table fields when a table closes.
func (s *state) resetTable() {
	s.inTable = false
	s.inTableRow = false
	s.inTableCell = false
	s.tableColumns = 0
	s.currentColumn = 0
	s.tableCaption = ""
	s.tableHasCaption = false
}
