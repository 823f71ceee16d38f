package cpu

import "errors"

// ErrIllegalOpcode is returned by Step when the fetched opcode has no
// defined instruction. The CPU latches a stopped state before surfacing it;
// the caller decides whether to abort or report.
var ErrIllegalOpcode = errors.New("cpu: illegal opcode")
