package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// AbortWithMessage logs msg and stops execution with the ABORT opcode. The
// whole transaction faults, the abort can't be caught by the calling
// contract.
func AbortWithMessage(msg string) {
	runtime.Log(msg)
	util.Abort()
}
