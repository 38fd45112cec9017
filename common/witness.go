package common

import "github.com/nspcc-dev/neo-go/pkg/interop/runtime"

var (
	// ErrAdminWitnessFailed appears when the method must be
	// called by the contract administrator but was not.
	ErrAdminWitnessFailed = "unauthorized: admin witness check failed"
	// ErrOwnerWitnessFailed appears when the method must be called
	// by the account acting in the operation (sharer or staker) but was not.
	ErrOwnerWitnessFailed = "unauthorized: owner witness check failed"
	// ErrSettlerWitnessFailed appears when the method must be called
	// by the settlement processor but was not.
	ErrSettlerWitnessFailed = "unauthorized: settler witness check failed"
)

// CheckAdminWitness checks witness of the contract administrator.
// It panics with ErrAdminWitnessFailed message on fail.
func CheckAdminWitness(admin []byte) {
	checkWitnessWithPanic(admin, ErrAdminWitnessFailed)
}

// CheckOwnerWitness checks witness of the passed caller.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrOwnerWitnessFailed)
}

// CheckSettlerWitness checks witness of the settlement processor.
// It panics with ErrSettlerWitnessFailed message on fail.
func CheckSettlerWitness(settler []byte) {
	checkWitnessWithPanic(settler, ErrSettlerWitnessFailed)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
