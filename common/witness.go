package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/neo"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// ErrCommitteeWitnessFailed appears when the method must be called by the
// committee but was not.
const ErrCommitteeWitnessFailed = "committee witness check failed"

// CheckCommitteeWitness checks witness of the committee multisignature
// account. It panics with ErrCommitteeWitnessFailed message on fail.
func CheckCommitteeWitness() {
	if !HasUpdateAccess() {
		panic(ErrCommitteeWitnessFailed)
	}
}

// HasUpdateAccess returns true if the transaction is signed by the committee
// and contract can be updated.
func HasUpdateAccess() bool {
	return runtime.CheckWitness(CommitteeAddress())
}

// CommitteeAddress returns the (N/2+1) multisignature address of the current
// committee.
func CommitteeAddress() []byte {
	committee := neo.GetCommittee()
	return contract.CreateMultisigAccount(len(committee)/2+1, committee)
}
