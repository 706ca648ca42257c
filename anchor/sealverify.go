package anchor

import (
	"fmt"
	"hash"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	dtcose "github.com/datatrails/go-datatrails-common/cose"
	"github.com/forestrie/go-merkleanchor/merkle"
)

// SealedState is a decoded seal whose signature has not yet been checked.
// State.Root is always nil, it is only known once a leaf has been proven.
type SealedState struct {
	Message *dtcose.CoseSign1Message
	State   AnchorState
}

// DecodeSeal decodes a seal, or a receipt, and checks the batch description it
// carries is one this package can verify against: the odd node rule must be
// ours, the batch must be non empty and the root must have been detached.
func DecodeSeal(codec dtcbor.CBORCodec, data []byte) (SealedState, error) {
	msg, err := dtcose.NewCoseSign1MessageFromCBOR(
		data, dtcose.WithDecOptions(dtcbor.NewDeterministicDecOpts()))
	if err != nil {
		return SealedState{}, err
	}

	var state AnchorState
	if err = codec.UnmarshalInto(msg.Payload, &state); err != nil {
		return SealedState{}, err
	}

	if state.TreePolicy != uint8(merkle.Policy) {
		return SealedState{}, fmt.Errorf("%w: %d", ErrTreePolicyMismatch, state.TreePolicy)
	}
	if state.LeafCount == 0 {
		return SealedState{}, fmt.Errorf("%w: no leaves", ErrSealedStateInvalid)
	}
	if state.Root != nil {
		return SealedState{}, fmt.Errorf("%w: root not detached", ErrSealedStateInvalid)
	}
	return SealedState{Message: msg, State: state}, nil
}

// VerifyLeaf proves leafHash is a member of the sealed batch and checks the
// seal's signature against the root that proof produces. The returned state
// has its root restored.
//
// A proof that can not belong to a batch of the sealed size fails with
// ErrProofNotInBatch. Any other mismatch, a different leaf or a different
// batch, surfaces as a signature failure wrapped in ErrSealNotVerified.
func (s SealedState) VerifyLeaf(
	codec dtcbor.CBORCodec, hasher hash.Hash, leafHash []byte, proof merkle.Proof,
) (AnchorState, error) {

	leafCount := s.State.LeafCount
	if proof.Index >= leafCount || len(proof.Path) != merkle.ProofLen(leafCount) {
		return AnchorState{}, fmt.Errorf(
			"%w: index %d, path %d, batch of %d", ErrProofNotInBatch, proof.Index, len(proof.Path), leafCount)
	}

	state := s.State
	state.Root = merkle.IncludedRoot(hasher, leafHash, proof)

	payload, err := codec.MarshalCBOR(state)
	if err != nil {
		return AnchorState{}, err
	}
	s.Message.Payload = payload

	err = s.Message.VerifyWithProvider(dtcose.NewCWTPublicKeyProvider(s.Message), nil)
	if err != nil {
		return AnchorState{}, fmt.Errorf("%w: %v", ErrSealNotVerified, err)
	}
	return state, nil
}
