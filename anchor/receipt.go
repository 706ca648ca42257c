package anchor

import (
	"errors"
	"fmt"
	"hash"

	"github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-merkleanchor/merkle"
	fxcbor "github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"
)

// VDSCoseReceiptProofsTag is the unprotected header label carrying the
// inclusion proofs of a receipt.
const VDSCoseReceiptProofsTag = int64(396)

type VerifiableProofs struct {
	InclusionProofs []merkle.Proof `cbor:"-1,keyasint,omitempty"`
}

// VerifiableProofsHeader provides for encoding, and deferred decoding, of the
// receipt proofs in the COSE_Sign1 unprotected header
type VerifiableProofsHeader struct {
	VerifiableProofs VerifiableProofs `cbor:"396,keyasint"`
}

// NewReceipt returns a receipt for a single leaf of a sealed batch. The
// receipt is the seal with the leaf's inclusion proof attached in the
// unprotected header, so no further signing is needed.
func NewReceipt(codec cbor.CBORCodec, seal []byte, proof merkle.Proof) ([]byte, error) {
	sealed, err := DecodeSeal(codec, seal)
	if err != nil {
		return nil, err
	}
	if proof.Index >= sealed.State.LeafCount {
		return nil, fmt.Errorf("%w: index %d, batch of %d", ErrProofNotInBatch, proof.Index, sealed.State.LeafCount)
	}

	return attachProof(sealed, proof)
}

func attachProof(sealed SealedState, proof merkle.Proof) ([]byte, error) {
	msg := sealed.Message
	msg.Headers.RawUnprotected = nil
	if msg.Headers.Unprotected == nil {
		msg.Headers.Unprotected = cose.UnprotectedHeader{}
	}
	msg.Headers.Unprotected[VDSCoseReceiptProofsTag] = VerifiableProofs{
		InclusionProofs: []merkle.Proof{proof},
	}
	return msg.MarshalCBOR()
}

// VerifyReceipt verifies a receipt for the candidate leaf. On success the
// verified state, with its recomputed root, is returned.
//
// A receipt that does not prove the candidate, because the signature does not
// check or because its proof can not belong to the sealed batch, is not an
// error, the result is simply false. Malformed receipts are errors.
func VerifyReceipt(
	codec cbor.CBORCodec, hasher hash.Hash, receipt []byte, candidate []byte,
) (bool, AnchorState, error) {

	sealed, err := DecodeSeal(codec, receipt)
	if err != nil {
		return false, AnchorState{}, err
	}

	var header VerifiableProofsHeader
	err = fxcbor.Unmarshal(sealed.Message.Headers.RawUnprotected, &header)
	if err != nil {
		return false, AnchorState{}, fmt.Errorf("%w: %v", ErrReceiptMalformed, err)
	}
	proofs := header.VerifiableProofs.InclusionProofs
	if len(proofs) == 0 {
		return false, AnchorState{}, ErrReceiptNoProofs
	}

	state, err := sealed.VerifyLeaf(codec, hasher, candidate, proofs[0])
	if errors.Is(err, ErrProofNotInBatch) || errors.Is(err, ErrSealNotVerified) {
		return false, AnchorState{}, nil
	}
	if err != nil {
		return false, AnchorState{}, err
	}
	return true, state, nil
}
