package anchor

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	dtcose "github.com/datatrails/go-datatrails-common/cose"
	"github.com/forestrie/go-merkleanchor/merkle"
	"github.com/veraison/go-cose"
)

// IdentifiableCoseSigner is a Sign1 signer that can also say which key it
// signs with. Key custody stays with the caller.
type IdentifiableCoseSigner interface {
	cose.Signer
	PublicKey() (*ecdsa.PublicKey, error)
	KeyIdentifier() string
}

// Sealer signs the AnchorState of each anchored batch.
//
// A seal commits to the batch root, but the root is removed from the
// published payload. Anyone holding a seal must therefore rebuild the root
// from a leaf and its proof before the signature will check, so a seal on its
// own says nothing about which content was anchored.
type Sealer struct {
	issuer string
	codec  dtcbor.CBORCodec
	signer IdentifiableCoseSigner
}

func NewSealer(issuer string, codec dtcbor.CBORCodec, signer IdentifiableCoseSigner) Sealer {
	return Sealer{
		issuer: issuer,
		codec:  codec,
		signer: signer,
	}
}

// Seal signs state on behalf of subject. The state must describe a batch built
// under this package's odd node rule, and carry its root and leaf count.
func (s Sealer) Seal(subject string, state AnchorState) ([]byte, error) {
	if state.TreePolicy != uint8(merkle.Policy) {
		return nil, fmt.Errorf("%w: %d", ErrTreePolicyMismatch, state.TreePolicy)
	}
	if state.LeafCount == 0 {
		return nil, fmt.Errorf("%w: no leaves", ErrSealedStateInvalid)
	}
	if len(state.Root) != merkle.HashSize {
		return nil, fmt.Errorf("%w: root of %d bytes", ErrSealedStateInvalid, len(state.Root))
	}
	return s.sign(subject, state)
}

// sign produces the Sign1 with the root detached, without checking state
func (s Sealer) sign(subject string, state AnchorState) ([]byte, error) {

	publicKey, err := s.signer.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", ErrSealFailed, err)
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				dtcose.HeaderLabelCWTClaims: dtcose.NewCNFClaim(
					s.issuer, subject, s.signer.KeyIdentifier(), s.signer.Algorithm(), *publicKey),
			},
		},
	}

	msg.Payload, err = s.codec.MarshalCBOR(state)
	if err != nil {
		return nil, err
	}
	if err = msg.Sign(rand.Reader, nil, s.signer); err != nil {
		return nil, err
	}

	detached := state
	detached.Root = nil
	msg.Payload, err = s.codec.MarshalCBOR(detached)
	if err != nil {
		return nil, err
	}
	return msg.MarshalCBOR()
}

// NewCBORCodec returns the deterministic codec used for sealed states, proof
// files and ledger records.
func NewCBORCodec() (dtcbor.CBORCodec, error) {
	return dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(), // unsigned int decodes to uint64
	)
}
