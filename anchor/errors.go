package anchor

import "errors"

var (
	ErrAlreadyAnchored     = errors.New("the root has already been anchored")
	ErrLedgerRecordInvalid = errors.New("the ledger returned a record for a different root")
	ErrLedgerNotProvided   = errors.New("a ledger was required but not provided")
	ErrSealFailed          = errors.New("the batch was anchored but could not be sealed")
)

var (
	ErrReceiptMalformed   = errors.New("the receipt proofs header is malformed")
	ErrReceiptNoProofs    = errors.New("the receipt contains no inclusion proofs")
	ErrTreePolicyMismatch = errors.New("the sealed state was produced with an unsupported odd node policy")
	ErrSealedStateInvalid = errors.New("the sealed state does not describe an anchored batch")
	ErrProofNotInBatch    = errors.New("the proof can not belong to a batch of the sealed size")
	ErrSealNotVerified    = errors.New("the seal signature does not verify for the proven root")
)
