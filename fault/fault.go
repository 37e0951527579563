// Copyright (c) 2014-2016 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type DecodeError GenericError
type DuplicateError GenericError
type ConstraintError GenericError
type PriceError GenericError
type CorruptionError GenericError
type CancelledError GenericError

// common errors
var (
	ErrAlreadyInitialised     = ProcessError("already initialised")
	ErrBranchNotFound         = NotFoundError("branch not found")
	ErrDecisionNotFound       = NotFoundError("decision not found")
	ErrMarketNotFound         = NotFoundError("market not found")
	ErrTradeNotFound          = NotFoundError("trade not found")
	ErrSealedVoteNotFound     = NotFoundError("sealed vote not found")
	ErrRevealVoteNotFound     = NotFoundError("reveal vote not found")
	ErrStealVoteNotFound      = NotFoundError("steal vote not found")
	ErrOutcomeNotFound        = NotFoundError("outcome not found")
	ErrRecordNotFound         = NotFoundError("record not found")
	ErrDuplicateRecord        = DuplicateError("duplicate record")
	ErrTruncatedRecord        = DecodeError("truncated record")
	ErrInvalidTag             = DecodeError("invalid record tag")
	ErrLengthOverflow         = DecodeError("length prefix exceeds buffer")
	ErrNotAMarketRecord       = DecodeError("not a market record")
	ErrInvalidStructPointer   = InvalidError("configuration target is not a struct pointer")
	ErrInvalidLoggerChannel   = ProcessError("invalid logger channel")
	ErrInvalidBranchParams    = ConstraintError("invalid branch parameters")
	ErrInvalidDecisionRange   = ConstraintError("invalid decision min/max range")
	ErrInvalidDecisionState   = ConstraintError("decision state out of range")
	ErrInvalidDecisionFnID    = ConstraintError("invalid decision function id")
	ErrTauMisaligned          = ConstraintError("height is not aligned to branch tau")
	ErrRevealWithoutSeal      = ConstraintError("reveal vote has no matching sealed vote")
	ErrStealWithoutSeal       = ConstraintError("steal vote names no existing sealed vote")
	ErrNonPositiveShares      = ConstraintError("n_shares must be positive")
	ErrNonPositivePrice       = ConstraintError("price must be positive")
	ErrPriceBelowQuote        = PriceError("declared price is below the computed quote")
	ErrPriceAboveQuote        = PriceError("declared price is above the computed quote")
	ErrStoreCorruption        = CorruptionError("store corruption")
	ErrCancelled              = CancelledError("operation cancelled")
	ErrInvalidCursor          = InvalidError("invalid cursor")
	ErrInvalidCount           = InvalidError("invalid fetch count")
	ErrEmptyVoteMatrix        = InvalidError("vote matrix has no rows or columns")
	ErrSingularCovariance     = ProcessError("weighted covariance matrix is degenerate")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e DecodeError) Error() string     { return string(e) }
func (e DuplicateError) Error() string  { return string(e) }
func (e ConstraintError) Error() string { return string(e) }
func (e PriceError) Error() string      { return string(e) }
func (e CorruptionError) Error() string { return string(e) }
func (e CancelledError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrDecode(e error) bool     { _, ok := e.(DecodeError); return ok }
func IsErrDuplicate(e error) bool  { _, ok := e.(DuplicateError); return ok }
func IsErrConstraint(e error) bool { _, ok := e.(ConstraintError); return ok }
func IsErrPrice(e error) bool      { _, ok := e.(PriceError); return ok }
func IsErrCorruption(e error) bool { _, ok := e.(CorruptionError); return ok }
func IsErrCancelled(e error) bool  { _, ok := e.(CancelledError); return ok }
