package oracles

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
)

// DuplicateIdentityError indicates that an account was added to a pool which
// already holds an identity for it.
type DuplicateIdentityError struct {
	Account common.Address
}

func (e DuplicateIdentityError) Error() string {
	return fmt.Sprintf("oracle identity %s already exists in pool", e.Account.Hex())
}

// IsDuplicateIdentityError returns whether an error is DuplicateIdentityError
func IsDuplicateIdentityError(err error) bool {
	var e DuplicateIdentityError
	return errors.As(err, &e)
}

// UnknownIdentityError indicates that an operation referenced an account which
// is not part of the pool.
type UnknownIdentityError struct {
	Account common.Address
}

func (e UnknownIdentityError) Error() string {
	return fmt.Sprintf("unknown oracle identity %s", e.Account.Hex())
}

// IsUnknownIdentityError returns whether an error is UnknownIdentityError
func IsUnknownIdentityError(err error) bool {
	var e UnknownIdentityError
	return errors.As(err, &e)
}

// IndexesAlreadySetError indicates that indexes were stored for an identity which
// already holds its contract assignment. Assignments never change once set.
type IndexesAlreadySetError struct {
	Account common.Address
	Indexes oracle.Indexes
}

func (e IndexesAlreadySetError) Error() string {
	return fmt.Sprintf("oracle identity %s already holds indexes %s", e.Account.Hex(), e.Indexes)
}

// IsIndexesAlreadySetError returns whether an error is IndexesAlreadySetError
func IsIndexesAlreadySetError(err error) bool {
	var e IndexesAlreadySetError
	return errors.As(err, &e)
}

// RegistrationFailedError indicates that an identity could not be registered with
// the contract. The identity stays unregistered for the lifetime of the process.
type RegistrationFailedError struct {
	Account common.Address
	Err     error
}

func NewRegistrationFailedErrorf(account common.Address, msg string, args ...interface{}) error {
	return RegistrationFailedError{
		Account: account,
		Err:     fmt.Errorf(msg, args...),
	}
}

func (e RegistrationFailedError) Error() string {
	return fmt.Sprintf("registration of oracle %s failed: %s", e.Account.Hex(), e.Err.Error())
}

func (e RegistrationFailedError) Unwrap() error {
	return e.Err
}

// IsRegistrationFailedError returns whether an error is RegistrationFailedError
func IsRegistrationFailedError(err error) bool {
	var e RegistrationFailedError
	return errors.As(err, &e)
}

// SubmissionFailedError indicates that a single response could not be submitted.
type SubmissionFailedError struct {
	Oracle common.Address
	Index  uint8
	Err    error
}

func (e SubmissionFailedError) Error() string {
	return fmt.Sprintf("submission of oracle %s for index %d failed: %s", e.Oracle.Hex(), e.Index, e.Err.Error())
}

func (e SubmissionFailedError) Unwrap() error {
	return e.Err
}

// SubscriptionDroppedError indicates that the subscription to a contract event
// ended, or could not be established.
type SubscriptionDroppedError struct {
	Event string
	Err   error
}

func (e SubscriptionDroppedError) Error() string {
	return fmt.Sprintf("subscription to %s events dropped: %v", e.Event, e.Err)
}

func (e SubscriptionDroppedError) Unwrap() error {
	return e.Err
}
