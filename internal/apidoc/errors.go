package apidoc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolved is matched by every *ResolutionError.
	ErrUnresolved = errors.New("unresolved path")
	// ErrContractViolation is matched by every *ContractError.
	ErrContractViolation = errors.New("classifier contract violation")
	// ErrInvalidTree is matched by every *TreeError.
	ErrInvalidTree = errors.New("invalid documentation tree")
)

// ResolutionError reports a path that could not be resolved to a live module.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("resolve %q: %v", e.Path, ErrUnresolved)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func (e *ResolutionError) Is(target error) bool { return target == ErrUnresolved }

// ContractError reports a classifier that returned a malformed leaf.
type ContractError struct {
	Classifier string
	Path       string
	Reason     string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%v: %s constructing %q: %s", ErrContractViolation, e.Classifier, e.Path, e.Reason)
}

func (e *ContractError) Is(target error) bool { return target == ErrContractViolation }

// TreeError reports a broken parent/child or uniqueness invariant.
type TreeError struct {
	Path   string
	Reason string
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidTree, e.Path, e.Reason)
}

func (e *TreeError) Is(target error) bool { return target == ErrInvalidTree }
