package domain

import "errors"

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrInvalidGroupID   = errors.New("invalid group id")
	ErrInvalidGroupName = errors.New("group name must be 1 to 50 characters")
	ErrGroupHasVotes    = errors.New("group with votes cannot be deleted")
	ErrAlreadyVoted     = errors.New("already voted for this group")
	ErrInvalidScore     = errors.New("score must be between 1 and 5")
	ErrInvalidDeviceID  = errors.New("invalid device id")
	ErrVotingDisabled   = errors.New("voting is currently disabled")
	ErrResultsHidden    = errors.New("results are not visible")
	ErrInvalidInterval  = errors.New("update interval must be at least 1 second")
	ErrInternal         = errors.New("internal server error")
)
