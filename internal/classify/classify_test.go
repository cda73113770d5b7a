package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"groupdtc/internal/replica"
)

func outcomes(kinds ...replica.Kind) []replica.Outcome {
	out := make([]replica.Outcome, len(kinds))
	for i, k := range kinds {
		out[i] = replica.Outcome{Kind: k}
	}
	return out
}

func TestClassify_AllAlreadyInDesiredState(t *testing.T) {
	v := outcomes(replica.AlreadyInDesiredState, replica.AlreadyInDesiredState, replica.AlreadyInDesiredState)
	assert.Equal(t, Succeeded, Classify(v, replica.OpCreate))
}

func TestClassify_AllSuccess(t *testing.T) {
	v := outcomes(replica.Success, replica.Success, replica.Success)
	assert.Equal(t, Succeeded, Classify(v, replica.OpCreate))
}

func TestClassify_AllTransientFailure(t *testing.T) {
	v := outcomes(replica.ServerError, replica.ServerError, replica.ServerError)
	assert.Equal(t, ToBeRetried, Classify(v, replica.OpCreate))
}

func TestClassify_AllTransportFailure(t *testing.T) {
	v := outcomes(replica.TransportError, replica.TransportError, replica.TransportError)
	assert.Equal(t, ToBeRetried, Classify(v, replica.OpDelete))
}

func TestClassify_MixedErrorKindsAllFail(t *testing.T) {
	v := outcomes(replica.ClientError, replica.ServerError, replica.TransportError)
	assert.Equal(t, ToBeRetried, Classify(v, replica.OpCreate))
}

func TestClassify_PartialSuccessNeedsCompensation(t *testing.T) {
	v := outcomes(replica.Success, replica.ServerError, replica.Success)
	assert.Equal(t, NeedsCompensation, Classify(v, replica.OpCreate))
}

func TestClassify_PartialSuccessWithTransportErrorNeedsCompensation(t *testing.T) {
	v := outcomes(replica.Success, replica.TransportError, replica.AlreadyInDesiredState)
	assert.Equal(t, NeedsCompensation, Classify(v, replica.OpCreate))
}

func TestClassify_SuccessAndAlreadyInDesiredStateIsSucceeded(t *testing.T) {
	v := outcomes(replica.Success, replica.AlreadyInDesiredState, replica.Success)
	assert.Equal(t, Succeeded, Classify(v, replica.OpCreate))
}

func TestClassify_DeleteOnAbsentGroupAllNoop(t *testing.T) {
	v := outcomes(replica.AlreadyInDesiredState, replica.AlreadyInDesiredState, replica.AlreadyInDesiredState)
	assert.Equal(t, Succeeded, Classify(v, replica.OpDelete))
}

func TestClassify_SingleReplicaSuccess(t *testing.T) {
	v := outcomes(replica.Success)
	assert.Equal(t, Succeeded, Classify(v, replica.OpCreate))
}

func TestClassify_SingleReplicaFailure(t *testing.T) {
	v := outcomes(replica.ServerError)
	assert.Equal(t, ToBeRetried, Classify(v, replica.OpCreate))
}

func TestSuccessSet(t *testing.T) {
	v := outcomes(replica.Success, replica.ServerError, replica.Success, replica.AlreadyInDesiredState)
	assert.Equal(t, []int{0, 2}, SuccessSet(v))
}

func TestSuccessSet_EmptyWhenNoSuccess(t *testing.T) {
	v := outcomes(replica.ServerError, replica.AlreadyInDesiredState)
	assert.Empty(t, SuccessSet(v))
}
