package trackpb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tangomike/tm-grpc/pkg/track"
)

func TestStatusFromError_NotFound(t *testing.T) {
	_, err := track.Open("/no/such/file.bin")
	got := StatusFromError(err)
	st, ok := status.FromError(got)
	assert.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
}

func TestStatusFromError_NonTrackErrorIsInternal(t *testing.T) {
	got := StatusFromError(errors.New("boom"))
	st, ok := status.FromError(got)
	assert.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
}

func TestStatusFromError_Nil(t *testing.T) {
	assert.Nil(t, StatusFromError(nil))
}
