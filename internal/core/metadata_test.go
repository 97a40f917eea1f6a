package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffinityIsValid(t *testing.T) {
	assert.True(t, AffinityCommon.IsValid())
	assert.True(t, AffinityClient.IsValid())
	assert.True(t, AffinityServer.IsValid())
	assert.False(t, Affinity("edge").IsValid())
}
