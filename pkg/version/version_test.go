package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/skilltracker/pkg/version"
)

func TestString(t *testing.T) {
	t.Parallel()

	version.Init()

	assert.Contains(t, version.String(), "skilltracker "+version.Version)
	assert.NotEmpty(t, version.Commit)
}
