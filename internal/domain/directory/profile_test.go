//go:build unit

package directory_test

import (
	"testing"

	"commerce-booking/internal/domain/directory"

	"github.com/stretchr/testify/assert"
)

func TestProfileName(t *testing.T) {
	assert.Equal(t, "Dr. Ionescu", directory.Profile{DisplayName: "Dr. Ionescu", Email: "i@example.com"}.Name())
	assert.Equal(t, "i@example.com", directory.Profile{Email: "i@example.com"}.Name())
}

func TestDefaultOrder(t *testing.T) {
	order := directory.DefaultOrder()
	assert.Equal(t, []directory.Kind{directory.KindSpecialist, directory.KindUser}, order)
	for _, k := range order {
		assert.True(t, k.IsValid())
	}
	assert.False(t, directory.Kind("admin").IsValid())
}
