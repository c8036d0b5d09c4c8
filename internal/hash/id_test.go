package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		id       uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short type name", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.typeName))
		})
	}
}

func TestIDIsStableAndDistinguishesInputs(t *testing.T) {
	assert.Equal(t, ID("*ext.Point"), ID("*ext.Point"))
	assert.NotEqual(t, ID("*ext.Point"), ID("*ext.Point3D"))
}
