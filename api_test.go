package extern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name string `wire:"0"`
	Age  int32  `wire:"1"`
	ID   UUID   `wire:"2"`
}

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	in := profile{
		Name: "ada",
		Age:  36,
		ID:   NewUUID(1, 2),
	}

	data, err := Marshal(&in)
	require.NoError(t, err)

	var out profile
	require.NoError(t, Unmarshal(data, &out))

	assert.Equal(t, in, out)
}
