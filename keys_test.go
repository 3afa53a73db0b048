package reqbody_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reqbody"
)

func TestParsedBodyFromContext(t *testing.T) {
	// Arrange
	ctx := context.Background()

	// Act
	actual, ok := reqbody.ParsedBodyFromContext(ctx)

	// Assert
	require.False(t, ok)
	require.Nil(t, actual)

	// Arrange
	ctx = reqbody.NewParsedBodyContext(ctx, nil)

	// Act
	actual, ok = reqbody.ParsedBodyFromContext(ctx)

	// Assert
	require.True(t, ok)
	require.Nil(t, actual)

	// Arrange
	expected := map[string]any{"test": "value"}
	ctx = reqbody.NewParsedBodyContext(ctx, expected)

	// Act
	actual, ok = reqbody.ParsedBodyFromContext(ctx)

	// Assert
	require.True(t, ok)
	require.Equal(t, expected, actual)
}

func TestKeyString(t *testing.T) {
	require.Equal(t, "reqbody context key: ParsedBodyKey", reqbody.ParsedBodyKey.String())
}
