package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reqbody/parser"
)

func TestFormParse(t *testing.T) {
	// Act
	actual, err := parser.NewForm().Parse("")

	// Assert
	require.Nil(t, err)
	require.Nil(t, actual)

	// Act
	actual, err = parser.NewForm().Parse("test=value&tag=a&tag=b&empty=")

	// Assert
	require.Nil(t, err)
	require.Equal(t, map[string]any{
		"test":  "value",
		"tag":   []string{"a", "b"},
		"empty": "",
	}, actual)

	// Arrange
	var de *parser.DecodeError

	// Act
	actual, err = parser.NewForm().Parse("test=%zz")

	// Assert
	require.Nil(t, actual)
	require.ErrorAs(t, err, &de)
	require.Contains(t, de.Msg, "Invalid form data in request body: ")
}

func TestFunc(t *testing.T) {
	// Arrange
	var p parser.Parser = parser.Func(func(raw string) (any, error) {
		return []any{raw}, nil
	})

	// Act
	actual, err := p.Parse("hi")

	// Assert
	require.Nil(t, err)
	require.Equal(t, []any{"hi"}, actual)
}
