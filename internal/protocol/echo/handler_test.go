package echo

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEcho(t *testing.T) {
	t.Run("ReturnsPayloadUnchanged", func(t *testing.T) {
		payload := []byte("hello world")
		result := Process(CmdEcho, payload)

		require.Equal(t, Respond, result.Disposition)
		assert.Equal(t, CmdEcho, result.Command)
		assert.Equal(t, payload, result.Payload)
	})

	t.Run("EmptyPayload", func(t *testing.T) {
		result := Process(CmdEcho, []byte{})

		require.Equal(t, Respond, result.Disposition)
		assert.Equal(t, CmdEcho, result.Command)
		assert.Empty(t, result.Payload)
	})

	t.Run("MultiByteText", func(t *testing.T) {
		result := Process(CmdEcho, []byte("héllo, 世界"))

		require.Equal(t, Respond, result.Disposition)
		assert.Equal(t, "héllo, 世界", string(result.Payload))
	})
}

func TestProcessReverse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ASCII", "hello", "olleh"},
		{"Empty", "", ""},
		{"SingleChar", "x", "x"},
		{"Accented", "héllo", "olléh"},
		{"CJK", "日本語", "語本日"},
		{"Mixed", "ab界c", "c界ba"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Process(CmdReverse, []byte(tt.input))

			require.Equal(t, Respond, result.Disposition)
			assert.Equal(t, tt.want, string(result.Payload))
		})
	}

	t.Run("ResponseIsLabeledEcho", func(t *testing.T) {
		// Replies always carry the echo command code, even for reverse
		result := Process(CmdReverse, []byte("abc"))

		assert.Equal(t, CmdEcho, result.Command)
	})

	t.Run("ReversingTwiceRestoresOriginal", func(t *testing.T) {
		for _, s := range []string{"hello", "héllo, 世界", "", "a日b本c"} {
			once := Process(CmdReverse, []byte(s))
			twice := Process(CmdReverse, once.Payload)

			assert.Equal(t, s, string(twice.Payload))
		}
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		payload := []byte("abcdef")
		Process(CmdReverse, payload)

		assert.Equal(t, "abcdef", string(payload))
	})

	t.Run("InvalidUTF8ReversesBestEffort", func(t *testing.T) {
		result := Process(CmdReverse, []byte{0xff, 'a', 0xfe})

		require.Equal(t, Respond, result.Disposition)
		// Invalid bytes decode to replacement runes; the output is valid UTF-8
		assert.True(t, utf8.Valid(result.Payload))
		assert.Equal(t, 3, utf8.RuneCount(result.Payload))
	})
}

func TestProcessQuit(t *testing.T) {
	result := Process(CmdQuit, nil)

	assert.Equal(t, Close, result.Disposition)
	assert.Empty(t, result.Payload)
}

func TestProcessUnknownCommand(t *testing.T) {
	for _, command := range []byte{0, 4, 42, 99, 255} {
		result := Process(command, []byte("whatever"))

		assert.Equal(t, Ignore, result.Disposition, "command %d", command)
	}
}
