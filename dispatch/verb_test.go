package dispatch_test

import (
	"testing"

	"github.com/andyle182810/apicaller/dispatch"
	"github.com/stretchr/testify/require"
)

func TestParseVerb(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    dispatch.Verb
		wantErr bool
	}{
		{input: "GET", want: dispatch.VerbGet},
		{input: "post", want: dispatch.VerbPost},
		{input: " Put ", want: dispatch.VerbPut},
		{input: "DELETE", want: dispatch.VerbDelete},
		{input: "PATCH", want: dispatch.VerbPatch},
		{input: "HEAD", want: dispatch.Verb("head"), wantErr: true},
		{input: "", want: dispatch.Verb(""), wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			verb, err := dispatch.ParseVerb(test.input)

			require.Equal(t, test.want, verb)

			if test.wantErr {
				require.ErrorIs(t, err, dispatch.ErrUnknownVerb)
				require.False(t, verb.Valid())

				return
			}

			require.NoError(t, err)
			require.True(t, verb.Valid())
		})
	}
}
