package frame

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stegwave/bits"
)

func testHeader() Header {
	return Header{
		ECCPublicKey:  "-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n",
		RSAPublicKey:  "-----BEGIN PUBLIC KEY-----\nBBBB\n-----END PUBLIC KEY-----\n",
		MessageLength: 5,
		RSAKey:        "c2Vzc2lvbi1rZXk=",
	}
}

func TestBuildParse_RoundTrip(t *testing.T) {
	t.Parallel()

	payloadBits, err := bits.TextToBits(`"aXYrY2lwaGVydGV4dA=="`)
	require.NoError(t, err)

	frame, err := Build(testHeader(), payloadBits)
	require.NoError(t, err)

	h, gotPayload, err := Parse(frame)
	require.NoError(t, err)

	assert.Equal(t, testHeader(), h)
	assert.Equal(t, payloadBits, gotPayload)
}

func TestBuild_FrameLengthInvariant(t *testing.T) {
	t.Parallel()

	payloadBits := strings.Repeat("10", 321)

	frame, err := Build(testHeader(), payloadBits)
	require.NoError(t, err)

	headerLen := len(frame) - PrefixBits - len(payloadBits)
	assert.Zero(t, headerLen%8, "header bits must be byte aligned")

	// The prefix states exactly the header length.
	h2, p2, err := Parse(frame)
	require.NoError(t, err)
	assert.Equal(t, testHeader(), h2)
	assert.Equal(t, payloadBits, p2)
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := Build(testHeader(), "0101")
	require.NoError(t, err)
	b, err := Build(testHeader(), "0101")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestBuild_EmptyPayload(t *testing.T) {
	t.Parallel()

	frame, err := Build(testHeader(), "")
	require.NoError(t, err)

	h, payload, err := Parse(frame)
	require.NoError(t, err)
	assert.Equal(t, testHeader(), h)
	assert.Empty(t, payload)
}

func TestParse_Failures(t *testing.T) {
	t.Parallel()

	goodFrame, err := Build(testHeader(), "1100")
	require.NoError(t, err)

	junkHeaderBits, err := bits.TextToBits("this is not json")
	require.NoError(t, err)
	// Prefix declaring 128 header bits, followed by non-JSON text.
	junkFrame := strings.Repeat("0", PrefixBits-8) + "10000000" + junkHeaderBits

	missingFieldHeader := testHeader()
	missingFieldHeader.RSAKey = ""
	missingFieldFrame, err := Build(missingFieldHeader, "")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrShortFrame},
		{"under 32 bits", "0101", ErrShortFrame},
		{"garbage prefix", strings.Repeat("x", 40), ErrBadPrefix},
		{"declared header longer than stream", goodFrame[:PrefixBits+10], ErrTruncatedHeader},
		{"header not json", junkFrame, ErrBadHeader},
		{"missing key field", missingFieldFrame, ErrMissingField},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_TruncatedHeaderBoundary(t *testing.T) {
	t.Parallel()

	frame, err := Build(testHeader(), "")
	require.NoError(t, err)

	// One bit short of the declared header is still truncated.
	_, _, err = Parse(frame[:len(frame)-1])
	assert.ErrorIs(t, err, ErrTruncatedHeader)

	// The exact boundary parses with an empty payload.
	h, payload, err := Parse(frame)
	require.NoError(t, err)
	assert.Equal(t, testHeader(), h)
	assert.Empty(t, payload)
}
