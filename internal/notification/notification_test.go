package notification

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/msgcore/internal/ir"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestNames_Unique(t *testing.T) {
	seen := make(map[Name]bool)
	for _, n := range Names() {
		assert.False(t, seen[n], "duplicate name %q", n)
		seen[n] = true
	}
}

func TestNames_Catalog(t *testing.T) {
	var b strings.Builder
	for _, n := range Names() {
		b.WriteString(string(n))
		b.WriteByte('\n')
	}
	newGoldie(t).Assert(t, "catalog", []byte(b.String()))
}

func TestEncode_MessageWasUploaded(t *testing.T) {
	var uid ir.UID
	uid[31] = 0x2a

	n := MessageWasUploaded{
		MessageID:                   ir.MessageID{OwnedIdentity: ir.CryptoID{0x01, 0x02}, UID: uid},
		TimestampFromServer:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		IsAppMessageWithUserContent: true,
	}

	data, err := Encode(n)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "message_was_uploaded", data)
}

func TestEncode_Deterministic(t *testing.T) {
	n := ContactWasDeleted{OwnedIdentity: ir.CryptoID{1}, ContactIdentity: ir.CryptoID{2}}

	a, err := Encode(n)
	require.NoError(t, err)
	b, err := Encode(n)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t,
		`{"name":"contactWasDeleted","payload":{"contact_identity":"02","owned_identity":"01"},"version":1}`,
		string(a))
}

func TestEncode_HydratedSnapshot(t *testing.T) {
	n := GroupJoined{Group: ir.GroupSnapshot{
		OwnedIdentity: ir.CryptoID{1},
		TrustedName:   "Climbing",
		Members:       []ir.GroupMember{{Identity: ir.CryptoID{3}, Pending: true}},
	}}

	data, err := Encode(n)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"groupJoined"`)
	assert.Contains(t, string(data), `"members":[{"identity":"03","pending":true}]`)
}
