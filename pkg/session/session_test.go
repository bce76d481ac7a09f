package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

func TestStore_WriteReadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sess := legalrecord.NewParseSession("2026-01-01")
	sess.Raw = []legalrecord.RawRecord{{Name: "UK_uksi_2026_1", TitleEN: "Example"}}
	sess.Group1 = []legalrecord.RawRecord{{Name: "UK_uksi_2026_1", TitleEN: "Example", Family: "💙 OH&S"}}
	sess.Group3 = map[string]legalrecord.RawRecord{"1": {Name: "UK_uksi_2026_2", TitleEN: "Excluded"}}

	require.NoError(t, store.Write(sess))

	got, err := store.Read("2026-01-01")
	require.NoError(t, err)
	require.Len(t, got.Raw, 1)
	require.Equal(t, "UK_uksi_2026_1", got.Group1[0].Name)
	require.Equal(t, 1, got.Metadata.CountGroup1)
	require.Equal(t, 1, got.Metadata.CountGroup3)
	require.Equal(t, "UK_uksi_2026_2", got.Group3["1"].Name)
}

func TestStore_SetSelected(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sess := legalrecord.NewParseSession("2026-02-02")
	sess.Group1 = []legalrecord.RawRecord{{Name: "UK_uksi_2026_5", TitleEN: "Example"}}
	require.NoError(t, store.Write(sess))

	require.NoError(t, store.SetSelected("2026-02-02", "group1", "UK_uksi_2026_5", true))

	got, err := store.Read("2026-02-02")
	require.NoError(t, err)
	require.True(t, got.Group1[0].Selected)
}

func TestStore_ReadAffectedLaws_FallsBackWhenMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.ReadAffectedLaws("nonexistent")
	require.False(t, ok)
}

func TestStore_WriteAffectedLaws(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sess := legalrecord.NewParseSession("2026-03-03")
	require.NoError(t, store.Write(sess))

	affected := legalrecord.AffectedLawsFile{
		Entries:     []legalrecord.CascadeEntry{{SessionID: "2026-03-03", AffectedLaw: "UK_ukpga_1974_37"}},
		AllAmending: []string{"UK_ukpga_1974_37"},
	}
	require.NoError(t, store.WriteAffectedLaws("2026-03-03", affected))

	got, ok := store.ReadAffectedLaws("2026-03-03")
	require.True(t, ok)
	require.Len(t, got.Entries, 1)
	require.Equal(t, "UK_ukpga_1974_37", got.AllAmending[0])
}
