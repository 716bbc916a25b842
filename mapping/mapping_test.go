package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/mapping"
)

func TestIdentityMappingGlobalAndContains(t *testing.T) {
	m := mapping.ParticleMapping{FirstParticleNumber: 100, Count: 5}

	g, ok := m.Global(0)
	require.True(t, ok)
	require.Equal(t, int64(100), g)

	g, ok = m.Global(4)
	require.True(t, ok)
	require.Equal(t, int64(104), g)

	_, ok = m.Global(5)
	require.False(t, ok)

	require.True(t, m.Contains(102))
	require.False(t, m.Contains(105))
	require.Equal(t, int64(105), m.End())
}

func TestExplicitMappingGlobalAndContains(t *testing.T) {
	m := mapping.ParticleMapping{FirstParticleNumber: 0, Count: 3, GlobalIDs: []int64{7, 2, 9}}

	g, ok := m.Global(1)
	require.True(t, ok)
	require.Equal(t, int64(2), g)

	require.True(t, m.Contains(9))
	require.False(t, m.Contains(3))
}

func TestTableAddRejectsOverlap(t *testing.T) {
	var tbl mapping.Table

	require.NoError(t, tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 0, Count: 10}))
	err := tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 5, Count: 10})
	require.ErrorIs(t, err, errs.ErrOverlappingMapping)

	require.NoError(t, tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 10, Count: 10}))
}

func TestTableAddRejectsOverlapWithExplicitIDs(t *testing.T) {
	var tbl mapping.Table

	require.NoError(t, tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 0, Count: 2, GlobalIDs: []int64{1, 2}}))
	err := tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 0, Count: 2, GlobalIDs: []int64{2, 3}})
	require.ErrorIs(t, err, errs.ErrOverlappingMapping)
}

func TestTableResolve(t *testing.T) {
	var tbl mapping.Table
	require.NoError(t, tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 0, Count: 4}))
	require.NoError(t, tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 4, Count: 4}))

	m, ok := tbl.Resolve(5)
	require.True(t, ok)
	require.Equal(t, int64(4), m.FirstParticleNumber)

	_, ok = tbl.Resolve(100)
	require.False(t, ok)
}

func TestTableCoversRange(t *testing.T) {
	var tbl mapping.Table
	require.NoError(t, tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 0, Count: 4}))

	require.True(t, tbl.CoversRange(0, 4))
	require.False(t, tbl.CoversRange(0, 5))
	require.True(t, tbl.CoversRange(0, 0))

	require.NoError(t, tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 4, Count: 4}))
	require.True(t, tbl.CoversRange(0, 8))
}

func TestTableSortByFirstParticle(t *testing.T) {
	var tbl mapping.Table
	require.NoError(t, tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 8, Count: 2}))
	require.NoError(t, tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 0, Count: 2}))
	require.NoError(t, tbl.Add(mapping.ParticleMapping{FirstParticleNumber: 4, Count: 2}))

	tbl.SortByFirstParticle()

	require.Equal(t, int64(0), tbl.Mappings[0].FirstParticleNumber)
	require.Equal(t, int64(4), tbl.Mappings[1].FirstParticleNumber)
	require.Equal(t, int64(8), tbl.Mappings[2].FirstParticleNumber)
}

func TestEncodeDecodeRoundTripIdentity(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	m := mapping.ParticleMapping{FirstParticleNumber: 42, Count: 6}

	body := m.Encode(engine)
	decoded, err := mapping.DecodeMapping(body, engine)
	require.NoError(t, err)
	require.Equal(t, m.FirstParticleNumber, decoded.FirstParticleNumber)
	require.Equal(t, m.Count, decoded.Count)
	require.Nil(t, decoded.GlobalIDs)
}

func TestEncodeDecodeRoundTripExplicit(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	m := mapping.ParticleMapping{FirstParticleNumber: 0, Count: 3, GlobalIDs: []int64{9, 1, 4}}

	body := m.Encode(engine)
	decoded, err := mapping.DecodeMapping(body, engine)
	require.NoError(t, err)
	require.Equal(t, m.GlobalIDs, decoded.GlobalIDs)
}

func TestDecodeMappingShortRead(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := mapping.DecodeMapping([]byte{1, 2, 3}, engine)
	require.ErrorIs(t, err, errs.ErrShortRead)

	m := mapping.ParticleMapping{FirstParticleNumber: 0, Count: 2, GlobalIDs: []int64{1, 2}}
	body := m.Encode(engine)
	_, err = mapping.DecodeMapping(body[:len(body)-4], engine)
	require.ErrorIs(t, err, errs.ErrShortRead)
}
