package tng_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tngformat/tng"
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/format"
	"github.com/tngformat/tng/topology"
)

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// Scenario 1: Empty trajectory.
func TestEmptyTrajectory(t *testing.T) {
	path := tempPath(t, "empty.tng")

	tj, err := tng.NewTrajectory(tng.WithEndianness(endian.GetLittleEndianEngine()))
	require.NoError(t, err)
	tj.FirstProgramNameSet("t")

	require.NoError(t, tj.Open(path, format.WriteMode))
	require.NoError(t, tj.Close())

	tj2, err := tng.NewTrajectory()
	require.NoError(t, err)
	require.NoError(t, tj2.Open(path, format.ReadMode))
	defer tj2.Close()

	require.Equal(t, int64(0), tj2.NumFramesGet())
	require.Equal(t, int64(0), tj2.NumFrameSetsGet())

	var buf [8]byte
	n := tj2.FirstProgramNameGet(buf[:])
	require.Equal(t, "t", string(buf[:n]))
}

// Scenario 2: Single frame set, no compression.
func TestSingleFrameSetNoCompression(t *testing.T) {
	path := tempPath(t, "single.tng")

	const nParticles = 10
	const nFrames = 10

	tj, err := tng.NewTrajectory(tng.WithFramesPerFrameSet(nFrames))
	require.NoError(t, err)
	tj.TopologyGet().AddMolecule(waterlikeMolecule(nParticles))

	require.NoError(t, tj.Open(path, format.WriteMode))
	require.NoError(t, tj.FrameSetNew(0, 0))
	require.NoError(t, tj.MappingAdd(0, nParticles, nil))
	require.NoError(t, tj.ParticleDataBlockAdd(format.BlockPositions, "POSITIONS",
		format.Float64Data, 1, 3, format.CodecNone, 0, nParticles))

	want := make([][]float64, nFrames)
	for frame := 0; frame < nFrames; frame++ {
		row := make([]float64, nParticles*3)
		for atom := 0; atom < nParticles; atom++ {
			for axis := 0; axis < 3; axis++ {
				row[atom*3+axis] = float64(frame*100 + atom*10 + axis)
			}
		}
		want[frame] = row
		require.NoError(t, tj.FrameParticleDataWriteFloat64(format.BlockPositions, int64(frame), row))
	}
	require.NoError(t, tj.Close())

	tj2, err := tng.NewTrajectory()
	require.NoError(t, err)
	require.NoError(t, tj2.Open(path, format.ReadMode))
	defer tj2.Close()

	require.NoError(t, tj2.FrameSetReadAt(0))
	vec, err := tj2.DataVectorGet(format.BlockPositions)
	require.NoError(t, err)
	require.Equal(t, int64(1), vec.Stride)

	for frame := 0; frame < nFrames; frame++ {
		got := vec.Float64[frame*nParticles*3 : (frame+1)*nParticles*3]
		require.Equal(t, want[frame], got)
	}
}

// Scenario 3: Strided velocities.
func TestStridedVelocities(t *testing.T) {
	path := tempPath(t, "strided.tng")

	const nParticles = 4
	const nFrames = 20
	const stride = 5

	tj, err := tng.NewTrajectory(tng.WithFramesPerFrameSet(nFrames))
	require.NoError(t, err)
	tj.TopologyGet().AddMolecule(waterlikeMolecule(nParticles))

	require.NoError(t, tj.Open(path, format.WriteMode))
	require.NoError(t, tj.FrameSetNew(0, 0))
	require.NoError(t, tj.MappingAdd(0, nParticles, nil))
	require.NoError(t, tj.ParticleDataBlockAdd(format.BlockVelocities, "VELOCITIES",
		format.Float64Data, stride, 3, format.CodecNone, 0, nParticles))

	written := []int64{0, 5, 10, 15}
	for _, frame := range written {
		row := make([]float64, nParticles*3)
		for i := range row {
			row[i] = float64(frame)
		}
		require.NoError(t, tj.FrameParticleDataWriteFloat64(format.BlockVelocities, frame, row))
	}
	require.NoError(t, tj.Close())

	tj2, err := tng.NewTrajectory()
	require.NoError(t, err)
	require.NoError(t, tj2.Open(path, format.ReadMode))
	defer tj2.Close()

	require.NoError(t, tj2.FrameSetReadAt(0))
	vec, err := tj2.DataVectorGet(format.BlockVelocities)
	require.NoError(t, err)
	require.Equal(t, int64(stride), vec.Stride)
	require.Len(t, vec.Float64, len(written)*nParticles*3)
}

// Scenario 4: Frame sets with skip pointers.
func TestSkipPointerSeek(t *testing.T) {
	path := tempPath(t, "skipptr.tng")

	const nParticles = 2
	const framesPerSet = 10
	const nSets = 5

	tj, err := tng.NewTrajectory(
		tng.WithFramesPerFrameSet(framesPerSet),
		tng.WithMediumStrideLength(2),
	)
	require.NoError(t, err)
	tj.TopologyGet().AddMolecule(waterlikeMolecule(nParticles))

	require.NoError(t, tj.Open(path, format.WriteMode))

	for set := 0; set < nSets; set++ {
		first := int64(set * framesPerSet)
		require.NoError(t, tj.FrameSetNew(first, float64(first)))
		require.NoError(t, tj.MappingAdd(0, nParticles, nil))
		require.NoError(t, tj.ParticleDataBlockAdd(format.BlockPositions, "POSITIONS",
			format.Float64Data, 1, 3, format.CodecNone, 0, nParticles))

		for f := int64(0); f < framesPerSet; f++ {
			require.NoError(t, tj.FrameParticleDataWriteFloat64(format.BlockPositions, first+f,
				make([]float64, nParticles*3)))
		}
	}
	require.NoError(t, tj.Close())

	tj2, err := tng.NewTrajectory()
	require.NoError(t, err)
	require.NoError(t, tj2.Open(path, format.ReadMode))
	defer tj2.Close()

	h, err := tj2.FrameSetOfFrameFind(35)
	require.NoError(t, err)
	require.Equal(t, int64(30), h.FirstFrame)
}

// Scenario 5: Mapping split.
func TestMappingSplit(t *testing.T) {
	path := tempPath(t, "mapsplit.tng")

	const nParticles = 100

	tj, err := tng.NewTrajectory(tng.WithFramesPerFrameSet(1))
	require.NoError(t, err)
	tj.TopologyGet().AddMolecule(waterlikeMolecule(nParticles))

	require.NoError(t, tj.Open(path, format.WriteMode))
	require.NoError(t, tj.FrameSetNew(0, 0))
	require.NoError(t, tj.MappingAdd(0, 50, nil))
	require.NoError(t, tj.MappingAdd(50, 50, nil))
	require.NoError(t, tj.ParticleDataBlockAdd(format.BlockPositions, "POSITIONS",
		format.Float64Data, 1, 3, format.CodecNone, 0, nParticles))

	row := make([]float64, nParticles*3)
	for i := range row {
		row[i] = float64(i)
	}
	require.NoError(t, tj.FrameParticleDataWriteFloat64(format.BlockPositions, 0, row))
	require.NoError(t, tj.Close())

	tj2, err := tng.NewTrajectory()
	require.NoError(t, err)
	require.NoError(t, tj2.Open(path, format.ReadMode))
	defer tj2.Close()

	require.NoError(t, tj2.FrameSetReadAt(0))
	vec, table, err := tj2.ParticleDataVectorGet(format.BlockPositions)
	require.NoError(t, err)
	require.Equal(t, int64(nParticles), vec.NParticles)

	for k := int64(0); k < nParticles; k++ {
		m, ok := table.Resolve(k)
		require.True(t, ok)
		g, ok := m.Global(k - m.FirstParticleNumber)
		require.True(t, ok)
		require.Equal(t, vec.Float64[k*3], vec.Float64[g*3])
	}
}

// Scenario 6: Hash tamper.
func TestHashTamper(t *testing.T) {
	path := tempPath(t, "tamper.tng")

	const nParticles = 2

	tj, err := tng.NewTrajectory(tng.WithHashMode(format.HashUse), tng.WithFramesPerFrameSet(1))
	require.NoError(t, err)
	tj.TopologyGet().AddMolecule(waterlikeMolecule(nParticles))

	require.NoError(t, tj.Open(path, format.WriteMode))
	require.NoError(t, tj.FrameSetNew(0, 0))
	require.NoError(t, tj.MappingAdd(0, nParticles, nil))
	require.NoError(t, tj.ParticleDataBlockAdd(format.BlockPositions, "POSITIONS",
		format.Float64Data, 1, 3, format.CodecNone, 0, nParticles))
	require.NoError(t, tj.FrameParticleDataWriteFloat64(format.BlockPositions, 0, []float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, tj.Close())

	flipLastByte(t, path)

	tj2, err := tng.NewTrajectory(tng.WithHashMode(format.HashUse))
	require.NoError(t, err)
	require.NoError(t, tj2.Open(path, format.ReadMode))
	defer tj2.Close()

	require.NoError(t, tj2.FrameSetReadAt(0))
	require.True(t, tj2.HashMismatched())

	_, err = tj2.DataVectorGet(format.BlockPositions)
	require.NoError(t, err)
}

func flipLastByte(t *testing.T, path string) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)

	var b [1]byte
	_, err = f.ReadAt(b[:], info.Size()-1)
	require.NoError(t, err)

	b[0] ^= 0xFF
	_, err = f.WriteAt(b[:], info.Size()-1)
	require.NoError(t, err)
}

func waterlikeMolecule(nAtoms int) topology.Molecule {
	atoms := make([]topology.Atom, nAtoms)
	for i := range atoms {
		atoms[i] = topology.Atom{Name: "X", ResidueIndex: -1, ChainIndex: -1}
	}

	return topology.Molecule{ID: 0, Name: "mol", Count: 1, Atoms: atoms}
}

