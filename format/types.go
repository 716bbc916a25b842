// Package format defines the small, shared vocabulary of enums used across
// the trajectory engine: datatypes, dependency flags, codec ids, block types,
// and the well-known block ids from the file format (spec.md §6).
package format

// DataType is the scalar element type stored in a data block's payload.
type DataType uint8

const (
	CharData DataType = iota
	Int64Data
	Float32Data
	Float64Data
)

// Size returns the on-disk size in bytes of a single scalar of this type.
// CharData has no fixed size; callers must use the length-prefixed string rule.
func (d DataType) Size() int {
	switch d {
	case Int64Data:
		return 8
	case Float32Data:
		return 4
	case Float64Data:
		return 8
	default:
		return 0
	}
}

func (d DataType) String() string {
	switch d {
	case CharData:
		return "char"
	case Int64Data:
		return "int64"
	case Float32Data:
		return "float32"
	case Float64Data:
		return "float64"
	default:
		return "unknown"
	}
}

// Dependency is a bitmask describing whether a data block varies per frame
// and/or per particle (spec.md §3, §4.7).
type Dependency uint8

const (
	FrameDependent    Dependency = 1 << 0
	ParticleDependent Dependency = 1 << 1
)

func (d Dependency) IsFrameDependent() bool    { return d&FrameDependent != 0 }
func (d Dependency) IsParticleDependent() bool { return d&ParticleDependent != 0 }

// BlockType distinguishes blocks that live on the root from blocks that live
// inside a frame set (spec.md §4.2).
type BlockType int64

const (
	NonTrajectoryBlock BlockType = 0
	TrajectoryBlock    BlockType = 1
)

// Codec identifies the byte-in/byte-out transform applied to a data block's
// payload (spec.md §4.7). Ids 1 and 2 stand in for the XTC-style and
// format-specific lossy codecs, which spec.md treats as external
// collaborators; this module wires them to real compressors (see
// DESIGN.md) rather than stubbing them out.
type Codec int64

const (
	CodecNone           Codec = 0
	CodecXTCStyle       Codec = 1
	CodecFormatSpecific Codec = 2
	CodecDeflate        Codec = 3
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecXTCStyle:
		return "xtc-style"
	case CodecFormatSpecific:
		return "format-specific"
	case CodecDeflate:
		return "deflate"
	default:
		return "unknown"
	}
}

// Well-known block ids (spec.md §6).
const (
	BlockGeneralInfo        int64 = 0x0000000000000000
	BlockMolecules          int64 = 0x0000000000000001
	BlockTrajectoryFrameSet int64 = 0x0000000000000002
	BlockParticleMapping    int64 = 0x0000000000000003

	BlockBoxShape            int64 = 0x0000000010000000
	BlockPositions           int64 = 0x0000000010000001
	BlockVelocities          int64 = 0x0000000010000002
	BlockForces              int64 = 0x0000000010000003
	BlockPartialCharges      int64 = 0x0000000010000004
	BlockFormalCharges       int64 = 0x0000000010000005
	BlockBFactors            int64 = 0x0000000010000006
	BlockAnisotropicBFactors int64 = 0x0000000010000007
	BlockOccupancy           int64 = 0x0000000010000008

	// BlockLambda is the GROMACS-specific free-energy lambda scalar, carried
	// over from original_source's TNG_GMX_LAMBDA since spec.md §1 keeps
	// "lambda" in scope as a per-frame scalar.
	BlockLambda int64 = 0x1000000010000000

	// VendorExtensionPrefix marks the bit range reserved for vendor-specific
	// block ids; this module does not interpret ids in that range beyond
	// dispatching them through the generic block reader.
	VendorExtensionPrefix int64 = 0x1000000000000000
)

// OpenMode selects how a Trajectory's underlying file is used (spec.md §6).
type OpenMode uint8

const (
	ReadMode OpenMode = iota
	WriteMode
	AppendMode
)

func (m OpenMode) String() string {
	switch m {
	case ReadMode:
		return "r"
	case WriteMode:
		return "w"
	case AppendMode:
		return "a"
	default:
		return "?"
	}
}

// HashMode selects whether block bodies are MD5-hashed on write and
// verified on read (spec.md §4.3).
type HashMode uint8

const (
	HashSkip HashMode = iota
	HashUse
)

const (
	// MaxDateStrLen is the fixed width of the ISO-8601 creation-time string (spec.md §6).
	MaxDateStrLen = 24
	// MD5HashLen is the width of the per-block integrity hash (spec.md §4.2).
	MD5HashLen = 16
	// MaxStrLen bounds every length-prefixed string field (spec.md §4.1, §6).
	MaxStrLen = 1024
)
