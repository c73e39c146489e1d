package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	// FileNormalizedNewlines is set when \r\n or a lone \r was rewritten to \n.
	FileNormalizedNewlines
	// FileDeclaredEncoding is set when a coding cookie selected the encoding.
	FileDeclaredEncoding
)

// File captures metadata and decoded UTF-8 content for a single source file.
type File struct {
	ID       FileID
	Path     string
	Content  []byte
	LineIdx  []uint32 // offsets of every '\n'
	Flags    FileFlags
	Encoding string // normalised name of the source encoding
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
