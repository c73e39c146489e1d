package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves byte offsets into positions.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0, 1),
		index: make(map[string]FileID),
	}
}

// Add stores a file from normalized UTF-8 bytes, computes LineIdx, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:       id,
		Path:     normalizedPath,
		Content:  content,
		LineIdx:  buildLineIndex(content),
		Flags:    flags,
		Encoding: defaultEncoding,
	})
	// Всегда обновляем индекс на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips a BOM, applies universal newlines,
// decodes it to UTF-8 and calls Add. Undecodable content yields a *DecodeError;
// any other error comes from the filesystem.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.LoadBytes(path, raw)
}

// LoadBytes runs the decoding half of Load over bytes already read from path.
func (fileSet *FileSet) LoadBytes(path string, raw []byte) (FileID, error) {
	content, hadBOM := removeBOM(raw)
	content, hadCR := normalizeNewlines(content)

	decoded, encName, declared, decErr := decodeSource(content, hadBOM)
	if decErr != nil {
		decErr.Path = path
		return 0, decErr
	}

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCR {
		flags |= FileNormalizedNewlines
	}
	if declared {
		flags |= FileDeclaredEncoding
	}
	id := fileSet.Add(path, decoded, flags)
	fileSet.files[id].Encoding = encName
	return id, nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return f.Position(span.Start), f.Position(span.End)
}

// Position converts a byte offset into a line and column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// LineCount returns the number of lines, counting a final line without '\n'.
func (f *File) LineCount() int {
	n := len(f.LineIdx)
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// GetLine возвращает строку с заданным номером (1-based) из файла, без '\n'.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	var start, end, lenLineIdx, lenContent uint32
	var err error
	lenLineIdx, err = safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err = safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}

	return string(f.Content[start:end])
}
