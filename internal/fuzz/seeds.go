package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16  // 64 KiB
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
)

// builtinSeeds покрывают каждую ветку классификации.
var builtinSeeds = []string{
	"",
	"print(\"ok\")\n",
	"if True:\nprint(\"x\")\n",
	"def f(:\n    pass\n",
	"\x00",
	"if x:\n\ta = 1\n        b = 2\n",
	"if x:\n        a = 1\n    b = 2\n",
	"x = (1,\n",
	"x = (1]\n",
	"s = 'abc\n",
	"s = '''abc\n",
	"x = 1 \\ y\n",
	"x = 1 \\\n",
	"# -*- coding: latin-1 -*-\ns = '\xe9'\n",
	"# coding: klingon\n",
	"\xef\xbb\xbfx = 1\r\ny = 2\r",
	"class A:\n    def m(self):\n        return [i for i in range(3)]\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.py файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
