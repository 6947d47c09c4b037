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

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range edgeSeeds {
		f.Add([]byte(s))
	}
}

// edgeSeeds cover recovery paths that are easy to get wrong.
var edgeSeeds = []string{
	"",
	"123 + 456 * 789 / 2",
	"let x = (1 + 2; x",
	"1__2 _ 3 # c\n// d",
	"🦀 ) ( ;;",
	"\xff\xfe 1",
	"\ufeff1 +\r\n2",
	"let let let = = ;",
	"((((((((((1))))))))))",
	"18446744073709551616",
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.calc файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".calc" {
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
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
