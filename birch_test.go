package birch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birchlang/birch"
)

func TestParseReturnsModule(t *testing.T) {
	mod, err := birch.Parse("let x = 1 + 2;")
	require.NoError(t, err)
	require.Equal(t, 1, mod.Body.Len())
}

func TestCompileCachesBySourceString(t *testing.T) {
	source := "const greeting = `hello ${name}`;"
	first, err := birch.Compile(source)
	require.NoError(t, err)
	second, err := birch.Compile(source)
	require.NoError(t, err)
	require.Same(t, first, second, "expected Compile to return the cached module on the second call")
}

func TestParseWithMaxDepthReportsFatalError(t *testing.T) {
	deep := ""
	for i := 0; i < 2000; i++ {
		deep += "("
	}
	deep += "1"
	for i := 0; i < 2000; i++ {
		deep += ")"
	}
	deep += ";"

	_, err := birch.Parse(deep, birch.WithMaxDepth(32))
	require.Error(t, err, "expected a max-depth error for pathologically nested input")
}

func TestDecodeConfigTranslatesToOptions(t *testing.T) {
	cfg, err := birch.DecodeConfig(map[string]interface{}{
		"max_depth":        64,
		"arena_block_size": 4096,
	})
	require.NoError(t, err)
	require.Equal(t, 64, cfg.MaxDepth)
	require.Equal(t, 4096, cfg.ArenaBlockSize)
	require.Len(t, cfg.Options(), 2)
}

func TestMustParsePanicsOnError(t *testing.T) {
	require.Panics(t, func() {
		birch.MustParse("let = ;")
	})
}
