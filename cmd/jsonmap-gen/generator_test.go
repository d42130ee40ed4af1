package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const bookSource = `package models

type Book struct {
	Title string ` + "`jsonmap:\"rename=title\"`" + `
	Shelf string
}

//jsonmap:property rename=location
func (b Book) Location() string { return "S-" + b.Shelf }

//jsonmap:property
func (b *Book) Pages() (int, error) { return 0, nil }
`

const authorSource = `package models

type Author struct {
	Name string ` + "`jsonmap:\"ignore\"`" + `
}
`

const brokenSource = `package models

type Broken struct {
	Title string ` + "`jsonmap:\"shout\"`" + `
}

//jsonmap:property
func (b Broken) Reset() {}
`

func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestGeneratorGenerate(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"book.go":   bookSource,
		"author.go": authorSource,
	})

	core, logs := observer.New(zap.InfoLevel)
	var out bytes.Buffer
	generator := NewGenerator(DefaultConfig(), GeneratorOptions{
		Version: "1.0.0",
		Out:     &out,
		Logger:  zap.New(core),
	})

	files, err := generator.Generate([]string{dir}, false)
	require.NoError(t, err)

	// Author has no annotated methods, so only book.go gets a companion.
	require.Equal(t, []string{filepath.Join(dir, "book_jsonmap.go")}, files)

	code, err := os.ReadFile(files[0])
	require.NoError(t, err)
	codeStr := string(code)
	assert.Contains(t, codeStr, "// Code generated by jsonmap-gen 1.0.0. DO NOT EDIT.")
	assert.Contains(t, codeStr, "func (Book) JSONProperties() []jsonmap.Property {")
	assert.Contains(t, codeStr, `jsonmap.Accessor("Location", jsonmap.Rename("location")),`)
	assert.Contains(t, codeStr, `jsonmap.Accessor("Pages"),`)

	assert.Equal(t, 1, logs.FilterMessage("generated file").Len())
	assert.Empty(t, out.String())

	// A second run skips the generated file and produces the same output.
	files, err = generator.Generate([]string{dir}, false)
	require.NoError(t, err)
	again, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, code, again)
}

func TestGeneratorPointerReceiverAndOutputDir(t *testing.T) {
	dir := writePackage(t, map[string]string{"book.go": bookSource})
	outDir := t.TempDir()

	config := DefaultConfig()
	config.Generation.OutputSuffix = "_props"
	config.Packages[dir] = PackageConfig{ReceiverStyle: ReceiverPointer}

	generator := NewGenerator(config, GeneratorOptions{OutputDir: outDir, Out: &bytes.Buffer{}})
	files, err := generator.Generate([]string{dir}, false)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(outDir, "book_props.go")}, files)

	code, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(code), "func (*Book) JSONProperties() []jsonmap.Property {")
	assert.NoFileExists(t, filepath.Join(dir, "book_props.go"))
}

func TestGeneratorDryRun(t *testing.T) {
	dir := writePackage(t, map[string]string{"book.go": bookSource})

	var out bytes.Buffer
	generator := NewGenerator(DefaultConfig(), GeneratorOptions{Out: &out, Verbose: true})

	files, err := generator.Generate([]string{dir}, true)
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.NoFileExists(t, files[0])
	assert.Contains(t, out.String(), "Would generate: "+files[0])
	assert.Contains(t, out.String(), "func (Book) JSONProperties()")
}

func TestGeneratorSkipsPackages(t *testing.T) {
	dir := writePackage(t, map[string]string{"broken.go": brokenSource})

	config := DefaultConfig()
	config.Packages[dir] = PackageConfig{Skip: true}

	files, err := NewGenerator(config, GeneratorOptions{Out: &bytes.Buffer{}}).Generate([]string{dir}, false)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGeneratorReportsInvalidTypes(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"book.go":   bookSource,
		"broken.go": brokenSource,
	})

	generator := NewGenerator(DefaultConfig(), GeneratorOptions{Out: &bytes.Buffer{}})

	files, err := generator.Generate([]string{dir}, false)
	require.Error(t, err)
	assert.Empty(t, files)
	assert.NoFileExists(t, filepath.Join(dir, "book_jsonmap.go"))

	var errs errsx.Map
	require.True(t, errors.As(err, &errs), "expected error to be of type errsx.Map")
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "Broken")

	var typeErrs errsx.Map
	require.True(t, errors.As(errs["Broken"], &typeErrs))
	assert.Contains(t, typeErrs, "Broken.Title")
	assert.Contains(t, typeErrs, "Broken.Reset")
}

func TestGeneratorTagKey(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"record.go": "package models\n\ntype Record struct {\n\tID int `out:\"shout\"`\n}\n",
	})

	_, err := NewGenerator(DefaultConfig(), GeneratorOptions{}).Discover(dir)
	require.NoError(t, err)

	_, err = NewGenerator(DefaultConfig(), GeneratorOptions{TagKey: "out"}).Discover(dir)
	require.Error(t, err)

	// The YAML tag key wins over the environment one.
	config := DefaultConfig()
	config.Generation.TagKey = "jsonmap"
	_, err = NewGenerator(config, GeneratorOptions{TagKey: "out"}).Discover(dir)
	require.NoError(t, err)
}
