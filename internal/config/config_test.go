package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// campaignFixture lays out a minimal valid set of campaign inputs and
// returns their paths.
type campaignFixture struct {
	exe, tpl, adios, root string
}

func newFixture(t *testing.T) campaignFixture {
	t.Helper()
	dir := t.TempDir()
	exe := filepath.Join(dir, "gray-scott")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	root := filepath.Join(dir, "ensemble")
	require.NoError(t, os.Mkdir(root, 0o755))
	return campaignFixture{
		exe:   exe,
		tpl:   writeFile(t, dir, "settings.json", `{"F": 0.04, "k": 0.06, "L": 64}`),
		adios: writeFile(t, dir, "adios2.xml", "<adios-config></adios-config>"),
		root:  root,
	}
}

func (f campaignFixture) settingsYAML() string {
	return fmt.Sprintf("gs_exe: %s\ngs_json: %s\nadios2_xml: %s\nensemble_root: %s\n",
		f.exe, f.tpl, f.adios, f.root)
}

func TestLoadValidSettings(t *testing.T) {
	f := newFixture(t)
	path := writeFile(t, t.TempDir(), "campaign.yaml", f.settingsYAML())

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f.exe, s.GSExe)
	assert.Equal(t, f.root, s.EnsembleRoot)
	assert.Equal(t, DefaultSweep(), s.Sweep)
}

func TestLoadAcceptsJSONForm(t *testing.T) {
	f := newFixture(t)
	body := fmt.Sprintf(`{"gs_exe": %q, "gs_json": %q, "adios2_xml": %q, "ensemble_root": %q}`,
		f.exe, f.tpl, f.adios, f.root)
	path := writeFile(t, t.TempDir(), "campaign.json", body)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f.adios, s.Adios2XML)
}

func TestLoadParsesSweepSection(t *testing.T) {
	f := newFixture(t)
	body := f.settingsYAML() + `sweep:
  f: {base: 0.01, step: 0.01, count: 2}
  k: {base: 0.05, step: 0.05, count: 2}
`
	path := writeFile(t, t.TempDir(), "campaign.yaml", body)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Sweep.F.Count)
	assert.Equal(t, 0.05, s.Sweep.K.Base)
}

func TestMissingRequiredKeyIsFatal(t *testing.T) {
	f := newFixture(t)
	body := fmt.Sprintf("gs_json: %s\nadios2_xml: %s\nensemble_root: %s\n",
		f.tpl, f.adios, f.root)
	path := writeFile(t, t.TempDir(), "campaign.yaml", body)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigValidation))
	assert.Contains(t, err.Error(), "gs_exe")
}

func TestMissingReferencedPathIsFatal(t *testing.T) {
	f := newFixture(t)
	f.tpl = filepath.Join(t.TempDir(), "no-such-template.json")
	path := writeFile(t, t.TempDir(), "campaign.yaml", f.settingsYAML())

	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrConfigValidation))
}

func TestExecutableResolvedThroughPATH(t *testing.T) {
	f := newFixture(t)
	f.exe = "echo"
	path := writeFile(t, t.TempDir(), "campaign.yaml", f.settingsYAML())

	_, err := Load(path)
	assert.NoError(t, err)
}

func TestLoadTemplatePassthrough(t *testing.T) {
	f := newFixture(t)

	tpl, err := LoadTemplate(f.tpl)
	require.NoError(t, err)
	assert.Equal(t, 0.04, tpl.F)
	assert.Equal(t, 0.06, tpl.K)
	assert.Equal(t, float64(64), tpl.Extra["L"])
}
