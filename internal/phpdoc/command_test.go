package phpdoc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand_ConfigMode(t *testing.T) {
	c := Config{
		ToolPath:   "/srv/app/phpDocumentor.phar",
		SourceDir:  "/srv/orpheus",
		OutputDir:  "/srv/app/html",
		CacheDir:   "/srv/app/cache",
		ConfigFile: "/srv/app/phpdoc.xml",
	}
	require.Equal(t, ModeConfig, c.Mode())

	cmd, err := BuildCommand([]string{"php"}, c)
	require.NoError(t, err)
	assert.Equal(t, "php", cmd.Path)
	assert.Equal(t, []string{
		"-d", "phar.readonly=on", "/srv/app/phpDocumentor.phar",
		"run", "-d", "/srv/orpheus", "--config", "/srv/app/phpdoc.xml",
	}, cmd.Args)
	assert.NotContains(t, cmd.Args, "-t")
	assert.NotContains(t, cmd.Args, "--cache-folder")
}

func TestBuildCommand_OutputMode(t *testing.T) {
	c := Config{
		ToolPath:  "/srv/app/phpDocumentor.phar",
		SourceDir: "/srv/app/vendor/orpheus",
		OutputDir: "/srv/app/html",
		CacheDir:  "/srv/app/cache",
	}
	require.Equal(t, ModeOutput, c.Mode())

	cmd, err := BuildCommand([]string{"/usr/bin/php8.2", "-n"}, c)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/php8.2", cmd.Path)
	assert.Equal(t, []string{
		"-n", "-d", "phar.readonly=on", "/srv/app/phpDocumentor.phar",
		"run", "-d", "/srv/app/vendor/orpheus", "-t", "/srv/app/html", "--cache-folder", "/srv/app/cache",
	}, cmd.Args)
	assert.NotContains(t, cmd.Args, "--config")
}

func TestBuildCommand_PathsWithSpacesStayWhole(t *testing.T) {
	c := Config{
		ToolPath:   "/home/me/My Project/phpDocumentor.phar",
		SourceDir:  "/home/me/My Project/src; rm -rf /",
		ConfigFile: "/home/me/My Project/phpdoc.xml",
	}

	cmd, err := BuildCommand([]string{"php"}, c)
	require.NoError(t, err)
	assert.Contains(t, cmd.Args, "/home/me/My Project/src; rm -rf /")
	assert.Equal(t, "phpDocumentor.phar", cmd.Name())
}

func TestBuildCommand_Errors(t *testing.T) {
	tests := []struct {
		name        string
		interpreter []string
		cfg         Config
	}{
		{"no interpreter", nil, Config{ToolPath: "a", SourceDir: "b", ConfigFile: "c"}},
		{"no tool", []string{"php"}, Config{SourceDir: "b", ConfigFile: "c"}},
		{"no source", []string{"php"}, Config{ToolPath: "a", ConfigFile: "c"}},
		{"output mode missing cache", []string{"php"}, Config{ToolPath: "a", SourceDir: "b", OutputDir: "o"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildCommand(tt.interpreter, tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	project := t.TempDir()

	c, err := Config{
		ToolPath:   "phpDocumentor.phar",
		ToolURL:    "https://phpdoc.org/phpDocumentor.phar",
		SourceDir:  "../orpheus",
		OutputDir:  "html",
		CacheDir:   "/var/cache/phpdoc",
		ConfigFile: "",
	}.Resolve(project)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(project, "phpDocumentor.phar"), c.ToolPath)
	assert.Equal(t, filepath.Join(filepath.Dir(project), "orpheus"), c.SourceDir)
	assert.Equal(t, filepath.Join(project, "html"), c.OutputDir)
	assert.Equal(t, "/var/cache/phpdoc", c.CacheDir)
	assert.Empty(t, c.ConfigFile)
	assert.Equal(t, "https://phpdoc.org/phpDocumentor.phar", c.ToolURL)
	assert.Equal(t, c.ToolPath, c.Tool().Path)
}
