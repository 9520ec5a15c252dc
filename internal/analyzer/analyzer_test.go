package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"testforge/internal/generate"
	"testforge/internal/naming"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const serviceSource = `package com.example.service;

import com.example.repo.UserRepository;

@Service
public class UserService {

    @Autowired
    private UserRepository userRepository;

    public User findById(Long id) {
        if (id == null) {
            throw new IllegalArgumentException("id required");
        }
        return userRepository.findById(id);
    }
}
`

const repositorySource = `package com.example.repo;

public interface UserRepository {
    User findById(Long id);
}
`

// writeSource places Java source under dir following the package path.
func writeSource(t *testing.T, dir, pkgPath, name, content string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(pkgPath))
	require.NoError(t, os.MkdirAll(full, 0755))
	path := filepath.Join(full, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunGeneratesServiceScaffold(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, src, "com/example/service", "UserService.java", serviceSource)
	writeSource(t, src, "com/example/repo", "UserRepository.java", repositorySource)

	a := New(Options{Roots: []string{src}, OutputRoot: out}, nil)
	report, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Success())
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Generated)
	assert.Equal(t, 1, report.Skipped, "the unmarked repository interface is skipped")
	assert.Empty(t, report.Diagnostics)
	assert.NotEmpty(t, report.RunID)

	want := filepath.Join(out, "com", "example", "service", "UserServiceTest.java")
	require.Equal(t, []string{want}, report.Written)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "@ExtendWith(MockitoExtension.class)")
	assert.Contains(t, content, "private UserRepository userRepository;")
	assert.Contains(t, content, "void testFindById()")
	assert.Contains(t, content, "assertThrows(IllegalArgumentException.class")
}

func TestRunUnmarkedClassProducesNoFiles(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, src, "com/example", "Plain.java", `package com.example;

public class Plain {
    public void run() {
    }
}
`)

	a := New(Options{Roots: []string{src}, OutputRoot: out}, nil)
	report, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 0, report.Generated)
	assert.Equal(t, 1, report.Skipped)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output at all for unmarked classes")
}

func TestRunToleratesUnscannableSource(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, src, "com/example", "Broken.java", "@@@@ not java {{{{")
	writeSource(t, src, "com/example/service", "UserService.java", serviceSource)

	a := New(Options{Roots: []string{src}, OutputRoot: out}, nil)
	report, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Success())
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Generated)
	require.Len(t, report.Diagnostics, 1)
	assert.Contains(t, report.Diagnostics[0].Path, "Broken.java")
}

func TestRunHonorsFilters(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, src, "com/example/service", "UserService.java", serviceSource)
	writeSource(t, src, "com/example/billing", "InvoiceService.java", `package com.example.billing;

@Service
public class InvoiceService {

    public void send() {
    }
}
`)

	a := New(Options{
		Roots:      []string{src},
		OutputRoot: out,
		Includes:   []string{"com.example.service.*"},
	}, nil)
	report, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Generated)
	assert.Equal(t, 1, report.Skipped)

	// Excludes win over includes.
	out2 := t.TempDir()
	a = New(Options{
		Roots:      []string{src},
		OutputRoot: out2,
		Includes:   []string{"com.example.*"},
		Excludes:   []string{"*.InvoiceService"},
	}, nil)
	report, err = a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Generated)
}

func TestRunDryRun(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, src, "com/example/service", "UserService.java", serviceSource)

	a := New(Options{Roots: []string{src}, OutputRoot: out, DryRun: true}, nil)
	report, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Generated)
	require.Len(t, report.Written, 1)
	_, statErr := os.Stat(report.Written[0])
	assert.True(t, os.IsNotExist(statErr), "dry run must not write files")
}

func TestRunCategoryAll(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, src, "com/example/service", "UserService.java", serviceSource)

	a := New(Options{
		Roots:      []string{src},
		OutputRoot: out,
		Category:   generate.CategoryAll,
	}, nil)
	report, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Generated)
	assert.FileExists(t, filepath.Join(out, "com", "example", "service", "UserServiceTest.java"))
	assert.FileExists(t, filepath.Join(out, "com", "example", "service", "UserServiceIntegrationTest.java"))
}

func TestRunSkipsExistingTestsAndHiddenDirs(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, src, "com/example/service", "UserService.java", serviceSource)
	writeSource(t, src, "com/example/service", "UserServiceTest.java", "@@ not even java")
	writeSource(t, src, ".hidden", "Secret.java", "@@ broken")

	a := New(Options{Roots: []string{src}, OutputRoot: out}, nil)
	report, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Scanned, "test files and hidden directories are not scanned")
	assert.Empty(t, report.Diagnostics)
}

func TestRunManyFilesConcurrently(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel"}
	for _, name := range names {
		writeSource(t, src, "com/example/service", name+"Service.java",
			"package com.example.service;\n\n@Service\npublic class "+name+"Service {\n\n    public void run() {\n    }\n}\n")
	}

	a := New(Options{
		Roots:       []string{src},
		OutputRoot:  out,
		Concurrency: 3,
		Style:       naming.StyleCamel,
	}, nil)
	report, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(names), report.Generated)
	require.Len(t, report.Written, len(names))
	assert.True(t, sortedStrings(report.Written), "written paths are reported in sorted order")
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}
